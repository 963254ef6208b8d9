package x86

import "github.com/retrodis/dis8086/set"

// ShortJumpMnemonics collects every mnemonic whose operand is a single
// signed 8-bit relative displacement: the sixteen conditional jumps, the
// loop family, jcxz, and the unconditional short jmp. Decode checks the
// mnemonic of every record it marks IsJump against this set and logs a
// debug-level message on a mismatch. Which records carry a jump target,
// and so print as "<mnemonic> label_<N>", is decided by the opcode
// dispatch through Instruction.IsJump, not by this set.
var ShortJumpMnemonics = set.NewFromSlice([]string{
	"jo", "jno", "jb", "jnb",
	"je", "jne", "jbe", "ja",
	"js", "jns", "jp", "jnp",
	"jl", "jge", "jle", "jg",
	"loopnz", "loopz", "loop", "jcxz",
	"jmp",
})
