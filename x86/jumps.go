package x86

import "strconv"

// loopMnemonics maps bits 1:0 of a `111000xx` primary byte to its
// mnemonic: loopnz, loopz, loop, jcxz.
var loopMnemonics = [4]string{"loopnz", "loopz", "loop", "jcxz"}

// conditionalJumpMnemonics maps the 4-bit condition field (bits 3:0 of a
// `0111xxxx` primary byte) to its mnemonic, using the alias NASM prints
// for each condition (e.g. "jne" rather than "jnz") — the widely
// recognized syntax spec §1 calls for.
var conditionalJumpMnemonics = [16]string{
	"jo", "jno", "jb", "jnb",
	"je", "jne", "jbe", "ja",
	"js", "jns", "jp", "jnp",
	"jl", "jge", "jle", "jg",
}

// decodeRel8Jump decodes any instruction whose sole operand is a signed
// 8-bit displacement relative to the address immediately after the
// instruction (spec §4.3.2): conditional short jumps, the loop family,
// jcxz, and the unconditional short jmp. endOffset is the offset of the
// byte after the two-byte instruction.
func decodeRel8Jump(c *Cursor, mnemonic string, endOffset int) (text string, target int, consumed int, err error) {
	b, err := c.Peek(1)
	if err != nil {
		return "", 0, 0, err
	}
	rel := int(signExtend8(b))
	target = endOffset + rel
	text = mnemonic
	return text, target, 2, nil
}

// conditionalJumpMnemonic returns the mnemonic for a `0111xxxx`
// conditional short jump primary byte.
func conditionalJumpMnemonic(primary byte) string {
	return conditionalJumpMnemonics[primary&0x0F]
}

// loopFamilyMnemonic returns the mnemonic for a `111000xx` loop/jcxz
// primary byte.
func loopFamilyMnemonic(primary byte) string {
	return loopMnemonics[primary&0x03]
}

// decodeNearRel16 decodes the `1110100x` call/jmp near-direct shape: a
// signed 16-bit displacement relative to the address after the
// instruction (3 bytes total). Unlike the rel8 jumps this does not set
// the record's jump flag — spec §4.3.2 scopes the jump-flag rule to the
// rel8 forms, and call/jmp here render their computed target inline as
// a decimal operand rather than a label reference.
func decodeNearRel16(c *Cursor, mnemonic string, endOffset int) (text string, consumed int, err error) {
	lo, err := c.Peek(1)
	if err != nil {
		return "", 0, err
	}
	hi, err := c.Peek(2)
	if err != nil {
		return "", 0, err
	}
	rel := int(int16(uint16(hi)<<8 | uint16(lo)))
	target := endOffset + rel
	return mnemonic + " " + strconv.Itoa(target), 3, nil
}
