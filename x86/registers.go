package x86

// byteRegisters maps a 3-bit register field to its 8-bit register name:
// AL CL DL BL AH CH DH BH.
var byteRegisters = [8]string{"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"}

// wordRegisters maps a 3-bit register field to its 16-bit register name:
// AX CX DX BX SP BP SI DI.
var wordRegisters = [8]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}

// segmentRegisters maps the low two bits of a segment-register field to its
// name, in ES/CS/SS/DS order.
var segmentRegisters = [4]string{"es", "cs", "ss", "ds"}

// effectiveAddressBases maps the ModR/M r/m field (0..7) to the register
// expression forming the base of a memory effective address. r/m=6 is
// handled separately by the operand formatter (direct address in
// MEM_NO_DISP, [bp] otherwise).
var effectiveAddressBases = [8]string{
	"bx + si",
	"bx + di",
	"bp + si",
	"bp + di",
	"si",
	"di",
	"bp",
	"bx",
}

// registerName returns the assembly name for register index reg, selecting
// the byte or word table according to wide.
func registerName(reg int, wide bool) string {
	if wide {
		return wordRegisters[reg&7]
	}
	return byteRegisters[reg&7]
}

// wordRegisterForHalf returns the name of the word register that backs a
// byte-register index: AL/AH both belong to AX, and so on.
func wordRegisterForHalf(reg int) string {
	return wordRegisters[reg&3]
}
