package x86

// shiftMnemonics maps the ModR/M reg field of a `110100xx` shift/rotate
// opcode to its mnemonic. Reg=6 has no distinct 8086 rotate and is
// treated as a second encoding of shl, the common convention.
var shiftMnemonics = [8]string{"rol", "ror", "rcl", "rcr", "shl", "shr", "shl", "sar"}

// unaryMnemonics maps the ModR/M reg field of a `1111011x` unary-group
// opcode to its mnemonic. Reg=0 and reg=1 are both "test" (imm operand);
// the rest take no immediate.
var unaryMnemonics = [8]string{"test", "test", "not", "neg", "mul", "imul", "div", "idiv"}

// groupFFMnemonics maps the ModR/M reg field of a `1111111x` opcode to
// its mnemonic: inc/dec/call/jmp/push r/m.
var groupFFMnemonics = [7]string{"inc", "dec", "call", "call far", "jmp", "jmp far", "push"}

// decodeShiftRotate decodes the `110100xx` bit shift/rotate family. Bit 1
// of the primary byte selects the count operand: "1" when clear, "cl"
// when set.
func decodeShiftRotate(c *Cursor, primary byte, seg string) (string, int, error) {
	w := primary&0x01 != 0
	byCL := primary&0x02 != 0

	m, disp, modrmLen, err := readModRM(c, 1)
	if err != nil {
		return "", 0, err
	}
	mnemonic := shiftMnemonics[m.Reg&0x07]
	rmText := formatRM(m, disp, w, seg, m.Mode != ModReg)

	count := "1"
	if byCL {
		count = "cl"
	}
	return mnemonic + " " + rmText + ", " + count, 1 + modrmLen, nil
}

// decodeUnaryGroup decodes the `1111011x` not/neg/mul/imul/div/idiv/test
// family. The test forms additionally consume an immediate operand.
func decodeUnaryGroup(c *Cursor, primary byte, seg string) (string, int, error) {
	w := primary&0x01 != 0

	m, disp, modrmLen, err := readModRM(c, 1)
	if err != nil {
		return "", 0, err
	}
	mnemonic := unaryMnemonics[m.Reg&0x07]
	length := 1 + modrmLen

	if m.Reg&0x07 > 1 {
		rmText := formatRM(m, disp, w, seg, m.Mode != ModReg)
		return mnemonic + " " + rmText, length, nil
	}

	// test: an immediate of width w follows.
	rmText := formatRM(m, disp, w, seg, false)
	var imm uint16
	if w {
		lo, err := c.Peek(length)
		if err != nil {
			return "", 0, err
		}
		hi, err := c.Peek(length + 1)
		if err != nil {
			return "", 0, err
		}
		imm = uint16(hi)<<8 | uint16(lo)
		length += 2
	} else {
		b, err := c.Peek(length)
		if err != nil {
			return "", 0, err
		}
		imm = uint16(b)
		length++
	}

	return mnemonic + " " + rmText + ", " + sizedImmediate(imm, w, m.Mode != ModReg), length, nil
}

// decodeGroupFF decodes the `1111111x` inc/dec/call/jmp/push r/m family.
func decodeGroupFF(c *Cursor, primary byte, seg string) (string, int, error) {
	w := primary&0x01 != 0

	m, disp, modrmLen, err := readModRM(c, 1)
	if err != nil {
		return "", 0, err
	}
	reg := m.Reg & 0x07
	if int(reg) >= len(groupFFMnemonics) {
		return "", 0, &UndecodableOpcodeError{Byte: primary, Offset: c.Position()}
	}

	mnemonic := groupFFMnemonics[reg]
	needsSize := m.Mode != ModReg && (reg == 0 || reg == 1)
	rmText := formatRM(m, disp, w, seg, needsSize)
	return mnemonic + " " + rmText, 1 + modrmLen, nil
}
