package x86

import "strconv"

// group1Mnemonics maps the 3-bit field shared by all three group-1
// arithmetic encoding shapes (bits 5:3 of the primary byte, or the
// ModR/M reg field for the imm→r/m shape) to its mnemonic, per spec
// §4.3.1.
var group1Mnemonics = [8]string{"add", "or", "adc", "sbb", "and", "sub", "xor", "cmp"}

// decodeGroup1RegRM decodes the `00xxx0dw` r/m+reg shape. Returns the
// rendered text and the total instruction length in bytes.
func decodeGroup1RegRM(c *Cursor, primary byte, seg string) (string, int, error) {
	mnemonic := group1Mnemonics[(primary>>3)&0x07]
	d := primary&0x02 != 0
	w := primary&0x01 != 0

	m, disp, modrmLen, err := readModRM(c, 1)
	if err != nil {
		return "", 0, err
	}

	regText := registerName(int(m.Reg), w)
	rmText := formatRM(m, disp, w, seg, false)

	var text string
	if d {
		text = mnemonic + " " + regText + ", " + rmText
	} else {
		text = mnemonic + " " + rmText + ", " + regText
	}
	return text, 1 + modrmLen, nil
}

// decodeGroup1ImmAcc decodes the `00xxx10w` imm→accumulator shape.
func decodeGroup1ImmAcc(c *Cursor, primary byte) (string, int, error) {
	mnemonic := group1Mnemonics[(primary>>3)&0x07]
	w := primary&0x01 != 0

	var imm uint16
	length := 1
	if w {
		lo, err := c.Peek(1)
		if err != nil {
			return "", 0, err
		}
		hi, err := c.Peek(2)
		if err != nil {
			return "", 0, err
		}
		imm = uint16(hi)<<8 | uint16(lo)
		length += 2
	} else {
		b, err := c.Peek(1)
		if err != nil {
			return "", 0, err
		}
		imm = uint16(b)
		length++
	}

	acc := "al"
	if w {
		acc = "ax"
	}
	return mnemonic + " " + acc + ", " + strconv.FormatUint(uint64(imm), 10), length, nil
}

// decodeGroup1ImmRM decodes the `100000sw` imm→r/m shape. The mnemonic
// comes from the ModR/M reg field, never from the primary byte.
func decodeGroup1ImmRM(c *Cursor, primary byte, seg string) (string, int, error) {
	s := primary&0x02 != 0
	w := primary&0x01 != 0

	m, disp, modrmLen, err := readModRM(c, 1)
	if err != nil {
		return "", 0, err
	}
	mnemonic := group1Mnemonics[m.Reg&0x07]
	length := 1 + modrmLen

	var imm uint16
	switch {
	case w && s:
		b, err := c.Peek(length)
		if err != nil {
			return "", 0, err
		}
		imm = uint16(signExtend8(b))
		length++
	case w:
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
	default:
		b, err := c.Peek(length)
		if err != nil {
			return "", 0, err
		}
		imm = uint16(b)
		length++
	}

	rmText := formatRM(m, disp, w, seg, false)
	return mnemonic + " " + rmText + ", " + sizedImmediate(imm, w, m.Mode != ModReg), length, nil
}
