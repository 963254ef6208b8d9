package x86

import "strconv"

// stringOpMnemonics maps the top 7 bits of a string-instruction primary
// byte to its base mnemonic; the low bit supplies the b/w width suffix.
// 0xAA/0xAB (stos) is not itemized in the primary dispatch table but is
// required to give the rep prefix (spec §4.3, row for 0xF3) a mnemonic
// to attach to, the way every other string op does.
var stringOpMnemonics = map[byte]string{
	0b1010010: "movs",
	0b1010011: "cmps",
	0b1010101: "stos",
	0b1010110: "lods",
	0b1010111: "scas",
}

// stringOpMnemonic returns the width-suffixed mnemonic (e.g. "movsb",
// "scasw") for a string-instruction primary byte, and whether the byte
// matched a known string op at all.
func stringOpMnemonic(primary byte) (string, bool) {
	base, ok := stringOpMnemonics[primary>>1]
	if !ok {
		return "", false
	}
	if primary&0x01 != 0 {
		return base + "w", true
	}
	return base + "b", true
}

// decodeInOutImm8 decodes the `1110010x`/`1110011x` in/out-via-immediate-
// port family. Bit 1 of the primary byte selects direction: clear is
// "in", set is "out".
func decodeInOutImm8(c *Cursor, primary byte) (string, int, error) {
	port, err := c.Peek(1)
	if err != nil {
		return "", 0, err
	}
	w := primary&0x01 != 0
	acc := "al"
	if w {
		acc = "ax"
	}

	portText := strconv.FormatUint(uint64(port), 10)
	if primary&0x02 == 0 {
		return "in " + acc + ", " + portText, 2, nil
	}
	return "out " + portText + ", " + acc, 2, nil
}

// decodeInOutDX decodes the `1110110x`/`1110111x` in/out-via-DX family.
func decodeInOutDX(primary byte) string {
	w := primary&0x01 != 0
	acc := "al"
	if w {
		acc = "ax"
	}
	if primary&0x02 == 0 {
		return "in " + acc + ", dx"
	}
	return "out dx, " + acc
}
