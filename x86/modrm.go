package x86

import (
	"fmt"
	"strconv"
)

// readModRM reads the ModR/M byte at base bytes past the cursor's current
// position and, per the mode/r-m combination, the displacement bytes
// that follow it (spec §4.3.3). It returns the decoded fields, the
// signed displacement (zero when the mode carries none), and the number
// of bytes consumed from base onward — i.e. the ModR/M byte plus any
// displacement, NOT including base itself.
func readModRM(c *Cursor, base int) (ModRM, int16, int, error) {
	raw, err := c.Peek(base)
	if err != nil {
		return ModRM{}, 0, 0, err
	}
	m := DecodeModRM(raw)
	consumed := 1

	var disp int16
	switch {
	case m.IsDirectAddress():
		lo, err := c.Peek(base + 1)
		if err != nil {
			return ModRM{}, 0, 0, err
		}
		hi, err := c.Peek(base + 2)
		if err != nil {
			return ModRM{}, 0, 0, err
		}
		disp = int16(uint16(hi)<<8 | uint16(lo))
		consumed += 2
	case m.Mode == ModMemDisp8:
		b, err := c.Peek(base + 1)
		if err != nil {
			return ModRM{}, 0, 0, err
		}
		disp = int16(int8(b))
		consumed++
	case m.Mode == ModMemDisp16:
		lo, err := c.Peek(base + 1)
		if err != nil {
			return ModRM{}, 0, 0, err
		}
		hi, err := c.Peek(base + 2)
		if err != nil {
			return ModRM{}, 0, 0, err
		}
		disp = int16(uint16(hi)<<8 | uint16(lo))
		consumed += 2
	}

	return m, disp, consumed, nil
}

// formatRM renders the r/m operand of a ModR/M byte: a bare register name
// in REG mode, or a bracketed effective-address expression in the memory
// modes. seg is the segment-override name to prefix inside the brackets,
// or "" for none. sizeQualifier requests a leading "byte "/"word " label,
// emitted only for memory operands — spec §4.2's disambiguation rule.
func formatRM(m ModRM, disp int16, wide bool, seg string, sizeQualifier bool) string {
	if m.Mode == ModReg {
		return registerName(int(m.RM), wide)
	}

	var qualifier string
	if sizeQualifier {
		if wide {
			qualifier = "word "
		} else {
			qualifier = "byte "
		}
	}

	return qualifier + formatMemory(m, disp, seg)
}

// formatMemory renders the bracketed effective-address expression for a
// memory-mode ModR/M byte (spec §4.2 rules 2-4).
func formatMemory(m ModRM, disp int16, seg string) string {
	var segPrefix string
	if seg != "" {
		segPrefix = seg + ":"
	}

	if m.IsDirectAddress() {
		return fmt.Sprintf("[%s%d]", segPrefix, disp)
	}

	base := effectiveAddressBases[m.RM]
	switch {
	case disp > 0:
		return fmt.Sprintf("[%s%s + %d]", segPrefix, base, disp)
	case disp < 0:
		return fmt.Sprintf("[%s%s - %d]", segPrefix, base, -int32(disp))
	default:
		return fmt.Sprintf("[%s%s]", segPrefix, base)
	}
}

// sizedImmediate renders an immediate operand, prefixed with a "byte "/
// "word " label when needsQualifier requests it — the immediate-to-memory
// disambiguation case (spec §4.2, scenario f), where the label attaches
// to the immediate rather than to the memory operand.
func sizedImmediate(imm uint16, wide bool, needsQualifier bool) string {
	text := strconv.FormatUint(uint64(imm), 10)
	if !needsQualifier {
		return text
	}
	if wide {
		return "word " + text
	}
	return "byte " + text
}

// signExtend8 widens a raw byte to its signed 16-bit two's-complement
// value, the rule used for MEM_DISP8 displacements and for group-1
// imm→r/m immediates when S=1, W=1.
func signExtend8(b byte) int16 {
	return int16(int8(b))
}
