package x86

import (
	"strconv"

	"github.com/retrodis/dis8086/log"
)

// segAdjustTable covers the handful of 0x00-0x3F opcodes that the
// `xxx110`/`xxx111` sub-range carves out of the group-1 arithmetic
// block: per-segment push/pop and the decimal/ASCII adjust instructions
// (spec §4.3, first dispatch row; §9 open question 4).
var segAdjustTable = map[byte]string{
	0x06: "push es",
	0x07: "pop es",
	0x0E: "push cs",
	0x0F: "pop cs",
	0x16: "push ss",
	0x17: "pop ss",
	0x1E: "push ds",
	0x1F: "pop ds",
	0x27: "daa",
	0x2F: "das",
	0x37: "aaa",
	0x3F: "aas",
}

// pushfTable covers the `100111xx` flag/accumulator instructions.
var pushfTable = map[byte]string{
	0x9C: "pushf",
	0x9D: "popf",
	0x9E: "sahf",
	0x9F: "lahf",
}

// flagSetTable covers the `11111000`-`11111101` single-flag instructions.
var flagSetTable = map[byte]string{
	0xF8: "clc",
	0xF9: "stc",
	0xFA: "cli",
	0xFB: "sti",
	0xFC: "cld",
	0xFD: "std",
}

// Decoder is the state-free routine that turns a byte stream into
// Instruction records: it reads a prefix run, dispatches on the primary
// opcode byte, and extracts whatever ModR/M, displacement, and immediate
// bytes that opcode's encoding calls for.
//
// A Decoder optionally drives a Simulator: when one is attached, every
// mov-family write the spec models is applied and its trace Update is
// retrievable with LastUpdate after each Decode call.
type Decoder struct {
	cursor *Cursor
	logger *log.Logger
	sim    *Simulator

	lastUpdate *Update
}

// NewDecoder returns a Decoder reading from cursor. A nil logger disables
// anomaly logging; a nil Simulator disables register simulation.
func NewDecoder(cursor *Cursor, logger *log.Logger, sim *Simulator) *Decoder {
	return &Decoder{cursor: cursor, logger: logger, sim: sim}
}

// LastUpdate returns the Update produced by the most recent Decode call,
// or nil if that instruction was not a simulated mov or no Simulator is
// attached.
func (d *Decoder) LastUpdate() *Update {
	return d.lastUpdate
}

// segmentOverrideFromByte reports whether b matches the `0b001xx110`
// segment-override prefix pattern, and which segment register it names.
func segmentOverrideFromByte(b byte) (string, bool) {
	if b&0xE7 != 0x26 {
		return "", false
	}
	return segmentRegisters[(b>>3)&0x03], true
}

// consumePrefixes implements spec §4.3 step 1: it advances past any run
// of lock and segment-override prefix bytes, recording at most one of
// each. A later override among several wins, per the §9 open-question
// decision; that anomaly is logged at debug level.
func (d *Decoder) consumePrefixes() (lock bool, seg string, err error) {
	for {
		b, err := d.cursor.Peek(0)
		if err != nil {
			return lock, seg, err
		}

		if b == 0xF0 {
			lock = true
			d.cursor.Advance(1)
			continue
		}

		if name, ok := segmentOverrideFromByte(b); ok {
			if seg != "" && d.logger != nil {
				d.logger.Debug("multiple segment override prefixes, last one wins",
					log.String("previous", seg), log.String("next", name),
					log.Int("offset", d.cursor.Position()))
			}
			seg = name
			d.cursor.Advance(1)
			continue
		}

		return lock, seg, nil
	}
}

// Decode decodes one instruction starting at the cursor's current
// position and advances the cursor past it. It returns ErrTruncated if
// the instruction's encoding runs past the end of input, or an
// *UndecodableOpcodeError if no dispatch pattern matches the primary
// byte after prefixes are consumed.
func (d *Decoder) Decode() (Instruction, error) {
	offset := d.cursor.Position()
	d.lastUpdate = nil

	lock, seg, err := d.consumePrefixes()
	if err != nil {
		return Instruction{}, err
	}

	primaryOffset := d.cursor.Position()
	text, length, isJump, target, err := d.decodeOpcode(seg, primaryOffset)
	if err != nil {
		return Instruction{}, err
	}
	if isJump && d.logger != nil && !ShortJumpMnemonics.Contains(text) {
		d.logger.Debug("jump record produced a mnemonic outside the short-jump set",
			log.String("mnemonic", text), log.Int("offset", offset))
	}
	if lock {
		text = "lock " + text
	}

	d.cursor.Advance(length)
	return Instruction{Offset: offset, Text: text, IsJump: isJump, Target: target}, nil
}

// decodeOpcode dispatches on the primary byte at the cursor's current
// position per the table in spec §4.3, after prefixes have already been
// consumed. endBase is the offset of the byte at cursor position 0,
// used to compute absolute jump targets.
func (d *Decoder) decodeOpcode(seg string, endBase int) (text string, length int, isJump bool, target int, err error) {
	primary, err := d.cursor.Peek(0)
	if err != nil {
		return "", 0, false, 0, err
	}

	switch {
	case primary == 0xF3: // rep prefix
		inner, innerLen, _, _, err := d.decodeAt(1, seg, endBase+1)
		if err != nil {
			return "", 0, false, 0, err
		}
		return "rep " + inner, 1 + innerLen, false, 0, nil

	case segAdjustTable[primary] != "" && primary < 0x40:
		return segAdjustTable[primary], 1, false, 0, nil

	case primary < 0x40:
		switch primary & 0x07 {
		case 0, 1, 2, 3:
			text, length, err = decodeGroup1RegRM(d.cursor, primary, seg)
		case 4, 5:
			text, length, err = decodeGroup1ImmAcc(d.cursor, primary)
		default:
			err = &UndecodableOpcodeError{Byte: primary, Offset: endBase}
		}
		return text, length, false, 0, err

	case primary&0xF0 == 0x40: // inc/dec reg
		reg := int(primary & 0x07)
		if primary&0x08 == 0 {
			return "inc " + wordRegisters[reg], 1, false, 0, nil
		}
		return "dec " + wordRegisters[reg], 1, false, 0, nil

	case primary&0xF0 == 0x50: // push/pop reg
		reg := int(primary & 0x07)
		if primary&0x08 == 0 {
			return "push " + wordRegisters[reg], 1, false, 0, nil
		}
		return "pop " + wordRegisters[reg], 1, false, 0, nil

	case primary&0xF0 == 0x70: // conditional short jump
		mnemonic := conditionalJumpMnemonic(primary)
		text, tgt, length, err := decodeRel8Jump(d.cursor, mnemonic, endBase+2)
		return text, length, true, tgt, err

	case primary&0xFC == 0x80: // group-1 imm->r/m
		text, length, err = decodeGroup1ImmRM(d.cursor, primary, seg)
		return text, length, false, 0, err

	case primary&0xFC == 0x84: // test/xchg r/m+reg
		return d.decodeTestXchg(primary, seg)

	case primary&0xFC == 0x88: // mov r/m+reg
		return d.decodeMovRegRM(primary, seg)

	case primary == 0x8C || primary == 0x8E:
		return d.decodeMovSegRM(primary, seg)

	case primary == 0x8D: // lea
		return d.decodeLea(seg)

	case primary == 0x8F: // pop r/m
		return d.decodePopRM(seg)

	case primary&0xF8 == 0x90: // xchg ax, reg
		reg := int(primary & 0x07)
		return "xchg ax, " + wordRegisters[reg], 1, false, 0, nil

	case primary == 0x98:
		return "cbw", 1, false, 0, nil
	case primary == 0x99:
		return "cwd", 1, false, 0, nil

	case primary == 0x9A: // call far immediate
		return d.decodeFarPointer("call")

	case primary == 0x9B:
		return "wait", 1, false, 0, nil

	case pushfTable[primary] != "":
		return pushfTable[primary], 1, false, 0, nil

	case primary&0xFC == 0xA0: // mov acc <-> direct memory
		return d.decodeMovAccMem(primary, seg)

	case primary&0xFE == 0xA4, primary&0xFE == 0xA6, primary&0xFE == 0xAA,
		primary&0xFE == 0xAC, primary&0xFE == 0xAE:
		mnemonic, ok := stringOpMnemonic(primary)
		if !ok {
			return "", 0, false, 0, &UndecodableOpcodeError{Byte: primary, Offset: endBase}
		}
		return mnemonic, 1, false, 0, nil

	case primary&0xFE == 0xA8: // test acc, imm
		return d.decodeTestAccImm(primary)

	case primary&0xF0 == 0xB0: // mov reg, imm
		return d.decodeMovRegImm(primary, endBase)

	case primary == 0xC2:
		imm, err := d.readImm16(1)
		if err != nil {
			return "", 0, false, 0, err
		}
		return "ret " + strconv.FormatUint(uint64(imm), 10), 3, false, 0, nil
	case primary == 0xC3:
		return "ret", 1, false, 0, nil

	case primary == 0xC4:
		return d.decodeLesLds("les", seg)
	case primary == 0xC5:
		return d.decodeLesLds("lds", seg)

	case primary&0xFE == 0xC6: // mov imm -> r/m
		return d.decodeMovImmRM(primary, seg)

	case primary == 0xCA:
		imm, err := d.readImm16(1)
		if err != nil {
			return "", 0, false, 0, err
		}
		return "retf " + strconv.FormatUint(uint64(imm), 10), 3, false, 0, nil
	case primary == 0xCB:
		return "retf", 1, false, 0, nil

	case primary == 0xCC:
		return "int3", 1, false, 0, nil
	case primary == 0xCD:
		b, err := d.cursor.Peek(1)
		if err != nil {
			return "", 0, false, 0, err
		}
		return "int " + strconv.FormatUint(uint64(b), 10), 2, false, 0, nil
	case primary == 0xCE:
		return "into", 1, false, 0, nil
	case primary == 0xCF:
		return "iret", 1, false, 0, nil

	case primary&0xFC == 0xD0: // shift/rotate
		text, length, err = decodeShiftRotate(d.cursor, primary, seg)
		return text, length, false, 0, err

	case primary == 0xD4:
		return "aam", 2, false, 0, nil
	case primary == 0xD5:
		return "aad", 2, false, 0, nil
	case primary == 0xD7:
		return "xlat", 1, false, 0, nil

	case primary&0xFC == 0xE0: // loopnz/loopz/loop/jcxz
		mnemonic := loopFamilyMnemonic(primary)
		text, tgt, length, err := decodeRel8Jump(d.cursor, mnemonic, endBase+2)
		return text, length, true, tgt, err

	case primary&0xFC == 0xE4: // in/out imm8
		text, length, err = decodeInOutImm8(d.cursor, primary)
		return text, length, false, 0, err

	case primary&0xFE == 0xE8: // call/jmp near direct
		mnemonic := "call"
		if primary&0x01 != 0 {
			mnemonic = "jmp"
		}
		text, length, err = decodeNearRel16(d.cursor, mnemonic, endBase+3)
		return text, length, false, 0, err

	case primary == 0xEA: // jmp far direct
		return d.decodeFarPointer("jmp")

	case primary == 0xEB: // jmp short
		text, tgt, length, err := decodeRel8Jump(d.cursor, "jmp", endBase+2)
		return text, length, true, tgt, err

	case primary&0xFC == 0xEC: // in/out via DX
		return decodeInOutDX(primary), 1, false, 0, nil

	case primary == 0xF4:
		return "hlt", 1, false, 0, nil
	case primary == 0xF5:
		return "cmc", 1, false, 0, nil

	case primary&0xFE == 0xF6: // unary group
		text, length, err = decodeUnaryGroup(d.cursor, primary, seg)
		return text, length, false, 0, err

	case flagSetTable[primary] != "":
		return flagSetTable[primary], 1, false, 0, nil

	case primary&0xFE == 0xFE: // inc/dec/call/jmp/push r/m
		text, length, err = decodeGroupFF(d.cursor, primary, seg)
		return text, length, false, 0, err
	}

	return "", 0, false, 0, &UndecodableOpcodeError{Byte: primary, Offset: endBase}
}

// decodeAt decodes the instruction whose primary byte sits k bytes past
// the cursor's current position, without moving the cursor. It is used
// by the rep-prefix case to recurse into the following string
// instruction.
func (d *Decoder) decodeAt(k int, seg string, endBase int) (string, int, bool, int, error) {
	shifted := &Cursor{data: d.cursor.data, pos: d.cursor.pos + k}
	saved := d.cursor
	d.cursor = shifted
	text, length, isJump, target, err := d.decodeOpcode(seg, endBase)
	d.cursor = saved
	return text, length, isJump, target, err
}

func (d *Decoder) readImm16(base int) (uint16, error) {
	lo, err := d.cursor.Peek(base)
	if err != nil {
		return 0, err
	}
	hi, err := d.cursor.Peek(base + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (d *Decoder) decodeTestXchg(primary byte, seg string) (string, int, bool, int, error) {
	w := primary&0x01 != 0
	mnemonic := "test"
	if primary&0x02 != 0 {
		mnemonic = "xchg"
	}

	m, disp, modrmLen, err := readModRM(d.cursor, 1)
	if err != nil {
		return "", 0, false, 0, err
	}
	rmText := formatRM(m, disp, w, seg, false)
	regText := registerName(int(m.Reg), w)
	return mnemonic + " " + rmText + ", " + regText, 1 + modrmLen, false, 0, nil
}

func (d *Decoder) decodeMovRegRM(primary byte, seg string) (string, int, bool, int, error) {
	dBit := primary&0x02 != 0
	w := primary&0x01 != 0

	m, disp, modrmLen, err := readModRM(d.cursor, 1)
	if err != nil {
		return "", 0, false, 0, err
	}
	length := 1 + modrmLen
	regText := registerName(int(m.Reg), w)
	rmText := formatRM(m, disp, w, seg, false)

	var text string
	var dstReg, srcReg int
	var dstIsReg, srcIsReg bool
	if dBit {
		text = "mov " + regText + ", " + rmText
		dstReg, dstIsReg = int(m.Reg), true
		srcReg, srcIsReg = int(m.RM), m.Mode == ModReg
	} else {
		text = "mov " + rmText + ", " + regText
		dstReg, dstIsReg = int(m.RM), m.Mode == ModReg
		srcReg, srcIsReg = int(m.Reg), true
	}

	if d.sim != nil && dstIsReg && srcIsReg {
		upd := d.sim.MovRegToReg(dstReg, srcReg, w)
		d.lastUpdate = &upd
	}

	return text, length, false, 0, nil
}

func (d *Decoder) decodeMovSegRM(primary byte, seg string) (string, int, bool, int, error) {
	toSeg := primary&0x02 != 0

	m, disp, modrmLen, err := readModRM(d.cursor, 1)
	if err != nil {
		return "", 0, false, 0, err
	}
	segText := segmentRegisters[m.Reg&0x03]
	rmText := formatRM(m, disp, true, seg, false)

	if toSeg {
		return "mov " + segText + ", " + rmText, 1 + modrmLen, false, 0, nil
	}
	return "mov " + rmText + ", " + segText, 1 + modrmLen, false, 0, nil
}

func (d *Decoder) decodeLea(seg string) (string, int, bool, int, error) {
	m, disp, modrmLen, err := readModRM(d.cursor, 1)
	if err != nil {
		return "", 0, false, 0, err
	}
	regText := registerName(int(m.Reg), true)
	rmText := formatRM(m, disp, true, seg, false)
	return "lea " + regText + ", " + rmText, 1 + modrmLen, false, 0, nil
}

func (d *Decoder) decodePopRM(seg string) (string, int, bool, int, error) {
	m, disp, modrmLen, err := readModRM(d.cursor, 1)
	if err != nil {
		return "", 0, false, 0, err
	}
	rmText := formatRM(m, disp, true, seg, m.Mode != ModReg)
	return "pop " + rmText, 1 + modrmLen, false, 0, nil
}

func (d *Decoder) decodeFarPointer(mnemonic string) (string, int, bool, int, error) {
	offset, err := d.readImm16(1)
	if err != nil {
		return "", 0, false, 0, err
	}
	segment, err := d.readImm16(3)
	if err != nil {
		return "", 0, false, 0, err
	}
	text := mnemonic + " " + strconv.FormatUint(uint64(segment), 10) + ":" + strconv.FormatUint(uint64(offset), 10)
	return text, 5, false, 0, nil
}

func (d *Decoder) decodeMovAccMem(primary byte, seg string) (string, int, bool, int, error) {
	toMem := primary&0x02 != 0
	w := primary&0x01 != 0

	addr, err := d.readImm16(1)
	if err != nil {
		return "", 0, false, 0, err
	}

	acc := "al"
	if w {
		acc = "ax"
	}

	var segPrefix string
	if seg != "" {
		segPrefix = seg + ":"
	}
	memText := "[" + segPrefix + strconv.FormatUint(uint64(addr), 10) + "]"

	if toMem {
		return "mov " + memText + ", " + acc, 3, false, 0, nil
	}
	return "mov " + acc + ", " + memText, 3, false, 0, nil
}

func (d *Decoder) decodeTestAccImm(primary byte) (string, int, bool, int, error) {
	w := primary&0x01 != 0
	acc := "al"
	length := 2
	var imm uint16
	if w {
		v, err := d.readImm16(1)
		if err != nil {
			return "", 0, false, 0, err
		}
		imm = v
		acc = "ax"
		length = 3
	} else {
		b, err := d.cursor.Peek(1)
		if err != nil {
			return "", 0, false, 0, err
		}
		imm = uint16(b)
	}
	return "test " + acc + ", " + strconv.FormatUint(uint64(imm), 10), length, false, 0, nil
}

func (d *Decoder) decodeMovRegImm(primary byte, endBase int) (string, int, bool, int, error) {
	w := primary&0x08 != 0
	reg := int(primary & 0x07)

	var imm uint16
	length := 1
	if w {
		v, err := d.readImm16(1)
		if err != nil {
			return "", 0, false, 0, err
		}
		imm = v
		length += 2
	} else {
		b, err := d.cursor.Peek(1)
		if err != nil {
			return "", 0, false, 0, err
		}
		imm = uint16(b)
		length++
	}

	dst := registerName(reg, w)
	text := "mov " + dst + ", " + strconv.FormatUint(uint64(imm), 10)

	if d.sim != nil {
		upd := d.sim.MovImmToReg(reg, w, imm)
		d.lastUpdate = &upd
	}

	return text, length, false, 0, nil
}

func (d *Decoder) decodeLesLds(mnemonic, seg string) (string, int, bool, int, error) {
	m, disp, modrmLen, err := readModRM(d.cursor, 1)
	if err != nil {
		return "", 0, false, 0, err
	}
	regText := registerName(int(m.Reg), true)
	rmText := formatRM(m, disp, true, seg, false)
	return mnemonic + " " + regText + ", " + rmText, 1 + modrmLen, false, 0, nil
}

func (d *Decoder) decodeMovImmRM(primary byte, seg string) (string, int, bool, int, error) {
	w := primary&0x01 != 0

	m, disp, modrmLen, err := readModRM(d.cursor, 1)
	if err != nil {
		return "", 0, false, 0, err
	}
	length := 1 + modrmLen

	var imm uint16
	if w {
		v, err := d.readImm16(length)
		if err != nil {
			return "", 0, false, 0, err
		}
		imm = v
		length += 2
	} else {
		b, err := d.cursor.Peek(length)
		if err != nil {
			return "", 0, false, 0, err
		}
		imm = uint16(b)
		length++
	}

	rmText := formatRM(m, disp, w, seg, false)
	return "mov " + rmText + ", " + sizedImmediate(imm, w, true), length, false, 0, nil
}
