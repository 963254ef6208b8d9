package x86

import (
	"fmt"
	"io"
)

// Update describes one register write applied by the Simulator. Only
// mov-family instructions produce an Update; every other decoded
// instruction leaves the register file untouched.
type Update struct {
	DstText string // rendered destination operand, e.g. "cl" or "cx"
	SrcText string // rendered source operand, e.g. "12" or "bx"
	WordReg string // name of the word register backing the written half
	Prev    uint16 // word-register value before the write
	New     uint16 // word-register value after the write
}

// String renders the Update in the simulator's trace-line form:
// "mov <dst>, <src or imm> ; <wordReg>:0x<prev>->0x<new>", with prev/new
// printed as unpadded hex, matching the source's `%01hx` formatting.
func (u Update) String() string {
	return fmt.Sprintf("mov %s, %s ; %s:0x%x->0x%x", u.DstText, u.SrcText, u.WordReg, u.Prev, u.New)
}

// Simulator tracks the partial register-level side effects the spec
// models: mov reg,imm and mov reg,reg, nothing else. Every other decoded
// instruction is rendered but never reaches the simulator.
type Simulator struct {
	regs *RegisterFile
}

// NewSimulator returns a Simulator with all eight registers zeroed.
func NewSimulator() *Simulator {
	return &Simulator{regs: NewRegisterFile()}
}

// Registers exposes the underlying register file for inspection.
func (s *Simulator) Registers() *RegisterFile {
	return s.regs
}

// MovImmToReg applies a `mov reg, imm` write and returns the trace Update.
// wide selects a full 16-bit write; otherwise reg is a byte-register index
// and only the corresponding half of its word register changes.
func (s *Simulator) MovImmToReg(reg int, wide bool, imm uint16) Update {
	dst := registerName(reg, wide)
	src := fmt.Sprintf("%d", imm)
	return s.write(reg, wide, dst, src, imm)
}

// MovRegToReg applies a `mov reg, reg` write, reading the source value
// from srcReg using the same byte/word indexing rule as the destination.
func (s *Simulator) MovRegToReg(dstReg, srcReg int, wide bool) Update {
	dst := registerName(dstReg, wide)
	src := registerName(srcReg, wide)

	var value uint16
	if wide {
		value = s.regs.Word(srcReg)
	} else {
		value = uint16(s.regs.Byte(srcReg))
	}

	return s.write(dstReg, wide, dst, src, value)
}

// write performs the half/full register update shared by both mov forms
// and builds the resulting Update.
func (s *Simulator) write(reg int, wide bool, dstText, srcText string, value uint16) Update {
	wordReg := wordRegisterForHalf(reg)
	if wide {
		wordReg = wordRegisters[reg&7]
	}

	var prev uint16
	if wide {
		prev = s.regs.Word(reg)
		s.regs.SetWord(reg, value)
	} else {
		prev = s.regs.Word(reg & 3)
		s.regs.SetByte(reg, uint8(value))
	}

	var newVal uint16
	if wide {
		newVal = s.regs.Word(reg)
	} else {
		newVal = s.regs.Word(reg & 3)
	}

	return Update{DstText: dstText, SrcText: srcText, WordReg: wordReg, Prev: prev, New: newVal}
}

// Summary writes the final register dump: "Final registers:" followed by
// one "<name>: 0x<hex4> (<dec>)" line per word register, in A, C, D, B,
// SP, BP, SI, DI order.
func (s *Simulator) Summary(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Final registers:"); err != nil {
		return err
	}
	for reg, name := range wordRegisters {
		value := s.regs.Word(reg)
		if _, err := fmt.Fprintf(w, "%s: 0x%04x (%d)\n", name, value, value); err != nil {
			return err
		}
	}
	return nil
}
