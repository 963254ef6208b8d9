package disasm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/retrodis/dis8086/x86"
)

// Emitter renders a decoded instruction stream to the output format spec.md
// §6 describes: a `bits 16` banner, labels interleaved immediately before
// the instructions that reach them, and a simulator trace line after any
// instruction that produced one.
type Emitter struct {
	w      io.Writer
	labels *LabelInterleaver
}

// NewEmitter returns an Emitter writing program's rendered form to w.
func NewEmitter(w io.Writer, program x86.Program) *Emitter {
	return &Emitter{w: w, labels: NewLabelInterleaver(program)}
}

// Banner writes the leading `bits 16` line, once, before the first
// instruction.
func (e *Emitter) Banner() error {
	_, err := fmt.Fprintln(e.w, "bits 16")
	return err
}

// Instruction writes one decoded record: any pending labels that land at
// or before its start offset, then the instruction text itself — with the
// jump target appended as " label_<N>" for jump records — then, if update
// is non-nil, the simulator trace line for the register write it made.
func (e *Emitter) Instruction(instr x86.Instruction, update *x86.Update) error {
	for _, label := range e.labels.Before(instr.Offset) {
		if _, err := fmt.Fprintln(e.w, label); err != nil {
			return err
		}
	}

	text := instr.Text
	if instr.IsJump {
		text += " label_" + strconv.Itoa(instr.Target)
	}
	if _, err := fmt.Fprintln(e.w, text); err != nil {
		return err
	}

	if update != nil {
		if _, err := fmt.Fprintln(e.w, update.String()); err != nil {
			return err
		}
	}
	return nil
}

// Finish writes any labels whose targets never aligned with a decoded
// instruction, and the simulator's final register dump.
func (e *Emitter) Finish(sim *x86.Simulator) error {
	for _, label := range e.labels.Remaining() {
		if _, err := fmt.Fprintln(e.w, label); err != nil {
			return err
		}
	}
	if sim != nil {
		if err := sim.Summary(e.w); err != nil {
			return err
		}
	}
	return nil
}
