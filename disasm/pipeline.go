// Package disasm ties the Byte Cursor, Decoder, Register Simulator, Label
// Resolver, and Emitter into one pipeline that first decodes the whole
// input and then emits it, producing the external behavior spec.md §6
// describes.
package disasm

import (
	"fmt"
	"io"

	"github.com/retrodis/dis8086/log"
	"github.com/retrodis/dis8086/x86"
)

// Run decodes every instruction in the byte stream read from r and writes
// the rendered program, interleaved labels, and simulator trace to w. Any
// records decoded before a Truncated or UndecodableOpcode failure are
// still fully emitted (spec.md §4.6); the failure itself is returned so
// the caller can map it to a diagnostic message and exit code.
//
// logger receives decode-time anomaly diagnostics at log.DebugLevel (spec
// §9 open questions); a nil logger disables them.
func Run(r io.Reader, w io.Writer, logger *log.Logger) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	cursor := x86.NewCursor(data)
	sim := x86.NewSimulator()
	dec := x86.NewDecoder(cursor, logger, sim)

	var program x86.Program
	updates := make(map[int]x86.Update, len(data))
	var decodeErr error

	for !cursor.Done() {
		instr, decErr := dec.Decode()
		if decErr != nil {
			decodeErr = decErr
			break
		}
		program = append(program, instr)
		if u := dec.LastUpdate(); u != nil {
			updates[instr.Offset] = *u
		}
	}

	emitter := NewEmitter(w, program)
	if err := emitter.Banner(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	for _, instr := range program {
		var update *x86.Update
		if u, ok := updates[instr.Offset]; ok {
			update = &u
		}
		if err := emitter.Instruction(instr, update); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if err := emitter.Finish(sim); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return decodeErr
}
