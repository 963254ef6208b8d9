// Package x86 decodes an 8086/8088 instruction stream into rendered
// assembly text and, for the mov-family subset the spec models, tracks
// the register-level side effects of that decode.
//
// The package is split along the encoding's own structure: Cursor walks
// the raw bytes, ModRM/formatRM/formatMemory render operands, one file
// per opcode family (group1.go, jumps.go, shifts.go, strings_io.go)
// implements that family's dispatch rules, and Decoder ties prefix
// handling and family dispatch together into one Decode call per
// instruction.
//
// Example usage:
//
//	cursor := x86.NewCursor(data)
//	sim := x86.NewSimulator()
//	dec := x86.NewDecoder(cursor, logger, sim)
//
//	for !cursor.Done() {
//		instr, err := dec.Decode()
//		if err != nil {
//			break
//		}
//		fmt.Println(instr.Text)
//	}
package x86
