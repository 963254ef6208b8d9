package x86

// Cursor walks a flat byte slice left to right, the way the decoder
// consumes an instruction stream: one opcode byte, then however many
// ModR/M, displacement, and immediate bytes that opcode demands.
//
// A Cursor never clamps or pads a short read. Any Peek past the end of
// the buffer fails with ErrTruncated, and the caller is expected to stop
// decoding the instruction in progress rather than substitute a filler
// byte.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data for sequential decoding starting at offset 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Peek returns the byte k positions past the current position without
// moving it. Peek(0) is the next byte that Advance(1) would consume.
func (c *Cursor) Peek(k int) (byte, error) {
	i := c.pos + k
	if i < 0 || i >= len(c.data) {
		return 0, ErrTruncated
	}
	return c.data[i], nil
}

// Advance moves the current position forward by n bytes. It does not
// validate that those bytes exist; the next Peek reports ErrTruncated
// if it reads past the end.
func (c *Cursor) Advance(n int) {
	c.pos += n
}

// Position returns the current absolute offset into the underlying
// buffer.
func (c *Cursor) Position() int {
	return c.pos
}

// Len returns the number of bytes remaining from the current position
// to the end of the buffer.
func (c *Cursor) Len() int {
	remaining := len(c.data) - c.pos
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Done reports whether the cursor has consumed the entire buffer.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.data)
}
