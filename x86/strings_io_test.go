package x86

import (
	"testing"

	"github.com/retrodis/dis8086/assert"
)

func TestStringOpMnemonic(t *testing.T) {
	text, ok := stringOpMnemonic(0xA4)
	assert.True(t, ok)
	assert.Equal(t, "movsb", text)

	text, ok = stringOpMnemonic(0xA5)
	assert.True(t, ok)
	assert.Equal(t, "movsw", text)

	text, ok = stringOpMnemonic(0xAA)
	assert.True(t, ok)
	assert.Equal(t, "stosb", text)

	text, ok = stringOpMnemonic(0xAF)
	assert.True(t, ok)
	assert.Equal(t, "scasw", text)
}

func TestStringOpMnemonicUnknown(t *testing.T) {
	_, ok := stringOpMnemonic(0x00)
	assert.False(t, ok)
}

func TestDecodeInOutImm8(t *testing.T) {
	c := NewCursor([]byte{0xE4, 0x20})
	text, length, err := decodeInOutImm8(c, 0xE4)
	assert.NoError(t, err)
	assert.Equal(t, "in al, 32", text)
	assert.Equal(t, 2, length)
}

func TestDecodeInOutImm8Out(t *testing.T) {
	c := NewCursor([]byte{0xE7, 0x20})
	text, length, err := decodeInOutImm8(c, 0xE7)
	assert.NoError(t, err)
	assert.Equal(t, "out 32, ax", text)
	assert.Equal(t, 2, length)
}

func TestDecodeInOutDX(t *testing.T) {
	assert.Equal(t, "in al, dx", decodeInOutDX(0xEC))
	assert.Equal(t, "out dx, al", decodeInOutDX(0xEE))
	assert.Equal(t, "in ax, dx", decodeInOutDX(0xED))
	assert.Equal(t, "out dx, ax", decodeInOutDX(0xEF))
}
