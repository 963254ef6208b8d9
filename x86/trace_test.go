package x86_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/retrodis/dis8086/assert"
	"github.com/retrodis/dis8086/x86"
)

func TestSimulatorMovImmToRegWide(t *testing.T) {
	sim := x86.NewSimulator()
	upd := sim.MovImmToReg(1, true, 12)
	assert.Equal(t, "cx", upd.DstText)
	assert.Equal(t, "12", upd.SrcText)
	assert.Equal(t, "cx", upd.WordReg)
	assert.Equal(t, uint16(0), upd.Prev)
	assert.Equal(t, uint16(12), upd.New)
	assert.Equal(t, uint16(12), sim.Registers().Word(1))
}

func TestSimulatorMovImmToRegLowHalfPreservesHigh(t *testing.T) {
	sim := x86.NewSimulator()
	sim.Registers().SetWord(1, 0xFF00)
	upd := sim.MovImmToReg(1, false, 0x0C) // mov cl, 12
	assert.Equal(t, "cl", upd.DstText)
	assert.Equal(t, uint16(0xFF00), upd.Prev)
	assert.Equal(t, uint16(0xFF0C), upd.New)
	assert.Equal(t, uint16(0xFF0C), sim.Registers().Word(1))
}

func TestSimulatorMovImmToRegHighHalfPreservesLow(t *testing.T) {
	sim := x86.NewSimulator()
	sim.Registers().SetWord(1, 0x00AB)
	upd := sim.MovImmToReg(5, false, 0x12) // mov ch, 0x12 (reg index 5)
	assert.Equal(t, "ch", upd.DstText)
	assert.Equal(t, uint16(0x00AB), upd.Prev)
	assert.Equal(t, uint16(0x12AB), upd.New)
}

func TestSimulatorMovRegToReg(t *testing.T) {
	sim := x86.NewSimulator()
	sim.Registers().SetWord(3, 0x1234) // bx
	upd := sim.MovRegToReg(1, 3, true) // mov cx, bx
	assert.Equal(t, "cx", upd.DstText)
	assert.Equal(t, "bx", upd.SrcText)
	assert.Equal(t, uint16(0x1234), upd.New)
	assert.Equal(t, uint16(0x1234), sim.Registers().Word(1))
}

func TestUpdateStringFormat(t *testing.T) {
	upd := x86.Update{DstText: "cl", SrcText: "12", WordReg: "cx", Prev: 0, New: 0xC}
	assert.Equal(t, "mov cl, 12 ; cx:0x0->0xc", upd.String())
}

func TestSimulatorSummary(t *testing.T) {
	sim := x86.NewSimulator()
	sim.Registers().SetWord(3, 5)
	var buf bytes.Buffer
	err := sim.Summary(&buf)
	assert.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Final registers:\n"))
	assert.Contains(t, out, "bx: 0x0005 (5)")
	assert.Contains(t, out, "ax: 0x0000 (0)")
}
