package disasm

import (
	"testing"

	"github.com/retrodis/dis8086/assert"
	"github.com/retrodis/dis8086/x86"
)

func TestCollectLabelsDedupsAndSorts(t *testing.T) {
	program := x86.Program{
		{Offset: 0, Text: "jne", IsJump: true, Target: 4},
		{Offset: 2, Text: "jmp", IsJump: true, Target: 0},
		{Offset: 4, Text: "jmp", IsJump: true, Target: 0},
		{Offset: 6, Text: "nop"},
	}
	labels := CollectLabels(program)
	assert.Equal(t, []int{0, 4}, labels)
}

func TestCollectLabelsMergesBitSetAndMapFallback(t *testing.T) {
	program := x86.Program{
		{Offset: 0, Text: "jne", IsJump: true, Target: 10},
		{Offset: 2, Text: "jmp", IsJump: true, Target: 500},
		{Offset: 4, Text: "jmp", IsJump: true, Target: 10},
		{Offset: 6, Text: "jmp", IsJump: true, Target: 63},
	}
	labels := CollectLabels(program)
	assert.Equal(t, []int{10, 63, 500}, labels)
}

func TestLabelInterleaverBeforeMatchesExactOffset(t *testing.T) {
	program := x86.Program{
		{Offset: 0, Text: "jne", IsJump: true, Target: 4},
		{Offset: 2, Text: "jmp", IsJump: true, Target: 0},
	}
	li := NewLabelInterleaver(program)

	assert.Equal(t, []string{"label_0:"}, li.Before(0))
	assert.Equal(t, []string(nil), li.Before(2))
	assert.Equal(t, []string{"label_4:"}, li.Remaining())
}

func TestLabelInterleaverBeforeFlushesMultiplePending(t *testing.T) {
	program := x86.Program{
		{Offset: 10, Text: "x", IsJump: true, Target: 1},
		{Offset: 11, Text: "y", IsJump: true, Target: 2},
	}
	li := NewLabelInterleaver(program)

	assert.Equal(t, []string{"label_1:", "label_2:"}, li.Before(10))
	assert.Equal(t, []string(nil), li.Remaining())
}

func TestLabelInterleaverRemainingClearsPending(t *testing.T) {
	program := x86.Program{
		{Offset: 0, Text: "jmp", IsJump: true, Target: 99},
	}
	li := NewLabelInterleaver(program)
	first := li.Remaining()
	assert.Equal(t, []string{"label_99:"}, first)
	assert.Equal(t, []string(nil), li.Remaining())
}
