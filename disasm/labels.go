package disasm

import (
	"fmt"
	"sort"

	"github.com/retrodis/dis8086/set"
	"github.com/retrodis/dis8086/x86"
)

// CollectLabels returns the sorted, deduplicated absolute jump targets
// referenced anywhere in program (spec §4.4). A target appearing on
// several jump records still contributes exactly one entry.
//
// Most programs only ever jump within their first 64 bytes, so targets in
// that range are deduped in a set.BitSet; targets reaching further out
// (or the rare negative target from a backward rel8 at offset 0) fall
// back to the map-backed set.Set[int].
func CollectLabels(program x86.Program) []int {
	var small set.BitSet
	large := set.New[int]()

	for _, instr := range program {
		if !instr.IsJump {
			continue
		}
		if target := instr.Target; target >= 0 && target < 64 {
			small.Add(target)
		} else {
			large.Add(target)
		}
	}

	targets := small.ToSlice()
	targets = append(targets, large.ToSlice()...)
	sort.Ints(targets)
	return targets
}

// LabelInterleaver walks the label set alongside the instruction stream in
// offset order, producing the `label_<addr>:` lines the Emitter needs
// immediately before each matching instruction.
type LabelInterleaver struct {
	pending []int
}

// NewLabelInterleaver returns an interleaver primed with program's labels.
func NewLabelInterleaver(program x86.Program) *LabelInterleaver {
	return &LabelInterleaver{pending: CollectLabels(program)}
}

// Before returns the label lines that must be printed immediately before
// the instruction starting at offset: one for every pending target at or
// below offset. A target that never lands exactly on an instruction start
// — because it points mid-instruction, per spec §4.4 — is flushed here
// too, attached to the next instruction that reaches or passes it, rather
// than dropped.
func (li *LabelInterleaver) Before(offset int) []string {
	var lines []string
	for len(li.pending) > 0 && li.pending[0] <= offset {
		lines = append(lines, fmt.Sprintf("label_%d:", li.pending[0]))
		li.pending = li.pending[1:]
	}
	return lines
}

// Remaining returns label lines for any targets past the last decoded
// instruction's offset — out-of-range targets per spec §4.4 — to be
// printed once the instruction stream is exhausted.
func (li *LabelInterleaver) Remaining() []string {
	if len(li.pending) == 0 {
		return nil
	}
	lines := make([]string, len(li.pending))
	for i, addr := range li.pending {
		lines[i] = fmt.Sprintf("label_%d:", addr)
	}
	li.pending = nil
	return lines
}
