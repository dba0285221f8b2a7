package engine

import (
	"github.com/ChizhovVadim/CounterLite/pkg/common"
)

const (
	boundLower = 1 << iota
	boundUpper
)

const boundExact = boundLower | boundUpper

// bound == 0 marks an empty slot
type transEntry struct {
	key        uint64
	move       common.Move
	score      int32
	depth      int16
	bound      uint8
	generation uint16
}

type transTable struct {
	entries    []transEntry
	generation uint16
}

func newTransTable(capacity int) *transTable {
	return &transTable{
		entries: make([]transEntry, capacity),
	}
}

func (tt *transTable) Capacity() int {
	return len(tt.entries)
}

// IncGeneration ages every stored entry so that they lose replacement priority.
func (tt *transTable) IncGeneration() {
	tt.generation++
}

func (tt *transTable) Clear() {
	tt.generation = 0
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

func (tt *transTable) index(key uint64) int {
	return int(key % uint64(len(tt.entries)))
}

func (tt *transTable) Read(key uint64) (depth, score, bound int, move common.Move, ok bool) {
	var entry = &tt.entries[tt.index(key)]
	if entry.bound == 0 || entry.key != key {
		return
	}
	entry.generation = tt.generation
	return int(entry.depth), int(entry.score), int(entry.bound), entry.move, true
}

func (tt *transTable) Update(key uint64, depth, score, bound int, move common.Move) {
	var entry = &tt.entries[tt.index(key)]
	var replace = entry.bound == 0 ||
		entry.key == key ||
		entry.generation != tt.generation ||
		depth >= int(entry.depth)
	if !replace {
		return
	}
	*entry = transEntry{
		key:        key,
		move:       move,
		score:      int32(score),
		depth:      int16(depth),
		bound:      uint8(bound),
		generation: tt.generation,
	}
}
