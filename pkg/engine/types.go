package engine

import (
	"time"

	"github.com/ChizhovVadim/CounterLite/pkg/common"
)

type UciScore struct {
	Centipawns int
	Mate       int
}

type SearchStats struct {
	Nodes       int64
	Cutoffs     int64
	TableProbes int64
	TableHits   int64
	Elapsed     time.Duration
}

type SearchInfo struct {
	Depth    int
	Score    UciScore
	MainLine []common.Move
	Stats    SearchStats
}

type SearchParams struct {
	Position *common.Position
	Config   SearchConfig
	// Progress is called after every completed depth.
	Progress func(SearchInfo)
}

// BestMove returns the first move of the main line or MoveEmpty.
func (si SearchInfo) BestMove() common.Move {
	if len(si.MainLine) == 0 {
		return common.MoveEmpty
	}
	return si.MainLine[0]
}

// Evaluator scores a position from the side to move.
type Evaluator interface {
	Evaluate(p *common.Position) int
}

type TimeManager interface {
	IsDone() bool
	OnIterationComplete(line mainLine)
	Close()
}

type TransTable interface {
	Capacity() int
	IncGeneration()
	Clear()
	Read(key uint64) (depth, score, bound int, move common.Move, found bool)
	Update(key uint64, depth, score, bound int, move common.Move)
}
