package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/ChizhovVadim/CounterLite/pkg/common"
)

var ErrTerminalPosition = errors.New("position has no legal moves")

// Engine selects moves for one game at a time. Independent engines may search concurrently.
type Engine struct {
	Logger zerolog.Logger
	// PersistTable keeps table entries between calls to Search instead of clearing them.
	PersistTable bool
	evalBuilder  func() interface{}
	progress     func(SearchInfo)
	evaluator    Evaluator
	timeManager  TimeManager
	transTable   TransTable
	config       SearchConfig
	mainLine     mainLine
	stats        SearchStats
	start        time.Time
	rootDepth    int
	stack        [stackSize]struct {
		position     common.Position
		moveList     [common.MaxMoves]common.Move
		orderedMoves [common.MaxMoves]orderedMove
		iterator     moveIterator
		pv           pv
	}
}

type pv struct {
	items [stackSize]common.Move
	size  int
}

type mainLine struct {
	moves []common.Move
	score int
	depth int
}

func NewEngine(evalBuilder func() interface{}) *Engine {
	return &Engine{
		Logger:      zerolog.Nop(),
		evalBuilder: evalBuilder,
	}
}

// Prepare allocates the table and the evaluator for the given config.
func (e *Engine) Prepare(config SearchConfig) {
	if e.transTable == nil || e.transTable.Capacity() != config.TableCapacity {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable(config.TableCapacity)
	}
	if e.evaluator == nil {
		e.evaluator = e.buildEvaluator()
	}
}

// SelectMove searches p with the limits of the difficulty and returns the best move.
func (e *Engine) SelectMove(ctx context.Context, p *common.Position, d Difficulty) (common.Move, error) {
	var info, err = e.Search(ctx, SearchParams{
		Position: p,
		Config:   ConfigFor(d),
	})
	if err != nil {
		return common.MoveEmpty, err
	}
	return info.BestMove(), nil
}

func (e *Engine) Search(ctx context.Context, searchParams SearchParams) (SearchInfo, error) {
	var p, config = searchParams.Position, searchParams.Config
	if err := config.Validate(); err != nil {
		return SearchInfo{}, err
	}
	e.start = time.Now()
	e.stats = SearchStats{}
	e.rootDepth = 0

	var ml = p.GenerateLegalMoves(nil)
	if len(ml) == 0 {
		return SearchInfo{}, fmt.Errorf("%w: %v", ErrTerminalPosition, p.String())
	}
	e.mainLine = mainLine{moves: []common.Move{ml[0]}}
	if len(ml) == 1 {
		e.Logger.Debug().
			Str("bestmove", ml[0].String()).
			Msg("single-legal-move")
		return e.currentSearchResult(), nil
	}

	e.config = config
	e.progress = searchParams.Progress
	e.Prepare(config)
	if e.PersistTable {
		e.transTable.IncGeneration()
	} else {
		e.transTable.Clear()
	}
	e.timeManager = newSimpleTimeManager(ctx, e.start, config.TimeBudget)
	defer e.timeManager.Close()
	e.stack[0].position = *p

	iterativeDeepening(e)

	var result = e.currentSearchResult()
	e.Logger.Debug().
		Int("depth", result.Depth).
		Int64("nodes", result.Stats.Nodes).
		Int64("cutoffs", result.Stats.Cutoffs).
		Int64("tthits", result.Stats.TableHits).
		Dur("elapsed", result.Stats.Elapsed).
		Strs("pv", lo.Map(result.MainLine, func(m common.Move, _ int) string {
			return m.String()
		})).
		Msg("search-finished")
	return result, nil
}

// Clear forgets everything learned in the previous game.
func (e *Engine) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
}

func (e *Engine) currentSearchResult() SearchInfo {
	var stats = e.stats
	stats.Elapsed = time.Since(e.start)
	return SearchInfo{
		Depth:    e.mainLine.depth,
		MainLine: e.mainLine.moves,
		Score:    newUciScore(e.mainLine.score),
		Stats:    stats,
	}
}

func (pv *pv) clear() {
	pv.size = 0
}

func (pv *pv) assign(m common.Move, child *pv) {
	pv.size = 1
	pv.items[0] = m
	if child.size > 0 {
		pv.size += child.size
		copy(pv.items[1:], child.items[:child.size])
	}
}

func (pv *pv) toSlice() []common.Move {
	var result = make([]common.Move, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}

func (e *Engine) buildEvaluator() Evaluator {
	if evaluator, ok := e.evalBuilder().(Evaluator); ok {
		return evaluator
	}
	panic(errors.New("bad eval builder"))
}
