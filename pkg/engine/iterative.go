package engine

import (
	"errors"
)

var errSearchTimeout = errors.New("search timeout")

func iterativeDeepening(e *Engine) {
	for depth := 1; depth <= e.config.MaxDepth; depth++ {
		if depth > 1 && e.timeManager.IsDone() {
			break
		}
		e.Logger.Debug().
			Int("depth", depth).
			Int64("nodes", e.stats.Nodes).
			Msg("deepening-iteratively")
		var line, ok = searchDepth(e, depth)
		if !ok {
			e.Logger.Debug().
				Int("depth", depth).
				Msg("iteration-discarded")
			break
		}
		e.onIterationComplete(line)
	}
}

// searchDepth reports false when the iteration was interrupted; its partial results are ignored.
func searchDepth(e *Engine, depth int) (line mainLine, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if r == errSearchTimeout {
				ok = false
				return
			}
			panic(r)
		}
	}()

	const height = 0
	e.rootDepth = depth
	var score = e.searchRoot(depth)
	return mainLine{
		depth: depth,
		score: score,
		moves: e.stack[height].pv.toSlice(),
	}, true
}

func (e *Engine) onIterationComplete(line mainLine) {
	e.mainLine = line
	e.timeManager.OnIterationComplete(line)
	e.Logger.Debug().
		Int("depth", line.depth).
		Int("score", line.score).
		Int64("nodes", e.stats.Nodes).
		Str("bestmove", line.moves[0].String()).
		Msg("iteration-complete")
	if e.progress != nil {
		e.progress(e.currentSearchResult())
	}
}
