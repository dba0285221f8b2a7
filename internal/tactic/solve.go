package tactic

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/ChizhovVadim/CounterLite/pkg/engine"
)

type Engine interface {
	Clear()
	Search(ctx context.Context, searchParams engine.SearchParams) (engine.SearchInfo, error)
}

// SolveTactic searches every test with config and counts the tests where a best move was chosen.
func SolveTactic(
	ctx context.Context,
	logger zerolog.Logger,
	eng Engine,
	config engine.SearchConfig,
	tests []EpdItem,
) (int, error) {
	var start = time.Now()
	var solved int
	for i := range tests {
		var test = &tests[i]
		eng.Clear()
		var searchInfo, err = eng.Search(ctx, engine.SearchParams{
			Position: &test.position,
			Config:   config,
		})
		if err != nil {
			return solved, err
		}
		var passed = lo.Contains(test.bestMoves, searchInfo.BestMove())
		if passed {
			solved++
		}
		logger.Info().
			Str("test", test.content).
			Str("bestmove", searchInfo.BestMove().String()).
			Int("depth", searchInfo.Depth).
			Int64("nodes", searchInfo.Stats.Nodes).
			Bool("passed", passed).
			Int("solved", solved).
			Int("total", i+1).
			Msg("tactic test")
	}
	logger.Info().
		Int("solved", solved).
		Int("total", len(tests)).
		Dur("elapsed", time.Since(start)).
		Msg("tactic finished")
	return solved, nil
}
