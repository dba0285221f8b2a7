package arena

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CounterLite/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterLite/pkg/engine"
)

// Run plays the match and returns the score from the point of view of engine A.
func Run(
	ctx context.Context,
	logger zerolog.Logger,
	config Config,
) (Score, error) {
	logger.Info().Msg("arena started")
	defer logger.Info().Msg("arena finished")

	logger.Info().
		Int("NumCPU", runtime.NumCPU()).
		Int("GOMAXPROCS", runtime.GOMAXPROCS(0)).
		Int("gameConcurrency", config.Concurrency).
		Int("games", config.Games).
		Stringer("difficultyA", config.DifficultyA).
		Stringer("difficultyB", config.DifficultyB).
		Msg("arena config")

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)
	var score Score

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings(ctx, config.Games, gameInfos)
	})

	g.Go(func() error {
		score = showResults(logger, gameResults)
		return nil
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < config.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, logger, config, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	var err = g.Wait()
	return score, err
}

func playGames(
	ctx context.Context,
	logger zerolog.Logger,
	config Config,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	engineA, err := newEngine(config.EvalA)
	if err != nil {
		return err
	}
	engineB, err := newEngine(config.EvalB)
	if err != nil {
		return err
	}
	for gameInfo := range gameInfos {
		var res, err = playGame(ctx, logger, engineA, engineB, config, gameInfo)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}

func newEngine(evalName string) (IEngine, error) {
	var evalBuilder, err = evalbuilder.Get(evalName)
	if err != nil {
		return nil, err
	}
	return engine.NewEngine(evalBuilder), nil
}
