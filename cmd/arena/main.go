package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterLite/internal/arena"
	"github.com/ChizhovVadim/CounterLite/pkg/engine"
)

type Config struct {
	Concurrency int
	Games       int
	DifficultyA string
	DifficultyB string
	EvalA       string
	EvalB       string
	MaxPlies    int
}

var config Config

func main() {
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
	var err = run(logger)
	if err != nil {
		logger.Error().Err(err).Msg("arena failed")
	}
}

func run(logger zerolog.Logger) error {
	flag.IntVar(&config.Concurrency, "concurrency", 4, "Number of threads")
	flag.IntVar(&config.Games, "games", 60, "Number of games")
	flag.StringVar(&config.DifficultyA, "a", "hard", "difficulty of engine A")
	flag.StringVar(&config.DifficultyB, "b", "medium", "difficulty of engine B")
	flag.StringVar(&config.EvalA, "evala", "", "evaluation function of engine A")
	flag.StringVar(&config.EvalB, "evalb", "", "evaluation function of engine B")
	flag.IntVar(&config.MaxPlies, "maxplies", 300, "adjudicate a draw after that many plies")
	flag.Parse()

	logger.Info().Interface("config", config).Msg("arena flags")

	difficultyA, err := engine.ParseDifficulty(config.DifficultyA)
	if err != nil {
		return err
	}
	difficultyB, err := engine.ParseDifficulty(config.DifficultyB)
	if err != nil {
		return err
	}
	score, err := arena.Run(context.Background(), logger, arena.Config{
		Concurrency: config.Concurrency,
		Games:       config.Games,
		DifficultyA: difficultyA,
		DifficultyB: difficultyB,
		EvalA:       config.EvalA,
		EvalB:       config.EvalB,
		MaxPlies:    config.MaxPlies,
	})
	if err != nil {
		return err
	}
	logger.Info().
		Int("wins", score.Wins).
		Int("losses", score.Losses).
		Int("draws", score.Draws).
		Msg("match result")
	return nil
}
