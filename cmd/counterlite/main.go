package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterLite/internal/evalbuilder"
	"github.com/ChizhovVadim/CounterLite/internal/play"
	"github.com/ChizhovVadim/CounterLite/internal/tactic"
	"github.com/ChizhovVadim/CounterLite/pkg/common"
	"github.com/ChizhovVadim/CounterLite/pkg/engine"
	"github.com/ChizhovVadim/CounterLite/pkg/uci"
)

/*
CounterLite Copyright (C) 2017-2023 Vadim Chizhov
This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License as published by the Free Software Foundation, either version 3 of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for more details.
You should have received a copy of the GNU General Public License along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

const (
	name   = "CounterLite"
	author = "Vadim Chizhov"
)

var (
	versionName = "dev"
	buildDate   = "(null)"
	gitRevision = "(null)"
)

type Config struct {
	Mode       string
	Difficulty string
	Eval       string
	LogLevel   string
	Persist    bool
	Fen        string
	MaxPlies   int
	Epd        string
}

var config Config

func main() {
	flag.StringVar(&config.Mode, "mode", "uci", "uci, play, selfplay or tactic")
	flag.StringVar(&config.Difficulty, "difficulty", "medium", "easy, medium, hard or max")
	flag.StringVar(&config.Eval, "eval", "", "specifies evaluation function")
	flag.StringVar(&config.LogLevel, "loglevel", "info", "zerolog level")
	flag.BoolVar(&config.Persist, "persist", false, "keep the hash table between moves")
	flag.StringVar(&config.Fen, "fen", common.InitialPositionFen, "selfplay starting position")
	flag.IntVar(&config.MaxPlies, "maxplies", 400, "selfplay ply limit")
	flag.StringVar(&config.Epd, "epd", "tests.epd", "tactic test file")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("counterlite failed")
	}
}

func run(logger zerolog.Logger) error {
	var level, err = zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		return err
	}
	logger = logger.Level(level)

	logger.Info().
		Str("VersionName", versionName).
		Str("BuildDate", buildDate).
		Str("GitRevision", gitRevision).
		Str("RuntimeVersion", runtime.Version()).
		Str("GOARCH", runtime.GOARCH).
		Str("GOOS", runtime.GOOS).
		Int("NumCPU", runtime.NumCPU()).
		Msg(name)

	difficulty, err := engine.ParseDifficulty(config.Difficulty)
	if err != nil {
		return err
	}
	evalBuilder, err := evalbuilder.Get(config.Eval)
	if err != nil {
		return err
	}
	var eng = engine.NewEngine(evalBuilder)
	eng.Logger = logger
	eng.PersistTable = config.Persist

	switch config.Mode {
	case "uci":
		var protocol = uci.New(name, author, versionName, eng, &difficulty,
			[]uci.Option{
				&uci.DifficultyOption{Name: "Difficulty", Value: &difficulty},
				&uci.BoolOption{Name: "PersistHash", Value: &eng.PersistTable},
			},
		)
		protocol.Run(logger, os.Stdin, os.Stdout)
		return nil
	case "play":
		return play.PlayCli(context.Background(), eng, engine.ConfigFor(difficulty), os.Stdin, os.Stdout)
	case "selfplay":
		g, err := play.NewGame(config.Fen)
		if err != nil {
			return err
		}
		result, comment, err := play.SelfPlay(context.Background(), eng, engine.ConfigFor(difficulty), g, config.MaxPlies, os.Stdout)
		if err != nil {
			return err
		}
		logger.Info().
			Str("result", play.ResultString(result)).
			Str("comment", comment).
			Int("plies", g.Plies()).
			Msg("selfplay finished")
		return nil
	case "tactic":
		file, err := os.Open(config.Epd)
		if err != nil {
			return err
		}
		defer file.Close()
		tests, err := tactic.LoadEpd(logger, file)
		if err != nil {
			return err
		}
		_, err = tactic.SolveTactic(context.Background(), logger, eng, engine.ConfigFor(difficulty), tests)
		return err
	}
	return fmt.Errorf("unknown mode %v", config.Mode)
}
