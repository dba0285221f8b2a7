package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/ChizhovVadim/CounterLite/pkg/common"
	"github.com/ChizhovVadim/CounterLite/pkg/engine"
)

var (
	errSearchRunning   = errors.New("search still run")
	errStopUnsupported = errors.New("stop is not supported, wait for bestmove")
	errUnknownCommand  = errors.New("command not found")
)

type Engine interface {
	Clear()
	Search(ctx context.Context, searchParams engine.SearchParams) (engine.SearchInfo, error)
}

type Protocol struct {
	name         string
	author       string
	version      string
	options      []Option
	engine       Engine
	difficulty   *engine.Difficulty
	logger       zerolog.Logger
	out          io.Writer
	positions    []common.Position
	thinking     bool
	engineOutput chan engine.SearchInfo
}

// New creates a protocol handler. Searches use the limits of *difficulty unless go overrides them.
func New(name, author, version string, eng Engine, difficulty *engine.Difficulty, options []Option) *Protocol {
	var initPosition, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		panic(err)
	}
	return &Protocol{
		name:       name,
		author:     author,
		version:    version,
		engine:     eng,
		difficulty: difficulty,
		options:    options,
		logger:     zerolog.Nop(),
		positions:  []common.Position{initPosition},
	}
}

// Run serves commands from r until quit or end of input. A running search is always finished first.
func (uci *Protocol) Run(logger zerolog.Logger, r io.Reader, w io.Writer) {
	uci.logger = logger
	uci.out = w

	var commands = make(chan string)

	go func() {
		defer close(commands)
		readCommands(r, commands)
	}()

	var searchResult engine.SearchInfo
	for {
		select {
		case si, ok := <-uci.engineOutput:
			if ok {
				if si.Depth > 0 {
					fmt.Fprintln(uci.out, searchInfoToUci(si))
				}
				searchResult = si
			} else {
				fmt.Fprintf(uci.out, "bestmove %v\n", searchResult.BestMove())
				uci.thinking = false
				uci.engineOutput = nil
				searchResult = engine.SearchInfo{}
				if commands == nil {
					return
				}
			}
		case commandLine, ok := <-commands:
			if !ok {
				//uci quit
				if !uci.thinking {
					return
				}
				commands = nil
				continue
			}
			var err = uci.handle(commandLine)
			if err != nil {
				uci.logger.Error().
					Err(err).
					Str("command", commandLine).
					Msg("uci command failed")
			}
		}
	}
}

func readCommands(r io.Reader, commands chan<- string) {
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var commandLine = strings.TrimSpace(scanner.Text())
		if commandLine == "quit" {
			return
		}
		if commandLine != "" {
			commands <- commandLine
		}
	}
}

func (uci *Protocol) handle(commandLine string) error {
	var fields = strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	fields = fields[1:]

	if commandName == "isready" {
		return uci.isReadyCommand(fields)
	}

	if uci.thinking {
		if commandName == "stop" {
			return errStopUnsupported
		}
		return errSearchRunning
	}

	var h func(fields []string) error

	switch commandName {
	case "uci":
		h = uci.uciCommand
	case "setoption":
		h = uci.setOptionCommand
	case "position":
		h = uci.positionCommand
	case "go":
		h = uci.goCommand
	case "ucinewgame":
		h = uci.uciNewGameCommand
	case "stop":
		// nothing to stop
		return nil
	}

	if h == nil {
		return errUnknownCommand
	}

	return h(fields)
}

func (uci *Protocol) uciCommand(fields []string) error {
	fmt.Fprintf(uci.out, "id name %s %s\n", uci.name, uci.version)
	fmt.Fprintf(uci.out, "id author %s\n", uci.author)
	for _, option := range uci.options {
		fmt.Fprintln(uci.out, option.UciString())
	}
	fmt.Fprintln(uci.out, "uciok")
	return nil
}

func (uci *Protocol) setOptionCommand(fields []string) error {
	if len(fields) < 4 {
		return errors.New("invalid setoption arguments")
	}
	var name, value = fields[1], fields[3]
	for _, option := range uci.options {
		if strings.EqualFold(option.UciName(), name) {
			return option.Set(value)
		}
	}
	return fmt.Errorf("unhandled option %v", name)
}

func (uci *Protocol) isReadyCommand(fields []string) error {
	fmt.Fprintln(uci.out, "readyok")
	return nil
}

func (uci *Protocol) positionCommand(fields []string) error {
	if len(fields) == 0 {
		return errors.New("empty position command")
	}
	var args = fields
	var token = args[0]
	var fen string
	var movesIndex = lo.IndexOf(args, "moves")
	if token == "startpos" {
		fen = common.InitialPositionFen
	} else if token == "fen" {
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	} else {
		return errors.New("unknown position command")
	}
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	var positions = []common.Position{p}
	if movesIndex >= 0 && movesIndex+1 < len(args) {
		for _, smove := range args[movesIndex+1:] {
			var newPos, ok = positions[len(positions)-1].MakeMoveLAN(smove)
			if !ok {
				return fmt.Errorf("parse move failed %v", smove)
			}
			positions = append(positions, newPos)
		}
	}
	uci.positions = positions
	return nil
}

func (uci *Protocol) goCommand(fields []string) error {
	var config = engine.ConfigFor(*uci.difficulty)
	if err := parseLimits(fields, &config); err != nil {
		return err
	}
	var p = uci.positions[len(uci.positions)-1]
	var output = make(chan engine.SearchInfo, 3)
	uci.thinking = true
	uci.engineOutput = output
	go func() {
		defer close(output)
		var searchResult, err = uci.engine.Search(context.Background(), engine.SearchParams{
			Position: &p,
			Config:   config,
			Progress: func(si engine.SearchInfo) {
				select {
				case output <- si:
				default:
				}
			},
		})
		if err != nil {
			uci.logger.Error().Err(err).Msg("search failed")
		}
		output <- searchResult
	}()
	return nil
}

func (uci *Protocol) uciNewGameCommand(fields []string) error {
	uci.engine.Clear()
	return nil
}

func searchInfoToUci(si engine.SearchInfo) string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "info depth %v", si.Depth)
	if si.Score.Mate != 0 {
		fmt.Fprintf(sb, " score mate %v", si.Score.Mate)
	} else {
		fmt.Fprintf(sb, " score cp %v", si.Score.Centipawns)
	}
	var timeMs = si.Stats.Elapsed.Milliseconds()
	var nps = si.Stats.Nodes * 1000 / (timeMs + 1)
	fmt.Fprintf(sb, " nodes %v time %v nps %v", si.Stats.Nodes, timeMs, nps)
	if len(si.MainLine) != 0 {
		fmt.Fprintf(sb, " pv")
		for _, move := range si.MainLine {
			sb.WriteString(" ")
			sb.WriteString(move.String())
		}
	}
	return sb.String()
}

// parseLimits applies depth and movetime to config. Clock limits are accepted and ignored.
func parseLimits(args []string, config *engine.SearchConfig) error {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth", "movetime", "wtime", "btime", "winc", "binc", "movestogo", "nodes", "mate":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for %v", args[i])
			}
			var v, err = strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("bad value for %v: %w", args[i], err)
			}
			switch args[i] {
			case "depth":
				config.MaxDepth = v
			case "movetime":
				config.TimeBudget = time.Duration(v) * time.Millisecond
			}
			i++
		}
	}
	return config.Validate()
}
