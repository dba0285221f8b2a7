package play

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ChizhovVadim/CounterLite/pkg/common"
	"github.com/ChizhovVadim/CounterLite/pkg/engine"
)

type Engine interface {
	Search(ctx context.Context, searchParams engine.SearchParams) (engine.SearchInfo, error)
}

var errPlyLimit = errors.New("ply limit reached")

// PlayCli lets a human play white against the engine. Moves are read from r in long algebraic notation.
func PlayCli(ctx context.Context, eng Engine, config engine.SearchConfig, r io.Reader, w io.Writer) error {
	var g, err = NewGame(common.InitialPositionFen)
	if err != nil {
		return err
	}
	g.Print(w)
	var scanner = bufio.NewScanner(r)
	for {
		if result, comment := g.Result(); result != ResultNone {
			fmt.Fprintln(w, ResultString(result), comment)
			return nil
		}
		if !g.Position().WhiteMove {
			if err := engineMove(ctx, eng, config, g, w); err != nil {
				return err
			}
			continue
		}
		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		var command = strings.TrimSpace(scanner.Text())
		if command == "quit" {
			return nil
		}
		if command == "" {
			continue
		}
		if !g.MakeMoveLAN(command) {
			fmt.Fprintln(w, "bad move", command)
			continue
		}
		g.Print(w)
	}
}

// SelfPlay lets the engine play both sides from g until the game is over or maxPlies moves are made.
func SelfPlay(ctx context.Context, eng Engine, config engine.SearchConfig, g *Game, maxPlies int, w io.Writer) (result int, comment string, err error) {
	for {
		if result, comment = g.Result(); result != ResultNone {
			fmt.Fprintln(w, ResultString(result), comment)
			return result, comment, nil
		}
		if maxPlies > 0 && g.Plies() >= maxPlies {
			return ResultNone, errPlyLimit.Error(), nil
		}
		if err = engineMove(ctx, eng, config, g, w); err != nil {
			return ResultNone, "", err
		}
	}
}

func engineMove(ctx context.Context, eng Engine, config engine.SearchConfig, g *Game, w io.Writer) error {
	var info, err = eng.Search(ctx, engine.SearchParams{
		Position: g.Position(),
		Config:   config,
	})
	if err != nil {
		return err
	}
	var move = info.BestMove()
	if !g.MakeMove(move) {
		return fmt.Errorf("engine move %v rejected", move)
	}
	fmt.Fprintf(w, "%v. %v depth %v score %v\n", (g.Plies()+1)/2, move, info.Depth, scoreString(info.Score))
	g.Print(w)
	return nil
}

func scoreString(score engine.UciScore) string {
	if score.Mate != 0 {
		return fmt.Sprintf("mate %v", score.Mate)
	}
	return fmt.Sprintf("cp %v", score.Centipawns)
}
