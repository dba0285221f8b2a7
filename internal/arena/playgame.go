package arena

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterLite/internal/play"
	"github.com/ChizhovVadim/CounterLite/pkg/engine"
)

func playGame(
	ctx context.Context,
	logger zerolog.Logger,
	engineA, engineB IEngine,
	config Config,
	info gameInfo,
) (gameResult, error) {

	logger.Debug().
		Str("game", info.id.String()).
		Int("number", info.gameNumber).
		Bool("engineAIsWhite", info.engineAIsWhite).
		Msg("started game")

	engineA.Clear()
	engineB.Clear()

	var g, err = play.NewGame(info.opening)
	if err != nil {
		return gameResult{}, err
	}

	for {
		if result, comment := g.Result(); result != play.ResultNone {
			return gameResult{gameInfo: info, positions: g.Positions(), comment: comment, result: result}, nil
		}
		if config.MaxPlies > 0 && g.Plies() >= config.MaxPlies {
			return gameResult{gameInfo: info, positions: g.Positions(), comment: "ply limit", result: play.ResultDraw}, nil
		}
		var eng IEngine
		var difficulty engine.Difficulty
		if g.Position().WhiteMove == info.engineAIsWhite {
			eng, difficulty = engineA, config.DifficultyA
		} else {
			eng, difficulty = engineB, config.DifficultyB
		}
		var searchResult, err = eng.Search(ctx, engine.SearchParams{
			Position: g.Position(),
			Config:   engine.ConfigFor(difficulty),
		})
		if err != nil {
			return gameResult{}, err
		}
		var bestMove = searchResult.BestMove()
		if !g.MakeMove(bestMove) {
			return gameResult{}, fmt.Errorf("bad move %v in %v", bestMove, g.Position().String())
		}
	}
}
