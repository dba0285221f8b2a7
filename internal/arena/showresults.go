package arena

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterLite/internal/play"
)

type Score struct {
	Wins, Losses, Draws int
}

func (s Score) Games() int {
	return s.Wins + s.Losses + s.Draws
}

func showResults(
	logger zerolog.Logger,
	gameResults <-chan gameResult,
) Score {
	var score Score
	for gameResult := range gameResults {
		logger.Info().
			Str("game", gameResult.gameInfo.id.String()).
			Int("number", gameResult.gameInfo.gameNumber).
			Str("result", play.ResultString(gameResult.result)).
			Str("comment", gameResult.comment).
			Int("plies", len(gameResult.positions)-1).
			Msg("finished game")
		if gameResult.result == play.ResultDraw {
			score.Draws++
		} else if gameResult.result == play.ResultWhiteWins && gameResult.gameInfo.engineAIsWhite ||
			gameResult.result == play.ResultBlackWins && !gameResult.gameInfo.engineAIsWhite {
			score.Wins++
		} else {
			score.Losses++
		}
		var stat = computeStat(score.Wins, score.Losses, score.Draws)
		logger.Info().
			Int("wins", score.Wins).
			Int("losses", score.Losses).
			Int("draws", score.Draws).
			Float64("winningFraction", stat.winningFraction).
			Float64("eloDifference", stat.eloDifference).
			Float64("los", stat.los).
			Msg("score")
	}
	return score
}

type GameStatistics struct {
	winningFraction float64
	eloDifference   float64
	los             float64
}

//https://www.chessprogramming.org/Match_Statistics
func computeStat(wins, losses, draws int) GameStatistics {
	var games = wins + losses + draws
	var winningFraction = (float64(wins) + 0.5*float64(draws)) / float64(games)
	var eloDifference = -math.Log(1/winningFraction-1) * 400 / math.Ln10
	var los = 0.5
	if wins+losses > 0 {
		los = 0.5 + 0.5*math.Erf(float64(wins-losses)/math.Sqrt(2*float64(wins+losses)))
	}
	return GameStatistics{
		winningFraction: winningFraction,
		eloDifference:   eloDifference,
		los:             los,
	}
}
