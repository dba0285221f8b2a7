package arena

import (
	"context"

	"github.com/google/uuid"

	"github.com/ChizhovVadim/CounterLite/pkg/common"
	"github.com/ChizhovVadim/CounterLite/pkg/engine"
)

type IEngine interface {
	Clear()
	Search(ctx context.Context, searchParams engine.SearchParams) (engine.SearchInfo, error)
}

// Config describes a match. Openings are reused with colours alternating
// until Games games are played. MaxPlies adjudicates a draw, zero means no limit.
type Config struct {
	Concurrency int
	Games       int
	DifficultyA engine.Difficulty
	DifficultyB engine.Difficulty
	EvalA       string
	EvalB       string
	MaxPlies    int
}

type gameInfo struct {
	id             uuid.UUID
	opening        string
	engineAIsWhite bool
	gameNumber     int
}

type gameResult struct {
	gameInfo  gameInfo
	positions []common.Position
	comment   string
	result    int
}
