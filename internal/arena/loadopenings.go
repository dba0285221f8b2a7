package arena

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ChizhovVadim/CounterLite/pkg/common"
)

//go:embed openings.txt
var openingsTxt string

func loadOpenings(
	ctx context.Context,
	games int,
	gameInfos chan<- gameInfo,
) error {

	var openings = getOpenings()
	var fens = make([]string, len(openings))
	for i, opening := range openings {
		var fen, err = parseOpening(opening)
		if err != nil {
			return err
		}
		fens[i] = fen
	}

	for i := 0; i < games; i++ {
		var info = gameInfo{
			id:             uuid.New(),
			opening:        fens[(i/2)%len(fens)],
			engineAIsWhite: i%2 == 0,
			gameNumber:     i + 1,
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- info:
		}
	}

	return nil
}

// parseOpening plays a SAN move list from the initial position and returns the resulting FEN.
func parseOpening(opening string) (string, error) {
	var pos, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		return "", err
	}
	for _, token := range strings.Fields(opening) {
		if i := strings.LastIndex(token, "."); i >= 0 {
			token = token[i+1:]
		}
		if token == "" {
			continue
		}
		var child, ok = pos.MakeMoveSAN(token)
		if !ok {
			return "", fmt.Errorf("bad opening move %v in %v", token, opening)
		}
		pos = child
	}
	return pos.String(), nil
}

func getOpenings() []string {
	var result []string
	var lines = strings.Split(openingsTxt, "\n")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if !(line == "" || strings.HasPrefix(line, "//")) {
			result = append(result, line)
		}
	}
	return result
}
