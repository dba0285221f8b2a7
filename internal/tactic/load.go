package tactic

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterLite/pkg/common"
)

type EpdItem struct {
	content   string
	position  common.Position
	bestMoves []common.Move
}

// LoadEpd reads "fen bm move...;" lines. Lines that do not parse are logged and skipped.
func LoadEpd(logger zerolog.Logger, r io.Reader) ([]EpdItem, error) {
	var result []EpdItem
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var test, err = parseEpdTest(line)
		if err != nil {
			logger.Warn().Err(err).Msg("skip epd line")
			continue
		}
		result = append(result, test)
	}
	return result, scanner.Err()
}

func parseEpdTest(s string) (EpdItem, error) {
	var bmBegin = strings.Index(s, " bm ")
	if bmBegin == -1 {
		return EpdItem{}, fmt.Errorf("no best move %v", s)
	}
	var bmEnd = strings.Index(s[bmBegin:], ";")
	if bmEnd == -1 {
		bmEnd = len(s)
	} else {
		bmEnd += bmBegin
	}
	var fen = strings.TrimSpace(s[:bmBegin])
	var sBestMoves = strings.Fields(s[bmBegin+len(" bm ") : bmEnd])

	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return EpdItem{}, err
	}

	var bestMoves []common.Move
	for _, sBestMove := range sBestMoves {
		var child, ok = p.MakeMoveSAN(sBestMove)
		if !ok {
			return EpdItem{}, fmt.Errorf("parse move failed %v", s)
		}
		bestMoves = append(bestMoves, child.LastMove)
	}
	if len(bestMoves) == 0 {
		return EpdItem{}, fmt.Errorf("empty best moves %v", s)
	}

	return EpdItem{
		content:   s,
		position:  p,
		bestMoves: bestMoves,
	}, nil
}
