package play

import (
	"fmt"
	"io"

	"github.com/ChizhovVadim/CounterLite/pkg/common"
)

const (
	ResultNone = iota
	ResultDraw
	ResultWhiteWins
	ResultBlackWins
)

// Game is a move history with the game-over rules the search does not apply: repetitions and adjudication.
type Game struct {
	positions []common.Position
	keys      map[uint64]int
}

func NewGame(fen string) (*Game, error) {
	var pos, err = common.NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{
		positions: []common.Position{pos},
		keys:      map[uint64]int{pos.Key: 1},
	}, nil
}

func (g *Game) Position() *common.Position {
	return &g.positions[len(g.positions)-1]
}

func (g *Game) Positions() []common.Position {
	return g.positions
}

func (g *Game) Plies() int {
	return len(g.positions) - 1
}

func (g *Game) MakeMove(move common.Move) bool {
	var child common.Position
	if !g.Position().MakeMove(move, &child) {
		return false
	}
	g.push(child)
	return true
}

func (g *Game) MakeMoveLAN(smove string) bool {
	var child, ok = g.Position().MakeMoveLAN(smove)
	if !ok {
		return false
	}
	g.push(child)
	return true
}

func (g *Game) push(p common.Position) {
	g.positions = append(g.positions, p)
	g.keys[p.Key]++
}

// Result reports ResultNone while the game goes on.
func (g *Game) Result() (result int, comment string) {
	var curPosition = g.Position()
	if curPosition.IsCheckmate() {
		if curPosition.WhiteMove {
			return ResultBlackWins, "checkmate"
		}
		return ResultWhiteWins, "checkmate"
	}
	var buffer [common.MaxMoves]common.Move
	if len(curPosition.GenerateLegalMoves(buffer[:0])) == 0 {
		return ResultDraw, "stalemate"
	}
	if curPosition.Rule50 >= 100 {
		return ResultDraw, "50 moves"
	}
	if curPosition.IsLowMaterial() {
		return ResultDraw, "low material"
	}
	if g.keys[curPosition.Key] >= 3 {
		return ResultDraw, "3 fold repetition"
	}
	return ResultNone, ""
}

func ResultString(v int) string {
	switch v {
	case ResultWhiteWins:
		return "1-0"
	case ResultBlackWins:
		return "0-1"
	case ResultDraw:
		return "1/2-1/2"
	}
	return "*"
}

func (g *Game) Print(w io.Writer) {
	var curPos = g.Position()
	for i := 0; i < 64; i++ {
		sq := common.FlipSquare(i)
		piece, side := curPos.GetPieceTypeAndSide(sq)
		fmt.Fprint(w, pieceString(piece, side, common.IsDarkSquare(sq)))
		if common.File(sq) == common.FileH {
			fmt.Fprintln(w)
		}
	}
}
