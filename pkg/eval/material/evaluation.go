package eval

import (
	"github.com/ChizhovVadim/CounterLite/pkg/common"
)

var pieceValues = [...]int{
	common.Empty:  0,
	common.Pawn:   100,
	common.Knight: 300,
	common.Bishop: 300,
	common.Rook:   500,
	common.Queen:  900,
	common.King:   0,
}

type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

func (e *EvaluationService) Evaluate(p *common.Position) int {
	var eval = 0
	for sq := 0; sq < 64; sq++ {
		var piece, white = p.GetPieceTypeAndSide(sq)
		if white {
			eval += pieceValues[piece]
		} else {
			eval -= pieceValues[piece]
		}
	}
	if !p.WhiteMove {
		eval = -eval
	}
	return eval
}
