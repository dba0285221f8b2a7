package eval

import (
	"github.com/ChizhovVadim/CounterLite/pkg/common"
)

const (
	minorPhase = 4
	rookPhase  = 6
	queenPhase = 12
	totalPhase = 2 * (4*minorPhase + 2*rookPhase + queenPhase)
)

const Tempo = 10

var pieceValues = [...]int{
	common.Empty:  0,
	common.Pawn:   100,
	common.Knight: 300,
	common.Bishop: 300,
	common.Rook:   500,
	common.Queen:  900,
	common.King:   0,
}

var piecePhase = [...]int{
	common.Knight: minorPhase,
	common.Bishop: minorPhase,
	common.Rook:   rookPhase,
	common.Queen:  queenPhase,
	common.King:   0,
}

// Tables are written from White's side with rank 8 on top.
var (
	pawnTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		50, 50, 50, 50, 50, 50, 50, 50,
		10, 10, 20, 30, 30, 20, 10, 10,
		5, 5, 10, 25, 25, 10, 5, 5,
		0, 0, 0, 20, 20, 0, 0, 0,
		5, -5, -10, 0, 0, -10, -5, 5,
		5, 10, 10, -20, -20, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	knightTable = [64]int{
		-50, -40, -30, -30, -30, -30, -40, -50,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}
	bishopTable = [64]int{
		-20, -10, -10, -10, -10, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	rookTable = [64]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		0, 0, 0, 5, 5, 0, 0, 0,
	}
	queenTable = [64]int{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		0, 0, 5, 5, 5, 5, 0, -5,
		-10, 5, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}
	kingMiddleTable = [64]int{
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-10, -20, -20, -20, -20, -20, -20, -10,
		20, 20, 0, 0, 0, 0, 20, 20,
		20, 30, 10, 0, 0, 10, 30, 20,
	}
	kingEndTable = [64]int{
		-50, -40, -30, -20, -20, -30, -40, -50,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-50, -30, -30, -30, -30, -30, -30, -50,
	}
)

type EvaluationService struct {
	middle [common.King + 1][64]int
	end    [common.King + 1][64]int
}

func NewEvaluationService() *EvaluationService {
	var es = &EvaluationService{}
	es.init()
	return es
}

// init indexes the tables by White's square, a1 = 0.
func (e *EvaluationService) init() {
	var tables = [...]*[64]int{
		common.Pawn:   &pawnTable,
		common.Knight: &knightTable,
		common.Bishop: &bishopTable,
		common.Rook:   &rookTable,
		common.Queen:  &queenTable,
		common.King:   &kingMiddleTable,
	}
	for piece := common.Pawn; piece <= common.King; piece++ {
		for sq := 0; sq < 64; sq++ {
			var visual = common.FlipSquare(sq)
			e.middle[piece][sq] = pieceValues[piece] + tables[piece][visual]
			e.end[piece][sq] = e.middle[piece][sq]
		}
	}
	for sq := 0; sq < 64; sq++ {
		e.end[common.King][sq] = kingEndTable[common.FlipSquare(sq)]
	}
}

func (e *EvaluationService) Evaluate(p *common.Position) int {
	var middle, end, phase int
	for sq := 0; sq < 64; sq++ {
		var piece, white = p.GetPieceTypeAndSide(sq)
		if piece == common.Empty {
			continue
		}
		if white {
			middle += e.middle[piece][sq]
			end += e.end[piece][sq]
		} else {
			var rsq = common.FlipSquare(sq)
			middle -= e.middle[piece][rsq]
			end -= e.end[piece][rsq]
		}
		phase += piecePhase[piece]
	}
	phase = common.Min(phase, totalPhase)

	var result = (middle*phase + end*(totalPhase-phase)) / totalPhase

	if !p.WhiteMove {
		result = -result
	}

	return result + Tempo
}
