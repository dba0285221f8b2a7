package engine

import "github.com/ChizhovVadim/CounterLite/pkg/common"

const sortTableKeyImportant = 100000

type orderedMove struct {
	Move common.Move
	Key  int32
}

type moveIterator struct {
	buffer []orderedMove
	count  int
	index  int
}

// Init keys moves: table move, then captures by MVV-LVA, then the rest in generator order.
func (mi *moveIterator) Init(ml []common.Move, transMove common.Move) {
	mi.count = len(ml)
	mi.index = 0
	for i, m := range ml {
		var score int
		if m == transMove {
			score = sortTableKeyImportant + 2000
		} else if m.IsCapture() {
			score = sortTableKeyImportant + 1000 + mvvlva(m)
		} else {
			score = 0
		}
		mi.buffer[i] = orderedMove{Move: m, Key: int32(score)}
	}
	sortMoves(mi.buffer[:mi.count])
}

func (mi *moveIterator) Reset() {
	mi.index = 0
}

func (mi *moveIterator) Next() common.Move {
	if mi.index >= mi.count {
		return common.MoveEmpty
	}
	var m = mi.buffer[mi.index].Move
	mi.index++
	return m
}

var sortPieceValues = [...]int{common.Empty: 0, common.Pawn: 1, common.Knight: 2,
	common.Bishop: 3, common.Rook: 4, common.Queen: 5, common.King: 6}

func mvvlva(move common.Move) int {
	return 8*(sortPieceValues[move.CapturedPiece()]+
		sortPieceValues[move.Promotion()]) -
		sortPieceValues[move.MovingPiece()]
}

// stable: equal keys keep generator order
func sortMoves(moves []orderedMove) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Key < t.Key; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}

// orderMoves returns a new slice; ml is left untouched.
func orderMoves(ml []common.Move, transMove common.Move) []common.Move {
	var mi = moveIterator{buffer: make([]orderedMove, len(ml))}
	mi.Init(ml, transMove)
	var result = make([]common.Move, 0, len(ml))
	for {
		var move = mi.Next()
		if move == common.MoveEmpty {
			break
		}
		result = append(result, move)
	}
	return result
}
