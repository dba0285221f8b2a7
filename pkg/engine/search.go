package engine

import (
	"github.com/ChizhovVadim/CounterLite/pkg/common"
)

// nodes between two time checks, power of two
const pollInterval = 1024

func (e *Engine) searchRoot(depth int) int {
	const height = 0
	e.clearPV(height)
	var position = &e.stack[height].position
	var ml = position.GenerateLegalMoves(e.stack[height].moveList[:0])
	var _, _, _, ttMove, _ = e.readTT(position.Key)
	var mi = e.initMoveIterator(height, ml, ttMove)
	var child = &e.stack[height+1].position

	var alpha, beta = -valueInfinity, valueInfinity
	var best = -valueInfinity
	var bestMove common.Move
	for {
		var move = mi.Next()
		if move == common.MoveEmpty {
			break
		}
		if !position.MakeMove(move, child) {
			continue
		}
		e.incNodes()
		var score = -e.alphaBeta(-beta, -alpha, depth-1, height+1)
		// strict: the first of equally scored moves wins
		if score > best {
			best = score
			bestMove = move
			e.assignPV(height, move)
			if score > alpha {
				alpha = score
			}
		}
	}
	e.transTable.Update(position.Key, depth, valueToTT(best, height), boundExact, bestMove)
	return best
}

// main search method, fail-soft
func (e *Engine) alphaBeta(alpha, beta, depth, height int) int {
	e.clearPV(height)
	var position = &e.stack[height].position

	var ml = position.GenerateLegalMoves(e.stack[height].moveList[:0])
	if len(ml) == 0 {
		if position.IsCheckmate() {
			return lossIn(height)
		}
		// stalemate, or no moves without a status
		return valueDraw
	}
	if isDraw(position) {
		return valueDraw
	}
	if depth <= 0 || height >= maxHeight {
		return e.evaluator.Evaluate(position)
	}

	// transposition table
	var ttDepth, ttValue, ttBound, ttMove, ttHit = e.readTT(position.Key)
	if ttHit && ttDepth >= depth {
		ttValue = valueFromTT(ttValue, height)
		if (ttBound&boundLower) != 0 && ttValue > alpha {
			alpha = ttValue
		}
		if (ttBound&boundUpper) != 0 && ttValue < beta {
			beta = ttValue
		}
		if alpha >= beta {
			return ttValue
		}
	}

	var mi = e.initMoveIterator(height, ml, ttMove)
	var child = &e.stack[height+1].position
	var oldAlpha = alpha
	var best = -valueInfinity
	var bestMove common.Move

	for {
		var move = mi.Next()
		if move == common.MoveEmpty {
			break
		}
		if !position.MakeMove(move, child) {
			continue
		}
		e.incNodes()
		var score = -e.alphaBeta(-beta, -alpha, depth-1, height+1)
		if score > best {
			best = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			e.assignPV(height, move)
			if alpha >= beta {
				e.stats.Cutoffs++
				break
			}
		}
	}

	if bestMove == common.MoveEmpty {
		// generator and applier disagree
		return valueDraw
	}

	var bound = 0
	if best > oldAlpha {
		bound |= boundLower
	}
	if best < beta {
		bound |= boundUpper
	}
	e.transTable.Update(position.Key, depth, valueToTT(best, height), bound, bestMove)

	return best
}

func (e *Engine) readTT(key uint64) (depth, score, bound int, move common.Move, ok bool) {
	e.stats.TableProbes++
	depth, score, bound, move, ok = e.transTable.Read(key)
	if ok {
		e.stats.TableHits++
	}
	return
}

func (e *Engine) initMoveIterator(height int, ml []common.Move, transMove common.Move) *moveIterator {
	var mi = &e.stack[height].iterator
	mi.buffer = e.stack[height].orderedMoves[:]
	mi.Init(ml, transMove)
	return mi
}

// Depth 1 is never interrupted so that a completed iteration always exists.
func (e *Engine) incNodes() {
	e.stats.Nodes++
	if e.rootDepth > 1 &&
		e.stats.Nodes&(pollInterval-1) == 0 &&
		e.timeManager.IsDone() {
		panic(errSearchTimeout)
	}
}

func (e *Engine) clearPV(height int) {
	e.stack[height].pv.clear()
}

func (e *Engine) assignPV(height int, move common.Move) {
	e.stack[height].pv.assign(move, &e.stack[height+1].pv)
}
