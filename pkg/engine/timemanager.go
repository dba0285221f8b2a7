package engine

import (
	"context"
	"time"
)

type simpleTimeManager struct {
	start  time.Time
	budget time.Duration
	ctx    context.Context
	cancel context.CancelFunc
}

func newSimpleTimeManager(ctx context.Context, start time.Time,
	budget time.Duration) *simpleTimeManager {

	var tm = &simpleTimeManager{
		start:  start,
		budget: budget,
	}
	tm.ctx, tm.cancel = context.WithDeadline(ctx, start.Add(budget))
	return tm
}

func (tm *simpleTimeManager) IsDone() bool {
	if time.Since(tm.start) >= tm.budget {
		return true
	}
	select {
	case <-tm.ctx.Done():
		return true
	default:
		return false
	}
}

func (tm *simpleTimeManager) OnIterationComplete(line mainLine) {
	// forced mate within the searched horizon, deeper iterations cannot change it
	if line.score >= winIn(line.depth) ||
		line.score <= lossIn(line.depth) {
		tm.cancel()
		return
	}
	if time.Since(tm.start) >= tm.budget {
		tm.cancel()
		return
	}
}

func (tm *simpleTimeManager) Close() {
	tm.cancel()
}
