package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/ChizhovVadim/CounterLite/pkg/common"
)

func mustPosition(t *testing.T, fen string) common.Position {
	t.Helper()
	var p, err = common.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSingleLegalMove(t *testing.T) {
	var p = mustPosition(t, "R6k/8/5K2/8/8/8/8/8 b - - 0 1")
	for _, d := range Difficulties() {
		var e = NewEngine(materialBuilder)
		var info, err = e.Search(context.Background(), SearchParams{Position: &p, Config: ConfigFor(d)})
		if err != nil {
			t.Fatal(err)
		}
		if info.BestMove().String() != "h8h7" {
			t.Error(d, info.BestMove())
		}
		if info.Depth != 0 || info.Stats.Nodes != 0 {
			t.Error(d, info.Depth, info.Stats.Nodes)
		}
	}
}

func TestStartPositionDepthOne(t *testing.T) {
	var p = mustPosition(t, common.InitialPositionFen)
	var e = NewEngine(materialBuilder)
	var info, err = e.Search(context.Background(), SearchParams{
		Position: &p,
		Config:   SearchConfig{MaxDepth: 1, TimeBudget: time.Second, TableCapacity: 1024},
	})
	if err != nil {
		t.Fatal(err)
	}
	var ml = p.GenerateLegalMoves(nil)
	if len(ml) != 20 {
		t.Fatal(len(ml))
	}
	if info.Depth != 1 || !lo.Contains(ml, info.BestMove()) {
		t.Error(info.Depth, info.BestMove())
	}
}

func TestMateInTwo(t *testing.T) {
	var p = mustPosition(t, "4k3/8/8/8/8/8/1R6/R3K3 w - - 0 1")
	var e = NewEngine(materialBuilder)
	e.Logger = zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)

	var config = SearchConfig{MaxDepth: 4, TimeBudget: time.Minute, TableCapacity: 1 << 16}
	var info, err = e.Search(context.Background(), SearchParams{Position: &p, Config: config})
	if err != nil {
		t.Fatal(err)
	}
	if info.Score.Mate != 2 {
		t.Error(info.Score, info.MainLine)
	}
	// mate found at depth 3 ends deepening
	if info.Depth != 3 {
		t.Error(info.Depth)
	}

	for ply := 0; ply < 3; ply++ {
		var info, err = e.Search(context.Background(), SearchParams{Position: &p, Config: config})
		if err != nil {
			t.Fatal(ply, err)
		}
		var move = info.BestMove()
		var child common.Position
		if !p.MakeMove(move, &child) {
			t.Fatal(ply, move)
		}
		p = child
	}
	if !p.IsCheckmate() {
		t.Error("no mate after three plies", p.String())
	}
}

func TestDeterminism(t *testing.T) {
	var p = mustPosition(t, kiwipete)
	var config = SearchConfig{MaxDepth: 3, TimeBudget: time.Minute, TableCapacity: 1 << 16}
	var e = NewEngine(materialBuilder)
	var first, err = e.Search(context.Background(), SearchParams{Position: &p, Config: config})
	if err != nil {
		t.Fatal(err)
	}
	for _, other := range []*Engine{e, NewEngine(materialBuilder)} {
		var info, err = other.Search(context.Background(), SearchParams{Position: &p, Config: config})
		if err != nil {
			t.Fatal(err)
		}
		if info.BestMove() != first.BestMove() ||
			info.Score != first.Score ||
			info.Stats.Nodes != first.Stats.Nodes {
			t.Error(info.BestMove(), info.Score, info.Stats.Nodes,
				first.BestMove(), first.Score, first.Stats.Nodes)
		}
	}
}

func TestBudgetExhausted(t *testing.T) {
	var p = mustPosition(t, kiwipete)
	var config = SearchConfig{MaxDepth: 10, TimeBudget: 100 * time.Millisecond, TableCapacity: 1 << 16}
	var e = NewEngine(materialBuilder)
	var completed []SearchInfo
	var start = time.Now()
	var info, err = e.Search(context.Background(), SearchParams{
		Position: &p,
		Config:   config,
		Progress: func(si SearchInfo) {
			completed = append(completed, si)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > config.TimeBudget+5*time.Second {
		t.Error("budget ignored", elapsed)
	}
	if len(completed) == 0 {
		t.Fatal("no completed depth")
	}
	var last = completed[len(completed)-1]
	if info.Depth != last.Depth || info.BestMove() != last.BestMove() || info.Score != last.Score {
		t.Error(info.Depth, info.BestMove(), last.Depth, last.BestMove())
	}
	if info.Depth < 1 || info.Depth >= config.MaxDepth {
		t.Error(info.Depth)
	}
	for i, si := range completed {
		if si.Depth != i+1 {
			t.Error("depths must complete in order", i, si.Depth)
		}
	}
}

func TestSelectMove(t *testing.T) {
	var p = mustPosition(t, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 2 3")
	var move, err = NewEngine(materialBuilder).SelectMove(context.Background(), &p, Easy)
	if err != nil {
		t.Fatal(err)
	}
	if move.String() != "f3f7" {
		t.Error(move)
	}
}

func TestCancelledContext(t *testing.T) {
	var p = mustPosition(t, common.InitialPositionFen)
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var e = NewEngine(materialBuilder)
	var info, err = e.Search(ctx, SearchParams{Position: &p, Config: ConfigFor(Max)})
	if err != nil {
		t.Fatal(err)
	}
	if info.Depth != 1 || info.BestMove() == common.MoveEmpty {
		t.Error(info.Depth, info.BestMove())
	}
}

func TestTerminalPosition(t *testing.T) {
	var fens = []string{
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		"k7/8/1Q6/8/8/8/8/7K b - - 0 1",
	}
	for _, fen := range fens {
		var p = mustPosition(t, fen)
		var _, err = NewEngine(materialBuilder).SelectMove(context.Background(), &p, Easy)
		if !errors.Is(err, ErrTerminalPosition) {
			t.Error(fen, err)
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	var p = mustPosition(t, common.InitialPositionFen)
	var _, err = NewEngine(materialBuilder).Search(context.Background(), SearchParams{
		Position: &p,
		Config:   SearchConfig{MaxDepth: 0, TimeBudget: time.Second, TableCapacity: 1024},
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error(err)
	}
}

func TestPersistTable(t *testing.T) {
	var p = mustPosition(t, common.InitialPositionFen)
	var config = SearchConfig{MaxDepth: 2, TimeBudget: time.Minute, TableCapacity: 1 << 12}
	var e = NewEngine(materialBuilder)
	e.PersistTable = true
	if _, err := e.Search(context.Background(), SearchParams{Position: &p, Config: config}); err != nil {
		t.Fatal(err)
	}
	if _, _, _, _, ok := e.transTable.Read(p.Key); !ok {
		t.Error("root entry lost")
	}
	e.Clear()
	if _, _, _, _, ok := e.transTable.Read(p.Key); ok {
		t.Error("entry survived Clear")
	}
}

func TestConcurrentEngines(t *testing.T) {
	var p = mustPosition(t, kiwipete)
	var config = SearchConfig{MaxDepth: 2, TimeBudget: time.Minute, TableCapacity: 1 << 12}
	var reference, err = NewEngine(materialBuilder).Search(context.Background(), SearchParams{Position: &p, Config: config})
	if err != nil {
		t.Fatal(err)
	}
	var results = make([]SearchInfo, 4)
	var g, ctx = errgroup.WithContext(context.Background())
	for i := range results {
		var i = i
		g.Go(func() error {
			var p, err = common.NewPositionFromFEN(kiwipete)
			if err != nil {
				return err
			}
			info, err := NewEngine(materialBuilder).Search(ctx, SearchParams{Position: &p, Config: config})
			results[i] = info
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i, info := range results {
		if info.BestMove() != reference.BestMove() || info.Score != reference.Score {
			t.Error(i, info.BestMove(), reference.BestMove())
		}
	}
}
