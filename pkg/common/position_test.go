package common

import (
	"errors"
	"testing"
)

//https://www.chessprogramming.org/Perft_Results
func TestPerft(t *testing.T) {
	var tests = []struct {
		fen   string
		depth int
		nodes int
	}{
		{
			fen:   InitialPositionFen,
			depth: 3,
			nodes: 8902,
		},
		{
			fen:   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
			depth: 2,
			nodes: 2039,
		},
		{
			fen:   "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
			depth: 3,
			nodes: 2812,
		},
	}
	for i, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(err)
		}
		var nodes = Perft(&p, test.depth)
		if nodes != test.nodes {
			t.Error(i, test, nodes)
		}
	}
}

func Perft(p *Position, depth int) int {
	var result = 0
	var buffer [MaxMoves]Move
	var child Position
	for _, move := range p.GenerateLegalMoves(buffer[:0]) {
		if !p.MakeMove(move, &child) {
			continue
		}
		if depth > 1 {
			result += Perft(&child, depth-1)
		} else {
			result++
		}
	}
	return result
}

func TestParseFenError(t *testing.T) {
	var _, err = NewPositionFromFEN("not a fen")
	if !errors.Is(err, ErrParseFen) {
		t.Error(err)
	}
}

func TestTranspositionKey(t *testing.T) {
	var p1 = playLAN(t, InitialPositionFen, "g1f3", "g8f6", "b1c3")
	var p2 = playLAN(t, InitialPositionFen, "b1c3", "g8f6", "g1f3")
	if p1.Key != p2.Key {
		t.Error("transposed positions must share a key", p1.String(), p2.String())
	}
	var p3 = playLAN(t, InitialPositionFen, "b1c3", "b8c6", "g1f3")
	if p1.Key == p3.Key {
		t.Error("different positions share a key", p1.String(), p3.String())
	}
}

func TestKeyDependsOnSideToMove(t *testing.T) {
	var w, _ = NewPositionFromFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	var b, _ = NewPositionFromFEN("4k3/8/8/8/8/8/8/4K3 b - - 0 1")
	if w.Key == b.Key {
		t.Error("side to move must change the key")
	}
}

func TestMakeMoveKeepsParent(t *testing.T) {
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var fen, key = p.String(), p.Key
	var child Position
	var buffer [MaxMoves]Move
	for _, move := range p.GenerateLegalMoves(buffer[:0]) {
		if !p.MakeMove(move, &child) {
			t.Error("legal move rejected", move)
		}
		if child.LastMove != move {
			t.Error(move, child.LastMove)
		}
	}
	if p.String() != fen || p.Key != key {
		t.Error("parent position changed")
	}
}

func TestMakeMoveRejectsIllegal(t *testing.T) {
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	var child Position
	if p.MakeMove(NewMove(ParseSquare("e2"), ParseSquare("e5"), Pawn, Empty, Empty), &child) {
		t.Error("e2e5 accepted")
	}
	if _, ok := p.MakeMoveLAN("e1e2"); ok {
		t.Error("e1e2 accepted")
	}
}

func TestMoveDetails(t *testing.T) {
	var p = playLAN(t, InitialPositionFen, "e2e4", "a7a6", "e4e5", "d7d5")
	var buffer [MaxMoves]Move
	var found bool
	for _, move := range p.GenerateLegalMoves(buffer[:0]) {
		if move.String() != "e5d6" {
			continue
		}
		found = true
		if move.MovingPiece() != Pawn || move.CapturedPiece() != Pawn {
			t.Error("en passant must capture a pawn", move.MovingPiece(), move.CapturedPiece())
		}
		var child Position
		if !p.MakeMove(move, &child) {
			t.Fatal("en passant rejected")
		}
		if child.WhatPiece(ParseSquare("d5")) != Empty {
			t.Error("captured pawn still on d5")
		}
		if child.Rule50 != 0 {
			t.Error(child.Rule50)
		}
	}
	if !found {
		t.Error("e5d6 not generated")
	}
}

func TestPromotion(t *testing.T) {
	var p, _ = NewPositionFromFEN("1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	var buffer [MaxMoves]Move
	var promotions, capturePromotions int
	for _, move := range p.GenerateLegalMoves(buffer[:0]) {
		if move.Promotion() == Empty {
			continue
		}
		if move.CapturedPiece() == Rook {
			capturePromotions++
		} else {
			promotions++
		}
	}
	if promotions != 4 || capturePromotions != 4 {
		t.Error(promotions, capturePromotions)
	}
	var child, ok = p.MakeMoveLAN("a7b8q")
	if !ok {
		t.Fatal("a7b8q rejected")
	}
	if piece, side := child.GetPieceTypeAndSide(ParseSquare("b8")); piece != Queen || !side {
		t.Error(piece, side)
	}
}

func TestRule50(t *testing.T) {
	var p = playLAN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 10 30", "a1a2", "e8e7")
	if p.Rule50 != 12 {
		t.Error(p.Rule50)
	}
}

func TestStatus(t *testing.T) {
	var tests = []struct {
		fen       string
		checkmate bool
		stalemate bool
	}{
		{"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", true, false},
		{"k7/8/1Q6/8/8/8/8/7K b - - 0 1", false, true},
		{InitialPositionFen, false, false},
	}
	for _, test := range tests {
		var p, err = NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(err)
		}
		if p.IsCheckmate() != test.checkmate || p.IsStalemate() != test.stalemate {
			t.Error(test.fen, p.IsCheckmate(), p.IsStalemate())
		}
	}
}

func TestLowMaterial(t *testing.T) {
	var tests = []struct {
		fen string
		low bool
	}{
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/4KN2 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/3BKN2 w - - 0 1", false},
		{"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
	}
	for _, test := range tests {
		var p, _ = NewPositionFromFEN(test.fen)
		if p.IsLowMaterial() != test.low {
			t.Error(test.fen)
		}
	}
}

func TestMirrorPosition(t *testing.T) {
	var p, _ = NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K1R1 w Qkq - 0 1")
	var m = MirrorPosition(&p)
	if m.WhiteMove != p.WhiteMove {
		t.Error("side to move must be kept")
	}
	if m.CastleRights != WhiteKingSide|WhiteQueenSide|BlackQueenSide {
		t.Error(m.CastleRights)
	}
	for sq := 0; sq < 64; sq++ {
		var p1, s1 = p.GetPieceTypeAndSide(sq)
		var p2, s2 = m.GetPieceTypeAndSide(FlipSquare(sq))
		if p1 != p2 || (p1 != Empty && s1 == s2) {
			t.Error(SquareName(sq), p1, s1, p2, s2)
		}
	}
	var mm = MirrorPosition(&m)
	if mm.Key != p.Key {
		t.Error("double mirror must restore the position", mm.String())
	}
}

func playLAN(t *testing.T, fen string, moves ...string) Position {
	t.Helper()
	var p, err = NewPositionFromFEN(fen)
	if err != nil {
		t.Fatal(err)
	}
	for _, lan := range moves {
		var child, ok = p.MakeMoveLAN(lan)
		if !ok {
			t.Fatal("bad move", lan, p.String())
		}
		p = child
	}
	return p
}

func TestMakeMoveSAN(t *testing.T) {
	var p, _ = NewPositionFromFEN(InitialPositionFen)
	for _, san := range []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "Nf6", "O-O", "Nxe4"} {
		var child, ok = p.MakeMoveSAN(san)
		if !ok {
			t.Fatal(san)
		}
		p = child
	}
	if p.LastMove.String() != "f6e4" || p.LastMove.CapturedPiece() != Pawn {
		t.Error(p.LastMove)
	}
	if _, ok := p.MakeMoveSAN("Re1"); !ok {
		t.Error("Re1")
	}
	if _, ok := p.MakeMoveSAN("Ke2"); ok {
		t.Error("Ke2 after castling")
	}
}
