package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/notnil/chess"
)

var ErrParseFen = errors.New("parse fen failed")

// Position is an immutable snapshot of a chess position.
// Move generation, move application and game status come from notnil/chess;
// the mailbox and the Zobrist key are derived once per position.
type Position struct {
	board        [64]coloredPiece
	WhiteMove    bool
	CastleRights int
	EpSquare     int
	Rule50       int
	Key          uint64
	LastMove     Move
	inner        *chess.Position
	validMoves   []*chess.Move
}

func NewPositionFromFEN(fen string) (Position, error) {
	var tokens = strings.Fields(fen)
	if len(tokens) < 4 {
		return Position{}, fmt.Errorf("%w %v", ErrParseFen, fen)
	}
	if len(tokens) == 4 {
		tokens = append(tokens, "0")
	}
	if len(tokens) == 5 {
		tokens = append(tokens, "1")
	}
	var rule50, err = strconv.Atoi(tokens[4])
	if err != nil {
		return Position{}, fmt.Errorf("%w %v: %v", ErrParseFen, fen, err)
	}
	opt, err := chess.FEN(strings.Join(tokens[:6], " "))
	if err != nil {
		return Position{}, fmt.Errorf("%w %v: %v", ErrParseFen, fen, err)
	}
	var inner = chess.NewGame(opt).Position()
	return newPosition(inner, rule50, MoveEmpty), nil
}

func newPosition(inner *chess.Position, rule50 int, lastMove Move) Position {
	var p = Position{
		WhiteMove: inner.Turn() == chess.White,
		EpSquare:  SquareNone,
		Rule50:    rule50,
		LastMove:  lastMove,
		inner:     inner,
	}
	var board = inner.Board()
	for sq := 0; sq < 64; sq++ {
		var piece = board.Piece(chess.Square(sq))
		if piece == chess.NoPiece {
			continue
		}
		p.board[sq] = coloredPiece{
			Type: pieceTypeFromChess(piece.Type()),
			Side: piece.Color() == chess.White,
		}
	}
	var cr = inner.CastleRights()
	if cr.CanCastle(chess.White, chess.KingSide) {
		p.CastleRights |= WhiteKingSide
	}
	if cr.CanCastle(chess.White, chess.QueenSide) {
		p.CastleRights |= WhiteQueenSide
	}
	if cr.CanCastle(chess.Black, chess.KingSide) {
		p.CastleRights |= BlackKingSide
	}
	if cr.CanCastle(chess.Black, chess.QueenSide) {
		p.CastleRights |= BlackQueenSide
	}
	if ep := inner.EnPassantSquare(); ep != chess.NoSquare {
		p.EpSquare = int(ep)
	}
	p.Key = p.computeKey()
	return p
}

func pieceTypeFromChess(pt chess.PieceType) int {
	switch pt {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return Empty
}

func (p *Position) String() string {
	return p.inner.String()
}

func (p *Position) legalMoves() []*chess.Move {
	if p.validMoves == nil {
		p.validMoves = p.inner.ValidMoves()
	}
	return p.validMoves
}

// GenerateLegalMoves appends the legal moves to buffer in generator order.
func (p *Position) GenerateLegalMoves(buffer []Move) []Move {
	for _, m := range p.legalMoves() {
		buffer = append(buffer, p.convertMove(m))
	}
	return buffer
}

func (p *Position) convertMove(m *chess.Move) Move {
	var from, to = int(m.S1()), int(m.S2())
	var captured = p.board[to].Type
	if m.HasTag(chess.EnPassant) {
		captured = Pawn
	}
	return NewMove(from, to, p.board[from].Type, captured, pieceTypeFromChess(m.Promo()))
}

// MakeMove writes the successor position into result. The receiver is never modified.
func (p *Position) MakeMove(move Move, result *Position) bool {
	for _, m := range p.legalMoves() {
		if int(m.S1()) != move.From() ||
			int(m.S2()) != move.To() ||
			pieceTypeFromChess(m.Promo()) != move.Promotion() {
			continue
		}
		var rule50 = p.Rule50 + 1
		if move.MovingPiece() == Pawn || move.CapturedPiece() != Empty {
			rule50 = 0
		}
		*result = newPosition(p.inner.Update(m), rule50, move)
		return true
	}
	return false
}

func (p *Position) IsCheckmate() bool {
	return len(p.legalMoves()) == 0 && p.inner.Status() == chess.Checkmate
}

func (p *Position) IsStalemate() bool {
	return len(p.legalMoves()) == 0 && p.inner.Status() == chess.Stalemate
}

func (p *Position) GetPieceTypeAndSide(sq int) (pieceType int, side bool) {
	var piece = p.board[sq]
	return piece.Type, piece.Side
}

func (p *Position) WhatPiece(sq int) int {
	return p.board[sq].Type
}

// IsLowMaterial reports a position where neither side can mate: bare kings plus at most one minor piece.
func (p *Position) IsLowMaterial() bool {
	var minors = 0
	for sq := range p.board {
		switch p.board[sq].Type {
		case Pawn, Rook, Queen:
			return false
		case Knight, Bishop:
			minors++
		}
	}
	return minors <= 1
}

// MirrorPosition flips the board vertically and swaps piece colours.
// The side to move is kept, so a side-to-move evaluation changes sign.
// En passant is dropped since it belongs to the other side after the swap.
func MirrorPosition(p *Position) Position {
	var tokens = strings.Fields(p.String())
	var ranks = strings.Split(tokens[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	tokens[0] = swapCase(strings.Join(ranks, "/"))
	tokens[2] = mirrorCastleRights(tokens[2])
	tokens[3] = "-"
	var pos, _ = NewPositionFromFEN(strings.Join(tokens, " "))
	return pos
}

func mirrorCastleRights(s string) string {
	if s == "-" {
		return s
	}
	var sb strings.Builder
	for _, ch := range "KQkq" {
		if strings.ContainsRune(s, swapRune(ch)) {
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

func swapCase(s string) string {
	return strings.Map(swapRune, s)
}

func swapRune(ch rune) rune {
	if unicode.IsUpper(ch) {
		return unicode.ToLower(ch)
	}
	return unicode.ToUpper(ch)
}

// MakeMoveSAN applies a move in standard algebraic notation, check marks optional.
func (p *Position) MakeMoveSAN(san string) (Position, bool) {
	san = strings.TrimRight(san, "+#!?")
	for _, m := range p.legalMoves() {
		if strings.TrimRight(chess.AlgebraicNotation{}.Encode(p.inner, m), "+#") != san {
			continue
		}
		var result Position
		if !p.MakeMove(p.convertMove(m), &result) {
			return Position{}, false
		}
		return result, true
	}
	return Position{}, false
}
