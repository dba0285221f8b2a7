package play

import (
	"fmt"
	"strconv"
)

const (
	whiteKing   = "♔"
	whiteQueen  = "♕"
	whiteRook   = "♖"
	whiteBishop = "♗"
	whiteKnight = "♘"
	whitePawn   = "♙"
	blackKing   = "♚"
	blackQueen  = "♛"
	blackRook   = "♜"
	blackBishop = "♝"
	blackKnight = "♞"
	blackPawn   = "♟"
)

const (
	fgBlack   = 30
	bgWhite   = 47
	bgHiWhite = 107
)

var chessSymbols = [2][7]string{
	{" ", whitePawn, whiteKnight, whiteBishop, whiteRook, whiteQueen, whiteKing},
	{" ", blackPawn, blackKnight, blackBishop, blackRook, blackQueen, blackKing},
}

func pieceString(piece int, side, darkSquare bool) string {
	var s string
	if side {
		s = chessSymbols[0][piece]
	} else {
		s = chessSymbols[1][piece]
	}
	s += " "
	const fgColor = fgBlack
	var bgColor int
	if darkSquare {
		bgColor = bgWhite
	} else {
		bgColor = bgHiWhite
	}
	const escape = "\x1b"
	const reset = 0
	return fmt.Sprintf("%s[%s;%sm%s%s[%dm",
		escape, strconv.Itoa(fgColor), strconv.Itoa(bgColor), s, escape, reset)
}
