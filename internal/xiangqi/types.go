package xiangqi

import "fmt"

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0
	Black  Side = 1
)

// Opposite 返回对方；NoSide 保持不变
func (s Side) Opposite() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoSide
}

func (s Side) String() string {
	switch s {
	case Red:
		return "R"
	case Black:
		return "B"
	}
	return "-"
}

type PieceType int8

const (
	PieceNone     PieceType = iota
	PieceGeneral            // 帅 / 将
	PieceAdvisor            // 仕 / 士
	PieceElephant           // 相 / 象
	PieceChariot            // 车
	PieceHorse              // 马
	PieceCannon             // 炮
	PieceSoldier            // 兵 / 卒
)

var pieceTypeNames = [...]string{
	PieceNone:     "NONE",
	PieceGeneral:  "GENERAL",
	PieceAdvisor:  "ADVISOR",
	PieceElephant: "ELEPHANT",
	PieceChariot:  "CHARIOT",
	PieceHorse:    "HORSE",
	PieceCannon:   "CANNON",
	PieceSoldier:  "SOLDIER",
}

func (pt PieceType) String() string {
	if pt < 0 || int(pt) >= len(pieceTypeNames) {
		return "UNKNOWN"
	}
	return pieceTypeNames[pt]
}

// Piece 0=空；>0 红；<0 黑；abs=PieceType
type Piece int8

const NoPiece Piece = 0

func MakePiece(side Side, pt PieceType) Piece {
	if pt == PieceNone || side == NoSide {
		return NoPiece
	}
	if side == Red {
		return Piece(pt)
	}
	return -Piece(pt)
}

func (p Piece) Type() PieceType {
	if p < 0 {
		return PieceType(-p)
	}
	return PieceType(p)
}

func (p Piece) Side() Side {
	if p == NoPiece {
		return NoSide
	}
	if p > 0 {
		return Red
	}
	return Black
}

func (p Piece) IsEmpty() bool { return p == NoPiece }

// ShortCode 打印用，例如 RR = 红车，BK = 黑将
func (p Piece) ShortCode() string {
	if p == NoPiece {
		return "  "
	}
	return p.Side().String() + string(pieceToChar(MakePiece(Red, p.Type())))
}

// Position 棋盘坐标；不在构造时检查越界，由 Board.IsValid 负责
type Position struct {
	Row int `json:"row" bson:"row"`
	Col int `json:"col" bson:"col"`
}

func NewPosition(row, col int) Position { return Position{Row: row, Col: col} }

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Move 一步棋。Piece 只用于展示，合法性以棋盘当前状态为准
type Move struct {
	From  Position `json:"from"`
	To    Position `json:"to"`
	Piece Piece    `json:"-"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s from %s to %s", m.Piece.ShortCode(), m.From, m.To)
}
