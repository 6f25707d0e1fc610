package xiangqi

import (
	"errors"
	"fmt"
	"strings"
)

// 走子被拒绝的原因。都是可恢复的：棋盘保持原样，轮次不变
var (
	ErrEmptyOrigin        = errors.New("origin square is empty")
	ErrWrongSide          = errors.New("piece does not belong to the side to move")
	ErrIllegalDestination = errors.New("destination is not reachable by this piece")
	ErrSelfCheck          = errors.New("move leaves own general in check")
	ErrGeneralsFacing     = errors.New("move leaves the generals facing each other")
)

// Board = 10x9 格子 + 轮到谁走。所有改动都走 ApplyMove
type Board struct {
	grid [Rows][Cols]Piece
	turn Side
	hash uint64
}

const (
	StartFEN    = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w"
	SkeletonFEN = "r3k3r/9/9/9/9/9/9/9/9/R3K3R w"
)

// NewBoard 标准开局，红先
func NewBoard() *Board {
	return mustDecode(StartFEN)
}

// NewSkeletonBoard 只有将帅和四个车的演示局面
func NewSkeletonBoard() *Board {
	return mustDecode(SkeletonFEN)
}

func NewEmptyBoard(turn Side) *Board {
	if turn != Black {
		turn = Red
	}
	b := &Board{turn: turn}
	b.hash = b.CalculateHash()
	return b
}

func mustDecode(fen string) *Board {
	b, err := DecodeFEN(fen)
	if err != nil {
		panic("xiangqi: bad built-in FEN " + fen)
	}
	return b
}

func (b *Board) Turn() Side   { return b.turn }
func (b *Board) Hash() uint64 { return b.hash }

func (b *Board) IsValid(row, col int) bool { return onBoard(row, col) }

// Piece 越界返回 NoPiece，方便走法代码直接试探边界
func (b *Board) Piece(row, col int) Piece {
	if !onBoard(row, col) {
		return NoPiece
	}
	return b.grid[row][col]
}

func (b *Board) PieceAt(p Position) Piece { return b.Piece(p.Row, p.Col) }

func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// ApplyMove 只做伪合法校验：起点有子、是本方的子、终点在该子的走法集合里。
// 失败时棋盘不变，返回原因。
func (b *Board) ApplyMove(m Move) error {
	if err := b.validate(m); err != nil {
		return err
	}
	b.move(m.From, m.To)
	return nil
}

func (b *Board) validate(m Move) error {
	pc := b.PieceAt(m.From)
	if pc == NoPiece {
		return ErrEmptyOrigin
	}
	if pc.Side() != b.turn {
		return ErrWrongSide
	}
	// 每次都按当前局面重新生成
	if !containsDest(pc.PseudoLegalMoves(b, m.From), m.To) {
		return ErrIllegalDestination
	}
	return nil
}

// move 直接落子并换边，不做任何校验
func (b *Board) move(from, to Position) {
	pc := b.grid[from.Row][from.Col]
	captured := b.grid[to.Row][to.Col]

	// 增量 Zobrist：移除 from 的子、移除被吃子（若有）、加入 to 的子、切换走子方
	h := b.hash
	h ^= pieceHashKey(pc, from)
	if captured != NoPiece {
		h ^= pieceHashKey(captured, to)
	}
	h ^= pieceHashKey(pc, to)
	h ^= zobristSide

	b.grid[to.Row][to.Col] = pc
	b.grid[from.Row][from.Col] = NoPiece
	b.turn = b.turn.Opposite()
	b.hash = h
}

func containsDest(moves []Move, to Position) bool {
	for _, mv := range moves {
		if mv.To == to {
			return true
		}
	}
	return false
}

// PieceCount 统计某一方的棋子数；side 为 NoSide 时统计全部
func (b *Board) PieceCount(side Side) int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b.grid[r][c]
			if pc == NoPiece {
				continue
			}
			if side == NoSide || pc.Side() == side {
				n++
			}
		}
	}
	return n
}

func (b *Board) String() string {
	const sep = "  -------------------------------------------\n"
	var sb strings.Builder
	sb.WriteString(sep)
	sb.WriteString("  |")
	for c := 0; c < Cols; c++ {
		fmt.Fprintf(&sb, "  %d |", c)
	}
	sb.WriteByte('\n')
	sb.WriteString(sep)
	for r := 0; r < Rows; r++ {
		fmt.Fprintf(&sb, "%d |", r)
		for c := 0; c < Cols; c++ {
			fmt.Fprintf(&sb, " %s |", b.grid[r][c].ShortCode())
		}
		if r == RiverRow-1 {
			sb.WriteString(" <--- river")
		}
		sb.WriteByte('\n')
		sb.WriteString(sep)
	}
	fmt.Fprintf(&sb, "turn: %s\n", b.turn)
	return sb.String()
}
