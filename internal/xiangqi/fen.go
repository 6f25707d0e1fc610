package xiangqi

import (
	"errors"
	"strings"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// FEN 10 行用“/”隔开，从黑方底线开始；空位用数字压缩；空格后 w/b 表示谁走
func (b *Board) FEN() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := b.grid[r][c]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if b.turn == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}

// DecodeFEN 解析 FEN；只看前两段，后面的回合计数之类忽略
func DecodeFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, ErrInvalidFEN
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, ErrInvalidFEN
	}
	b := &Board{}
	for r := 0; r < Rows; r++ {
		c := 0
		for _, ch := range rows[r] {
			if c >= Cols {
				return nil, ErrInvalidFEN
			}
			if ch >= '1' && ch <= '9' {
				c += int(ch - '0')
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return nil, ErrInvalidFEN
			}
			b.grid[r][c] = pc
			c++
		}
		if c != Cols {
			return nil, ErrInvalidFEN
		}
	}

	b.turn = Red
	if len(parts) > 1 {
		switch parts[1] {
		case "w", "r":
		case "b":
			b.turn = Black
		default:
			return nil, ErrInvalidFEN
		}
	}
	b.hash = b.CalculateHash()
	return b, nil
}
