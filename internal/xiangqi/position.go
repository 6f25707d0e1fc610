package xiangqi

import (
	"errors"
	"fmt"
	"unicode"
)

const (
	Rows = 10
	Cols = 9

	// 河界在第 4、5 行之间；红方在下（5..9），黑方在上（0..4）
	RiverRow = 5
)

var (
	rookDirs   = [4][2]int{{-1, 0}, {+1, 0}, {0, -1}, {0, +1}}
	bishopDirs = [4][2]int{{-1, -1}, {-1, +1}, {+1, -1}, {+1, +1}}
)

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// 兵的前进方向：红向上(-1)，黑向下(+1)
func soldierDir(side Side) int {
	if side == Red {
		return -1
	}
	if side == Black {
		return +1
	}
	return 0
}

// 是否已经过河
func crossedRiver(side Side, row int) bool {
	if side == Red {
		return row < RiverRow
	}
	if side == Black {
		return row >= RiverRow
	}
	return false
}

// 是否在己方九宫
func inPalace(side Side, row, col int) bool {
	if col < 3 || col > 5 {
		return false
	}
	if side == Black {
		return row >= 0 && row <= 2
	}
	if side == Red {
		return row >= Rows-3 && row <= Rows-1
	}
	return false
}

var letterToPieceType = map[rune]PieceType{
	'k': PieceGeneral,
	'a': PieceAdvisor,
	'b': PieceElephant,
	'n': PieceHorse,
	'r': PieceChariot,
	'c': PieceCannon,
	'p': PieceSoldier,
}

// 解析时额外接受的别名
var letterAliases = map[rune]PieceType{
	'e': PieceElephant,
	'h': PieceHorse,
}

var pieceTypeToLetter = [...]rune{
	PieceGeneral:  'k',
	PieceAdvisor:  'a',
	PieceElephant: 'b',
	PieceHorse:    'n',
	PieceChariot:  'r',
	PieceCannon:   'c',
	PieceSoldier:  'p',
}

func pieceToChar(p Piece) rune {
	if p == NoPiece {
		return '.'
	}
	pt := p.Type()
	if pt <= PieceNone || int(pt) >= len(pieceTypeToLetter) {
		return '.'
	}
	base := pieceTypeToLetter[pt]
	if p.Side() == Red {
		return unicode.ToUpper(base)
	}
	return base
}

func charToPiece(ch rune) (Piece, bool) {
	base := unicode.ToLower(ch)
	pt, ok := letterToPieceType[base]
	if !ok {
		pt, ok = letterAliases[base]
	}
	if !ok {
		return NoPiece, false
	}
	side := Black
	if unicode.IsUpper(ch) {
		side = Red
	}
	return MakePiece(side, pt), true
}

var ErrInvalidSquare = errors.New("invalid square")

// ICCS 坐标：列 a..i（从红方左手边数），行 0..9（从红方底线数）
func (p Position) ICCS() string {
	if !onBoard(p.Row, p.Col) {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+p.Col, Rows-1-p.Row)
}

func ParseICCS(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, ErrInvalidSquare
	}
	file := unicode.ToLower(rune(s[0]))
	rank := rune(s[1])
	if file < 'a' || file > 'i' || rank < '0' || rank > '9' {
		return Position{}, ErrInvalidSquare
	}
	return Position{Row: Rows - 1 - int(rank-'0'), Col: int(file - 'a')}, nil
}

// ParseMove 解析 "h2e2" 这样的四字符走法
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, ErrInvalidSquare
	}
	from, err := ParseICCS(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseICCS(s[2:])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

// ICCS 返回 "h2e2" 形式
func (m Move) ICCS() string {
	return m.From.ICCS() + m.To.ICCS()
}
