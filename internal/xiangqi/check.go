package xiangqi

// FindGeneral 找到 side 的将/帅
func (b *Board) FindGeneral(side Side) (Position, bool) {
	want := MakePiece(side, PieceGeneral)
	if want == NoPiece {
		return Position{}, false
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if b.grid[r][c] == want {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// IsAttacked 判断 pos 这个格子是否被 bySide 攻击。
// 走法模拟：只要对方任何一个棋子的伪合法走法落在这里就算
func (b *Board) IsAttacked(pos Position, bySide Side) bool {
	if !onBoard(pos.Row, pos.Col) {
		return false
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b.grid[r][c]
			if pc == NoPiece || pc.Side() != bySide {
				continue
			}
			// 士、象过不了河，河对岸的格子够不着
			pt := pc.Type()
			if (pt == PieceAdvisor || pt == PieceElephant) && crossedRiver(bySide, pos.Row) {
				continue
			}
			if containsDest(pc.PseudoLegalMoves(b, Position{Row: r, Col: c}), pos) {
				return true
			}
		}
	}
	return false
}

// InCheck 判断 side 的将是否被将军；没有将时返回 false
func (b *Board) InCheck(side Side) bool {
	g, ok := b.FindGeneral(side)
	if !ok {
		return false
	}
	return b.IsAttacked(g, side.Opposite())
}

// generalsFacing 两将同列且中间无子
func (b *Board) generalsFacing() bool {
	red, ok := b.FindGeneral(Red)
	if !ok {
		return false
	}
	black, ok := b.FindGeneral(Black)
	if !ok {
		return false
	}
	if red.Col != black.Col {
		return false
	}
	lo, hi := black.Row, red.Row
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		if b.grid[r][red.Col] != NoPiece {
			return false
		}
	}
	return true
}

// GeneralsFacing 导出给界面/调试用
func (b *Board) GeneralsFacing() bool { return b.generalsFacing() }
