package xiangqi

// 兵：过河前只能向前一格；过河后还可以左右一格，永远不能后退
func genSoldierMoves(b *Board, pc Piece, from Position, moves *[]Move) {
	side := pc.Side()
	dir := soldierDir(side)
	if dir == 0 {
		return
	}

	r := from.Row + dir
	if onBoard(r, from.Col) && canLand(b, side, r, from.Col) {
		addMove(moves, pc, from, r, from.Col)
	}

	if !crossedRiver(side, from.Row) {
		return
	}
	for _, dc := range [2]int{-1, +1} {
		c := from.Col + dc
		if onBoard(from.Row, c) && canLand(b, side, from.Row, c) {
			addMove(moves, pc, from, from.Row, c)
		}
	}
}
