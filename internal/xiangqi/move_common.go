package xiangqi

// 目标格可以落子：空格，或者敌方棋子（吃）
func canLand(b *Board, side Side, r, c int) bool {
	dst := b.grid[r][c]
	return dst == NoPiece || dst.Side() != side
}

func addMove(moves *[]Move, pc Piece, from Position, r, c int) {
	*moves = append(*moves, Move{From: from, To: Position{Row: r, Col: c}, Piece: pc})
}

// 车：横竖滑行，遇子即停，敌子可吃
func genChariotMoves(b *Board, pc Piece, from Position, moves *[]Move) {
	side := pc.Side()
	for _, d := range rookDirs {
		r, c := from.Row+d[0], from.Col+d[1]
		for onBoard(r, c) {
			dst := b.grid[r][c]
			if dst == NoPiece {
				addMove(moves, pc, from, r, c)
			} else {
				if dst.Side() != side {
					addMove(moves, pc, from, r, c)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 炮：车走法 + 隔一子吃
func genCannonMoves(b *Board, pc Piece, from Position, moves *[]Move) {
	side := pc.Side()
	for _, d := range rookDirs {
		r, c := from.Row+d[0], from.Col+d[1]

		// 走子阶段：直到第一个棋子（炮架）
		for onBoard(r, c) {
			if b.grid[r][c] != NoPiece {
				r += d[0]
				c += d[1]
				break
			}
			addMove(moves, pc, from, r, c)
			r += d[0]
			c += d[1]
		}

		// 吃子阶段：越过炮架，遇到第一子可吃
		for onBoard(r, c) {
			dst := b.grid[r][c]
			if dst != NoPiece {
				if dst.Side() != side {
					addMove(moves, pc, from, r, c)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 相：田字，塞象眼不能走，不过河
func genElephantMoves(b *Board, pc Piece, from Position, moves *[]Move) {
	side := pc.Side()
	for _, d := range bishopDirs {
		r := from.Row + 2*d[0]
		c := from.Col + 2*d[1]
		if !onBoard(r, c) {
			continue
		}
		if crossedRiver(side, r) {
			continue
		}
		if b.grid[from.Row+d[0]][from.Col+d[1]] != NoPiece {
			continue
		}
		if canLand(b, side, r, c) {
			addMove(moves, pc, from, r, c)
		}
	}
}

// 士：九宫内斜走一格
func genAdvisorMoves(b *Board, pc Piece, from Position, moves *[]Move) {
	side := pc.Side()
	for _, d := range bishopDirs {
		r := from.Row + d[0]
		c := from.Col + d[1]
		if !onBoard(r, c) || !inPalace(side, r, c) {
			continue
		}
		if canLand(b, side, r, c) {
			addMove(moves, pc, from, r, c)
		}
	}
}

// 将：九宫内上下左右一格（对脸在合法性过滤里处理）
func genGeneralMoves(b *Board, pc Piece, from Position, moves *[]Move) {
	side := pc.Side()
	for _, d := range rookDirs {
		r := from.Row + d[0]
		c := from.Col + d[1]
		if !onBoard(r, c) || !inPalace(side, r, c) {
			continue
		}
		if canLand(b, side, r, c) {
			addMove(moves, pc, from, r, c)
		}
	}
}
