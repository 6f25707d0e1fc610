package xiangqi

// 马的 8 种“日”字：终点 + 马腿
var horseLegMoves = [8]struct {
	Dr, Dc int // 终点
	Br, Bc int // 马腿
}{
	{-2, -1, -1, 0},
	{-2, +1, -1, 0},
	{-1, -2, 0, -1},
	{-1, +2, 0, +1},
	{+1, -2, 0, -1},
	{+1, +2, 0, +1},
	{+2, -1, +1, 0},
	{+2, +1, +1, 0},
}

func genHorseMoves(b *Board, pc Piece, from Position, moves *[]Move) {
	side := pc.Side()
	for _, m := range horseLegMoves {
		r := from.Row + m.Dr
		c := from.Col + m.Dc
		if !onBoard(r, c) {
			continue
		}
		if b.grid[from.Row+m.Br][from.Col+m.Bc] != NoPiece {
			continue // 憋马腿
		}
		if canLand(b, side, r, c) {
			addMove(moves, pc, from, r, c)
		}
	}
}
