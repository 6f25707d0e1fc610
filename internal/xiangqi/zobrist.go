package xiangqi

import "sync"

const (
	zobristPieceTypes = 8 // PieceType 范围 [1..7]，0 保留空位不用
	numSquares        = Rows * Cols
)

var (
	zobristOnce sync.Once

	zobristPieces [2][zobristPieceTypes][numSquares]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for pt := 1; pt < zobristPieceTypes; pt++ {
				for sq := 0; sq < numSquares; sq++ {
					zobristPieces[side][pt][sq] = next()
				}
			}
		}
		zobristSide = next()
	})
}

func pieceHashKey(pc Piece, pos Position) uint64 {
	if pc == NoPiece || !onBoard(pos.Row, pos.Col) {
		return 0
	}
	initZobrist()

	var sideIdx int
	switch pc.Side() {
	case Red:
		sideIdx = 0
	case Black:
		sideIdx = 1
	default:
		return 0
	}

	pt := int(pc.Type())
	if pt <= 0 || pt >= zobristPieceTypes {
		return 0
	}
	return zobristPieces[sideIdx][pt][pos.Row*Cols+pos.Col]
}

// CalculateHash 全量计算当前局面的 Zobrist 哈希。
func (b *Board) CalculateHash() uint64 {
	initZobrist()

	var h uint64
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			pc := b.grid[r][c]
			if pc == NoPiece {
				continue
			}
			h ^= pieceHashKey(pc, Position{Row: r, Col: c})
		}
	}
	if b.turn == Black {
		h ^= zobristSide
	}
	return h
}
