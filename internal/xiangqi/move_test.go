package xiangqi

import (
	"math/rand"
	"testing"
)

func place(b *Board, row, col int, pc Piece) {
	b.grid[row][col] = pc
	b.hash = b.CalculateHash()
}

func destSet(moves []Move) map[Position]bool {
	out := make(map[Position]bool, len(moves))
	for _, mv := range moves {
		out[mv.To] = true
	}
	return out
}

func assertDests(t *testing.T, moves []Move, want ...Position) {
	t.Helper()
	got := destSet(moves)
	if len(got) != len(moves) {
		t.Fatalf("duplicate destinations in %v", moves)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d destinations %v, want %d %v", len(got), moves, len(want), want)
	}
	for _, p := range want {
		if !got[p] {
			t.Fatalf("missing destination %s in %v", p, moves)
		}
	}
}

var (
	redChariot  = MakePiece(Red, PieceChariot)
	blkChariot  = MakePiece(Black, PieceChariot)
	redGeneral  = MakePiece(Red, PieceGeneral)
	blkGeneral  = MakePiece(Black, PieceGeneral)
	redCannon   = MakePiece(Red, PieceCannon)
	redHorse    = MakePiece(Red, PieceHorse)
	redElephant = MakePiece(Red, PieceElephant)
	redAdvisor  = MakePiece(Red, PieceAdvisor)
	redSoldier  = MakePiece(Red, PieceSoldier)
	blkSoldier  = MakePiece(Black, PieceSoldier)
)

func TestChariotSlidesToEdges(t *testing.T) {
	b := NewEmptyBoard(Red)
	place(b, 5, 4, redChariot)

	moves := b.PseudoLegalMoves(Position{5, 4})
	var want []Position
	for c := 0; c < Cols; c++ {
		if c != 4 {
			want = append(want, Position{5, c})
		}
	}
	for r := 0; r < Rows; r++ {
		if r != 5 {
			want = append(want, Position{r, 4})
		}
	}
	assertDests(t, moves, want...)
}

func TestChariotBlockers(t *testing.T) {
	tests := []struct {
		name    string
		blocker Piece
		want    []Position
	}{
		{"friendly", redSoldier, []Position{{5, 5}, {5, 6}}},
		{"enemy", blkSoldier, []Position{{5, 5}, {5, 6}, {5, 7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewEmptyBoard(Red)
			place(b, 5, 4, redChariot)
			place(b, 5, 7, tt.blocker)

			var right []Move
			for _, mv := range b.PseudoLegalMoves(Position{5, 4}) {
				if mv.To.Row == 5 && mv.To.Col > 4 {
					right = append(right, mv)
				}
			}
			assertDests(t, right, tt.want...)
		})
	}
}

func TestGeneralStaysInPalace(t *testing.T) {
	tests := []struct {
		name string
		pc   Piece
		at   Position
		want []Position
	}{
		{"red corner", redGeneral, Position{9, 3}, []Position{{8, 3}, {9, 4}}},
		{"red top corner", redGeneral, Position{7, 5}, []Position{{8, 5}, {7, 4}}},
		{"red centre", redGeneral, Position{8, 4}, []Position{{7, 4}, {9, 4}, {8, 3}, {8, 5}}},
		{"black corner", blkGeneral, Position{0, 5}, []Position{{1, 5}, {0, 4}}},
		{"black front edge", blkGeneral, Position{2, 4}, []Position{{1, 4}, {2, 3}, {2, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewEmptyBoard(Red)
			place(b, tt.at.Row, tt.at.Col, tt.pc)
			moves := b.PseudoLegalMoves(tt.at)
			assertDests(t, moves, tt.want...)
			for _, mv := range moves {
				if !inPalace(tt.pc.Side(), mv.To.Row, mv.To.Col) {
					t.Fatalf("%s leaves the palace", mv)
				}
			}
		})
	}
}

func TestGeneralCapturesOnlyEnemies(t *testing.T) {
	b := NewEmptyBoard(Red)
	place(b, 8, 4, redGeneral)
	place(b, 7, 4, blkSoldier)
	place(b, 8, 3, redAdvisor)
	assertDests(t, b.PseudoLegalMoves(Position{8, 4}), Position{7, 4}, Position{9, 4}, Position{8, 5})
}

func TestAdvisorDiagonalInPalace(t *testing.T) {
	b := NewEmptyBoard(Red)
	place(b, 9, 3, redAdvisor)
	assertDests(t, b.PseudoLegalMoves(Position{9, 3}), Position{8, 4})

	b = NewEmptyBoard(Red)
	place(b, 8, 4, redAdvisor)
	assertDests(t, b.PseudoLegalMoves(Position{8, 4}),
		Position{7, 3}, Position{7, 5}, Position{9, 3}, Position{9, 5})
}

func TestElephantEyeAndRiver(t *testing.T) {
	b := NewEmptyBoard(Red)
	place(b, 9, 2, redElephant)
	assertDests(t, b.PseudoLegalMoves(Position{9, 2}), Position{7, 0}, Position{7, 4})

	place(b, 8, 3, blkSoldier) // 塞象眼
	assertDests(t, b.PseudoLegalMoves(Position{9, 2}), Position{7, 0})

	b = NewEmptyBoard(Red)
	place(b, 5, 2, redElephant)
	assertDests(t, b.PseudoLegalMoves(Position{5, 2}), Position{7, 0}, Position{7, 4})
}

func TestHorseLegs(t *testing.T) {
	b := NewEmptyBoard(Red)
	place(b, 5, 4, redHorse)
	if got := len(b.PseudoLegalMoves(Position{5, 4})); got != 8 {
		t.Fatalf("open horse: got %d moves, want 8", got)
	}

	place(b, 4, 4, redSoldier) // 憋马腿
	moves := b.PseudoLegalMoves(Position{5, 4})
	if got := len(moves); got != 6 {
		t.Fatalf("blocked horse: got %d moves, want 6", got)
	}
	d := destSet(moves)
	if d[Position{3, 3}] || d[Position{3, 5}] {
		t.Fatalf("horse jumped over its leg: %v", moves)
	}

	b = NewEmptyBoard(Red)
	place(b, 9, 1, redHorse)
	assertDests(t, b.PseudoLegalMoves(Position{9, 1}), Position{7, 0}, Position{7, 2}, Position{8, 3})
}

func TestCannonScreens(t *testing.T) {
	right := func(b *Board) []Move {
		var out []Move
		for _, mv := range b.PseudoLegalMoves(Position{5, 4}) {
			if mv.To.Row == 5 && mv.To.Col > 4 {
				out = append(out, mv)
			}
		}
		return out
	}

	b := NewEmptyBoard(Red)
	place(b, 5, 4, redCannon)
	if got := len(b.PseudoLegalMoves(Position{5, 4})); got != 17 {
		t.Fatalf("open cannon: got %d moves, want 17", got)
	}

	place(b, 5, 6, redSoldier)
	place(b, 5, 8, blkSoldier)
	assertDests(t, right(b), Position{5, 5}, Position{5, 8})

	place(b, 5, 8, redSoldier)
	assertDests(t, right(b), Position{5, 5})

	b = NewEmptyBoard(Red)
	place(b, 5, 4, redCannon)
	place(b, 5, 5, blkSoldier)
	assertDests(t, right(b))
}

func TestSoldierRiver(t *testing.T) {
	tests := []struct {
		name string
		pc   Piece
		at   Position
		want []Position
	}{
		{"red home", redSoldier, Position{6, 4}, []Position{{5, 4}}},
		{"red crossed", redSoldier, Position{4, 4}, []Position{{3, 4}, {4, 3}, {4, 5}}},
		{"red last rank", redSoldier, Position{0, 0}, []Position{{0, 1}}},
		{"black home", blkSoldier, Position{3, 4}, []Position{{4, 4}}},
		{"black crossed", blkSoldier, Position{5, 4}, []Position{{6, 4}, {5, 3}, {5, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewEmptyBoard(Red)
			place(b, tt.at.Row, tt.at.Col, tt.pc)
			assertDests(t, b.PseudoLegalMoves(tt.at), tt.want...)
		})
	}
}

func TestPseudoMovesOffBoardOrEmpty(t *testing.T) {
	b := NewBoard()
	if moves := b.PseudoLegalMoves(Position{5, 5}); len(moves) != 0 {
		t.Fatalf("empty square produced moves: %v", moves)
	}
	if moves := redHorse.PseudoLegalMoves(b, Position{11, 4}); len(moves) != 0 {
		t.Fatalf("off-board origin produced moves: %v", moves)
	}
}

// 随机对局中的每个局面：所有伪合法走法都落在盘内、落点为空或敌子，且生成不改动棋盘
func TestPseudoMovesLandOnEmptyOrEnemy(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewBoard()
	for ply := 0; ply < 80; ply++ {
		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				pc := b.Piece(r, c)
				if pc == NoPiece {
					continue
				}
				before := b.FEN()
				moves := b.PseudoLegalMoves(Position{r, c})
				if b.FEN() != before {
					t.Fatalf("move generation mutated the board at ply %d", ply)
				}
				if len(destSet(moves)) != len(moves) {
					t.Fatalf("duplicate moves for %s at %s", pc.ShortCode(), Position{r, c})
				}
				for _, mv := range moves {
					if !b.IsValid(mv.To.Row, mv.To.Col) {
						t.Fatalf("off-board move %s", mv)
					}
					dst := b.PieceAt(mv.To)
					if dst != NoPiece && dst.Side() == pc.Side() {
						t.Fatalf("move %s captures own piece", mv)
					}
					if mv.Piece != pc || mv.From != (Position{r, c}) {
						t.Fatalf("move %s does not describe its piece", mv)
					}
				}
			}
		}
		legal := b.AllLegalMoves()
		if len(legal) == 0 {
			return
		}
		if err := b.ApplyLegalMove(legal[rng.Intn(len(legal))]); err != nil {
			t.Fatalf("ply %d: %v", ply, err)
		}
	}
}
