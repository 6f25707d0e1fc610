package xiangqi

import (
	"errors"
	"math/rand"
	"testing"
)

func TestSideOpposite(t *testing.T) {
	for _, s := range []Side{Red, Black} {
		if s.Opposite() == s {
			t.Fatalf("%s.Opposite() returned itself", s)
		}
		if s.Opposite().Opposite() != s {
			t.Fatalf("Opposite is not an involution for %s", s)
		}
	}
	if Red.String() != "R" || Black.String() != "B" {
		t.Fatalf("side codes: %q %q", Red, Black)
	}
}

func TestPositionString(t *testing.T) {
	if got := NewPosition(9, 4).String(); got != "(9, 4)" {
		t.Fatalf("got %q", got)
	}
	if NewPosition(3, 4) != (Position{Row: 3, Col: 4}) {
		t.Fatal("positions with equal coordinates must be equal")
	}
}

func TestPieceEncoding(t *testing.T) {
	for pt := PieceGeneral; pt <= PieceSoldier; pt++ {
		for _, s := range []Side{Red, Black} {
			pc := MakePiece(s, pt)
			if pc.Type() != pt || pc.Side() != s {
				t.Fatalf("MakePiece(%s, %s) decoded as %s %s", s, pt, pc.Side(), pc.Type())
			}
		}
	}
	if MakePiece(NoSide, PieceChariot) != NoPiece || NoPiece.Side() != NoSide {
		t.Fatal("empty piece encoding")
	}
	if got := redChariot.ShortCode(); got != "RR" {
		t.Fatalf("red chariot short code %q", got)
	}
}

func TestOffBoardProbes(t *testing.T) {
	b := NewBoard()
	for _, p := range []Position{{-1, 0}, {0, -1}, {10, 0}, {0, 9}} {
		if b.IsValid(p.Row, p.Col) {
			t.Fatalf("%s reported valid", p)
		}
		if pc := b.PieceAt(p); pc != NoPiece {
			t.Fatalf("%s returned %v", p, pc)
		}
	}
	if !b.IsValid(0, 0) || !b.IsValid(9, 8) {
		t.Fatal("corners must be valid")
	}
}

func TestInitialLayout(t *testing.T) {
	b := NewBoard()
	if b.Turn() != Red {
		t.Fatalf("turn %s", b.Turn())
	}
	if got := b.PieceCount(NoSide); got != 32 {
		t.Fatalf("piece count %d", got)
	}
	if b.Piece(9, 4) != redGeneral || b.Piece(0, 4) != blkGeneral {
		t.Fatal("generals misplaced")
	}
	if b.Piece(0, 0) != blkChariot || b.Piece(9, 8) != redChariot {
		t.Fatal("chariots misplaced")
	}

	s := NewSkeletonBoard()
	if got := s.PieceCount(NoSide); got != 6 {
		t.Fatalf("skeleton piece count %d", got)
	}
	if !s.GeneralsFacing() {
		t.Fatal("skeleton generals should face each other")
	}
}

// 演示局面里的四步：帅上一步；黑车横走；黑将出宫被拒；红方动黑子被拒
func TestSkeletonScenarios(t *testing.T) {
	b := NewSkeletonBoard()

	err := b.ApplyMove(Move{From: Position{9, 4}, To: Position{8, 4}, Piece: b.Piece(9, 4)})
	if err != nil {
		t.Fatalf("red general step: %v", err)
	}
	if b.Piece(9, 4) != NoPiece || b.Piece(8, 4) != redGeneral {
		t.Fatal("general did not move")
	}
	if b.Turn() != Black {
		t.Fatalf("turn %s, want B", b.Turn())
	}

	// (0,4) 上是自己的将，车最多走到 (0,3)
	err = b.ApplyMove(Move{From: Position{0, 0}, To: Position{0, 4}})
	if !errors.Is(err, ErrIllegalDestination) {
		t.Fatalf("chariot onto own general: got %v", err)
	}

	fen, hash := b.FEN(), b.Hash()
	err = b.ApplyMove(Move{From: Position{0, 4}, To: Position{3, 4}})
	if !errors.Is(err, ErrIllegalDestination) {
		t.Fatalf("general out of palace: got %v", err)
	}
	if b.FEN() != fen || b.Hash() != hash || b.Turn() != Black {
		t.Fatal("rejected move changed the board")
	}

	if err := b.ApplyMove(Move{From: Position{0, 0}, To: Position{0, 3}}); err != nil {
		t.Fatalf("black chariot slide: %v", err)
	}
	if b.Piece(0, 3) != blkChariot || b.Turn() != Red {
		t.Fatal("black chariot slide not applied")
	}
}

func TestRejectWrongSide(t *testing.T) {
	b := NewSkeletonBoard()
	// 几何上合法，但红方走棋
	err := b.ApplyMove(Move{From: Position{0, 0}, To: Position{0, 1}})
	if !errors.Is(err, ErrWrongSide) {
		t.Fatalf("got %v, want ErrWrongSide", err)
	}
	err = b.ApplyMove(Move{From: Position{5, 5}, To: Position{4, 5}})
	if !errors.Is(err, ErrEmptyOrigin) {
		t.Fatalf("got %v, want ErrEmptyOrigin", err)
	}
}

func TestRejectionIsIdempotent(t *testing.T) {
	b := NewBoard()
	bad := Move{From: Position{9, 0}, To: Position{5, 0}} // 被自己的兵挡住
	fen, hash := b.FEN(), b.Hash()
	for i := 0; i < 2; i++ {
		if err := b.ApplyMove(bad); !errors.Is(err, ErrIllegalDestination) {
			t.Fatalf("attempt %d: got %v", i, err)
		}
		if b.FEN() != fen || b.Hash() != hash || b.Turn() != Red {
			t.Fatalf("attempt %d mutated the board", i)
		}
	}
}

func TestFullBoardGeneralStep(t *testing.T) {
	b := NewBoard()
	if err := b.ApplyLegalMove(Move{From: Position{9, 4}, To: Position{8, 4}}); err != nil {
		t.Fatalf("general step: %v", err)
	}
	if b.Piece(8, 4) != redGeneral || b.Turn() != Black {
		t.Fatal("move not applied")
	}
}

func TestTurnAlternation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewBoard()
	for n := 1; n <= 60; n++ {
		legal := b.AllLegalMoves()
		if len(legal) == 0 {
			break
		}
		if err := b.ApplyLegalMove(legal[rng.Intn(len(legal))]); err != nil {
			t.Fatalf("ply %d: %v", n, err)
		}
		if (b.Turn() == Red) != (n%2 == 0) {
			t.Fatalf("after %d moves turn is %s", n, b.Turn())
		}
	}
}

func TestCheckDetection(t *testing.T) {
	b := NewEmptyBoard(Red)
	place(b, 9, 4, redGeneral)
	place(b, 5, 4, blkChariot)
	if !b.InCheck(Red) {
		t.Fatal("chariot on open file should give check")
	}
	if b.InCheck(Black) {
		t.Fatal("black has no general, cannot be in check")
	}
	place(b, 7, 4, redHorse)
	if b.InCheck(Red) {
		t.Fatal("blocked file should not give check")
	}
}

func TestSelfCheckRejected(t *testing.T) {
	b := NewEmptyBoard(Red)
	place(b, 9, 4, redGeneral)
	place(b, 8, 4, redChariot)
	place(b, 2, 4, blkChariot)
	place(b, 0, 3, blkGeneral)

	pin := Move{From: Position{8, 4}, To: Position{8, 0}}
	fen := b.FEN()
	if err := b.ApplyLegalMove(pin); !errors.Is(err, ErrSelfCheck) {
		t.Fatalf("got %v, want ErrSelfCheck", err)
	}
	if b.FEN() != fen || b.Turn() != Red {
		t.Fatal("self-check probe mutated the board")
	}
	for _, mv := range b.LegalMoves(Position{8, 4}) {
		if mv.To.Col != 4 {
			t.Fatalf("pinned chariot may leave the file: %s", mv)
		}
	}

	// 伪合法层面不管这些
	if err := b.Clone().ApplyMove(pin); err != nil {
		t.Fatalf("pseudo-legal apply: %v", err)
	}
}

func TestGeneralsFacingRejected(t *testing.T) {
	b := NewEmptyBoard(Red)
	place(b, 9, 4, redGeneral)
	place(b, 0, 3, blkGeneral)

	err := b.ApplyLegalMove(Move{From: Position{9, 4}, To: Position{9, 3}})
	if !errors.Is(err, ErrGeneralsFacing) {
		t.Fatalf("got %v, want ErrGeneralsFacing", err)
	}
	if err := b.ApplyLegalMove(Move{From: Position{9, 4}, To: Position{8, 4}}); err != nil {
		t.Fatalf("safe step: %v", err)
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		want   Status
		winner Side
	}{
		{"opening", StartFEN, StatusOngoing, NoSide},
		{"checkmate", "R3k4/8R/9/9/9/9/9/9/9/3K5 b", StatusCheckmate, Red},
		{"stalemate", "3k5/8R/4R4/9/9/9/9/9/9/5K3 b", StatusStalemate, Red},
		{"no general", "3k5/9/9/9/9/9/9/9/9/9 w", StatusGeneralCaptured, Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := DecodeFEN(tt.fen)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got := b.Status(); got != tt.want {
				t.Fatalf("status %s, want %s", got, tt.want)
			}
			if got := b.Winner(); got != tt.winner {
				t.Fatalf("winner %s, want %s", got, tt.winner)
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	c := b.Clone()
	if err := c.ApplyLegalMove(Move{From: Position{7, 7}, To: Position{7, 4}}); err != nil {
		t.Fatalf("clone move: %v", err)
	}
	if b.FEN() != StartFEN {
		t.Fatal("moving on a clone changed the original")
	}
}
