package game

import (
	"sync"
	"time"

	"xiangqi/internal/record"
	"xiangqi/internal/xiangqi"
)

// GameState 一局棋。mu 覆盖合法性试走和落子的全过程
type GameState struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	initial   *xiangqi.Board
	board     *xiangqi.Board
	history   []xiangqi.Move
	updatedAt time.Time
}

// Snapshot 给前端的只读视图
type Snapshot struct {
	FEN        string
	Board      *xiangqi.Board
	Turn       xiangqi.Side
	Status     xiangqi.Status
	Winner     xiangqi.Side
	InCheck    bool
	LegalMoves []xiangqi.Move
	History    []xiangqi.Move
	Hash       uint64
	UpdatedAt  time.Time
}

func newGameState(id string, initial *xiangqi.Board) *GameState {
	now := time.Now()
	return &GameState{
		ID:        id,
		CreatedAt: now,
		initial:   initial.Clone(),
		board:     initial.Clone(),
		updatedAt: now,
	}
}

// Play 走一步；被拒绝时返回 xiangqi 包里的错误，局面不变
func (g *GameState) Play(m xiangqi.Move) (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if st := g.board.Status(); st != xiangqi.StatusOngoing {
		return g.snapshotLocked(), ErrGameOver
	}
	m.Piece = g.board.PieceAt(m.From)
	if err := g.board.ApplyLegalMove(m); err != nil {
		return g.snapshotLocked(), err
	}
	g.history = append(g.history, m)
	g.updatedAt = time.Now()
	return g.snapshotLocked(), nil
}

func (g *GameState) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

func (g *GameState) snapshotLocked() Snapshot {
	b := g.board
	st := b.Status()
	winner := xiangqi.NoSide
	if st != xiangqi.StatusOngoing {
		winner = b.Turn().Opposite()
	}
	return Snapshot{
		FEN:        b.FEN(),
		Board:      b.Clone(),
		Turn:       b.Turn(),
		Status:     st,
		Winner:     winner,
		InCheck:    b.InCheck(b.Turn()),
		LegalMoves: b.AllLegalMoves(),
		History:    append([]xiangqi.Move(nil), g.history...),
		Hash:       b.Hash(),
		UpdatedAt:  g.updatedAt,
	}
}

// Candidates from 上棋子的合法落点，用来给界面高亮
func (g *GameState) Candidates(from xiangqi.Position) []xiangqi.Move {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.LegalMoves(from)
}

// Record 把这局打包成存档
func (g *GameState) Record(username string, vis record.Visibility) (*record.Record, error) {
	g.mu.Lock()
	initial := g.initial.Clone()
	history := append([]xiangqi.Move(nil), g.history...)
	g.mu.Unlock()

	rec, err := record.New(username, initial, history)
	if err != nil {
		return nil, err
	}
	rec.Visibility = vis
	return rec, nil
}
