package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"xiangqi/internal/record"
	"xiangqi/internal/xiangqi"
)

var (
	ErrNotFound = errors.New("game not found")
	ErrGameOver = errors.New("game is over")
)

type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
	log   zerolog.Logger
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		games: make(map[string]*GameState),
		log:   log.With().Str("component", "games").Logger(),
	}
}

func (m *Manager) add(initial *xiangqi.Board) *GameState {
	g := newGameState(uuid.NewString(), initial)
	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()
	m.log.Debug().Str("game", g.ID).Str("fen", initial.FEN()).Msg("game created")
	return g
}

// NewGame 标准开局
func (m *Manager) NewGame() *GameState {
	return m.add(xiangqi.NewBoard())
}

func (m *Manager) NewGameFromFEN(fen string) (*GameState, error) {
	b, err := xiangqi.DecodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return m.add(b), nil
}

// Restore 从存档重放出一局新对局，可以接着下
func (m *Manager) Restore(rec *record.Record) (*GameState, error) {
	initial, err := xiangqi.DecodeFEN(rec.Initial)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", rec.ID, err)
	}
	g := newGameState(uuid.NewString(), initial)
	for i, mr := range rec.Moves {
		mv := mr.Move()
		mv.Piece = g.board.PieceAt(mv.From)
		if err := g.board.ApplyMove(mv); err != nil {
			return nil, fmt.Errorf("restore %s: ply %d: %w", rec.ID, i+1, err)
		}
		g.history = append(g.history, mv)
	}

	m.mu.Lock()
	m.games[g.ID] = g
	m.mu.Unlock()
	m.log.Debug().Str("game", g.ID).Str("record", rec.ID).Int("plies", len(rec.Moves)).Msg("game restored")
	return g, nil
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return ErrNotFound
	}
	delete(m.games, id)
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// PruneIdle 删掉超过 maxIdle 没有动过的对局，返回删除数量
func (m *Manager) PruneIdle(now time.Time, maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, g := range m.games {
		g.mu.Lock()
		idle := now.Sub(g.updatedAt)
		g.mu.Unlock()
		if idle > maxIdle {
			delete(m.games, id)
			n++
		}
	}
	if n > 0 {
		m.log.Info().Int("pruned", n).Int("remaining", len(m.games)).Msg("pruned idle games")
	}
	return n
}
