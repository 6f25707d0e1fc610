// Package record stores finished or in-progress games as an initial
// position plus the ordered list of moves played from it.
package record

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"xiangqi/internal/xiangqi"
)

type Visibility string

const (
	Private Visibility = "private"
	Public  Visibility = "public"
)

var ErrInvalidVisibility = errors.New("visibility must be private or public")

func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(strings.ToLower(strings.TrimSpace(s))) {
	case "", Private:
		return Private, nil
	case Public:
		return Public, nil
	}
	return "", ErrInvalidVisibility
}

// MoveRecord only keeps origin and destination; the piece is implied by replay.
type MoveRecord struct {
	From xiangqi.Position `json:"from" bson:"from"`
	To   xiangqi.Position `json:"to" bson:"to"`
}

func (m MoveRecord) Move() xiangqi.Move {
	return xiangqi.Move{From: m.From, To: m.To}
}

type Record struct {
	ID         string       `json:"id" bson:"_id"`
	Username   string       `json:"username" bson:"username"`
	Initial    string       `json:"initial" bson:"initial"` // FEN
	Moves      []MoveRecord `json:"moves" bson:"moves"`
	Visibility Visibility   `json:"visibility" bson:"visibility"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at"`
}

// Summary is what listings return; it avoids shipping move lists around.
type Summary struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Visibility Visibility `json:"visibility"`
	Plies      int        `json:"plies"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (r *Record) Summary() Summary {
	return Summary{
		ID:         r.ID,
		Username:   r.Username,
		Visibility: r.Visibility,
		Plies:      len(r.Moves),
		CreatedAt:  r.CreatedAt,
	}
}

// New builds a private record and checks that every move replays cleanly.
func New(username string, initial *xiangqi.Board, moves []xiangqi.Move) (*Record, error) {
	rec := &Record{
		ID:         uuid.NewString(),
		Username:   username,
		Initial:    initial.FEN(),
		Moves:      make([]MoveRecord, len(moves)),
		Visibility: Private,
		CreatedAt:  time.Now().UTC(),
	}
	for i, m := range moves {
		rec.Moves[i] = MoveRecord{From: m.From, To: m.To}
	}
	if _, err := rec.Replay(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Replay rebuilds the final board by applying every move in order.
func (r *Record) Replay() (*xiangqi.Board, error) {
	b, err := xiangqi.DecodeFEN(r.Initial)
	if err != nil {
		return nil, fmt.Errorf("record %s: initial position: %w", r.ID, err)
	}
	for i, m := range r.Moves {
		if err := b.ApplyMove(m.Move()); err != nil {
			return nil, fmt.Errorf("record %s: ply %d (%s%s): %w", r.ID, i+1, m.From.ICCS(), m.To.ICCS(), err)
		}
	}
	return b, nil
}
