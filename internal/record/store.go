package record

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"xiangqi/internal/config"
)

var ErrNotFound = errors.New("record not found")

type Filter struct {
	Username   string // empty = any user
	PublicOnly bool
}

func (f Filter) match(r *Record) bool {
	if f.Username != "" && r.Username != f.Username {
		return false
	}
	if f.PublicOnly && r.Visibility != Public {
		return false
	}
	return true
}

type Store interface {
	Save(ctx context.Context, rec *Record) error
	Load(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context, f Filter) ([]Summary, error)
	SetVisibility(ctx context.Context, id string, v Visibility) error
	Close() error
}

// Open picks a backend from configuration.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Dir)
	case "mongo":
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

func sortSummaries(out []Summary) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
}

// MemoryStore keeps records in process; used by tests and the "memory" backend.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Save(_ context.Context, rec *Record) error {
	cp := *rec
	cp.Moves = append([]MoveRecord(nil), rec.Moves...)
	s.mu.Lock()
	s.records[rec.ID] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	rec.Moves = append([]MoveRecord(nil), rec.Moves...)
	return &rec, nil
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.records))
	for id := range s.records {
		rec := s.records[id]
		if f.match(&rec) {
			out = append(out, rec.Summary())
		}
	}
	sortSummaries(out)
	return out, nil
}

func (s *MemoryStore) SetVisibility(_ context.Context, id string, v Visibility) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return ErrNotFound
	}
	rec.Visibility = v
	s.records[id] = rec
	return nil
}

func (s *MemoryStore) Close() error { return nil }
