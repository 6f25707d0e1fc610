package record

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"xiangqi/internal/config"
)

const fileExt = ".xqr"

// FileStore keeps one zstd-compressed record per file.
type FileStore struct {
	dir string
	mu  sync.Mutex // serialises read-modify-write in SetVisibility
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = config.DefaultRecordDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create record dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(id string) (string, error) {
	// ids are uuids; anything else could escape the directory
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrNotFound
	}
	return filepath.Join(s.dir, id+fileExt), nil
}

func (s *FileStore) Save(_ context.Context, rec *Record) error {
	p, err := s.path(rec.ID)
	if err != nil {
		return fmt.Errorf("save record: invalid id %q", rec.ID)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, rec); err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename record: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context, id string) (*Record, error) {
	p, err := s.path(id)
	if err != nil {
		return nil, err
	}
	return readRecordFile(p)
}

func readRecordFile(p string) (*Record, error) {
	f, err := os.Open(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open record: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

func (s *FileStore) List(ctx context.Context, f Filter) ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	var out []Summary
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := readRecordFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if f.match(rec) {
			out = append(out, rec.Summary())
		}
	}
	sortSummaries(out)
	return out, nil
}

func (s *FileStore) SetVisibility(ctx context.Context, id string, v Visibility) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, err := s.Load(ctx, id)
	if err != nil {
		return err
	}
	rec.Visibility = v
	return s.Save(ctx, rec)
}

func (s *FileStore) Close() error { return nil }
