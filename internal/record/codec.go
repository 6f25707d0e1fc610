package record

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Encode writes the record as zstd-compressed JSON.
func Encode(w io.Writer, r *Record) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("create zstd encoder: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(r); err != nil {
		enc.Close()
		return fmt.Errorf("encode record: %w", err)
	}
	return enc.Close()
}

func Decode(rd io.Reader) (*Record, error) {
	dec, err := zstd.NewReader(rd)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	var rec Record
	if err := json.NewDecoder(dec).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec.Visibility == "" {
		rec.Visibility = Private
	}
	return &rec, nil
}
