package hxstyle

import (
	"github.com/pthm/hxstyle/lib/encoding"
	"github.com/pthm/hxstyle/lib/sheet"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// Mode selects signed or sealed snapshots.
type Mode = encoding.Mode

const (
	Signed = encoding.Signed
	Sealed = encoding.Sealed
)

// NewEncoder creates a new encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// Snapshot encodes the registered styles of s.
func Snapshot(s *sheet.Sheet, enc *Encoder, mode Mode) (string, error) {
	return s.Snapshot(enc, mode)
}

// Hydrate applies a snapshot produced by Snapshot to s.
func Hydrate(s *sheet.Sheet, enc *Encoder, mode Mode, data string) (int, error) {
	return s.Hydrate(enc, mode, data)
}
