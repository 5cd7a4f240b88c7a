package hxstyle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pthm/hxstyle/lib/sheet"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors are distinct
	errs := []error{
		ErrNotFound,
		ErrTableConflict,
		ErrInvalidSnapshot,
		ErrSignatureInvalid,
		ErrInvalidFormat,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrNotFound", ErrNotFound, true},
		{"wrapped ErrNotFound", fmt.Errorf("wrapped: %w", ErrNotFound), true},
		{"other error", errors.New("other error"), false},
		{"ErrInvalidSnapshot", ErrInvalidSnapshot, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsNotFound(tt.err)
			if result != tt.expect {
				t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, result, tt.expect)
			}
		})
	}
}

func TestIsSnapshotError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrInvalidSnapshot", ErrInvalidSnapshot, true},
		{"ErrSignatureInvalid", ErrSignatureInvalid, true},
		{"wrapped ErrInvalidFormat", fmt.Errorf("decode: %w", ErrInvalidFormat), true},
		{"ErrNotFound", ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsSnapshotError(tt.err)
			if result != tt.expect {
				t.Errorf("IsSnapshotError(%v) = %v, want %v", tt.err, result, tt.expect)
			}
		})
	}
}

func TestSnapshotErrorsSurface(t *testing.T) {
	enc, err := NewEncoder([]byte("key-one"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}
	other, _ := NewEncoder([]byte("key-two"))

	src := sheet.New()
	src.Compile(sheet.S("color", "red"))
	data, err := Snapshot(src, enc, Signed)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	_, err = Hydrate(sheet.New(), other, Signed, data)
	if !IsSnapshotError(err) {
		t.Errorf("expected snapshot error for wrong key, got %v", err)
	}

	_, err = Hydrate(sheet.New(sheet.WithKey("x")), enc, Signed, data)
	if !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("expected ErrInvalidSnapshot for key mismatch, got %v", err)
	}

	n, err := Hydrate(sheet.New(), enc, Signed, data)
	if err != nil || n != 1 {
		t.Errorf("Hydrate = %d, %v; want 1, nil", n, err)
	}
}
