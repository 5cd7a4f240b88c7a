package hxstyle

import (
	"errors"

	"github.com/pthm/hxstyle/lib/encoding"
	"github.com/pthm/hxstyle/lib/sheet"
	"github.com/pthm/hxstyle/lib/tables"
)

// Sentinel errors.
var (
	ErrNotFound         = errors.New("hxstyle: component not found")
	ErrTableConflict    = tables.ErrConflict
	ErrInvalidSnapshot  = sheet.ErrSnapshot
	ErrSignatureInvalid = encoding.ErrSignature
	ErrInvalidFormat    = encoding.ErrMalformed
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSnapshotError checks if err means a snapshot could not be decoded or
// applied.
func IsSnapshotError(err error) bool {
	return errors.Is(err, ErrInvalidSnapshot) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsTableConflict checks if err reports inconsistent lookup tables.
func IsTableConflict(err error) bool {
	return errors.Is(err, ErrTableConflict)
}
