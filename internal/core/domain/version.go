package domain

import (
	"time"

	"github.com/finchbooks/finch/internal/apperrors"
)

// VersionToken is an opaque optimistic-concurrency witness. A caller receives
// one when loading a record and must hand it back on update; a mismatch means
// the record was replaced by a concurrent writer since that read. It is
// deliberately separate from EnteredAt: "when the row was created" and "is
// this the version I last read" are different facts.
type VersionToken struct {
	stamp time.Time
}

// NewVersionToken mints a token from a commit timestamp.
func NewVersionToken(stamp time.Time) VersionToken {
	return VersionToken{stamp: stamp.UTC()}
}

// ParseVersionToken restores a token from its wire form.
func ParseVersionToken(s string) (VersionToken, error) {
	stamp, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return VersionToken{}, apperrors.ErrValidation
	}
	return VersionToken{stamp: stamp.UTC()}, nil
}

// String returns the wire form of the token.
func (v VersionToken) String() string {
	return v.stamp.Format(time.RFC3339Nano)
}

// Stamp exposes the underlying commit timestamp for persistence.
func (v VersionToken) Stamp() time.Time {
	return v.stamp
}

// Equal reports whether two tokens witness the same version.
func (v VersionToken) Equal(other VersionToken) bool {
	return v.stamp.Equal(other.stamp)
}

// IsZero reports whether the token is unset.
func (v VersionToken) IsZero() bool {
	return v.stamp.IsZero()
}

// Versioned pairs a value with the version token it was read at.
type Versioned[T any] struct {
	Value T
	Token VersionToken
}

// CheckVersion compares the currently stored token with the one the caller
// read. On mismatch the caller's copy is stale: it must discard its in-memory
// edit, reload, and re-apply or abandon. No merge is attempted.
func CheckVersion(stored, supplied VersionToken) error {
	if !stored.Equal(supplied) {
		return &apperrors.StaleVersionError{Stored: stored.String(), Supplied: supplied.String()}
	}
	return nil
}
