// Package store is the transactional persistence layer. It is the one
// place the overlap invariant, review/conversation uniqueness, and the
// per-item serialization primitive are enforced — even if every caller
// above it has bugs, the Store refuses to commit a violation.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors the Store signals to its callers (internal/booking,
// internal/review, internal/messaging), which translate them into the
// apperr taxonomy. Kept separate from apperr so these report only what
// actually happened at the storage layer; the category cycle check is the
// one place this package returns an apperr value (apperr.ErrCategoryCycle)
// directly.
var (
	ErrOverlap            = errors.New("store: overlapping active booking for item")
	ErrDuplicateReview    = errors.New("store: review already exists for booking+direction")
	ErrConversationExists = errors.New("store: conversation already exists for pair+booking")
	ErrNotFound           = errors.New("store: record not found")
	ErrDuplicateEmail     = errors.New("store: email already registered")
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// WithinTx runs fn inside a single transaction; any returned error rolls
// back the whole unit of work.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.DB.WithContext(ctx).Transaction(fn)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
