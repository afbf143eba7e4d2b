package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store is the single gorm-backed persistence gateway. Entity-specific
// methods live in the per-entity files of this package.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// InTransaction runs fn against a Store bound to one database transaction.
// Any error rolls the whole transaction back.
func (s *Store) InTransaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
