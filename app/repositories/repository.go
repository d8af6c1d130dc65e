// Package repositories is the persistence layer: the Catalog Store
// (products, categories, authors) and the Order Ledger.
package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("repositories: record not found")
	// ErrMissingRelation is returned when a write references a category or
	// author that does not exist.
	ErrMissingRelation = errors.New("repositories: referenced record does not exist")
)

// wrap tags err with the operation and maps gorm's not-found to ErrNotFound.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("repositories: %s: %w", op, err)
}
