// Package repository implements the persistence contracts on GORM and
// Postgres. Cart and booking item arrays are stored as JSONB documents so a
// cart reads and writes as one row.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// notFound translates GORM's record-not-found into the domain sentinel the
// services branch on. Other errors pass through untouched.
func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
