// Package owner provides per-user database scoping for GORM.
//
// Every table that holds user data carries an owner_id column. The scope
// here adds the WHERE owner_id = ? condition at the repository layer, on top
// of the row level security policies enforced by Postgres itself.
//
// Usage:
//
//	db.Scopes(owner.Scope(ownerID)).Find(&transactions)
package owner

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope applies owner filtering to GORM queries
func Scope(ownerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}
