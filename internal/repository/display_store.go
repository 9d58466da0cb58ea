// Package repository contains the read-side data access for the display
// subsystem. All queries live on a single DisplayStore so the rest of the
// service depends on one gateway; the methods are split across files by
// entity (screens, menus, templates, contents).
package repository

import (
	"database/sql"
	"strings"
)

// DisplayStore is the concrete store gateway over MySQL. It is read-only:
// every write to screens, templates, menus and contents happens on the
// admin CRUD surface, which is a separate service.
type DisplayStore struct {
	db *sql.DB
}

// NewDisplayStore constructs a DisplayStore with the given DB handle.
func NewDisplayStore(db *sql.DB) *DisplayStore {
	return &DisplayStore{db: db}
}

// placeholders renders an "?, ?, ?" fragment and the matching args slice for
// an IN clause over the given ids. Callers must ensure ids is non-empty.
func placeholders(ids []uint64) (string, []interface{}) {
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(ids)), ","), args
}
