package repository

import (
	"database/sql"
	"errors"
)

// ErrNotFound marks a missing row; callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}
