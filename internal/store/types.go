// Package store provides user account storage for the analysis API.
// Accounts carry a bcrypt password hash and gate access to the
// authenticated analysis endpoints.
package store

import (
	"context"
	"errors"
	"time"
)

// User represents a registered account.
type User struct {
	ID             int64     `json:"id,omitempty"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name,omitempty"`
	HashedPassword string    `json:"-"`
	Disabled       bool      `json:"disabled"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// ErrDuplicate is returned when the username or email is already registered.
var ErrDuplicate = errors.New("username or email already registered")

// Store defines the interface for user storage operations.
type Store interface {
	// Create registers a new user. The caller provides the bcrypt hash.
	Create(ctx context.Context, user *User) error

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// List returns all users with pagination.
	List(ctx context.Context, limit, offset int) ([]*User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)

	// SetDisabled enables or disables an account.
	SetDisabled(ctx context.Context, id int64, disabled bool) error

	// Delete removes a user by ID.
	Delete(ctx context.Context, id int64) error

	// Close closes the underlying database connection.
	Close() error
}
