package types

import "time"

// User represents an account in the system.
type User struct {
	// ID is the store-owned sequential identifier. It is never exposed
	// outside the process; PublicID is the only external handle.
	ID int `json:"-" db:"id"`

	// PublicID is the externally visible random identifier, assigned at
	// creation and immutable afterwards.
	PublicID string `json:"public_id" db:"public_id"`

	// Name is the display and login name. Uniqueness is not enforced.
	Name string `json:"name" db:"name"`

	// PasswordHash stores the bcrypt hash of the user's password.
	PasswordHash string `json:"-" db:"password_hash"`

	// IsAdmin gates all user-management operations except self
	// registration and login. Always false at creation.
	IsAdmin bool `json:"is_admin" db:"is_admin"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
