package types

import "time"

// Task is a to-do item owned by a user. Tasks are reachable through the
// store contract only; no HTTP routes are exposed for them.
type Task struct {
	ID        int       `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Complete  bool      `json:"complete" db:"complete"`
	UserID    int       `json:"-" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
