package models

import "time"

// Instructor defines an instructor account based on the 'instructors' table.
// Accounts are created only through self-registration and are never updated
// or deleted. PasswordHash holds the bcrypt hash; the plaintext is never stored.
type Instructor struct {
	ID           int64     `json:"id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	RegionalID   int64     `json:"regionalId" db:"regional_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Relation, populated when needed
	Regional *Regional `json:"regional,omitempty"`
}
