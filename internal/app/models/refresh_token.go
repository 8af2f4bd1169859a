package models

import "time"

// RefreshToken is a server-side session record for an authenticated
// instructor. Revoking it ends the session.
type RefreshToken struct {
	ID           int64     `json:"id" db:"id"`
	InstructorID int64     `json:"instructorId" db:"instructor_id"`
	Token        string    `json:"token" db:"token"`
	ExpiresAt    time.Time `json:"expiresAt" db:"expires_at"`
	Revoked      bool      `json:"revoked" db:"revoked"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// IsValid reports whether the token can still be exchanged.
func (t *RefreshToken) IsValid() bool {
	return !t.Revoked && time.Now().Before(t.ExpiresAt)
}
