package models

import "time"

// Regional represents a regional office of the institution. The set of
// regionals is seeded at startup and read-only afterward.
type Regional struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
