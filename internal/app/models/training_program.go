package models

import "time"

// TrainingProgram represents a named training program category
// (programa de formación). Seeded at startup, read-only afterward.
type TrainingProgram struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
