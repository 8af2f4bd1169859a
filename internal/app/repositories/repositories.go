// Package repositories contains the data access layer: one repository per
// aggregate, hand-written SQL over a pgx connection pool.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency injection.
type Repositories struct {
	RegionalRepository   *RegionalRepository
	ProgramRepository    *ProgramRepository
	InstructorRepository *InstructorRepository
	GuideRepository      *GuideRepository
	TokenRepository      *TokenRepository
}

// NewRepositories creates all repositories sharing one pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		RegionalRepository:   NewRegionalRepository(db),
		ProgramRepository:    NewProgramRepository(db),
		InstructorRepository: NewInstructorRepository(db),
		GuideRepository:      NewGuideRepository(db),
		TokenRepository:      NewTokenRepository(db),
	}
}
