package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/senadev/guias-backend/internal/app/models"
)

// GuideRepository handles learning guide database operations. Guides are
// created on upload and never updated or deleted.
type GuideRepository struct {
	db *pgxpool.Pool
}

// NewGuideRepository creates a new GuideRepository
func NewGuideRepository(db *pgxpool.Pool) *GuideRepository {
	return &GuideRepository{
		db: db,
	}
}

// Create inserts a new guide record and fills in its generated ID and
// publication time.
func (r *GuideRepository) Create(ctx context.Context, guide *models.LearningGuide) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO learning_guides (name, description, program_id, pdf_filename, instructor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, published_at, created_at`,
		guide.Name, guide.Description, guide.ProgramID, guide.PDFFilename, guide.InstructorID).
		Scan(&guide.ID, &guide.PublishedAt, &guide.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating learning guide: %w", err)
	}

	return nil
}

// ListWithReferences returns all guides newest-first with instructor, program
// and regional names resolved in one explicit joined read. Dangling
// references scan as empty strings; the service layer substitutes the display
// placeholder.
func (r *GuideRepository) ListWithReferences(ctx context.Context) ([]*models.GuideListing, error) {
	rows, err := r.db.Query(ctx, `
		SELECT g.id, g.name, g.description, g.pdf_filename, g.published_at,
		       COALESCE(i.full_name, ''), COALESCE(p.name, ''), COALESCE(r.name, '')
		FROM learning_guides g
		LEFT JOIN instructors i ON i.id = g.instructor_id
		LEFT JOIN training_programs p ON p.id = g.program_id
		LEFT JOIN regionals r ON r.id = i.regional_id
		ORDER BY g.published_at DESC, g.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying learning guides: %w", err)
	}
	defer rows.Close()

	var listings []*models.GuideListing
	for rows.Next() {
		listing := &models.GuideListing{}
		if err := rows.Scan(
			&listing.ID, &listing.Name, &listing.Description, &listing.PDFFilename,
			&listing.PublishedAt, &listing.InstructorName, &listing.ProgramName,
			&listing.RegionalName); err != nil {
			return nil, fmt.Errorf("error scanning learning guide: %w", err)
		}
		listings = append(listings, listing)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating learning guides: %w", err)
	}

	return listings, nil
}

// FilenameExists checks whether any guide references the given stored filename.
func (r *GuideRepository) FilenameExists(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM learning_guides WHERE pdf_filename = $1)`,
		filename).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking guide filename: %w", err)
	}

	return exists, nil
}
