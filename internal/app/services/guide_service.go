package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/senadev/guias-backend/internal/app/models"
	"github.com/senadev/guias-backend/internal/app/models/dto"
	"github.com/senadev/guias-backend/internal/pkg/apperrors"
)

// missingReferencePlaceholder is shown wherever a guide's instructor, program
// or regional reference cannot be resolved.
const missingReferencePlaceholder = "N/A"

// allowedExtensions is the set of accepted upload file types.
var allowedExtensions = map[string]bool{
	"pdf": true,
}

// ProgramStore resolves training program references during upload.
type ProgramStore interface {
	GetByID(ctx context.Context, id int64) (*models.TrainingProgram, error)
}

// GuideStore is the learning guide persistence surface.
type GuideStore interface {
	Create(ctx context.Context, guide *models.LearningGuide) error
	ListWithReferences(ctx context.Context) ([]*models.GuideListing, error)
	FilenameExists(ctx context.Context, filename string) (bool, error)
}

// GuideStorage is the filesystem surface backing guide documents.
type GuideStorage interface {
	SaveFile(fileHeader *multipart.FileHeader) (string, error)
	DeleteFile(filename string) error
	GetFullPath(filename string) string
	FileExists(filename string) bool
}

// GuideService handles guide upload, listing and file retrieval.
type GuideService struct {
	guideRepo   GuideStore
	programRepo ProgramStore
	storage     GuideStorage
	logger      zerolog.Logger
}

// NewGuideService creates a new GuideService
func NewGuideService(guideRepo GuideStore, programRepo ProgramStore, storage GuideStorage, logger zerolog.Logger) *GuideService {
	return &GuideService{
		guideRepo:   guideRepo,
		programRepo: programRepo,
		storage:     storage,
		logger:      logger,
	}
}

// allowedFile reports whether a claimed filename carries an accepted
// extension: the text after the last '.', compared case-insensitively.
func allowedFile(filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(filename[idx+1:])]
}

// Upload validates and stores a guide document, then creates the guide record
// referencing the stored file, the resolved program and the uploading
// instructor. Validation happens before any byte is written. If the record
// cannot be created after the file was written, the file is removed again
// (best effort) to avoid orphaned storage.
func (s *GuideService) Upload(ctx context.Context, instructorID int64, req *dto.UploadGuideRequest, fileHeader *multipart.FileHeader) (*dto.GuideResponse, error) {
	if fileHeader == nil || fileHeader.Filename == "" {
		return nil, apperrors.ErrNoFileSelected
	}

	if !allowedFile(fileHeader.Filename) {
		return nil, apperrors.ErrFileTypeNotAllowed
	}

	storedName, err := s.storage.SaveFile(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("error storing file: %w", err)
	}

	// Files are stored under their sanitized original name, so an identical
	// name replaces the earlier document. Existing guide records keep
	// pointing at the filename and now serve the new content.
	if exists, err := s.guideRepo.FilenameExists(ctx, storedName); err == nil && exists {
		s.logger.Warn().Str("filename", storedName).Msg("Stored filename already referenced by an earlier guide, file content replaced")
	}

	program, err := s.programRepo.GetByID(ctx, req.ProgramID)
	if err != nil {
		s.cleanupStoredFile(storedName)
		return nil, err
	}

	guide := &models.LearningGuide{
		Name:         req.Name,
		Description:  req.Description,
		ProgramID:    program.ID,
		PDFFilename:  storedName,
		InstructorID: instructorID,
	}

	if err := s.guideRepo.Create(ctx, guide); err != nil {
		s.cleanupStoredFile(storedName)
		return nil, err
	}

	s.logger.Info().
		Int64("guideID", guide.ID).
		Int64("instructorID", instructorID).
		Str("filename", storedName).
		Msg("Learning guide uploaded")

	return &dto.GuideResponse{
		ID:          guide.ID,
		Name:        guide.Name,
		Description: guide.Description,
		PDFFilename: guide.PDFFilename,
		PublishedAt: guide.PublishedAt,
	}, nil
}

// cleanupStoredFile removes a file written before a failed record creation.
// Cleanup failures are logged, never escalated.
func (s *GuideService) cleanupStoredFile(filename string) {
	if err := s.storage.DeleteFile(filename); err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("Failed to clean up stored file after error")
	}
}

// List returns all guides newest-first with their instructor, program and
// regional resolved for display. Missing references render as "N/A".
func (s *GuideService) List(ctx context.Context) (*dto.GuideListResponse, error) {
	listings, err := s.guideRepo.ListWithReferences(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.GuideListItem, 0, len(listings))
	for _, listing := range listings {
		items = append(items, dto.GuideListItem{
			ID:             listing.ID,
			Name:           listing.Name,
			Description:    listing.Description,
			PDFFilename:    listing.PDFFilename,
			PublishedAt:    listing.PublishedAt,
			InstructorName: displayName(listing.InstructorName),
			ProgramName:    displayName(listing.ProgramName),
			RegionalName:   displayName(listing.RegionalName),
		})
	}

	return &dto.GuideListResponse{
		Guides: items,
		Total:  len(items),
	}, nil
}

// ResolveFile maps a requested filename to its full path in the upload
// directory, failing with not-found when the file is absent. Any
// authenticated instructor may fetch any guide's file.
func (s *GuideService) ResolveFile(filename string) (string, error) {
	if !s.storage.FileExists(filename) {
		return "", apperrors.ErrFileNotFound
	}
	return s.storage.GetFullPath(filename), nil
}

// displayName substitutes the placeholder for unresolved references.
func displayName(name string) string {
	if name == "" {
		return missingReferencePlaceholder
	}
	return name
}
