package services

import (
	"context"

	"github.com/senadev/guias-backend/internal/app/models"
	"github.com/senadev/guias-backend/internal/app/models/dto"
)

// RegionalLister lists the seeded regional offices.
type RegionalLister interface {
	GetAll(ctx context.Context) ([]*models.Regional, error)
}

// ProgramLister lists the seeded training programs.
type ProgramLister interface {
	GetAll(ctx context.Context) ([]*models.TrainingProgram, error)
}

// CatalogService exposes the read-only reference data that feeds the
// registration and upload forms.
type CatalogService struct {
	regionalRepo RegionalLister
	programRepo  ProgramLister
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(regionalRepo RegionalLister, programRepo ProgramLister) *CatalogService {
	return &CatalogService{
		regionalRepo: regionalRepo,
		programRepo:  programRepo,
	}
}

// ListRegionals returns every regional office.
func (s *CatalogService) ListRegionals(ctx context.Context) ([]dto.RegionalResponse, error) {
	regionals, err := s.regionalRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.RegionalResponse, 0, len(regionals))
	for _, regional := range regionals {
		responses = append(responses, dto.RegionalResponse{
			ID:   regional.ID,
			Name: regional.Name,
		})
	}
	return responses, nil
}

// ListPrograms returns every training program.
func (s *CatalogService) ListPrograms(ctx context.Context) ([]dto.ProgramResponse, error) {
	programs, err := s.programRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProgramResponse, 0, len(programs))
	for _, program := range programs {
		responses = append(responses, dto.ProgramResponse{
			ID:   program.ID,
			Name: program.Name,
		})
	}
	return responses, nil
}
