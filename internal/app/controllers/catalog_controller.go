package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/senadev/guias-backend/internal/app/models/dto"
	"github.com/senadev/guias-backend/internal/app/services"
	"github.com/senadev/guias-backend/internal/middleware"
)

// CatalogController serves the reference data behind the registration and
// upload forms
type CatalogController struct {
	catalogService *services.CatalogService
	logger         zerolog.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService, logger zerolog.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// GetAllRegionals lists the regional offices
// @Summary List regional offices
// @Description Returns every regional office. Public, so the registration form can offer the options before login.
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.RegionalResponse} "Regional offices"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /regionals [get]
func (c *CatalogController) GetAllRegionals(ctx *gin.Context) {
	regionals, err := c.catalogService.ListRegionals(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list regionals")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: regionals,
	})
}

// GetAllPrograms lists the training programs
// @Summary List training programs
// @Description Returns every training program for the guide upload form
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProgramResponse} "Training programs"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs [get]
func (c *CatalogController) GetAllPrograms(ctx *gin.Context) {
	programs, err := c.catalogService.ListPrograms(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list training programs")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: programs,
	})
}
