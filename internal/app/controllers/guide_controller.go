package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/senadev/guias-backend/internal/app/models/dto"
	"github.com/senadev/guias-backend/internal/app/services"
	"github.com/senadev/guias-backend/internal/middleware"
	"github.com/senadev/guias-backend/internal/pkg/apperrors"
)

// GuideController handles learning guide upload, listing and file download
type GuideController struct {
	guideService *services.GuideService
	logger       zerolog.Logger
}

// NewGuideController creates a new GuideController
func NewGuideController(guideService *services.GuideService, logger zerolog.Logger) *GuideController {
	return &GuideController{
		guideService: guideService,
		logger:       logger,
	}
}

// UploadGuide handles a new guide upload
// @Summary Upload a learning guide
// @Description Stores the uploaded PDF and creates the guide record attributed to the authenticated instructor. Only files with a .pdf extension are accepted.
// @Tags guides
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Guide name"
// @Param description formData string true "Guide description"
// @Param programId formData integer true "Training program ID"
// @Param file formData file true "Guide document (PDF)"
// @Success 201 {object} dto.APIResponse{data=dto.GuideResponse} "Guide created"
// @Failure 400 {object} dto.ErrorResponse "Missing file or disallowed file type"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "Training program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /guides [post]
func (c *GuideController) UploadGuide(ctx *gin.Context) {
	instructorID, ok := middleware.GetInstructorID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.UploadGuideRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid guide upload form")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	// FormFile errors (part absent entirely) collapse into the same
	// "no file selected" outcome as an empty filename.
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrNoFileSelected)
		return
	}

	guideResponse, err := c.guideService.Upload(ctx.Request.Context(), instructorID, &req, fileHeader)
	if err != nil {
		c.logger.Warn().Err(err).Int64("instructorID", instructorID).Msg("Guide upload failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: guideResponse,
	})
}

// ListGuides returns the guide listing
// @Summary List learning guides
// @Description Returns all guides newest-first with instructor, program and regional names resolved for display
// @Tags guides
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.GuideListResponse} "Guide listing"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /guides [get]
func (c *GuideController) ListGuides(ctx *gin.Context) {
	listResponse, err := c.guideService.List(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list guides")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: listResponse,
	})
}

// DownloadFile serves a stored guide document
// @Summary Download a guide document
// @Description Serves a guide PDF from the upload directory. Any authenticated instructor may download any guide.
// @Tags guides
// @Produce application/pdf
// @Security BearerAuth
// @Param filename path string true "Stored filename"
// @Success 200 {file} file "Guide document"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /uploads/{filename} [get]
func (c *GuideController) DownloadFile(ctx *gin.Context) {
	filename := ctx.Param("filename")

	fullPath, err := c.guideService.ResolveFile(filename)
	if err != nil {
		c.logger.Warn().Err(err).Str("filename", filename).Msg("Guide file request failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.File(fullPath)
}
