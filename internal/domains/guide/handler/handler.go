package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gameguide-backend/internal/domains/guide/model"
	"gameguide-backend/internal/domains/guide/service"
	"gameguide-backend/internal/shared/response"
)

const (
	cacheControlMonetized = "public, max-age=60, stale-while-revalidate=300"
	cacheControlDefault   = "public, max-age=3600, stale-while-revalidate=86400"
)

// =====================================================
// GUIDE HANDLER
// =====================================================

type GuideHandler struct {
	guideService service.ServiceInterface
}

func NewGuideHandler(guideService service.ServiceInterface) *GuideHandler {
	return &GuideHandler{
		guideService: guideService,
	}
}

// GenerateContent resolves a query to a guide, generating it on a cache miss
// POST /api/generate-content
func (h *GuideHandler) GenerateContent(c *gin.Context) {
	// Step 1: Bind request body
	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	// Step 2: Validate request
	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidQuery, err.Error())
		return
	}

	// Step 3: Call service
	result, err := h.guideService.Resolve(c.Request.Context(), req.Query, req.ForceRegenerate)
	if err != nil {
		respondGuideError(c, err)
		return
	}

	// Step 4: Return success
	c.JSON(http.StatusOK, model.GenerateResponse{
		Success: true,
		Data:    result.Guide,
		Cached:  result.Cached,
		Slug:    result.Slug,
	})
}

// GetGuide serves a stored guide and counts the view
// GET /api/get-guide/:slug
func (h *GuideHandler) GetGuide(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_SLUG", "slug is required")
		return
	}

	view, err := h.guideService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondGuideError(c, err)
		return
	}

	if view.Monetization != nil {
		c.Header("Cache-Control", cacheControlMonetized)
	} else {
		c.Header("Cache-Control", cacheControlDefault)
	}

	c.JSON(http.StatusOK, model.GuideViewResponse{
		Success:      true,
		Data:         view.Guide,
		Monetization: view.Monetization,
	})
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func respondGuideError(c *gin.Context, err error) {
	status, code := mapGuideError(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("guide request failed")
	}

	response.ErrorResponse(c, status, code, message)
}

// mapGuideError maps guide errors to HTTP status and envelope code
func mapGuideError(err error) (int, string) {
	var guideErr *model.GuideError
	if errors.As(err, &guideErr) {
		switch guideErr.Code {
		case model.ErrCodeInvalidQuery:
			return http.StatusBadRequest, guideErr.Code
		case model.ErrCodeGuideNotFound, model.ErrCodeGenerationDisabled:
			return http.StatusNotFound, guideErr.Code
		case model.ErrCodeGenerationFailed, model.ErrCodeInvalidGeneratorOutput:
			return http.StatusInternalServerError, guideErr.Code
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
