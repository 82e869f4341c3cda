package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gameguide-backend/internal/domains/admin/model"
	"gameguide-backend/internal/domains/admin/service"
	"gameguide-backend/internal/shared/middleware"
	"gameguide-backend/internal/shared/response"
)

type AdminHandler struct {
	adminService service.ServiceInterface
}

func NewAdminHandler(adminService service.ServiceInterface) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// =====================================================
// AUTH
// =====================================================

// Login POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	result, err := h.adminService.Login(c.Request.Context(), req)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		Success:   true,
		Token:     result.Token,
		Username:  result.Username,
		ExpiresAt: result.ExpiresAt,
	})
}

// Logout POST /api/admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.adminService.Logout(c.Request.Context(), c.GetString(middleware.ContextSessionID)); err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Response{Success: true})
}

// =====================================================
// CONFIG
// =====================================================

// GetConfig GET /api/admin/config
func (h *AdminHandler) GetConfig(c *gin.Context) {
	cfg, err := h.adminService.GetConfig(c.Request.Context())
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ConfigResponse{Success: true, Config: cfg})
}

// UpdateConfig POST /api/admin/config
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	var req model.ConfigUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	cfg, err := h.adminService.PutConfig(c.Request.Context(), req)
	if err != nil {
		respondAdminError(c, err)
		return
	}

	log.Info().Str("username", c.GetString(middleware.ContextUsername)).Msg("admin config updated")
	c.JSON(http.StatusOK, model.ConfigResponse{Success: true, Config: cfg})
}

// =====================================================
// POSTS & STATS
// =====================================================

// ListPosts GET /api/admin/posts
func (h *AdminHandler) ListPosts(c *gin.Context) {
	posts, err := h.adminService.ListPosts(c.Request.Context())
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.PostListResponse{Success: true, Posts: posts})
}

// CreatePost POST /api/admin/posts
func (h *AdminHandler) CreatePost(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, model.ErrCodeInvalidRequest, "invalid request body")
		return
	}

	post, err := h.adminService.CreatePost(c.Request.Context(), req)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.PostResponse{Success: true, Post: post})
}

// Stats GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.StatsResponse{Success: true, Stats: stats})
}

// =====================================================
// HELPER FUNCTIONS
// =====================================================

func respondAdminError(c *gin.Context, err error) {
	status, code := mapAdminError(err)
	message := err.Error()

	var adminErr *model.AdminError
	if errors.As(err, &adminErr) {
		message = adminErr.Message
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("admin request failed")
		message = "internal server error"
	}

	response.ErrorResponse(c, status, code, message)
}

func mapAdminError(err error) (int, string) {
	var adminErr *model.AdminError
	if errors.As(err, &adminErr) {
		switch adminErr.Code {
		case model.ErrCodeInvalidRequest, model.ErrCodeValidation:
			return http.StatusBadRequest, adminErr.Code
		case model.ErrCodeNotConfigured, model.ErrCodeInvalidPath, model.ErrCodeInvalidCreds,
			model.ErrCodeUnauthorized, model.ErrCodeSessionExpired:
			return http.StatusUnauthorized, adminErr.Code
		}
	}
	return http.StatusInternalServerError, model.ErrCodeInternal
}
