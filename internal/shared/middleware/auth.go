package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	adminModel "gameguide-backend/internal/domains/admin/model"
	"gameguide-backend/internal/shared/response"
)

// Context keys set by AdminAuth
const (
	ContextSessionID = "admin_session_id"
	ContextUsername  = "admin_username"
)

// SessionAuthenticator resolves a bearer token to a live admin session.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (string, *adminModel.Session, error)
}

// AdminAuth rejects requests without a valid admin session.
func AdminAuth(auth SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract "Bearer <token>"
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.AbortWithError(c, http.StatusUnauthorized, adminModel.ErrCodeUnauthorized, "missing bearer token")
			return
		}

		// 2. Resolve session
		sessionID, session, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			var adminErr *adminModel.AdminError
			if errors.As(err, &adminErr) {
				response.AbortWithError(c, http.StatusUnauthorized, adminErr.Code, adminErr.Message)
				return
			}
			response.AbortWithError(c, http.StatusInternalServerError, adminModel.ErrCodeInternal, "failed to verify session")
			return
		}

		// 3. Expose session to handlers
		c.Set(ContextSessionID, sessionID)
		c.Set(ContextUsername, session.Username)

		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
