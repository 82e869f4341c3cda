package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gameguide-backend/internal/shared/middleware"
	"gameguide-backend/pkg/container"
	"gameguide-backend/pkg/kv"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c.Config.App.Version, c.Stores()))

		setupGuideRoutes(api, c)
		setupAdminRoutes(api, c)
	}

	return router
}

// ========================================
// GUIDE ROUTES
// ========================================
func setupGuideRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/generate-content", c.GuideHandler.GenerateContent)
	api.GET("/get-guide/:slug", c.GuideHandler.GetGuide)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(api *gin.RouterGroup, c *container.Container) {
	admin := api.Group("/admin")
	admin.POST("/login", c.AdminHandler.Login)

	protected := admin.Group("", middleware.AdminAuth(c.AdminService))
	{
		protected.POST("/logout", c.AdminHandler.Logout)

		protected.GET("/config", c.AdminHandler.GetConfig)
		protected.POST("/config", c.AdminHandler.UpdateConfig)

		protected.GET("/posts", c.AdminHandler.ListPosts)
		protected.POST("/posts", c.AdminHandler.CreatePost)

		protected.GET("/stats", c.AdminHandler.Stats)
	}
}

// ========================================
// HEALTH
// ========================================

// healthCheckHandler pings every store; any failure reports 503.
func healthCheckHandler(version string, stores map[string]kv.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(stores))
		for name, store := range stores {
			if err := store.Ping(pingCtx); err != nil {
				checks[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		ctx.JSON(status, gin.H{
			"success": status == http.StatusOK,
			"version": version,
			"stores":  checks,
		})
	}
}
