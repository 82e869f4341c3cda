package service

import (
	"context"

	"gameguide-backend/internal/domains/guide/model"
)

// ServiceInterface is what the HTTP handler and the CLI depend on.
type ServiceInterface interface {
	// Resolve returns the cached guide for query or generates, stores and indexes a new one.
	Resolve(ctx context.Context, query string, forceRegenerate bool) (*model.GuideResult, error)

	// GetBySlug serves a stored guide, counting the view in the background.
	GetBySlug(ctx context.Context, slug string) (*model.GuideView, error)
}

// SettingsReader exposes the admin-managed switches. A nil result with a nil
// error means nothing has been configured yet.
type SettingsReader interface {
	SiteSettings(ctx context.Context) (*model.SiteSettings, error)
}
