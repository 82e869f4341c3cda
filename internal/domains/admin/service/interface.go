package service

import (
	"context"

	"gameguide-backend/internal/domains/admin/model"
	guideModel "gameguide-backend/internal/domains/guide/model"
)

// ServiceInterface is what the admin handler and auth middleware depend on.
type ServiceInterface interface {
	// Auth
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, token string) (string, *model.Session, error)

	// Config
	GetConfig(ctx context.Context) (*model.Config, error)
	PutConfig(ctx context.Context, req model.ConfigUpdateRequest) (*model.Config, error)

	// Posts
	CreatePost(ctx context.Context, req model.CreatePostRequest) (*guideModel.Guide, error)
	ListPosts(ctx context.Context) ([]guideModel.Summary, error)
	Stats(ctx context.Context) (*model.Stats, error)
}
