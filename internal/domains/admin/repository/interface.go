package repository

import (
	"context"
	"time"

	"gameguide-backend/internal/domains/admin/model"
)

type ConfigRepository interface {
	// Get returns (nil, nil) when no config has been saved yet.
	Get(ctx context.Context) (*model.Config, error)
	Save(ctx context.Context, cfg *model.Config) error
}

type SessionRepository interface {
	Create(ctx context.Context, id string, session *model.Session, ttl time.Duration) error

	// Get returns model.ErrSessionNotFound when the record is gone.
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}
