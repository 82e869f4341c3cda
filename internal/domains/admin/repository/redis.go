package repository

import (
	"context"
	"fmt"
	"time"

	"gameguide-backend/internal/domains/admin/model"
	"gameguide-backend/pkg/kv"
)

type configRepository struct {
	store kv.Store
}

func NewConfigRepository(store kv.Store) ConfigRepository {
	return &configRepository{store: store}
}

func (r *configRepository) Get(ctx context.Context) (*model.Config, error) {
	var cfg model.Config
	found, err := r.store.Get(ctx, model.ConfigKey, &cfg)
	if err != nil {
		return nil, fmt.Errorf("get admin config: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &cfg, nil
}

func (r *configRepository) Save(ctx context.Context, cfg *model.Config) error {
	if err := r.store.Set(ctx, model.ConfigKey, cfg, 0); err != nil {
		return fmt.Errorf("save admin config: %w", err)
	}
	return nil
}

// =====================================================
// SESSIONS
// =====================================================

type sessionRepository struct {
	store kv.Store
}

func NewSessionRepository(store kv.Store) SessionRepository {
	return &sessionRepository{store: store}
}

func sessionKey(id string) string {
	return model.SessionKeyPrefix + id
}

func (r *sessionRepository) Create(ctx context.Context, id string, session *model.Session, ttl time.Duration) error {
	if err := r.store.Set(ctx, sessionKey(id), session, ttl); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	found, err := r.store.Get(ctx, sessionKey(id), &session)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !found {
		return nil, model.ErrSessionNotFound
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
