package repository

import (
	"context"
	"time"

	"gameguide-backend/internal/domains/guide/model"
)

// =====================================================
// GUIDE REPOSITORY INTERFACE
// =====================================================

type GuideRepository interface {
	// Save writes the guide under its structured key and its slug key with the same TTL.
	Save(ctx context.Context, guide *model.Guide, ttl time.Duration) error

	// GetBySlug returns model.ErrGuideNotFound when slug:{slug} is missing.
	GetBySlug(ctx context.Context, slug string) (*model.Guide, error)

	// GetByStorageKey loads the structured copy guide:{type}:{gameSlug}:{id}.
	GetByStorageKey(ctx context.Context, key string) (*model.Guide, error)

	// UpdateSlugCopy rewrites only slug:{slug}, keeping its remaining TTL.
	// The structured copy is left untouched.
	UpdateSlugCopy(ctx context.Context, guide *model.Guide) error
}

// =====================================================
// RECENCY INDEX INTERFACE
// =====================================================

type RecentIndex interface {
	// List returns the index newest first; a missing index is an empty list.
	List(ctx context.Context) ([]model.Summary, error)

	// Prepend puts summary at the head and truncates to model.RecentIndexCap.
	// Read-modify-write without locking: concurrent prepends may drop entries.
	Prepend(ctx context.Context, summary model.Summary) error

	// Replace overwrites the whole index (truncated to the cap).
	Replace(ctx context.Context, entries []model.Summary) error
}
