package repository

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"gameguide-backend/internal/domains/guide/model"
	"gameguide-backend/internal/shared/utils"
	"gameguide-backend/pkg/kv"
)

type guideRepository struct {
	store kv.Store
}

func NewGuideRepository(store kv.Store) GuideRepository {
	return &guideRepository{store: store}
}

func (r *guideRepository) Save(ctx context.Context, guide *model.Guide, ttl time.Duration) error {
	storageKey := guide.StorageKey()
	slugKey := utils.SlugKey(guide.Slug)

	// Both copies are written concurrently; either failure fails the save.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.store.Set(gctx, storageKey, guide, ttl); err != nil {
			return fmt.Errorf("save %s: %w", storageKey, err)
		}
		return nil
	})
	g.Go(func() error {
		if err := r.store.Set(gctx, slugKey, guide, ttl); err != nil {
			return fmt.Errorf("save %s: %w", slugKey, err)
		}
		return nil
	})

	return g.Wait()
}

func (r *guideRepository) GetBySlug(ctx context.Context, slug string) (*model.Guide, error) {
	return r.get(ctx, utils.SlugKey(slug))
}

func (r *guideRepository) GetByStorageKey(ctx context.Context, key string) (*model.Guide, error) {
	if _, _, _, ok := utils.ParseStorageKey(key); !ok {
		return nil, fmt.Errorf("malformed storage key %q", key)
	}
	return r.get(ctx, key)
}

func (r *guideRepository) UpdateSlugCopy(ctx context.Context, guide *model.Guide) error {
	key := utils.SlugKey(guide.Slug)
	if err := r.store.SetKeepTTL(ctx, key, guide); err != nil {
		return fmt.Errorf("update %s: %w", key, err)
	}
	return nil
}

func (r *guideRepository) get(ctx context.Context, key string) (*model.Guide, error) {
	var guide model.Guide
	found, err := r.store.Get(ctx, key, &guide)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if !found {
		return nil, model.ErrGuideNotFound
	}
	return &guide, nil
}

// =====================================================
// RECENCY INDEX
// =====================================================

type recentIndex struct {
	store kv.Store
}

func NewRecentIndex(store kv.Store) RecentIndex {
	return &recentIndex{store: store}
}

func (r *recentIndex) List(ctx context.Context) ([]model.Summary, error) {
	var entries []model.Summary
	if _, err := r.store.Get(ctx, model.RecentIndexKey, &entries); err != nil {
		return nil, fmt.Errorf("get recent index: %w", err)
	}
	if entries == nil {
		entries = []model.Summary{}
	}
	return entries, nil
}

func (r *recentIndex) Prepend(ctx context.Context, summary model.Summary) error {
	entries, err := r.List(ctx)
	if err != nil {
		return err
	}

	updated := make([]model.Summary, 0, len(entries)+1)
	updated = append(updated, summary)
	updated = append(updated, entries...)

	return r.Replace(ctx, updated)
}

func (r *recentIndex) Replace(ctx context.Context, entries []model.Summary) error {
	if len(entries) > model.RecentIndexCap {
		entries = entries[:model.RecentIndexCap]
	}
	if entries == nil {
		entries = []model.Summary{}
	}
	if err := r.store.Set(ctx, model.RecentIndexKey, entries, 0); err != nil {
		return fmt.Errorf("set recent index: %w", err)
	}
	return nil
}
