package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"gameguide-backend/internal/domains/guide/model"
	"gameguide-backend/internal/domains/guide/repository"
	"gameguide-backend/pkg/logger"
)

// ReconcileRecentHandler copies live view counts from slug records into the
// recency index and drops entries whose guide has expired.
type ReconcileRecentHandler struct {
	guideRepo   repository.GuideRepository
	recentIndex repository.RecentIndex
}

func NewReconcileRecentHandler(guideRepo repository.GuideRepository, recentIndex repository.RecentIndex) *ReconcileRecentHandler {
	return &ReconcileRecentHandler{
		guideRepo:   guideRepo,
		recentIndex: recentIndex,
	}
}

func (h *ReconcileRecentHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	entries, err := h.recentIndex.List(ctx)
	if err != nil {
		return fmt.Errorf("list recent: %w", err)
	}

	kept, dropped, err := h.Reconcile(ctx, entries)
	if err != nil {
		return err
	}

	// Keep entries prepended while the walk ran.
	current, err := h.recentIndex.List(ctx)
	if err != nil {
		return fmt.Errorf("list recent: %w", err)
	}
	kept = append(newEntries(entries, current), kept...)

	if err := h.recentIndex.Replace(ctx, kept); err != nil {
		return fmt.Errorf("replace recent: %w", err)
	}

	logger.Info("Reconciled recent guides index", map[string]interface{}{
		"kept":    len(kept),
		"dropped": dropped,
	})
	return nil
}

// Reconcile refreshes views on entries and filters out expired guides.
func (h *ReconcileRecentHandler) Reconcile(ctx context.Context, entries []model.Summary) ([]model.Summary, int, error) {
	kept := make([]model.Summary, 0, len(entries))
	dropped := 0

	for _, entry := range entries {
		guide, err := h.guideRepo.GetBySlug(ctx, entry.Slug)
		if err != nil {
			if errors.Is(err, model.ErrGuideNotFound) {
				dropped++
				continue
			}
			return nil, 0, fmt.Errorf("get guide %s: %w", entry.Slug, err)
		}

		entry.Views = guide.Views
		kept = append(kept, entry)
	}

	return kept, dropped, nil
}

// newEntries returns the entries of current whose slug is absent from snapshot, in order.
func newEntries(snapshot, current []model.Summary) []model.Summary {
	seen := make(map[string]struct{}, len(snapshot))
	for _, e := range snapshot {
		seen[e.Slug] = struct{}{}
	}

	var added []model.Summary
	for _, e := range current {
		if _, ok := seen[e.Slug]; !ok {
			added = append(added, e)
		}
	}
	return added
}
