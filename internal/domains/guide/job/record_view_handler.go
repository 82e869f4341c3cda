package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"gameguide-backend/internal/domains/guide/model"
	"gameguide-backend/internal/domains/guide/repository"
	"gameguide-backend/internal/shared"
	"gameguide-backend/internal/shared/utils"
	"gameguide-backend/pkg/logger"
)

// RecordViewHandler increments the slug copy of a guide.
type RecordViewHandler struct {
	guideRepo repository.GuideRepository
}

func NewRecordViewHandler(guideRepo repository.GuideRepository) *RecordViewHandler {
	return &RecordViewHandler{guideRepo: guideRepo}
}

func (h *RecordViewHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload shared.RecordViewPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}
	if payload.Slug == "" {
		return fmt.Errorf("empty slug: %w", asynq.SkipRetry)
	}

	guide, err := h.guideRepo.GetBySlug(ctx, payload.Slug)
	if err != nil {
		if errors.Is(err, model.ErrGuideNotFound) {
			// expired between the read and the task
			logger.Debug("record view: guide gone " + payload.Slug)
			return nil
		}
		return fmt.Errorf("get guide: %w", err)
	}

	guide.Views++
	if err := h.guideRepo.UpdateSlugCopy(ctx, guide); err != nil {
		return fmt.Errorf("update views: %w", err)
	}

	return nil
}
