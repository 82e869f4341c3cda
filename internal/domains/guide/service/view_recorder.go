package service

import (
	"context"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"gameguide-backend/internal/domains/guide/model"
	"gameguide-backend/internal/domains/guide/repository"
	"gameguide-backend/internal/shared"
	"gameguide-backend/internal/shared/utils"
)

// ViewRecorder persists a view increment without blocking the read path.
// Concurrent views of the same guide may lose updates.
type ViewRecorder interface {
	// Record receives the guide with its already incremented view count.
	Record(guide *model.Guide)

	// Wait blocks until every in-flight write has finished.
	Wait()
}

const viewWriteTimeout = 5 * time.Second

// =====================================================
// INLINE RECORDER
// =====================================================

// InlineViewRecorder rewrites the slug copy from a goroutine in this process.
type InlineViewRecorder struct {
	repo repository.GuideRepository
	wg   sync.WaitGroup
}

func NewInlineViewRecorder(repo repository.GuideRepository) *InlineViewRecorder {
	return &InlineViewRecorder{repo: repo}
}

func (r *InlineViewRecorder) Record(guide *model.Guide) {
	snapshot := *guide

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		// Detached from the request: the response is already on its way.
		ctx, cancel := context.WithTimeout(context.Background(), viewWriteTimeout)
		defer cancel()

		if err := r.repo.UpdateSlugCopy(ctx, &snapshot); err != nil {
			log.Warn().Err(err).Str("slug", snapshot.Slug).Msg("failed to record view")
		}
	}()
}

func (r *InlineViewRecorder) Wait() {
	r.wg.Wait()
}

// =====================================================
// QUEUE RECORDER
// =====================================================

// TaskEnqueuer is the part of *asynq.Client the queue recorder needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueViewRecorder hands the increment to the worker as a guide:record_view task.
// The worker re-reads the slug copy, so the count it writes is its own +1.
type QueueViewRecorder struct {
	client TaskEnqueuer
	wg     sync.WaitGroup
}

func NewQueueViewRecorder(client TaskEnqueuer) *QueueViewRecorder {
	return &QueueViewRecorder{client: client}
}

func (r *QueueViewRecorder) Record(guide *model.Guide) {
	slug := guide.Slug

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		task, err := utils.MarshalTask(shared.TypeRecordView, shared.RecordViewPayload{Slug: slug})
		if err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("failed to build record view task")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), viewWriteTimeout)
		defer cancel()

		_, err = r.client.EnqueueContext(ctx, task,
			asynq.Queue(shared.QueueViews),
			asynq.MaxRetry(2),
			asynq.Timeout(30*time.Second),
		)
		if err != nil {
			log.Warn().Err(err).Str("slug", slug).Msg("failed to enqueue record view task")
		}
	}()
}

func (r *QueueViewRecorder) Wait() {
	r.wg.Wait()
}
