package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameguide-backend/internal/domains/guide/model"
	"gameguide-backend/internal/shared"
)

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, f.err
}

var _ TaskEnqueuer = (*fakeEnqueuer)(nil)

func TestQueueViewRecorder_EnqueuesSlug(t *testing.T) {
	enq := &fakeEnqueuer{}
	rec := NewQueueViewRecorder(enq)

	rec.Record(&model.Guide{Slug: "codigos-free-fire", Views: 3})
	rec.Wait()

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, shared.TypeRecordView, enq.tasks[0].Type())

	var payload shared.RecordViewPayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &payload))
	assert.Equal(t, "codigos-free-fire", payload.Slug)
}

func TestQueueViewRecorder_EnqueueFailureIsSwallowed(t *testing.T) {
	enq := &fakeEnqueuer{err: errors.New("redis down")}
	rec := NewQueueViewRecorder(enq)

	assert.NotPanics(t, func() {
		rec.Record(&model.Guide{Slug: "x"})
		rec.Wait()
	})
	assert.Len(t, enq.tasks, 1)
}

func TestInlineViewRecorder_WritesSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := &model.Guide{ID: "1-aaaaaaa", Slug: "s", Type: model.CategoryTutorial, Game: "g"}
	require.NoError(t, f.repo.Save(ctx, g, 0))

	g.Views = 5
	f.views.Record(g)
	g.Views = 99 // mutations after Record are not written
	f.views.Wait()

	stored, err := f.repo.GetBySlug(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Views)
}
