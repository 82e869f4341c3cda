package job

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameguide-backend/internal/domains/guide/model"
	"gameguide-backend/internal/domains/guide/repository"
	"gameguide-backend/internal/infrastructure/cache"
	"gameguide-backend/internal/shared"
)

func setup(t *testing.T) (repository.GuideRepository, repository.RecentIndex, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := cache.NewRedisStore(cache.NewRedisClient(mr.Addr(), "", 0), "test")
	t.Cleanup(func() { _ = store.Close() })
	return repository.NewGuideRepository(store), repository.NewRecentIndex(store), mr
}

func guide(slug string, views int) *model.Guide {
	return &model.Guide{
		ID:    "1-" + slug,
		Slug:  slug,
		Type:  model.CategoryTutorial,
		Game:  "game",
		Title: slug,
		Views: views,
	}
}

func recordViewTask(t *testing.T, slug string) *asynq.Task {
	raw, err := json.Marshal(shared.RecordViewPayload{Slug: slug})
	require.NoError(t, err)
	return asynq.NewTask(shared.TypeRecordView, raw)
}

func TestRecordViewHandler(t *testing.T) {
	repo, _, mr := setup(t)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, guide("a", 4), time.Hour))
	mr.FastForward(10 * time.Minute)

	h := NewRecordViewHandler(repo)
	require.NoError(t, h.ProcessTask(ctx, recordViewTask(t, "a")))
	require.NoError(t, h.ProcessTask(ctx, recordViewTask(t, "a")))

	got, err := repo.GetBySlug(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 6, got.Views)
	assert.Equal(t, 50*time.Minute, mr.TTL("slug:a"))
}

func TestRecordViewHandler_MissingGuideIsNotAnError(t *testing.T) {
	repo, _, _ := setup(t)
	h := NewRecordViewHandler(repo)

	assert.NoError(t, h.ProcessTask(context.Background(), recordViewTask(t, "gone")))
}

func TestRecordViewHandler_BadPayloadSkipsRetry(t *testing.T) {
	repo, _, _ := setup(t)
	h := NewRecordViewHandler(repo)

	err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeRecordView, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h.ProcessTask(context.Background(), recordViewTask(t, ""))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestReconcileRecentHandler(t *testing.T) {
	repo, idx, mr := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, guide("live", 0), time.Hour))
	require.NoError(t, repo.Save(ctx, guide("expiring", 0), time.Minute))

	require.NoError(t, idx.Prepend(ctx, guide("expiring", 0).Summary()))
	require.NoError(t, idx.Prepend(ctx, guide("live", 0).Summary()))

	// views land on the slug copy only
	require.NoError(t, repo.UpdateSlugCopy(ctx, guide("live", 42)))
	mr.FastForward(2 * time.Minute)

	h := NewReconcileRecentHandler(repo, idx)
	require.NoError(t, h.ProcessTask(ctx, asynq.NewTask(shared.TypeReconcileRecent, nil)))

	list, err := idx.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "live", list[0].Slug)
	assert.Equal(t, 42, list[0].Views)
}

func TestNewEntries(t *testing.T) {
	snapshot := []model.Summary{{Slug: "a"}, {Slug: "b"}}
	current := []model.Summary{{Slug: "c"}, {Slug: "d"}, {Slug: "a"}, {Slug: "b"}}

	added := newEntries(snapshot, current)
	require.Len(t, added, 2)
	assert.Equal(t, "c", added[0].Slug)
	assert.Equal(t, "d", added[1].Slug)

	assert.Empty(t, newEntries(snapshot, snapshot))
}
