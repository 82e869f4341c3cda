package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameguide-backend/internal/domains/guide/model"
	"gameguide-backend/internal/domains/guide/repository"
	"gameguide-backend/internal/infrastructure/cache"
	"gameguide-backend/internal/infrastructure/llm"
	"gameguide-backend/pkg/kv"
)

// ========================================
// FAKES
// ========================================

type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	requests []llm.Request
	output   string
	err      error
}

func (f *fakeGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.requests = append(f.requests, req)
	return f.output, f.err
}

func (f *fakeGenerator) Provider() string { return llm.ProviderAnthropic }

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSettings struct {
	settings *model.SiteSettings
	err      error
}

func (f *fakeSettings) SiteSettings(context.Context) (*model.SiteSettings, error) {
	return f.settings, f.err
}

// failingIndex wraps a RecentIndex and fails every write.
type failingIndex struct {
	repository.RecentIndex
}

func (failingIndex) Prepend(context.Context, model.Summary) error {
	return errors.New("metadata store down")
}

type fixture struct {
	svc      *GuideService
	gen      *fakeGenerator
	settings *fakeSettings
	repo     repository.GuideRepository
	recent   repository.RecentIndex
	views    *InlineViewRecorder
	mr       *miniredis.Miniredis
	store    kv.Store
}

var fixedNow = time.Date(2025, time.November, 20, 15, 4, 5, 0, time.UTC)

const freeFireCodes = "```json\n" + `{
  "title": "Códigos Free Fire Ativos Agora",
  "subtitle": "Lista atualizada",
  "metaDescription": "Códigos ativos",
  "game": "Garena Free Fire",
  "difficulty": "facil",
  "readTime": 3,
  "tags": ["códigos", "free fire"],
  "imageQuery": "free fire codes",
  "codes": [{"code": "FFAC2025", "reward": "Skin", "active": true}],
  "content": ["Intro", "Mais"]
}` + "\n```"

const mobileLegendsTierList = `{
  "title": "Tier List Mobile Legends 2026",
  "metaDescription": "Melhores heróis",
  "game": "Mobile Legends: Bang Bang",
  "difficulty": "medium",
  "readTime": 4,
  "tierList": {
    "S": [{"name": "Lancelot", "reason": "Mobilidade"}],
    "A": [{"name": "Gusion", "reason": "Burst"}, {"name": "Ling", "reason": "Roaming"}]
  },
  "tips": ["Treine no modo clássico"],
  "content": ["Meta atual"]
}`

const lancelotBuild = `{
  "title": "Build Lancelot",
  "game": "Mobile Legends",
  "difficulty": "hard",
  "readTime": 6,
  "build": {
    "items": [{"name": "Blade of Despair", "order": 2, "reason": "Dano"}, {"name": "Warrior Boots", "order": 1, "reason": "Defesa"}],
    "skills": ["Puncture", "Thorned Rose"],
    "combos": ["2-1-3"]
  },
  "counters": {"strongAgainst": ["Eudora"], "weakAgainst": ["Chou"]},
  "content": ["Itens e combos"]
}`

func newFixture(t *testing.T, opts ...func(*fixture)) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	store := cache.NewRedisStore(cache.NewRedisClient(mr.Addr(), "", 0), "test")
	t.Cleanup(func() { _ = store.Close() })

	f := &fixture{
		gen:      &fakeGenerator{output: freeFireCodes},
		settings: &fakeSettings{},
		repo:     repository.NewGuideRepository(store),
		recent:   repository.NewRecentIndex(store),
		mr:       mr,
		store:    store,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.views = NewInlineViewRecorder(f.repo)
	f.svc = NewGuideService(f.repo, f.recent, f.settings, f.gen, NewPromptBuilder(""), f.views,
		WithClock(func() time.Time { return fixedNow }))
	return f
}

func boolPtr(b bool) *bool { return &b }

// ========================================
// RESOLVE
// ========================================

func TestResolve_GeneratesAndPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Resolve(ctx, "códigos free fire", false)
	require.NoError(t, err)

	assert.False(t, res.Cached)
	assert.Equal(t, "codigos-free-fire", res.Slug)
	assert.Equal(t, 1, f.gen.Calls())

	g := res.Guide
	assert.Equal(t, model.CategoryCodes, g.Type)
	assert.Equal(t, "free fire", g.Game)
	assert.Equal(t, "Códigos Free Fire Ativos Agora", g.Title)
	assert.Equal(t, model.DifficultyEasy, g.Difficulty)
	assert.Equal(t, 3, g.ReadTime)
	assert.Equal(t, "<p>Intro</p><p>Mais</p>", g.Content)
	assert.Equal(t, "", g.ImageURL)
	assert.Equal(t, 0, g.Views)
	assert.Regexp(t, `^[0-9a-z]+-[0-9a-z]{7}$`, g.ID)
	assert.Equal(t, fixedNow, g.CreatedAt)
	assert.Equal(t, fixedNow.Add(7*24*time.Hour), g.ExpiresAt)
	require.Len(t, g.Codes, 1)

	// both keys, identical payload, 7 day TTL
	structured := "guide:codes:free-fire:" + g.ID
	a, err := f.mr.Get(structured)
	require.NoError(t, err)
	b, err := f.mr.Get("slug:codigos-free-fire")
	require.NoError(t, err)
	assert.JSONEq(t, a, b)
	assert.Equal(t, model.GeneratedGuideTTL, f.mr.TTL(structured))
	assert.Equal(t, model.GeneratedGuideTTL, f.mr.TTL("slug:codigos-free-fire"))

	// recency index head
	recent, err := f.recent.List(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "codigos-free-fire", recent[0].Slug)
	assert.Equal(t, model.CategoryCodes, recent[0].Category)
}

func TestResolve_PromptCarriesTopicGameAndYear(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Resolve(context.Background(), "tier list armas warzone", false)
	require.Error(t, err) // codes payload does not satisfy tierlist

	require.Len(t, f.gen.requests, 1)
	req := f.gen.requests[0]
	assert.Contains(t, req.Prompt, "TIER LIST of tier list armas warzone for the game: armas warzone")
	assert.Contains(t, req.Prompt, `Year for titles: use "2026"`)
	assert.NotEmpty(t, req.System)
	assert.Empty(t, req.APIKey)
}

func TestResolve_SecondCallIsCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Resolve(ctx, "códigos free fire", false)
	require.NoError(t, err)

	second, err := f.svc.Resolve(ctx, "Códigos Free Fire", false)
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.Equal(t, first.Guide.ID, second.Guide.ID)
	assert.Equal(t, 1, f.gen.Calls())
}

func TestResolve_TierListGeneratesOnceAndCaches(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.gen.output = mobileLegendsTierList })
	ctx := context.Background()

	res, err := f.svc.Resolve(ctx, "tier list mobile legends", false)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, "tier-list-mobile-legends", res.Slug)
	assert.Equal(t, 1, f.gen.Calls())

	g := res.Guide
	assert.Equal(t, model.CategoryTierList, g.Type)
	assert.Equal(t, "mobile legends", g.Game)
	assert.Equal(t, model.DifficultyMedium, g.Difficulty)
	assert.Equal(t, 4, g.ReadTime)
	assert.Equal(t, []string{"Treine no modo clássico"}, g.Tips)
	require.NotNil(t, g.TierList)
	require.Len(t, g.TierList.S, 1)
	assert.Equal(t, "Lancelot", g.TierList.S[0].Name)
	assert.Len(t, g.TierList.A, 2)
	assert.NotNil(t, g.TierList.B)
	assert.Empty(t, g.TierList.D)
	assert.Nil(t, g.Codes)
	assert.Nil(t, g.Build)

	structured := "guide:tierlist:mobile-legends:" + g.ID
	a, err := f.mr.Get(structured)
	require.NoError(t, err)
	b, err := f.mr.Get("slug:tier-list-mobile-legends")
	require.NoError(t, err)
	assert.JSONEq(t, a, b)
	assert.Contains(t, b, `"D":[]`)
	assert.Equal(t, model.GeneratedGuideTTL, f.mr.TTL(structured))

	again, err := f.svc.Resolve(ctx, "Tier List Mobile Legends", false)
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, g.ID, again.Guide.ID)
	assert.Equal(t, model.CategoryTierList, again.Guide.Type)
	assert.Equal(t, 1, f.gen.Calls())

	recent, err := f.recent.List(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, model.CategoryTierList, recent[0].Category)
}

func TestResolve_BuildGeneratesOnceAndCaches(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.gen.output = lancelotBuild })
	ctx := context.Background()

	res, err := f.svc.Resolve(ctx, "build do lancelot", false)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, "build-do-lancelot", res.Slug)

	g := res.Guide
	assert.Equal(t, model.CategoryBuild, g.Type)
	assert.Equal(t, "lancelot", g.Game)
	assert.Equal(t, model.DifficultyHard, g.Difficulty)
	require.NotNil(t, g.Build)
	require.Len(t, g.Build.Items, 2)
	assert.Equal(t, []string{"Puncture", "Thorned Rose"}, g.Build.Skills)
	assert.Equal(t, []string{"2-1-3"}, g.Build.Combos)
	require.NotNil(t, g.Counters)
	assert.Equal(t, []string{"Chou"}, g.Counters.WeakAgainst)
	assert.Nil(t, g.TierList)

	structured := "guide:build:lancelot:" + g.ID
	a, err := f.mr.Get(structured)
	require.NoError(t, err)
	b, err := f.mr.Get("slug:build-do-lancelot")
	require.NoError(t, err)
	assert.JSONEq(t, a, b)

	again, err := f.svc.Resolve(ctx, "Build do Lancelot!", false)
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, g.ID, again.Guide.ID)
	assert.Equal(t, 1, f.gen.Calls())
}

func TestResolve_ForceRegenerate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Resolve(ctx, "códigos free fire", false)
	require.NoError(t, err)

	second, err := f.svc.Resolve(ctx, "códigos free fire", true)
	require.NoError(t, err)

	assert.False(t, second.Cached)
	assert.NotEqual(t, first.Guide.ID, second.Guide.ID)
	assert.Equal(t, 2, f.gen.Calls())

	stored, err := f.repo.GetBySlug(ctx, "codigos-free-fire")
	require.NoError(t, err)
	assert.Equal(t, second.Guide.ID, stored.ID)
}

func TestResolve_QueryValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, q := range []string{"", "   ", "\t\n", "!!!"} {
		_, err := f.svc.Resolve(ctx, q, false)
		assert.ErrorIs(t, err, model.ErrEmptyQuery, "query %q", q)
	}

	_, err := f.svc.Resolve(ctx, strings.Repeat("a", 201), false)
	assert.ErrorIs(t, err, model.ErrQueryTooLong)

	_, err = f.svc.Resolve(ctx, strings.Repeat("á", 200), false)
	assert.NotErrorIs(t, err, model.ErrQueryTooLong)

	assert.Equal(t, 1, f.gen.Calls())
}

func TestResolve_GenerationDisabled(t *testing.T) {
	disabled := func(f *fixture) {
		f.settings.settings = &model.SiteSettings{EnableAIGeneration: boolPtr(false)}
	}

	t.Run("miss is rejected without generating", func(t *testing.T) {
		f := newFixture(t, disabled)

		_, err := f.svc.Resolve(context.Background(), "códigos free fire", false)
		assert.ErrorIs(t, err, model.ErrGenerationDisabled)

		var gErr *model.GuideError
		require.ErrorAs(t, err, &gErr)
		assert.Equal(t, model.ErrCodeGenerationDisabled, gErr.Code)
		assert.Equal(t, 0, f.gen.Calls())
	})

	t.Run("hit is still served", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		_, err := f.svc.Resolve(ctx, "códigos free fire", false)
		require.NoError(t, err)

		f.settings.settings = &model.SiteSettings{EnableAIGeneration: boolPtr(false)}
		res, err := f.svc.Resolve(ctx, "códigos free fire", false)
		require.NoError(t, err)
		assert.True(t, res.Cached)
		assert.Equal(t, 1, f.gen.Calls())
	})

	t.Run("force regenerate is rejected", func(t *testing.T) {
		f := newFixture(t, disabled)

		_, err := f.svc.Resolve(context.Background(), "códigos free fire", true)
		assert.ErrorIs(t, err, model.ErrGenerationDisabled)
		assert.Equal(t, 0, f.gen.Calls())
	})

	t.Run("unset flag means enabled", func(t *testing.T) {
		f := newFixture(t, func(f *fixture) {
			f.settings.settings = &model.SiteSettings{}
		})

		_, err := f.svc.Resolve(context.Background(), "códigos free fire", false)
		assert.NoError(t, err)
	})
}

func TestResolve_SettingsFailureIsFailOpen(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.settings.err = errors.New("admin store down")
	})

	res, err := f.svc.Resolve(context.Background(), "códigos free fire", false)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, 1, f.gen.Calls())
}

func TestResolve_AdminAPIKeyOverride(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.settings.settings = &model.SiteSettings{AnthropicAPIKey: "sk-admin", GeminiAPIKey: "g-admin"}
	})

	_, err := f.svc.Resolve(context.Background(), "códigos free fire", false)
	require.NoError(t, err)
	assert.Equal(t, "sk-admin", f.gen.requests[0].APIKey)
}

func TestResolve_GeneratorFailure(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.gen.err = errors.New("upstream 529")
	})

	_, err := f.svc.Resolve(context.Background(), "códigos free fire", false)
	assert.ErrorIs(t, err, model.ErrGenerationFailed)
	assert.Contains(t, err.Error(), "upstream 529")

	assert.False(t, f.mr.Exists("slug:codigos-free-fire"))
	assert.Equal(t, 1, f.gen.Calls())
}

func TestResolve_InvalidOutputSavesNothing(t *testing.T) {
	for name, output := range map[string]string{
		"prose":         "Claro! Aqui estão os códigos...",
		"array":         `[1,2,3]`,
		"missing codes": `{"title":"x","steps":["a"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, func(f *fixture) { f.gen.output = output })

			_, err := f.svc.Resolve(context.Background(), "códigos free fire", false)
			assert.ErrorIs(t, err, model.ErrInvalidGeneratorOutput)
			assert.Empty(t, f.mr.Keys())
		})
	}
}

func TestResolve_RecencyFailureIsSwallowed(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.recent = failingIndex{RecentIndex: f.recent}
	})

	res, err := f.svc.Resolve(context.Background(), "códigos free fire", false)
	require.NoError(t, err)
	assert.True(t, f.mr.Exists("slug:"+res.Slug))
	assert.False(t, f.mr.Exists(model.RecentIndexKey))
}

func TestResolve_Defaults(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.gen.output = `{"steps":["Abra o jogo"]}`
	})

	res, err := f.svc.Resolve(context.Background(), "como jogar valorant", false)
	require.NoError(t, err)

	g := res.Guide
	assert.Equal(t, model.CategoryTutorial, g.Type)
	assert.Equal(t, "jogar valorant", g.Game)
	assert.Equal(t, "Guia de jogar valorant", g.Title)
	assert.Equal(t, model.DifficultyMedium, g.Difficulty)
	assert.Equal(t, model.DefaultReadTime, g.ReadTime)
	assert.Equal(t, "como jogar valorant", g.ImageQuery)
	assert.Equal(t, "", g.Content)
	assert.Equal(t, []string{}, g.Tags)
}

func TestResolve_GameFallsBackToGeneratedThenQuery(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.gen.output = `{"game":"Genshin Impact","codes":[]}`
	})

	res, err := f.svc.Resolve(context.Background(), "códigos grátis", false)
	require.NoError(t, err)
	assert.Equal(t, "Genshin Impact", res.Guide.Game)
	assert.True(t, f.mr.Exists("guide:codes:genshin-impact:"+res.Guide.ID))

	f.gen.output = `{"codes":[]}`
	res, err = f.svc.Resolve(context.Background(), "códigos ativos", false)
	require.NoError(t, err)
	assert.Equal(t, "códigos ativos", res.Guide.Game)
	assert.Equal(t, "Códigos códigos ativos", res.Guide.Title)
}

// ========================================
// READ PATH
// ========================================

func TestGetBySlug_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrGuideNotFound)
}

func TestGetBySlug_CountsViewsAndDrifts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Resolve(ctx, "códigos free fire", false)
	require.NoError(t, err)

	f.mr.FastForward(time.Hour)

	v1, err := f.svc.GetBySlug(ctx, res.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, v1.Guide.Views)
	f.views.Wait()

	v2, err := f.svc.GetBySlug(ctx, res.Slug)
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Guide.Views)
	f.views.Wait()

	// slug copy carries the count and keeps its remaining TTL
	slugCopy, err := f.repo.GetBySlug(ctx, res.Slug)
	require.NoError(t, err)
	assert.Equal(t, 2, slugCopy.Views)
	assert.Equal(t, model.GeneratedGuideTTL-time.Hour, f.mr.TTL("slug:"+res.Slug))

	// structured copy is stale
	structured, err := f.repo.GetByStorageKey(ctx, res.Guide.StorageKey())
	require.NoError(t, err)
	assert.Equal(t, 0, structured.Views)
}

func TestGetBySlug_Monetization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Resolve(ctx, "códigos free fire", false)
	require.NoError(t, err)

	view, err := f.svc.GetBySlug(ctx, res.Slug)
	require.NoError(t, err)
	assert.Nil(t, view.Monetization)
	f.views.Wait()

	f.settings.settings = &model.SiteSettings{Monetization: model.Monetization{AmazonTag: "guia-20"}}
	view, err = f.svc.GetBySlug(ctx, res.Slug)
	require.NoError(t, err)
	f.views.Wait()
	require.NotNil(t, view.Monetization)
	assert.Equal(t, "guia-20", view.Monetization.AmazonTag)

	f.settings.err = errors.New("admin store down")
	view, err = f.svc.GetBySlug(ctx, res.Slug)
	require.NoError(t, err)
	assert.Nil(t, view.Monetization)
	assert.Equal(t, 3, view.Guide.Views)

	f.views.Wait()
}
