package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"gameguide-backend/internal/domains/guide/model"
	"gameguide-backend/internal/domains/guide/repository"
	"gameguide-backend/internal/infrastructure/llm"
	"gameguide-backend/internal/shared/utils"
)

type GuideService struct {
	repo      repository.GuideRepository
	recent    repository.RecentIndex
	settings  SettingsReader
	generator llm.Generator
	prompts   *PromptBuilder
	views     ViewRecorder

	maxQueryLen int
	now         func() time.Time
}

// Option tweaks a GuideService at construction.
type Option func(*GuideService)

// WithClock replaces time.Now, for tests that pin the prompt year.
func WithClock(now func() time.Time) Option {
	return func(s *GuideService) { s.now = now }
}

func WithMaxQueryLength(n int) Option {
	return func(s *GuideService) {
		if n > 0 {
			s.maxQueryLen = n
		}
	}
}

func NewGuideService(
	repo repository.GuideRepository,
	recent repository.RecentIndex,
	settings SettingsReader,
	generator llm.Generator,
	prompts *PromptBuilder,
	views ViewRecorder,
	opts ...Option,
) *GuideService {
	s := &GuideService{
		repo:        repo,
		recent:      recent,
		settings:    settings,
		generator:   generator,
		prompts:     prompts,
		views:       views,
		maxQueryLen: 200,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ServiceInterface = (*GuideService)(nil)

// =====================================================
// RESOLVE (query → guide)
// =====================================================

func (s *GuideService) Resolve(ctx context.Context, query string, forceRegenerate bool) (*model.GuideResult, error) {
	// Step 1: Validate
	if strings.TrimSpace(query) == "" {
		return nil, model.NewEmptyQueryError()
	}
	if utf8.RuneCountInString(query) > s.maxQueryLen {
		return nil, model.NewQueryTooLongError(s.maxQueryLen)
	}

	// Step 2: Classify
	category := Classify(query)
	extracted := ExtractSubject(query)
	subject := extracted
	if subject == "" {
		subject = query
	}
	slug := utils.Slugify(query)
	if slug == "" {
		return nil, model.NewEmptyQueryError()
	}

	logger := log.With().Str("slug", slug).Str("category", string(category)).Logger()

	// Step 3: Cache probe
	if !forceRegenerate {
		cached, err := s.repo.GetBySlug(ctx, slug)
		switch {
		case err == nil:
			logger.Debug().Msg("guide cache hit")
			return &model.GuideResult{Guide: cached, Cached: true, Slug: slug}, nil
		case !errors.Is(err, model.ErrGuideNotFound):
			return nil, fmt.Errorf("probe guide cache: %w", err)
		}
	}

	// Step 4: Feature flag (fail-open)
	settings, err := s.settings.SiteSettings(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read site settings, generation allowed")
		settings = nil
	}
	if settings.GenerationDisabled() {
		return nil, model.NewGenerationDisabledError()
	}

	// Step 5: Generate (single attempt)
	now := s.now()
	logger.Info().Str("provider", s.generator.Provider()).Msg("guide cache miss, generating")

	raw, err := s.generator.Generate(ctx, llm.Request{
		System: s.prompts.System(),
		Prompt: s.prompts.User(category, query, subject, now),
		APIKey: settings.APIKeyFor(s.generator.Provider()),
	})
	if err != nil {
		return nil, model.NewGenerationFailedError(err)
	}

	// Step 6: Parse + validate
	parsed, err := ParseGeneratorOutput(raw, category)
	if err != nil {
		logger.Warn().Err(err).Msg("generator output rejected")
		return nil, model.NewInvalidOutputError(err)
	}

	guide := assembleGuide(parsed, category, query, extracted, slug, now)

	// Step 7: Persist both keys
	if err := s.repo.Save(ctx, guide, model.GeneratedGuideTTL); err != nil {
		return nil, fmt.Errorf("save guide: %w", err)
	}

	// Step 8: Recency index (best effort)
	if err := s.recent.Prepend(ctx, guide.Summary()); err != nil {
		logger.Warn().Err(err).Msg("failed to update recent guides index")
	}

	logger.Info().Str("key", guide.StorageKey()).Msg("guide generated and saved")

	return &model.GuideResult{Guide: guide, Cached: false, Slug: slug}, nil
}

func assembleGuide(p *ParsedGuide, category model.Category, query, extracted, slug string, now time.Time) *model.Guide {
	now = now.UTC()

	game := extracted
	if game == "" {
		game = p.Game
	}
	if game == "" {
		game = query
	}

	title := p.Title
	if strings.TrimSpace(title) == "" {
		title = defaultTitle(category, game)
	}

	imageQuery := p.ImageQuery
	if imageQuery == "" {
		imageQuery = query
	}

	guide := &model.Guide{
		ID:              utils.GenerateID(),
		Slug:            slug,
		Type:            category,
		Game:            game,
		Title:           title,
		Subtitle:        p.Subtitle,
		MetaDescription: p.MetaDescription,
		ImageURL:        "",
		ImageQuery:      imageQuery,
		Content:         p.Content,
		ReadTime:        p.ReadTime,
		Difficulty:      p.Difficulty,
		Tags:            p.Tags,
		Views:           0,
		CreatedAt:       now,
		UpdatedAt:       now,
		ExpiresAt:       now.Add(model.GeneratedGuideTTL),
	}
	p.Payload.apply(guide)

	return guide
}

func defaultTitle(category model.Category, game string) string {
	switch category {
	case model.CategoryCodes:
		return "Códigos " + game
	case model.CategoryTierList:
		return "Tier List " + game
	case model.CategoryBuild:
		return "Build " + game
	default:
		return "Guia de " + game
	}
}

// =====================================================
// READ PATH
// =====================================================

func (s *GuideService) GetBySlug(ctx context.Context, slug string) (*model.GuideView, error) {
	guide, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, model.ErrGuideNotFound) {
			return nil, model.NewGuideNotFoundError(slug)
		}
		return nil, fmt.Errorf("get guide: %w", err)
	}

	// Count the view; the write happens off the request path.
	guide.Views++
	s.views.Record(guide)

	view := &model.GuideView{Guide: guide}

	settings, err := s.settings.SiteSettings(ctx)
	if err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("failed to read monetization settings")
		return view, nil
	}
	if settings != nil && !settings.Monetization.IsEmpty() {
		m := settings.Monetization
		view.Monetization = &m
	}

	return view, nil
}
