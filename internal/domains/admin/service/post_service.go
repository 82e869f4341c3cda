package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"gameguide-backend/internal/domains/admin/model"
	guideModel "gameguide-backend/internal/domains/guide/model"
	"gameguide-backend/internal/shared/utils"
)

const topPostsLimit = 5

var (
	markdown  = goldmark.New(goldmark.WithExtensions(extension.GFM))
	sanitizer = bluemonday.UGCPolicy()
)

// =====================================================
// MANUAL POSTS
// =====================================================

func (s *AdminService) CreatePost(ctx context.Context, req model.CreatePostRequest) (*guideModel.Guide, error) {
	// Step 1: Validate
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	slug := utils.Slugify(req.Title)
	if slug == "" {
		return nil, model.NewValidationError(errors.New("title: must contain letters or digits"))
	}

	// Step 2: Render + sanitize body
	content, err := renderContent(req.Content, req.ContentFormat)
	if err != nil {
		return nil, err
	}

	// Step 3: Fill defaults
	category := guideModel.CategoryTutorial
	if req.Category != "" {
		category = guideModel.Category(req.Category)
	}

	difficulty := guideModel.DefaultDifficulty
	if d, ok := guideModel.ParseDifficulty(req.Difficulty); ok {
		difficulty = d
	}

	status := req.Status
	if status == "" {
		status = guideModel.StatusPublished
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	game := guideModel.DefaultManualGame
	if len(tags) > 0 && strings.TrimSpace(tags[0]) != "" {
		game = strings.TrimSpace(tags[0])
	}

	metaDescription := req.Subtitle
	if metaDescription == "" {
		metaDescription = req.Title
	}

	now := s.now().UTC()
	guide := &guideModel.Guide{
		ID:              utils.GenerateID(),
		Slug:            slug,
		Type:            category,
		Game:            game,
		Title:           req.Title,
		Subtitle:        req.Subtitle,
		MetaDescription: metaDescription,
		ImageURL:        req.ImageURL,
		ImageQuery:      req.Title,
		Content:         content,
		ReadTime:        readTime(req.Content),
		Difficulty:      difficulty,
		Tags:            tags,
		Status:          status,
		Views:           0,
		CreatedAt:       now,
		UpdatedAt:       now,
		ExpiresAt:       now.Add(guideModel.ManualGuideTTL),
	}

	// Step 4: Persist + index
	if err := s.guides.Save(ctx, guide, guideModel.ManualGuideTTL); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	if err := s.recent.Prepend(ctx, guide.Summary()); err != nil {
		return nil, fmt.Errorf("index post: %w", err)
	}

	log.Info().Str("slug", slug).Str("status", status).Msg("manual post created")

	return guide, nil
}

func renderContent(body, format string) (string, error) {
	if format == model.ContentFormatMarkdown {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(body), &buf); err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
		body = buf.String()
	}
	return sanitizer.Sanitize(body), nil
}

// readTime is one minute per started block of characters, never below one.
func readTime(content string) int {
	n := utf8.RuneCountInString(content)
	minutes := (n + guideModel.CharsPerReadMinute - 1) / guideModel.CharsPerReadMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

func (s *AdminService) ListPosts(ctx context.Context) ([]guideModel.Summary, error) {
	return s.recent.List(ctx)
}

// =====================================================
// STATS
// =====================================================

func (s *AdminService) Stats(ctx context.Context) (*model.Stats, error) {
	entries, err := s.recent.List(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC().Format("2006-01-02")
	stats := &model.Stats{TotalPosts: len(entries), TopPosts: []model.TopPost{}}

	for _, e := range entries {
		stats.TotalViews += e.Views
		if e.CreatedAt.UTC().Format("2006-01-02") == today {
			stats.PostsToday++
		}
	}

	sorted := make([]guideModel.Summary, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Views > sorted[j].Views })

	for i := 0; i < len(sorted) && i < topPostsLimit; i++ {
		stats.TopPosts = append(stats.TopPosts, model.TopPost{
			Title: sorted[i].Title,
			Views: sorted[i].Views,
			Slug:  sorted[i].Slug,
		})
	}

	return stats, nil
}
