package service

import (
	"context"
	"time"

	"gameguide-backend/internal/domains/admin/model"
	"gameguide-backend/internal/domains/admin/repository"
	guideModel "gameguide-backend/internal/domains/guide/model"
	guideRepo "gameguide-backend/internal/domains/guide/repository"
	guideService "gameguide-backend/internal/domains/guide/service"
	"gameguide-backend/pkg/jwt"
)

type AdminService struct {
	configs  repository.ConfigRepository
	sessions repository.SessionRepository
	tokens   *jwt.Manager

	guides guideRepo.GuideRepository
	recent guideRepo.RecentIndex

	siteName   string
	sessionTTL time.Duration
	now        func() time.Time
}

type Option func(*AdminService)

func WithClock(now func() time.Time) Option {
	return func(s *AdminService) { s.now = now }
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *AdminService) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithSiteName sets the name reported when the config record has none.
func WithSiteName(name string) Option {
	return func(s *AdminService) { s.siteName = name }
}

func NewAdminService(
	configs repository.ConfigRepository,
	sessions repository.SessionRepository,
	tokens *jwt.Manager,
	guides guideRepo.GuideRepository,
	recent guideRepo.RecentIndex,
	opts ...Option,
) *AdminService {
	s := &AdminService{
		configs:    configs,
		sessions:   sessions,
		tokens:     tokens,
		guides:     guides,
		recent:     recent,
		siteName:   "Guia Games BR",
		sessionTTL: model.DefaultSessionTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ ServiceInterface            = (*AdminService)(nil)
	_ guideService.SettingsReader = (*AdminService)(nil)
)

// SiteSettings feeds the guide pipeline its feature flag, key overrides and
// monetization identifiers. (nil, nil) until an admin saves a config.
func (s *AdminService) SiteSettings(ctx context.Context) (*guideModel.SiteSettings, error) {
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil
	}
	return cfg.SiteSettings(), nil
}
