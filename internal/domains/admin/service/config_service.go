package service

import (
	"context"
	"fmt"

	"gameguide-backend/internal/domains/admin/model"
)

// GetConfig returns the stored config with secrets masked.
func (s *AdminService) GetConfig(ctx context.Context) (*model.Config, error) {
	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load admin config: %w", err)
	}
	if cfg == nil {
		cfg = &model.Config{}
	}
	if cfg.SiteName == "" {
		cfg.SiteName = s.siteName
	}

	masked := cfg.Masked()
	return &masked, nil
}

// PutConfig merges req into the stored config.
// Secrets left empty or still holding the mask placeholder keep their stored value.
func (s *AdminService) PutConfig(ctx context.Context, req model.ConfigUpdateRequest) (*model.Config, error) {
	if err := req.Validate(); err != nil {
		return nil, model.NewValidationError(err)
	}

	cfg, err := s.configs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load admin config: %w", err)
	}
	if cfg == nil {
		cfg = &model.Config{}
	}

	if isNewSecret(req.Password) {
		hash, err := HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		cfg.PasswordHash = hash
	}
	if isNewSecret(req.AnthropicAPIKey) {
		cfg.AnthropicAPIKey = *req.AnthropicAPIKey
	}
	if isNewSecret(req.GeminiAPIKey) {
		cfg.GeminiAPIKey = *req.GeminiAPIKey
	}

	setString(&cfg.Username, req.Username)
	setString(&cfg.AdminPath, req.AdminPath)
	setString(&cfg.SiteName, req.SiteName)
	setString(&cfg.AmazonTag, req.AmazonTag)
	setString(&cfg.ShopeeID, req.ShopeeID)
	setString(&cfg.MagaluID, req.MagaluID)
	setString(&cfg.AliexpressID, req.AliexpressID)
	setString(&cfg.MercadoLivreID, req.MercadoLivreID)
	setString(&cfg.AdSensePubID, req.AdSensePubID)
	setString(&cfg.AdSenseSlotID, req.AdSenseSlotID)

	if req.EnableAIGeneration != nil {
		enabled := *req.EnableAIGeneration
		cfg.EnableAIGeneration = &enabled
	}

	if err := s.configs.Save(ctx, cfg); err != nil {
		return nil, err
	}

	if cfg.SiteName == "" {
		cfg.SiteName = s.siteName
	}
	masked := cfg.Masked()
	return &masked, nil
}

func isNewSecret(v *string) bool {
	return v != nil && *v != "" && *v != model.MaskPlaceholder
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
