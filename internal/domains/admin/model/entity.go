package model

import (
	"time"

	guideModel "gameguide-backend/internal/domains/guide/model"
)

const (
	ConfigKey        = "admin:config"
	SessionKeyPrefix = "session:"

	// MaskPlaceholder replaces stored secrets in config responses.
	MaskPlaceholder = "********"

	DefaultSessionTTL = 24 * time.Hour
)

// Config is the single admin configuration record.
type Config struct {
	// Credentials
	Username     string `json:"username"`
	AdminPath    string `json:"adminPath"`
	PasswordHash string `json:"passwordHash"`

	// Generation
	EnableAIGeneration *bool  `json:"enableAiGeneration,omitempty"`
	AnthropicAPIKey    string `json:"anthropicApiKey"`
	GeminiAPIKey       string `json:"geminiApiKey"`

	SiteName string `json:"siteName"`

	// Affiliates
	AmazonTag      string `json:"amazonTag"`
	ShopeeID       string `json:"shopeeId"`
	MagaluID       string `json:"magaluId"`
	AliexpressID   string `json:"aliexpressId"`
	MercadoLivreID string `json:"mercadolivreId"`

	// Ads
	AdSensePubID  string `json:"adSensePubId"`
	AdSenseSlotID string `json:"adSenseSlotId"`
}

// Masked returns a copy safe to send to the admin UI.
func (c Config) Masked() Config {
	c.PasswordHash = mask(c.PasswordHash)
	c.AnthropicAPIKey = mask(c.AnthropicAPIKey)
	c.GeminiAPIKey = mask(c.GeminiAPIKey)
	return c
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return MaskPlaceholder
}

func (c *Config) Monetization() guideModel.Monetization {
	return guideModel.Monetization{
		AmazonTag:      c.AmazonTag,
		ShopeeID:       c.ShopeeID,
		MagaluID:       c.MagaluID,
		AliexpressID:   c.AliexpressID,
		MercadoLivreID: c.MercadoLivreID,
		AdSensePubID:   c.AdSensePubID,
		AdSenseSlotID:  c.AdSenseSlotID,
	}
}

// SiteSettings projects the config onto what the guide pipeline reads.
func (c *Config) SiteSettings() *guideModel.SiteSettings {
	return &guideModel.SiteSettings{
		EnableAIGeneration: c.EnableAIGeneration,
		AnthropicAPIKey:    c.AnthropicAPIKey,
		GeminiAPIKey:       c.GeminiAPIKey,
		Monetization:       c.Monetization(),
	}
}

// Session is stored at session:{id} where id is the token's jti.
type Session struct {
	Username  string    `json:"username"`
	AdminPath string    `json:"adminPath"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Stats is the dashboard summary computed from the recency index.
type Stats struct {
	TotalPosts int       `json:"totalPosts"`
	TotalViews int       `json:"totalViews"`
	PostsToday int       `json:"postsToday"`
	TopPosts   []TopPost `json:"topPosts"`
}

type TopPost struct {
	Title string `json:"title"`
	Views int    `json:"views"`
	Slug  string `json:"slug"`
}
