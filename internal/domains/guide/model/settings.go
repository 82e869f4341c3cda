package model

// SiteSettings is the slice of the admin config the guide pipeline reads.
type SiteSettings struct {
	// EnableAIGeneration is nil when the flag was never set (treated as enabled).
	EnableAIGeneration *bool
	AnthropicAPIKey    string
	GeminiAPIKey       string
	Monetization       Monetization
}

// GenerationDisabled is true only when the flag is explicitly false.
func (s *SiteSettings) GenerationDisabled() bool {
	return s != nil && s.EnableAIGeneration != nil && !*s.EnableAIGeneration
}

// APIKeyFor returns the admin-provided key for provider, or "".
func (s *SiteSettings) APIKeyFor(provider string) string {
	if s == nil {
		return ""
	}
	switch provider {
	case "anthropic":
		return s.AnthropicAPIKey
	case "gemini":
		return s.GeminiAPIKey
	}
	return ""
}
