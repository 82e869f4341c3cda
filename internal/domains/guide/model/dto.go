package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// GenerateRequest body of POST /api/generate-content
type GenerateRequest struct {
	Query           string `json:"query"`
	ForceRegenerate bool   `json:"forceRegenerate"`
}

func (r GenerateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Required.Error("query is required")),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// GuideResult is the outcome of resolving a query.
type GuideResult struct {
	Guide  *Guide
	Cached bool
	Slug   string
}

// GenerateResponse envelope of POST /api/generate-content
type GenerateResponse struct {
	Success bool   `json:"success"`
	Data    *Guide `json:"data"`
	Cached  bool   `json:"cached"`
	Slug    string `json:"slug"`
}

// GuideView is a guide as served by the read path.
type GuideView struct {
	Guide        *Guide
	Monetization *Monetization
}

// GuideViewResponse envelope of GET /api/get-guide/:slug
type GuideViewResponse struct {
	Success      bool          `json:"success"`
	Data         *Guide        `json:"data"`
	Monetization *Monetization `json:"monetization,omitempty"`
}

// IsEmpty reports whether no affiliate or ad identifier is set.
func (m *Monetization) IsEmpty() bool {
	return m == nil || *m == Monetization{}
}
