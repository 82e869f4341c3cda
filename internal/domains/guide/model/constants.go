package model

import "time"

const (
	// Storage lifetimes
	GeneratedGuideTTL = 7 * 24 * time.Hour
	ManualGuideTTL    = 365 * 24 * time.Hour

	// Recency index
	RecentIndexKey = "recent:guides"
	RecentIndexCap = 100

	// Defaults applied to generated guides
	DefaultReadTime   = 5
	MaxReadTime       = 120
	DefaultDifficulty = DifficultyMedium

	// Manual posts: one minute per this many characters, rounded up
	CharsPerReadMinute = 1000

	// Game name used for manual posts without tags
	DefaultManualGame = "Geral"

	// Post status
	StatusPublished = "published"
	StatusDraft     = "draft"
)
