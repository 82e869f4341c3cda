package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeInvalidQuery           = "INVALID_QUERY"
	ErrCodeGuideNotFound          = "GUIDE_NOT_FOUND"
	ErrCodeGenerationDisabled     = "GENERATION_DISABLED"
	ErrCodeGenerationFailed       = "GENERATION_FAILED"
	ErrCodeInvalidGeneratorOutput = "INVALID_GENERATOR_OUTPUT"
	ErrCodeStorage                = "STORAGE_ERROR"
)

// Errors
var (
	ErrEmptyQuery             = errors.New("query is required")
	ErrQueryTooLong           = errors.New("query is too long")
	ErrGuideNotFound          = errors.New("guide not found")
	ErrGenerationDisabled     = errors.New("ai generation is disabled")
	ErrGenerationFailed       = errors.New("content generation failed")
	ErrInvalidGeneratorOutput = errors.New("invalid generator output")
	ErrMissingCategoryPayload = errors.New("missing category payload")
	ErrInvalidDifficulty      = errors.New("invalid difficulty")
)

// GuideError custom error type
type GuideError struct {
	Code    string
	Message string
	Err     error
}

func (e *GuideError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GuideError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewEmptyQueryError() *GuideError {
	return &GuideError{
		Code:    ErrCodeInvalidQuery,
		Message: "Query is required",
		Err:     ErrEmptyQuery,
	}
}

func NewQueryTooLongError(max int) *GuideError {
	return &GuideError{
		Code:    ErrCodeInvalidQuery,
		Message: fmt.Sprintf("Query must be at most %d characters", max),
		Err:     ErrQueryTooLong,
	}
}

func NewGuideNotFoundError(slug string) *GuideError {
	return &GuideError{
		Code:    ErrCodeGuideNotFound,
		Message: fmt.Sprintf("Guide %q not found", slug),
		Err:     ErrGuideNotFound,
	}
}

func NewGenerationDisabledError() *GuideError {
	return &GuideError{
		Code:    ErrCodeGenerationDisabled,
		Message: "Guide not available and AI generation is disabled",
		Err:     ErrGenerationDisabled,
	}
}

func NewGenerationFailedError(err error) *GuideError {
	return &GuideError{
		Code:    ErrCodeGenerationFailed,
		Message: "Failed to generate content",
		Err:     fmt.Errorf("%w: %w", ErrGenerationFailed, err),
	}
}

func NewInvalidOutputError(err error) *GuideError {
	if !errors.Is(err, ErrInvalidGeneratorOutput) {
		err = fmt.Errorf("%w: %w", ErrInvalidGeneratorOutput, err)
	}
	return &GuideError{
		Code:    ErrCodeInvalidGeneratorOutput,
		Message: "Generator returned invalid content",
		Err:     err,
	}
}
