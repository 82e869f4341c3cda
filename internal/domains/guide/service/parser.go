package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"gameguide-backend/internal/domains/guide/model"
)

// =====================================================
// PARSED REPRESENTATION
// =====================================================

// ParsedGuide is generator output after fence stripping, type checking and
// content normalization. Empty strings mean the generator left the field out.
type ParsedGuide struct {
	Title           string
	Subtitle        string
	MetaDescription string
	Game            string
	ImageQuery      string
	Content         string
	ReadTime        int
	Difficulty      model.Difficulty
	Tags            []string
	Payload         Payload
}

// Payload is the category-specific part of a guide. Exactly one variant
// exists per category.
type Payload interface {
	Category() model.Category
	apply(g *model.Guide)
}

type CodesPayload struct {
	Codes []model.Code
	Tips  []string
}

type TutorialPayload struct {
	Steps          []string
	Tips           []string
	CommonMistakes []string
}

type TierListPayload struct {
	TierList model.TierList
	Tips     []string
}

type BuildPayload struct {
	Build    model.Build
	Counters *model.Counters
	Tips     []string
}

func (CodesPayload) Category() model.Category    { return model.CategoryCodes }
func (TutorialPayload) Category() model.Category { return model.CategoryTutorial }
func (TierListPayload) Category() model.Category { return model.CategoryTierList }
func (BuildPayload) Category() model.Category    { return model.CategoryBuild }

func (p CodesPayload) apply(g *model.Guide) {
	g.Codes = p.Codes
	g.Tips = p.Tips
}

func (p TutorialPayload) apply(g *model.Guide) {
	g.Steps = p.Steps
	g.Tips = p.Tips
	g.CommonMistakes = p.CommonMistakes
}

func (p TierListPayload) apply(g *model.Guide) {
	tl := p.TierList
	g.TierList = &tl
	g.Tips = p.Tips
}

func (p BuildPayload) apply(g *model.Guide) {
	b := p.Build
	g.Build = &b
	g.Counters = p.Counters
	g.Tips = p.Tips
}

// =====================================================
// PARSING
// =====================================================

// generatorOutput mirrors the JSON object the prompts ask for.
// Pointers distinguish "absent" from "empty"; wrong JSON types fail decoding.
type generatorOutput struct {
	Title           *string         `json:"title"`
	Subtitle        *string         `json:"subtitle"`
	MetaDescription *string         `json:"metaDescription"`
	Game            *string         `json:"game"`
	Difficulty      *string         `json:"difficulty"`
	ReadTime        *float64        `json:"readTime"`
	Tags            []string        `json:"tags"`
	ImageQuery      *string         `json:"imageQuery"`
	Content         json.RawMessage `json:"content"`

	Codes          []model.Code    `json:"codes"`
	Steps          []string        `json:"steps"`
	Tips           []string        `json:"tips"`
	CommonMistakes []string        `json:"commonMistakes"`
	TierList       *model.TierList `json:"tierList"`
	Build          *model.Build    `json:"build"`
	Counters       *model.Counters `json:"counters"`
}

// ParseGeneratorOutput turns raw generator text into a validated ParsedGuide
// for category. Every error wraps model.ErrInvalidGeneratorOutput.
func ParseGeneratorOutput(raw string, category model.Category) (*ParsedGuide, error) {
	// Step 1: Strip ```json fences
	text := StripCodeFences(raw)
	if !strings.HasPrefix(text, "{") {
		return nil, fmt.Errorf("%w: expected a JSON object", model.ErrInvalidGeneratorOutput)
	}

	// Step 2: Decode with type checking
	var out generatorOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidGeneratorOutput, err)
	}

	// Step 3: Normalize content
	content, err := NormalizeContent(out.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: content: %v", model.ErrInvalidGeneratorOutput, err)
	}

	parsed := &ParsedGuide{
		Title:           deref(out.Title),
		Subtitle:        deref(out.Subtitle),
		MetaDescription: deref(out.MetaDescription),
		Game:            strings.TrimSpace(deref(out.Game)),
		ImageQuery:      deref(out.ImageQuery),
		Content:         content,
		ReadTime:        normalizeReadTime(out.ReadTime),
		Difficulty:      model.DefaultDifficulty,
		Tags:            out.Tags,
	}
	if parsed.Tags == nil {
		parsed.Tags = []string{}
	}

	// Step 4: Difficulty aliases
	if d := strings.TrimSpace(deref(out.Difficulty)); d != "" {
		difficulty, ok := model.ParseDifficulty(d)
		if !ok {
			return nil, fmt.Errorf("%w: %w %q", model.ErrInvalidGeneratorOutput, model.ErrInvalidDifficulty, d)
		}
		parsed.Difficulty = difficulty
	}

	// Step 5: Category payload
	payload, err := buildPayload(&out, category)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidGeneratorOutput, err)
	}
	parsed.Payload = payload

	return parsed, nil
}

// StripCodeFences removes a leading ```/```json fence and its closing fence.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)

	if strings.HasPrefix(trimmed, "```") {
		firstNewline := strings.Index(trimmed, "\n")
		if firstNewline != -1 {
			lastFence := strings.LastIndex(trimmed, "```")
			if lastFence > firstNewline {
				return strings.TrimSpace(trimmed[firstNewline+1 : lastFence])
			}
		}
	}

	return trimmed
}

// NormalizeContent flattens the generator's content field into an HTML string:
// strings verbatim, arrays as <p> paragraphs, objects as compact JSON.
func NormalizeContent(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil

	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return "", err
		}
		var sb strings.Builder
		for _, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				s, err = compactJSON(item)
				if err != nil {
					return "", err
				}
			}
			sb.WriteString("<p>")
			sb.WriteString(s)
			sb.WriteString("</p>")
		}
		return sb.String(), nil

	case '{':
		return compactJSON(trimmed)

	default:
		// numbers and booleans
		return string(trimmed), nil
	}
}

func compactJSON(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalizeReadTime(v *float64) int {
	if v == nil || *v <= 0 || math.IsNaN(*v) {
		return model.DefaultReadTime
	}
	if *v > model.MaxReadTime || math.IsInf(*v, 0) {
		return model.MaxReadTime
	}
	return int(math.Ceil(*v))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// =====================================================
// CATEGORY VALIDATION
// =====================================================

var errEmptyName = errors.New("name is required")

func buildPayload(out *generatorOutput, category model.Category) (Payload, error) {
	switch category {
	case model.CategoryCodes:
		err := validation.ValidateStruct(out,
			validation.Field(&out.Codes,
				validation.NotNil.Error("codes is required"),
				validation.Each(validation.By(codeHasValue)),
			),
		)
		if err != nil {
			return nil, categoryError(category, err)
		}
		return CodesPayload{Codes: out.Codes, Tips: out.Tips}, nil

	case model.CategoryTierList:
		err := validation.ValidateStruct(out,
			validation.Field(&out.TierList, validation.NotNil.Error("tierList is required")),
		)
		if err != nil {
			return nil, categoryError(category, err)
		}
		tl := normalizeTierList(*out.TierList)
		for _, bucket := range [][]model.TierItem{tl.S, tl.A, tl.B, tl.C, tl.D} {
			if err := validation.Validate(bucket, validation.Each(validation.By(tierItemHasName))); err != nil {
				return nil, categoryError(category, err)
			}
		}
		return TierListPayload{TierList: tl, Tips: out.Tips}, nil

	case model.CategoryBuild:
		err := validation.ValidateStruct(out,
			validation.Field(&out.Build, validation.NotNil.Error("build is required")),
		)
		if err != nil {
			return nil, categoryError(category, err)
		}
		b := normalizeBuild(*out.Build)
		if err := validation.Validate(b.Items, validation.Each(validation.By(buildItemHasName))); err != nil {
			return nil, categoryError(category, err)
		}
		return BuildPayload{Build: b, Counters: out.Counters, Tips: out.Tips}, nil

	default:
		err := validation.ValidateStruct(out,
			validation.Field(&out.Steps,
				validation.NotNil.Error("steps is required"),
				validation.Each(validation.Required),
			),
		)
		if err != nil {
			return nil, categoryError(model.CategoryTutorial, err)
		}
		return TutorialPayload{Steps: out.Steps, Tips: out.Tips, CommonMistakes: out.CommonMistakes}, nil
	}
}

func categoryError(category model.Category, err error) error {
	return fmt.Errorf("%w for %s: %v", model.ErrMissingCategoryPayload, category, err)
}

func codeHasValue(value interface{}) error {
	if c, ok := value.(model.Code); ok && strings.TrimSpace(c.Code) == "" {
		return errors.New("code is required")
	}
	return nil
}

func tierItemHasName(value interface{}) error {
	if item, ok := value.(model.TierItem); ok && strings.TrimSpace(item.Name) == "" {
		return errEmptyName
	}
	return nil
}

func buildItemHasName(value interface{}) error {
	if item, ok := value.(model.BuildItem); ok && strings.TrimSpace(item.Name) == "" {
		return errEmptyName
	}
	return nil
}

func normalizeTierList(tl model.TierList) model.TierList {
	for _, bucket := range []*[]model.TierItem{&tl.S, &tl.A, &tl.B, &tl.C, &tl.D} {
		if *bucket == nil {
			*bucket = []model.TierItem{}
		}
	}
	return tl
}

func normalizeBuild(b model.Build) model.Build {
	if b.Items == nil {
		b.Items = []model.BuildItem{}
	}
	if b.Skills == nil {
		b.Skills = []string{}
	}
	if b.Combos == nil {
		b.Combos = []string{}
	}
	return b
}
