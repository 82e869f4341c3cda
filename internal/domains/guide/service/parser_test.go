package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameguide-backend/internal/domains/guide/model"
)

const codesJSON = `{
  "title": "Códigos Free Fire",
  "game": "Free Fire",
  "difficulty": "facil",
  "readTime": 3,
  "tags": ["codigos"],
  "codes": [{"code": "FF11", "reward": "Skin", "active": true}],
  "content": "<p>ok</p>"
}`

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
		{"unterminated", "```json", "```json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"absent", ``, ""},
		{"null", `null`, ""},
		{"string", `"<p>hi</p>"`, "<p>hi</p>"},
		{"array of strings", `["a","b"]`, "<p>a</p><p>b</p>"},
		{"array mixed", `["a",{"x":1},2]`, `<p>a</p><p>{"x":1}</p><p>2</p>`},
		{"object", `{ "intro": "x",  "n": [1, 2] }`, `{"intro":"x","n":[1,2]}`},
		{"number", `42`, "42"},
		{"bool", `true`, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeContent(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGeneratorOutput_Codes(t *testing.T) {
	parsed, err := ParseGeneratorOutput("```json\n"+codesJSON+"\n```", model.CategoryCodes)
	require.NoError(t, err)

	assert.Equal(t, "Códigos Free Fire", parsed.Title)
	assert.Equal(t, "Free Fire", parsed.Game)
	assert.Equal(t, model.DifficultyEasy, parsed.Difficulty)
	assert.Equal(t, 3, parsed.ReadTime)
	assert.Equal(t, "<p>ok</p>", parsed.Content)

	payload, ok := parsed.Payload.(CodesPayload)
	require.True(t, ok)
	assert.Equal(t, model.CategoryCodes, payload.Category())
	require.Len(t, payload.Codes, 1)
	assert.Equal(t, "FF11", payload.Codes[0].Code)
}

func TestParseGeneratorOutput_Defaults(t *testing.T) {
	parsed, err := ParseGeneratorOutput(`{"steps": ["um", "dois"]}`, model.CategoryTutorial)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultReadTime, parsed.ReadTime)
	assert.Equal(t, model.DifficultyMedium, parsed.Difficulty)
	assert.Equal(t, "", parsed.Content)
	assert.Equal(t, []string{}, parsed.Tags)
	assert.Equal(t, "", parsed.Title)

	payload := parsed.Payload.(TutorialPayload)
	assert.Equal(t, []string{"um", "dois"}, payload.Steps)
}

func TestParseGeneratorOutput_ReadTime(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`2.1`, 3},
		{`4`, 4},
		{`0`, model.DefaultReadTime},
		{`-3`, model.DefaultReadTime},
		{`null`, model.DefaultReadTime},
		{`119.5`, 120},
		{`121`, model.MaxReadTime},
		{`1e30`, model.MaxReadTime},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			parsed, err := ParseGeneratorOutput(`{"steps":["a"],"readTime":`+tt.raw+`}`, model.CategoryTutorial)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.ReadTime)
		})
	}
}

func TestParseGeneratorOutput_TierListBucketsNeverNil(t *testing.T) {
	parsed, err := ParseGeneratorOutput(`{"tierList":{"S":[{"name":"Kaiser","reason":"forte"}]}}`, model.CategoryTierList)
	require.NoError(t, err)

	tl := parsed.Payload.(TierListPayload).TierList
	require.Len(t, tl.S, 1)
	assert.NotNil(t, tl.A)
	assert.NotNil(t, tl.D)

	guide := &model.Guide{}
	parsed.Payload.apply(guide)
	raw, err := json.Marshal(guide.TierList)
	require.NoError(t, err)
	assert.JSONEq(t, `{"S":[{"name":"Kaiser","reason":"forte"}],"A":[],"B":[],"C":[],"D":[]}`, string(raw))
}

func TestParseGeneratorOutput_Build(t *testing.T) {
	parsed, err := ParseGeneratorOutput(`{
		"difficulty": "dificil",
		"build": {"items": [{"name": "Blade", "order": 1, "reason": "dano"}]},
		"counters": {"strongAgainst": ["Miya"], "weakAgainst": []}
	}`, model.CategoryBuild)
	require.NoError(t, err)

	assert.Equal(t, model.DifficultyHard, parsed.Difficulty)
	payload := parsed.Payload.(BuildPayload)
	assert.Equal(t, "Blade", payload.Build.Items[0].Name)
	assert.Equal(t, []string{}, payload.Build.Skills)
	require.NotNil(t, payload.Counters)
	assert.Equal(t, []string{"Miya"}, payload.Counters.StrongAgainst)
}

func TestParseGeneratorOutput_Errors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		category model.Category
		missing  bool
	}{
		{"not json", "Desculpe, não consigo.", model.CategoryCodes, false},
		{"top-level array", `[{"codes":[]}]`, model.CategoryCodes, false},
		{"top-level null", `null`, model.CategoryCodes, false},
		{"broken json", `{"title": "x"`, model.CategoryCodes, false},
		{"title wrong type", `{"title": 5, "codes": []}`, model.CategoryCodes, false},
		{"codes wrong type", `{"codes": "FF11"}`, model.CategoryCodes, false},
		{"active wrong type", `{"codes": [{"code":"A","active":"yes"}]}`, model.CategoryCodes, false},
		{"readTime as string", `{"codes": [], "readTime": "5"}`, model.CategoryCodes, false},
		{"unknown difficulty", `{"codes": [], "difficulty": "insane"}`, model.CategoryCodes, false},
		{"codes missing", `{"steps": ["a"]}`, model.CategoryCodes, true},
		{"steps missing", `{"codes": []}`, model.CategoryTutorial, true},
		{"tierList missing", `{"codes": []}`, model.CategoryTierList, true},
		{"build missing", `{"codes": []}`, model.CategoryBuild, true},
		{"empty code", `{"codes": [{"code": " "}]}`, model.CategoryCodes, true},
		{"tier item without name", `{"tierList": {"A": [{"reason": "x"}]}}`, model.CategoryTierList, true},
		{"build item without name", `{"build": {"items": [{"order": 1}]}}`, model.CategoryBuild, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseGeneratorOutput(tt.raw, tt.category)
			require.Error(t, err)
			assert.Nil(t, parsed)
			assert.ErrorIs(t, err, model.ErrInvalidGeneratorOutput)
			if tt.missing {
				assert.ErrorIs(t, err, model.ErrMissingCategoryPayload)
			}
		})
	}
}

func TestParseGeneratorOutput_EmptyCodesListAllowed(t *testing.T) {
	parsed, err := ParseGeneratorOutput(`{"codes": []}`, model.CategoryCodes)
	require.NoError(t, err)
	assert.Empty(t, parsed.Payload.(CodesPayload).Codes)
}
