package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator uses the Gemini API through the genai SDK.
// Clients are bound to an API key, so one is kept per key in use.
type GeminiGenerator struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	timeout     time.Duration

	mu      sync.Mutex
	clients map[string]*genai.Client
}

func NewGeminiGenerator(opts Options) *GeminiGenerator {
	if opts.Model == "" {
		opts.Model = defaultGeminiModel
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 3000
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}

	return &GeminiGenerator{
		apiKey:      opts.APIKey,
		baseURL:     opts.BaseURL,
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		timeout:     opts.Timeout,
		clients:     make(map[string]*genai.Client),
	}
}

func (g *GeminiGenerator) Provider() string { return ProviderGemini }

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	apiKey, err := resolveKey(g.apiKey, req.APIKey)
	if err != nil {
		return "", err
	}

	client, err := g.client(ctx, apiKey)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	startTime := time.Now()

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(g.temperature)),
		MaxOutputTokens:  int32(g.maxTokens),
		ResponseMIMEType: "application/json",
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}

	log.Debug().
		Str("provider", ProviderGemini).
		Str("model", g.model).
		Dur("latency", time.Since(startTime)).
		Int("response_len", len(text)).
		Msg("generation completed")

	return text, nil
}

func (g *GeminiGenerator) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[apiKey]; ok {
		return c, nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: g.baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	g.clients[apiKey] = c
	return c, nil
}
