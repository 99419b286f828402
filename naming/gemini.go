package naming

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiDefaultModel = "gemini-1.5-flash"

// GeminiConfig holds configuration for the Gemini namer.
type GeminiConfig struct {
	APIKey string
	Model  string
	Retry  RetryPolicy
	Logger *slog.Logger
}

// Gemini names tables with Google's Gemini models.
type Gemini struct {
	client *genai.Client
	model  string
	retry  RetryPolicy
	log    *slog.Logger
}

// NewGemini creates a Gemini namer. Close releases the client.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key not set")
	}
	if cfg.Model == "" {
		cfg.Model = geminiDefaultModel
	}
	if cfg.Retry.Attempts == 0 {
		cfg.Retry = DefaultRetryPolicy()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	cl, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: cl, model: cfg.Model, retry: cfg.Retry, log: cfg.Logger}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// TableName asks the model for a file name.
func (g *Gemini) TableName(ctx context.Context, title, content string) (string, error) {
	return g.generate(ctx, tableNamePrompt(title, content))
}

// ColumnNames asks the model for a comma-separated list of count names.
func (g *Gemini) ColumnNames(ctx context.Context, count int, content string) ([]string, error) {
	answer, err := g.generate(ctx, columnNamesPrompt(count, content))
	if err != nil {
		return nil, err
	}
	return ParseColumnList(answer), nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	m := g.client.GenerativeModel(g.model)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}
	m.SetTemperature(0)

	return g.retry.do(ctx, func() (string, error) {
		resp, err := m.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			g.log.Warn("gemini request failed", "model", g.model, "error", err)
			return "", fmt.Errorf("gemini generate: %w", err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return "", errors.New("gemini returned no candidates")
		}

		var b strings.Builder
		for _, p := range resp.Candidates[0].Content.Parts {
			if t, ok := p.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		return strings.TrimSpace(b.String()), nil
	})
}

var _ Namer = (*Gemini)(nil)
