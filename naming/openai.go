package naming

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const openAIDefaultModel = "gpt-4o-mini"

// OpenAIConfig holds configuration for the OpenAI namer.
type OpenAIConfig struct {
	APIKey     string
	Model      string        // "gpt-4o-mini" (default)
	Timeout    time.Duration // HTTP timeout
	Retry      RetryPolicy
	BaseURL    string       // Optional (tests, compatible gateways)
	HTTPClient *http.Client // Optional (tests)
	Logger     *slog.Logger
}

// OpenAI names tables with the OpenAI chat completions API.
type OpenAI struct {
	model  string
	retry  RetryPolicy
	client openai.Client
	log    *slog.Logger
}

// NewOpenAI creates an OpenAI namer.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	if cfg.Model == "" {
		cfg.Model = openAIDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Retry.Attempts == 0 {
		cfg.Retry = DefaultRetryPolicy()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	// Retries are handled here so that every attempt is logged.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAI{
		model:  cfg.Model,
		retry:  cfg.Retry,
		client: openai.NewClient(opts...),
		log:    cfg.Logger,
	}
}

// TableName asks the model for a file name.
func (o *OpenAI) TableName(ctx context.Context, title, content string) (string, error) {
	return o.complete(ctx, tableNamePrompt(title, content))
}

// ColumnNames asks the model for a comma-separated list of count names.
func (o *OpenAI) ColumnNames(ctx context.Context, count int, content string) ([]string, error) {
	answer, err := o.complete(ctx, columnNamesPrompt(count, content))
	if err != nil {
		return nil, err
	}
	return ParseColumnList(answer), nil
}

func (o *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	requestID := uuid.NewString()
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
	}

	attempt := 0
	return o.retry.do(ctx, func() (string, error) {
		attempt++
		start := time.Now()
		resp, err := o.client.Chat.Completions.New(ctx, params, option.WithHeader("X-Request-Id", requestID))
		if err != nil {
			err = mapOpenAIError(err)
			o.log.Warn("openai request failed", "request_id", requestID, "attempt", attempt, "error", err)
			return "", err
		}
		o.log.Debug("openai request done",
			"request_id", requestID,
			"model", o.model,
			"duration", time.Since(start),
			"prompt_tokens", resp.Usage.PromptTokens,
			"completion_tokens", resp.Usage.CompletionTokens,
		)
		if len(resp.Choices) == 0 {
			return "", errors.New("openai returned no choices")
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	})
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &APIError{Provider: "openai", StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	}
	return err
}

var _ Namer = (*OpenAI)(nil)
