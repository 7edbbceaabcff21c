// Package generate talks to the Groq completion API through its
// OpenAI-compatible endpoint.
package generate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/docbot/core/config"
	"github.com/m3rciful/docbot/core/logger"

	openai "github.com/sashabaranov/go-openai"
)

const (
	generateTemperature = 0.3
	precheckTemperature = 0.1

	questionPrefix = "QUESTION:"
)

// ErrEmptyCompletion indicates the API answered without any choices.
var ErrEmptyCompletion = errors.New("generate: empty completion")

// Client wraps the completion API for document generation.
type Client struct {
	api               *openai.Client
	model             string
	generateMaxTokens int
	precheckMaxTokens int
}

// NewClient builds a Client from Groq configuration. The httpClient is
// optional; a default with a sane timeout is used when nil.
func NewClient(cfg coreconfig.GroqConfig, httpClient *http.Client) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) != "" {
		apiCfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	apiCfg.HTTPClient = httpClient

	return &Client{
		api:               openai.NewClientWithConfig(apiCfg),
		model:             cfg.Model,
		generateMaxTokens: cfg.GenerateMaxTokens,
		precheckMaxTokens: cfg.PrecheckMaxTokens,
	}
}

// CheckMissingInfo asks the model whether the request carries enough
// information for the document type. It returns a follow-up question
// when more is needed, or "" to proceed. Precheck failures degrade to
// "" so generation is never blocked by the precheck round-trip.
func (c *Client) CheckMissingInfo(ctx context.Context, docType, request string) string {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: precheckSystemPrompt(docType)},
			{Role: openai.ChatMessageRoleUser, Content: "User wants to create a " + docType + ". Their request: " + request},
		},
		Temperature: precheckTemperature,
		MaxTokens:   c.precheckMaxTokens,
	})
	if err != nil {
		logger.Warn(ctx, "generate", "precheck.failed",
			slog.String("doc_type", docType),
			slog.String("model", c.model),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
		)
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if !strings.HasPrefix(answer, questionPrefix) {
		return ""
	}
	question := strings.TrimSpace(strings.TrimPrefix(answer, questionPrefix))
	logger.Debug(ctx, "generate", "precheck.question",
		slog.String("doc_type", docType),
		slog.String("question", logger.SanitizeLimit(question, 256)),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	)
	return question
}

// Generate produces the document text for the request and merged fields.
func (c *Client) Generate(ctx context.Context, docType, request string, fields map[string]string) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt(docType)},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(docType, request, fields)},
		},
		Temperature: generateTemperature,
		MaxTokens:   c.generateMaxTokens,
	})
	if err != nil {
		logger.Error(ctx, "generate", "completion.failed",
			slog.String("doc_type", docType),
			slog.String("model", c.model),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
		)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	logger.Info(ctx, "generate", "completion.ok",
		slog.String("doc_type", docType),
		slog.String("model", c.model),
		slog.Int("chars", len(text)),
		slog.Int("field_keys", len(fields)),
		slog.Int64("duration_ms", logger.RoundMS(time.Since(start)).Milliseconds()),
	)
	return text, nil
}

// DiagnoseAPIError maps completion API failures to a short user-facing hint.
func DiagnoseAPIError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "status code: 401"):
		return "The AI service rejected the API key."
	case strings.Contains(msg, "status code: 404"):
		return "The requested model was not found."
	case strings.Contains(msg, "status code: 429"):
		return "The AI service rate limit was exceeded. Please try again shortly."
	case strings.Contains(msg, "status code: 400"):
		return "The AI service rejected the request."
	case strings.Contains(msg, "status code: 5"):
		return "The AI service is temporarily unavailable."
	case strings.Contains(msg, "context deadline exceeded"), strings.Contains(msg, "timeout"):
		return "The AI service took too long to respond."
	}
	return "The AI service returned an unexpected error."
}
