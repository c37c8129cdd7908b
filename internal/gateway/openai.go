package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"jimbro/internal/engine"
)

// ErrScanUnsupported is returned by providers that cannot read images.
var ErrScanUnsupported = errors.New("equipment scan is not supported by this provider")

// OpenAI talks to any OpenAI-compatible chat completions endpoint (Groq, Ollama, vLLM).
type OpenAI struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

func NewOpenAI(baseURL, apiKey, model string, timeout time.Duration, log *slog.Logger) *OpenAI {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    log,
	}
}

func (c *OpenAI) chat(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.7,
		MaxTokens:   4096,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", engine.UpstreamError(fmt.Errorf("api error (status %d): %w", apiErr.HTTPStatusCode, err))
		}
		return "", engine.UpstreamError(fmt.Errorf("chat request: %w", err))
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", engine.InvalidFormatError(errors.New("empty completion"))
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAI) GenerateWorkout(ctx context.Context, req engine.WorkoutRequest) ([]engine.Exercise, error) {
	content, err := c.chat(ctx, jsonOnlySystem+"\nReturn a JSON array of exercises.", WorkoutPrompt(req))
	if err != nil {
		return nil, err
	}
	exs, err := ParseWorkout(content, req.Blueprint.MaxExercises)
	if err != nil {
		c.log.Warn("chat workout rejected", "model", c.model, "error", err)
		return nil, err
	}
	return exs, nil
}

func (c *OpenAI) SwapExercise(ctx context.Context, req engine.SwapRequest) (engine.Exercise, error) {
	content, err := c.chat(ctx, jsonOnlySystem+"\nReturn exactly one exercise object.", SwapPrompt(req))
	if err != nil {
		return engine.Exercise{}, err
	}
	return ParseExercise(content)
}

func (c *OpenAI) ScanEquipment(ctx context.Context, image []byte, mimeType string) ([]string, error) {
	return nil, engine.UpstreamError(ErrScanUnsupported)
}
