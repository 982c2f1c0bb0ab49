package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sony/gobreaker"

	"cybernewshub/internal/resilience/circuitbreaker"
	"cybernewshub/internal/resilience/retry"
	"cybernewshub/internal/usecase/classify"
)

// ClaudeConfig holds configuration parameters for the Claude classifier.
type ClaudeConfig struct {
	// Model is the Claude API model identifier.
	Model string

	// MaxTokens caps the completion length.
	MaxTokens int

	// Timeout is the maximum duration for a single classification call.
	Timeout time.Duration
}

// DefaultClaudeConfig returns the standard Claude classifier settings.
// Haiku is used since the task is a four-way label choice.
func DefaultClaudeConfig() ClaudeConfig {
	return ClaudeConfig{
		Model:     string(anthropic.ModelClaudeHaiku4_5),
		MaxTokens: 10,
		Timeout:   10 * time.Second,
	}
}

// Claude classifies articles with Anthropic's Claude API. It is an
// alternative first tier for deployments without a Groq key.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         ClaudeConfig
}

// NewClaude creates a Claude classifier. Returns nil if apiKey is empty so
// the caller can skip wiring the tier entirely.
func NewClaude(apiKey string, config ClaudeConfig) *Claude {
	if apiKey == "" {
		return nil
	}

	slog.Info("Initialized Claude classifier",
		slog.String("model", config.Model))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.LLMAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
		config:         config,
	}
}

// Name implements classify.Classifier.
func (c *Claude) Name() string { return "claude" }

// Classify implements classify.Classifier.
func (c *Claude) Classify(ctx context.Context, in classify.Input) (classify.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result classify.Result
	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doClassify(ctx, in)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(classify.Result)
		return nil
	})
	if retryErr != nil {
		return classify.Result{}, fmt.Errorf("%w: %w", classify.ErrUnavailable, retryErr)
	}
	return result, nil
}

// doClassify performs the actual API call without retry or circuit breaker.
func (c *Claude) doClassify(ctx context.Context, in classify.Input) (classify.Result, error) {
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildCategoryPrompt(in)),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "claude classification failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return classify.Result{}, fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return classify.Result{}, fmt.Errorf("claude api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return classify.Result{}, fmt.Errorf("claude api returned unexpected response type")
	}

	category := classify.NormalizeLLMLabel(textBlock.Text)

	slog.DebugContext(ctx, "claude classification completed",
		slog.String("category", string(category)),
		slog.Duration("duration", duration))

	return classify.Result{Category: category, Confidence: 0.9, Method: "claude"}, nil
}
