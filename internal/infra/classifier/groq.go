// Package classifier provides the external categorization backends used ahead
// of the keyword engine: a Groq-hosted LLM, Anthropic's Claude, and a local
// zero-shot model served over HTTP. All backends include circuit breaker and
// retry logic and report the shared classification metrics.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"cybernewshub/internal/resilience/circuitbreaker"
	"cybernewshub/internal/resilience/retry"
	"cybernewshub/internal/usecase/classify"
)

// groqBaseURL is Groq's OpenAI-compatible endpoint.
const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqConfig holds configuration parameters for the Groq classifier.
type GroqConfig struct {
	// Model is the Groq model identifier.
	Model string

	// MaxTokens caps the completion length. The reply is a single category
	// name, so this stays tiny.
	MaxTokens int

	// Timeout is the maximum duration for a single classification call.
	Timeout time.Duration

	// RequestsPerSecond throttles calls to stay inside Groq's free-tier
	// rate limits during large ingestion runs.
	RequestsPerSecond float64
}

// DefaultGroqConfig returns the standard Groq classifier settings.
func DefaultGroqConfig() GroqConfig {
	return GroqConfig{
		Model:             "llama-3.1-8b-instant",
		MaxTokens:         10,
		Timeout:           10 * time.Second,
		RequestsPerSecond: 5,
	}
}

// Groq classifies articles with a Groq-hosted LLM through the
// OpenAI-compatible chat completions API. Accepted classifications are cached
// by title+description so repeated ingestion of unchanged entries does not
// re-query the API.
type Groq struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	limiter        *rate.Limiter
	config         GroqConfig

	mu    sync.Mutex
	cache map[string]classify.Result
}

// NewGroq creates a Groq classifier. Returns nil if apiKey is empty so the
// caller can skip wiring the tier entirely.
func NewGroq(apiKey string, config GroqConfig) *Groq {
	if apiKey == "" {
		return nil
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = groqBaseURL

	slog.Info("Initialized Groq classifier",
		slog.String("model", config.Model),
		slog.Float64("requests_per_second", config.RequestsPerSecond))

	return &Groq{
		client:         openai.NewClientWithConfig(clientConfig),
		circuitBreaker: circuitbreaker.New(circuitbreaker.LLMAPIConfig()),
		retryConfig:    retry.AIAPIConfig(),
		limiter:        rate.NewLimiter(rate.Limit(config.RequestsPerSecond), 1),
		config:         config,
		cache:          make(map[string]classify.Result),
	}
}

// Name implements classify.Classifier.
func (g *Groq) Name() string { return "groq" }

// Classify implements classify.Classifier. It returns
// classify.ErrUnavailable when the circuit is open or the API keeps failing,
// so the chain falls through to the next tier.
func (g *Groq) Classify(ctx context.Context, in classify.Input) (classify.Result, error) {
	cacheKey := in.Title + "|" + in.Description
	g.mu.Lock()
	if cached, ok := g.cache[cacheKey]; ok {
		g.mu.Unlock()
		return cached, nil
	}
	g.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	if err := g.limiter.Wait(ctx); err != nil {
		return classify.Result{}, fmt.Errorf("%w: rate limit wait: %w", classify.ErrUnavailable, err)
	}

	var result classify.Result
	retryErr := retry.WithBackoff(ctx, g.retryConfig, func() error {
		cbResult, err := g.circuitBreaker.Execute(func() (interface{}, error) {
			return g.doClassify(ctx, in)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("groq api circuit breaker open, request rejected",
					slog.String("service", "groq-api"),
					slog.String("state", g.circuitBreaker.State().String()))
				return fmt.Errorf("groq api unavailable: circuit breaker open")
			}
			return err
		}
		result = cbResult.(classify.Result)
		return nil
	})
	if retryErr != nil {
		return classify.Result{}, fmt.Errorf("%w: %w", classify.ErrUnavailable, retryErr)
	}

	g.mu.Lock()
	g.cache[cacheKey] = result
	g.mu.Unlock()
	return result, nil
}

// doClassify performs the actual API call without retry or circuit breaker.
func (g *Groq) doClassify(ctx context.Context, in classify.Input) (classify.Result, error) {
	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.config.Model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: buildCategoryPrompt(in),
		}},
		Temperature: 0,
		MaxTokens:   g.config.MaxTokens,
	})

	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "groq classification failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return classify.Result{}, fmt.Errorf("groq api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return classify.Result{}, fmt.Errorf("groq api returned empty response")
	}

	category := classify.NormalizeLLMLabel(resp.Choices[0].Message.Content)

	slog.DebugContext(ctx, "groq classification completed",
		slog.String("category", string(category)),
		slog.Duration("duration", duration))

	// The LLM reply carries no score; treat an accepted label as high
	// confidence, matching the acceptance semantics of the scored tiers.
	return classify.Result{Category: category, Confidence: 0.9, Method: "groq"}, nil
}

// buildCategoryPrompt renders the single-shot categorization prompt. Title
// and description are truncated together to keep the request small.
func buildCategoryPrompt(in classify.Input) string {
	text := in.Title + ". " + in.Description
	if len(text) > 500 {
		text = text[:500]
	}
	var b strings.Builder
	b.WriteString("Categorize this cybersecurity article into exactly ONE category.\n\n")
	b.WriteString("Categories:\n")
	b.WriteString("- News: Incident reports, breaches, attacks, hacks, ransomware events\n")
	b.WriteString("- Alert: Security advisories, CVE disclosures, vulnerability warnings, patches\n")
	b.WriteString("- Research: Security research, technical analysis, whitepapers, studies\n")
	b.WriteString("- Event: Conferences, webinars, summits, workshops, training\n\n")
	b.WriteString("Article: ")
	b.WriteString(text)
	b.WriteString("\n\nRespond with ONLY the category name (News, Alert, Research, or Event), nothing else.")
	return b.String()
}
