package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"cybernewshub/internal/resilience/circuitbreaker"
	"cybernewshub/internal/resilience/retry"
	"cybernewshub/internal/usecase/classify"
)

// LocalConfig holds configuration for the local classifier tier.
type LocalConfig struct {
	// BaseURL is the classification service endpoint, e.g.
	// http://localhost:8500. Empty disables the tier.
	BaseURL string

	// Timeout is the maximum duration for a single classification call.
	// The model runs on CPU, so this is generous.
	Timeout time.Duration
}

// DefaultLocalConfig returns the standard local classifier settings.
func DefaultLocalConfig(baseURL string) LocalConfig {
	return LocalConfig{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// candidateLabels is the fixed label set sent to the zero-shot model.
var candidateLabels = []string{"news", "alert", "research", "event"}

// Local classifies articles against a self-hosted zero-shot classification
// service. The service exposes a single POST /classify endpoint taking the
// article text and candidate labels and returning the top label with its
// score. No API key is needed, which makes this the free middle tier between
// the hosted LLM and the keyword engine.
type Local struct {
	baseURL        string
	httpClient     *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewLocal creates a local classifier. Returns nil if baseURL is empty so
// the caller can skip wiring the tier entirely.
func NewLocal(config LocalConfig) *Local {
	if config.BaseURL == "" {
		return nil
	}

	slog.Info("Initialized local classifier",
		slog.String("base_url", config.BaseURL))

	return &Local{
		baseURL:        config.BaseURL,
		httpClient:     &http.Client{Timeout: config.Timeout},
		circuitBreaker: circuitbreaker.New(circuitbreaker.LocalClassifierConfig()),
		retryConfig:    retry.DefaultConfig(),
	}
}

// Name implements classify.Classifier.
func (l *Local) Name() string { return "local" }

type localRequest struct {
	Text   string   `json:"text"`
	Labels []string `json:"labels"`
}

type localResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify implements classify.Classifier. Results below the acceptance
// threshold return classify.ErrLowConfidence so the chain falls through.
func (l *Local) Classify(ctx context.Context, in classify.Input) (classify.Result, error) {
	text := in.Title + ". " + in.Description
	if len(text) > 512 {
		text = text[:512]
	}

	var resp localResponse
	retryErr := retry.WithBackoff(ctx, l.retryConfig, func() error {
		cbResult, err := l.circuitBreaker.Execute(func() (interface{}, error) {
			return l.doClassify(ctx, text)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("local classifier circuit breaker open, request rejected",
					slog.String("service", "local-classifier"),
					slog.String("state", l.circuitBreaker.State().String()))
				return fmt.Errorf("local classifier unavailable: circuit breaker open")
			}
			return err
		}
		resp = cbResult.(localResponse)
		return nil
	})
	if retryErr != nil {
		return classify.Result{}, fmt.Errorf("%w: %w", classify.ErrUnavailable, retryErr)
	}

	if resp.Score <= classify.MinConfidence {
		return classify.Result{}, fmt.Errorf("%w: %s scored %.2f",
			classify.ErrLowConfidence, resp.Label, resp.Score)
	}
	category, err := classify.ParseLabel(resp.Label)
	if err != nil {
		return classify.Result{}, fmt.Errorf("%w: %q", err, resp.Label)
	}
	return classify.Result{Category: category, Confidence: resp.Score, Method: "local"}, nil
}

// doClassify performs the actual HTTP call without retry or circuit breaker.
func (l *Local) doClassify(ctx context.Context, text string) (localResponse, error) {
	body, err := json.Marshal(localRequest{Text: text, Labels: candidateLabels})
	if err != nil {
		return localResponse{}, fmt.Errorf("marshal classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return localResponse{}, fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := l.httpClient.Do(req)
	if err != nil {
		return localResponse{}, fmt.Errorf("local classifier request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode != http.StatusOK {
		return localResponse{}, &retry.HTTPError{
			StatusCode: httpResp.StatusCode,
			Message:    "local classifier returned non-200",
		}
	}

	var resp localResponse
	if err := json.NewDecoder(io.LimitReader(httpResp.Body, 1<<16)).Decode(&resp); err != nil {
		return localResponse{}, fmt.Errorf("decode classify response: %w", err)
	}
	return resp, nil
}
