// Package classify assigns a content category to an article using a
// prioritized chain of strategies. Each tier can fail or decline; the final
// keyword tier always produces a category, so the chain as a whole never fails.
package classify

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"cybernewshub/internal/domain/entity"
	"cybernewshub/internal/observability/metrics"
)

// Sentinel errors a tier can return to make the chain fall through.
var (
	// ErrUnavailable indicates the tier's backend is not configured or not
	// reachable (missing API key, model not loaded, endpoint down).
	ErrUnavailable = errors.New("classifier unavailable")

	// ErrLowConfidence indicates the tier produced a label but below its
	// acceptance threshold.
	ErrLowConfidence = errors.New("classification below confidence threshold")

	// ErrUnknownLabel indicates the backend replied with a label outside the
	// fixed label set.
	ErrUnknownLabel = errors.New("classifier returned unknown label")
)

// MinConfidence is the acceptance threshold shared by the LLM and local
// model tiers.
const MinConfidence = 0.4

// Input is the article text a classifier looks at.
type Input struct {
	Title       string
	Description string
	Link        string
	Source      string
}

// Result is an accepted classification.
type Result struct {
	Category   entity.ContentType
	Confidence float64
	Method     string
}

// Classifier is one tier of the categorization chain.
type Classifier interface {
	// Name identifies the tier in logs and metrics.
	Name() string
	// Classify returns a category for the input, or an error to make the
	// chain fall through to the next tier.
	Classify(ctx context.Context, in Input) (Result, error)
}

// Chain evaluates classifiers in order and returns the first accepted result.
// Tiers are invoked lazily: a tier only runs if every prior tier fell through.
type Chain struct {
	tiers []Classifier
}

// NewChain builds a chain from the given tiers. The last tier must be one
// that never fails (the keyword engine); callers are expected to append it.
func NewChain(tiers ...Classifier) *Chain {
	return &Chain{tiers: tiers}
}

// Classify runs the chain. It never returns an error as long as the final
// tier is total; if every tier somehow fails the article is left
// uncategorized rather than dropped.
func (c *Chain) Classify(ctx context.Context, in Input) Result {
	for _, tier := range c.tiers {
		result, err := tier.Classify(ctx, in)
		if err == nil {
			metrics.RecordClassification(tier.Name(), "accepted")
			return result
		}
		metrics.RecordClassification(tier.Name(), "fell_through")
		if !errors.Is(err, ErrUnavailable) && !errors.Is(err, ErrLowConfidence) {
			slog.Debug("classifier tier fell through",
				slog.String("tier", tier.Name()),
				slog.Any("error", err))
		}
	}
	return Result{Category: entity.ContentUncategorized, Confidence: 0, Method: "none"}
}

// ParseLabel maps a backend label onto the fixed category set. Returns
// ErrUnknownLabel if the label contains none of the known category names.
func ParseLabel(raw string) (entity.ContentType, error) {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "news"):
		return entity.ContentNews, nil
	case strings.Contains(lower, "alert"):
		return entity.ContentAlert, nil
	case strings.Contains(lower, "research"):
		return entity.ContentResearch, nil
	case strings.Contains(lower, "event"):
		return entity.ContentEvent, nil
	default:
		return "", ErrUnknownLabel
	}
}

// NormalizeLLMLabel is ParseLabel for free-form LLM replies, which may wrap
// the label in extra prose. Unrecognized replies default to News.
func NormalizeLLMLabel(raw string) entity.ContentType {
	category, err := ParseLabel(raw)
	if err != nil {
		return entity.ContentNews
	}
	return category
}
