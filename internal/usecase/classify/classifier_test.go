package classify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cybernewshub/internal/domain/entity"
	"cybernewshub/internal/usecase/classify"
)

// stubTier is a chain tier with a canned outcome that records its calls.
type stubTier struct {
	name   string
	result classify.Result
	err    error
	calls  int
}

func (s *stubTier) Name() string { return s.name }

func (s *stubTier) Classify(_ context.Context, _ classify.Input) (classify.Result, error) {
	s.calls++
	return s.result, s.err
}

func TestChain_FirstAcceptedResultWins(t *testing.T) {
	first := &stubTier{name: "llm", result: classify.Result{Category: entity.ContentAlert, Confidence: 0.9, Method: "llm"}}
	second := &stubTier{name: "keyword", result: classify.Result{Category: entity.ContentNews, Confidence: 1, Method: "keyword"}}

	got := classify.NewChain(first, second).Classify(context.Background(), classify.Input{Title: "x"})

	assert.Equal(t, entity.ContentAlert, got.Category)
	assert.Equal(t, "llm", got.Method)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later tiers must not run once a tier accepts")
}

func TestChain_FallsThroughOnError(t *testing.T) {
	unavailable := &stubTier{name: "llm", err: classify.ErrUnavailable}
	lowConfidence := &stubTier{name: "local", err: classify.ErrLowConfidence}
	keyword := &stubTier{name: "keyword", result: classify.Result{Category: entity.ContentNews, Confidence: 1, Method: "keyword"}}

	got := classify.NewChain(unavailable, lowConfidence, keyword).Classify(context.Background(), classify.Input{Title: "x"})

	assert.Equal(t, entity.ContentNews, got.Category)
	assert.Equal(t, 1, unavailable.calls)
	assert.Equal(t, 1, lowConfidence.calls)
	assert.Equal(t, 1, keyword.calls)
}

func TestChain_AllTiersFail(t *testing.T) {
	broken := &stubTier{name: "llm", err: errors.New("boom")}

	got := classify.NewChain(broken).Classify(context.Background(), classify.Input{Title: "x"})

	assert.Equal(t, entity.ContentUncategorized, got.Category)
	assert.Equal(t, "none", got.Method)
	assert.Zero(t, got.Confidence)
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want entity.ContentType
	}{
		{"news", entity.ContentNews},
		{"News", entity.ContentNews},
		{"ALERT", entity.ContentAlert},
		{"research", entity.ContentResearch},
		{"event", entity.ContentEvent},
		{"security alert", entity.ContentAlert},
	}
	for _, tt := range tests {
		got, err := classify.ParseLabel(tt.raw)
		require.NoError(t, err, "label %q", tt.raw)
		assert.Equal(t, tt.want, got, "label %q", tt.raw)
	}

	_, err := classify.ParseLabel("weather")
	assert.ErrorIs(t, err, classify.ErrUnknownLabel)
}

func TestNormalizeLLMLabel(t *testing.T) {
	// LLMs wrap the label in prose; the category name anywhere in the reply counts.
	assert.Equal(t, entity.ContentAlert, classify.NormalizeLLMLabel("The category is: Alert."))
	assert.Equal(t, entity.ContentResearch, classify.NormalizeLLMLabel("research"))

	// Unrecognized replies default to News instead of failing.
	assert.Equal(t, entity.ContentNews, classify.NormalizeLLMLabel("I cannot classify this"))
	assert.Equal(t, entity.ContentNews, classify.NormalizeLLMLabel(""))
}
