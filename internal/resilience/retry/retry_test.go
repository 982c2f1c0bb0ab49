package retry

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   10 * time.Millisecond,
		MaxDelay:       100 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff_FirstAttemptSucceeds(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(), func() error {
		attempts++
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithBackoff_RecoversFromTransientFailure(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(), func() error {
		attempts++
		if attempts < 3 {
			return &HTTPError{StatusCode: 503, Message: "feed host overloaded"}
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected eventual success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithBackoff_GivesUpAfterMaxAttempts(t *testing.T) {
	attempts := 0
	serverErr := &HTTPError{StatusCode: 500, Message: "server error"}
	err := WithBackoff(context.Background(), fastConfig(), func() error {
		attempts++
		return serverErr
	})

	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if !errors.Is(err, serverErr) {
		t.Errorf("expected final error to carry the last failure, got %v", err)
	}
}

func TestWithBackoff_NonRetryableFailsFast(t *testing.T) {
	attempts := 0
	clientErr := &HTTPError{StatusCode: 400, Message: "bad request"}
	err := WithBackoff(context.Background(), fastConfig(), func() error {
		attempts++
		return clientErr
	})

	if attempts != 1 {
		t.Errorf("client errors must not be retried, got %d attempts", attempts)
	}
	if err != clientErr {
		t.Errorf("expected the original error, got %v", err)
	}
}

func TestWithBackoff_StopsOnContextCancel(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxAttempts = 5
	cfg.InitialDelay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := WithBackoff(ctx, cfg, func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return &HTTPError{StatusCode: 500, Message: "server error"}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if attempts < 2 {
		t.Errorf("expected at least 2 attempts before cancel, got %d", attempts)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"http 500", &HTTPError{StatusCode: 500}, true},
		{"http 502", &HTTPError{StatusCode: 502}, true},
		{"http 429", &HTTPError{StatusCode: 429}, true},
		{"http 408", &HTTPError{StatusCode: 408}, true},
		{"http 400", &HTTPError{StatusCode: 400}, false},
		{"http 404", &HTTPError{StatusCode: 404}, false},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"timed out", syscall.ETIMEDOUT, true},
		{"network unreachable", syscall.ENETUNREACH, true},
		{"generic error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.retryable)
			}
		})
	}
}

func TestPresetConfigs(t *testing.T) {
	if cfg := DefaultConfig(); cfg.MaxAttempts != 3 || cfg.InitialDelay != time.Second {
		t.Errorf("unexpected default config: %+v", cfg)
	}
	if cfg := FeedFetchConfig(); cfg.MaxAttempts != 5 {
		t.Errorf("feed fetch should retry aggressively, got MaxAttempts=%d", cfg.MaxAttempts)
	}
	if cfg := AIAPIConfig(); cfg.InitialDelay != 2*time.Second {
		t.Errorf("ai api should back off slowly, got InitialDelay=%v", cfg.InitialDelay)
	}
	if cfg := DBConfig(); cfg.InitialDelay != 100*time.Millisecond {
		t.Errorf("db retries should be fast, got InitialDelay=%v", cfg.InitialDelay)
	}
}

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{StatusCode: 500, Message: "Internal Server Error"}
	if got := err.Error(); got != "HTTP 500: Internal Server Error" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestAddJitter(t *testing.T) {
	base := 100 * time.Millisecond

	seen := make(map[time.Duration]bool)
	for i := 0; i < 10; i++ {
		got := addJitter(base, 0.2)
		if got < base || got > time.Duration(float64(base)*1.2) {
			t.Errorf("jitter out of range: %v", got)
		}
		seen[got] = true
	}
	if len(seen) < 2 {
		t.Error("expected jitter to vary across calls")
	}

	if got := addJitter(base, 0); got != base {
		t.Errorf("zero fraction must not add jitter, got %v", got)
	}
}
