package config

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// Component names must be unique per test: promauto registers with the
// default registry and panics on duplicates.

func TestNewConfigMetrics(t *testing.T) {
	m := NewConfigMetrics("cfgtest_new")

	assert.NotNil(t, m.LoadTimestamp)
	assert.NotNil(t, m.ValidationErrorsTotal)
	assert.NotNil(t, m.FallbacksTotal)
	assert.NotNil(t, m.FallbackActive)
	assert.Equal(t, "cfgtest_new", m.componentName)
}

func TestRecordLoadTimestamp(t *testing.T) {
	m := NewConfigMetrics("cfgtest_loadts")

	m.RecordLoadTimestamp()

	assert.Greater(t, testutil.ToFloat64(m.LoadTimestamp), float64(0))
}

func TestRecordValidationError_CountsPerField(t *testing.T) {
	m := NewConfigMetrics("cfgtest_valerr")

	m.RecordValidationError("cron_schedule")
	m.RecordValidationError("cron_schedule")
	m.RecordValidationError("timezone")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("cron_schedule")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("timezone")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("fetch_timeout")))
}

func TestRecordFallback_CountsPerField(t *testing.T) {
	m := NewConfigMetrics("cfgtest_fallback")

	m.RecordFallback("timezone", "default")
	m.RecordFallback("timezone", "default")
	m.RecordFallback("fetch_timeout", "default")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("timezone")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("fetch_timeout")))
}

func TestSetFallbackActive_Toggles(t *testing.T) {
	m := NewConfigMetrics("cfgtest_active")

	m.SetFallbackActive("", true)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FallbackActive))

	m.SetFallbackActive("", false)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.FallbackActive))

	m.SetFallbackActive("", true)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FallbackActive))
}

// The worker records these from config load on a goroutine while the metrics
// server scrapes; prometheus primitives must absorb that safely.
func TestConfigMetrics_ConcurrentRecording(t *testing.T) {
	m := NewConfigMetrics("cfgtest_concurrent")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordLoadTimestamp()
			m.RecordValidationError("cron_schedule")
			m.RecordFallback("cron_schedule", "default")
			m.SetFallbackActive("cron_schedule", true)
		}()
	}
	wg.Wait()

	assert.Equal(t, float64(10), testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("cron_schedule")))
	assert.Equal(t, float64(10), testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("cron_schedule")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FallbackActive))
}
