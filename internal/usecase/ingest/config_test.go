package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5000, cfg.MaxArticles)
	assert.Equal(t, 90, cfg.RetentionDays)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("MAX_ARTICLES", "1000")
	t.Setenv("ARTICLE_RETENTION_DAYS", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.MaxArticles)
	assert.Equal(t, 30, cfg.RetentionDays)
}

func TestLoadConfig_RejectsNonPositiveBounds(t *testing.T) {
	t.Setenv("MAX_ARTICLES", "0")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max articles")
}

func TestParams_WorkerCount(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		feedCount int
		want      int
	}{
		{"default", Params{}, 50, 10},
		{"explicit", Params{MaxWorkers: 4}, 50, 4},
		{"capped at twenty", Params{MaxWorkers: 100}, 50, 20},
		{"capped at feed count", Params{MaxWorkers: 10}, 3, 3},
		{"at least one", Params{MaxWorkers: 10}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.params.workerCount(tt.feedCount))
		})
	}
}

func TestParams_RecentCutoffDays(t *testing.T) {
	assert.Equal(t, 1, Params{}.recentCutoffDays())
	assert.Equal(t, 7, Params{RecentDays: 7}.recentCutoffDays())
}
