package article

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cybernewshub/internal/handler/http/respond"
	artUC "cybernewshub/internal/usecase/article"
	"cybernewshub/internal/usecase/ingest"
)

// StatsHandler serves GET /api/stats: aggregate article counts plus the
// storage bounds the maintenance pass enforces.
type StatsHandler struct {
	Svc    *artUC.Service
	Bounds ingest.Config
}

type statsResponse struct {
	TotalArticles     int64            `json:"total_articles"`
	RecentArticles24h int64            `json:"recent_articles_24h"`
	ByPublisherType   map[string]int64 `json:"by_publisher_type"`
	ByContentType     map[string]int64 `json:"by_content_type"`
	RetentionDays     int              `json:"retention_days"`
	MaxArticles       int              `json:"max_articles"`
	OldestArticleDate *time.Time       `json:"oldest_article_date"`
}

func (h StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	days := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			respond.SafeError(w, http.StatusBadRequest,
				fmt.Errorf("invalid query parameter: days must be a positive integer"))
			return
		}
		days = parsed
	}

	stats, err := h.Svc.Stats(r.Context(), days)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, statsResponse{
		TotalArticles:     stats.TotalArticles,
		RecentArticles24h: stats.RecentArticles,
		ByPublisherType:   stats.ByPublisherType,
		ByContentType:     stats.ByContentType,
		RetentionDays:     h.Bounds.RetentionDays,
		MaxArticles:       h.Bounds.MaxArticles,
		OldestArticleDate: stats.OldestArticle,
	})
}
