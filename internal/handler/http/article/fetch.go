package article

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"cybernewshub/internal/handler/http/respond"
	"cybernewshub/internal/usecase/ingest"
)

// FetchHandler serves POST /api/feeds/fetch: triggers one ingestion run and
// returns its report. Individual feed failures are reported in-band with a
// 200; only a run that could not execute at all is a 500.
type FetchHandler struct {
	Svc    *ingest.Service
	Logger *slog.Logger
}

type fetchRequest struct {
	MaxWorkers int      `json:"max_workers"`
	OnlyRecent bool     `json:"only_recent"`
	RecentDays int      `json:"recent_days"`
	Countries  []string `json:"countries"`
}

func (h FetchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// The body is optional: an empty body runs with defaults.
	var req fetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	report, err := h.Svc.FetchFeeds(r.Context(), ingest.Params{
		MaxWorkers: req.MaxWorkers,
		OnlyRecent: req.OnlyRecent,
		RecentDays: req.RecentDays,
		Countries:  req.Countries,
	})
	if err != nil {
		h.Logger.Error("ingestion run failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, report)
}
