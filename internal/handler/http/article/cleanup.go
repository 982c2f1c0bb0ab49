package article

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"cybernewshub/internal/handler/http/respond"
	artUC "cybernewshub/internal/usecase/article"
)

// defaultCleanupDays is used when the cleanup request carries no window.
const defaultCleanupDays = 90

// CleanupHandler serves POST /api/cleanup: deletes articles published more
// than the requested number of days ago.
type CleanupHandler struct{ Svc *artUC.Service }

type cleanupRequest struct {
	Days int `json:"days"`
}

type cleanupResponse struct {
	Status        string `json:"status"`
	DeletedCount  int64  `json:"deleted_count"`
	RetentionDays int    `json:"retention_days"`
}

func (h CleanupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := cleanupRequest{Days: defaultCleanupDays}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	deleted, err := h.Svc.Cleanup(r.Context(), req.Days)
	if err != nil {
		if errors.Is(err, artUC.ErrInvalidDays) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, cleanupResponse{
		Status:        "success",
		DeletedCount:  deleted,
		RetentionDays: req.Days,
	})
}
