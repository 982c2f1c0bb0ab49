package article

import (
	"encoding/json"
	"errors"
	"net/http"

	"cybernewshub/internal/handler/http/respond"
	artUC "cybernewshub/internal/usecase/article"
)

// DeleteBySourceHandler serves POST /api/articles/delete-by-source: removes
// every article from one source.
type DeleteBySourceHandler struct{ Svc *artUC.Service }

type deleteBySourceRequest struct {
	Source string `json:"source"`
}

type deleteBySourceResponse struct {
	Status       string `json:"status"`
	Source       string `json:"source"`
	DeletedCount int64  `json:"deleted_count"`
}

func (h DeleteBySourceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req deleteBySourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	deleted, err := h.Svc.DeleteBySource(r.Context(), req.Source)
	if err != nil {
		if errors.Is(err, artUC.ErrEmptySource) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, deleteBySourceResponse{
		Status:       "success",
		Source:       req.Source,
		DeletedCount: deleted,
	})
}

// DeleteByLinkHandler serves POST /api/articles/delete: removes the single
// article identified by its link.
type DeleteByLinkHandler struct{ Svc *artUC.Service }

type deleteByLinkRequest struct {
	Link string `json:"link"`
}

func (h DeleteByLinkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req deleteByLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	if err := h.Svc.DeleteByLink(r.Context(), req.Link); err != nil {
		switch {
		case errors.Is(err, artUC.ErrEmptyLink):
			respond.SafeError(w, http.StatusBadRequest, err)
		case errors.Is(err, artUC.ErrArticleNotFound):
			respond.SafeError(w, http.StatusNotFound, err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
