package article

import (
	"log/slog"
	"net/http"

	"cybernewshub/internal/handler/http/respond"
	artUC "cybernewshub/internal/usecase/article"
)

// ReCategorizeHandler serves POST /api/articles/re-categorize: recomputes the
// content type and country/region of every stored article with the current
// keyword and geo dictionaries.
type ReCategorizeHandler struct {
	Svc    *artUC.Service
	Logger *slog.Logger
}

type reCategorizeResponse struct {
	Status            string `json:"status"`
	CategoriesUpdated int    `json:"categories_updated"`
	RegionsUpdated    int    `json:"regions_updated"`
}

func (h ReCategorizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result, err := h.Svc.ReCategorize(r.Context())
	if err != nil {
		h.Logger.Error("re-categorization failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, reCategorizeResponse{
		Status:            "success",
		CategoriesUpdated: result.CategoriesUpdated,
		RegionsUpdated:    result.RegionsUpdated,
	})
}
