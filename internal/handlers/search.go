package handlers

import (
	"net/http"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/services"
	"github.com/go-chi/chi/v5"
)

// SearchHandler exposes full-text-ish search over guides and posts.
type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchRouter registers the search route on the given router.
func SearchRouter(r chi.Router, searchService *services.SearchService) {
	handler := NewSearchHandler(searchService)

	r.Get("/", handler.Search)
}

// Search matches published guides and posts against the q query
// parameter, case-insensitively, across titles, bodies and tags.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		term = r.URL.Query().Get("search")
	}

	results, err := h.searchService.Search(r.Context(), term)
	if err != nil {
		writeValidationOr(w, err, http.StatusInternalServerError, "failed to search")
		return
	}
	writeJSON(w, http.StatusOK, results)
}
