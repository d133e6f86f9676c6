package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/authz"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/services"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/store"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
	"github.com/go-chi/chi/v5"
)

// GuideHandler exposes CRUD endpoints for guides.
type GuideHandler struct {
	guideService *services.GuideService
	userService  *services.UserService
}

func NewGuideHandler(guideService *services.GuideService, userService *services.UserService) *GuideHandler {
	return &GuideHandler{guideService: guideService, userService: userService}
}

// GuideRouter registers guide routes on the given router.
func GuideRouter(r chi.Router, guideService *services.GuideService, userService *services.UserService, jwtSecret string) {
	handler := NewGuideHandler(guideService, userService)

	r.With(OptionalAuth(jwtSecret)).Get("/", handler.List)
	r.With(OptionalAuth(jwtSecret)).Get("/{id}", handler.Get)
	r.With(RequireAuth(jwtSecret)).Get("/foryou", handler.ForYou)
	r.With(RequireAuth(jwtSecret)).Post("/", handler.Create)
	r.With(RequireAuth(jwtSecret)).Put("/{id}", handler.Update)
	r.With(RequireAuth(jwtSecret)).Delete("/{id}", handler.Delete)
}

// List returns guides. Anonymous callers and plain users only see
// published guides; admins see drafts too.
func (h *GuideHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := maybeActor(r.Context(), h.userService)
	onlyPublished := !ok || !authz.IsAdmin(actor.Role)

	guides, err := h.guideService.List(r.Context(), onlyPublished)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list guides")
		return
	}
	writeJSON(w, http.StatusOK, guides)
}

// ForYou returns published guides matching the caller's experience level.
func (h *GuideHandler) ForYou(w http.ResponseWriter, r *http.Request) {
	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}

	user, err := h.userService.GetByID(r.Context(), actor.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load user")
		return
	}

	guides, err := h.guideService.ListForLevel(r.Context(), user.ExperienceLevel)
	if err != nil {
		writeValidationOr(w, err, http.StatusInternalServerError, "failed to list guides")
		return
	}
	writeJSON(w, http.StatusOK, guides)
}

func (h *GuideHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guide id")
		return
	}

	actor, ok := maybeActor(r.Context(), h.userService)
	onlyPublished := !ok || !authz.IsAdmin(actor.Role)

	guide, err := h.guideService.Get(r.Context(), id, onlyPublished)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "guide not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get guide")
		return
	}
	writeJSON(w, http.StatusOK, guide)
}

func (h *GuideHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}
	if err := authz.CheckRole(actor, authz.Admins()); err != nil {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	var req GuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	guide, err := h.guideService.Create(r.Context(), types.Guide{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Level:       req.Level,
		UserID:      actor.ID,
	})
	if err != nil {
		writeValidationOr(w, err, http.StatusInternalServerError, "failed to create guide")
		return
	}
	writeJSON(w, http.StatusCreated, guide)
}

func (h *GuideHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guide id")
		return
	}

	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}

	existing, err := h.guideService.Get(r.Context(), id, false)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "guide not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get guide")
		return
	}

	if err := authz.CanMutate(actor, existing.UserID, authz.Admins()); err != nil {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	var req GuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	applyGuideUpdate(&existing, req)

	guide, err := h.guideService.Update(r.Context(), existing)
	if err != nil {
		writeValidationOr(w, err, http.StatusInternalServerError, "failed to update guide")
		return
	}
	writeJSON(w, http.StatusOK, guide)
}

func (h *GuideHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guide id")
		return
	}

	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}

	existing, err := h.guideService.Get(r.Context(), id, false)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "guide not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get guide")
		return
	}

	if err := authz.CanMutate(actor, existing.UserID, authz.Admins()); err != nil {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	if err := h.guideService.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete guide")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "guide deleted"})
}

// applyGuideUpdate copies the request onto the stored guide. Status and
// level keep their stored values when the request omits them, so a partial
// update cannot silently knock a published guide back to draft.
func applyGuideUpdate(guide *types.Guide, req GuideRequest) {
	guide.Title = req.Title
	guide.Description = req.Description
	if req.Status != "" {
		guide.Status = req.Status
	}
	if req.Level != "" {
		guide.Level = req.Level
	}
}

type GuideRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Level       string `json:"level"`
}
