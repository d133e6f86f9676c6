package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/authz"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/services"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/store"
	"github.com/go-chi/chi/v5"
)

// UserHandler exposes user administration endpoints.
type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRouter registers user routes on the given router. All routes
// require authentication.
func UserRouter(r chi.Router, userService *services.UserService, jwtSecret string) {
	handler := NewUserHandler(userService)

	r.Use(RequireAuth(jwtSecret))
	r.Get("/", handler.List)
	r.Get("/{id}", handler.Get)
	r.Put("/{id}/role", handler.SetRole)
	r.Delete("/{id}", handler.Delete)
}

// List returns all users. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}
	if err := authz.CheckRole(actor, authz.Admins()); err != nil {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get returns a single user. Users can fetch themselves; admins anyone.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}
	if actor.ID != id {
		if err := authz.CheckRole(actor, authz.Admins()); err != nil {
			writeError(w, http.StatusForbidden, "insufficient permissions")
			return
		}
	}

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// SetRole changes a user's role. Super admin only.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}
	if err := authz.CheckRole(actor, authz.SuperAdminOnly()); err != nil {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	var req RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if err := h.userService.SetRole(r.Context(), id, req.Role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeValidationOr(w, err, http.StatusInternalServerError, "failed to update role")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "role updated"})
}

// Delete removes a user account. Admin only; a non-super admin can
// delete their own account, super admins anyone's.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}
	if err := authz.CanMutate(actor, id, authz.Admins()); err != nil {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

type RoleRequest struct {
	Role string `json:"role"`
}
