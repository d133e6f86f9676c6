package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/authz"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/services"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
	"github.com/go-chi/chi/v5"
)

// ContactHandler exposes the public contact form and its admin inbox.
type ContactHandler struct {
	contactService *services.ContactService
	userService    *services.UserService
}

func NewContactHandler(contactService *services.ContactService, userService *services.UserService) *ContactHandler {
	return &ContactHandler{contactService: contactService, userService: userService}
}

// ContactRouter registers contact routes on the given router.
func ContactRouter(r chi.Router, contactService *services.ContactService, userService *services.UserService, jwtSecret string) {
	handler := NewContactHandler(contactService, userService)

	r.Post("/", handler.Submit)
	r.With(RequireAuth(jwtSecret)).Get("/", handler.List)
}

// Submit stores a contact message. No authentication required.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	contact, err := h.contactService.Submit(r.Context(), types.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		writeValidationOr(w, err, http.StatusInternalServerError, "failed to submit message")
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

// List returns all contact messages, newest first. Admin only.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}
	if err := authz.CheckRole(actor, authz.Admins()); err != nil {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	contacts, err := h.contactService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
