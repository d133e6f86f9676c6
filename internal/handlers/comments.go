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

// CommentHandler exposes endpoints for comments on guides and posts.
type CommentHandler struct {
	commentService *services.CommentService
	userService    *services.UserService
}

func NewCommentHandler(commentService *services.CommentService, userService *services.UserService) *CommentHandler {
	return &CommentHandler{commentService: commentService, userService: userService}
}

// CommentRouter registers comment routes on the given router.
func CommentRouter(r chi.Router, commentService *services.CommentService, userService *services.UserService, jwtSecret string) {
	handler := NewCommentHandler(commentService, userService)

	r.Get("/guide/{id}", handler.ListForGuide)
	r.Get("/post/{id}", handler.ListForPost)
	r.With(RequireAuth(jwtSecret)).Post("/", handler.Create)
	r.With(RequireAuth(jwtSecret)).Post("/guide/{id}", handler.CreateForGuide)
	r.With(RequireAuth(jwtSecret)).Post("/post/{id}", handler.CreateForPost)
	r.With(RequireAuth(jwtSecret)).Delete("/{id}", handler.Delete)
}

// ListForGuide returns a guide's comments, oldest first.
func (h *CommentHandler) ListForGuide(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guide id")
		return
	}

	comments, err := h.commentService.ListForGuide(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list comments")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// ListForPost returns a post's comments, oldest first.
func (h *CommentHandler) ListForPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	comments, err := h.commentService.ListForPost(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list comments")
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// Create accepts a comment body naming its parent via guide_id or
// post_id, exactly one of which must be set.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	h.create(w, r, req)
}

// CreateForGuide is a convenience route with the parent in the path.
func (h *CommentHandler) CreateForGuide(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid guide id")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	req.GuideID = &id
	req.PostID = nil
	h.create(w, r, req)
}

// CreateForPost is a convenience route with the parent in the path.
func (h *CommentHandler) CreateForPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	var req CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	req.PostID = &id
	req.GuideID = nil
	h.create(w, r, req)
}

func (h *CommentHandler) create(w http.ResponseWriter, r *http.Request, req CommentRequest) {
	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}

	comment, err := h.commentService.Create(r.Context(), types.Comment{
		Content: req.Content,
		UserID:  actor.ID,
		GuideID: req.GuideID,
		PostID:  req.PostID,
	})
	if err != nil {
		if errors.Is(err, services.ErrParentNotFound) {
			writeError(w, http.StatusNotFound, "parent not found")
			return
		}
		writeValidationOr(w, err, http.StatusInternalServerError, "failed to create comment")
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// Delete removes a comment. The author or an admin may delete it.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}

	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}

	comment, err := h.commentService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get comment")
		return
	}

	if err := authz.CanMutate(actor, comment.UserID, nil); err != nil {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	if err := h.commentService.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete comment")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

type CommentRequest struct {
	Content string `json:"content"`
	GuideID *int   `json:"guide_id"`
	PostID  *int   `json:"post_id"`
}
