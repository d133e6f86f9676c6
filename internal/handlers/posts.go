package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/authz"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/services"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/storage"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/store"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
	"github.com/go-chi/chi/v5"
)

// maxCoverSize bounds cover image uploads.
const maxCoverSize = 8 << 20

// PostHandler exposes CRUD endpoints for posts plus cover image upload.
type PostHandler struct {
	postService *services.PostService
	userService *services.UserService
	storage     *storage.Storage
}

func NewPostHandler(postService *services.PostService, userService *services.UserService, store *storage.Storage) *PostHandler {
	return &PostHandler{postService: postService, userService: userService, storage: store}
}

// PostRouter registers post routes on the given router. store may be nil
// when no object storage backend is configured; cover endpoints then
// respond with 503.
func PostRouter(r chi.Router, postService *services.PostService, userService *services.UserService, store *storage.Storage, jwtSecret string) {
	handler := NewPostHandler(postService, userService, store)

	r.With(OptionalAuth(jwtSecret)).Get("/", handler.List)
	r.With(OptionalAuth(jwtSecret)).Get("/{id}", handler.Get)
	r.Get("/{id}/cover", handler.GetCover)
	r.With(RequireAuth(jwtSecret)).Post("/", handler.Create)
	r.With(RequireAuth(jwtSecret)).Put("/{id}", handler.Update)
	r.With(RequireAuth(jwtSecret)).Put("/{id}/cover", handler.UploadCover)
	r.With(RequireAuth(jwtSecret)).Delete("/{id}", handler.Delete)
}

// List returns posts. Drafts and archived posts are only visible to admins.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := maybeActor(r.Context(), h.userService)
	onlyPublished := !ok || !authz.IsAdmin(actor.Role)

	posts, err := h.postService.List(r.Context(), onlyPublished)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	actor, ok := maybeActor(r.Context(), h.userService)
	onlyPublished := !ok || !authz.IsAdmin(actor.Role)

	post, err := h.postService.Get(r.Context(), id, onlyPublished)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create lets any authenticated user write a post.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	post, err := h.postService.Create(r.Context(), types.Post{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
		Tags:    req.Tags,
		UserID:  actor.ID,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "post title already exists")
			return
		}
		writeValidationOr(w, err, http.StatusInternalServerError, "failed to create post")
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Update is owner-or-admin: plain users can edit their own posts.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}

	existing, err := h.postService.Get(r.Context(), id, false)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get post")
		return
	}

	if err := authz.CanMutate(actor, existing.UserID, nil); err != nil {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	applyPostUpdate(&existing, req)

	post, err := h.postService.Update(r.Context(), existing)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusBadRequest, "post title already exists")
			return
		}
		writeValidationOr(w, err, http.StatusInternalServerError, "failed to update post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}

	existing, err := h.postService.Get(r.Context(), id, false)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get post")
		return
	}

	if err := authz.CanMutate(actor, existing.UserID, authz.Admins()); err != nil {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	if err := h.postService.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete post")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// UploadCover stores a cover image for a post in object storage and
// records the object key on the post.
func (h *PostHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage not configured")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	actor, err := loadActor(r.Context(), h.userService)
	if err != nil {
		writeActorError(w, err)
		return
	}

	existing, err := h.postService.Get(r.Context(), id, false)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get post")
		return
	}

	if err := authz.CanMutate(actor, existing.UserID, nil); err != nil {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	if err := r.ParseMultipartForm(maxCoverSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("cover")
	if err != nil {
		writeError(w, http.StatusBadRequest, "cover file is required")
		return
	}
	defer file.Close()

	data, err := readFileLimited(file, maxCoverSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "cover file too large")
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "cover must be an image")
		return
	}

	key := coverKey(id, header.Filename, time.Now())
	if err := h.storage.Put(r.Context(), key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store cover")
		return
	}

	if err := h.postService.SetCoverKey(r.Context(), id, key); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update post")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"cover_key": key})
}

// GetCover streams a post's cover image from object storage.
func (h *PostHandler) GetCover(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage not configured")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.postService.Get(r.Context(), id, true)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get post")
		return
	}
	if post.CoverKey == "" {
		writeError(w, http.StatusNotFound, "post has no cover")
		return
	}

	reader, contentType, err := h.storage.Get(r.Context(), post.CoverKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			writeError(w, http.StatusNotFound, "cover not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get cover")
		return
	}
	defer reader.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}

// applyPostUpdate copies the request onto the stored post. Status keeps
// its stored value when the request omits it, so a partial update cannot
// silently knock a published post back to draft. Tags are always replaced.
func applyPostUpdate(post *types.Post, req PostRequest) {
	post.Title = req.Title
	post.Content = req.Content
	if req.Status != "" {
		post.Status = req.Status
	}
	post.Tags = req.Tags
}

func readFileLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errors.New("file too large")
	}
	return data, nil
}

func coverKey(postID int, filename string, now time.Time) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = strings.ToLower(filename[i:])
	}
	return fmt.Sprintf("covers/%d/%d%s", postID, now.UnixNano(), ext)
}

type PostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
}
