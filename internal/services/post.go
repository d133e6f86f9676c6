package services

import (
	"context"
	"strings"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	List(ctx context.Context, onlyPublished bool) ([]types.Post, error)
	Get(ctx context.Context, id int, onlyPublished bool) (types.Post, error)
	Create(ctx context.Context, post types.Post) (types.Post, error)
	Update(ctx context.Context, post types.Post) (types.Post, error)
	SetCoverKey(ctx context.Context, id int, key string) error
	Delete(ctx context.Context, id int) error
}

// PostService encapsulates post use-cases, including tag normalization.
type PostService struct {
	repo PostRepository
}

func NewPostService(repo PostRepository) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) List(ctx context.Context, onlyPublished bool) ([]types.Post, error) {
	return s.repo.List(ctx, onlyPublished)
}

func (s *PostService) Get(ctx context.Context, id int, onlyPublished bool) (types.Post, error) {
	return s.repo.Get(ctx, id, onlyPublished)
}

func (s *PostService) Create(ctx context.Context, post types.Post) (types.Post, error) {
	if err := validatePost(&post); err != nil {
		return types.Post{}, err
	}
	return s.repo.Create(ctx, post)
}

// Update rewrites a post and replaces its tag set entirely; update
// semantics for tags are "set", not "add".
func (s *PostService) Update(ctx context.Context, post types.Post) (types.Post, error) {
	if err := validatePost(&post); err != nil {
		return types.Post{}, err
	}
	return s.repo.Update(ctx, post)
}

func (s *PostService) SetCoverKey(ctx context.Context, id int, key string) error {
	return s.repo.SetCoverKey(ctx, id, key)
}

func (s *PostService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func validatePost(post *types.Post) error {
	post.Title = strings.TrimSpace(post.Title)
	post.Content = strings.TrimSpace(post.Content)
	if post.Title == "" {
		return validationErrorf("title is required")
	}
	if post.Content == "" {
		return validationErrorf("content is required")
	}

	if post.Status == "" {
		post.Status = types.PostStatusDraft
	}
	if !types.ValidPostStatus(post.Status) {
		return validationErrorf("invalid status %q", post.Status)
	}

	post.Tags = NormalizeTags(post.Tags)
	if len(post.Tags) == 0 {
		return validationErrorf("at least one tag is required")
	}
	return nil
}

// NormalizeTags trims, lowercases and deduplicates tag names, preserving
// first-seen order. Empty names are dropped.
func NormalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		normalized = append(normalized, name)
	}
	return normalized
}
