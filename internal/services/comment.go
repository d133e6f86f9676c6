package services

import (
	"context"
	"strings"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	ListForGuide(ctx context.Context, guideID int) ([]types.Comment, error)
	ListForPost(ctx context.Context, postID int) ([]types.Comment, error)
	Get(ctx context.Context, id int) (types.Comment, error)
	Create(ctx context.Context, comment types.Comment) (types.Comment, error)
	Delete(ctx context.Context, id int) error
}

// ParentResolver checks the existence of a comment's prospective parent.
// Implemented by the guide and post repositories.
type ParentResolver interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// CommentService encapsulates comment use-cases and enforces the
// exclusive-parent rule: a comment belongs to exactly one of a guide or
// a post.
type CommentService struct {
	repo   CommentRepository
	guides ParentResolver
	posts  ParentResolver
}

func NewCommentService(repo CommentRepository, guides, posts ParentResolver) *CommentService {
	return &CommentService{
		repo:   repo,
		guides: guides,
		posts:  posts,
	}
}

func (s *CommentService) ListForGuide(ctx context.Context, guideID int) ([]types.Comment, error) {
	return s.repo.ListForGuide(ctx, guideID)
}

func (s *CommentService) ListForPost(ctx context.Context, postID int) ([]types.Comment, error) {
	return s.repo.ListForPost(ctx, postID)
}

func (s *CommentService) Get(ctx context.Context, id int) (types.Comment, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a comment. Checks run cheapest first:
// content, then the structural exactly-one-parent rule (no I/O), and only
// then the storage lookup that resolves the parent.
func (s *CommentService) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	comment.Content = strings.TrimSpace(comment.Content)
	if comment.Content == "" {
		return types.Comment{}, validationErrorf("comment content is required")
	}

	switch {
	case comment.GuideID != nil && comment.PostID != nil:
		return types.Comment{}, validationErrorf("a comment must reference exactly one of a guide or a post, not both")
	case comment.GuideID == nil && comment.PostID == nil:
		return types.Comment{}, validationErrorf("a comment must reference a guide or a post")
	}

	var (
		parentID int
		resolver ParentResolver
		kind     string
	)
	if comment.GuideID != nil {
		parentID, resolver, kind = *comment.GuideID, s.guides, "guide"
	} else {
		parentID, resolver, kind = *comment.PostID, s.posts, "post"
	}
	if parentID < 1 {
		return types.Comment{}, validationErrorf("invalid %s id", kind)
	}

	exists, err := resolver.Exists(ctx, parentID)
	if err != nil {
		return types.Comment{}, err
	}
	if !exists {
		return types.Comment{}, ErrParentNotFound
	}

	return s.repo.Create(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
