package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCommentRepo struct {
	created *types.Comment
}

func (f *fakeCommentRepo) ListForGuide(ctx context.Context, guideID int) ([]types.Comment, error) {
	return nil, nil
}

func (f *fakeCommentRepo) ListForPost(ctx context.Context, postID int) ([]types.Comment, error) {
	return nil, nil
}

func (f *fakeCommentRepo) Get(ctx context.Context, id int) (types.Comment, error) {
	return types.Comment{}, nil
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	comment.ID = 1
	f.created = &comment
	return comment, nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id int) error {
	return nil
}

type fakeResolver struct {
	exists bool
	err    error
	calls  int
}

func (f *fakeResolver) Exists(ctx context.Context, id int) (bool, error) {
	f.calls++
	return f.exists, f.err
}

func intPtr(v int) *int {
	return &v
}

func TestCommentCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates guide comment", func(t *testing.T) {
		repo := &fakeCommentRepo{}
		guides := &fakeResolver{exists: true}
		posts := &fakeResolver{exists: true}
		svc := NewCommentService(repo, guides, posts)

		created, err := svc.Create(ctx, types.Comment{
			Content: "  nice guide  ",
			UserID:  7,
			GuideID: intPtr(3),
		})
		require.NoError(t, err)
		assert.Equal(t, "nice guide", created.Content)
		require.NotNil(t, created.GuideID)
		assert.Equal(t, 3, *created.GuideID)
		assert.Nil(t, created.PostID)
		assert.Equal(t, 1, guides.calls)
		assert.Equal(t, 0, posts.calls)
	})

	t.Run("creates post comment", func(t *testing.T) {
		repo := &fakeCommentRepo{}
		guides := &fakeResolver{exists: true}
		posts := &fakeResolver{exists: true}
		svc := NewCommentService(repo, guides, posts)

		created, err := svc.Create(ctx, types.Comment{
			Content: "nice post",
			UserID:  7,
			PostID:  intPtr(5),
		})
		require.NoError(t, err)
		assert.Nil(t, created.GuideID)
		require.NotNil(t, created.PostID)
		assert.Equal(t, 5, *created.PostID)
		assert.Equal(t, 0, guides.calls)
		assert.Equal(t, 1, posts.calls)
	})

	t.Run("rejects empty content before structural checks", func(t *testing.T) {
		repo := &fakeCommentRepo{}
		guides := &fakeResolver{exists: true}
		svc := NewCommentService(repo, guides, &fakeResolver{exists: true})

		_, err := svc.Create(ctx, types.Comment{Content: "   ", GuideID: intPtr(1), PostID: intPtr(2)})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Contains(t, err.Error(), "content")
		assert.Equal(t, 0, guides.calls)
	})

	t.Run("rejects both parents", func(t *testing.T) {
		guides := &fakeResolver{exists: true}
		posts := &fakeResolver{exists: true}
		svc := NewCommentService(&fakeCommentRepo{}, guides, posts)

		_, err := svc.Create(ctx, types.Comment{Content: "hi", GuideID: intPtr(1), PostID: intPtr(2)})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, 0, guides.calls)
		assert.Equal(t, 0, posts.calls)
	})

	t.Run("rejects no parent", func(t *testing.T) {
		svc := NewCommentService(&fakeCommentRepo{}, &fakeResolver{exists: true}, &fakeResolver{exists: true})

		_, err := svc.Create(ctx, types.Comment{Content: "hi"})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("rejects non-positive parent id without lookup", func(t *testing.T) {
		guides := &fakeResolver{exists: true}
		svc := NewCommentService(&fakeCommentRepo{}, guides, &fakeResolver{exists: true})

		_, err := svc.Create(ctx, types.Comment{Content: "hi", GuideID: intPtr(0)})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, 0, guides.calls)
	})

	t.Run("missing guide parent", func(t *testing.T) {
		repo := &fakeCommentRepo{}
		svc := NewCommentService(repo, &fakeResolver{exists: false}, &fakeResolver{exists: true})

		_, err := svc.Create(ctx, types.Comment{Content: "hi", GuideID: intPtr(9)})
		require.ErrorIs(t, err, ErrParentNotFound)
		assert.Nil(t, repo.created)
	})

	t.Run("missing post parent", func(t *testing.T) {
		repo := &fakeCommentRepo{}
		svc := NewCommentService(repo, &fakeResolver{exists: true}, &fakeResolver{exists: false})

		_, err := svc.Create(ctx, types.Comment{Content: "hi", PostID: intPtr(9)})
		require.ErrorIs(t, err, ErrParentNotFound)
		assert.Nil(t, repo.created)
	})

	t.Run("resolver error is passed through", func(t *testing.T) {
		boom := errors.New("db down")
		svc := NewCommentService(&fakeCommentRepo{}, &fakeResolver{err: boom}, &fakeResolver{exists: true})

		_, err := svc.Create(ctx, types.Comment{Content: "hi", GuideID: intPtr(1)})
		require.ErrorIs(t, err, boom)
		assert.False(t, IsValidation(err))
	})
}
