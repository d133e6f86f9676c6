package services

import (
	"context"
	"testing"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostRepo struct {
	created *types.Post
	updated *types.Post
}

func (f *fakePostRepo) List(ctx context.Context, onlyPublished bool) ([]types.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) Get(ctx context.Context, id int, onlyPublished bool) (types.Post, error) {
	return types.Post{}, nil
}

func (f *fakePostRepo) Create(ctx context.Context, post types.Post) (types.Post, error) {
	post.ID = 1
	f.created = &post
	return post, nil
}

func (f *fakePostRepo) Update(ctx context.Context, post types.Post) (types.Post, error) {
	f.updated = &post
	return post, nil
}

func (f *fakePostRepo) SetCoverKey(ctx context.Context, id int, key string) error {
	return nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id int) error {
	return nil
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "case and whitespace collapse",
			in:   []string{"Linux", "linux", " LINUX "},
			want: []string{"linux"},
		},
		{
			name: "first seen order preserved",
			in:   []string{"Shell", "bash", "shell", "Bash", "zsh"},
			want: []string{"shell", "bash", "zsh"},
		},
		{
			name: "empty names dropped",
			in:   []string{"", "  ", "kernel"},
			want: []string{"kernel"},
		},
		{
			name: "nil input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestPostValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("requires at least one tag", func(t *testing.T) {
		svc := NewPostService(&fakePostRepo{})
		_, err := svc.Create(ctx, types.Post{
			Title:   "Dual booting",
			Content: "body",
			Tags:    []string{"  ", ""},
		})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("defaults status to draft and normalizes tags", func(t *testing.T) {
		repo := &fakePostRepo{}
		svc := NewPostService(repo)
		created, err := svc.Create(ctx, types.Post{
			Title:   "  Dual booting  ",
			Content: "body",
			Tags:    []string{"Boot", "boot", "GRUB"},
			UserID:  4,
		})
		require.NoError(t, err)
		assert.Equal(t, "Dual booting", created.Title)
		assert.Equal(t, types.PostStatusDraft, created.Status)
		assert.Equal(t, []string{"boot", "grub"}, created.Tags)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc := NewPostService(&fakePostRepo{})
		_, err := svc.Create(ctx, types.Post{
			Title:   "t",
			Content: "c",
			Status:  "hidden",
			Tags:    []string{"a"},
		})
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("update replaces tags", func(t *testing.T) {
		repo := &fakePostRepo{}
		svc := NewPostService(repo)
		updated, err := svc.Update(ctx, types.Post{
			ID:      3,
			Title:   "t",
			Content: "c",
			Status:  types.PostStatusPublished,
			Tags:    []string{"New"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"new"}, updated.Tags)
		require.NotNil(t, repo.updated)
		assert.Equal(t, []string{"new"}, repo.updated.Tags)
	})
}
