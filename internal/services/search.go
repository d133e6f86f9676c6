package services

import (
	"context"
	"strings"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
)

// SearchRepository defines the free-text lookup across guides and posts.
type SearchRepository interface {
	Search(ctx context.Context, term string) ([]types.SearchResult, error)
}

// SearchService encapsulates content search.
type SearchService struct {
	repo SearchRepository
}

func NewSearchService(repo SearchRepository) *SearchService {
	return &SearchService{repo: repo}
}

func (s *SearchService) Search(ctx context.Context, term string) ([]types.SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, validationErrorf("search term is required")
	}
	return s.repo.Search(ctx, term)
}
