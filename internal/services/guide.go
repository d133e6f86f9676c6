package services

import (
	"context"
	"strings"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
)

// GuideRepository defines persistence operations for guides.
type GuideRepository interface {
	List(ctx context.Context, onlyPublished bool) ([]types.Guide, error)
	ListByLevel(ctx context.Context, level string) ([]types.Guide, error)
	Get(ctx context.Context, id int, onlyPublished bool) (types.Guide, error)
	Create(ctx context.Context, guide types.Guide) (types.Guide, error)
	Update(ctx context.Context, guide types.Guide) (types.Guide, error)
	Delete(ctx context.Context, id int) error
}

// GuideService encapsulates guide use-cases.
type GuideService struct {
	repo GuideRepository
}

func NewGuideService(repo GuideRepository) *GuideService {
	return &GuideService{repo: repo}
}

func (s *GuideService) List(ctx context.Context, onlyPublished bool) ([]types.Guide, error) {
	return s.repo.List(ctx, onlyPublished)
}

// ListForLevel returns published guides matching the given experience
// level, backing the "for you" feed.
func (s *GuideService) ListForLevel(ctx context.Context, level string) ([]types.Guide, error) {
	if !types.ValidExperienceLevel(level) {
		return nil, validationErrorf("invalid experience level %q", level)
	}
	return s.repo.ListByLevel(ctx, level)
}

func (s *GuideService) Get(ctx context.Context, id int, onlyPublished bool) (types.Guide, error) {
	return s.repo.Get(ctx, id, onlyPublished)
}

func (s *GuideService) Create(ctx context.Context, guide types.Guide) (types.Guide, error) {
	if err := validateGuide(&guide); err != nil {
		return types.Guide{}, err
	}
	return s.repo.Create(ctx, guide)
}

func (s *GuideService) Update(ctx context.Context, guide types.Guide) (types.Guide, error) {
	if err := validateGuide(&guide); err != nil {
		return types.Guide{}, err
	}
	return s.repo.Update(ctx, guide)
}

func (s *GuideService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func validateGuide(guide *types.Guide) error {
	guide.Title = strings.TrimSpace(guide.Title)
	guide.Description = strings.TrimSpace(guide.Description)
	if guide.Title == "" {
		return validationErrorf("title is required")
	}
	if guide.Description == "" {
		return validationErrorf("description is required")
	}

	if guide.Status == "" {
		guide.Status = types.GuideStatusDraft
	}
	if !types.ValidGuideStatus(guide.Status) {
		return validationErrorf("invalid status %q", guide.Status)
	}

	if guide.Level == "" {
		guide.Level = types.LevelBeginner
	}
	if !types.ValidExperienceLevel(guide.Level) {
		return validationErrorf("invalid level %q", guide.Level)
	}
	return nil
}
