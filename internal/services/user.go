package services

import (
	"context"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	List(ctx context.Context) ([]types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	UpdateRole(ctx context.Context, id int, role string) error
	UpdateExperienceLevel(ctx context.Context, id int, level string) error
	Delete(ctx context.Context, id int) error
}

// QuizAnswers carries the yes/no answers of the onboarding quiz.
type QuizAnswers struct {
	Sudo     string `json:"sudo"`
	Terminal string `json:"terminal"`
	Kernel   string `json:"kernel"`
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *UserService) List(ctx context.Context) ([]types.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, user types.User) (types.User, error) {
	if user.Role == "" {
		user.Role = types.RoleUser
	}
	if !types.ValidRole(user.Role) {
		return types.User{}, validationErrorf("invalid role %q", user.Role)
	}
	if user.ExperienceLevel == "" {
		user.ExperienceLevel = types.LevelBeginner
	}
	return s.repo.Create(ctx, user)
}

// SetRole changes a user's role. Only called from super_admin endpoints.
func (s *UserService) SetRole(ctx context.Context, id int, role string) error {
	if !types.ValidRole(role) {
		return validationErrorf("invalid role %q", role)
	}
	return s.repo.UpdateRole(ctx, id, role)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// ScoreQuiz derives an experience level from the quiz answers, persists it
// on the user and returns it. One point per "yes": two points make a
// novice, all three an advanced user.
func (s *UserService) ScoreQuiz(ctx context.Context, userID int, answers QuizAnswers) (string, error) {
	score := 0
	for _, answer := range []string{answers.Sudo, answers.Terminal, answers.Kernel} {
		if answer == "yes" {
			score++
		}
	}

	level := types.LevelBeginner
	if score >= 2 {
		level = types.LevelNovice
	}
	if score == 3 {
		level = types.LevelAdvanced
	}

	if err := s.repo.UpdateExperienceLevel(ctx, userID, level); err != nil {
		return "", err
	}
	return level, nil
}
