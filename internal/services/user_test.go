package services

import (
	"context"
	"testing"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	levels map[int]string
	roles  map[int]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{levels: map[int]string{}, roles: map[int]string{}}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	return types.User{ID: id}, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return types.User{}, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]types.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	user.ID = 1
	return user, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id int, role string) error {
	f.roles[id] = role
	return nil
}

func (f *fakeUserRepo) UpdateExperienceLevel(ctx context.Context, id int, level string) error {
	f.levels[id] = level
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) error {
	return nil
}

func TestScoreQuiz(t *testing.T) {
	tests := []struct {
		name    string
		answers QuizAnswers
		want    string
	}{
		{"all no", QuizAnswers{Sudo: "no", Terminal: "no", Kernel: "no"}, types.LevelBeginner},
		{"one yes", QuizAnswers{Sudo: "yes"}, types.LevelBeginner},
		{"two yes", QuizAnswers{Sudo: "yes", Terminal: "yes"}, types.LevelNovice},
		{"different two yes", QuizAnswers{Terminal: "yes", Kernel: "yes"}, types.LevelNovice},
		{"all yes", QuizAnswers{Sudo: "yes", Terminal: "yes", Kernel: "yes"}, types.LevelAdvanced},
		{"answers are not trimmed", QuizAnswers{Sudo: " yes ", Terminal: "YES", Kernel: "y"}, types.LevelBeginner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			svc := NewUserService(repo)

			level, err := svc.ScoreQuiz(context.Background(), 42, tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
			assert.Equal(t, tt.want, repo.levels[42])
		})
	}
}

func TestUserCreateDefaults(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	user, err := svc.Create(context.Background(), types.User{Username: "tux", PasswordHash: "x"})
	require.NoError(t, err)
	assert.Equal(t, types.RoleUser, user.Role)
	assert.Equal(t, types.LevelBeginner, user.ExperienceLevel)
}

func TestUserCreateRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.Create(context.Background(), types.User{Username: "tux", Role: "owner"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestSetRoleValidation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	require.NoError(t, svc.SetRole(context.Background(), 5, types.RoleAdmin))
	assert.Equal(t, types.RoleAdmin, repo.roles[5])

	err := svc.SetRole(context.Background(), 5, "root")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
