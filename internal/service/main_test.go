package service

import (
	"context"
	"testing"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"
	"github.com/arthurcerqueirm/gym-app/internal/repository/memory"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// tuesday is 2024-01-02, normalized day index 1.
var tuesday = time.Date(2024, time.January, 2, 9, 30, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func newRepos() repository.Repositories {
	return memory.NewRepositories()
}

func createUser(t *testing.T, repos repository.Repositories, email string, admin bool) *domain.User {
	t.Helper()
	user, err := createAccount(context.Background(), repos.Users, "", email, "secret123", admin)
	require.NoError(t, err)
	return user
}

// createTemplate stores a template owned by userID with the given exercise names.
func createTemplate(t *testing.T, repos repository.Repositories, userID primitive.ObjectID, name string, exercises ...string) *domain.WorkoutTemplate {
	t.Helper()
	svc := NewTemplateService(repos.Templates, repos.TemplateExercises, repos.Schedule, nil)
	template, err := svc.CreateTemplate(context.Background(), userID, name, "")
	require.NoError(t, err)
	for _, ex := range exercises {
		_, err := svc.AddExercise(context.Background(), userID, template.ID, ExerciseInput{Name: ex, InitialWeight: floatPtr(20)})
		require.NoError(t, err)
	}
	return template
}
