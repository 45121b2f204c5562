package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()

	first := &domain.User{Name: "Ana", Email: "ana@gym.app", PasswordHash: "hash"}
	id, err := repos.Users.Create(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, id, first.ID)

	_, err = repos.Users.Create(ctx, &domain.User{Email: "ana@gym.app", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	second := &domain.User{Name: "Bia", Email: "bia@gym.app", PasswordHash: "hash"}
	_, err = repos.Users.Create(ctx, second)
	require.NoError(t, err)

	users, err := repos.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bia@gym.app", users[0].Email, "newest first")

	count, err := repos.Users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	require.NoError(t, repos.Users.SetAdmin(ctx, first.ID, true))
	got, err := repos.Users.GetByEmail(ctx, "ana@gym.app")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)

	// Returned records are copies.
	got.Name = "changed"
	again, err := repos.Users.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Name)

	require.NoError(t, repos.Users.Delete(ctx, first.ID))
	_, err = repos.Users.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, repos.Users.Delete(ctx, first.ID), repository.ErrNotFound)
	assert.ErrorIs(t, repos.Users.SetAdmin(ctx, first.ID, false), repository.ErrNotFound)
}

func TestTemplateRepositories(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	owner := primitive.NewObjectID()

	for _, name := range []string{"Treino B", "Treino A"} {
		_, err := repos.Templates.Create(ctx, &domain.WorkoutTemplate{UserID: owner, Name: name})
		require.NoError(t, err)
	}
	_, err := repos.Templates.Create(ctx, &domain.WorkoutTemplate{UserID: primitive.NewObjectID(), Name: "Other"})
	require.NoError(t, err)

	templates, err := repos.Templates.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "Treino A", templates[0].Name)

	tmplID := templates[0].ID
	for i, name := range []string{"Supino", "Remada", "Agachamento"} {
		_, err := repos.TemplateExercises.Create(ctx, &domain.ExerciseTemplate{TemplateID: tmplID, Name: name, OrderIndex: 3 - i})
		require.NoError(t, err)
	}
	exercises, err := repos.TemplateExercises.ListByTemplate(ctx, tmplID)
	require.NoError(t, err)
	require.Len(t, exercises, 3)
	assert.Equal(t, "Agachamento", exercises[0].Name)

	count, err := repos.TemplateExercises.CountByTemplate(ctx, tmplID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	assert.ErrorIs(t, repos.TemplateExercises.Delete(ctx, exercises[0].ID, primitive.NewObjectID()), repository.ErrNotFound)
	require.NoError(t, repos.TemplateExercises.Delete(ctx, exercises[0].ID, tmplID))

	assert.ErrorIs(t, repos.Templates.Delete(ctx, tmplID, primitive.NewObjectID()), repository.ErrNotFound)
	require.NoError(t, repos.Templates.Delete(ctx, tmplID, owner))
	require.NoError(t, repos.TemplateExercises.DeleteByTemplates(ctx, []primitive.ObjectID{tmplID}))

	exercises, err = repos.TemplateExercises.ListByTemplate(ctx, tmplID)
	require.NoError(t, err)
	assert.Empty(t, exercises)
}

func TestScheduleRepository_UpsertKeepsOneEntryPerDay(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	user := primitive.NewObjectID()
	a, b := primitive.NewObjectID(), primitive.NewObjectID()

	require.NoError(t, repos.Schedule.Upsert(ctx, user, 0, a))
	require.NoError(t, repos.Schedule.Upsert(ctx, user, 0, b))
	require.NoError(t, repos.Schedule.Upsert(ctx, user, 2, a))

	entries, err := repos.Schedule.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, b, entries[0].TemplateID)

	require.NoError(t, repos.Schedule.ClearTemplate(ctx, user, a))
	entries, err = repos.Schedule.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 0, entries[0].DayOfWeek)

	require.NoError(t, repos.Schedule.DeleteDay(ctx, user, 0))
	require.NoError(t, repos.Schedule.DeleteDay(ctx, user, 0), "deleting a rest day is a no-op")
	entries, err = repos.Schedule.ListByUser(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWorkoutRepository_GetOrCreateIsAtomic(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	user := primitive.NewObjectID()

	var wg sync.WaitGroup
	ids := make([]primitive.ObjectID, 8)
	createdCount := make([]bool, 8)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			workout, created, err := repos.Workouts.GetOrCreate(ctx, user, "2024-01-02")
			assert.NoError(t, err)
			ids[i] = workout.ID
			createdCount[i] = created
		}()
	}
	wg.Wait()

	creations := 0
	for i := range ids {
		assert.Equal(t, ids[0], ids[i])
		if createdCount[i] {
			creations++
		}
	}
	assert.Equal(t, 1, creations)

	workouts, err := repos.Workouts.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.False(t, workouts[0].Completed)
}

func TestWorkoutRepository_CompletedDates(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	user := primitive.NewObjectID()

	for _, date := range []string{"2023-12-31", "2024-03-01", "2024-01-15", "2024-02-01", "2025-01-01"} {
		workout, _, err := repos.Workouts.GetOrCreate(ctx, user, date)
		require.NoError(t, err)
		if date != "2024-02-01" {
			require.NoError(t, repos.Workouts.SetCompleted(ctx, workout.ID, true))
		}
	}

	dates, err := repos.Workouts.CompletedDates(ctx, user, "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-15", "2024-03-01"}, dates)

	count, err := repos.Workouts.CountCompleted(ctx, user)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}

func TestExerciseRepository(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	workoutID := primitive.NewObjectID()
	weight := 40.0

	created, err := repos.Exercises.CreateMany(ctx, []domain.Exercise{
		{WorkoutID: workoutID, Name: "Remada", OrderIndex: 1},
		{WorkoutID: workoutID, Name: "Supino", OrderIndex: 0, LastWeight: &weight},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.False(t, created[0].ID.IsZero())

	weight = 99 // the store keeps its own copy
	listed, err := repos.Exercises.ListByWorkout(ctx, workoutID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "Supino", listed[0].Name)
	assert.Equal(t, 40.0, *listed[0].LastWeight)

	newWeight := 42.5
	require.NoError(t, repos.Exercises.UpdateProgress(ctx, listed[0].ID, true, &newWeight))
	listed, err = repos.Exercises.ListByWorkout(ctx, workoutID)
	require.NoError(t, err)
	assert.True(t, listed[0].Done)
	assert.Equal(t, 42.5, *listed[0].LastWeight)

	assert.ErrorIs(t, repos.Exercises.UpdateProgress(ctx, primitive.NewObjectID(), true, nil), repository.ErrNotFound)

	require.NoError(t, repos.Exercises.DeleteByWorkout(ctx, workoutID))
	listed, err = repos.Exercises.ListByWorkout(ctx, workoutID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestStreakAndThemeUpsert(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	user := primitive.NewObjectID()

	_, err := repos.Streaks.GetByUser(ctx, user)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	last := "2024-01-02"
	require.NoError(t, repos.Streaks.Upsert(ctx, &domain.Streak{UserID: user, CurrentStreak: 1, LongestStreak: 1, LastWorkoutDate: &last}))
	require.NoError(t, repos.Streaks.Upsert(ctx, &domain.Streak{UserID: user, CurrentStreak: 2, LongestStreak: 2, LastWorkoutDate: &last}))
	streak, err := repos.Streaks.GetByUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 2, streak.CurrentStreak)

	pref := domain.DefaultThemePreference(user)
	pref.CustomColors["warm-light-primary"] = "#FF0000"
	require.NoError(t, repos.Themes.Upsert(ctx, &pref))
	pref.CustomColors["warm-light-card"] = "#000000"

	stored, err := repos.Themes.GetByUser(ctx, user)
	require.NoError(t, err)
	assert.Len(t, stored.CustomColors, 1)

	require.NoError(t, repos.Themes.DeleteByUser(ctx, user))
	_, err = repos.Themes.GetByUser(ctx, user)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBodyMetricRepository_Latest(t *testing.T) {
	ctx := context.Background()
	repos := NewRepositories()
	user := primitive.NewObjectID()

	_, err := repos.BodyMetrics.Latest(ctx, user)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	for _, m := range []domain.BodyMetric{
		{UserID: user, Date: "2024-02-01", Weight: 80},
		{UserID: user, Date: "2024-01-01", Weight: 82},
		{UserID: user, Date: "2024-02-01", Weight: 79},
	} {
		_, err := repos.BodyMetrics.Create(ctx, &m)
		require.NoError(t, err)
	}

	latest, err := repos.BodyMetrics.Latest(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 79.0, latest.Weight)

	metrics, err := repos.BodyMetrics.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, metrics, 3)
	assert.Equal(t, "2024-01-01", metrics[0].Date)
}
