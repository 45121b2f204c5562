package service

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportService_Disabled(t *testing.T) {
	repos := newRepos()
	svc := NewExportService(repos, nil, fixedClock(tuesday), nil)

	_, err := svc.ExportHistory(context.Background(), createUser(t, repos, "e@example.com", false).ID)
	assert.ErrorIs(t, err, ErrExportsDisabled)
	assert.Equal(t, KindUnavailable, ClassifyError(err))
}

func TestExportService_ExportHistory(t *testing.T) {
	repos := newRepos()
	files := storage.NewMemoryStorage()
	svc := NewExportService(repos, files, fixedClock(tuesday), nil)
	ctx := context.Background()
	user := createUser(t, repos, "export@example.com", false)

	template := createTemplate(t, repos, user.ID, "Treino A", "Squat", "Row")
	require.NoError(t, repos.Schedule.Upsert(ctx, user.ID, 1, template.ID))
	workouts := NewWorkoutService(WorkoutServiceConfig{Repositories: repos, Clock: fixedClock(tuesday)})
	daily, err := workouts.Materialize(ctx, user.ID, tuesday)
	require.NoError(t, err)
	_, err = workouts.Finalize(ctx, user.ID, []ExerciseUpdate{
		{ExerciseID: daily.Exercises[0].ID, Done: boolPtr(true), NewWeight: floatPtr(22.5)},
	})
	require.NoError(t, err)
	_, err = repos.BodyMetrics.Create(ctx, &domain.BodyMetric{UserID: user.ID, Date: "2024-01-02", Weight: 80, MuscleMass: 35, FatPercentage: 18, Height: 180})
	require.NoError(t, err)

	result, err := svc.ExportHistory(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.WorkoutsURL, "memory:///exports/"+user.ID.Hex()+"/"))
	assert.Contains(t, result.MetricsURL, "body_metrics.csv")
	assert.Equal(t, tuesday.Add(storage.DefaultPresignedURLExpiry), result.ExpiresAt)

	keys := files.Keys()
	require.Len(t, keys, 2)
	var workoutsKey, metricsKey string
	for _, key := range keys {
		if strings.HasSuffix(key, "workouts.csv") {
			workoutsKey = key
		} else {
			metricsKey = key
		}
	}

	obj, ok := files.Object(workoutsKey)
	require.True(t, ok)
	assert.Equal(t, "text/csv", obj.ContentType)
	rows, err := csv.NewReader(strings.NewReader(string(obj.Body))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"date", "completed", "exercise", "sets", "reps", "weight", "done"},
		{"2024-01-02", "false", "Squat", "3", "10", "22.5", "true"},
		{"2024-01-02", "false", "Row", "3", "10", "20", "false"},
	}, rows)

	obj, ok = files.Object(metricsKey)
	require.True(t, ok)
	rows, err = csv.NewReader(strings.NewReader(string(obj.Body))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"date", "weight", "muscle_mass", "fat_percentage", "height"},
		{"2024-01-02", "80", "35", "18", "180"},
	}, rows)
}

// flakyStorage fails the second upload.
type flakyStorage struct {
	*storage.MemoryStorage
	puts int
}

func (f *flakyStorage) PutObject(ctx context.Context, key, contentType string, body []byte) error {
	f.puts++
	if f.puts == 2 {
		return errors.New("bucket unavailable")
	}
	return f.MemoryStorage.PutObject(ctx, key, contentType, body)
}

func TestExportService_CleansUpPartialUpload(t *testing.T) {
	repos := newRepos()
	files := &flakyStorage{MemoryStorage: storage.NewMemoryStorage()}
	svc := NewExportService(repos, files, fixedClock(tuesday), nil)

	_, err := svc.ExportHistory(context.Background(), createUser(t, repos, "flaky@example.com", false).ID)
	require.Error(t, err)
	assert.Empty(t, files.Keys())
}
