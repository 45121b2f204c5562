package api

import (
	"net/http"
	"testing"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scheduleTuesday creates a template with the given exercises and assigns it to day 1.
func scheduleTuesday(t *testing.T, env *testEnv, token string, exercises ...string) domain.WorkoutTemplate {
	t.Helper()

	rr := env.do(t, http.MethodPost, "/api/v1/templates", token, CreateTemplateRequest{Name: "Treino A"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var template domain.WorkoutTemplate
	decode(t, rr, &template)

	weight := 20.0
	for _, name := range exercises {
		rr = env.do(t, http.MethodPost, "/api/v1/templates/"+template.ID.Hex()+"/exercises", token,
			AddExerciseRequest{Name: name, InitialWeight: &weight})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	templateID := template.ID.Hex()
	rr = env.do(t, http.MethodPut, "/api/v1/schedule/1", token, SetScheduleDayRequest{TemplateID: &templateID})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return template
}

func TestToday_RestDay(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	token := env.signup(t, "ana@example.com")

	rr := env.do(t, http.MethodGet, "/api/v1/workouts/today", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var view service.TodayView
	decode(t, rr, &view)
	assert.True(t, view.RestDay)
	assert.Equal(t, service.RestDayName, view.TemplateName)
	assert.Equal(t, "2024-01-02", view.Date)
	assert.Equal(t, 1, view.DayOfWeek)
	assert.Nil(t, view.Session)
	assert.False(t, view.AllCompleted)
}

func TestTodayAndFinalize(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	token := env.signup(t, "ana@example.com")
	scheduleTuesday(t, env, token, "Supino", "Agachamento")

	rr := env.do(t, http.MethodGet, "/api/v1/workouts/today", token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var view service.TodayView
	decode(t, rr, &view)
	require.False(t, view.RestDay)
	assert.Equal(t, "Treino A", view.TemplateName)
	require.NotNil(t, view.Session)
	require.Len(t, view.Session.Exercises, 2)
	assert.Equal(t, "Supino", view.Session.Exercises[0].Name)
	require.NotNil(t, view.Session.Exercises[0].LastWeight)
	assert.Equal(t, 20.0, *view.Session.Exercises[0].LastWeight)

	// Only the first exercise is done: saved but not completed.
	done := true
	newWeight := 22.5
	first := view.Session.Exercises[0].ID.Hex()
	second := view.Session.Exercises[1].ID.Hex()
	rr = env.do(t, http.MethodPost, "/api/v1/workouts/today/finalize", token, FinalizeRequest{
		Exercises: []ExerciseStateRequest{{ID: first, Done: &done, NewWeight: &newWeight}},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var result service.FinalizeResult
	decode(t, rr, &result)
	assert.False(t, result.Completed)
	assert.False(t, result.StreakIncremented)

	rr = env.do(t, http.MethodPost, "/api/v1/workouts/today/finalize", token, FinalizeRequest{
		Exercises: []ExerciseStateRequest{{ID: second, Done: &done}},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	decode(t, rr, &result)
	assert.True(t, result.Completed)
	assert.True(t, result.StreakIncremented)
	assert.Equal(t, 1, result.Streak.CurrentStreak)

	rr = env.do(t, http.MethodGet, "/api/v1/workouts/today", token, nil)
	decode(t, rr, &view)
	assert.True(t, view.AllCompleted)
	assert.Equal(t, int64(1), view.Stats.CompletedWorkouts)
	assert.Equal(t, 1, view.Stats.CurrentStreak)
	require.NotNil(t, view.Session.Exercises[0].LastWeight)
	assert.Equal(t, 22.5, *view.Session.Exercises[0].LastWeight)

	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.CounterWorkoutsMaterialized))
	assert.Equal(t, float64(1), testutil.ToFloat64(env.metrics.CounterStreakIncrements))
}

func TestFinalize_Errors(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	token := env.signup(t, "ana@example.com")

	rr := env.do(t, http.MethodPost, "/api/v1/workouts/today/finalize", token, FinalizeRequest{})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	scheduleTuesday(t, env, token, "Supino")
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/workouts/today", token, nil).Code)

	rr = env.do(t, http.MethodPost, "/api/v1/workouts/today/finalize", token, FinalizeRequest{
		Exercises: []ExerciseStateRequest{{ID: "nope"}},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// A well-formed id that is not part of today's workout.
	done := true
	rr = env.do(t, http.MethodPost, "/api/v1/workouts/today/finalize", token, FinalizeRequest{
		Exercises: []ExerciseStateRequest{{ID: "65a000000000000000000001", Done: &done}},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp ErrorResponse
	decode(t, rr, &resp)
	assert.Equal(t, service.KindValidation, resp.Kind)
}

func TestCalendar(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	token := env.signup(t, "ana@example.com")

	rr := env.do(t, http.MethodGet, "/api/v1/calendar", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var calendar CalendarResponse
	decode(t, rr, &calendar)
	assert.Equal(t, 2024, calendar.Year)
	assert.Len(t, calendar.Days, 366)
	assert.Equal(t, "2024-01-01", calendar.Days[0].Date)
	assert.Equal(t, 0, calendar.TotalWorkouts)

	rr = env.do(t, http.MethodGet, "/api/v1/calendar?year=2023", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &calendar)
	assert.Len(t, calendar.Days, 365)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/v1/calendar?year=abc", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/v1/calendar?year=0", token, nil).Code)
}

func TestEvolution(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	token := env.signup(t, "ana@example.com")

	rr := env.do(t, http.MethodGet, "/api/v1/evolution", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var evolution service.Evolution
	decode(t, rr, &evolution)
	assert.Empty(t, evolution.Metrics)
	assert.Equal(t, 0, evolution.Summary.MeasurementCount)

	rr = env.do(t, http.MethodPost, "/api/v1/profile/measurements", token, LogMeasurementRequest{
		Weight: 80, MuscleMass: 35, FatPercentage: 18, Height: 180,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = env.do(t, http.MethodGet, "/api/v1/evolution", token, nil)
	decode(t, rr, &evolution)
	require.Len(t, evolution.Metrics, 1)
	assert.Equal(t, 80.0, evolution.Summary.CurrentWeight)
	assert.Equal(t, 1, evolution.Summary.MeasurementCount)
}
