package api

import (
	"net/http"
	"testing"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_CRUD(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	token := env.signup(t, "ana@example.com")

	rr := env.do(t, http.MethodGet, "/api/v1/templates", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	template := scheduleTuesday(t, env, token, "Supino", "Remada")

	rr = env.do(t, http.MethodGet, "/api/v1/templates", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var templates []domain.WorkoutTemplate
	decode(t, rr, &templates)
	require.Len(t, templates, 1)
	require.Len(t, templates[0].Exercises, 2)
	assert.Equal(t, "Supino", templates[0].Exercises[0].Name)
	assert.Equal(t, domain.DefaultSets, templates[0].Exercises[0].Sets)
	assert.Equal(t, domain.DefaultReps, templates[0].Exercises[0].Reps)
	assert.Equal(t, 2, templates[0].Exercises[1].OrderIndex)

	exercisePath := "/api/v1/templates/" + template.ID.Hex() + "/exercises/" + templates[0].Exercises[0].ID.Hex()
	rr = env.do(t, http.MethodDelete, exercisePath, token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodDelete, "/api/v1/templates/"+template.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Deleting the template frees its schedule slot.
	rr = env.do(t, http.MethodGet, "/api/v1/schedule", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var days []service.ScheduleDay
	decode(t, rr, &days)
	require.Len(t, days, domain.DaysPerWeek)
	assert.Nil(t, days[1].TemplateID)

	rr = env.do(t, http.MethodDelete, "/api/v1/templates/"+template.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTemplates_Validation(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	token := env.signup(t, "ana@example.com")

	rr := env.do(t, http.MethodPost, "/api/v1/templates", token, CreateTemplateRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/v1/templates/xyz/exercises", token, AddExerciseRequest{Name: "Supino"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	template := scheduleTuesday(t, env, token)
	rr = env.do(t, http.MethodPost, "/api/v1/templates/"+template.ID.Hex()+"/exercises", token, AddExerciseRequest{Name: "Supino", Sets: -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTemplates_OtherUser(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	owner := env.signup(t, "ana@example.com")
	other := env.signup(t, "bruno@example.com")

	template := scheduleTuesday(t, env, owner, "Supino")

	rr := env.do(t, http.MethodPost, "/api/v1/templates/"+template.ID.Hex()+"/exercises", other, AddExerciseRequest{Name: "Rosca"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	var resp ErrorResponse
	decode(t, rr, &resp)
	assert.Equal(t, service.KindPermission, resp.Kind)
	assert.Contains(t, resp.Error, "Permission denied: ")

	templateID := template.ID.Hex()
	rr = env.do(t, http.MethodPut, "/api/v1/schedule/0", other, SetScheduleDayRequest{TemplateID: &templateID})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.do(t, http.MethodGet, "/api/v1/templates", other, nil)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestSchedule(t *testing.T) {
	env := newTestEnv(t, testEnvOptions{})
	token := env.signup(t, "ana@example.com")
	template := scheduleTuesday(t, env, token)

	rr := env.do(t, http.MethodGet, "/api/v1/schedule", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var days []service.ScheduleDay
	decode(t, rr, &days)
	require.Len(t, days, domain.DaysPerWeek)
	require.NotNil(t, days[1].TemplateID)
	assert.Equal(t, template.ID, *days[1].TemplateID)
	assert.Equal(t, "Treino A", days[1].TemplateName)
	assert.Nil(t, days[0].TemplateID)

	// null clears the day
	rr = env.do(t, http.MethodPut, "/api/v1/schedule/1", token, SetScheduleDayRequest{})
	require.Equal(t, http.StatusOK, rr.Code)
	days = nil
	decode(t, rr, &days)
	assert.Nil(t, days[1].TemplateID)

	for name, path := range map[string]string{
		"out-of-range": "/api/v1/schedule/7",
		"negative":     "/api/v1/schedule/-1",
		"not-a-number": "/api/v1/schedule/monday",
	} {
		t.Run(name, func(t *testing.T) {
			rr := env.do(t, http.MethodPut, path, token, SetScheduleDayRequest{})
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}

	missing := "65a000000000000000000001"
	rr = env.do(t, http.MethodPut, "/api/v1/schedule/2", token, SetScheduleDayRequest{TemplateID: &missing})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
