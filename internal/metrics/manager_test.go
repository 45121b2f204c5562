package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersCollectors(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterRequests.WithLabelValues("GET", "200").Inc()
	m.CounterWorkoutsFinalized.WithLabelValues("true").Inc()
	m.CounterStreakIncrements.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterStreakIncrements))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "200")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["gym_app_api_streak_increments_total"] || names["gym_app_api_streak_increments"])
	assert.True(t, names["gym_app_api_workouts_finalized"])
}

func TestNewTestManager_IsolatedRegistries(t *testing.T) {
	// Two managers must not collide on registration.
	require.NotPanics(t, func() {
		NewTestManager()
		NewTestManager()
	})
}
