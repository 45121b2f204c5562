package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeMetrics(t *testing.T) {
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	metrics := []BodyMetric{
		{Date: "2024-03-01", Weight: 80, MuscleMass: 35, FatPercentage: 20, CreatedAt: base},
		{Date: "2024-01-01", Weight: 84, MuscleMass: 34, FatPercentage: 23, CreatedAt: base},
		{Date: "2024-03-01", Weight: 79.5, MuscleMass: 35.5, FatPercentage: 19.5, CreatedAt: base.Add(time.Hour)},
	}

	SortMetricsByDate(metrics)
	require.Equal(t, "2024-01-01", metrics[0].Date)
	require.Equal(t, 79.5, metrics[2].Weight, "same-day entries keep creation order")

	summary := SummarizeMetrics(metrics)
	assert.Equal(t, 79.5, summary.CurrentWeight)
	assert.InDelta(t, -4.5, summary.WeightChange, 1e-9)
	assert.Equal(t, 35.5, summary.CurrentMuscle)
	assert.InDelta(t, 1.5, summary.MuscleChange, 1e-9)
	assert.Equal(t, 19.5, summary.CurrentFat)
	assert.InDelta(t, -3.5, summary.FatChange, 1e-9)
	assert.Equal(t, 3, summary.MeasurementCount)
}

func TestSummarizeMetrics_Empty(t *testing.T) {
	assert.Equal(t, MetricSummary{}, SummarizeMetrics(nil))
}

func TestSummarizeMetrics_Single(t *testing.T) {
	summary := SummarizeMetrics([]BodyMetric{{Weight: 70, MuscleMass: 30, FatPercentage: 15}})
	assert.Equal(t, 70.0, summary.CurrentWeight)
	assert.Zero(t, summary.WeightChange)
	assert.Equal(t, 1, summary.MeasurementCount)
}
