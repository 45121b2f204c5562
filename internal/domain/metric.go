package domain

import (
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BodyMetric is one body-composition measurement. Append-only; several may share a date.
type BodyMetric struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Date          string             `bson:"date" json:"date"`     // YYYY-MM-DD
	Weight        float64            `bson:"weight" json:"weight"` // kg
	MuscleMass    float64            `bson:"muscleMass" json:"muscleMass"`
	FatPercentage float64            `bson:"fatPercentage" json:"fatPercentage"`
	Height        float64            `bson:"height" json:"height"` // cm
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// MetricSummary compares the latest measurement with the oldest one.
type MetricSummary struct {
	CurrentWeight    float64 `json:"currentWeight"`
	WeightChange     float64 `json:"weightChange"`
	CurrentMuscle    float64 `json:"currentMuscle"`
	MuscleChange     float64 `json:"muscleChange"`
	CurrentFat       float64 `json:"currentFat"`
	FatChange        float64 `json:"fatChange"`
	MeasurementCount int     `json:"measurementCount"`
}

// SortMetricsByDate orders metrics by date ascending, then by creation time.
func SortMetricsByDate(metrics []BodyMetric) {
	sort.SliceStable(metrics, func(i, j int) bool {
		if metrics[i].Date != metrics[j].Date {
			return metrics[i].Date < metrics[j].Date
		}
		return metrics[i].CreatedAt.Before(metrics[j].CreatedAt)
	})
}

// SummarizeMetrics expects metrics sorted ascending. It returns the zero summary for an empty series.
func SummarizeMetrics(metrics []BodyMetric) MetricSummary {
	if len(metrics) == 0 {
		return MetricSummary{}
	}
	oldest := metrics[0]
	latest := metrics[len(metrics)-1]
	return MetricSummary{
		CurrentWeight:    latest.Weight,
		WeightChange:     latest.Weight - oldest.Weight,
		CurrentMuscle:    latest.MuscleMass,
		MuscleChange:     latest.MuscleMass - oldest.MuscleMass,
		CurrentFat:       latest.FatPercentage,
		FatChange:        latest.FatPercentage - oldest.FatPercentage,
		MeasurementCount: len(metrics),
	}
}
