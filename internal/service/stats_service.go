package service

import (
	"context"
	"fmt"
	"iter"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CalendarView is the yearly heatmap with the streak counters.
type CalendarView struct {
	Year int `json:"year"`
	// Days yields every day of Year in order and can be ranged over repeatedly.
	Days          iter.Seq[domain.CalendarDay] `json:"-"`
	TotalWorkouts int                          `json:"totalWorkouts"`
	CurrentStreak int                          `json:"currentStreak"`
	LongestStreak int                          `json:"longestStreak"`
}

// Evolution is the body metric series, oldest first, with its summary.
type Evolution struct {
	Metrics []domain.BodyMetric  `json:"metrics"`
	Summary domain.MetricSummary `json:"summary"`
}

// StatsService builds read-only projections over workout history and body metrics.
type StatsService interface {
	Calendar(ctx context.Context, userID primitive.ObjectID, year int) (*CalendarView, error)
	Evolution(ctx context.Context, userID primitive.ObjectID) (*Evolution, error)
}

type statsService struct {
	workoutRepo repository.WorkoutRepository
	streakRepo  repository.StreakRepository
	metricRepo  repository.BodyMetricRepository
}

// NewStatsService creates a new instance of statsService.
func NewStatsService(repos repository.Repositories) StatsService {
	return &statsService{
		workoutRepo: repos.Workouts,
		streakRepo:  repos.Streaks,
		metricRepo:  repos.BodyMetrics,
	}
}

func (s *statsService) Calendar(ctx context.Context, userID primitive.ObjectID, year int) (*CalendarView, error) {
	if year < 1 || year > 9999 {
		return nil, invalidf("year must be between 1 and 9999")
	}

	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-12-31", year)
	dates, err := s.workoutRepo.CompletedDates(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load completed workouts: %w", err)
	}
	completed := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		completed[d] = struct{}{}
	}

	streak, err := loadStreak(ctx, s.streakRepo, userID)
	if err != nil {
		return nil, err
	}

	return &CalendarView{
		Year:          year,
		Days:          domain.YearHeatmap(year, completed),
		TotalWorkouts: len(completed),
		CurrentStreak: streak.CurrentStreak,
		LongestStreak: streak.LongestStreak,
	}, nil
}

func (s *statsService) Evolution(ctx context.Context, userID primitive.ObjectID) (*Evolution, error) {
	metrics, err := s.metricRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load body metrics: %w", err)
	}
	domain.SortMetricsByDate(metrics)
	return &Evolution{
		Metrics: metrics,
		Summary: domain.SummarizeMetrics(metrics),
	}, nil
}
