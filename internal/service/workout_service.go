package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/metrics"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// RestDayName is reported as the template name when nothing is scheduled.
const RestDayName = "rest"

// DailyWorkout is a materialized workout with its exercises in order.
type DailyWorkout struct {
	Workout      domain.Workout
	TemplateID   primitive.ObjectID
	TemplateName string
	Exercises    []domain.Exercise
}

// ExerciseUpdate is the client state of one exercise at finalize time. Nil fields are left unchanged.
type ExerciseUpdate struct {
	ExerciseID primitive.ObjectID
	Done       *bool
	NewWeight  *float64
}

// WorkoutStats are the dashboard counters shown next to today's workout.
type WorkoutStats struct {
	CompletedWorkouts int64 `json:"completedWorkouts"`
	CurrentStreak     int   `json:"currentStreak"`
	LongestStreak     int   `json:"longestStreak"`
}

// TodayView is everything the dashboard needs for the current day.
type TodayView struct {
	Date         string                 `json:"date"`
	DayOfWeek    int                    `json:"dayOfWeek"`
	RestDay      bool                   `json:"restDay"`
	TemplateName string                 `json:"templateName"`
	Session      *domain.WorkoutSession `json:"session"`
	AllCompleted bool                   `json:"allCompleted"`
	Stats        WorkoutStats           `json:"stats"`
}

// FinalizeResult reports the outcome of saving a day's workout.
type FinalizeResult struct {
	Completed         bool          `json:"completed"`
	StreakIncremented bool          `json:"streakIncremented"`
	Streak            domain.Streak `json:"streak"`
}

// WorkoutService turns the weekly schedule into dated workouts and records their completion.
type WorkoutService interface {
	// Materialize returns the workout for date, creating it and its exercises on first use.
	// It returns nil on rest days, removing any workout left over from an earlier schedule.
	Materialize(ctx context.Context, userID primitive.ObjectID, date time.Time) (*DailyWorkout, error)
	Today(ctx context.Context, userID primitive.ObjectID) (*TodayView, error)
	// Finalize applies updates to today's workout, persists them and updates the streak
	// when every exercise is done.
	Finalize(ctx context.Context, userID primitive.ObjectID, updates []ExerciseUpdate) (*FinalizeResult, error)
}

// WorkoutServiceConfig groups the dependencies of NewWorkoutService.
type WorkoutServiceConfig struct {
	Repositories repository.Repositories
	Metrics      *metrics.Manager
	Clock        Clock
	Location     *time.Location
	Logger       *zap.Logger
}

type workoutService struct {
	scheduleRepo         repository.ScheduleRepository
	templateRepo         repository.TemplateRepository
	templateExerciseRepo repository.TemplateExerciseRepository
	workoutRepo          repository.WorkoutRepository
	exerciseRepo         repository.ExerciseRepository
	streakRepo           repository.StreakRepository
	metrics              *metrics.Manager
	cal                  calendar
	logger               *zap.Logger
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(cfg WorkoutServiceConfig) WorkoutService {
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewTestManager()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	repos := cfg.Repositories
	return &workoutService{
		scheduleRepo:         repos.Schedule,
		templateRepo:         repos.Templates,
		templateExerciseRepo: repos.TemplateExercises,
		workoutRepo:          repos.Workouts,
		exerciseRepo:         repos.Exercises,
		streakRepo:           repos.Streaks,
		metrics:              cfg.Metrics,
		cal:                  newCalendar(cfg.Clock, cfg.Location),
		logger:               cfg.Logger,
	}
}

func (s *workoutService) Materialize(ctx context.Context, userID primitive.ObjectID, date time.Time) (*DailyWorkout, error) {
	day := domain.FormatDate(date)
	logger := s.logger.With(zap.String("user_id", userID.Hex()), zap.String("date", day))

	entries, err := s.scheduleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	templateID, scheduled := domain.ResolveTemplateForDate(date, domain.NewWeeklySchedule(entries))
	if !scheduled {
		return nil, s.cleanupRestDay(ctx, logger, userID, day)
	}

	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if isNotFound(err) {
			logger.Warn("scheduled template no longer exists, treating as rest day", zap.String("template_id", templateID.Hex()))
			return nil, s.cleanupRestDay(ctx, logger, userID, day)
		}
		return nil, fmt.Errorf("load template: %w", err)
	}

	workout, created, err := s.workoutRepo.GetOrCreate(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	if created {
		logger.Info("workout created", zap.String("workout_id", workout.ID.Hex()))
	}

	exercises, err := s.exerciseRepo.ListByWorkout(ctx, workout.ID)
	if err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}
	// A workout with no exercises is either new or left over from an interrupted attempt.
	if len(exercises) == 0 {
		exercises, err = s.materializeExercises(ctx, workout.ID, templateID)
		if err != nil {
			return nil, err
		}
		if len(exercises) > 0 {
			s.metrics.CounterWorkoutsMaterialized.Inc()
			logger.Info("exercises materialized", zap.String("workout_id", workout.ID.Hex()), zap.Int("count", len(exercises)))
		}
	}

	return &DailyWorkout{
		Workout:      *workout,
		TemplateID:   templateID,
		TemplateName: template.Name,
		Exercises:    exercises,
	}, nil
}

func (s *workoutService) materializeExercises(ctx context.Context, workoutID, templateID primitive.ObjectID) ([]domain.Exercise, error) {
	templates, err := s.templateExerciseRepo.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("load template exercises: %w", err)
	}
	exercises := domain.MaterializeExercises(workoutID, templates)
	if len(exercises) == 0 {
		return exercises, nil
	}
	created, err := s.exerciseRepo.CreateMany(ctx, exercises)
	if err != nil {
		return nil, fmt.Errorf("create exercises: %w", err)
	}
	return created, nil
}

// cleanupRestDay deletes a workout that exists on a day with no scheduled template.
func (s *workoutService) cleanupRestDay(ctx context.Context, logger *zap.Logger, userID primitive.ObjectID, day string) error {
	workout, err := s.workoutRepo.GetByDate(ctx, userID, day)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return fmt.Errorf("load workout: %w", err)
	}
	if err := s.exerciseRepo.DeleteByWorkout(ctx, workout.ID); err != nil {
		return fmt.Errorf("delete rest day exercises: %w", err)
	}
	if err := s.workoutRepo.Delete(ctx, workout.ID); err != nil && !isNotFound(err) {
		return fmt.Errorf("delete rest day workout: %w", err)
	}
	s.metrics.CounterRestDayCleanups.Inc()
	logger.Info("rest day workout removed", zap.String("workout_id", workout.ID.Hex()))
	return nil
}

func (s *workoutService) Today(ctx context.Context, userID primitive.ObjectID) (*TodayView, error) {
	today := s.cal.today()
	daily, err := s.Materialize(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	view := &TodayView{
		Date:         domain.FormatDate(today),
		DayOfWeek:    domain.NormalizeWeekday(today.Weekday()),
		RestDay:      daily == nil,
		TemplateName: RestDayName,
	}
	if daily != nil {
		view.TemplateName = daily.TemplateName
		view.Session = domain.NewWorkoutSession(daily.Workout, daily.Exercises)
		view.AllCompleted = len(daily.Exercises) > 0 && view.Session.AllDone()
	}

	completed, err := s.workoutRepo.CountCompleted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count completed workouts: %w", err)
	}
	streak, err := loadStreak(ctx, s.streakRepo, userID)
	if err != nil {
		return nil, err
	}
	view.Stats = WorkoutStats{
		CompletedWorkouts: completed,
		CurrentStreak:     streak.CurrentStreak,
		LongestStreak:     streak.LongestStreak,
	}
	return view, nil
}

func (s *workoutService) Finalize(ctx context.Context, userID primitive.ObjectID, updates []ExerciseUpdate) (*FinalizeResult, error) {
	today := s.cal.todayString()
	logger := s.logger.With(zap.String("user_id", userID.Hex()), zap.String("date", today))

	workout, err := s.workoutRepo.GetByDate(ctx, userID, today)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNoWorkoutToday
		}
		return nil, fmt.Errorf("load workout: %w", err)
	}
	exercises, err := s.exerciseRepo.ListByWorkout(ctx, workout.ID)
	if err != nil {
		return nil, fmt.Errorf("load exercises: %w", err)
	}

	session := domain.NewWorkoutSession(*workout, exercises)
	for _, update := range updates {
		if update.Done != nil {
			if err := session.SetExerciseField(update.ExerciseID, domain.FieldDone, *update.Done); err != nil {
				return nil, err
			}
		}
		if update.NewWeight != nil {
			if err := session.SetExerciseField(update.ExerciseID, domain.FieldNewWeight, update.NewWeight); err != nil {
				return nil, err
			}
		}
	}

	// Writes are sequential and not atomic; every failure is reported together.
	var writeErr error
	for _, ex := range session.Exercises {
		if err := s.exerciseRepo.UpdateProgress(ctx, ex.ID, ex.Done, ex.FinalWeight()); err != nil {
			writeErr = multierr.Append(writeErr, fmt.Errorf("save exercise %s: %w", ex.ID.Hex(), err))
		}
	}
	if writeErr != nil {
		logger.Error("saving exercises failed", zap.String("workout_id", workout.ID.Hex()), zap.Error(writeErr))
		return nil, writeErr
	}

	completed := session.AllDone()
	if err := s.workoutRepo.SetCompleted(ctx, workout.ID, completed); err != nil {
		return nil, fmt.Errorf("save workout completion: %w", err)
	}
	s.metrics.CounterWorkoutsFinalized.WithLabelValues(strconv.FormatBool(completed)).Inc()

	streak, err := loadStreak(ctx, s.streakRepo, userID)
	if err != nil {
		return nil, err
	}
	result := &FinalizeResult{Completed: completed}
	if completed {
		result.StreakIncremented = streak.RecordCompletion(today)
		if err := s.streakRepo.Upsert(ctx, streak); err != nil {
			return nil, fmt.Errorf("save streak: %w", err)
		}
		if result.StreakIncremented {
			s.metrics.CounterStreakIncrements.Inc()
		}
	}
	result.Streak = *streak

	logger.Info("workout finalized",
		zap.String("workout_id", workout.ID.Hex()),
		zap.Bool("completed", completed),
		zap.Int("done", session.DoneCount()),
		zap.Int("current_streak", streak.CurrentStreak),
	)
	return result, nil
}

// loadStreak returns the user's streak, or a zero streak when none is stored yet.
func loadStreak(ctx context.Context, repo repository.StreakRepository, userID primitive.ObjectID) (*domain.Streak, error) {
	streak, err := repo.GetByUser(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return &domain.Streak{UserID: userID}, nil
		}
		return nil, fmt.Errorf("load streak: %w", err)
	}
	return streak, nil
}
