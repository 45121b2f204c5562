package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"
	"github.com/arthurcerqueirm/gym-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const csvContentType = "text/csv"

// ExportResult holds download links for one history export.
type ExportResult struct {
	WorkoutsURL string    `json:"workoutsUrl"`
	MetricsURL  string    `json:"metricsUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ExportService writes a user's history to object storage.
type ExportService interface {
	ExportHistory(ctx context.Context, userID primitive.ObjectID) (*ExportResult, error)
}

type exportService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	metricRepo   repository.BodyMetricRepository
	files        storage.FileStorage
	now          Clock
	logger       *zap.Logger
}

// NewExportService creates a new instance of exportService. A nil files disables exports.
func NewExportService(repos repository.Repositories, files storage.FileStorage, clock Clock, logger *zap.Logger) ExportService {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &exportService{
		workoutRepo:  repos.Workouts,
		exerciseRepo: repos.Exercises,
		metricRepo:   repos.BodyMetrics,
		files:        files,
		now:          clock,
		logger:       logger,
	}
}

func (s *exportService) ExportHistory(ctx context.Context, userID primitive.ObjectID) (*ExportResult, error) {
	if s.files == nil {
		return nil, ErrExportsDisabled
	}

	workoutsCSV, err := s.workoutsCSV(ctx, userID)
	if err != nil {
		return nil, err
	}
	metricsCSV, err := s.metricsCSV(ctx, userID)
	if err != nil {
		return nil, err
	}

	prefix := path.Join("exports", userID.Hex(), uuid.NewString())
	workoutsKey := path.Join(prefix, "workouts.csv")
	metricsKey := path.Join(prefix, "body_metrics.csv")

	if err := s.files.PutObject(ctx, workoutsKey, csvContentType, workoutsCSV); err != nil {
		return nil, fmt.Errorf("upload workouts export: %w", err)
	}
	if err := s.files.PutObject(ctx, metricsKey, csvContentType, metricsCSV); err != nil {
		s.cleanup(ctx, workoutsKey)
		return nil, fmt.Errorf("upload metrics export: %w", err)
	}

	workoutsURL, err := s.files.GeneratePresignedDownloadURL(ctx, workoutsKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.cleanup(ctx, workoutsKey, metricsKey)
		return nil, fmt.Errorf("presign workouts export: %w", err)
	}
	metricsURL, err := s.files.GeneratePresignedDownloadURL(ctx, metricsKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		s.cleanup(ctx, workoutsKey, metricsKey)
		return nil, fmt.Errorf("presign metrics export: %w", err)
	}

	s.logger.Info("history exported", zap.String("user_id", userID.Hex()), zap.String("prefix", prefix))
	return &ExportResult{
		WorkoutsURL: workoutsURL,
		MetricsURL:  metricsURL,
		ExpiresAt:   s.now().Add(storage.DefaultPresignedURLExpiry).UTC(),
	}, nil
}

func (s *exportService) cleanup(ctx context.Context, keys ...string) {
	var errs error
	for _, key := range keys {
		errs = multierr.Append(errs, s.files.DeleteObject(ctx, key))
	}
	if errs != nil {
		s.logger.Warn("failed to clean up partial export", zap.Strings("keys", keys), zap.Error(errs))
	}
}

// workoutsCSV writes one row per exercise. Workouts without exercises get a single row with empty exercise columns.
func (s *exportService) workoutsCSV(ctx context.Context, userID primitive.ObjectID) ([]byte, error) {
	workouts, err := s.workoutRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	ids := make([]primitive.ObjectID, len(workouts))
	for i, w := range workouts {
		ids[i] = w.ID
	}
	var exercises []domain.Exercise
	if len(ids) > 0 {
		exercises, err = s.exerciseRepo.ListByWorkouts(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("list exercises: %w", err)
		}
	}
	byWorkout := make(map[primitive.ObjectID][]domain.Exercise, len(workouts))
	for _, ex := range exercises {
		byWorkout[ex.WorkoutID] = append(byWorkout[ex.WorkoutID], ex)
	}

	rows := [][]string{{"date", "completed", "exercise", "sets", "reps", "weight", "done"}}
	for _, w := range workouts {
		completed := strconv.FormatBool(w.Completed)
		list := byWorkout[w.ID]
		if len(list) == 0 {
			rows = append(rows, []string{w.Date, completed, "", "", "", "", ""})
			continue
		}
		for _, ex := range list {
			rows = append(rows, []string{
				w.Date,
				completed,
				ex.Name,
				strconv.Itoa(ex.Sets),
				strconv.Itoa(ex.Reps),
				formatWeight(ex.LastWeight),
				strconv.FormatBool(ex.Done),
			})
		}
	}
	return encodeCSV(rows)
}

func (s *exportService) metricsCSV(ctx context.Context, userID primitive.ObjectID) ([]byte, error) {
	metrics, err := s.metricRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list body metrics: %w", err)
	}
	domain.SortMetricsByDate(metrics)

	rows := [][]string{{"date", "weight", "muscle_mass", "fat_percentage", "height"}}
	for _, m := range metrics {
		rows = append(rows, []string{
			m.Date,
			strconv.FormatFloat(m.Weight, 'f', -1, 64),
			strconv.FormatFloat(m.MuscleMass, 'f', -1, 64),
			strconv.FormatFloat(m.FatPercentage, 'f', -1, 64),
			strconv.FormatFloat(m.Height, 'f', -1, 64),
		})
	}
	return encodeCSV(rows)
}

func formatWeight(w *float64) string {
	if w == nil {
		return ""
	}
	return strconv.FormatFloat(*w, 'f', -1, 64)
}

func encodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}
