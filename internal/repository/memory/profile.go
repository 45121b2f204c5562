package memory

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type streakRepository struct {
	s *Store
}

func (r *streakRepository) GetByUser(_ context.Context, userID primitive.ObjectID) (*domain.Streak, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	streak, ok := r.s.streaks[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *streak
	found.LastWorkoutDate = copyString(streak.LastWorkoutDate)
	return &found, nil
}

func (r *streakRepository) Upsert(_ context.Context, streak *domain.Streak) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	streak.UpdatedAt = time.Now().UTC()
	stored := *streak
	stored.LastWorkoutDate = copyString(streak.LastWorkoutDate)
	if existing, ok := r.s.streaks[streak.UserID]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = primitive.NewObjectID()
	}
	r.s.streaks[streak.UserID] = &stored
	return nil
}

func (r *streakRepository) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.streaks, userID)
	return nil
}

type bodyMetricRepository struct {
	s *Store
}

func (r *bodyMetricRepository) Create(_ context.Context, metric *domain.BodyMetric) (primitive.ObjectID, error) {
	if metric.UserID.IsZero() || metric.Date == "" {
		return primitive.NilObjectID, errors.New("body metric requires userId and date")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	metric.ID = primitive.NewObjectID()
	metric.CreatedAt = time.Now().UTC()
	stored := *metric
	r.s.bodyMetrics = append(r.s.bodyMetrics, &stored)
	return metric.ID, nil
}

func (r *bodyMetricRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.BodyMetric, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	metrics := []domain.BodyMetric{}
	for _, metric := range r.s.bodyMetrics {
		if metric.UserID == userID {
			metrics = append(metrics, *metric)
		}
	}
	domain.SortMetricsByDate(metrics)
	return metrics, nil
}

func (r *bodyMetricRepository) Latest(ctx context.Context, userID primitive.ObjectID) (*domain.BodyMetric, error) {
	metrics, err := r.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		return nil, repository.ErrNotFound
	}
	latest := metrics[len(metrics)-1]
	return &latest, nil
}

func (r *bodyMetricRepository) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.bodyMetrics, _ = deleteWhere(r.s.bodyMetrics, func(m *domain.BodyMetric) bool { return m.UserID == userID })
	return nil
}

type themeRepository struct {
	s *Store
}

func (r *themeRepository) GetByUser(_ context.Context, userID primitive.ObjectID) (*domain.ThemePreference, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pref, ok := r.s.themes[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	found := *pref
	found.CustomColors = maps.Clone(pref.CustomColors)
	if found.CustomColors == nil {
		found.CustomColors = map[string]string{}
	}
	return &found, nil
}

func (r *themeRepository) Upsert(_ context.Context, pref *domain.ThemePreference) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	pref.UpdatedAt = time.Now().UTC()
	stored := *pref
	stored.CustomColors = maps.Clone(pref.CustomColors)
	if existing, ok := r.s.themes[pref.UserID]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = primitive.NewObjectID()
	}
	r.s.themes[pref.UserID] = &stored
	return nil
}

func (r *themeRepository) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.themes, userID)
	return nil
}
