package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type templateRepository struct {
	s *Store
}

func (r *templateRepository) Create(_ context.Context, template *domain.WorkoutTemplate) (primitive.ObjectID, error) {
	if template.UserID.IsZero() || template.Name == "" {
		return primitive.NilObjectID, errors.New("template requires userId and name")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	template.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	stored := *template
	stored.Exercises = nil
	r.s.templates = append(r.s.templates, &stored)
	return template.ID, nil
}

func (r *templateRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, template := range r.s.templates {
		if template.ID == id {
			found := *template
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *templateRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	templates := []domain.WorkoutTemplate{}
	for _, template := range r.s.templates {
		if template.UserID == userID {
			templates = append(templates, *template)
		}
	}
	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
	return templates, nil
}

func (r *templateRepository) Delete(_ context.Context, id, userID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int
	r.s.templates, removed = deleteWhere(r.s.templates, func(t *domain.WorkoutTemplate) bool {
		return t.ID == id && t.UserID == userID
	})
	if removed == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *templateRepository) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.templates, _ = deleteWhere(r.s.templates, func(t *domain.WorkoutTemplate) bool { return t.UserID == userID })
	return nil
}

type templateExerciseRepository struct {
	s *Store
}

func (r *templateExerciseRepository) Create(_ context.Context, exercise *domain.ExerciseTemplate) (primitive.ObjectID, error) {
	if exercise.TemplateID.IsZero() || exercise.Name == "" {
		return primitive.NilObjectID, errors.New("template exercise requires templateId and name")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()

	stored := *exercise
	stored.InitialWeight = copyFloat(exercise.InitialWeight)
	r.s.templateExercises = append(r.s.templateExercises, &stored)
	return exercise.ID, nil
}

func (r *templateExerciseRepository) ListByTemplate(_ context.Context, templateID primitive.ObjectID) ([]domain.ExerciseTemplate, error) {
	return r.list(func(e *domain.ExerciseTemplate) bool { return e.TemplateID == templateID }), nil
}

func (r *templateExerciseRepository) ListByTemplates(_ context.Context, templateIDs []primitive.ObjectID) ([]domain.ExerciseTemplate, error) {
	return r.list(func(e *domain.ExerciseTemplate) bool { return containsID(templateIDs, e.TemplateID) }), nil
}

func (r *templateExerciseRepository) list(match func(*domain.ExerciseTemplate) bool) []domain.ExerciseTemplate {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	exercises := []domain.ExerciseTemplate{}
	for _, exercise := range r.s.templateExercises {
		if match(exercise) {
			found := *exercise
			found.InitialWeight = copyFloat(exercise.InitialWeight)
			exercises = append(exercises, found)
		}
	}
	domain.SortExerciseTemplates(exercises)
	return exercises
}

func (r *templateExerciseRepository) CountByTemplate(_ context.Context, templateID primitive.ObjectID) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, exercise := range r.s.templateExercises {
		if exercise.TemplateID == templateID {
			count++
		}
	}
	return count, nil
}

func (r *templateExerciseRepository) Delete(_ context.Context, id, templateID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int
	r.s.templateExercises, removed = deleteWhere(r.s.templateExercises, func(e *domain.ExerciseTemplate) bool {
		return e.ID == id && e.TemplateID == templateID
	})
	if removed == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *templateExerciseRepository) DeleteByTemplates(_ context.Context, templateIDs []primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.templateExercises, _ = deleteWhere(r.s.templateExercises, func(e *domain.ExerciseTemplate) bool {
		return containsID(templateIDs, e.TemplateID)
	})
	return nil
}

type scheduleRepository struct {
	s *Store
}

func (r *scheduleRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.ScheduleEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	entries := []domain.ScheduleEntry{}
	for _, entry := range r.s.schedule {
		if entry.UserID == userID {
			entries = append(entries, *entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].DayOfWeek < entries[j].DayOfWeek })
	return entries, nil
}

func (r *scheduleRepository) Upsert(_ context.Context, userID primitive.ObjectID, dayOfWeek int, templateID primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now().UTC()
	for _, entry := range r.s.schedule {
		if entry.UserID == userID && entry.DayOfWeek == dayOfWeek {
			entry.TemplateID = templateID
			entry.UpdatedAt = now
			return nil
		}
	}
	r.s.schedule = append(r.s.schedule, &domain.ScheduleEntry{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		DayOfWeek:  dayOfWeek,
		TemplateID: templateID,
		UpdatedAt:  now,
	})
	return nil
}

func (r *scheduleRepository) DeleteDay(_ context.Context, userID primitive.ObjectID, dayOfWeek int) error {
	return r.deleteWhere(func(e *domain.ScheduleEntry) bool {
		return e.UserID == userID && e.DayOfWeek == dayOfWeek
	})
}

func (r *scheduleRepository) ClearTemplate(_ context.Context, userID, templateID primitive.ObjectID) error {
	return r.deleteWhere(func(e *domain.ScheduleEntry) bool {
		return e.UserID == userID && e.TemplateID == templateID
	})
}

func (r *scheduleRepository) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	return r.deleteWhere(func(e *domain.ScheduleEntry) bool { return e.UserID == userID })
}

func (r *scheduleRepository) deleteWhere(drop func(*domain.ScheduleEntry) bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.schedule, _ = deleteWhere(r.s.schedule, drop)
	return nil
}
