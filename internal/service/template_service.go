package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ExerciseInput describes a new exercise for a template. Zero sets or reps take the defaults.
type ExerciseInput struct {
	Name          string
	Sets          int
	Reps          int
	InitialWeight *float64
}

// TemplateService manages a user's workout templates.
type TemplateService interface {
	CreateTemplate(ctx context.Context, userID primitive.ObjectID, name, description string) (*domain.WorkoutTemplate, error)
	ListTemplates(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
	AddExercise(ctx context.Context, userID, templateID primitive.ObjectID, input ExerciseInput) (*domain.ExerciseTemplate, error)
	DeleteExercise(ctx context.Context, userID, templateID, exerciseID primitive.ObjectID) error
	DeleteTemplate(ctx context.Context, userID, templateID primitive.ObjectID) error
}

type templateService struct {
	templateRepo repository.TemplateRepository
	exerciseRepo repository.TemplateExerciseRepository
	scheduleRepo repository.ScheduleRepository
	logger       *zap.Logger
}

// NewTemplateService creates a new instance of templateService.
func NewTemplateService(
	templateRepo repository.TemplateRepository,
	exerciseRepo repository.TemplateExerciseRepository,
	scheduleRepo repository.ScheduleRepository,
	logger *zap.Logger,
) TemplateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &templateService{
		templateRepo: templateRepo,
		exerciseRepo: exerciseRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

func (s *templateService) CreateTemplate(ctx context.Context, userID primitive.ObjectID, name, description string) (*domain.WorkoutTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("template name is required")
	}

	template := &domain.WorkoutTemplate{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(description),
		Exercises:   []domain.ExerciseTemplate{},
	}
	if _, err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return template, nil
}

// ListTemplates returns the user's templates ordered by name, each with its exercises in order.
func (s *templateService) ListTemplates(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	templates, err := s.templateRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	if len(templates) == 0 {
		return templates, nil
	}

	ids := make([]primitive.ObjectID, len(templates))
	for i, t := range templates {
		ids[i] = t.ID
	}
	exercises, err := s.exerciseRepo.ListByTemplates(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list template exercises: %w", err)
	}

	byTemplate := make(map[primitive.ObjectID][]domain.ExerciseTemplate, len(templates))
	for _, ex := range exercises {
		byTemplate[ex.TemplateID] = append(byTemplate[ex.TemplateID], ex)
	}
	for i := range templates {
		list := byTemplate[templates[i].ID]
		if list == nil {
			list = []domain.ExerciseTemplate{}
		}
		domain.SortExerciseTemplates(list)
		templates[i].Exercises = list
	}
	return templates, nil
}

// ownedTemplate loads a template and checks that userID owns it.
func (s *templateService) ownedTemplate(ctx context.Context, userID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.UserID != userID {
		return nil, ErrTemplateAccessDenied
	}
	return template, nil
}

// AddExercise appends an exercise after the template's current ones.
func (s *templateService) AddExercise(ctx context.Context, userID, templateID primitive.ObjectID, input ExerciseInput) (*domain.ExerciseTemplate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidf("exercise name is required")
	}
	if input.Sets < 0 || input.Reps < 0 {
		return nil, invalidf("sets and reps cannot be negative")
	}
	if _, err := s.ownedTemplate(ctx, userID, templateID); err != nil {
		return nil, err
	}

	count, err := s.exerciseRepo.CountByTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("count template exercises: %w", err)
	}

	exercise := &domain.ExerciseTemplate{
		TemplateID:    templateID,
		Name:          name,
		Sets:          input.Sets,
		Reps:          input.Reps,
		InitialWeight: input.InitialWeight,
		OrderIndex:    int(count) + 1,
	}
	if exercise.Sets == 0 {
		exercise.Sets = domain.DefaultSets
	}
	if exercise.Reps == 0 {
		exercise.Reps = domain.DefaultReps
	}

	if _, err := s.exerciseRepo.Create(ctx, exercise); err != nil {
		return nil, fmt.Errorf("create template exercise: %w", err)
	}
	return exercise, nil
}

func (s *templateService) DeleteExercise(ctx context.Context, userID, templateID, exerciseID primitive.ObjectID) error {
	if _, err := s.ownedTemplate(ctx, userID, templateID); err != nil {
		return err
	}
	if err := s.exerciseRepo.Delete(ctx, exerciseID, templateID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return fmt.Errorf("delete template exercise: %w", err)
	}
	return nil
}

// DeleteTemplate removes the template, its exercises and every schedule day pointing at it.
// Workouts already materialized from it are kept.
func (s *templateService) DeleteTemplate(ctx context.Context, userID, templateID primitive.ObjectID) error {
	if _, err := s.ownedTemplate(ctx, userID, templateID); err != nil {
		return err
	}
	if err := s.scheduleRepo.ClearTemplate(ctx, userID, templateID); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	if err := s.exerciseRepo.DeleteByTemplates(ctx, []primitive.ObjectID{templateID}); err != nil {
		return fmt.Errorf("delete template exercises: %w", err)
	}
	if err := s.templateRepo.Delete(ctx, templateID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("delete template: %w", err)
	}

	s.logger.Info("template deleted", zap.String("user_id", userID.Hex()), zap.String("template_id", templateID.Hex()))
	return nil
}
