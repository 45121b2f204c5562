package service

import (
	"context"
	"fmt"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleDay is one day of the weekly plan. TemplateID is nil on rest days.
type ScheduleDay struct {
	DayOfWeek    int                 `json:"dayOfWeek"`
	TemplateID   *primitive.ObjectID `json:"templateId"`
	TemplateName string              `json:"templateName,omitempty"`
}

// ScheduleService reads and edits the weekly template assignment.
type ScheduleService interface {
	// GetSchedule returns exactly seven days, Monday first.
	GetSchedule(ctx context.Context, userID primitive.ObjectID) ([]ScheduleDay, error)
	// SetDay assigns a template to a day, or makes it a rest day when templateID is nil.
	SetDay(ctx context.Context, userID primitive.ObjectID, dayOfWeek int, templateID *primitive.ObjectID) error
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	templateRepo repository.TemplateRepository
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(scheduleRepo repository.ScheduleRepository, templateRepo repository.TemplateRepository) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		templateRepo: templateRepo,
	}
}

func (s *scheduleService) GetSchedule(ctx context.Context, userID primitive.ObjectID) ([]ScheduleDay, error) {
	entries, err := s.scheduleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	templates, err := s.templateRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	names := make(map[primitive.ObjectID]string, len(templates))
	for _, t := range templates {
		names[t.ID] = t.Name
	}

	weekly := domain.NewWeeklySchedule(entries)
	days := make([]ScheduleDay, domain.DaysPerWeek)
	for day := range days {
		days[day].DayOfWeek = day
		if templateID, ok := weekly[day]; ok {
			id := templateID
			days[day].TemplateID = &id
			days[day].TemplateName = names[templateID]
		}
	}
	return days, nil
}

func (s *scheduleService) SetDay(ctx context.Context, userID primitive.ObjectID, dayOfWeek int, templateID *primitive.ObjectID) error {
	if !domain.ValidDayOfWeek(dayOfWeek) {
		return invalidf("day of week must be between 0 (Monday) and 6 (Sunday)")
	}

	if templateID == nil || templateID.IsZero() {
		if err := s.scheduleRepo.DeleteDay(ctx, userID, dayOfWeek); err != nil {
			return fmt.Errorf("clear schedule day: %w", err)
		}
		return nil
	}

	template, err := s.templateRepo.GetByID(ctx, *templateID)
	if err != nil {
		if isNotFound(err) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("load template: %w", err)
	}
	if template.UserID != userID {
		return ErrTemplateAccessDenied
	}

	if err := s.scheduleRepo.Upsert(ctx, userID, dayOfWeek, *templateID); err != nil {
		return fmt.Errorf("set schedule day: %w", err)
	}
	return nil
}
