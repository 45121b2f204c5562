package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProfileUpdate holds the editable profile fields.
type ProfileUpdate struct {
	Name        string
	Gender      string
	Bio         string
	DateOfBirth string // YYYY-MM-DD or empty
}

// MeasurementInput is one body measurement as entered by the user.
type MeasurementInput struct {
	Weight        float64
	MuscleMass    float64
	FatPercentage float64
	Height        float64
}

// ProfileService manages the user's profile and body measurements.
type ProfileService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.User, error)
	LogMeasurement(ctx context.Context, userID primitive.ObjectID, input MeasurementInput) (*domain.BodyMetric, error)
	// LatestMeasurement returns nil when nothing has been logged.
	LatestMeasurement(ctx context.Context, userID primitive.ObjectID) (*domain.BodyMetric, error)
}

type profileService struct {
	userRepo   repository.UserRepository
	metricRepo repository.BodyMetricRepository
	cal        calendar
	logger     *zap.Logger
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(
	userRepo repository.UserRepository,
	metricRepo repository.BodyMetricRepository,
	clock Clock,
	loc *time.Location,
	logger *zap.Logger,
) ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &profileService{
		userRepo:   userRepo,
		metricRepo: metricRepo,
		cal:        newCalendar(clock, loc),
		logger:     logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.User, error) {
	name := strings.TrimSpace(update.Name)
	if name == "" {
		return nil, invalidf("name is required")
	}
	dob := strings.TrimSpace(update.DateOfBirth)
	if dob != "" {
		if _, err := time.Parse(domain.DateLayout, dob); err != nil {
			return nil, invalidf("date of birth must be YYYY-MM-DD")
		}
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.Gender = strings.TrimSpace(update.Gender)
	user.Bio = strings.TrimSpace(update.Bio)
	user.DateOfBirth = dob

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

func (s *profileService) LogMeasurement(ctx context.Context, userID primitive.ObjectID, input MeasurementInput) (*domain.BodyMetric, error) {
	if input.Weight <= 0 || input.MuscleMass <= 0 || input.FatPercentage <= 0 || input.Height <= 0 {
		return nil, invalidf("weight, muscle mass, fat percentage and height must all be positive")
	}

	metric := &domain.BodyMetric{
		UserID:        userID,
		Date:          s.cal.todayString(),
		Weight:        input.Weight,
		MuscleMass:    input.MuscleMass,
		FatPercentage: input.FatPercentage,
		Height:        input.Height,
	}
	if _, err := s.metricRepo.Create(ctx, metric); err != nil {
		return nil, fmt.Errorf("save measurement: %w", err)
	}
	s.logger.Info("measurement logged", zap.String("user_id", userID.Hex()), zap.String("date", metric.Date))
	return metric, nil
}

func (s *profileService) LatestMeasurement(ctx context.Context, userID primitive.ObjectID) (*domain.BodyMetric, error) {
	metric, err := s.metricRepo.Latest(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load latest measurement: %w", err)
	}
	return metric, nil
}
