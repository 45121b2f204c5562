package service

import (
	"context"
	"fmt"

	"github.com/arthurcerqueirm/gym-app/internal/domain"
	"github.com/arthurcerqueirm/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// NewUser is an account created from the admin screen.
type NewUser struct {
	Name     string
	Email    string
	Password string
	IsAdmin  bool
}

// AdminService manages accounts. Every call checks that actorID is currently an admin.
type AdminService interface {
	ListUsers(ctx context.Context, actorID primitive.ObjectID) ([]domain.User, error)
	CountUsers(ctx context.Context, actorID primitive.ObjectID) (int64, error)
	CreateUser(ctx context.Context, actorID primitive.ObjectID, input NewUser) (*domain.User, error)
	// DeleteUser removes the account and all of its data. The owner cannot be deleted.
	DeleteUser(ctx context.Context, actorID, targetID primitive.ObjectID) error
	// ToggleAdmin flips the admin flag and returns the new value. The owner cannot be demoted.
	ToggleAdmin(ctx context.Context, actorID, targetID primitive.ObjectID) (bool, error)
	ChangePassword(ctx context.Context, actorID, targetID primitive.ObjectID, newPassword string) error
}

type adminService struct {
	repos      repository.Repositories
	ownerEmail string
	logger     *zap.Logger
}

// NewAdminService creates a new instance of adminService.
func NewAdminService(repos repository.Repositories, ownerEmail string, logger *zap.Logger) AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &adminService{
		repos:      repos,
		ownerEmail: normalizeEmail(ownerEmail),
		logger:     logger,
	}
}

// requireAdmin reads the actor from storage since token claims may be stale.
func (s *adminService) requireAdmin(ctx context.Context, actorID primitive.ObjectID) error {
	actor, err := s.repos.Users.GetByID(ctx, actorID)
	if err != nil {
		if isNotFound(err) {
			return ErrAdminRequired
		}
		return fmt.Errorf("load actor: %w", err)
	}
	if !actor.IsAdmin {
		return ErrAdminRequired
	}
	return nil
}

func (s *adminService) target(ctx context.Context, targetID primitive.ObjectID) (*domain.User, error) {
	user, err := s.repos.Users.GetByID(ctx, targetID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *adminService) isOwner(user *domain.User) bool {
	return s.ownerEmail != "" && normalizeEmail(user.Email) == s.ownerEmail
}

func (s *adminService) ListUsers(ctx context.Context, actorID primitive.ObjectID) ([]domain.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *adminService) CountUsers(ctx context.Context, actorID primitive.ObjectID) (int64, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return 0, err
	}
	count, err := s.repos.Users.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (s *adminService) CreateUser(ctx context.Context, actorID primitive.ObjectID, input NewUser) (*domain.User, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	user, err := createAccount(ctx, s.repos.Users, input.Name, input.Email, input.Password, input.IsAdmin)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user created by admin",
		zap.String("actor_id", actorID.Hex()),
		zap.String("user_id", user.ID.Hex()),
		zap.Bool("admin", user.IsAdmin),
	)
	return user, nil
}

func (s *adminService) DeleteUser(ctx context.Context, actorID, targetID primitive.ObjectID) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	user, err := s.target(ctx, targetID)
	if err != nil {
		return err
	}
	if s.isOwner(user) {
		return ErrOwnerProtected
	}

	if err := s.deleteUserData(ctx, targetID); err != nil {
		s.logger.Error("user data cascade failed", zap.String("user_id", targetID.Hex()), zap.Error(err))
		return err
	}
	if err := s.repos.Users.Delete(ctx, targetID); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info("user deleted", zap.String("actor_id", actorID.Hex()), zap.String("user_id", targetID.Hex()))
	return nil
}

// deleteUserData removes everything owned by userID. Children go before their parents so
// a retry after a partial failure can still find them.
func (s *adminService) deleteUserData(ctx context.Context, userID primitive.ObjectID) error {
	var errs error

	templates, err := s.repos.Templates.ListByUser(ctx, userID)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("list templates: %w", err))
	} else {
		ids := make([]primitive.ObjectID, len(templates))
		for i, t := range templates {
			ids[i] = t.ID
		}
		if err := s.repos.TemplateExercises.DeleteByTemplates(ctx, ids); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete template exercises: %w", err))
		} else if err := s.repos.Templates.DeleteByUser(ctx, userID); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete templates: %w", err))
		}
	}

	if err := s.repos.Schedule.DeleteByUser(ctx, userID); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete schedule: %w", err))
	}

	workouts, err := s.repos.Workouts.ListByUser(ctx, userID)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("list workouts: %w", err))
	} else {
		ids := make([]primitive.ObjectID, len(workouts))
		for i, w := range workouts {
			ids[i] = w.ID
		}
		if err := s.repos.Exercises.DeleteByWorkouts(ctx, ids); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete exercises: %w", err))
		} else if err := s.repos.Workouts.DeleteByUser(ctx, userID); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete workouts: %w", err))
		}
	}

	if err := s.repos.Streaks.DeleteByUser(ctx, userID); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete streak: %w", err))
	}
	if err := s.repos.BodyMetrics.DeleteByUser(ctx, userID); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete body metrics: %w", err))
	}
	if err := s.repos.Themes.DeleteByUser(ctx, userID); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete theme: %w", err))
	}
	return errs
}

func (s *adminService) ToggleAdmin(ctx context.Context, actorID, targetID primitive.ObjectID) (bool, error) {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return false, err
	}
	user, err := s.target(ctx, targetID)
	if err != nil {
		return false, err
	}
	next := !user.IsAdmin
	if !next && s.isOwner(user) {
		return false, ErrOwnerProtected
	}
	if err := s.repos.Users.SetAdmin(ctx, targetID, next); err != nil {
		return false, fmt.Errorf("update admin flag: %w", err)
	}
	s.logger.Info("admin flag changed", zap.String("actor_id", actorID.Hex()), zap.String("user_id", targetID.Hex()), zap.Bool("admin", next))
	return next, nil
}

func (s *adminService) ChangePassword(ctx context.Context, actorID, targetID primitive.ObjectID, newPassword string) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if _, err := s.target(ctx, targetID); err != nil {
		return err
	}
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repos.Users.SetPasswordHash(ctx, targetID, hashed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.logger.Info("password changed by admin", zap.String("actor_id", actorID.Hex()), zap.String("user_id", targetID.Hex()))
	return nil
}
