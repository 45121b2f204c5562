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

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("user email and password hash are required")
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == user.Email {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.s.users = append(r.s.users, &stored)
	return user.ID, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email == email {
			found := *user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user := r.find(id)
	if user == nil {
		return nil, repository.ErrNotFound
	}
	found := *user
	return &found, nil
}

// find must be called with the lock held.
func (r *userRepository) find(id primitive.ObjectID) *domain.User {
	for _, user := range r.s.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

func (r *userRepository) update(id primitive.ObjectID, apply func(*domain.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user := r.find(id)
	if user == nil {
		return repository.ErrNotFound
	}
	apply(user)
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *userRepository) UpdateProfile(_ context.Context, user *domain.User) error {
	return r.update(user.ID, func(stored *domain.User) {
		stored.Name = user.Name
		stored.Gender = user.Gender
		stored.Bio = user.Bio
		stored.DateOfBirth = user.DateOfBirth
	})
}

func (r *userRepository) SetAdmin(_ context.Context, id primitive.ObjectID, isAdmin bool) error {
	return r.update(id, func(stored *domain.User) { stored.IsAdmin = isAdmin })
}

func (r *userRepository) SetPasswordHash(_ context.Context, id primitive.ObjectID, hash string) error {
	return r.update(id, func(stored *domain.User) { stored.PasswordHash = hash })
}

func (r *userRepository) List(context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]domain.User, 0, len(r.s.users))
	for i := len(r.s.users) - 1; i >= 0; i-- {
		users = append(users, *r.s.users[i])
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *userRepository) Count(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r *userRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var removed int
	r.s.users, removed = deleteWhere(r.s.users, func(u *domain.User) bool { return u.ID == id })
	if removed == 0 {
		return repository.ErrNotFound
	}
	return nil
}
