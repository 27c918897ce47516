package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/userdesk-server/internal/logger"
	"github.com/dtroode/userdesk-server/internal/model"
)

// User implements user record operations on top of a store.
type User struct {
	userStore model.UserStore
	logger    *logger.Logger
	timeout   time.Duration
	now       func() time.Time
}

// NewUser creates a User service. A positive timeout bounds every store call.
func NewUser(userStore model.UserStore, logger *logger.Logger, timeout time.Duration) *User {
	return &User{
		userStore: userStore,
		logger:    logger,
		timeout:   timeout,
		now:       time.Now,
	}
}

func (s *User) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *User) ListUsers(ctx context.Context) ([]model.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	users, err := s.userStore.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// CreateUser stores a new record. The creation time is assigned here unless
// the caller supplied one.
func (s *User) CreateUser(ctx context.Context, in model.UserInput) (model.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user := model.User{
		Profile:   in.Profile,
		CreatedAt: in.CreatedAt,
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now().UTC()
	}

	id, err := s.userStore.Insert(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	user.StoreID = id

	s.logger.Debug("user created", "store_id", id)

	return user, nil
}

func (s *User) GetUser(ctx context.Context, storeID string) (model.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	user, err := s.userStore.FindOne(ctx, storeID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// UpdateUser overwrites the tracked fields. It returns model.ErrNotFound when
// no record matched; nothing is created in that case.
func (s *User) UpdateUser(ctx context.Context, storeID string, profile model.Profile) (model.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	matched, err := s.userStore.Replace(ctx, storeID, profile)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	if !matched {
		return model.User{}, model.ErrNotFound
	}

	s.logger.Debug("user updated", "store_id", storeID)

	return profile.WithStoreID(storeID), nil
}

// DeleteUser returns model.ErrNotFound when nothing was deleted.
func (s *User) DeleteUser(ctx context.Context, storeID string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	deleted, err := s.userStore.Remove(ctx, storeID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return model.ErrNotFound
	}

	s.logger.Debug("user deleted", "store_id", storeID)

	return nil
}

// Ping reports whether the store answers.
func (s *User) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.userStore.Ping(ctx)
}
