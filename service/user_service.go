package service

import (
	"context"
	"errors"
	"fmt"

	"levelbot/events"
	"levelbot/models"

	log "github.com/sirupsen/logrus"
)

// userService implements the UserService interface
type userService struct {
	uowFactory UnitOfWorkFactory
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) UserService {
	return &userService{uowFactory: uowFactory}
}

// GetOrCreateUser retrieves an existing user or creates a fresh ledger
// entry with zeroed counters. A duplicate create (join race) is not an
// error: the existing row is returned.
func (s *userService) GetOrCreateUser(ctx context.Context, username string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if user != nil {
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit unit of work: %w", err)
		}
		return user, nil
	}

	user, err = uow.UserRepository().Create(ctx, username)
	if errors.Is(err, models.ErrDuplicateUser) {
		// Lost the creation race; the row exists now.
		user, err = uow.UserRepository().GetByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("failed to get user after duplicate create: %w", err)
		}
		if user == nil {
			return nil, models.ErrUserNotFound
		}
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit unit of work: %w", err)
		}
		return user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{Username: username})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}

	log.WithField("username", username).Info("Created new ledger entry")
	return user, nil
}

// GetUser retrieves a user, surfacing models.ErrUserNotFound rather than a
// nil row so callers never dereference a missing ledger entry.
func (s *userService) GetUser(ctx context.Context, username string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return user, nil
}

// TotalUsers returns the number of ledger entries.
func (s *userService) TotalUsers(ctx context.Context) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback()

	count, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return count, nil
}

// Leaderboard returns the top n users by xp.
func (s *userService) Leaderboard(ctx context.Context, n int) ([]*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer uow.Rollback()

	users, err := uow.UserRepository().TopByXP(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return users, nil
}
