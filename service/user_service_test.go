package service

import (
	"context"
	"testing"

	"levelbot/events"
	"levelbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_GetOrCreateUser_Existing(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockUserRepository)
	publisher := &recordingPublisher{}
	factory, _ := newMockUow(mockRepo, publisher)
	svc := NewUserService(factory)

	existing := &models.User{Username: "alice", XP: 500, Level: 2, Coins: 40}
	mockRepo.On("GetByUsername", ctx, "alice").Return(existing, nil)

	user, err := svc.GetOrCreateUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, existing, user)
	assert.Empty(t, publisher.Events())

	mockRepo.AssertExpectations(t)
}

func TestUserService_GetOrCreateUser_CreatesZeroed(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockUserRepository)
	publisher := &recordingPublisher{}
	factory, _ := newMockUow(mockRepo, publisher)
	svc := NewUserService(factory)

	created := &models.User{Username: "bob"}
	mockRepo.On("GetByUsername", ctx, "bob").Return(nil, nil)
	mockRepo.On("Create", ctx, "bob").Return(created, nil)

	user, err := svc.GetOrCreateUser(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(0), user.XP)
	assert.Equal(t, int64(0), user.Level)
	assert.Equal(t, int64(0), user.Coins)

	emitted := publisher.Events()
	require.Len(t, emitted, 1)
	assert.Equal(t, events.UserCreatedEvent{Username: "bob"}, emitted[0])
}

func TestUserService_GetOrCreateUser_DuplicateIsNoOp(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockUserRepository)
	publisher := &recordingPublisher{}
	factory, _ := newMockUow(mockRepo, publisher)
	svc := NewUserService(factory)

	existing := &models.User{Username: "carol", XP: 9}

	// The row appears between the read and the insert; the duplicate is
	// swallowed and the existing row returned.
	mockRepo.On("GetByUsername", ctx, "carol").Return(nil, nil).Once()
	mockRepo.On("Create", ctx, "carol").Return(nil, models.ErrDuplicateUser)
	mockRepo.On("GetByUsername", ctx, "carol").Return(existing, nil).Once()

	user, err := svc.GetOrCreateUser(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, existing, user)
	assert.Empty(t, publisher.Events())
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockUserRepository)
	factory, _ := newMockUow(mockRepo, &recordingPublisher{})
	svc := NewUserService(factory)

	mockRepo.On("GetByUsername", ctx, "ghost").Return(nil, nil)

	_, err := svc.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserService_Leaderboard(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockUserRepository)
	factory, _ := newMockUow(mockRepo, &recordingPublisher{})
	svc := NewUserService(factory)

	top := []*models.User{
		{Username: "alice", XP: 900},
		{Username: "bob", XP: 400},
	}
	mockRepo.On("TopByXP", ctx, 10).Return(top, nil)

	users, err := svc.Leaderboard(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, top, users)
}

func TestUserService_TotalUsers(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockUserRepository)
	factory, _ := newMockUow(mockRepo, &recordingPublisher{})
	svc := NewUserService(factory)

	mockRepo.On("Count", ctx).Return(int64(7), nil)

	count, err := svc.TotalUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
