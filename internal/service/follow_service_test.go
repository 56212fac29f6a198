package service

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	var created *models.Follow
	followRepo := noopFollowRepo()
	followRepo.createFn = func(_ context.Context, follow *models.Follow) error {
		created = follow
		return nil
	}

	svc := NewFollowService(followRepo, noopUserRepo())
	follow, err := svc.Follow(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, created, follow)
	assert.Equal(t, uint(1), follow.FollowerID)
	assert.Equal(t, uint(2), follow.FolloweeID)
}

func TestFollowService_Follow_Self(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())

	_, err := svc.Follow(context.Background(), 1, 1)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestFollowService_Follow_UnknownUser(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewFollowService(noopFollowRepo(), userRepo)
	_, err := svc.Follow(context.Background(), 1, 99)

	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestFollowService_Follow_Duplicate(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.createFn = func(_ context.Context, _ *models.Follow) error {
		return models.NewConflictError("Already following this user")
	}

	svc := NewFollowService(followRepo, noopUserRepo())
	_, err := svc.Follow(context.Background(), 1, 2)

	assertAppErrorCode(t, err, "CONFLICT")
}

func TestFollowService_Unfollow_Idempotent(t *testing.T) {
	var deletions int
	followRepo := noopFollowRepo()
	followRepo.deleteFn = func(_ context.Context, followerID, followeeID uint) error {
		deletions++
		assert.Equal(t, uint(1), followerID)
		assert.Equal(t, uint(2), followeeID)
		return nil
	}

	svc := NewFollowService(followRepo, noopUserRepo())

	require.NoError(t, svc.Unfollow(context.Background(), 1, 2))
	require.NoError(t, svc.Unfollow(context.Background(), 1, 2))
	assert.Equal(t, 2, deletions)
}

func TestFollowService_Unfollow_Self(t *testing.T) {
	svc := NewFollowService(noopFollowRepo(), noopUserRepo())
	assertAppErrorCode(t, svc.Unfollow(context.Background(), 3, 3), "VALIDATION_ERROR")
}

func TestFollowService_IsFollowing(t *testing.T) {
	followRepo := noopFollowRepo()
	followRepo.existsFn = func(_ context.Context, followerID, followeeID uint) (bool, error) {
		return followerID == 1 && followeeID == 2, nil
	}

	svc := NewFollowService(followRepo, noopUserRepo())

	following, err := svc.IsFollowing(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, following)

	// The edge is directed.
	following, err = svc.IsFollowing(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowService_GetFollowers_UnknownUser(t *testing.T) {
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewFollowService(noopFollowRepo(), userRepo)
	_, err := svc.GetFollowers(context.Background(), 99, 20, 0)

	assertAppErrorCode(t, err, "NOT_FOUND")
}
