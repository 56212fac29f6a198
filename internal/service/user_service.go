package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

type UpdateProfileInput struct {
	UserID   uint
	Username string
	Bio      string
	Avatar   string
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SearchUsers returns users whose username contains query, case-insensitively.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	return s.userRepo.Search(ctx, query, limit, offset)
}

// GetUserByID returns a user's profile with their follower and following counts.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.fillFollowCounts(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserWithPosts returns a user's profile including their most recent posts.
func (s *UserService) GetUserWithPosts(ctx context.Context, id uint, postLimit int) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithPosts(ctx, id, postLimit)
	if err != nil {
		return nil, err
	}
	if err := s.fillFollowCounts(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500

	if in.Username != "" {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.GetUserByID(ctx, user.ID)
}

func (s *UserService) fillFollowCounts(ctx context.Context, user *models.User) error {
	followers, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return err
	}
	following, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return err
	}
	user.FollowersCount = int(followers)
	user.FollowingCount = int(following)
	return nil
}
