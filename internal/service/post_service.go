package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/notifications"
	"ripple/internal/repository"
)

type PostService struct {
	postRepo   repository.PostRepository
	dispatcher Dispatcher
}

type CreatePostInput struct {
	UserID  uint
	Content string
}

type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Content string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository, dispatcher Dispatcher) *PostService {
	return &PostService{
		postRepo:   postRepo,
		dispatcher: dispatcher,
	}
}

const maxPostContentLen = 5000

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxPostContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	post := &models.Post{
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.GetPost(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx, limit, offset, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// UpdatePost edits a post's content. Only the author may edit; everyone else
// gets a forbidden error, while a missing post stays a not-found error so the
// two cases are distinguishable.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxPostContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.GetPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ToggleLike likes the post if the user has not liked it, and removes the
// like otherwise. Liking someone else's post notifies the author.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.GetPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if isLiked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, models.NewInternalError(err)
		}
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, models.NewInternalError(err)
		}
		dispatch(ctx, s.dispatcher, post.UserID, userID, models.NotificationKindLike, notifications.Ref{PostID: &postID})
	}

	return s.GetPost(ctx, postID, userID)
}
