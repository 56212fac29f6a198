package service

import (
	"context"
	"strconv"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

const (
	defaultFeedLimit = 10
	maxFeedLimit     = 50
)

// FeedService assembles a viewer's home timeline from their own posts and
// the posts of everyone they follow.
type FeedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
}

type GetFeedInput struct {
	ViewerID uint
	// Cursor is the id of the last post of the previous page, as returned
	// in NextCursor. Empty means the first page.
	Cursor string
	Limit  int
}

// FeedPage is one page of the timeline. NextCursor is set only when more
// posts exist past this page; the terminal page carries an explicit null.
type FeedPage struct {
	Items      []*models.Post `json:"items"`
	NextCursor *string        `json:"next_cursor"`
	HasNext    bool           `json:"has_next"`
}

func NewFeedService(postRepo repository.PostRepository, followRepo repository.FollowRepository) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		followRepo: followRepo,
	}
}

// GetFeed returns posts authored by the viewer and their followees, newest
// first. Pagination is keyset-based: the cursor pins the page boundary so
// new posts arriving between requests never shift or duplicate results.
func (s *FeedService) GetFeed(ctx context.Context, in GetFeedInput) (*FeedPage, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	var anchor *repository.FeedAnchor
	page := "first"
	if in.Cursor != "" {
		page = "subsequent"
		cursorID, err := strconv.ParseUint(in.Cursor, 10, 64)
		if err != nil || cursorID == 0 {
			return nil, models.NewValidationError("Invalid cursor")
		}
		anchor, err = s.postRepo.GetFeedAnchor(ctx, uint(cursorID))
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, models.NewValidationError("Invalid cursor")
			}
			return nil, models.NewInternalError(err)
		}
	}
	observability.FeedRequestsTotal.WithLabelValues(page).Inc()

	followingIDs, err := s.followRepo.GetFollowingIDs(ctx, in.ViewerID)
	if err != nil {
		return nil, err
	}
	authorIDs := append(followingIDs, in.ViewerID)

	// Fetch one past the page size to learn whether another page exists
	// without a second query.
	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, anchor, limit+1, in.ViewerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	pageResult := &FeedPage{Items: posts}
	if len(posts) > limit {
		pageResult.Items = posts[:limit]
		pageResult.HasNext = true
		cursor := strconv.FormatUint(uint64(pageResult.Items[limit-1].ID), 10)
		pageResult.NextCursor = &cursor
	}
	if pageResult.Items == nil {
		pageResult.Items = []*models.Post{}
	}

	return pageResult, nil
}
