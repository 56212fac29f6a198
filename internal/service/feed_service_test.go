package service

import (
	"context"
	"testing"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func feedPosts(ids ...uint) []*models.Post {
	posts := make([]*models.Post, len(ids))
	for i, id := range ids {
		posts[i] = &models.Post{ID: id, UserID: 1}
	}
	return posts
}

func TestFeedService_GetFeed_AuthorSetIncludesViewer(t *testing.T) {
	var gotAuthors []uint
	postRepo := noopPostRepo()
	postRepo.listByAuthorsFn = func(_ context.Context, authorIDs []uint, _ *repository.FeedAnchor, _ int, _ uint) ([]*models.Post, error) {
		gotAuthors = authorIDs
		return nil, nil
	}
	followRepo := noopFollowRepo()
	followRepo.getFollowingIDsFn = func(_ context.Context, _ uint) ([]uint, error) {
		return []uint{2, 3}, nil
	}

	svc := NewFeedService(postRepo, followRepo)
	page, err := svc.GetFeed(context.Background(), GetFeedInput{ViewerID: 1})

	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{1, 2, 3}, gotAuthors)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
	assert.Nil(t, page.NextCursor)
}

func TestFeedService_GetFeed_LimitDefaultsAndClamps(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantFetch int
	}{
		{name: "zero uses default", limit: 0, wantFetch: defaultFeedLimit + 1},
		{name: "negative uses default", limit: -3, wantFetch: defaultFeedLimit + 1},
		{name: "explicit respected", limit: 25, wantFetch: 26},
		{name: "oversized clamped", limit: 500, wantFetch: maxFeedLimit + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLimit int
			postRepo := noopPostRepo()
			postRepo.listByAuthorsFn = func(_ context.Context, _ []uint, _ *repository.FeedAnchor, limit int, _ uint) ([]*models.Post, error) {
				gotLimit = limit
				return nil, nil
			}

			svc := NewFeedService(postRepo, noopFollowRepo())
			_, err := svc.GetFeed(context.Background(), GetFeedInput{ViewerID: 1, Limit: tt.limit})

			require.NoError(t, err)
			assert.Equal(t, tt.wantFetch, gotLimit)
		})
	}
}

func TestFeedService_GetFeed_Pagination(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.listByAuthorsFn = func(_ context.Context, _ []uint, _ *repository.FeedAnchor, limit int, _ uint) ([]*models.Post, error) {
		// Full limit+1 rows: another page exists.
		return feedPosts(30, 29, 28, 27), nil
	}

	svc := NewFeedService(postRepo, noopFollowRepo())
	page, err := svc.GetFeed(context.Background(), GetFeedInput{ViewerID: 1, Limit: 3})

	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.True(t, page.HasNext)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, "28", *page.NextCursor, "cursor is the id of the last returned post")
}

func TestFeedService_GetFeed_LastPage(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.listByAuthorsFn = func(_ context.Context, _ []uint, _ *repository.FeedAnchor, _ int, _ uint) ([]*models.Post, error) {
		return feedPosts(12, 11), nil
	}

	svc := NewFeedService(postRepo, noopFollowRepo())
	page, err := svc.GetFeed(context.Background(), GetFeedInput{ViewerID: 1, Limit: 3})

	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.HasNext)
	assert.Nil(t, page.NextCursor)
}

func TestFeedService_GetFeed_CursorResolvesAnchor(t *testing.T) {
	anchorTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var gotAnchor *repository.FeedAnchor
	postRepo := noopPostRepo()
	postRepo.getFeedAnchorFn = func(_ context.Context, id uint) (*repository.FeedAnchor, error) {
		assert.Equal(t, uint(28), id)
		return &repository.FeedAnchor{CreatedAt: anchorTime, ID: id}, nil
	}
	postRepo.listByAuthorsFn = func(_ context.Context, _ []uint, anchor *repository.FeedAnchor, _ int, _ uint) ([]*models.Post, error) {
		gotAnchor = anchor
		return nil, nil
	}

	svc := NewFeedService(postRepo, noopFollowRepo())
	_, err := svc.GetFeed(context.Background(), GetFeedInput{ViewerID: 1, Cursor: "28"})

	require.NoError(t, err)
	require.NotNil(t, gotAnchor)
	assert.Equal(t, uint(28), gotAnchor.ID)
	assert.Equal(t, anchorTime, gotAnchor.CreatedAt)
}

func TestFeedService_GetFeed_InvalidCursor(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{name: "non-numeric", cursor: "abc"},
		{name: "negative", cursor: "-5"},
		{name: "zero", cursor: "0"},
		{name: "unknown post", cursor: "9999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := noopPostRepo()
			postRepo.getFeedAnchorFn = func(_ context.Context, _ uint) (*repository.FeedAnchor, error) {
				return nil, gorm.ErrRecordNotFound
			}

			svc := NewFeedService(postRepo, noopFollowRepo())
			_, err := svc.GetFeed(context.Background(), GetFeedInput{ViewerID: 1, Cursor: tt.cursor})

			assertAppErrorCode(t, err, "VALIDATION_ERROR")
		})
	}
}
