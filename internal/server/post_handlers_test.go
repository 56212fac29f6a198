package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/models"
	"ripple/internal/notifications"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, userID, limit, offset, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, limit, offset, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByAuthors(ctx context.Context, authorIDs []uint, anchor *repository.FeedAnchor, limit int, currentUserID uint) ([]*models.Post, error) {
	args := m.Called(ctx, authorIDs, anchor, limit, currentUserID)
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) GetFeedAnchor(ctx context.Context, id uint) (*repository.FeedAnchor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.FeedAnchor), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) Like(ctx context.Context, userID, postID uint) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockPostRepository) Unlike(ctx context.Context, userID, postID uint) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

// newPostTestServer wires a Server around a mock post repository with the
// authenticated user set to id 1.
func newPostTestServer(mockRepo *MockPostRepository) (*fiber.App, *Server) {
	s := &Server{
		hub:         notifications.NewHub(),
		postService: service.NewPostService(mockRepo, nil),
	}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	return app, s
}

func TestCreatePost(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(repo *MockPostRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"content": "Hello world"},
			mockSetup: func(repo *MockPostRepository) {
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
				repo.On("GetByID", mock.Anything, mock.Anything, uint(1)).
					Return(&models.Post{ID: 1, Content: "Hello world", UserID: 1}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Empty Content",
			body:           map[string]string{"content": ""},
			mockSetup:      func(repo *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			tt.mockSetup(mockRepo)
			app, s := newPostTestServer(mockRepo)
			app.Post("/posts", s.CreatePost)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetPost(t *testing.T) {
	tests := []struct {
		name           string
		idParam        string
		mockSetup      func(repo *MockPostRepository)
		expectedStatus int
	}{
		{
			name:    "Success",
			idParam: "1",
			mockSetup: func(repo *MockPostRepository) {
				repo.On("GetByID", mock.Anything, uint(1), uint(0)).
					Return(&models.Post{ID: 1, Content: "Hello"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "Not Found",
			idParam: "99",
			mockSetup: func(repo *MockPostRepository) {
				repo.On("GetByID", mock.Anything, uint(99), uint(0)).
					Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid ID",
			idParam:        "abc",
			mockSetup:      func(repo *MockPostRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockPostRepository)
			tt.mockSetup(mockRepo)

			s := &Server{postService: service.NewPostService(mockRepo, nil)}
			app := fiber.New()
			app.Get("/posts/:id", s.GetPost)

			req := httptest.NewRequest(http.MethodGet, "/posts/"+tt.idParam, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestUpdatePost_OwnershipEnforced(t *testing.T) {
	mockRepo := new(MockPostRepository)
	// Post 5 belongs to user 2; the authenticated user is 1.
	mockRepo.On("GetByID", mock.Anything, uint(5), uint(1)).
		Return(&models.Post{ID: 5, Content: "Not yours", UserID: 2}, nil)

	app, s := newPostTestServer(mockRepo)
	app.Put("/posts/:id", s.UpdatePost)

	body, _ := json.Marshal(map[string]string{"content": "Hijacked"})
	req := httptest.NewRequest(http.MethodPut, "/posts/5", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeletePost_NotFound(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("GetByID", mock.Anything, uint(7), uint(1)).
		Return(nil, gorm.ErrRecordNotFound)

	app, s := newPostTestServer(mockRepo)
	app.Delete("/posts/:id", s.DeletePost)

	req := httptest.NewRequest(http.MethodDelete, "/posts/7", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLikePost_Toggles(t *testing.T) {
	mockRepo := new(MockPostRepository)
	mockRepo.On("GetByID", mock.Anything, uint(3), uint(1)).
		Return(&models.Post{ID: 3, Content: "Nice", UserID: 2}, nil)
	mockRepo.On("IsLiked", mock.Anything, uint(1), uint(3)).Return(true, nil)
	mockRepo.On("Unlike", mock.Anything, uint(1), uint(3)).Return(nil)

	app, s := newPostTestServer(mockRepo)
	app.Post("/posts/:id/like", s.LikePost)

	req := httptest.NewRequest(http.MethodPost, "/posts/3/like", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockRepo.AssertCalled(t, "Unlike", mock.Anything, uint(1), uint(3))
}
