package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFollowTestApp(userRepo *MockUserRepository, followRepo *MockFollowRepository) *fiber.App {
	s := newUserTestServer(userRepo, followRepo)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Post("/users/:id/follow", s.FollowUser)
	app.Delete("/users/:id/follow", s.UnfollowUser)
	app.Get("/users/:id/followers", s.GetFollowers)
	app.Get("/users/:id/following", s.GetFollowing)
	return app
}

func TestFollowUser(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		mockSetup      func(userRepo *MockUserRepository, followRepo *MockFollowRepository)
		expectedStatus int
	}{
		{
			name:   "Success",
			target: "2",
			mockSetup: func(userRepo *MockUserRepository, followRepo *MockFollowRepository) {
				userRepo.On("GetByID", mock.Anything, uint(2)).
					Return(&models.User{ID: 2, Username: "other"}, nil)
				followRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Self Follow",
			target:         "1",
			mockSetup:      func(userRepo *MockUserRepository, followRepo *MockFollowRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Unknown Target",
			target: "99",
			mockSetup: func(userRepo *MockUserRepository, followRepo *MockFollowRepository) {
				userRepo.On("GetByID", mock.Anything, uint(99)).
					Return(nil, models.NewNotFoundError("User", 99))
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "Already Following",
			target: "2",
			mockSetup: func(userRepo *MockUserRepository, followRepo *MockFollowRepository) {
				userRepo.On("GetByID", mock.Anything, uint(2)).
					Return(&models.User{ID: 2, Username: "other"}, nil)
				followRepo.On("Create", mock.Anything, mock.Anything).
					Return(models.NewConflictError("Already following this user"))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			followRepo := new(MockFollowRepository)
			tt.mockSetup(userRepo, followRepo)
			app := newFollowTestApp(userRepo, followRepo)

			req := httptest.NewRequest(http.MethodPost, "/users/"+tt.target+"/follow", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestUnfollowUser_Idempotent(t *testing.T) {
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, Username: "other"}, nil)
	followRepo.On("Delete", mock.Anything, uint(1), uint(2)).Return(nil)

	app := newFollowTestApp(userRepo, followRepo)

	// Unfollowing twice is not an error; the second call is a no-op.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/users/2/follow", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}
}

func TestGetFollowers(t *testing.T) {
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, Username: "other"}, nil)
	followRepo.On("GetFollowers", mock.Anything, uint(2), 20, 0).
		Return([]models.User{{ID: 1, Username: "me"}}, nil)

	app := newFollowTestApp(userRepo, followRepo)

	req := httptest.NewRequest(http.MethodGet, "/users/2/followers", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
