package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/examhub/examhub/config"
	"github.com/examhub/examhub/internal/dto"
	"github.com/examhub/examhub/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserService struct {
	user    *model.User
	err     error
	lastReq *dto.UpdateProfileRequest
}

func (s *stubUserService) GetUser(_ context.Context, _ uint) (*model.User, error) {
	return s.user, s.err
}

func (s *stubUserService) ListUsers(_ context.Context, _, _ int, _ string) ([]model.User, int64, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return []model.User{*s.user}, 1, nil
}

func (s *stubUserService) UpdateProfile(_ context.Context, _ uint, req *dto.UpdateProfileRequest) (*model.User, error) {
	s.lastReq = req
	return s.user, s.err
}

func (s *stubUserService) DeleteUser(_ context.Context, _ uint) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "success", nil
}

func userTestRouter(svc *stubUserService, user *model.User) *gin.Engine {
	cfg := &config.Config{}
	cfg.Pagination.Limit = 10
	h := NewUserHandler(svc, cfg)

	r := gin.New()
	protected := r.Group("", injectUser(user))
	protected.GET("/auth/me", h.Me)
	protected.PATCH("/auth/profile", h.UpdateProfile)
	return r
}

func TestUserHandler_UpdateProfileEmptyBody(t *testing.T) {
	user := sampleUser()
	svc := &stubUserService{user: user}
	r := userTestRouter(svc, user)

	w := doJSON(t, r, http.MethodPatch, "/auth/profile", gin.H{})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)

	// Nothing submitted, nothing changed.
	assert.Equal(t, "Grace", data["first_name"])
	assert.Equal(t, "Hopper", data["last_name"])
	require.NotNil(t, svc.lastReq)
	assert.Empty(t, svc.lastReq.FirstName)
	assert.Empty(t, svc.lastReq.LastName)
}

func TestUserHandler_UpdateProfileShortNames(t *testing.T) {
	tests := []struct {
		name    string
		payload gin.H
		message string
	}{
		{
			name:    "short first name",
			payload: gin.H{"first_name": "ab"},
			message: "firstname does not meet the minimum length or value",
		},
		{
			name:    "short last name",
			payload: gin.H{"last_name": "xy"},
			message: "lastname does not meet the minimum length or value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := sampleUser()
			svc := &stubUserService{user: user}
			r := userTestRouter(svc, user)

			w := doJSON(t, r, http.MethodPatch, "/auth/profile", tt.payload)

			require.Equal(t, http.StatusBadRequest, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.message, body["message"])
			assert.Nil(t, svc.lastReq, "validation failures must not reach the service")
		})
	}
}

func TestUserHandler_UpdateProfileUnauthenticated(t *testing.T) {
	svc := &stubUserService{user: sampleUser()}
	r := userTestRouter(svc, nil)

	w := doJSON(t, r, http.MethodPatch, "/auth/profile", gin.H{"first_name": "Ada"})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Unauthorized access", body["message"])
}

func TestUserHandler_Me(t *testing.T) {
	user := sampleUser()
	svc := &stubUserService{user: user}
	r := userTestRouter(svc, user)

	w := doJSON(t, r, http.MethodGet, "/auth/me", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]any)
	assert.Equal(t, "grace@example.com", data["email"])
	assert.NotContains(t, data, "password")
}
