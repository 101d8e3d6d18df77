package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/examhub/examhub/internal/constants"
	"github.com/examhub/examhub/internal/dto"
	apperrors "github.com/examhub/examhub/internal/errors"
	"github.com/examhub/examhub/internal/model"
	"github.com/examhub/examhub/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitTestLogger()
	os.Exit(m.Run())
}

// stubAuthService returns canned results so handler tests exercise only the
// HTTP layer.
type stubAuthService struct {
	user  *model.User
	token string
	err   error
}

func (s *stubAuthService) Register(context.Context, *dto.RegisterRequest) (*model.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(context.Context, *dto.LoginRequest) (*model.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubAuthService) Activate(context.Context, string) (*model.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Forget(context.Context, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "success", nil
}

func (s *stubAuthService) ActivateResetPassword(context.Context, string) (*model.User, string, error) {
	return s.user, s.token, s.err
}

func (s *stubAuthService) ResetPassword(context.Context, uint, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "success", nil
}

func (s *stubAuthService) ChangePassword(context.Context, uint, string, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "success", nil
}

func (s *stubAuthService) UploadAvatar(context.Context, uint, string, []byte) (*model.User, error) {
	return s.user, s.err
}

func sampleUser() *model.User {
	return &model.User{
		Model:       gorm.Model{ID: 7},
		FirstName:   "Grace",
		LastName:    "Hopper",
		Email:       "grace@example.com",
		Phone:       "08012345678",
		IsActivated: true,
		Role:        constants.RoleUser,
	}
}

// injectUser seeds the authenticated user the way the JWT middleware does.
func injectUser(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.GinKeyAuthUser, user)
		c.Next()
	}
}

func authTestRouter(svc *stubAuthService, user *model.User) *gin.Engine {
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/activate", h.Activate)
	r.PATCH("/auth/forget", h.Forget)
	r.GET("/auth/reset/:reset_password_code", h.ActivateResetPassword)

	protected := r.Group("", injectUser(user))
	protected.PATCH("/auth/password", h.ResetPassword)
	protected.PATCH("/auth/change", h.ChangePassword)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_Register(t *testing.T) {
	r := authTestRouter(&stubAuthService{user: sampleUser()}, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"first_name":       "Grace",
		"last_name":        "Hopper",
		"email":            "grace@example.com",
		"phone":            "08012345678",
		"password":         "secret123",
		"confirm_password": "secret123",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data envelope, got %v", body)
	assert.Equal(t, "grace@example.com", data["email"])
	assert.NotContains(t, data, "password")
}

func TestAuthHandler_RegisterPasswordMismatch(t *testing.T) {
	r := authTestRouter(&stubAuthService{user: sampleUser()}, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"first_name":       "Grace",
		"last_name":        "Hopper",
		"email":            "grace@example.com",
		"phone":            "08012345678",
		"password":         "secret123",
		"confirm_password": "different",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "password field do not match confirm_password field", body["message"])
}

func TestAuthHandler_RegisterDuplicate(t *testing.T) {
	r := authTestRouter(&stubAuthService{err: apperrors.ErrEmailExists}, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"first_name":       "Grace",
		"last_name":        "Hopper",
		"email":            "grace@example.com",
		"phone":            "08012345678",
		"password":         "secret123",
		"confirm_password": "secret123",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User already exists", body["message"])
}

func TestAuthHandler_Login(t *testing.T) {
	r := authTestRouter(&stubAuthService{user: sampleUser(), token: "signed-token"}, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":    "grace@example.com",
		"password": "secret123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "signed-token", body["token"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), data["id"])
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	r := authTestRouter(&stubAuthService{err: apperrors.ErrInvalidCredentials}, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":    "grace@example.com",
		"password": "wrong-pass",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Invalid Credentials", body["message"])
}

func TestAuthHandler_LoginNotActivated(t *testing.T) {
	r := authTestRouter(&stubAuthService{err: apperrors.ErrNotActivated}, nil)

	w := doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":    "grace@example.com",
		"password": "secret123",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Please kindly verify your account to login", body["message"])
}

func TestAuthHandler_ActivateMissingCode(t *testing.T) {
	r := authTestRouter(&stubAuthService{user: sampleUser()}, nil)

	w := doJSON(t, r, http.MethodGet, "/auth/activate", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_ActivateUnknownCode(t *testing.T) {
	r := authTestRouter(&stubAuthService{err: apperrors.ErrForbiddenAttempt}, nil)

	w := doJSON(t, r, http.MethodGet, "/auth/activate?activation_code=00000000-0000-0000-0000-000000000000", nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Forbidden Attempt", body["message"])
}

func TestAuthHandler_Forget(t *testing.T) {
	r := authTestRouter(&stubAuthService{}, nil)

	w := doJSON(t, r, http.MethodPatch, "/auth/forget", gin.H{"email": "grace@example.com"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "success", data["status"])
}

func TestAuthHandler_ActivateResetPassword(t *testing.T) {
	r := authTestRouter(&stubAuthService{user: sampleUser(), token: "signed-token"}, nil)

	w := doJSON(t, r, http.MethodGet, "/auth/reset/2c9a9a2e-23a0-4f2e-9b0a-0d6a2b9c6f11", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "signed-token", body["token"])
}

func TestAuthHandler_ActivateResetPasswordMalformedCode(t *testing.T) {
	r := authTestRouter(&stubAuthService{user: sampleUser(), token: "signed-token"}, nil)

	w := doJSON(t, r, http.MethodGet, "/auth/reset/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	r := authTestRouter(&stubAuthService{}, sampleUser())

	w := doJSON(t, r, http.MethodPatch, "/auth/password", gin.H{
		"new_password":     "brand-new-pass",
		"confirm_password": "brand-new-pass",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "success", data["status"])
}

func TestAuthHandler_ResetPasswordMismatch(t *testing.T) {
	r := authTestRouter(&stubAuthService{}, sampleUser())

	w := doJSON(t, r, http.MethodPatch, "/auth/password", gin.H{
		"new_password":     "brand-new-pass",
		"confirm_password": "other-new-pass",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "new_password field do not match confirm_password field", body["message"])
}

func TestAuthHandler_ResetPasswordUnauthenticated(t *testing.T) {
	r := authTestRouter(&stubAuthService{}, nil)

	w := doJSON(t, r, http.MethodPatch, "/auth/password", gin.H{
		"new_password":     "brand-new-pass",
		"confirm_password": "brand-new-pass",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_ChangePasswordWrongOld(t *testing.T) {
	r := authTestRouter(&stubAuthService{err: apperrors.ErrInvalidOldPassword}, sampleUser())

	w := doJSON(t, r, http.MethodPatch, "/auth/change", gin.H{
		"old_password":         "wrong-old-pass",
		"new_password":         "brand-new-pass",
		"confirm_new_password": "brand-new-pass",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Invalid Old Password", body["message"])
}
