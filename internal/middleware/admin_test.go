package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/examhub/examhub/internal/constants"
	"github.com/examhub/examhub/internal/model"
	"github.com/gin-gonic/gin"
)

func adminTestRouter(user *model.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(constants.GinKeyAuthUser, user)
		}
		c.Next()
	})
	r.Use(RequireAdmin())
	r.GET("/admin", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		user     *model.User
		wantCode int
	}{
		{"admin allowed", &model.User{Role: constants.RoleAdmin}, http.StatusOK},
		{"regular user rejected", &model.User{Role: constants.RoleUser}, http.StatusUnauthorized},
		{"missing user rejected", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := adminTestRouter(tt.user)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("Expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}

func TestAuthUser(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if AuthUser(c) != nil {
		t.Error("Expected nil when no user is set")
	}

	user := &model.User{Role: constants.RoleUser}
	c.Set(constants.GinKeyAuthUser, user)
	if AuthUser(c) != user {
		t.Error("Expected the stored user back")
	}
}
