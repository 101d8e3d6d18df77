package constants

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paginationContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "", 10, 0},
		{"explicit values", "limit=25&offset=50", 25, 50},
		{"limit clamped to max", "limit=5000", 100, 0},
		{"limit clamped to min", "limit=0", 1, 0},
		{"negative offset reset", "offset=-5", 10, 0},
		{"garbage ignored", "limit=abc&offset=xyz", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := paginationContext(tt.query)
			params := ParsePaginationParams(c, DefaultLimit, DefaultOffset)

			if params.Limit != tt.wantLimit {
				t.Errorf("Expected limit %d, got %d", tt.wantLimit, params.Limit)
			}
			if params.Offset != tt.wantOffset {
				t.Errorf("Expected offset %d, got %d", tt.wantOffset, params.Offset)
			}
		})
	}
}

func TestBuildResponses(t *testing.T) {
	data := BuildDataResponse("payload")
	if data[ResponseFieldData] != "payload" {
		t.Errorf("Unexpected data envelope: %v", data)
	}

	token := BuildTokenResponse("payload", "jwt-token")
	if token[ResponseFieldToken] != "jwt-token" {
		t.Errorf("Unexpected token envelope: %v", token)
	}

	status := BuildStatusResponse("success")
	inner, ok := status[ResponseFieldData].(map[string]any)
	if !ok || inner[ResponseFieldStatus] != "success" {
		t.Errorf("Unexpected status envelope: %v", status)
	}

	errResp := BuildErrorResponse("boom", nil)
	if errResp[ResponseFieldMessage] != "boom" {
		t.Errorf("Unexpected error envelope: %v", errResp)
	}
	if _, exists := errResp[ResponseFieldDetails]; exists {
		t.Error("Details should be omitted when nil")
	}
}
