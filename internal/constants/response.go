package constants

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Standard Response Field Keys
const (
	ResponseFieldData    = "data"
	ResponseFieldToken   = "token"
	ResponseFieldTotal   = "total"
	ResponseFieldLimit   = "limit"
	ResponseFieldOffset  = "offset"
	ResponseFieldMessage = "message"
	ResponseFieldDetails = "details"
	ResponseFieldStatus  = "status"
)

// PaginationParams holds the parsed limit/offset pair for list endpoints.
type PaginationParams struct {
	Limit  int
	Offset int
}

// ParsePaginationParams parses limit/offset query parameters, falling back to
// the supplied defaults and clamping limit to the allowed range.
func ParsePaginationParams(c *gin.Context, defaultLimit, defaultOffset int) PaginationParams {
	limit := defaultLimit
	offset := defaultOffset

	if raw := c.Query(QueryParamLimit); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	if raw := c.Query(QueryParamOffset); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			offset = v
		}
	}

	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	return PaginationParams{Limit: limit, Offset: offset}
}

// Response Format Functions

// BuildDataResponse wraps a payload in the `{data}` envelope every success
// response uses.
func BuildDataResponse(data any) map[string]any {
	return map[string]any{
		ResponseFieldData: data,
	}
}

// BuildTokenResponse wraps a payload plus a freshly issued bearer token.
func BuildTokenResponse(data any, token string) map[string]any {
	return map[string]any{
		ResponseFieldData:  data,
		ResponseFieldToken: token,
	}
}

// BuildStatusResponse wraps the literal success marker some operations return.
func BuildStatusResponse(status string) map[string]any {
	return map[string]any{
		ResponseFieldData: map[string]any{
			ResponseFieldStatus: status,
		},
	}
}

// BuildListResponse wraps a paginated collection.
func BuildListResponse(data any, total int64, limit, offset int) map[string]any {
	return map[string]any{
		ResponseFieldData:   data,
		ResponseFieldTotal:  total,
		ResponseFieldLimit:  limit,
		ResponseFieldOffset: offset,
	}
}

func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}
