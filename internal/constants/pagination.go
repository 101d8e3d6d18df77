package constants

// Pagination Query Parameters
const (
	QueryParamLimit  = "limit"
	QueryParamOffset = "offset"
)

// Pagination Limits
const (
	MinLimit      = 1
	MaxLimit      = 100
	DefaultLimit  = 10
	DefaultOffset = 0
)
