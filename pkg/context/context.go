package ctxutil

import (
	"context"
	"net/http"
	"time"

	"github.com/examhub/examhub/internal/constants"
)

// Re-export ContextKey type
type ContextKey = constants.ContextKey

// Re-export context keys
const (
	RequestIDKey = constants.CtxKeyRequestID
	UserIDKey    = constants.CtxKeyUserID
	ClientIPKey  = constants.CtxKeyClientIP
	UserAgentKey = constants.CtxKeyUserAgent
	StartTimeKey = constants.CtxKeyStartTime
	ModuleKey    = constants.CtxKeyModule
	FunctionKey  = constants.CtxKeyFunction
)

// WithValue adds a value to context
func WithValue(ctx context.Context, key ContextKey, value interface{}) context.Context {
	return context.WithValue(ctx, key, value)
}

// WithUserID adds user ID to context
func WithUserID(ctx context.Context, userID interface{}) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// WithTimeout creates context with timeout
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Getter functions
func GetRequestID(ctx context.Context) string {
	if val, ok := ctx.Value(RequestIDKey).(string); ok {
		return val
	}
	return ""
}

func GetClientIP(ctx context.Context) string {
	if val, ok := ctx.Value(ClientIPKey).(string); ok {
		return val
	}
	return ""
}

func GetUserAgent(ctx context.Context) string {
	if val, ok := ctx.Value(UserAgentKey).(string); ok {
		return val
	}
	return ""
}

func GetUserID(ctx context.Context) interface{} {
	return ctx.Value(UserIDKey)
}

func GetUserIDUint(ctx context.Context) (uint, bool) {
	if val, ok := ctx.Value(UserIDKey).(uint); ok {
		return val, true
	}
	return 0, false
}

func GetStartTime(ctx context.Context) time.Time {
	if val, ok := ctx.Value(StartTimeKey).(time.Time); ok {
		return val
	}
	return time.Time{}
}

func GetModule(ctx context.Context) string {
	if val, ok := ctx.Value(ModuleKey).(string); ok {
		return val
	}
	return ""
}

func GetFunction(ctx context.Context) string {
	if val, ok := ctx.Value(FunctionKey).(string); ok {
		return val
	}
	return ""
}

// GetDuration calculates duration from start time
func GetDuration(ctx context.Context) time.Duration {
	startTime := GetStartTime(ctx)
	if !startTime.IsZero() {
		return time.Since(startTime)
	}
	return 0
}

// NewContext creates a new context with request tracking information
func NewContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	if GetStartTime(ctx).IsZero() {
		ctx = context.WithValue(ctx, StartTimeKey, time.Now())
	}

	return ctx
}

// NewContextWithRequest creates context with HTTP request information.
// Handlers call this at the top of each method so that every downstream
// log line carries the module/function pair and the request metadata.
func NewContextWithRequest(ctx context.Context, req *http.Request, module, function string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx = context.WithValue(ctx, ModuleKey, module)
	ctx = context.WithValue(ctx, FunctionKey, function)

	if req != nil {
		if GetClientIP(ctx) == "" {
			ctx = context.WithValue(ctx, ClientIPKey, req.RemoteAddr)
		}
		if GetUserAgent(ctx) == "" {
			ctx = context.WithValue(ctx, UserAgentKey, req.UserAgent())
		}
	}

	if GetStartTime(ctx).IsZero() {
		ctx = context.WithValue(ctx, StartTimeKey, time.Now())
	}

	return ctx
}

// ContextToMap converts context to map for logging
func ContextToMap(ctx context.Context) map[string]interface{} {
	result := make(map[string]interface{})

	if requestID := GetRequestID(ctx); requestID != "" {
		result["request_id"] = requestID
	}
	if clientIP := GetClientIP(ctx); clientIP != "" {
		result["client_ip"] = clientIP
	}
	if userAgent := GetUserAgent(ctx); userAgent != "" {
		result["user_agent"] = userAgent
	}
	if module := GetModule(ctx); module != "" {
		result["module"] = module
	}
	if function := GetFunction(ctx); function != "" {
		result["function"] = function
	}
	if userID := GetUserID(ctx); userID != nil {
		result["user_id"] = userID
	}
	if duration := GetDuration(ctx); duration > 0 {
		result["duration"] = duration
	}

	return result
}
