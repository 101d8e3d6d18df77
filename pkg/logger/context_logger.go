package logger

import (
	"context"
	"time"

	ctxutil "github.com/examhub/examhub/pkg/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ContextLogBuilder builds a log entry enriched with request context fields
type ContextLogBuilder struct {
	ctx       context.Context
	level     zapcore.Level
	fields    []zap.Field
	message   string
	shouldLog bool
}

func shouldLog(level zapcore.Level) bool {
	return Logger != nil && Logger.Core().Enabled(level)
}

// WithContext creates a log builder bound to the given context
func WithContext(ctx context.Context) *ContextLogBuilder {
	return &ContextLogBuilder{
		ctx:    ctx,
		level:  zapcore.InfoLevel,
		fields: make([]zap.Field, 0, 12),
	}
}

// extractContextFields pulls request tracking fields out of the context
func (clb *ContextLogBuilder) extractContextFields() {
	if clb.ctx == nil {
		return
	}

	if requestID := ctxutil.GetRequestID(clb.ctx); requestID != "" {
		clb.fields = append(clb.fields, zap.String("request_id", requestID))
	}

	if clientIP := ctxutil.GetClientIP(clb.ctx); clientIP != "" {
		clb.fields = append(clb.fields, zap.String("client_ip", clientIP))
	}

	if userAgent := ctxutil.GetUserAgent(clb.ctx); userAgent != "" {
		clb.fields = append(clb.fields, zap.String("user_agent", userAgent))
	}

	if userID := ctxutil.GetUserID(clb.ctx); userID != nil {
		switch v := userID.(type) {
		case string:
			clb.fields = append(clb.fields, zap.String("user_id", v))
		case uint:
			clb.fields = append(clb.fields, zap.Uint("user_id", v))
		default:
			clb.fields = append(clb.fields, zap.Any("user_id", userID))
		}
	}

	if module := ctxutil.GetModule(clb.ctx); module != "" {
		clb.fields = append(clb.fields, zap.String("module", module))
	}

	if function := ctxutil.GetFunction(clb.ctx); function != "" {
		clb.fields = append(clb.fields, zap.String("function", function))
	}

	if duration := ctxutil.GetDuration(clb.ctx); duration > 0 {
		clb.fields = append(clb.fields, zap.Duration("duration", duration))
	}
}

func (clb *ContextLogBuilder) Info(message string) *ContextLogBuilder {
	if !shouldLog(zapcore.InfoLevel) {
		clb.shouldLog = false
		return clb
	}
	clb.level = zapcore.InfoLevel
	clb.message = message
	clb.shouldLog = true
	clb.extractContextFields()
	return clb
}

func (clb *ContextLogBuilder) Warn(message string) *ContextLogBuilder {
	if !shouldLog(zapcore.WarnLevel) {
		clb.shouldLog = false
		return clb
	}
	clb.level = zapcore.WarnLevel
	clb.message = message
	clb.shouldLog = true
	clb.extractContextFields()
	return clb
}

func (clb *ContextLogBuilder) Error(message string) *ContextLogBuilder {
	if !shouldLog(zapcore.ErrorLevel) {
		clb.shouldLog = false
		return clb
	}
	clb.level = zapcore.ErrorLevel
	clb.message = message
	clb.shouldLog = true
	clb.extractContextFields()
	return clb
}

func (clb *ContextLogBuilder) Debug(message string) *ContextLogBuilder {
	if !shouldLog(zapcore.DebugLevel) {
		clb.shouldLog = false
		return clb
	}
	clb.level = zapcore.DebugLevel
	clb.message = message
	clb.shouldLog = true
	clb.extractContextFields()
	return clb
}

// Field methods
func (clb *ContextLogBuilder) String(key, value string) *ContextLogBuilder {
	if clb.shouldLog {
		clb.fields = append(clb.fields, zap.String(key, value))
	}
	return clb
}

func (clb *ContextLogBuilder) Int(key string, value int) *ContextLogBuilder {
	if clb.shouldLog {
		clb.fields = append(clb.fields, zap.Int(key, value))
	}
	return clb
}

func (clb *ContextLogBuilder) Int64(key string, value int64) *ContextLogBuilder {
	if clb.shouldLog {
		clb.fields = append(clb.fields, zap.Int64(key, value))
	}
	return clb
}

func (clb *ContextLogBuilder) Uint(key string, value uint) *ContextLogBuilder {
	if clb.shouldLog {
		clb.fields = append(clb.fields, zap.Uint(key, value))
	}
	return clb
}

func (clb *ContextLogBuilder) Bool(key string, value bool) *ContextLogBuilder {
	if clb.shouldLog {
		clb.fields = append(clb.fields, zap.Bool(key, value))
	}
	return clb
}

func (clb *ContextLogBuilder) Duration(value time.Duration) *ContextLogBuilder {
	if clb.shouldLog {
		clb.fields = append(clb.fields, zap.Duration("duration", value))
	}
	return clb
}

func (clb *ContextLogBuilder) Err(err error) *ContextLogBuilder {
	if clb.shouldLog && err != nil {
		clb.fields = append(clb.fields, zap.Error(err))
	}
	return clb
}

func (clb *ContextLogBuilder) Any(key string, value interface{}) *ContextLogBuilder {
	if clb.shouldLog {
		clb.fields = append(clb.fields, zap.Any(key, value))
	}
	return clb
}

func (clb *ContextLogBuilder) Method(method string) *ContextLogBuilder {
	if clb.shouldLog {
		clb.fields = append(clb.fields, zap.String("method", method))
	}
	return clb
}

func (clb *ContextLogBuilder) Path(path string) *ContextLogBuilder {
	if clb.shouldLog {
		clb.fields = append(clb.fields, zap.String("path", path))
	}
	return clb
}

func (clb *ContextLogBuilder) StatusCode(code int) *ContextLogBuilder {
	if clb.shouldLog {
		clb.fields = append(clb.fields, zap.Int("status_code", code))
	}
	return clb
}

// Log writes the entry unless the context was already cancelled
func (clb *ContextLogBuilder) Log() {
	if !clb.shouldLog {
		return
	}

	if clb.ctx != nil {
		select {
		case <-clb.ctx.Done():
			return
		default:
		}
	}

	switch clb.level {
	case zapcore.DebugLevel:
		Logger.Debug(clb.message, clb.fields...)
	case zapcore.InfoLevel:
		Logger.Info(clb.message, clb.fields...)
	case zapcore.WarnLevel:
		Logger.Warn(clb.message, clb.fields...)
	case zapcore.ErrorLevel:
		Logger.Error(clb.message, clb.fields...)
	}
}

// Global context logger helper functions
func InfoWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return WithContext(ctx).Info(message)
}

func WarnWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return WithContext(ctx).Warn(message)
}

func ErrorWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return WithContext(ctx).Error(message)
}

func DebugWithContext(ctx context.Context, message string) *ContextLogBuilder {
	return WithContext(ctx).Debug(message)
}
