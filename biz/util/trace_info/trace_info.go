package trace_info

import (
	"context"
)

type logIdKey struct{}

type userIdKey struct{}

func WithLogId(ctx context.Context, logId string) context.Context {
	return context.WithValue(ctx, logIdKey{}, logId)
}

func GetLogId(ctx context.Context) string {
	logId, ok := ctx.Value(logIdKey{}).(string)
	if ok {
		return logId
	}
	return ""
}

// WithUserId tags the context with the authenticated user for log lines.
func WithUserId(ctx context.Context, userId string) context.Context {
	return context.WithValue(ctx, userIdKey{}, userId)
}

func GetUserId(ctx context.Context) string {
	userId, ok := ctx.Value(userIdKey{}).(string)
	if ok {
		return userId
	}
	return ""
}
