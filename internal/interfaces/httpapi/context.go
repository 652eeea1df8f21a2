package httpapi

import "context"

type contextKey string

const actingUserContextKey contextKey = "acting_user"

func withActingUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actingUserContextKey, userID)
}

func actingUserFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(actingUserContextKey).(string)
	return userID, ok && userID != ""
}
