package utils

import (
	"context"
)

type contextKey string

const (
	AdminIDKey   contextKey = "admin_id"
	AdminNameKey contextKey = "admin_username"
	TokenKey     contextKey = "session_token"
)

func GetAdminIDFromContext(ctx context.Context) (int64, bool) {
	idVal := ctx.Value(AdminIDKey)
	if idVal == nil {
		return 0, false
	}

	id, ok := idVal.(int64)
	return id, ok
}

func GetAdminUsernameFromContext(ctx context.Context) (string, bool) {
	nameVal := ctx.Value(AdminNameKey)
	if nameVal == nil {
		return "", false
	}

	name, ok := nameVal.(string)
	return name, ok
}

func SetAdminContext(ctx context.Context, adminID int64, username string) context.Context {
	ctx = context.WithValue(ctx, AdminIDKey, adminID)
	ctx = context.WithValue(ctx, AdminNameKey, username)
	return ctx
}

func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
