package utils

import (
	"context"

	"guidee-orders/pkg/auth"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// SetActorContext stores the resolved caller identity on the context.
func SetActorContext(ctx context.Context, actor auth.Identity) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, actor.UserID.String())
	ctx = context.WithValue(ctx, RoleKey, actor.Role)
	return ctx
}

// GetActorFromContext returns the caller identity set by the auth middleware.
func GetActorFromContext(ctx context.Context) (auth.Identity, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return auth.Identity{}, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return auth.Identity{}, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return auth.Identity{}, false
	}

	role, _ := ctx.Value(RoleKey).(string)
	if role == "" {
		role = auth.RoleUser
	}

	return auth.Identity{UserID: userID, Role: role}, true
}
