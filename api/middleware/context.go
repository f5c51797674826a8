package middleware

import (
	"context"

	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
)

type contextKey string

const (
	ctxActorID   contextKey = "actor_id"
	ctxActorRole contextKey = "actor_role"
)

// ActorIDFromContext returns the acting user's id, zero when absent.
func ActorIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxActorID).(int64); ok {
		return v
	}
	return 0
}

// ActorRoleFromContext returns the acting user's role, empty when absent.
func ActorRoleFromContext(ctx context.Context) enums.UserRole {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxActorRole).(enums.UserRole); ok {
		return v
	}
	return ""
}

// WithActor injects the acting user's identity into the context.
func WithActor(ctx context.Context, actorID int64, role enums.UserRole) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxActorID, actorID)
	return context.WithValue(ctx, ctxActorRole, role)
}
