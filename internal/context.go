package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextScopeKey ctxKey = "authScope"

// AuthScope is the resolved authorization for an admin request: the property
// the device session is bound to and the employee behind the admin session.
type AuthScope struct {
	PropertyID int64
	EmployeeID int64
}

func ScopeFromContext(ctx context.Context) (*AuthScope, bool) {
	if ctx == nil {
		return nil, false
	}
	scope, ok := ctx.Value(ContextScopeKey).(*AuthScope)
	return scope, ok
}

func ContextWithScope(ctx context.Context, scope *AuthScope) context.Context {
	return context.WithValue(ctx, ContextScopeKey, scope)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
