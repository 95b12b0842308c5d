package httpx

import (
	"context"

	domainauth "github.com/dictate-io/dictate/internal/domain/auth"
	"github.com/dictate-io/dictate/internal/service"
)

// Context keys are unexported struct types to avoid collisions across packages.
type (
	sessionKey        struct{}
	authDataKey       struct{}
	configSnapshotKey struct{}
)

// SetSessionInContext returns a child context that carries the given session.
// If session is nil, the original ctx is returned unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetUserSessionFromContext returns the user session from context and a boolean indicating presence.
func GetUserSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

// GetSessionFromContext retrieves the session from the request context.
// Maintained for convenience; prefer GetUserSessionFromContext when you need presence info.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := GetUserSessionFromContext(ctx); ok {
		return s
	}
	return nil
}

// SetAuthDataInContext returns a child context carrying the request's auth snapshot.
func SetAuthDataInContext(ctx context.Context, data domainauth.AuthData) context.Context {
	return context.WithValue(ctx, authDataKey{}, data)
}

// GetAuthDataFromContext returns the auth snapshot for the request. Without
// the snapshot middleware the zero value (logged out, settled) is returned.
func GetAuthDataFromContext(ctx context.Context) domainauth.AuthData {
	if data, ok := ctx.Value(authDataKey{}).(domainauth.AuthData); ok {
		return data
	}
	return domainauth.AuthData{}
}

// SetConfigSnapshotInContext returns a child context carrying the request's config snapshot.
func SetConfigSnapshotInContext(ctx context.Context, snap service.ConfigSnapshot) context.Context {
	return context.WithValue(ctx, configSnapshotKey{}, snap)
}

// GetConfigSnapshotFromContext returns the config snapshot for the request.
// Without the snapshot middleware a loading snapshot is returned, which
// guards treat as undecided rather than empty.
func GetConfigSnapshotFromContext(ctx context.Context) service.ConfigSnapshot {
	if snap, ok := ctx.Value(configSnapshotKey{}).(service.ConfigSnapshot); ok {
		return snap
	}
	return service.ConfigSnapshot{IsLoading: true}
}
