package sessions

import (
	"context"

	"rentacab/pkg/model"
)

type contextKey string

const sessionKey contextKey = "session"

// WithSession returns a context carrying the authenticated session.
func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// FromContext returns the session attached by the auth middleware. The second
// return value is false on unauthenticated requests.
func FromContext(ctx context.Context) (*model.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*model.Session)
	return session, ok
}
