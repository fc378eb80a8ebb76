package authz

import (
	"context"

	"equipment-dashboard/pkg/contextkeys"
	apperrors "equipment-dashboard/pkg/errors"
)

// Session is the authenticated caller, built once by the auth middleware and passed
// explicitly to services.
type Session struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextkeys.SessionKey, s)
}

func SessionFromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(contextkeys.SessionKey).(Session)
	if !ok || s.UserID == 0 {
		return Session{}, apperrors.ErrSessionNotFound
	}
	return s, nil
}
