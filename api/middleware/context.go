package middleware

import "context"

type contextKey string

const (
	ctxRequestID contextKey = "request_id"
	ctxUserID    contextKey = "user_id"
	ctxUserEmail contextKey = "user_email"
	ctxIsAdmin   contextKey = "is_admin"
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxRequestID, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxRequestID).(string)
	return id
}

func WithUser(ctx context.Context, userID, email string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, userID)
	ctx = context.WithValue(ctx, ctxUserEmail, email)
	return context.WithValue(ctx, ctxIsAdmin, isAdmin)
}

// UserIDFrom returns the authenticated user id, or "" outside an
// authenticated request.
func UserIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxUserID).(string)
	return id
}

func UserEmailFrom(ctx context.Context) string {
	email, _ := ctx.Value(ctxUserEmail).(string)
	return email
}

func IsAdminFrom(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(ctxIsAdmin).(bool)
	return isAdmin
}
