package middleware

import (
	"context"
	"net/http"

	"github.com/shelfspace/bookshelf/backend/auth"
	"github.com/shelfspace/bookshelf/backend/models"
)

type contextKey string

const userKey contextKey = "user"

// WithUser resolves the session once per request and stashes the
// current user (or nothing) in the request context for the guard and
// the handlers downstream.
func WithUser(resolver *auth.SessionResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := resolver.CurrentUser(r); user != nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects unauthenticated API requests with a JSON 401;
// page routes use the redirecting Guard instead.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Error(w, `{"success":false,"message":"Authentication required."}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// ContextWithUser is used by handler tests to inject an authenticated
// identity without running the resolver.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
