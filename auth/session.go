package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/shelfspace/bookshelf/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

// UserGetter is the slice of the user store the resolver needs.
type UserGetter interface {
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// SessionResolver turns a request's credentials into the current
// authenticated user. One store read per call, no caching.
type SessionResolver struct {
	Tokens *TokenService
	Users  UserGetter
}

// CurrentUser returns the authenticated user for the request, or nil
// when the token is absent, invalid, or references a user that no
// longer exists (stale sessions for deleted accounts resolve to nil
// rather than erroring). The returned user never carries the password
// hash.
func (s *SessionResolver) CurrentUser(r *http.Request) *models.User {
	tokenString := TokenFromRequest(r)
	if tokenString == "" {
		return nil
	}
	userID, ok := s.Tokens.Verify(tokenString)
	if !ok {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	user, err := s.Users.UserByID(r.Context(), id)
	if err != nil {
		log.Printf("session: fetch user %s: %v", userID, err)
		return nil
	}
	if user == nil {
		return nil
	}
	user.Password = ""
	return user
}

// TokenFromRequest reads the session cookie, falling back to a Bearer
// Authorization header for API clients.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
