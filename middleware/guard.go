package middleware

import (
	"net/http"
	"strings"
)

// RoutePolicy classifies a page route for the guard.
type RoutePolicy int

const (
	// Public pages pass through for everyone.
	Public RoutePolicy = iota
	// RequireUser pages redirect unauthenticated visitors to /login.
	RequireUser
	// RequireGuest pages (login, signup) redirect authenticated users
	// to the book list.
	RequireGuest
)

// RoutePattern maps a path template to its policy. A "{...}" segment
// matches exactly one path segment, never nested slashes.
type RoutePattern struct {
	Pattern string
	Policy  RoutePolicy
}

// DefaultRoutes is the page-route table: protected pages and the
// guest-only auth pages. Anything not listed is public.
var DefaultRoutes = []RoutePattern{
	{Pattern: "/profile", Policy: RequireUser},
	{Pattern: "/books/add", Policy: RequireUser},
	{Pattern: "/books/{id}/edit", Policy: RequireUser},
	{Pattern: "/login", Policy: RequireGuest},
	{Pattern: "/signup", Policy: RequireGuest},
}

// Classify returns the policy for a request path, Public when no
// pattern matches.
func Classify(routes []RoutePattern, path string) RoutePolicy {
	for _, route := range routes {
		if matchPattern(route.Pattern, path) {
			return route.Policy
		}
	}
	return Public
}

func matchPattern(pattern, path string) bool {
	patternSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSegs := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternSegs) != len(pathSegs) {
		return false
	}
	for i, seg := range patternSegs {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if pathSegs[i] == "" {
				return false
			}
			continue
		}
		if seg != pathSegs[i] {
			return false
		}
	}
	return true
}

// Guard gates page navigation once per request: unauthenticated access
// to a protected page redirects to /login, authenticated access to a
// guest-only page redirects to /books, everything else passes through.
func Guard(routes []RoutePattern) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, authenticated := UserFromContext(r.Context())
			switch Classify(routes, r.URL.Path) {
			case RequireUser:
				if !authenticated {
					http.Redirect(w, r, "/login", http.StatusSeeOther)
					return
				}
			case RequireGuest:
				if authenticated {
					http.Redirect(w, r, "/books", http.StatusSeeOther)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
