package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shelfspace/bookshelf/backend/auth"
	"github.com/shelfspace/bookshelf/backend/middleware"
	"github.com/shelfspace/bookshelf/backend/models"
	"github.com/shelfspace/bookshelf/backend/store"
)

type AuthHandler struct {
	Store  UserStore
	Tokens *auth.TokenService
	// Secure marks the session cookie Secure (production deployments).
	Secure bool
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		fail(w, ErrValidation, "Invalid form data. Please check your inputs.")
		return
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if err := validate.Struct(input); err != nil {
		failFields(w, "Invalid form data. Please check your inputs.", fieldErrors(err))
		return
	}

	existing, err := h.Store.UserByEmail(r.Context(), input.Email)
	if err != nil {
		internalError(w, "signup: lookup email", err)
		return
	}
	if existing != nil {
		fail(w, ErrConflict, "User with this email already exists.")
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		internalError(w, "signup: hash password", err)
		return
	}
	now := time.Now()
	user := &models.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := h.Store.CreateUser(r.Context(), user); err != nil {
		// The unique email index closes the check-then-insert race.
		if store.IsDuplicateKey(err) {
			fail(w, ErrConflict, "User with this email already exists.")
			return
		}
		internalError(w, "signup: create user", err)
		return
	}
	created(w, "Signup successful. Please log in.", "/login")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		fail(w, ErrValidation, "Invalid form data.")
		return
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if err := validate.Struct(input); err != nil {
		failFields(w, "Invalid form data.", fieldErrors(err))
		return
	}

	user, err := h.Store.UserByEmail(r.Context(), input.Email)
	if err != nil {
		internalError(w, "login: lookup email", err)
		return
	}
	// Unknown email and wrong password are deliberately
	// indistinguishable.
	if user == nil || !auth.CheckPassword(user.Password, input.Password) {
		fail(w, ErrUnauthenticated, "Invalid credentials.")
		return
	}

	token, err := h.Tokens.Issue(user.ID.Hex())
	if err != nil {
		internalError(w, "login: issue token", err)
		return
	}
	h.setSessionCookie(w, token)
	ok(w, "Logged in.", "/books")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	ok(w, "Logged out.", "/")
}

// Me returns the current authenticated identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, authed := middleware.UserFromContext(r.Context())
	if !authed {
		fail(w, ErrUnauthenticated, "Authentication required.")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
