package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shelfspace/bookshelf/backend/middleware"
	"github.com/shelfspace/bookshelf/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PagesHandler backs the guard-gated page routes with the data their
// views render. The UI itself lives in a separate frontend; these
// endpoints exist so the route guard has real navigation targets.
type PagesHandler struct {
	Books BookStore
}

type ProfilePage struct {
	User  *models.User  `json:"user"`
	Books []models.Book `json:"books"`
}

// Profile serves the current user's identity and their added books.
// The guard guarantees an authenticated context here.
func (h *PagesHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, authed := middleware.UserFromContext(r.Context())
	if !authed {
		fail(w, ErrUnauthenticated, "Authentication required.")
		return
	}
	books, err := h.Books.BooksByUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("profile: list books: %v", err)
		books = []models.Book{}
	}
	writeJSON(w, http.StatusOK, ProfilePage{User: user, Books: books})
}

type BookFormPage struct {
	Genres []string     `json:"genres"`
	Book   *models.Book `json:"book,omitempty"`
}

// AddBookPage serves the add-book form's supporting data.
func (h *PagesHandler) AddBookPage(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Books.DistinctGenres(r.Context())
	if err != nil {
		log.Printf("add book page: genres: %v", err)
		genres = []string{}
	}
	writeJSON(w, http.StatusOK, BookFormPage{Genres: genres})
}

// EditBookPage serves the edit form's data, owner-gated.
func (h *PagesHandler) EditBookPage(w http.ResponseWriter, r *http.Request) {
	user, authed := middleware.UserFromContext(r.Context())
	if !authed {
		fail(w, ErrUnauthenticated, "Authentication required.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, ErrNotFound, "Book not found.")
		return
	}
	book, err := h.Books.BookByID(r.Context(), id)
	if err != nil {
		internalError(w, "edit book page: fetch", err)
		return
	}
	if book == nil {
		fail(w, ErrNotFound, "Book not found.")
		return
	}
	if book.AddedBy != user.ID {
		fail(w, ErrAuthorization, "You are not authorized to edit this book.")
		return
	}
	genres, err := h.Books.DistinctGenres(r.Context())
	if err != nil {
		log.Printf("edit book page: genres: %v", err)
		genres = []string{}
	}
	writeJSON(w, http.StatusOK, BookFormPage{Genres: genres, Book: book})
}

// LoginPage and SignupPage are guest-only navigation targets; the
// guard redirects authenticated users away before they land here.
func (h *PagesHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"page": "login"})
}

func (h *PagesHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"page": "signup"})
}
