package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shelfspace/bookshelf/backend/middleware"
	"github.com/shelfspace/bookshelf/backend/models"
	"github.com/shelfspace/bookshelf/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultCoverImage is substituted when a book is saved without a
// cover URL.
const DefaultCoverImage = "https://picsum.photos/seed/book-cover-default/400/600"

type BooksHandler struct {
	Store BookStore
}

type BookListResponse struct {
	Books      []models.BookSummary `json:"books"`
	TotalPages int                  `json:"totalPages"`
	Page       int                  `json:"page"`
}

// List serves one page of books filtered by search text and genre,
// each annotated with its average rating.
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parsePage(q.Get("page"))
	filter := store.ListFilter{Query: q.Get("query"), Genre: q.Get("genre")}

	books, totalPages, err := h.Store.ListBooks(r.Context(), filter, page)
	if err != nil {
		// Page-render path: degrade to an empty shelf rather than a
		// fault, matching the detail path's trade-off.
		log.Printf("list books: %v", err)
		writeJSON(w, http.StatusOK, BookListResponse{Books: []models.BookSummary{}, Page: page})
		return
	}
	writeJSON(w, http.StatusOK, BookListResponse{Books: books, TotalPages: totalPages, Page: page})
}

// Get serves the composed detail view. A malformed id short-circuits
// to not-found without touching the store, and store failures are
// logged but reported as not-found on this read path.
func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, ErrNotFound, "Book not found.")
		return
	}
	book, err := h.Store.BookDetailByID(r.Context(), id)
	if err != nil {
		log.Printf("get book %s: %v", id.Hex(), err)
		fail(w, ErrNotFound, "Book not found.")
		return
	}
	if book == nil {
		fail(w, ErrNotFound, "Book not found.")
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		fail(w, ErrUnauthenticated, "Authentication required.")
		return
	}
	var input BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		fail(w, ErrValidation, "Invalid data provided.")
		return
	}
	if err := validate.Struct(input); err != nil {
		failFields(w, "Invalid data provided.", fieldErrors(err))
		return
	}

	coverImage := input.CoverImage
	if coverImage == "" {
		coverImage = DefaultCoverImage
	}
	now := time.Now()
	book := &models.Book{
		Title:         input.Title,
		Author:        input.Author,
		Description:   input.Description,
		Genre:         input.Genre,
		PublishedYear: input.PublishedYear,
		CoverImage:    coverImage,
		AddedBy:       user.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	id, err := h.Store.InsertBook(r.Context(), book)
	if err != nil {
		internalError(w, "create book", err)
		return
	}
	created(w, "Book added successfully.", "/books/"+id.Hex())
}

func (h *BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var input BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		fail(w, ErrValidation, "Invalid data provided.")
		return
	}
	if err := validate.Struct(input); err != nil {
		failFields(w, "Invalid data provided.", fieldErrors(err))
		return
	}

	book, err := h.Store.BookByID(r.Context(), id)
	if err != nil {
		internalError(w, "update book: fetch", err)
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

	coverImage := input.CoverImage
	if coverImage == "" {
		coverImage = DefaultCoverImage
	}
	updated := &models.Book{
		Title:         input.Title,
		Author:        input.Author,
		Description:   input.Description,
		Genre:         input.Genre,
		PublishedYear: input.PublishedYear,
		CoverImage:    coverImage,
		UpdatedAt:     time.Now(),
	}
	if err := h.Store.UpdateBook(r.Context(), id, updated); err != nil {
		internalError(w, "update book", err)
		return
	}
	ok(w, "Book updated successfully.", "/books/"+id.Hex())
}

// Delete removes a book and cascades to its reviews. Owner-gated like
// Update, and reported through the same Result contract.
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	book, err := h.Store.BookByID(r.Context(), id)
	if err != nil {
		internalError(w, "delete book: fetch", err)
		return
	}
	if book == nil {
		fail(w, ErrNotFound, "Book not found.")
		return
	}
	if book.AddedBy != user.ID {
		fail(w, ErrAuthorization, "You are not authorized to delete this book.")
		return
	}
	if err := h.Store.DeleteBook(r.Context(), id); err != nil {
		internalError(w, "delete book", err)
		return
	}
	ok(w, "Book deleted.", "/books")
}

// Genres serves the distinct genre values for the filter dropdown.
func (h *BooksHandler) Genres(w http.ResponseWriter, r *http.Request) {
	genres, err := h.Store.DistinctGenres(r.Context())
	if err != nil {
		log.Printf("genres: %v", err)
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	writeJSON(w, http.StatusOK, genres)
}
