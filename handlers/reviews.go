package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shelfspace/bookshelf/backend/middleware"
	"github.com/shelfspace/bookshelf/backend/models"
	"github.com/shelfspace/bookshelf/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewsHandler struct {
	Store ReviewStore
}

// Create posts a review on a book. A user gets at most one review per
// book; the pre-check gives the friendly message and the unique
// (bookId, userId) index settles concurrent double-submits.
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, authed := middleware.UserFromContext(r.Context())
	if !authed {
		fail(w, ErrUnauthenticated, "You must be logged in to post a review.")
		return
	}
	bookID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, ErrNotFound, "Book not found.")
		return
	}
	var input ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		fail(w, ErrValidation, "Invalid data provided.")
		return
	}
	if err := validate.Struct(input); err != nil {
		failFields(w, "Invalid data provided.", fieldErrors(err))
		return
	}

	book, err := h.Store.BookByID(r.Context(), bookID)
	if err != nil {
		internalError(w, "add review: fetch book", err)
		return
	}
	if book == nil {
		fail(w, ErrNotFound, "Book not found.")
		return
	}

	existing, err := h.Store.ReviewByBookAndUser(r.Context(), bookID, user.ID)
	if err != nil {
		internalError(w, "add review: check existing", err)
		return
	}
	if existing != nil {
		fail(w, ErrConflict, "You have already reviewed this book.")
		return
	}

	now := time.Now()
	review := &models.Review{
		BookID:     bookID,
		UserID:     user.ID,
		Rating:     input.Rating,
		ReviewText: input.ReviewText,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := h.Store.InsertReview(r.Context(), review); err != nil {
		if store.IsDuplicateKey(err) {
			fail(w, ErrConflict, "You have already reviewed this book.")
			return
		}
		internalError(w, "add review", err)
		return
	}
	created(w, "Review added successfully.", "/books/"+bookID.Hex())
}

// Delete removes a review; only its author may do so.
func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, authed := middleware.UserFromContext(r.Context())
	if !authed {
		fail(w, ErrUnauthenticated, "Authentication required.")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, ErrNotFound, "Review not found.")
		return
	}
	review, err := h.Store.ReviewByID(r.Context(), id)
	if err != nil {
		internalError(w, "delete review: fetch", err)
		return
	}
	if review == nil {
		fail(w, ErrNotFound, "Review not found.")
		return
	}
	if review.UserID != user.ID {
		fail(w, ErrAuthorization, "You are not authorized to delete this review.")
		return
	}
	if err := h.Store.DeleteReview(r.Context(), id); err != nil {
		internalError(w, "delete review", err)
		return
	}
	ok(w, "Review deleted.", "/books/"+review.BookID.Hex())
}
