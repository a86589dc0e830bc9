package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shelfspace/bookshelf/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func reviewsRouter(user *models.User, mock ReviewStore) http.Handler {
	h := &ReviewsHandler{Store: mock}
	return testRouter(user, func(r chi.Router) {
		r.Post("/api/books/{id}/reviews", h.Create)
		r.Delete("/api/reviews/{id}", h.Delete)
	})
}

func TestAddReview(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	bookID := primitive.NewObjectID()
	var saved *models.Review
	router := reviewsRouter(user, &reviewStoreMock{
		bookByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
			return &models.Book{ID: bookID}, nil
		},
		byBookAndUser: func(ctx context.Context, b, u primitive.ObjectID) (*models.Review, error) {
			assert.Equal(t, bookID, b)
			assert.Equal(t, user.ID, u)
			return nil, nil
		},
		insertReviewFn: func(ctx context.Context, review *models.Review) (primitive.ObjectID, error) {
			saved = review
			return primitive.NewObjectID(), nil
		},
	})

	w := doJSON(t, router, http.MethodPost, "/api/books/"+bookID.Hex()+"/reviews", ReviewInput{
		Rating: 5, ReviewText: "A masterpiece.",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, saved)
	assert.Equal(t, bookID, saved.BookID)
	assert.Equal(t, user.ID, saved.UserID)
	assert.Equal(t, 5, saved.Rating)
}

func TestAddReviewTwiceConflicts(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	bookID := primitive.NewObjectID()
	router := reviewsRouter(user, &reviewStoreMock{
		bookByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
			return &models.Book{ID: bookID}, nil
		},
		byBookAndUser: func(ctx context.Context, b, u primitive.ObjectID) (*models.Review, error) {
			return &models.Review{BookID: b, UserID: u}, nil
		},
		insertReviewFn: func(ctx context.Context, review *models.Review) (primitive.ObjectID, error) {
			t.Fatal("duplicate review must not reach the write")
			return primitive.NilObjectID, nil
		},
	})

	w := doJSON(t, router, http.MethodPost, "/api/books/"+bookID.Hex()+"/reviews", ReviewInput{
		Rating: 3, ReviewText: "Again.",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "You have already reviewed this book.", decodeResult(t, w).Message)
}

func TestAddReviewValidatesRating(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	bookID := primitive.NewObjectID()
	router := reviewsRouter(user, &reviewStoreMock{})

	for _, rating := range []int{0, 6, -1} {
		w := doJSON(t, router, http.MethodPost, "/api/books/"+bookID.Hex()+"/reviews", ReviewInput{
			Rating: rating, ReviewText: "Fine.",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "rating %d", rating)
	}

	w := doJSON(t, router, http.MethodPost, "/api/books/"+bookID.Hex()+"/reviews", ReviewInput{
		Rating: 4,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Review text cannot be empty.", decodeResult(t, w).Errors["reviewText"])
}

func TestAddReviewRequiresLogin(t *testing.T) {
	router := reviewsRouter(nil, &reviewStoreMock{})

	w := doJSON(t, router, http.MethodPost, "/api/books/"+primitive.NewObjectID().Hex()+"/reviews", ReviewInput{
		Rating: 4, ReviewText: "Nice.",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "You must be logged in to post a review.", decodeResult(t, w).Message)
}

func TestAddReviewOnMissingBook(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	router := reviewsRouter(user, &reviewStoreMock{
		bookByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
			return nil, nil
		},
	})

	w := doJSON(t, router, http.MethodPost, "/api/books/"+primitive.NewObjectID().Hex()+"/reviews", ReviewInput{
		Rating: 4, ReviewText: "Nice.",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteReviewByAuthor(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID()}
	reviewID := primitive.NewObjectID()
	deleted := false
	router := reviewsRouter(user, &reviewStoreMock{
		reviewByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
			return &models.Review{ID: reviewID, UserID: user.ID, BookID: primitive.NewObjectID()}, nil
		},
		deleteReviewFn: func(ctx context.Context, id primitive.ObjectID) error {
			assert.Equal(t, reviewID, id)
			deleted = true
			return nil
		},
	})

	w := doJSON(t, router, http.MethodDelete, "/api/reviews/"+reviewID.Hex(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, deleted)
}

func TestDeleteReviewByNonAuthor(t *testing.T) {
	author := primitive.NewObjectID()
	other := &models.User{ID: primitive.NewObjectID()}
	reviewID := primitive.NewObjectID()
	router := reviewsRouter(other, &reviewStoreMock{
		reviewByIDFn: func(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
			return &models.Review{ID: reviewID, UserID: author}, nil
		},
		deleteReviewFn: func(ctx context.Context, id primitive.ObjectID) error {
			t.Fatal("non-author must not reach the delete")
			return nil
		},
	})

	w := doJSON(t, router, http.MethodDelete, "/api/reviews/"+reviewID.Hex(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
