package handlers

import (
	"context"

	"github.com/shelfspace/bookshelf/backend/models"
	"github.com/shelfspace/bookshelf/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The handler packages talk to the store through narrow interfaces so
// tests can swap in mocks; *store.DB satisfies all of them.

type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
}

type BookStore interface {
	ListBooks(ctx context.Context, filter store.ListFilter, page int) ([]models.BookSummary, int, error)
	BookDetailByID(ctx context.Context, id primitive.ObjectID) (*models.BookDetail, error)
	BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error)
	UpdateBook(ctx context.Context, id primitive.ObjectID, book *models.Book) error
	DeleteBook(ctx context.Context, id primitive.ObjectID) error
	BooksByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Book, error)
	DistinctGenres(ctx context.Context) ([]string, error)
}

type ReviewStore interface {
	BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	ReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	ReviewByBookAndUser(ctx context.Context, bookID, userID primitive.ObjectID) (*models.Review, error)
	InsertReview(ctx context.Context, review *models.Review) (primitive.ObjectID, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID) error
}
