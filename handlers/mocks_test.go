package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shelfspace/bookshelf/backend/middleware"
	"github.com/shelfspace/bookshelf/backend/models"
	"github.com/shelfspace/bookshelf/backend/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userStoreMock struct {
	userByEmailFn func(ctx context.Context, email string) (*models.User, error)
	createUserFn  func(ctx context.Context, user *models.User) (primitive.ObjectID, error)
}

func (m *userStoreMock) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.userByEmailFn(ctx, email)
}

func (m *userStoreMock) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	return m.createUserFn(ctx, user)
}

type bookStoreMock struct {
	listBooksFn      func(ctx context.Context, filter store.ListFilter, page int) ([]models.BookSummary, int, error)
	bookDetailFn     func(ctx context.Context, id primitive.ObjectID) (*models.BookDetail, error)
	bookByIDFn       func(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	insertBookFn     func(ctx context.Context, book *models.Book) (primitive.ObjectID, error)
	updateBookFn     func(ctx context.Context, id primitive.ObjectID, book *models.Book) error
	deleteBookFn     func(ctx context.Context, id primitive.ObjectID) error
	booksByUserFn    func(ctx context.Context, userID primitive.ObjectID) ([]models.Book, error)
	distinctGenresFn func(ctx context.Context) ([]string, error)
}

func (m *bookStoreMock) ListBooks(ctx context.Context, filter store.ListFilter, page int) ([]models.BookSummary, int, error) {
	return m.listBooksFn(ctx, filter, page)
}

func (m *bookStoreMock) BookDetailByID(ctx context.Context, id primitive.ObjectID) (*models.BookDetail, error) {
	return m.bookDetailFn(ctx, id)
}

func (m *bookStoreMock) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	return m.bookByIDFn(ctx, id)
}

func (m *bookStoreMock) InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error) {
	return m.insertBookFn(ctx, book)
}

func (m *bookStoreMock) UpdateBook(ctx context.Context, id primitive.ObjectID, book *models.Book) error {
	return m.updateBookFn(ctx, id, book)
}

func (m *bookStoreMock) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	return m.deleteBookFn(ctx, id)
}

func (m *bookStoreMock) BooksByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Book, error) {
	return m.booksByUserFn(ctx, userID)
}

func (m *bookStoreMock) DistinctGenres(ctx context.Context) ([]string, error) {
	return m.distinctGenresFn(ctx)
}

type reviewStoreMock struct {
	bookByIDFn     func(ctx context.Context, id primitive.ObjectID) (*models.Book, error)
	reviewByIDFn   func(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	byBookAndUser  func(ctx context.Context, bookID, userID primitive.ObjectID) (*models.Review, error)
	insertReviewFn func(ctx context.Context, review *models.Review) (primitive.ObjectID, error)
	deleteReviewFn func(ctx context.Context, id primitive.ObjectID) error
}

func (m *reviewStoreMock) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	return m.bookByIDFn(ctx, id)
}

func (m *reviewStoreMock) ReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return m.reviewByIDFn(ctx, id)
}

func (m *reviewStoreMock) ReviewByBookAndUser(ctx context.Context, bookID, userID primitive.ObjectID) (*models.Review, error) {
	return m.byBookAndUser(ctx, bookID, userID)
}

func (m *reviewStoreMock) InsertReview(ctx context.Context, review *models.Review) (primitive.ObjectID, error) {
	return m.insertReviewFn(ctx, review)
}

func (m *reviewStoreMock) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	return m.deleteReviewFn(ctx, id)
}

// testRouter mounts the handlers the way main does, with user (when
// non-nil) injected into every request's context in place of the
// session resolver.
func testRouter(user *models.User, mount func(r chi.Router)) http.Handler {
	r := chi.NewRouter()
	if user != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				req = req.WithContext(middleware.ContextWithUser(req.Context(), user))
				next.ServeHTTP(w, req)
			})
		})
	}
	mount(r)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) Result {
	t.Helper()
	var res Result
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return res
}

func validBookInput() BookInput {
	return BookInput{
		Title:         "Dune",
		Author:        "Herbert",
		PublishedYear: 1965,
		Genre:         "SciFi",
		Description:   "A desert planet epic.",
	}
}
