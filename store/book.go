package store

import (
	"context"

	"github.com/shelfspace/bookshelf/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BooksPerPage is the fixed list-page size.
const BooksPerPage = 5

// ListFilter narrows the book list: Query is a case-insensitive
// substring match against title or author, Genre an exact match.
type ListFilter struct {
	Query string
	Genre string
}

func (f ListFilter) match() bson.M {
	filter := bson.M{}
	if f.Query != "" {
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": f.Query, "$options": "i"}},
			bson.M{"author": bson.M{"$regex": f.Query, "$options": "i"}},
		}
	}
	if f.Genre != "" {
		filter["genre"] = f.Genre
	}
	return filter
}

// averageRatingField derives averageRating from a joined "reviews"
// array, 0 when the book has no reviews. Never persisted.
func averageRatingField() bson.M {
	return bson.M{"$ifNull": bson.A{bson.M{"$avg": "$reviews.rating"}, 0}}
}

func listPipeline(filter ListFilter, page int) mongo.Pipeline {
	skip := (page - 1) * BooksPerPage
	return mongo.Pipeline{
		{{Key: "$match", Value: filter.match()}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: BooksPerPage}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "reviews",
			"localField":   "_id",
			"foreignField": "bookId",
			"as":           "reviews",
		}}},
		{{Key: "$addFields", Value: bson.M{"averageRating": averageRatingField()}}},
		{{Key: "$project", Value: bson.M{"reviews": 0}}},
	}
}

// ListBooks returns one page of books newest-first, each annotated
// with its derived average rating, plus the total page count for the
// filter. An empty page is a valid, non-error outcome.
func (db *DB) ListBooks(ctx context.Context, filter ListFilter, page int) ([]models.BookSummary, int, error) {
	if page < 1 {
		page = 1
	}
	cur, err := db.Books().Aggregate(ctx, listPipeline(filter, page))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)
	books := []models.BookSummary{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, 0, err
	}
	count, err := db.Books().CountDocuments(ctx, filter.match())
	if err != nil {
		return nil, 0, err
	}
	return books, TotalPages(count, BooksPerPage), nil
}

// TotalPages is ceil(count/pageSize); 0 pages for 0 matches.
func TotalPages(count int64, pageSize int) int {
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}

func detailPipeline(id primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "reviews",
			"localField":   "_id",
			"foreignField": "bookId",
			"as":           "reviews",
			"pipeline": mongo.Pipeline{
				{{Key: "$lookup", Value: bson.M{
					"from":         "users",
					"localField":   "userId",
					"foreignField": "_id",
					"as":           "user",
				}}},
				{{Key: "$unwind", Value: "$user"}},
				{{Key: "$addFields", Value: bson.M{
					"userId": bson.M{
						"_id":   "$user._id",
						"name":  "$user.name",
						"email": "$user.email",
					},
				}}},
				{{Key: "$project", Value: bson.M{"user": 0}}},
				{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
			},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "addedBy",
			"foreignField": "_id",
			"as":           "addedByUser",
		}}},
		{{Key: "$unwind", Value: "$addedByUser"}},
		{{Key: "$addFields", Value: bson.M{
			"averageRating": averageRatingField(),
			"addedBy": bson.M{
				"_id":  "$addedByUser._id",
				"name": "$addedByUser.name",
			},
		}}},
		{{Key: "$project", Value: bson.M{"addedByUser": 0}}},
	}
}

// BookDetailByID composes the book with its reviews (newest-first,
// each enriched with the author's public identity), the adding user's
// identity, and the derived average rating. Read-only; nil when no
// book matches.
func (db *DB) BookDetailByID(ctx context.Context, id primitive.ObjectID) (*models.BookDetail, error) {
	cur, err := db.Books().Aggregate(ctx, detailPipeline(id))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var results []models.BookDetail
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// BookByID fetches the raw book document, used for ownership checks
// before mutations.
func (db *DB) BookByID(ctx context.Context, id primitive.ObjectID) (*models.Book, error) {
	var book models.Book
	err := db.Books().FindOne(ctx, bson.M{"_id": id}).Decode(&book)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (db *DB) InsertBook(ctx context.Context, book *models.Book) (primitive.ObjectID, error) {
	res, err := db.Books().InsertOne(ctx, book)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

func (db *DB) UpdateBook(ctx context.Context, id primitive.ObjectID, book *models.Book) error {
	update := bson.M{
		"title":         book.Title,
		"author":        book.Author,
		"description":   book.Description,
		"genre":         book.Genre,
		"publishedYear": book.PublishedYear,
		"coverImage":    book.CoverImage,
		"updatedAt":     book.UpdatedAt,
	}
	_, err := db.Books().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}

// DeleteBook removes the book and cascades to its reviews so no
// orphaned review rows remain.
func (db *DB) DeleteBook(ctx context.Context, id primitive.ObjectID) error {
	if _, err := db.Books().DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	_, err := db.Reviews().DeleteMany(ctx, bson.M{"bookId": id})
	return err
}

// BooksByUser lists a user's own books newest-first (profile page).
func (db *DB) BooksByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Book, error) {
	cur, err := db.Books().Find(ctx, bson.M{"addedBy": userID}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	books := []models.Book{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// DistinctGenres backs the list page's genre filter dropdown.
func (db *DB) DistinctGenres(ctx context.Context) ([]string, error) {
	values, err := db.Books().Distinct(ctx, "genre", bson.M{})
	if err != nil {
		return nil, err
	}
	genres := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			genres = append(genres, s)
		}
	}
	return genres, nil
}
