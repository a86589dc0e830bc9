package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Author        string             `bson:"author" json:"author"`
	Description   string             `bson:"description" json:"description"`
	Genre         string             `bson:"genre" json:"genre"`
	PublishedYear int                `bson:"publishedYear" json:"publishedYear"`
	CoverImage    string             `bson:"coverImage" json:"coverImage"`
	AddedBy       primitive.ObjectID `bson:"addedBy" json:"addedBy"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BookSummary is a list-page row: the book plus its derived average
// rating, with the joined reviews projected away.
type BookSummary struct {
	Book          `bson:",inline"`
	AverageRating float64 `bson:"averageRating" json:"averageRating"`
}

// BookDetail is the composed detail-page document: the book joined
// with its reviews (each carrying the author's public identity), the
// adding user's identity, and the derived average rating.
type BookDetail struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Author        string             `bson:"author" json:"author"`
	Description   string             `bson:"description" json:"description"`
	Genre         string             `bson:"genre" json:"genre"`
	PublishedYear int                `bson:"publishedYear" json:"publishedYear"`
	CoverImage    string             `bson:"coverImage" json:"coverImage"`
	AddedBy       UserRef            `bson:"addedBy" json:"addedBy"`
	Reviews       []ReviewWithUser   `bson:"reviews" json:"reviews"`
	AverageRating float64            `bson:"averageRating" json:"averageRating"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
