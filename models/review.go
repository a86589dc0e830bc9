package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review holds a single user's rating of a book. At most one review
// exists per (bookId, userId) pair; the store enforces this with a
// unique compound index.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookID     primitive.ObjectID `bson:"bookId" json:"bookId"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Rating     int                `bson:"rating" json:"rating"` // 1..5
	ReviewText string             `bson:"reviewText" json:"reviewText"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ReviewWithUser is a review row as it appears inside an aggregated
// book detail, with the author's public identity in place of the raw
// userId reference.
type ReviewWithUser struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	BookID     primitive.ObjectID `bson:"bookId" json:"bookId"`
	User       UserRef            `bson:"userId" json:"user"`
	Rating     int                `bson:"rating" json:"rating"`
	ReviewText string             `bson:"reviewText" json:"reviewText"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
