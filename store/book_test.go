package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count int64
		want  int
	}{
		{0, 0},
		{1, 1},
		{5, 1},
		{6, 2},
		{10, 2},
		{11, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.count, BooksPerPage), "count %d", tt.count)
	}
}

func TestListFilterMatch(t *testing.T) {
	assert.Equal(t, bson.M{}, ListFilter{}.match())

	assert.Equal(t, bson.M{"genre": "SciFi"}, ListFilter{Genre: "SciFi"}.match())

	m := ListFilter{Query: "dune"}.match()
	or, ok := m["$or"].(bson.A)
	assert.True(t, ok)
	assert.Len(t, or, 2)
	assert.Equal(t, bson.M{"title": bson.M{"$regex": "dune", "$options": "i"}}, or[0])
	assert.Equal(t, bson.M{"author": bson.M{"$regex": "dune", "$options": "i"}}, or[1])
}

func TestListPipelinePaging(t *testing.T) {
	p := listPipeline(ListFilter{}, 3)

	var skip, limit int
	var sorted, projected bool
	for _, stage := range p {
		switch stage[0].Key {
		case "$skip":
			skip = stage[0].Value.(int)
		case "$limit":
			limit = stage[0].Value.(int)
		case "$sort":
			sorted = true
		case "$project":
			projected = true
		}
	}
	assert.Equal(t, 2*BooksPerPage, skip)
	assert.Equal(t, BooksPerPage, limit)
	assert.True(t, sorted, "list pipeline must sort newest-first")
	assert.True(t, projected, "list pipeline must project joined reviews away")
}

func TestAverageRatingDefaultsToZero(t *testing.T) {
	field := averageRatingField()
	ifNull, ok := field["$ifNull"].(bson.A)
	assert.True(t, ok)
	assert.Equal(t, bson.M{"$avg": "$reviews.rating"}, ifNull[0])
	assert.Equal(t, 0, ifNull[1])
}
