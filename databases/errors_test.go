package databases

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, translate(dup), ErrDuplicate)

	other := errors.New("socket closed")
	assert.Equal(t, other, translate(other))
}

func TestMatchedAndDeleted(t *testing.T) {
	assert.ErrorIs(t, matched(&mongo.UpdateResult{}, nil), ErrNotFound)
	assert.NoError(t, matched(&mongo.UpdateResult{MatchedCount: 1}, nil))
	assert.NoError(t, matched(&mongo.UpdateResult{UpsertedCount: 1}, nil))
	assert.ErrorIs(t, deleted(0, nil), ErrNotFound)
	assert.NoError(t, deleted(1, nil))
}
