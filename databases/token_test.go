package databases_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/databases/mocks"
	"github.com/ne-attend/ne-attend-api/models"
)

func TestTokenDatabase_InsertOneIgnoresDuplicate(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	token := models.RevokedToken{JTI: "abc"}
	collectionHelper.On("InsertOne", context.Background(), token).Return(nil, fmt.Errorf("%w: E11000", databases.ErrDuplicate))
	dbHelper.On("Collection", "revokedtokens").Return(collectionHelper)

	assert.NoError(t, databases.NewTokenDatabase(dbHelper).InsertOne(context.Background(), token))
}

func TestTokenDatabase_Exists(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("CountDocuments", context.Background(), bson.M{"jti": "revoked"}).Return(int64(1), nil)
	collectionHelper.On("CountDocuments", context.Background(), bson.M{"jti": "live"}).Return(int64(0), nil)
	dbHelper.On("Collection", "revokedtokens").Return(collectionHelper)

	tokenDba := databases.NewTokenDatabase(dbHelper)

	ok, err := tokenDba.Exists(context.Background(), "revoked")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = tokenDba.Exists(context.Background(), "live")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenDatabase_DeleteExpired(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	now := time.Now()
	collectionHelper.On("DeleteMany", context.Background(), bson.M{"expiresAt": bson.M{"$lte": now}}).Return(int64(4), nil)
	dbHelper.On("Collection", "revokedtokens").Return(collectionHelper)

	n, err := databases.NewTokenDatabase(dbHelper).DeleteExpired(context.Background(), now)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestEnsureIndexes(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("CreateIndexes", context.Background(), mock.Anything).Return(nil)
	dbHelper.On("Collection", mock.Anything).Return(collectionHelper)

	assert.NoError(t, databases.EnsureIndexes(context.Background(), dbHelper))
	collectionHelper.AssertNumberOfCalls(t, "CreateIndexes", 6)
}

func TestEnsureIndexesError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("CreateIndexes", context.Background(), mock.Anything).Return(fmt.Errorf("boom"))
	dbHelper.On("Collection", "users").Return(collectionHelper)

	err := databases.EnsureIndexes(context.Background(), dbHelper)
	assert.EqualError(t, err, "create indexes on users: boom")
}
