package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/databases/mocks"
	"github.com/ne-attend/ne-attend-api/models"
)

func TestAnnouncementDatabase_FindOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelperErr := &mocks.SingleResultHelper{}
	srHelperCorrect := &mocks.SingleResultHelper{}

	id := primitive.NewObjectID()

	srHelperErr.On("Decode", mock.Anything).Return(databases.ErrNotFound)
	srHelperCorrect.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Announcement)
		(*arg).ID = id
		(*arg).Name = "Exam week"
	})

	collectionHelper.On("FindOne", context.Background(), bson.M{"error": true}).Return(srHelperErr)
	collectionHelper.On("FindOne", context.Background(), bson.M{"_id": id}).Return(srHelperCorrect)
	dbHelper.On("Collection", "announcements").Return(collectionHelper)

	announcementDba := databases.NewAnnouncementDatabase(dbHelper)

	announcement, err := announcementDba.FindOne(context.Background(), bson.M{"error": true})
	assert.Nil(t, announcement)
	assert.ErrorIs(t, err, databases.ErrNotFound)

	announcement, err = announcementDba.FindOne(context.Background(), bson.M{"_id": id})
	assert.NoError(t, err)
	assert.Equal(t, "Exam week", announcement.Name)
}

func TestAnnouncementDatabase_FindWithReads(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	userID := primitive.NewObjectID()
	annID := primitive.NewObjectID()

	cursorHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.AnnouncementWithReads)
		*arg = []models.AnnouncementWithReads{{
			Announcement: models.Announcement{ID: annID},
			Reads:        []models.AnnouncementRead{{AnnouncementID: annID, UserID: userID, Read: true}},
		}}
	})

	var captured mongo.Pipeline
	collectionHelper.On("Aggregate", context.Background(), mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(mongo.Pipeline)
		}).
		Return(cursorHelper, nil)
	dbHelper.On("Collection", "announcements").Return(collectionHelper)

	got, err := databases.NewAnnouncementDatabase(dbHelper).FindWithReads(context.Background(), bson.M{}, userID)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.True(t, got[0].Reads[0].Read)

	// match, sort, reads lookup, author lookup, unwind, project
	assert.Len(t, captured, 6)
	assert.Equal(t, "$match", captured[0][0].Key)
	assert.Equal(t, "$lookup", captured[2][0].Key)
	lookup := captured[2][0].Value.(bson.M)
	assert.Equal(t, "announcementreads", lookup["from"])
	assert.Equal(t, "reads", lookup["as"])
}

func TestAnnouncementDatabase_FindWithReadsError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("Aggregate", context.Background(), mock.Anything).Return(nil, errors.New("mocked-error"))
	dbHelper.On("Collection", "announcements").Return(collectionHelper)

	got, err := databases.NewAnnouncementDatabase(dbHelper).FindWithReads(context.Background(), nil, primitive.NewObjectID())
	assert.Nil(t, got)
	assert.EqualError(t, err, "mocked-error")
}

func TestAnnouncementDatabase_UpdateOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	filter := bson.M{"_id": primitive.NewObjectID()}
	update := bson.M{"$set": bson.M{"name": "Moved to Friday"}}
	collectionHelper.On("UpdateOne", context.Background(), filter, update).Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	dbHelper.On("Collection", "announcements").Return(collectionHelper)

	err := databases.NewAnnouncementDatabase(dbHelper).UpdateOne(context.Background(), filter, update)
	assert.NoError(t, err)
}
