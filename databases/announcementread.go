package databases

// go generate: mockery --name AnnouncementReadDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ne-attend/ne-attend-api/models"
)

const announcementReadCollectionName = "announcementreads"

// AnnouncementReadDatabase contains the methods to use with the announcement read database
type AnnouncementReadDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.AnnouncementRead, error)
	Find(ctx context.Context, filter interface{}) ([]models.AnnouncementRead, error)
	InsertOne(ctx context.Context, announcementRead models.AnnouncementRead) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	Upsert(ctx context.Context, announcementID, userID primitive.ObjectID, read bool) (*models.AnnouncementRead, error)
	DeleteOne(ctx context.Context, filter interface{}) error
	DeleteMany(ctx context.Context, filter interface{}) (int64, error)
}

type announcementReadDatabase struct {
	db DatabaseHelper
}

// NewAnnouncementReadDatabase initializes a new instance of announcement read database with the provided db connection
func NewAnnouncementReadDatabase(db DatabaseHelper) AnnouncementReadDatabase {
	return &announcementReadDatabase{
		db: db,
	}
}

func (a *announcementReadDatabase) FindOne(ctx context.Context, filter interface{}) (*models.AnnouncementRead, error) {
	announcementRead := &models.AnnouncementRead{}
	err := a.db.Collection(announcementReadCollectionName).FindOne(ctx, filter).Decode(announcementRead)
	if err != nil {
		return nil, err
	}
	return announcementRead, nil
}

func (a *announcementReadDatabase) Find(ctx context.Context, filter interface{}) ([]models.AnnouncementRead, error) {
	var reads []models.AnnouncementRead
	cursor, err := a.db.Collection(announcementReadCollectionName).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := cursor.Decode(&reads); err != nil {
		return nil, err
	}
	return reads, nil
}

func (a *announcementReadDatabase) InsertOne(ctx context.Context, announcementRead models.AnnouncementRead) (primitive.ObjectID, error) {
	res, err := a.db.Collection(announcementReadCollectionName).InsertOne(ctx, announcementRead)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(res)
}

func (a *announcementReadDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	return matched(a.db.Collection(announcementReadCollectionName).UpdateOne(ctx, filter, update))
}

// Upsert writes the marker for the pair, creating it when missing, and
// returns the stored row
func (a *announcementReadDatabase) Upsert(ctx context.Context, announcementID, userID primitive.ObjectID, read bool) (*models.AnnouncementRead, error) {
	now := time.Now().UTC()
	filter := bson.M{"announcementId": announcementID, "userId": userID}
	update := bson.M{
		"$set":         bson.M{"read": read, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	announcementRead := &models.AnnouncementRead{}
	err := a.db.Collection(announcementReadCollectionName).FindOneAndUpdate(ctx, filter, update, opts).Decode(announcementRead)
	if err != nil {
		return nil, err
	}
	return announcementRead, nil
}

func (a *announcementReadDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	return deleted(a.db.Collection(announcementReadCollectionName).DeleteOne(ctx, filter))
}

func (a *announcementReadDatabase) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	return a.db.Collection(announcementReadCollectionName).DeleteMany(ctx, filter)
}
