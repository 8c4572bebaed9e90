package databases

// go generate: mockery --name AnnouncementDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ne-attend/ne-attend-api/models"
)

const announcementCollectionName = "announcements"

// AnnouncementDatabase contains the methods to use with the announcement database
type AnnouncementDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Announcement, error)
	FindWithReads(ctx context.Context, filter interface{}, userID primitive.ObjectID) ([]models.AnnouncementWithReads, error)
	InsertOne(ctx context.Context, announcement models.Announcement) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	DeleteOne(ctx context.Context, filter interface{}) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type announcementDatabase struct {
	db DatabaseHelper
}

// NewAnnouncementDatabase initializes a new instance of announcement database with the provided db connection
func NewAnnouncementDatabase(db DatabaseHelper) AnnouncementDatabase {
	return &announcementDatabase{
		db: db,
	}
}

func (a *announcementDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Announcement, error) {
	announcement := &models.Announcement{}
	err := a.db.Collection(announcementCollectionName).FindOne(ctx, filter).Decode(&announcement)
	if err != nil {
		return nil, err
	}
	return announcement, nil
}

// FindWithReads returns the matching announcements newest first, each joined
// with its author and with the read markers belonging to userID
func (a *announcementDatabase) FindWithReads(ctx context.Context, filter interface{}, userID primitive.ObjectID) ([]models.AnnouncementWithReads, error) {
	cursor, err := a.db.Collection(announcementCollectionName).Aggregate(ctx, withReadsPipeline(filter, userID))
	if err != nil {
		return nil, err
	}
	var announcements []models.AnnouncementWithReads
	if err := cursor.Decode(&announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

func withReadsPipeline(filter interface{}, userID primitive.ObjectID) mongo.Pipeline {
	if filter == nil {
		filter = bson.M{}
	}
	return mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: newestFirst()}},
		{{Key: "$lookup", Value: bson.M{
			"from": announcementReadCollectionName,
			"let":  bson.M{"announcementId": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$announcementId", "$$announcementId"}},
					bson.M{"$eq": bson.A{"$userId", userID}},
				}}}},
			},
			"as": "reads",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         userName,
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{"user.password": 0}}},
	}
}

func (a *announcementDatabase) InsertOne(ctx context.Context, announcement models.Announcement) (primitive.ObjectID, error) {
	res, err := a.db.Collection(announcementCollectionName).InsertOne(ctx, announcement)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(res)
}

func (a *announcementDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	return matched(a.db.Collection(announcementCollectionName).UpdateOne(ctx, filter, update))
}

func (a *announcementDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	return deleted(a.db.Collection(announcementCollectionName).DeleteOne(ctx, filter))
}

func (a *announcementDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return a.db.Collection(announcementCollectionName).CountDocuments(ctx, filter)
}
