package databases

// go generate: mockery --name UserDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ne-attend/ne-attend-api/models"
)

const userName = "users"

// UserDatabase contains the methods to use with the user database
type UserDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.User, error)
	Find(ctx context.Context, filter interface{}, limit, page int64) ([]models.User, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	CountByRole(ctx context.Context) ([]models.RoleCount, error)
	InsertOne(ctx context.Context, user models.User) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	DeleteOne(ctx context.Context, filter interface{}) error
}

type userDatabase struct {
	db DatabaseHelper
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

func (u *userDatabase) FindOne(ctx context.Context, filter interface{}) (*models.User, error) {
	user := &models.User{}
	err := u.db.Collection(userName).FindOne(ctx, filter).Decode(&user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userDatabase) Find(ctx context.Context, filter interface{}, limit, page int64) ([]models.User, error) {
	var users []models.User
	cursor, err := u.db.Collection(userName).Find(ctx, filter, newMongoPaginate(limit, page).getPaginatedOpts())
	if err != nil {
		return nil, err
	}
	err = cursor.Decode(&users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (u *userDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := u.db.Collection(userName).CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountByRole groups users by role for the dashboard chart
func (u *userDatabase) CountByRole(ctx context.Context) ([]models.RoleCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cursor, err := u.db.Collection(userName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var counts []models.RoleCount
	if err := cursor.Decode(&counts); err != nil {
		return nil, err
	}
	return counts, nil
}

func (u *userDatabase) InsertOne(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	res, err := u.db.Collection(userName).InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(res)
}

func (u *userDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	return matched(u.db.Collection(userName).UpdateOne(ctx, filter, update))
}

func (u *userDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	return deleted(u.db.Collection(userName).DeleteOne(ctx, filter))
}
