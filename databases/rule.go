package databases

// go generate: mockery --name RuleDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ne-attend/ne-attend-api/models"
)

const ruleCollectionName = "rules"

// RuleDatabase contains the methods to use with the rule database
type RuleDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Rule, error)
	FindWithAuthor(ctx context.Context, filter interface{}) ([]models.RuleWithUser, error)
	InsertOne(ctx context.Context, rule models.Rule) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	DeleteOne(ctx context.Context, filter interface{}) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type ruleDatabase struct {
	db DatabaseHelper
}

// NewRuleDatabase initializes a new instance of rule database with the provided db connection
func NewRuleDatabase(db DatabaseHelper) RuleDatabase {
	return &ruleDatabase{
		db: db,
	}
}

func (r *ruleDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Rule, error) {
	rule := &models.Rule{}
	err := r.db.Collection(ruleCollectionName).FindOne(ctx, filter).Decode(&rule)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *ruleDatabase) FindWithAuthor(ctx context.Context, filter interface{}) ([]models.RuleWithUser, error) {
	if filter == nil {
		filter = bson.M{}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: newestFirst()}},
		{{Key: "$lookup", Value: bson.M{
			"from":         userName,
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$project", Value: bson.M{"user.password": 0}}},
	}
	cursor, err := r.db.Collection(ruleCollectionName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rules []models.RuleWithUser
	if err := cursor.Decode(&rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ruleDatabase) InsertOne(ctx context.Context, rule models.Rule) (primitive.ObjectID, error) {
	res, err := r.db.Collection(ruleCollectionName).InsertOne(ctx, rule)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(res)
}

func (r *ruleDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	return matched(r.db.Collection(ruleCollectionName).UpdateOne(ctx, filter, update))
}

func (r *ruleDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	return deleted(r.db.Collection(ruleCollectionName).DeleteOne(ctx, filter))
}

func (r *ruleDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return r.db.Collection(ruleCollectionName).CountDocuments(ctx, filter)
}
