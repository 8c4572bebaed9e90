package databases

// go generate: mockery --name CourseDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ne-attend/ne-attend-api/models"
)

const courseCollectionName = "courses"

// CourseDatabase contains the methods to use with the course database
type CourseDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Course, error)
	Find(ctx context.Context, filter interface{}) ([]models.Course, error)
	InsertOne(ctx context.Context, course models.Course) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	DeleteOne(ctx context.Context, filter interface{}) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type courseDatabase struct {
	db DatabaseHelper
}

// NewCourseDatabase initializes a new instance of course database with the provided db connection
func NewCourseDatabase(db DatabaseHelper) CourseDatabase {
	return &courseDatabase{
		db: db,
	}
}

func (c *courseDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Course, error) {
	course := &models.Course{}
	err := c.db.Collection(courseCollectionName).FindOne(ctx, filter).Decode(&course)
	if err != nil {
		return nil, err
	}
	return course, nil
}

func (c *courseDatabase) Find(ctx context.Context, filter interface{}) ([]models.Course, error) {
	var courses []models.Course
	cursor, err := c.db.Collection(courseCollectionName).Find(ctx, filter, newMongoPaginate(0, 0).getPaginatedOpts())
	if err != nil {
		return nil, err
	}
	if err := cursor.Decode(&courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *courseDatabase) InsertOne(ctx context.Context, course models.Course) (primitive.ObjectID, error) {
	res, err := c.db.Collection(courseCollectionName).InsertOne(ctx, course)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(res)
}

func (c *courseDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	return matched(c.db.Collection(courseCollectionName).UpdateOne(ctx, filter, update))
}

func (c *courseDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	return deleted(c.db.Collection(courseCollectionName).DeleteOne(ctx, filter))
}

func (c *courseDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return c.db.Collection(courseCollectionName).CountDocuments(ctx, filter)
}
