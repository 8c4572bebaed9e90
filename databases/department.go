package databases

// go generate: mockery --name DepartmentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ne-attend/ne-attend-api/models"
)

const departmentCollectionName = "departments"

// DepartmentDatabase contains the methods to use with the department database
type DepartmentDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Department, error)
	Find(ctx context.Context, filter interface{}) ([]models.Department, error)
	InsertOne(ctx context.Context, department models.Department) (primitive.ObjectID, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) error
	DeleteOne(ctx context.Context, filter interface{}) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type departmentDatabase struct {
	db DatabaseHelper
}

// NewDepartmentDatabase initializes a new instance of department database with the provided db connection
func NewDepartmentDatabase(db DatabaseHelper) DepartmentDatabase {
	return &departmentDatabase{
		db: db,
	}
}

func (d *departmentDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Department, error) {
	department := &models.Department{}
	err := d.db.Collection(departmentCollectionName).FindOne(ctx, filter).Decode(&department)
	if err != nil {
		return nil, err
	}
	return department, nil
}

func (d *departmentDatabase) Find(ctx context.Context, filter interface{}) ([]models.Department, error) {
	var departments []models.Department
	cursor, err := d.db.Collection(departmentCollectionName).Find(ctx, filter, newMongoPaginate(0, 0).getPaginatedOpts())
	if err != nil {
		return nil, err
	}
	if err := cursor.Decode(&departments); err != nil {
		return nil, err
	}
	return departments, nil
}

func (d *departmentDatabase) InsertOne(ctx context.Context, department models.Department) (primitive.ObjectID, error) {
	res, err := d.db.Collection(departmentCollectionName).InsertOne(ctx, department)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedID(res)
}

func (d *departmentDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) error {
	return matched(d.db.Collection(departmentCollectionName).UpdateOne(ctx, filter, update))
}

func (d *departmentDatabase) DeleteOne(ctx context.Context, filter interface{}) error {
	return deleted(d.db.Collection(departmentCollectionName).DeleteOne(ctx, filter))
}

func (d *departmentDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return d.db.Collection(departmentCollectionName).CountDocuments(ctx, filter)
}
