package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department holds the structure for the department collection in mongo
type Department struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Code        string             `json:"code" bson:"code"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DepartmentRequest is used to create a department
type DepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Code        string `json:"code" validate:"required,min=1,max=32"`
	Description string `json:"description,omitempty"`
}

// UpdateDepartmentRequest holds optional department edits
type UpdateDepartmentRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Code        *string `json:"code,omitempty" validate:"omitempty,min=1,max=32"`
	Description *string `json:"description,omitempty"`
}
