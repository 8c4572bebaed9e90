package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course holds the structure for the course collection in mongo
type Course struct {
	ID           primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Name         string              `json:"name" bson:"name"`
	Code         string              `json:"code" bson:"code"`
	Description  string              `json:"description,omitempty" bson:"description,omitempty"`
	DepartmentID *primitive.ObjectID `json:"departmentId,omitempty" bson:"departmentId,omitempty"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// CourseRequest is used to create a course
type CourseRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Code         string `json:"code" validate:"required,min=1,max=32"`
	Description  string `json:"description,omitempty"`
	DepartmentID string `json:"departmentId,omitempty" validate:"omitempty,len=24,hexadecimal"`
}

// UpdateCourseRequest holds optional course edits
type UpdateCourseRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Code         *string `json:"code,omitempty" validate:"omitempty,min=1,max=32"`
	Description  *string `json:"description,omitempty"`
	DepartmentID *string `json:"departmentId,omitempty" validate:"omitempty,len=24,hexadecimal"`
}
