package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rule holds the structure for the rule collection in mongo
type Rule struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// RuleWithUser is a rule joined with its author
type RuleWithUser struct {
	Rule `bson:",inline"`
	User *UserSummary `json:"user,omitempty" bson:"user,omitempty"`
}

// RuleRequest is used to create a rule
type RuleRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1"`
}

// UpdateRuleRequest holds optional rule edits
type UpdateRuleRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
}
