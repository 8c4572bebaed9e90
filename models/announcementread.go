package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnnouncementRead is the per (announcement, user) read marker. The pair is
// unique in the collection.
type AnnouncementRead struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	AnnouncementID primitive.ObjectID `json:"announcementId" bson:"announcementId"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId"`
	Read           bool               `json:"read" bson:"read"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// MarkReadRequest sets the marker explicitly instead of toggling it
type MarkReadRequest struct {
	Read *bool `json:"read" validate:"required"`
}

// ToggleReadResponse holds the structure for a toggle result
type ToggleReadResponse struct {
	Status string `json:"status"`
	Read   bool   `json:"read"`
}
