package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement holds the structure for the announcement collection in mongo
type Announcement struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AnnouncementWithReads is an announcement joined with its author and the
// read markers that were looked up alongside it
type AnnouncementWithReads struct {
	Announcement `bson:",inline"`
	User         *UserSummary       `json:"user,omitempty" bson:"user,omitempty"`
	Reads        []AnnouncementRead `json:"reads" bson:"reads"`
}

// AnnouncementView is what clients receive: the marker rows collapsed into a
// single flag for the requesting user
type AnnouncementView struct {
	Announcement
	User *UserSummary `json:"user,omitempty"`
	Read bool         `json:"read"`
}

// CreateAnnouncementRequest holds the structure for creating a new announcement
type CreateAnnouncementRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1"`
}

// UpdateAnnouncementRequest holds the structure for updating an announcement
type UpdateAnnouncementRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
}

// AnnouncementsResponse wraps a list of announcement views
type AnnouncementsResponse struct {
	Announcements []AnnouncementView `json:"announcements"`
	Pagination    Pagination         `json:"pagination"`
}

// Pagination describes a page of results
type Pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	Limit        int64 `json:"limit"`
}
