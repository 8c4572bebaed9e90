// Package readstate derives per-user read flags for announcements and keeps
// the (announcement, user) marker rows in step with toggles.
package readstate

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/models"
)

// ToggleStatus says whether a toggle created the marker or flipped an existing one
type ToggleStatus string

const (
	StatusInserted ToggleStatus = "inserted"
	StatusUpdated  ToggleStatus = "updated"
)

// IsRead reports whether userID holds a marker with read set. No marker means unread.
func IsRead(reads []models.AnnouncementRead, userID primitive.ObjectID) bool {
	for _, r := range reads {
		if r.UserID == userID && r.Read {
			return true
		}
	}
	return false
}

// Annotate collapses each item's markers into a single read flag for userID
func Annotate(items []models.AnnouncementWithReads, userID primitive.ObjectID) []models.AnnouncementView {
	views := make([]models.AnnouncementView, 0, len(items))
	for _, item := range items {
		views = append(views, view(item, userID))
	}
	return views
}

func view(item models.AnnouncementWithReads, userID primitive.ObjectID) models.AnnouncementView {
	return models.AnnouncementView{
		Announcement: item.Announcement,
		User:         item.User,
		Read:         IsRead(item.Reads, userID),
	}
}

func filter(items []models.AnnouncementWithReads, userID primitive.ObjectID, keep func(models.AnnouncementView) bool) []models.AnnouncementView {
	views := []models.AnnouncementView{}
	for _, item := range items {
		v := view(item, userID)
		if keep(v) {
			views = append(views, v)
		}
	}
	return views
}

// All returns every announcement annotated for userID
func All(items []models.AnnouncementWithReads, userID primitive.ObjectID) []models.AnnouncementView {
	return Annotate(items, userID)
}

// Inbox is the unread view: announcements written by someone else that
// userID has not read
func Inbox(items []models.AnnouncementWithReads, userID primitive.ObjectID) []models.AnnouncementView {
	return filter(items, userID, func(v models.AnnouncementView) bool {
		return v.UserID != userID && !v.Read
	})
}

// Mine returns the announcements userID wrote, read or not
func Mine(items []models.AnnouncementWithReads, userID primitive.ObjectID) []models.AnnouncementView {
	return filter(items, userID, func(v models.AnnouncementView) bool {
		return v.UserID == userID
	})
}

// ReadView returns the announcements userID has marked read
func ReadView(items []models.AnnouncementWithReads, userID primitive.ObjectID) []models.AnnouncementView {
	return filter(items, userID, func(v models.AnnouncementView) bool {
		return v.Read
	})
}

// Next applies the toggle rule to the current marker, which may be nil
func Next(existing *models.AnnouncementRead) (bool, ToggleStatus) {
	if existing == nil {
		return true, StatusInserted
	}
	return !existing.Read, StatusUpdated
}

// ToggleResult is the outcome of a toggle
type ToggleResult struct {
	Status ToggleStatus
	Read   bool
}

// Tracker applies read-state changes to the marker collection
type Tracker struct {
	DB databases.AnnouncementReadDatabase
}

func pairFilter(announcementID, userID primitive.ObjectID) bson.M {
	return bson.M{"announcementId": announcementID, "userId": userID}
}

// Toggle flips the marker for the pair, creating it as read when missing.
// Two first-time toggles racing on the unique index fall back to a flip, so
// the last writer wins.
func (t Tracker) Toggle(ctx context.Context, announcementID, userID primitive.ObjectID) (ToggleResult, error) {
	existing, err := t.find(ctx, announcementID, userID)
	if err != nil {
		return ToggleResult{}, err
	}

	read, status := Next(existing)
	if status == StatusInserted {
		now := time.Now().UTC()
		_, err = t.DB.InsertOne(ctx, models.AnnouncementRead{
			AnnouncementID: announcementID,
			UserID:         userID,
			Read:           read,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err == nil {
			return ToggleResult{Status: status, Read: read}, nil
		}
		if !errors.Is(err, databases.ErrDuplicate) {
			return ToggleResult{}, err
		}
		zap.S().Debugw("marker inserted concurrently, flipping instead",
			"announcementId", announcementID.Hex(),
			"userId", userID.Hex())
		existing, err = t.find(ctx, announcementID, userID)
		if err != nil {
			return ToggleResult{}, err
		}
		if existing == nil {
			return ToggleResult{}, databases.ErrNotFound
		}
		read, status = Next(existing)
	}

	err = t.DB.UpdateOne(ctx, pairFilter(announcementID, userID), bson.M{"$set": bson.M{
		"read":      read,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return ToggleResult{}, err
	}
	return ToggleResult{Status: status, Read: read}, nil
}

// MarkRead sets the marker to read, creating it when missing
func (t Tracker) MarkRead(ctx context.Context, announcementID, userID primitive.ObjectID, read bool) (*models.AnnouncementRead, error) {
	return t.DB.Upsert(ctx, announcementID, userID, read)
}

// Remove deletes the marker row, which is not the same as setting it unread.
// Removing a marker that is already gone succeeds.
func (t Tracker) Remove(ctx context.Context, announcementID, userID primitive.ObjectID) error {
	err := t.DB.DeleteOne(ctx, pairFilter(announcementID, userID))
	if errors.Is(err, databases.ErrNotFound) {
		return nil
	}
	return err
}

// Purge drops every marker matching filter, used when an announcement or a user goes away
func (t Tracker) Purge(ctx context.Context, filter bson.M) (int64, error) {
	return t.DB.DeleteMany(ctx, filter)
}

func (t Tracker) find(ctx context.Context, announcementID, userID primitive.ObjectID) (*models.AnnouncementRead, error) {
	existing, err := t.DB.FindOne(ctx, pairFilter(announcementID, userID))
	if errors.Is(err, databases.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return existing, nil
}
