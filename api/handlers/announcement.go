package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/ne-attend/ne-attend-api/api"
	"github.com/ne-attend/ne-attend-api/config"
	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/models"
	"github.com/ne-attend/ne-attend-api/readstate"
)

// Announcement struct for handling announcement operations
type Announcement struct {
	ADB   databases.AnnouncementDatabase
	RDB   databases.AnnouncementReadDatabase
	Reads readstate.Tracker
	Hub   *Hub
}

type viewFunc func([]models.AnnouncementWithReads, primitive.ObjectID) []models.AnnouncementView

// list runs the joined query and applies one of the read-state views
func (a Announcement) list(w http.ResponseWriter, r *http.Request, filter func(primitive.ObjectID) bson.M, view viewFunc) {
	userID, err := api.CurrentUserID(r)
	if err != nil {
		config.ErrorStatus("failed to get current user", http.StatusUnauthorized, w, err)
		return
	}
	page, limit := pageParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	items, err := a.ADB.FindWithReads(ctx, filter(userID), userID)
	if err != nil {
		config.ErrorStatus("failed to get announcements", http.StatusInternalServerError, w, err)
		return
	}

	views, pagination := paginate(view(items, userID), page, limit)
	respond(w, http.StatusOK, models.AnnouncementsResponse{
		Announcements: views,
		Pagination:    pagination,
	})
}

func everything(primitive.ObjectID) bson.M { return bson.M{} }

// AnnouncementsHandler returns every announcement with the caller's read flag
func (a Announcement) AnnouncementsHandler(w http.ResponseWriter, r *http.Request) {
	a.list(w, r, everything, readstate.All)
}

// InboxHandler returns announcements by others that the caller has not read
func (a Announcement) InboxHandler(w http.ResponseWriter, r *http.Request) {
	a.list(w, r, func(me primitive.ObjectID) bson.M {
		return bson.M{"userId": bson.M{"$ne": me}}
	}, readstate.Inbox)
}

// MineHandler returns the caller's own announcements
func (a Announcement) MineHandler(w http.ResponseWriter, r *http.Request) {
	a.list(w, r, func(me primitive.ObjectID) bson.M {
		return bson.M{"userId": me}
	}, readstate.Mine)
}

// ReadHandler returns the announcements the caller has marked read
func (a Announcement) ReadHandler(w http.ResponseWriter, r *http.Request) {
	a.list(w, r, everything, readstate.ReadView)
}

// CreateAnnouncementHandler publishes a new announcement authored by the caller
func (a Announcement) CreateAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := api.CurrentUserID(r)
	if err != nil {
		config.ErrorStatus("failed to get current user", http.StatusUnauthorized, w, err)
		return
	}

	var req models.CreateAnnouncementRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate announcement", http.StatusBadRequest, w, err)
		return
	}

	now := time.Now().UTC()
	announcement := models.Announcement{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	announcement.ID, err = a.ADB.InsertOne(ctx, announcement)
	if err != nil {
		storageError("failed to create announcement", w, err)
		return
	}

	zap.S().Infow("announcement created", "announcementId", announcement.ID.Hex(), "userId", userID.Hex())
	a.Hub.Broadcast(EventAnnouncementCreated, announcement)
	respond(w, http.StatusCreated, announcement)
}

// owned loads the announcement in the path and checks the caller wrote it
func (a Announcement) owned(w http.ResponseWriter, r *http.Request) (*models.Announcement, bool) {
	userID, err := api.CurrentUserID(r)
	if err != nil {
		config.ErrorStatus("failed to get current user", http.StatusUnauthorized, w, err)
		return nil, false
	}
	id, err := pathID(r, "announcement_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return nil, false
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	announcement, err := a.ADB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		storageError("failed to get announcement by ID", w, err)
		return nil, false
	}
	if announcement.UserID != userID {
		config.ErrorStatus("forbidden", http.StatusForbidden, w, errors.New("only the author may change this announcement"))
		return nil, false
	}
	return announcement, true
}

// UpdateAnnouncementHandler edits the name or description of the caller's announcement
func (a Announcement) UpdateAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	announcement, ok := a.owned(w, r)
	if !ok {
		return
	}

	var req models.UpdateAnnouncementRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate announcement", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
		announcement.Name = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
		announcement.Description = *req.Description
	}
	announcement.UpdatedAt = set["updatedAt"].(time.Time)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := a.ADB.UpdateOne(ctx, bson.M{"_id": announcement.ID}, bson.M{"$set": set}); err != nil {
		storageError("failed to update announcement", w, err)
		return
	}

	a.Hub.Broadcast(EventAnnouncementUpdated, announcement)
	respond(w, http.StatusOK, announcement)
}

// DeleteAnnouncementHandler removes the caller's announcement and every read marker on it
func (a Announcement) DeleteAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	announcement, ok := a.owned(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := a.ADB.DeleteOne(ctx, bson.M{"_id": announcement.ID}); err != nil {
		storageError("failed to delete announcement", w, err)
		return
	}
	n, err := a.Reads.Purge(ctx, bson.M{"announcementId": announcement.ID})
	if err != nil {
		// the announcement is gone; orphaned markers never show up in a view
		zap.S().Errorw("failed to purge read markers", "announcementId", announcement.ID.Hex(), "error", err)
	}
	zap.S().Infow("announcement deleted", "announcementId", announcement.ID.Hex(), "markers", n)

	a.Hub.Broadcast(EventAnnouncementDeleted, bson.M{"_id": announcement.ID})
	respond(w, http.StatusOK, models.DeleteResponse{Success: true, ID: announcement.ID.Hex()})
}

// target resolves the caller and the announcement in the path, checking it exists
func (a Announcement) target(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, primitive.ObjectID, bool) {
	userID, err := api.CurrentUserID(r)
	if err != nil {
		config.ErrorStatus("failed to get current user", http.StatusUnauthorized, w, err)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	id, err := pathID(r, "announcement_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if _, err := a.ADB.FindOne(ctx, bson.M{"_id": id}); err != nil {
		storageError("failed to get announcement by ID", w, err)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return id, userID, true
}

// ToggleReadHandler flips the caller's read flag on an announcement
func (a Announcement) ToggleReadHandler(w http.ResponseWriter, r *http.Request) {
	id, userID, ok := a.target(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	res, err := a.Reads.Toggle(ctx, id, userID)
	if err != nil {
		storageError("failed to toggle read state", w, err)
		return
	}

	a.Hub.SendToUser(userID.Hex(), EventReadChanged, bson.M{"announcementId": id, "read": res.Read})
	respond(w, http.StatusOK, models.ToggleReadResponse{Status: string(res.Status), Read: res.Read})
}

// MarkReadHandler sets the caller's read flag explicitly
func (a Announcement) MarkReadHandler(w http.ResponseWriter, r *http.Request) {
	id, userID, ok := a.target(w, r)
	if !ok {
		return
	}

	var req models.MarkReadRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate read state", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	marker, err := a.Reads.MarkRead(ctx, id, userID, *req.Read)
	if err != nil {
		storageError("failed to set read state", w, err)
		return
	}

	a.Hub.SendToUser(userID.Hex(), EventReadChanged, bson.M{"announcementId": id, "read": marker.Read})
	respond(w, http.StatusOK, marker)
}

// RemoveReadHandler deletes the caller's marker so the announcement counts as never opened
func (a Announcement) RemoveReadHandler(w http.ResponseWriter, r *http.Request) {
	id, userID, ok := a.target(w, r)
	if !ok {
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := a.Reads.Remove(ctx, id, userID); err != nil {
		storageError("failed to remove read state", w, err)
		return
	}

	a.Hub.SendToUser(userID.Hex(), EventReadChanged, bson.M{"announcementId": id, "read": false})
	respond(w, http.StatusOK, models.DeleteResponse{Success: true, ID: id.Hex()})
}

// ReadsHandler lists the caller's raw marker rows, optionally filtered by ?read=
func (a Announcement) ReadsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := api.CurrentUserID(r)
	if err != nil {
		config.ErrorStatus("failed to get current user", http.StatusUnauthorized, w, err)
		return
	}

	filter := bson.M{"userId": userID}
	if v := r.URL.Query().Get("read"); v != "" {
		read, err := strconv.ParseBool(v)
		if err != nil {
			config.ErrorStatus("failed to parse read filter", http.StatusBadRequest, w, fmt.Errorf("read must be true or false"))
			return
		}
		filter["read"] = read
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	reads, err := a.RDB.Find(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get read markers", http.StatusInternalServerError, w, err)
		return
	}
	if reads == nil {
		reads = []models.AnnouncementRead{}
	}
	respond(w, http.StatusOK, reads)
}
