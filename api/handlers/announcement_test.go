package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ne-attend/ne-attend-api/api/handlers"
	"github.com/ne-attend/ne-attend-api/api/testhelpers"
	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/databases/mocks"
	"github.com/ne-attend/ne-attend-api/models"
	"github.com/ne-attend/ne-attend-api/readstate"
)

type announcementFixture struct {
	me, other primitive.ObjectID
	items     []models.AnnouncementWithReads
	mineID    primitive.ObjectID
	readID    primitive.ObjectID
	unreadID  primitive.ObjectID
	freshID   primitive.ObjectID
}

func newAnnouncementFixture() announcementFixture {
	f := announcementFixture{
		me:       primitive.NewObjectID(),
		other:    primitive.NewObjectID(),
		mineID:   primitive.NewObjectID(),
		readID:   primitive.NewObjectID(),
		unreadID: primitive.NewObjectID(),
		freshID:  primitive.NewObjectID(),
	}
	f.items = []models.AnnouncementWithReads{
		{Announcement: models.Announcement{ID: f.mineID, UserID: f.me, Name: "mine"}},
		{Announcement: models.Announcement{ID: f.readID, UserID: f.other, Name: "read"},
			Reads: []models.AnnouncementRead{{AnnouncementID: f.readID, UserID: f.me, Read: true}}},
		{Announcement: models.Announcement{ID: f.unreadID, UserID: f.other, Name: "unread"},
			Reads: []models.AnnouncementRead{{AnnouncementID: f.unreadID, UserID: f.me, Read: false}}},
		{Announcement: models.Announcement{ID: f.freshID, UserID: f.other, Name: "fresh"}},
	}
	return f
}

func decodeViews(t *testing.T, rr *httptest.ResponseRecorder) models.AnnouncementsResponse {
	var resp models.AnnouncementsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func viewIDs(resp models.AnnouncementsResponse) []primitive.ObjectID {
	out := []primitive.ObjectID{}
	for _, v := range resp.Announcements {
		out = append(out, v.ID)
	}
	return out
}

func TestAnnouncement_Views(t *testing.T) {
	f := newAnnouncementFixture()

	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("FindWithReads", mock.Anything, mock.Anything, f.me).Return(f.items, nil)
	a := handlers.Announcement{ADB: adb}

	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    []primitive.ObjectID
	}{
		{"all", a.AnnouncementsHandler, []primitive.ObjectID{f.mineID, f.readID, f.unreadID, f.freshID}},
		{"inbox", a.InboxHandler, []primitive.ObjectID{f.unreadID, f.freshID}},
		{"mine", a.MineHandler, []primitive.ObjectID{f.mineID}},
		{"read", a.ReadHandler, []primitive.ObjectID{f.readID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testhelpers.AsUser(testhelpers.Request("GET", "/api/v1/announcements", nil), f.me, models.RoleStudent)
			rr := httptest.NewRecorder()
			tt.handler.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			resp := decodeViews(t, rr)
			assert.Equal(t, tt.want, viewIDs(resp))
			assert.Equal(t, int64(len(tt.want)), resp.Pagination.TotalRecords)
		})
	}
}

func TestAnnouncement_InboxFilterExcludesOwn(t *testing.T) {
	f := newAnnouncementFixture()

	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("FindWithReads", mock.Anything, bson.M{"userId": bson.M{"$ne": f.me}}, f.me).Return(f.items[1:], nil)
	a := handlers.Announcement{ADB: adb}

	req := testhelpers.AsUser(testhelpers.Request("GET", "/api/v1/announcements/inbox", nil), f.me, models.RoleStudent)
	rr := httptest.NewRecorder()
	a.InboxHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []primitive.ObjectID{f.unreadID, f.freshID}, viewIDs(decodeViews(t, rr)))
}

func TestAnnouncement_ViewsPagination(t *testing.T) {
	f := newAnnouncementFixture()

	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("FindWithReads", mock.Anything, mock.Anything, f.me).Return(f.items, nil)
	a := handlers.Announcement{ADB: adb}

	req := testhelpers.AsUser(testhelpers.Request("GET", "/api/v1/announcements?page=2&limit=3", nil), f.me, models.RoleStudent)
	rr := httptest.NewRecorder()
	a.AnnouncementsHandler(rr, req)

	resp := decodeViews(t, rr)
	assert.Equal(t, []primitive.ObjectID{f.freshID}, viewIDs(resp))
	assert.Equal(t, models.Pagination{CurrentPage: 2, TotalPages: 2, TotalRecords: 4, Limit: 3}, resp.Pagination)
}

func TestAnnouncement_ViewsStorageError(t *testing.T) {
	me := primitive.NewObjectID()
	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("FindWithReads", mock.Anything, mock.Anything, me).Return(nil, errors.New("mocked-error"))
	a := handlers.Announcement{ADB: adb}

	req := testhelpers.AsUser(testhelpers.Request("GET", "/api/v1/announcements", nil), me, models.RoleStudent)
	rr := httptest.NewRecorder()
	a.AnnouncementsHandler(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"response": "failed to get announcements, mocked-error"}`, rr.Body.String())
}

func TestAnnouncement_Create(t *testing.T) {
	me := primitive.NewObjectID()
	newID := primitive.NewObjectID()

	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("InsertOne", mock.Anything, mock.MatchedBy(func(a models.Announcement) bool {
		return a.UserID == me && a.Name == "Midterms" && !a.CreatedAt.IsZero()
	})).Return(newID, nil)
	a := handlers.Announcement{ADB: adb}

	req := testhelpers.AsUser(testhelpers.Request("POST", "/api/v1/announcements",
		models.CreateAnnouncementRequest{Name: "Midterms", Description: "Room 204"}), me, models.RoleInstructor)
	rr := httptest.NewRecorder()
	a.CreateAnnouncementHandler(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var got models.Announcement
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, newID, got.ID)
	assert.Equal(t, me, got.UserID)
}

func TestAnnouncement_CreateValidation(t *testing.T) {
	a := handlers.Announcement{ADB: mocks.NewAnnouncementDatabase(t)}

	req := testhelpers.AsUser(testhelpers.Request("POST", "/api/v1/announcements", `{"name": ""}`), primitive.NewObjectID(), models.RoleInstructor)
	rr := httptest.NewRecorder()
	a.CreateAnnouncementHandler(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "name is a required field")
}

func TestAnnouncement_UpdateAuthorOnly(t *testing.T) {
	author, stranger := primitive.NewObjectID(), primitive.NewObjectID()
	annID := primitive.NewObjectID()

	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("FindOne", mock.Anything, bson.M{"_id": annID}).Return(&models.Announcement{ID: annID, UserID: author, Name: "old"}, nil)
	adb.On("UpdateOne", mock.Anything, bson.M{"_id": annID}, mock.MatchedBy(func(update bson.M) bool {
		return update["$set"].(bson.M)["name"] == "new"
	})).Return(nil).Once()
	a := handlers.Announcement{ADB: adb}

	vars := map[string]string{"announcement_id": annID.Hex()}

	req := testhelpers.AsUser(testhelpers.Request("PATCH", "/", `{"name":"new"}`), stranger, models.RoleInstructor)
	rr := httptest.NewRecorder()
	a.UpdateAnnouncementHandler(rr, testhelpers.WithVars(req, vars))
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = testhelpers.AsUser(testhelpers.Request("PATCH", "/", `{"name":"new"}`), author, models.RoleInstructor)
	rr = httptest.NewRecorder()
	a.UpdateAnnouncementHandler(rr, testhelpers.WithVars(req, vars))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"new"`)
}

func TestAnnouncement_DeleteCascadesMarkers(t *testing.T) {
	author := primitive.NewObjectID()
	annID := primitive.NewObjectID()

	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("FindOne", mock.Anything, bson.M{"_id": annID}).Return(&models.Announcement{ID: annID, UserID: author}, nil)
	adb.On("DeleteOne", mock.Anything, bson.M{"_id": annID}).Return(nil)
	rdb := mocks.NewAnnouncementReadDatabase(t)
	rdb.On("DeleteMany", mock.Anything, bson.M{"announcementId": annID}).Return(int64(7), nil)
	a := handlers.Announcement{ADB: adb, Reads: readstate.Tracker{DB: rdb}}

	req := testhelpers.AsUser(testhelpers.Request("DELETE", "/", nil), author, models.RoleAdminInstructor)
	rr := httptest.NewRecorder()
	a.DeleteAnnouncementHandler(rr, testhelpers.WithVars(req, map[string]string{"announcement_id": annID.Hex()}))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success": true, "_id": "`+annID.Hex()+`"}`, rr.Body.String())
}

func TestAnnouncement_DeleteMissing(t *testing.T) {
	annID := primitive.NewObjectID()
	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("FindOne", mock.Anything, bson.M{"_id": annID}).Return(nil, databases.ErrNotFound)
	a := handlers.Announcement{ADB: adb}

	req := testhelpers.AsUser(testhelpers.Request("DELETE", "/", nil), primitive.NewObjectID(), models.RoleInstructor)
	rr := httptest.NewRecorder()
	a.DeleteAnnouncementHandler(rr, testhelpers.WithVars(req, map[string]string{"announcement_id": annID.Hex()}))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAnnouncement_ToggleRead(t *testing.T) {
	me := primitive.NewObjectID()
	annID := primitive.NewObjectID()
	pair := bson.M{"announcementId": annID, "userId": me}

	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("FindOne", mock.Anything, bson.M{"_id": annID}).Return(&models.Announcement{ID: annID}, nil)
	rdb := mocks.NewAnnouncementReadDatabase(t)
	rdb.On("FindOne", mock.Anything, pair).Return(nil, databases.ErrNotFound).Once()
	rdb.On("InsertOne", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil).Once()
	rdb.On("FindOne", mock.Anything, pair).Return(&models.AnnouncementRead{AnnouncementID: annID, UserID: me, Read: true}, nil).Once()
	rdb.On("UpdateOne", mock.Anything, pair, mock.Anything).Return(nil).Once()
	a := handlers.Announcement{ADB: adb, Reads: readstate.Tracker{DB: rdb}}

	toggle := func() *httptest.ResponseRecorder {
		req := testhelpers.AsUser(testhelpers.Request("PUT", "/", nil), me, models.RoleStudent)
		rr := httptest.NewRecorder()
		a.ToggleReadHandler(rr, testhelpers.WithVars(req, map[string]string{"announcement_id": annID.Hex()}))
		return rr
	}

	rr := toggle()
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "inserted", "read": true}`, rr.Body.String())

	rr = toggle()
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status": "updated", "read": false}`, rr.Body.String())
}

func TestAnnouncement_ToggleBadID(t *testing.T) {
	a := handlers.Announcement{}
	req := testhelpers.AsUser(testhelpers.Request("PUT", "/", nil), primitive.NewObjectID(), models.RoleStudent)
	rr := httptest.NewRecorder()
	a.ToggleReadHandler(rr, testhelpers.WithVars(req, map[string]string{"announcement_id": "nope"}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"response": "failed to get objectID from Hex, invalid announcement_id"}`, rr.Body.String())
}

func TestAnnouncement_MarkRead(t *testing.T) {
	me := primitive.NewObjectID()
	annID := primitive.NewObjectID()

	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("FindOne", mock.Anything, bson.M{"_id": annID}).Return(&models.Announcement{ID: annID}, nil)
	rdb := mocks.NewAnnouncementReadDatabase(t)
	rdb.On("Upsert", mock.Anything, annID, me, false).Return(&models.AnnouncementRead{AnnouncementID: annID, UserID: me, Read: false}, nil)
	a := handlers.Announcement{ADB: adb, Reads: readstate.Tracker{DB: rdb}}

	req := testhelpers.AsUser(testhelpers.Request("PUT", "/", `{"read": false}`), me, models.RoleStudent)
	rr := httptest.NewRecorder()
	a.MarkReadHandler(rr, testhelpers.WithVars(req, map[string]string{"announcement_id": annID.Hex()}))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"read":false`)

	req = testhelpers.AsUser(testhelpers.Request("PUT", "/", `{}`), me, models.RoleStudent)
	rr = httptest.NewRecorder()
	a.MarkReadHandler(rr, testhelpers.WithVars(req, map[string]string{"announcement_id": annID.Hex()}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAnnouncement_RemoveRead(t *testing.T) {
	me := primitive.NewObjectID()
	annID := primitive.NewObjectID()
	pair := bson.M{"announcementId": annID, "userId": me}

	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("FindOne", mock.Anything, bson.M{"_id": annID}).Return(&models.Announcement{ID: annID}, nil)
	rdb := mocks.NewAnnouncementReadDatabase(t)
	rdb.On("DeleteOne", mock.Anything, pair).Return(nil).Once()
	rdb.On("DeleteOne", mock.Anything, pair).Return(databases.ErrNotFound).Once()
	a := handlers.Announcement{ADB: adb, Reads: readstate.Tracker{DB: rdb}}

	remove := func() int {
		req := testhelpers.AsUser(testhelpers.Request("DELETE", "/", nil), me, models.RoleStudent)
		rr := httptest.NewRecorder()
		a.RemoveReadHandler(rr, testhelpers.WithVars(req, map[string]string{"announcement_id": annID.Hex()}))
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, remove())
	assert.Equal(t, http.StatusOK, remove())
}

func TestAnnouncement_Reads(t *testing.T) {
	me := primitive.NewObjectID()
	rdb := mocks.NewAnnouncementReadDatabase(t)
	rdb.On("Find", mock.Anything, bson.M{"userId": me, "read": false}).Return(nil, nil)
	rdb.On("Find", mock.Anything, bson.M{"userId": me}).Return([]models.AnnouncementRead{{UserID: me, Read: true}}, nil)
	a := handlers.Announcement{RDB: rdb}

	req := testhelpers.AsUser(testhelpers.Request("GET", "/api/v1/announcements/reads?read=false", nil), me, models.RoleStudent)
	rr := httptest.NewRecorder()
	a.ReadsHandler(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	req = testhelpers.AsUser(testhelpers.Request("GET", "/api/v1/announcements/reads", nil), me, models.RoleStudent)
	rr = httptest.NewRecorder()
	a.ReadsHandler(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"read":true`)

	req = testhelpers.AsUser(testhelpers.Request("GET", "/api/v1/announcements/reads?read=maybe", nil), me, models.RoleStudent)
	rr = httptest.NewRecorder()
	a.ReadsHandler(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
