package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
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

// maxAvatarSize caps multipart avatar uploads
const maxAvatarSize = 5 << 20

// User exists for dependency injection purposes
type User struct {
	DB      databases.UserDatabase
	CDB     databases.CourseDatabase
	Reads   readstate.Tracker
	Avatars AvatarUploader
}

// selfOrAdmin allows the request when the caller is the path user or an admin
func selfOrAdmin(r *http.Request, id primitive.ObjectID) bool {
	info, ok := api.CurrentUser(r)
	if !ok {
		return false
	}
	return info.ID() == id.Hex() || models.IsAdminRole(api.RoleOf(info))
}

// UsersHandler lists users newest first, optionally filtered by ?role=,
// ?departmentId= and ?courseId=
func (u User) UsersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := bson.M{}
	if role := q.Get("role"); role != "" {
		filter["role"] = role
	}
	for _, key := range []string{"departmentId", "courseId"} {
		hex := q.Get(key)
		if hex == "" {
			continue
		}
		id, err := optionalID(hex)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, fmt.Errorf("invalid %s", key))
			return
		}
		filter[key] = id
	}
	page, limit := pageParams(r)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	users, err := u.DB.Find(ctx, filter, limit, page)
	if err != nil {
		config.ErrorStatus("failed to get users", http.StatusInternalServerError, w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respond(w, http.StatusOK, users)
}

// CreateUserHandler lets an admin create an account with any role
func (u User) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate user", http.StatusBadRequest, w, err)
		return
	}

	departmentID, err := optionalID(req.DepartmentID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	courseID, err := optionalID(req.CourseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	now := time.Now().UTC()
	user := models.User{
		Firstname:    strings.TrimSpace(req.Firstname),
		Lastname:     strings.TrimSpace(req.Lastname),
		Email:        NormalizeEmail(req.Email),
		Password:     hash,
		Role:         req.Role,
		DepartmentID: departmentID,
		CourseID:     courseID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	user.ID, err = u.DB.InsertOne(ctx, user)
	if err != nil {
		storageError("failed to create user", w, err)
		return
	}
	respond(w, http.StatusCreated, user)
}

// UserHandler returns a single user to an admin or to that user
func (u User) UserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	if !selfOrAdmin(r, id) {
		config.ErrorStatus("forbidden", http.StatusForbidden, w, errors.New("not allowed to view this user"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	user, err := u.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		storageError("failed to get user by ID", w, err)
		return
	}
	respond(w, http.StatusOK, user)
}

// UpdateUserHandler edits profile, role and enrolment fields
func (u User) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var req models.UpdateUserRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate user", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Firstname != nil {
		set["firstname"] = strings.TrimSpace(*req.Firstname)
	}
	if req.Lastname != nil {
		set["lastname"] = strings.TrimSpace(*req.Lastname)
	}
	if req.Role != nil {
		set["role"] = *req.Role
	}
	for field, hex := range map[string]*string{"departmentId": req.DepartmentID, "courseId": req.CourseID} {
		if hex == nil {
			continue
		}
		oid, err := optionalID(*hex)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		set[field] = oid
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := u.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		storageError("failed to update user", w, err)
		return
	}
	user, err := u.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		storageError("failed to get user by ID", w, err)
		return
	}
	respond(w, http.StatusOK, user)
}

// DeleteUserHandler hard deletes a user along with their read markers
func (u User) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	if caller, _ := api.CurrentUserID(r); caller == id {
		config.ErrorStatus("failed to delete user", http.StatusBadRequest, w, errors.New("admins cannot delete themselves"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := u.DB.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		storageError("failed to delete user", w, err)
		return
	}
	n, err := u.Reads.Purge(ctx, bson.M{"userId": id})
	if err != nil {
		zap.S().Errorw("failed to purge read markers", "userId", id.Hex(), "error", err)
	}
	zap.S().Infow("user deleted", "userId", id.Hex(), "markers", n)
	respond(w, http.StatusOK, models.DeleteResponse{Success: true, ID: id.Hex()})
}

// UploadAvatarHandler stores a profile picture and saves its URL on the user
func (u User) UploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	if !selfOrAdmin(r, id) {
		config.ErrorStatus("forbidden", http.StatusForbidden, w, errors.New("not allowed to change this avatar"))
		return
	}
	if u.Avatars == nil {
		config.ErrorStatus("avatar uploads are disabled", http.StatusServiceUnavailable, w, errors.New("no uploader configured"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarSize)
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		config.ErrorStatus("failed to parse upload", http.StatusBadRequest, w, err)
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		config.ErrorStatus("failed to read avatar", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()
	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		config.ErrorStatus("failed to read avatar", http.StatusBadRequest, w, fmt.Errorf("unsupported content type %q", ct))
		return
	}

	url, err := u.Avatars.Upload(r.Context(), file, id.Hex())
	if err != nil {
		config.ErrorStatus("failed to upload avatar", http.StatusBadGateway, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	err = u.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"avatar": url, "updatedAt": time.Now().UTC()}})
	if err != nil {
		storageError("failed to update user", w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"avatar": url})
}

// UserCourseHandler returns the course a user is enrolled in
func (u User) UserCourseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	user, err := u.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		storageError("failed to get user by ID", w, err)
		return
	}
	if user.CourseID == nil {
		config.ErrorStatus("failed to get course", http.StatusNotFound, w, errors.New("user is not enrolled in a course"))
		return
	}
	course, err := u.CDB.FindOne(ctx, bson.M{"_id": *user.CourseID})
	if err != nil {
		storageError("failed to get course by ID", w, err)
		return
	}
	respond(w, http.StatusOK, course)
}
