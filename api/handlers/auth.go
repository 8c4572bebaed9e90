package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ne-attend/ne-attend-api/api"
	"github.com/ne-attend/ne-attend-api/config"
	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/models"
)

// Auth handles self registration and the current-user lookup
type Auth struct {
	DB databases.UserDatabase
}

// HashPassword bcrypts a plaintext password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NormalizeEmail is applied before every email lookup and write
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignupHandler registers a student or instructor account
func (a Auth) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate signup", http.StatusBadRequest, w, err)
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
	user.ID, err = a.DB.InsertOne(ctx, user)
	if err != nil {
		storageError("failed to create user", w, err)
		return
	}

	zap.S().Infow("user signed up", "userId", user.ID.Hex(), "role", user.Role)
	respond(w, http.StatusCreated, user)
}

// MeHandler returns the authenticated user with the role flags the dashboard gates on
func (a Auth) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := api.CurrentUserID(r)
	if err != nil {
		config.ErrorStatus("failed to get current user", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	user, err := a.DB.FindOne(ctx, bson.M{"_id": userID})
	if err != nil {
		storageError("failed to get user by ID", w, err)
		return
	}

	respond(w, http.StatusOK, models.MeResponse{
		User:         *user,
		IsAdmin:      models.IsAdminRole(user.Role),
		IsInstructor: models.IsInstructorRole(user.Role),
		IsStudent:    user.Role == models.RoleStudent,
	})
}
