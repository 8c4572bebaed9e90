package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Admin/instructor accounts count as both.
const (
	RoleStudent         = "student"
	RoleInstructor      = "instructor"
	RoleAdmin           = "admin"
	RoleAdminInstructor = "admin-instructor"
)

// Roles lists every valid role value
var Roles = []string{RoleStudent, RoleInstructor, RoleAdmin, RoleAdminInstructor}

// IsAdminRole reports whether the role has admin rights
func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleAdminInstructor
}

// IsInstructorRole reports whether the role teaches
func IsInstructorRole(role string) bool {
	return role == RoleInstructor || role == RoleAdminInstructor
}

// CanAuthor reports whether the role may publish announcements
func CanAuthor(role string) bool {
	for _, r := range Roles {
		if r == role {
			return role != RoleStudent
		}
	}
	return false
}

// User holds the structure for the user collection in mongo
type User struct {
	ID           primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Firstname    string              `json:"firstname" bson:"firstname"`
	Lastname     string              `json:"lastname" bson:"lastname"`
	Email        string              `json:"email" bson:"email"`
	Password     string              `json:"-" bson:"password"`
	Role         string              `json:"role" bson:"role"`
	DepartmentID *primitive.ObjectID `json:"departmentId,omitempty" bson:"departmentId,omitempty"`
	CourseID     *primitive.ObjectID `json:"courseId,omitempty" bson:"courseId,omitempty"`
	Avatar       string              `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// Summary trims a user down to what other documents embed
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
	}
}

// UserSummary is the author block attached to announcements and rules
type UserSummary struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Firstname string             `json:"firstname" bson:"firstname"`
	Lastname  string             `json:"lastname" bson:"lastname"`
	Email     string             `json:"email" bson:"email"`
	Role      string             `json:"role" bson:"role"`
	Avatar    string             `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

// SignupRequest is the public self-registration payload
type SignupRequest struct {
	Firstname      string `json:"firstname" validate:"required,max=100"`
	Lastname       string `json:"lastname" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	RepeatPassword string `json:"repeatPassword" validate:"required,eqfield=Password"`
	Role           string `json:"role" validate:"required,oneof=student instructor"`
	DepartmentID   string `json:"departmentId,omitempty" validate:"omitempty,len=24,hexadecimal"`
	CourseID       string `json:"courseId,omitempty" validate:"omitempty,len=24,hexadecimal"`
}

// CreateUserRequest is used by admins to create accounts with any role
type CreateUserRequest struct {
	Firstname    string `json:"firstname" validate:"required,max=100"`
	Lastname     string `json:"lastname" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Role         string `json:"role" validate:"required,oneof=student instructor admin admin-instructor"`
	DepartmentID string `json:"departmentId,omitempty" validate:"omitempty,len=24,hexadecimal"`
	CourseID     string `json:"courseId,omitempty" validate:"omitempty,len=24,hexadecimal"`
}

// UpdateUserRequest holds the editable user fields, nil means unchanged
type UpdateUserRequest struct {
	Firstname    *string `json:"firstname,omitempty" validate:"omitempty,min=1,max=100"`
	Lastname     *string `json:"lastname,omitempty" validate:"omitempty,min=1,max=100"`
	Role         *string `json:"role,omitempty" validate:"omitempty,oneof=student instructor admin admin-instructor"`
	DepartmentID *string `json:"departmentId,omitempty" validate:"omitempty,len=24,hexadecimal"`
	CourseID     *string `json:"courseId,omitempty" validate:"omitempty,len=24,hexadecimal"`
}

// TokenResponse is returned after a successful login
type TokenResponse struct {
	Token     string    `json:"token"`
	ID        string    `json:"_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MeResponse describes the logged in user and the role flags the dashboard gates on
type MeResponse struct {
	User         User `json:"user"`
	IsAdmin      bool `json:"isAdmin"`
	IsInstructor bool `json:"isInstructor"`
	IsStudent    bool `json:"isStudent"`
}

// RoleCount is one bucket of the users-by-role chart
type RoleCount struct {
	Role  string `json:"role" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}
