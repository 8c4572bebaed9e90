package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ne-attend/ne-attend-api/api"
	"github.com/ne-attend/ne-attend-api/config"
	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/models"
)

// Course handles the course catalogue
type Course struct {
	DB databases.CourseDatabase
}

// CoursesHandler lists courses, optionally those of one ?departmentId=
func (c Course) CoursesHandler(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if hex := r.URL.Query().Get("departmentId"); hex != "" {
		id, err := optionalID(hex)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		filter["departmentId"] = id
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	courses, err := c.DB.Find(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to get courses", http.StatusInternalServerError, w, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	respond(w, http.StatusOK, courses)
}

// CourseHandler returns one course
func (c Course) CourseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "course_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	course, err := c.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		storageError("failed to get course by ID", w, err)
		return
	}
	respond(w, http.StatusOK, course)
}

// CreateCourseHandler adds a course
func (c Course) CreateCourseHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CourseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate course", http.StatusBadRequest, w, err)
		return
	}
	departmentID, err := optionalID(req.DepartmentID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	now := time.Now().UTC()
	course := models.Course{
		Name:         req.Name,
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:  req.Description,
		DepartmentID: departmentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	course.ID, err = c.DB.InsertOne(ctx, course)
	if err != nil {
		storageError("failed to create course", w, err)
		return
	}
	respond(w, http.StatusCreated, course)
}

// UpdateCourseHandler edits a course
func (c Course) UpdateCourseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "course_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	var req models.UpdateCourseRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate course", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Code != nil {
		set["code"] = strings.ToUpper(strings.TrimSpace(*req.Code))
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.DepartmentID != nil {
		departmentID, err := optionalID(*req.DepartmentID)
		if err != nil {
			config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
			return
		}
		set["departmentId"] = departmentID
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := c.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		storageError("failed to update course", w, err)
		return
	}
	course, err := c.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		storageError("failed to get course by ID", w, err)
		return
	}
	respond(w, http.StatusOK, course)
}

// DeleteCourseHandler removes a course
func (c Course) DeleteCourseHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "course_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := c.DB.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		storageError("failed to delete course", w, err)
		return
	}
	respond(w, http.StatusOK, models.DeleteResponse{Success: true, ID: id.Hex()})
}
