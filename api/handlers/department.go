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

// Department handles departments
type Department struct {
	DB databases.DepartmentDatabase
}

// DepartmentsHandler lists departments
func (d Department) DepartmentsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	departments, err := d.DB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to get departments", http.StatusInternalServerError, w, err)
		return
	}
	if departments == nil {
		departments = []models.Department{}
	}
	respond(w, http.StatusOK, departments)
}

// DepartmentHandler returns one department
func (d Department) DepartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "department_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	department, err := d.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		storageError("failed to get department by ID", w, err)
		return
	}
	respond(w, http.StatusOK, department)
}

// CreateDepartmentHandler adds a department
func (d Department) CreateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	var req models.DepartmentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate department", http.StatusBadRequest, w, err)
		return
	}

	now := time.Now().UTC()
	department := models.Department{
		Name:        req.Name,
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var err error
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	department.ID, err = d.DB.InsertOne(ctx, department)
	if err != nil {
		storageError("failed to create department", w, err)
		return
	}
	respond(w, http.StatusCreated, department)
}

// UpdateDepartmentHandler edits a department
func (d Department) UpdateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "department_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	var req models.UpdateDepartmentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate department", http.StatusBadRequest, w, err)
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

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := d.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		storageError("failed to update department", w, err)
		return
	}
	department, err := d.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		storageError("failed to get department by ID", w, err)
		return
	}
	respond(w, http.StatusOK, department)
}

// DeleteDepartmentHandler removes a department
func (d Department) DeleteDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "department_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := d.DB.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		storageError("failed to delete department", w, err)
		return
	}
	respond(w, http.StatusOK, models.DeleteResponse{Success: true, ID: id.Hex()})
}
