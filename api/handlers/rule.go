package handlers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ne-attend/ne-attend-api/api"
	"github.com/ne-attend/ne-attend-api/config"
	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/models"
)

// Rule handles the attendance rules shown on the dashboard
type Rule struct {
	DB databases.RuleDatabase
}

// RulesHandler lists rules with their authors, newest first
func (ru Rule) RulesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	rules, err := ru.DB.FindWithAuthor(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to get rules", http.StatusInternalServerError, w, err)
		return
	}
	if rules == nil {
		rules = []models.RuleWithUser{}
	}
	respond(w, http.StatusOK, rules)
}

// CreateRuleHandler adds a rule authored by the caller
func (ru Rule) CreateRuleHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := api.CurrentUserID(r)
	if err != nil {
		config.ErrorStatus("failed to get current user", http.StatusUnauthorized, w, err)
		return
	}
	var req models.RuleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate rule", http.StatusBadRequest, w, err)
		return
	}

	now := time.Now().UTC()
	rule := models.Rule{UserID: userID, Name: req.Name, Description: req.Description, CreatedAt: now, UpdatedAt: now}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	rule.ID, err = ru.DB.InsertOne(ctx, rule)
	if err != nil {
		storageError("failed to create rule", w, err)
		return
	}
	respond(w, http.StatusCreated, rule)
}

// UpdateRuleHandler edits a rule
func (ru Rule) UpdateRuleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rule_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	var req models.UpdateRuleRequest
	if err := decodeAndValidate(r, &req); err != nil {
		config.ErrorStatus("failed to validate rule", http.StatusBadRequest, w, err)
		return
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := ru.DB.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		storageError("failed to update rule", w, err)
		return
	}
	rule, err := ru.DB.FindOne(ctx, bson.M{"_id": id})
	if err != nil {
		storageError("failed to get rule by ID", w, err)
		return
	}
	respond(w, http.StatusOK, rule)
}

// DeleteRuleHandler removes a rule
func (ru Rule) DeleteRuleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "rule_id")
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := ru.DB.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		storageError("failed to delete rule", w, err)
		return
	}
	respond(w, http.StatusOK, models.DeleteResponse{Success: true, ID: id.Hex()})
}
