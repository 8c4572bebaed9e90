package handlers

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ne-attend/ne-attend-api/api"
	"github.com/ne-attend/ne-attend-api/config"
	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/models"
)

// Dashboard aggregates the counts behind the admin charts
type Dashboard struct {
	UDB databases.UserDatabase
	ADB databases.AnnouncementDatabase
	RDB databases.RuleDatabase
	CDB databases.CourseDatabase
	DDB databases.DepartmentDatabase
}

// SummaryHandler returns users by role and the collection totals
func (d Dashboard) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	byRole, err := d.UDB.CountByRole(ctx)
	if err != nil {
		config.ErrorStatus("failed to count users", http.StatusInternalServerError, w, err)
		return
	}
	summary := models.DashboardSummary{UsersByRole: byRole}
	if summary.UsersByRole == nil {
		summary.UsersByRole = []models.RoleCount{}
	}
	for _, rc := range byRole {
		summary.TotalUsers += rc.Count
	}

	counts := []struct {
		name  string
		count func() (int64, error)
		dst   *int64
	}{
		{"announcements", func() (int64, error) { return d.ADB.CountDocuments(ctx, bson.M{}) }, &summary.Announcements},
		{"rules", func() (int64, error) { return d.RDB.CountDocuments(ctx, bson.M{}) }, &summary.Rules},
		{"courses", func() (int64, error) { return d.CDB.CountDocuments(ctx, bson.M{}) }, &summary.Courses},
		{"departments", func() (int64, error) { return d.DDB.CountDocuments(ctx, bson.M{}) }, &summary.Departments},
	}
	for _, c := range counts {
		n, err := c.count()
		if err != nil {
			config.ErrorStatus("failed to count "+c.name, http.StatusInternalServerError, w, err)
			return
		}
		*c.dst = n
	}
	respond(w, http.StatusOK, summary)
}
