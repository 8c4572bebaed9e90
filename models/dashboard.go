package models

// HealthCheckResponse returns the health check response duh
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// DashboardSummary feeds the admin dashboard charts
type DashboardSummary struct {
	UsersByRole   []RoleCount `json:"usersByRole"`
	TotalUsers    int64       `json:"totalUsers"`
	Announcements int64       `json:"announcements"`
	Rules         int64       `json:"rules"`
	Courses       int64       `json:"courses"`
	Departments   int64       `json:"departments"`
}
