// Package docs NE Attend API.
//
// Documentation of the NE Attend announcements API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//
//     Security:
//     - basic
//     - bearer
//
//    SecurityDefinitions:
//    basic:
//      type: basic
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/ne-attend/ne-attend-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/auth/token auth createToken
// Exchanges basic credentials for a bearer token.
// responses:
//   200: tokenResponse
//   401: errorResponse

// A signed session token and when it expires.
// swagger:response tokenResponse
type tokenResponseWrapper struct {
	// in:body
	Body models.TokenResponse
}

// swagger:route GET /api/v1/announcements/inbox announcements inbox
// Lists announcements by other users that the caller has not read.
// responses:
//   200: announcementsResponse
//   401: errorResponse

// A page of announcements, each carrying the caller's read flag.
// swagger:response announcementsResponse
type announcementsResponseWrapper struct {
	// in:body
	Body models.AnnouncementsResponse
}

// swagger:route PUT /api/v1/announcements/{announcement_id}/read announcements toggleRead
// Flips the caller's read flag on an announcement, creating the marker on first use.
// responses:
//   200: toggleReadResponse
//   404: errorResponse

// Whether a marker was inserted or updated, and the resulting flag.
// swagger:response toggleReadResponse
type toggleReadResponseWrapper struct {
	// in:body
	Body models.ToggleReadResponse
}

// swagger:parameters toggleRead
type announcementIDParam struct {
	// in:path
	// required: true
	AnnouncementID string `json:"announcement_id"`
}

// swagger:route GET /api/v1/dashboard/summary dashboard dashboardSummary
// Counts behind the admin dashboard charts.
// responses:
//   200: dashboardSummaryResponse
//   403: errorResponse

// Users by role and collection totals.
// swagger:response dashboardSummaryResponse
type dashboardSummaryResponseWrapper struct {
	// in:body
	Body models.DashboardSummary
}

// The request failed. The body holds the message and the cause.
// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorResponse
}
