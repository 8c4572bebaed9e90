package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ne-attend/ne-attend-api/api/handlers"
	"github.com/ne-attend/ne-attend-api/api/testhelpers"
	"github.com/ne-attend/ne-attend-api/databases/mocks"
	"github.com/ne-attend/ne-attend-api/models"
)

func TestDashboard_Summary(t *testing.T) {
	udb := mocks.NewUserDatabase(t)
	udb.On("CountByRole", mock.Anything).Return([]models.RoleCount{
		{Role: models.RoleStudent, Count: 40},
		{Role: models.RoleInstructor, Count: 4},
		{Role: models.RoleAdmin, Count: 1},
	}, nil)
	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(12), nil)
	rdb := mocks.NewRuleDatabase(t)
	rdb.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(3), nil)
	cdb := mocks.NewCourseDatabase(t)
	cdb.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(8), nil)
	ddb := mocks.NewDepartmentDatabase(t)
	ddb.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(2), nil)
	d := handlers.Dashboard{UDB: udb, ADB: adb, RDB: rdb, CDB: cdb, DDB: ddb}

	rr := httptest.NewRecorder()
	d.SummaryHandler(rr, testhelpers.Request("GET", "/api/v1/dashboard/summary", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"usersByRole": [
			{"role": "student", "count": 40},
			{"role": "instructor", "count": 4},
			{"role": "admin", "count": 1}
		],
		"totalUsers": 45,
		"announcements": 12,
		"rules": 3,
		"courses": 8,
		"departments": 2
	}`, rr.Body.String())
}

func TestDashboard_SummaryCountError(t *testing.T) {
	udb := mocks.NewUserDatabase(t)
	udb.On("CountByRole", mock.Anything).Return(nil, nil)
	adb := mocks.NewAnnouncementDatabase(t)
	adb.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(0), errors.New("mocked-error"))
	d := handlers.Dashboard{UDB: udb, ADB: adb}

	rr := httptest.NewRecorder()
	d.SummaryHandler(rr, testhelpers.Request("GET", "/api/v1/dashboard/summary", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"response": "failed to count announcements, mocked-error"}`, rr.Body.String())
}
