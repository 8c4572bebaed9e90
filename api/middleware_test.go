package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/ne-attend/ne-attend-api/api"
	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/databases/mocks"
	"github.com/ne-attend/ne-attend-api/models"
)

var secret = []byte("test-secret")

func testUser(t *testing.T, password string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return models.User{
		ID:       primitive.NewObjectID(),
		Email:    "ada@example.com",
		Password: string(hash),
		Role:     models.RoleInstructor,
	}
}

func TestValidateUser(t *testing.T) {
	user := testUser(t, "correct horse")

	db := mocks.NewUserDatabase(t)
	db.On("FindOne", mock.Anything, bson.M{"email": "ada@example.com"}).Return(&user, nil)
	db.On("FindOne", mock.Anything, bson.M{"email": "nobody@example.com"}).Return(nil, databases.ErrNotFound)

	m := api.MiddlewareDB{DB: db}

	info, err := m.ValidateUser(context.Background(), nil, " Ada@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), info.ID())
	assert.Equal(t, models.RoleInstructor, api.RoleOf(info))

	_, err = m.ValidateUser(context.Background(), nil, "ada@example.com", "wrong")
	assert.EqualError(t, err, "invalid credentials")

	_, err = m.ValidateUser(context.Background(), nil, "nobody@example.com", "whatever")
	assert.EqualError(t, err, "no matching email found")
}

func TestIssueAndParseToken(t *testing.T) {
	user := testUser(t, "pw")
	m := api.MiddlewareDB{Secret: secret, TTL: time.Hour}

	now := time.Now().UTC()
	token, expiresAt, err := m.IssueToken(user, now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, user.Role, claims.Role)
	assert.NotEmpty(t, claims.ID)

	other := api.MiddlewareDB{Secret: []byte("other"), TTL: time.Hour}
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpiredAndUnsigned(t *testing.T) {
	user := testUser(t, "pw")
	m := api.MiddlewareDB{Secret: secret, TTL: time.Hour}

	expired, _, err := m.IssueToken(user, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = m.ParseToken(expired)
	assert.Error(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, api.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "x",
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ParseToken(unsigned)
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	user := testUser(t, "pw")
	tdb := mocks.NewTokenDatabase(t)
	m := api.MiddlewareDB{TDB: tdb, Secret: secret, TTL: time.Hour}

	live, _, err := m.IssueToken(user, time.Now())
	require.NoError(t, err)
	revoked, _, err := m.IssueToken(user, time.Now())
	require.NoError(t, err)
	liveClaims, _ := m.ParseToken(live)
	revokedClaims, _ := m.ParseToken(revoked)

	tdb.On("Exists", mock.Anything, liveClaims.ID).Return(false, nil)
	tdb.On("Exists", mock.Anything, revokedClaims.ID).Return(true, nil)

	info, err := m.ValidateToken(context.Background(), nil, live)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), info.ID())
	assert.Equal(t, user.Email, info.UserName())

	_, err = m.ValidateToken(context.Background(), nil, revoked)
	assert.EqualError(t, err, "token has been revoked")
}

func TestMiddleware(t *testing.T) {
	user := testUser(t, "correct horse")
	udb := mocks.NewUserDatabase(t)
	tdb := mocks.NewTokenDatabase(t)
	m := api.MiddlewareDB{DB: udb, TDB: tdb, Secret: secret, TTL: time.Hour}
	m.SetupGoGuardian()

	udb.On("FindOne", mock.Anything, bson.M{"email": user.Email}).Return(&user, nil)
	tdb.On("Exists", mock.Anything, mock.Anything).Return(false, nil)

	var seen string
	handler := api.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := api.CurrentUserID(r)
		require.NoError(t, err)
		seen = id.Hex()
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("no credentials", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/announcements", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error": "unauthorized"}`, rr.Body.String())
	})

	t.Run("basic auth then token", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/auth/token", nil)
		req.SetBasicAuth(user.Email, "correct horse")
		rr := httptest.NewRecorder()
		api.Middleware(http.HandlerFunc(m.CreateToken)).ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var resp models.TokenResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, user.ID.Hex(), resp.ID)
		assert.Equal(t, models.RoleInstructor, resp.Role)

		req = httptest.NewRequest("GET", "/api/v1/announcements", nil)
		req.Header.Set("Authorization", "Bearer "+resp.Token)
		rr = httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, user.ID.Hex(), seen)
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/auth/token", nil)
		req.SetBasicAuth(user.Email, "nope")
		rr := httptest.NewRecorder()
		api.Middleware(http.HandlerFunc(m.CreateToken)).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestMiddlewareBasicSeesPasswordReset(t *testing.T) {
	user := testUser(t, "old password")
	reset := user
	hash, err := bcrypt.GenerateFromPassword([]byte("new password"), bcrypt.MinCost)
	require.NoError(t, err)
	reset.Password = string(hash)

	udb := mocks.NewUserDatabase(t)
	m := api.MiddlewareDB{DB: udb, TDB: mocks.NewTokenDatabase(t), Secret: secret, TTL: time.Hour}
	m.SetupGoGuardian()
	udb.On("FindOne", mock.Anything, bson.M{"email": user.Email}).Return(&user, nil).Once()
	udb.On("FindOne", mock.Anything, bson.M{"email": user.Email}).Return(&reset, nil)

	issue := func(password string) int {
		req := httptest.NewRequest("POST", "/api/v1/auth/token", nil)
		req.SetBasicAuth(user.Email, password)
		rr := httptest.NewRecorder()
		api.Middleware(http.HandlerFunc(m.CreateToken)).ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, issue("old password"))
	// the stored hash changed underneath us
	assert.Equal(t, http.StatusUnauthorized, issue("old password"))
	assert.Equal(t, http.StatusOK, issue("new password"))
	// ValidateUser on each request plus CreateToken on each success
	udb.AssertNumberOfCalls(t, "FindOne", 5)
}

func TestRevokeToken(t *testing.T) {
	user := testUser(t, "pw")
	tdb := mocks.NewTokenDatabase(t)
	m := api.MiddlewareDB{TDB: tdb, Secret: secret, TTL: time.Hour}

	token, _, err := m.IssueToken(user, time.Now())
	require.NoError(t, err)
	claims, err := m.ParseToken(token)
	require.NoError(t, err)

	tdb.On("InsertOne", mock.Anything, mock.MatchedBy(func(rt models.RevokedToken) bool {
		return rt.JTI == claims.ID && rt.UserID == user.ID
	})).Return(nil).Once()

	req := httptest.NewRequest("DELETE", "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	m.RevokeToken(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), claims.ID)
}

func TestRevokeTokenStoreError(t *testing.T) {
	user := testUser(t, "pw")
	tdb := mocks.NewTokenDatabase(t)
	m := api.MiddlewareDB{TDB: tdb, Secret: secret, TTL: time.Hour}

	token, _, err := m.IssueToken(user, time.Now())
	require.NoError(t, err)
	tdb.On("InsertOne", mock.Anything, mock.Anything).Return(errors.New("mocked-error"))

	req := httptest.NewRequest("DELETE", "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	m.RevokeToken(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"response": "failed to revoke token, mocked-error"}`, rr.Body.String())
}
