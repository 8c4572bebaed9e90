package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ne-attend/ne-attend-api/config"
	"github.com/ne-attend/ne-attend-api/databases"
	"github.com/ne-attend/ne-attend-api/models"
)

// tokenCacheTTL bounds how long a validated bearer token skips the revocation lookup
const tokenCacheTTL = 5 * time.Minute

// MiddlewareDB is a struct that holds the databases and signing settings
// used to authenticate requests
type MiddlewareDB struct {
	DB     databases.UserDatabase
	TDB    databases.TokenDatabase
	Secret []byte
	TTL    time.Duration
}

// Claims are the fields carried in a session token
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

var authenticator auth.Authenticator
var cache store.Cache

// Middleware adds some basic header authentication around accessing the routes
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		user, err := authenticator.Authenticate(r)
		if err != nil {
			zap.S().Debugw("unauthorized",
				"url", r.URL,
				"error", err)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		zap.S().Debugw("user authenticated", "user", user.UserName(), "id", user.ID())
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// SetupGoGuardian sets up the go-guardian strategies: basic auth for token
// issue and bearer JWTs for everything else
func (m MiddlewareDB) SetupGoGuardian() {
	authenticator = auth.New()
	cache = store.NewFIFO(context.Background(), tokenCacheTTL)
	// passwords are checked against the store on every token request, so a
	// reset done by another process takes effect at once
	basicStrategy := basic.AuthenticateFunc(m.ValidateUser)
	tokenStrategy := bearer.New(m.ValidateToken, cache)

	authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// ValidateUser checks an email and password against the users collection
func (m MiddlewareDB) ValidateUser(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	qctx, cancel := WithQueryTimeout(ctx)
	defer cancel()

	user, err := m.DB.FindOne(qctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
	if errors.Is(err, databases.ErrNotFound) {
		return nil, fmt.Errorf("no matching email found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return auth.NewDefaultUser(user.Email, user.ID.Hex(), []string{user.Role}, nil), nil
}

// ValidateToken verifies a bearer JWT and rejects revoked ones
func (m MiddlewareDB) ValidateToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	claims, err := m.ParseToken(token)
	if err != nil {
		return nil, err
	}

	qctx, cancel := WithQueryTimeout(ctx)
	defer cancel()
	revoked, err := m.TDB.Exists(qctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("token has been revoked")
	}
	return auth.NewDefaultUser(claims.Email, claims.Subject, []string{claims.Role}, nil), nil
}

// ParseToken verifies the signature and expiry of a session token
func (m MiddlewareDB) ParseToken(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token: missing subject or id")
	}
	return claims, nil
}

// IssueToken signs a new session token for the user
func (m MiddlewareDB) IssueToken(user models.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(m.TTL)
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// CreateToken returns a token for a caller who passed basic auth
func (m MiddlewareDB) CreateToken(w http.ResponseWriter, r *http.Request) {
	info, ok := CurrentUser(r)
	if !ok {
		config.ErrorStatus("basic auth failed", http.StatusUnauthorized, w, ErrNoUser)
		return
	}

	ctx, cancel := WithQueryTimeout(r.Context())
	defer cancel()
	user, err := m.DB.FindOne(ctx, bson.M{"email": info.UserName()})
	if err != nil {
		config.ErrorStatus("failed to get user by email", http.StatusUnauthorized, w, err)
		return
	}

	token, expiresAt, err := m.IssueToken(*user, time.Now().UTC())
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	responseBody, err := json.Marshal(models.TokenResponse{
		Token:     token,
		ID:        user.ID.Hex(),
		Role:      user.Role,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(responseBody)
}

// RevokeToken revokes the bearer token the request was made with
func (m MiddlewareDB) RevokeToken(w http.ResponseWriter, r *http.Request) {
	reqToken := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	claims, err := m.ParseToken(reqToken)
	if err != nil {
		config.ErrorStatus("failed to parse token", http.StatusUnauthorized, w, err)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		config.ErrorStatus("failed to parse token subject", http.StatusUnauthorized, w, err)
		return
	}

	ctx, cancel := WithQueryTimeout(r.Context())
	defer cancel()
	err = m.TDB.InsertOne(ctx, models.RevokedToken{
		JTI:       claims.ID,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		config.ErrorStatus("failed to revoke token", http.StatusInternalServerError, w, err)
		return
	}

	if authenticator != nil {
		tokenStrategy := authenticator.Strategy(bearer.CachedStrategyKey)
		auth.Revoke(tokenStrategy, reqToken, r)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"revoked": "%s"}`, claims.ID)))
}

// AuthenticateToken resolves a raw bearer token the way Middleware would,
// for transports that cannot send an Authorization header
func AuthenticateToken(r *http.Request, token string) (auth.Info, error) {
	if authenticator == nil {
		return nil, errors.New("authenticator not configured")
	}
	req := r.Clone(r.Context())
	req.Header.Set("Authorization", "Bearer "+token)
	return authenticator.Authenticate(req)
}
