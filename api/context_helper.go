package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/shaj13/go-guardian/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QueryTimeout is the default timeout for database queries
const QueryTimeout = 10 * time.Second

// WithQueryTimeout creates a context with query timeout
func WithQueryTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, QueryTimeout)
}

type ctxKey int

const userKey ctxKey = iota

// ErrNoUser is returned when a request reached a handler without passing Middleware
var ErrNoUser = errors.New("no authenticated user")

// WithUser stores the authenticated user on the context
func WithUser(ctx context.Context, info auth.Info) context.Context {
	return context.WithValue(ctx, userKey, info)
}

// CurrentUser returns the user Middleware authenticated for this request
func CurrentUser(r *http.Request) (auth.Info, bool) {
	info, ok := r.Context().Value(userKey).(auth.Info)
	return info, ok && info != nil
}

// CurrentUserID returns the authenticated user's id as an ObjectID
func CurrentUserID(r *http.Request) (primitive.ObjectID, error) {
	info, ok := CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, ErrNoUser
	}
	return primitive.ObjectIDFromHex(info.ID())
}

// RoleOf returns the role carried in the user's groups
func RoleOf(info auth.Info) string {
	if info == nil || len(info.Groups()) == 0 {
		return ""
	}
	return info.Groups()[0]
}
