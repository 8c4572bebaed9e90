// Package testhelpers builds requests the way they look after Middleware has run
package testhelpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"
	"github.com/shaj13/go-guardian/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ne-attend/ne-attend-api/api"
)

// Request builds a request, JSON encoding body when it is not already a reader
func Request(method, target string, body interface{}) *http.Request {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	case string:
		reader = bytes.NewBufferString(b)
	default:
		buf, _ := json.Marshal(b)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// AsUser attaches an authenticated user with the given role to req
func AsUser(req *http.Request, id primitive.ObjectID, role string) *http.Request {
	info := auth.NewDefaultUser(id.Hex()+"@example.com", id.Hex(), []string{role}, nil)
	return req.WithContext(api.WithUser(req.Context(), info))
}

// WithVars sets the mux route variables on req
func WithVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}
