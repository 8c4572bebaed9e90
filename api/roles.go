package api

import (
	"fmt"
	"net/http"

	"github.com/ne-attend/ne-attend-api/config"
	"github.com/ne-attend/ne-attend-api/models"
)

// RequireRole lets the request through only when the caller holds one of roles
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info, ok := CurrentUser(r)
			if !ok {
				config.ErrorStatus("unauthorized", http.StatusUnauthorized, w, ErrNoUser)
				return
			}
			role := RoleOf(info)
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			config.ErrorStatus("forbidden", http.StatusForbidden, w, fmt.Errorf("role %q may not access this resource", role))
		})
	}
}

// RequireAdmin allows admin and admin-instructor accounts
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(models.RoleAdmin, models.RoleAdminInstructor)(next)
}

// RequireAuthor allows every role that may publish announcements
func RequireAuthor(next http.Handler) http.Handler {
	return RequireRole(models.RoleInstructor, models.RoleAdmin, models.RoleAdminInstructor)(next)
}
