package middleware

import (
	"net/http"

	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/dexter-morales/hrms-system-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireRole limits a route to the given roles.
func RequireRole(roles ...employee.Role) func(http.Handler) http.Handler {
	allowed := make(map[employee.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok || !allowed[employee.Role(roleStr)] {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireHR limits a route to HR and managers, the payroll-operating roles.
func RequireHR(next http.Handler) http.Handler {
	return RequireRole(employee.RoleHR, employee.RoleManager)(next)
}

// RequireManager limits a route to managers and supervisors, the first
// approval tier.
func RequireManager(next http.Handler) http.Handler {
	return RequireRole(employee.RoleManager, employee.RoleSupervisor)(next)
}
