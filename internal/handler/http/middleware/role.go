package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/silang-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/silang-hris/payroll-backend-go/internal/pkg/jwt"
)

// RequirePayrollAdmin requires the payroll admin role
func RequirePayrollAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Payroll admin access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != jwt.RolePayrollAdmin {
			response.Forbidden(w, "Payroll admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireManager requires manager or payroll admin role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "Manager access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.Forbidden(w, "Manager access required")
			return
		}

		if role != jwt.RoleManager && role != jwt.RolePayrollAdmin {
			response.Forbidden(w, "Manager access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
