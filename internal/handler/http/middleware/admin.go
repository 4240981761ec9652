package middleware

import (
	"net/http"

	"github.com/johangly/gpu/internal/domain/auth"
	"github.com/johangly/gpu/internal/domain/employee"
	"github.com/johangly/gpu/internal/handler/http/response"
	"github.com/johangly/gpu/internal/pkg/jwt"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if employee.Role(claims.Role) != employee.RoleAdmin {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
