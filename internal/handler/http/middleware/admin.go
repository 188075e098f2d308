package middleware

import (
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/user"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok || user.Role(id.Role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
