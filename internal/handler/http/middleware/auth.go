package middleware

import (
	"context"
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Identity is the authenticated caller taken from access token claims.
type Identity struct {
	UserID     string
	EmployeeID string
	Email      string
	Role       string
}

type identityKey struct{}

// IdentityFromContext returns the caller stored by AuthRequired.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			id := Identity{}
			id.UserID, _ = claims["user_id"].(string)
			id.EmployeeID, _ = claims["employee_id"].(string)
			id.Email, _ = claims["email"].(string)
			id.Role, _ = claims["role"].(string)
			if id.UserID == "" || id.EmployeeID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
		}
		return http.HandlerFunc(hfn)
	}
}
