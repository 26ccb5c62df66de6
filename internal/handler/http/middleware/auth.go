package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/auth"
	"github.com/kennar-hris/kennar-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a verified admin access token.
// It expects jwtauth.Verifier to have run first.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
