package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/artillio/boutique-api/internal/auth"
	"github.com/artillio/boutique-api/internal/httpx"
)

type ctxKey string

const claimsCtxKey = ctxKey("claims")

// AuthMiddleware authenticates requests from the Authorization bearer header.
type AuthMiddleware struct {
	tokens *auth.TokenManager
}

func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// WithClaims stores token claims in context. Exported for handler tests.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsCtxKey, claims)
}

// ClaimsFromContext extracts the authenticated user's claims.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(*auth.Claims)
	return claims, ok
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// claims to the request context.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			httpx.JSONError(w, http.StatusUnauthorized, "non_authentifie", nil)
			return
		}
		claims, err := a.tokens.Parse(token)
		if err != nil {
			httpx.JSONError(w, http.StatusUnauthorized, "non_authentifie", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// RequireRole gates a route on the authenticated user's role. It must be
// mounted inside RequireAuth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				httpx.JSONError(w, http.StatusUnauthorized, "non_authentifie", nil)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpx.JSONError(w, http.StatusForbidden, "acces_refuse", nil)
		})
	}
}
