package middleware

import (
	"net/http"
	"strings"

	"paintbuddy/internal/usecase"
	"paintbuddy/pkg"

	"github.com/gin-gonic/gin"
)

const claimsKey = "auth_claims"

// TokenVerifier is the slice of the auth use case the middleware needs.
type TokenVerifier interface {
	VerifyToken(token string) (usecase.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// verified claims on the gin context for downstream handlers.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortWith(c, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized))
			return
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			abortWith(c, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Invalid or expired token", http.StatusUnauthorized))
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireVerified must run after RequireAuth. Admin accounts pass even when
// unverified so a bootstrap admin is never locked out.
func RequireVerified() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			abortWith(c, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized))
			return
		}
		if !claims.EmailVerified && !claims.IsAdmin() {
			abortWith(c, pkg.NewDomainErrorSimple("EMAIL_NOT_VERIFIED", "Please verify your email address first", http.StatusForbidden))
			return
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			abortWith(c, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized))
			return
		}
		if !claims.IsAdmin() {
			abortWith(c, pkg.NewDomainErrorSimple("FORBIDDEN", "Admin access required", http.StatusForbidden))
			return
		}
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireAuth.
func ClaimsFrom(c *gin.Context) (usecase.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return usecase.Claims{}, false
	}
	claims, ok := v.(usecase.Claims)
	return claims, ok
}

// SetClaims places claims on the context directly. Test hook.
func SetClaims(c *gin.Context, claims usecase.Claims) {
	c.Set(claimsKey, claims)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func abortWith(c *gin.Context, appErr *pkg.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
