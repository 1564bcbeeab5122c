package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/pkg/auth"
	"github.com/carelink/booking-api/pkg/httputil"
)

const identityKey = "identity"

type AuthMiddleware struct {
	jwtSvc auth.JWTService
	// identityCache memoizes token verification. TTL must stay well under
	// the token expiry so a cached entry never outlives its token.
	identityCache *gocache.Cache
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSvc:        jwtSvc,
		identityCache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Authenticate verifies the bearer credential and stores the resulting
// identity in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "invalid authorization format")
			return
		}
		token := parts[1]

		if cached, ok := m.identityCache.Get(token); ok {
			c.Set(identityKey, cached.(model.Identity))
			c.Next()
			return
		}

		identity, err := m.jwtSvc.Validate(token)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		m.identityCache.SetDefault(token, identity)
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole rejects callers whose identity does not carry the given role.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			abortUnauthorized(c, "missing identity")
			return
		}
		if identity.Role != role {
			c.JSON(http.StatusForbidden, httputil.Response{
				Status:  "error",
				Message: "permission denied",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFromContext returns the identity set by Authenticate.
func IdentityFromContext(c *gin.Context) (model.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return model.Identity{}, false
	}
	identity, ok := v.(model.Identity)
	return identity, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, httputil.Response{
		Status:  "error",
		Message: message,
	})
	c.Abort()
}
