package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/procurement/internal/domain/model"
	pkgAuth "github.com/polkiloo/procurement/internal/pkg/auth"
)

const (
	// IdentityContextKey is a gin context key for the authenticated identity.
	IdentityContextKey = "identity"
	authCookieName     = "procurement_token"
)

// TokenParser resolves session tokens.
type TokenParser interface {
	ParseToken(token string) (model.Identity, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "authentication required")
			return
		}

		identity, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, "invalid token")
				return
			}
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and lets anonymous requests through.
func OptionalAuth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if identity, err := parser.ParseToken(token); err == nil {
				c.Set(IdentityContextKey, identity)
			}
		}
		c.Next()
	}
}

// RequireRoles rejects identities outside roles. It must run after AuthRequired.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			abort(c, http.StatusUnauthorized, "authentication required")
			return
		}
		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "forbidden")
	}
}

// CurrentIdentity returns the identity stored by AuthRequired or OptionalAuth.
func CurrentIdentity(c *gin.Context) (model.Identity, bool) {
	val, ok := c.Get(IdentityContextKey)
	if !ok {
		return model.Identity{}, false
	}
	identity, ok := val.(model.Identity)
	return identity, ok
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, int(ttl.Seconds()), "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
