// auth.go - Session extraction and route guards

package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SeniduRavihara/usj-event-calendar/auth"
	"github.com/SeniduRavihara/usj-event-calendar/models"
)

// CookieName is the session cookie the login handler sets.
const CookieName = "token"

// claimsKey is the gin context key the guards store verified claims under.
const claimsKey = "claims"

// ExtractToken reads the session token from the request: the cookie first,
// then a "Bearer" Authorization header. Absence of both yields ErrNoToken.
func ExtractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer "), nil
	}
	return "", auth.ErrNoToken
}

// RequireAuth rejects requests without a valid session token. On success the
// verified claims are stored in the context for handlers to pick up.
func RequireAuth(tokens *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := ExtractToken(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "Session expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireAdmin rejects sessions whose role claim is not ADMIN. It must run
// after RequireAuth. The role comes from the token snapshot, not a DB read:
// demoting an admin takes effect when their token lapses or they re-login.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if claims.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentClaims returns the verified session claims stored by RequireAuth.
func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// PageGuard redirects unauthenticated traffic on protected page prefixes to
// the login page. The check runs before any protected content is served, so
// there is no window where a guarded page renders for an anonymous visitor.
// Only the cookie counts here; page navigation never carries a Bearer header.
func PageGuard(tokens *auth.Service, prefixes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		protected := false
		for _, p := range prefixes {
			if strings.HasPrefix(path, p) {
				protected = true
				break
			}
		}
		if !protected {
			c.Next()
			return
		}

		cookie, err := c.Request.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if _, err := tokens.Verify(cookie.Value); err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
