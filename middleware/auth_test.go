package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/SeniduRavihara/usj-event-calendar/auth"
	"github.com/SeniduRavihara/usj-event-calendar/config"
	"github.com/SeniduRavihara/usj-event-calendar/models"
)

const testSecret = "middleware-test-secret"

func newTokens() *auth.Service {
	return auth.NewService(&config.Config{JWTSecret: testSecret})
}

func newRouter(tokens *auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", RequireAuth(tokens), func(c *gin.Context) {
		claims, _ := CurrentClaims(c)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email, "role": claims.Role})
	})
	r.GET("/admin-only", RequireAuth(tokens), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func issueFor(t *testing.T, tokens *auth.Service, role string) string {
	t.Helper()
	token, err := tokens.Issue(&models.User{ID: 7, Name: "Test", Email: "t@sjp.ac.lk", Role: role})
	assert.NoError(t, err)
	return token
}

func expiredToken(t *testing.T) string {
	t.Helper()
	now := time.Now().UTC()
	claims := auth.Claims{
		UserID: 7,
		Email:  "t@sjp.ac.lk",
		Role:   models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return signed
}

func TestRequireAuthNoToken(t *testing.T) {
	r := newRouter(newTokens())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication required")
}

func TestRequireAuthExpiredToken(t *testing.T) {
	r := newRouter(newTokens())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: expiredToken(t)})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r := newRouter(newTokens())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestRequireAuthCookie(t *testing.T) {
	tokens := newTokens()
	r := newRouter(tokens)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueFor(t, tokens, models.RoleStudent)})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "t@sjp.ac.lk")
}

func TestRequireAuthBearerHeader(t *testing.T) {
	tokens := newTokens()
	r := newRouter(tokens)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+issueFor(t, tokens, models.RoleStudent))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCookieWinsOverHeader(t *testing.T) {
	tokens := newTokens()
	r := newRouter(tokens)

	// Valid cookie beside a garbage header: the cookie is read first.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueFor(t, tokens, models.RoleStudent)})
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	tokens := newTokens()
	r := newRouter(tokens)

	// Student is forbidden.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueFor(t, tokens, models.RoleStudent)})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access required")

	// Admin passes.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/admin-only", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueFor(t, tokens, models.RoleAdmin)})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPageGuard(t *testing.T) {
	tokens := newTokens()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PageGuard(tokens, []string{"/dashboard", "/admin"}))
	probe := func(c *gin.Context) { c.String(http.StatusOK, "page") }
	r.GET("/dashboard", probe)
	r.GET("/dashboard/settings", probe)
	r.GET("/about", probe)

	// No cookie on a protected prefix: redirect to login.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/dashboard", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// Invalid cookie on a nested protected path: redirect.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/dashboard/settings", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)

	// Valid cookie: page served.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueFor(t, tokens, models.RoleStudent)})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Unprotected path needs no session.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/about", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
