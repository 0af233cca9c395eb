package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SeniduRavihara/usj-event-calendar/auth"
	"github.com/SeniduRavihara/usj-event-calendar/config"
	"github.com/SeniduRavihara/usj-event-calendar/database"
	"github.com/SeniduRavihara/usj-event-calendar/middleware"
	"github.com/SeniduRavihara/usj-event-calendar/models"
)

var testTokens *auth.Service

// setupTest prepares a throwaway sqlite database and a router with the same
// route wiring as the real server.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	cfg := &config.Config{JWTSecret: "handler-test-secret"}
	testTokens = auth.NewService(cfg)
	authHandler := NewAuthHandler(testTokens, cfg)

	r := gin.New()
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)
	r.GET("/auth/me", middleware.RequireAuth(testTokens), authHandler.Me)
	r.PUT("/auth/me", middleware.RequireAuth(testTokens), authHandler.UpdateMe)

	events := r.Group("/events", middleware.RequireAuth(testTokens))
	events.GET("", ListEvents)
	events.GET("/:id", GetEvent)
	admin := events.Group("", middleware.RequireAdmin())
	admin.POST("", CreateEvent)
	admin.PUT("/:id", UpdateEvent)
	admin.DELETE("/:id", DeleteEvent)

	r.GET("/analytics/users", middleware.RequireAuth(testTokens), middleware.RequireAdmin(), UserAnalytics)

	return r
}

// createUser stores a user with a bcrypt-hashed password and returns it with
// a freshly issued session token.
func createUser(t *testing.T, role, name, email, password, department, studentID string) (*models.User, string) {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := models.User{
		Name:       name,
		Email:      email,
		Password:   hash,
		Role:       role,
		Department: department,
	}
	if studentID != "" {
		user.StudentID = &studentID
	}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := testTokens.Issue(&user)
	require.NoError(t, err)
	return &user, token
}

func createAdmin(t *testing.T) (*models.User, string) {
	return createUser(t, models.RoleAdmin, "Admin", "admin@sjp.ac.lk", "adminpass", "", "")
}

func createStudent(t *testing.T) (*models.User, string) {
	return createUser(t, models.RoleStudent, "Student", "student@sjp.ac.lk", "studentpass", "CS", "AS2021001")
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		data, _ := json.Marshal(body)
		buf = bytes.NewBuffer(data)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
