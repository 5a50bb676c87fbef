package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/eventiapi/eventiapi/config"
	"github.com/eventiapi/eventiapi/internal/models"
	"github.com/eventiapi/eventiapi/internal/server"
	"github.com/eventiapi/eventiapi/internal/token"
)

// newTestServer wires the full route table against an in-memory database so
// tests exercise the same middleware chain as production.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB, *token.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.Seed(db, &config.Config{
		AdminEmail:    "admin@example.com",
		AdminPassword: "Admin123!",
	}))

	tokens := token.NewService("test-secret", time.Hour)

	r := gin.New()
	server.SetupRoutes(r, db, tokens)
	return r, db, tokens
}

func createUser(t *testing.T, db *gorm.DB, email, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	var role models.Role
	require.NoError(t, db.Where("name = ?", models.RoleUser).First(&role).Error)

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []models.Role{role},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func issueFor(t *testing.T, tokens *token.Service, db *gorm.DB, email string) string {
	t.Helper()

	var user models.User
	require.NoError(t, db.Preload("Roles").Where("email = ?", email).First(&user).Error)

	raw, err := tokens.Issue(user.ID, user.Email, user.RoleNames())
	require.NoError(t, err)
	return raw
}

func adminToken(t *testing.T, tokens *token.Service, db *gorm.DB) string {
	t.Helper()
	return issueFor(t, tokens, db, "admin@example.com")
}

func doJSON(t *testing.T, r *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func seededArtist(t *testing.T, db *gorm.DB) models.Artist {
	t.Helper()

	var artist models.Artist
	require.NoError(t, db.First(&artist).Error)
	return artist
}

func seededEvent(t *testing.T, db *gorm.DB) models.Event {
	t.Helper()

	var event models.Event
	require.NoError(t, db.First(&event).Error)
	return event
}
