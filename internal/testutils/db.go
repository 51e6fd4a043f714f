package testutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"employee-portal/internal/api/routes"
	"employee-portal/internal/auth"
	"employee-portal/internal/config"
	"employee-portal/internal/database"
	"employee-portal/internal/database/models"
)

// SetupTestDB opens a fresh in-memory database with the schema migrated
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.InitializeInMemory()
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// TestConfig returns a configuration suitable for tests
func TestConfig() *config.Config {
	return &config.Config{
		Environment:    "test",
		Port:           "0",
		LogLevel:       "error",
		JWTSecret:      "test-secret-key",
		JWTExpiryHours: 1,
		APITimeoutSec:  5,
	}
}

// ServerFixture is a running API server backed by an in-memory database
type ServerFixture struct {
	DB     *gorm.DB
	Server *httptest.Server
	Config *config.Config

	Admin      *models.User
	AdminToken string
}

// StartServer boots the full router on an httptest server and seeds an
// admin account, returning a ready bearer token for it
func StartServer(t *testing.T) *ServerFixture {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := SetupTestDB(t)
	cfg := TestConfig()

	admin := NewUserFactory().Admin("admin-password")
	require.NoError(t, db.Create(admin).Error)

	service := auth.NewAuthService(db, cfg)
	token, err := service.GenerateJWT(admin)
	require.NoError(t, err)

	server := httptest.NewServer(routes.Setup(cfg, db))
	t.Cleanup(server.Close)

	cfg.APIBaseURL = server.URL + "/api"
	cfg.APIToken = token

	return &ServerFixture{
		DB:         db,
		Server:     server,
		Config:     cfg,
		Admin:      admin,
		AdminToken: token,
	}
}
