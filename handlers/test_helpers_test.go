package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"docflow_app_go/config"
	"docflow_app_go/db"
	"docflow_app_go/models"
	"docflow_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Use unique shared memory name to isolate tests while allowing shared cache for async tasks
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.Exec("PRAGMA journal_mode=WAL;").Error
	assert.NoError(t, err)

	// Initialize Storage for tests if not already set
	if services.Storage == nil {
		services.Storage = services.NewLocalStorage("tmp/test_uploads")
	}

	err = testDB.AutoMigrate(
		&models.Document{},
		&models.NumberSequence{},
		&models.Draft{},
	)
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	services.InitializeSessions()
	services.Drafts = &services.DBDraftStore{DB: testDB}

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
		LetterheadURL: "/static/images/header.jpg",
	})

	return e, c, rec
}

func openTestSession(t *testing.T, docType string) *services.DocumentSession {
	if services.Sessions == nil {
		services.InitializeSessions()
	}
	return services.Sessions.Open(docType)
}
