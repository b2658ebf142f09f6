package handlers

import (
	"net/http"
	"sync"

	"docflow_app_go/config"
	"docflow_app_go/services"

	"github.com/labstack/echo/v4"
)

var (
	letterheadMu       sync.RWMutex
	letterheadOverride string
)

// UploadLetterheadHandler stores a new letterhead image. The uploaded
// image replaces the configured default on every preview and export
// rendered afterwards.
func UploadLetterheadHandler(c echo.Context) error {
	file, err := c.FormFile("letterhead")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Letterhead file is required")
	}

	if err := services.ValidateLetterheadUpload(file); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	key := services.GenerateLetterheadKey(file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store letterhead")
	}

	letterheadMu.Lock()
	letterheadOverride = result.URL
	letterheadMu.Unlock()

	return c.JSON(http.StatusOK, map[string]string{
		"key": result.Key,
		"url": result.URL,
	})
}

// letterheadURL resolves the image used at the top of every document:
// the last uploaded letterhead, or the configured default.
func letterheadURL(c echo.Context) string {
	letterheadMu.RLock()
	override := letterheadOverride
	letterheadMu.RUnlock()
	if override != "" {
		return override
	}

	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg.LetterheadURL
	}
	return "/static/images/header.jpg"
}
