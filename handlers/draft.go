package handlers

import (
	"net/http"

	"docflow_app_go/models"
	"docflow_app_go/services"

	"github.com/labstack/echo/v4"
)

type draftPayload struct {
	Payload string `json:"payload"`
}

// GetDraftHandler returns the stored draft for a document type. A 404
// means no draft has been written yet.
func GetDraftHandler(c echo.Context) error {
	docType := c.Param("type")
	if !models.IsValidDocumentType(docType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown document type")
	}

	key := models.DocumentTypeDraftKey(docType)
	payload, found, err := services.Drafts.Get(c.Request().Context(), key)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load draft")
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "No draft stored")
	}

	return c.JSON(http.StatusOK, draftPayload{Payload: payload})
}

// PutDraftHandler stores the draft for a document type, replacing any
// previous draft under the same key
func PutDraftHandler(c echo.Context) error {
	docType := c.Param("type")
	if !models.IsValidDocumentType(docType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown document type")
	}

	var req draftPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	key := models.DocumentTypeDraftKey(docType)
	if err := services.Drafts.Set(c.Request().Context(), key, req.Payload); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store draft")
	}

	return c.JSON(http.StatusOK, map[string]string{"key": key})
}
