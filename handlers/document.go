package handlers

import (
	"errors"
	"net/http"
	"time"

	"docflow_app_go/db"
	"docflow_app_go/models"
	"docflow_app_go/services"

	"github.com/labstack/echo/v4"
)

// SaveSessionHandler persists the session state as a new document
// snapshot. On success the session resets to a blank form with a fresh
// provisional number, matching the editor flow.
func SaveSessionHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	if err := session.Begin(); err != nil {
		return echo.NewHTTPError(http.StatusConflict, "An operation is already in progress for this session")
	}
	defer session.End()

	doc, err := services.SaveDocument(db.DB, session.State)
	if errors.Is(err, services.ErrBillToNameRequired) || errors.Is(err, services.ErrNumberRequired) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save document")
	}

	session.State.Reset()

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"document": doc,
		"state":    session.State,
	})
}

// ListDocumentsHandler returns the saved-documents history, newest
// first. An optional type query parameter filters by variant.
func ListDocumentsHandler(c echo.Context) error {
	docType := c.QueryParam("type")
	if docType != "" && !models.IsValidDocumentType(docType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown document type")
	}

	entries, err := services.ListDocuments(db.DB, docType, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list documents")
	}
	return c.JSON(http.StatusOK, entries)
}

// GetDocumentHandler returns one saved document with its parsed items
func GetDocumentHandler(c echo.Context) error {
	doc, err := services.GetDocument(db.DB, c.Param("id"))
	if errors.Is(err, services.ErrDocumentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load document")
	}

	items, err := doc.LineItems()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to parse document items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"document": doc,
		"items":    items,
	})
}

// PreviewDocumentHandler renders a saved document back through the
// preview pipeline
func PreviewDocumentHandler(c echo.Context) error {
	doc, err := services.GetDocument(db.DB, c.Param("id"))
	if errors.Is(err, services.ErrDocumentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load document")
	}

	state, err := services.StateFromDocument(doc)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to rebuild document state")
	}

	return c.HTML(http.StatusOK, services.PreviewHTML(state, letterheadURL(c)))
}

// ExportDocumentHandler re-exports a saved document as a PDF download
func ExportDocumentHandler(c echo.Context) error {
	doc, err := services.GetDocument(db.DB, c.Param("id"))
	if errors.Is(err, services.ErrDocumentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load document")
	}

	state, err := services.StateFromDocument(doc)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to rebuild document state")
	}

	pdf, err := services.ExportPDF(c.Request().Context(), state, letterheadURL(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate PDF")
	}

	filename := services.ExportFileName(doc.DocType, doc.Number)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// DeleteDocumentHandler soft-deletes a saved document
func DeleteDocumentHandler(c echo.Context) error {
	err := services.DeleteDocument(db.DB, c.Param("id"))
	if errors.Is(err, services.ErrDocumentNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Document not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete document")
	}
	return c.NoContent(http.StatusNoContent)
}
