package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"docflow_app_go/models"
	"docflow_app_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func preparedInvoiceSession(t *testing.T) *services.DocumentSession {
	session := openTestSession(t, models.DocumentTypeInvoice)
	itemID := session.State.Items[0].ID
	assert.NoError(t, session.State.Set("billToName", "", "ACME Trading LLC"))
	assert.NoError(t, session.State.Set("description", itemID, "Steel pipes"))
	assert.NoError(t, session.State.Set("quantity", itemID, "2"))
	assert.NoError(t, session.State.Set("unitPrice", itemID, "10"))
	assert.NoError(t, session.State.Set("taxRate", itemID, "5"))
	return session
}

func TestSaveSessionHandler(t *testing.T) {
	testDB := setupTestDB(t)
	session := preparedInvoiceSession(t)

	_, c, rec := setupEcho(http.MethodPost, "/api/sessions/"+session.ID+"/save", nil)
	c.SetParamNames("id")
	c.SetParamValues(session.ID)

	assert.NoError(t, SaveSessionHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Document models.Document         `json:"document"`
		State    *services.DocumentState `json:"state"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Regexp(t, `^FFE-INV-\d{4}-0001$`, resp.Document.Number)
	assert.InDelta(t, 21.0, resp.Document.GrandTotal, 1e-9)

	// The session resets to a blank form after saving
	assert.Empty(t, resp.State.BillToName)
	assert.False(t, resp.State.Reserved)

	var count int64
	testDB.Model(&models.Document{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSaveSessionHandlerRequiresBillToName(t *testing.T) {
	setupTestDB(t)
	session := openTestSession(t, models.DocumentTypeInvoice)

	_, c, _ := setupEcho(http.MethodPost, "/api/sessions/"+session.ID+"/save", nil)
	c.SetParamNames("id")
	c.SetParamValues(session.ID)

	err := SaveSessionHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestListDocumentsHandler(t *testing.T) {
	testDB := setupTestDB(t)
	session := preparedInvoiceSession(t)
	_, err := services.SaveDocument(testDB, session.State)
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodGet, "/api/documents", nil)
	assert.NoError(t, ListDocumentsHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var entries []services.DocumentListEntry
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)
	assert.Equal(t, "ACME Trading LLC", entries[0].BillToName)
}

func TestListDocumentsHandlerRejectsUnknownType(t *testing.T) {
	setupTestDB(t)

	_, c, _ := setupEcho(http.MethodGet, "/api/documents?type=receipt", nil)
	err := ListDocumentsHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetDocumentHandler(t *testing.T) {
	testDB := setupTestDB(t)
	session := preparedInvoiceSession(t)
	doc, err := services.SaveDocument(testDB, session.State)
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodGet, "/api/documents/"+doc.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(doc.ID)

	assert.NoError(t, GetDocumentHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Document models.Document   `json:"document"`
		Items    []models.LineItem `json:"items"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, doc.Number, resp.Document.Number)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, "Steel pipes", resp.Items[0].Description)
}

func TestPreviewDocumentHandler(t *testing.T) {
	testDB := setupTestDB(t)
	session := preparedInvoiceSession(t)
	doc, err := services.SaveDocument(testDB, session.State)
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodGet, "/api/documents/"+doc.ID+"/preview", nil)
	c.SetParamNames("id")
	c.SetParamValues(doc.ID)

	assert.NoError(t, PreviewDocumentHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), doc.Number)
	assert.Contains(t, rec.Body.String(), "ACME Trading LLC")
}

func TestDeleteDocumentHandler(t *testing.T) {
	testDB := setupTestDB(t)
	session := preparedInvoiceSession(t)
	doc, err := services.SaveDocument(testDB, session.State)
	assert.NoError(t, err)

	_, c, rec := setupEcho(http.MethodDelete, "/api/documents/"+doc.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(doc.ID)
	assert.NoError(t, DeleteDocumentHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, c, _ = setupEcho(http.MethodDelete, "/api/documents/"+doc.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(doc.ID)
	err = DeleteDocumentHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}
