package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"docflow_app_go/models"
	"docflow_app_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestCreateSessionHandler(t *testing.T) {
	setupTestDB(t)

	body := strings.NewReader(`{"docType":"invoice"}`)
	_, c, rec := setupEcho(http.MethodPost, "/api/sessions", body)

	err := CreateSessionHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp sessionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, models.DocumentTypeInvoice, resp.State.DocType)
	assert.Len(t, resp.State.Items, 1)
}

func TestCreateSessionHandlerRejectsUnknownType(t *testing.T) {
	setupTestDB(t)

	body := strings.NewReader(`{"docType":"receipt"}`)
	_, c, _ := setupEcho(http.MethodPost, "/api/sessions", body)

	err := CreateSessionHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestUpdateFieldHandler(t *testing.T) {
	setupTestDB(t)
	session := openTestSession(t, models.DocumentTypeInvoice)
	itemID := session.State.Items[0].ID

	body := strings.NewReader(`{"field":"quantity","itemId":"` + itemID + `","value":"3"}`)
	_, c, rec := setupEcho(http.MethodPost, "/api/sessions/"+session.ID+"/fields", body)
	c.SetParamNames("id")
	c.SetParamValues(session.ID)

	err := UpdateFieldHandler(c)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3.0, session.State.Items[0].Quantity)
}

func TestUpdateFieldHandlerUnknownField(t *testing.T) {
	setupTestDB(t)
	session := openTestSession(t, models.DocumentTypeInvoice)

	body := strings.NewReader(`{"field":"bogus","value":"x"}`)
	_, c, _ := setupEcho(http.MethodPost, "/api/sessions/"+session.ID+"/fields", body)
	c.SetParamNames("id")
	c.SetParamValues(session.ID)

	err := UpdateFieldHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestSessionNotFound(t *testing.T) {
	setupTestDB(t)

	_, c, _ := setupEcho(http.MethodGet, "/api/sessions/nope", nil)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := GetSessionHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestAddAndRemoveItemHandlers(t *testing.T) {
	setupTestDB(t)
	session := openTestSession(t, models.DocumentTypeInvoice)
	firstID := session.State.Items[0].ID

	_, c, rec := setupEcho(http.MethodPost, "/api/sessions/"+session.ID+"/items", nil)
	c.SetParamNames("id")
	c.SetParamValues(session.ID)
	assert.NoError(t, AddItemHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, session.State.Items, 2)

	_, c, rec = setupEcho(http.MethodDelete, "/api/sessions/"+session.ID+"/items/"+firstID, nil)
	c.SetParamNames("id", "itemId")
	c.SetParamValues(session.ID, firstID)
	assert.NoError(t, RemoveItemHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, session.State.Items, 1)

	// Removing the last remaining item is rejected
	lastID := session.State.Items[0].ID
	_, c, _ = setupEcho(http.MethodDelete, "/api/sessions/"+session.ID+"/items/"+lastID, nil)
	c.SetParamNames("id", "itemId")
	c.SetParamValues(session.ID, lastID)
	err := RemoveItemHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestResetAndCloseSessionHandlers(t *testing.T) {
	setupTestDB(t)
	session := openTestSession(t, models.DocumentTypePurchaseOrder)
	assert.NoError(t, session.State.Set("supplierName", "", "Gulf Supplies"))

	_, c, rec := setupEcho(http.MethodPost, "/api/sessions/"+session.ID+"/reset", nil)
	c.SetParamNames("id")
	c.SetParamValues(session.ID)
	assert.NoError(t, ResetSessionHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, session.State.SupplierName)

	_, c, rec = setupEcho(http.MethodDelete, "/api/sessions/"+session.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(session.ID)
	assert.NoError(t, CloseSessionHandler(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, ok := services.Sessions.Get(session.ID)
	assert.False(t, ok)
}

func TestPreviewSessionHandler(t *testing.T) {
	setupTestDB(t)
	session := openTestSession(t, models.DocumentTypeInvoice)
	assert.NoError(t, session.State.Set("billToName", "", "ACME Trading LLC"))

	_, c, rec := setupEcho(http.MethodGet, "/api/sessions/"+session.ID+"/preview", nil)
	c.SetParamNames("id")
	c.SetParamValues(session.ID)

	assert.NoError(t, PreviewSessionHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACME Trading LLC")
	assert.Contains(t, rec.Body.String(), `id="invoice-preview"`)
}

func TestExportSessionHandlerBusy(t *testing.T) {
	setupTestDB(t)
	session := openTestSession(t, models.DocumentTypeInvoice)
	assert.NoError(t, session.Begin())
	defer session.End()

	_, c, _ := setupEcho(http.MethodPost, "/api/sessions/"+session.ID+"/export", nil)
	c.SetParamNames("id")
	c.SetParamValues(session.ID)

	err := ExportSessionHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestPrintSessionHandler(t *testing.T) {
	setupTestDB(t)
	session := openTestSession(t, models.DocumentTypeDeliveryOrder)

	_, c, rec := setupEcho(http.MethodGet, "/api/sessions/"+session.ID+"/print", nil)
	c.SetParamNames("id")
	c.SetParamValues(session.ID)

	assert.NoError(t, PrintSessionHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "transform: scale(1.12)")
	assert.Contains(t, rec.Body.String(), `id="do-preview"`)
}

func TestEmailSessionHandlerValidation(t *testing.T) {
	setupTestDB(t)
	session := openTestSession(t, models.DocumentTypeInvoice)

	body := strings.NewReader(`{}`)
	_, c, _ := setupEcho(http.MethodPost, "/api/sessions/"+session.ID+"/email", body)
	c.SetParamNames("id")
	c.SetParamValues(session.ID)

	err := EmailSessionHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
