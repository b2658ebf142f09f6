package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestDraftHandlersRoundTrip(t *testing.T) {
	setupTestDB(t)

	body := strings.NewReader(`{"payload":"{\"docType\":\"purchase_order\"}"}`)
	_, c, rec := setupEcho(http.MethodPut, "/api/drafts/purchase_order", body)
	c.SetParamNames("type")
	c.SetParamValues("purchase_order")

	assert.NoError(t, PutDraftHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "po:draft")

	_, c, rec = setupEcho(http.MethodGet, "/api/drafts/purchase_order", nil)
	c.SetParamNames("type")
	c.SetParamValues("purchase_order")

	assert.NoError(t, GetDraftHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp draftPayload
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Payload, "purchase_order")
}

func TestGetDraftHandlerMissing(t *testing.T) {
	setupTestDB(t)

	_, c, _ := setupEcho(http.MethodGet, "/api/drafts/invoice", nil)
	c.SetParamNames("type")
	c.SetParamValues("invoice")

	err := GetDraftHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestDraftHandlersRejectUnknownType(t *testing.T) {
	setupTestDB(t)

	_, c, _ := setupEcho(http.MethodGet, "/api/drafts/receipt", nil)
	c.SetParamNames("type")
	c.SetParamValues("receipt")

	err := GetDraftHandler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
