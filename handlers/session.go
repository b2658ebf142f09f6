package handlers

import (
	"net/http"

	"docflow_app_go/models"
	"docflow_app_go/services"

	"github.com/labstack/echo/v4"
)

type createSessionRequest struct {
	DocType string `json:"docType"`
}

type sessionResponse struct {
	SessionID string                  `json:"sessionId"`
	State     *services.DocumentState `json:"state"`
}

type updateFieldRequest struct {
	Field  string `json:"field"`
	ItemID string `json:"itemId,omitempty"`
	Value  string `json:"value"`
}

// CreateSessionHandler opens a new editing session with default state
// for the requested document type
func CreateSessionHandler(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if !models.IsValidDocumentType(req.DocType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown document type")
	}

	session := services.Sessions.Open(req.DocType)
	return c.JSON(http.StatusCreated, sessionResponse{
		SessionID: session.ID,
		State:     session.State,
	})
}

// GetSessionHandler returns the current state of a session
func GetSessionHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{SessionID: session.ID, State: session.State})
}

// UpdateFieldHandler applies one field mutation to the session state
// and returns the recomputed state
func UpdateFieldHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	var req updateFieldRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := session.State.Set(req.Field, req.ItemID, req.Value); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, sessionResponse{SessionID: session.ID, State: session.State})
}

// AddItemHandler appends an empty line item to the session state
func AddItemHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	session.State.AddItem()
	return c.JSON(http.StatusOK, sessionResponse{SessionID: session.ID, State: session.State})
}

// RemoveItemHandler deletes a line item. Removing the last remaining
// item is rejected: a document always keeps at least one row.
func RemoveItemHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	if !session.State.RemoveItem(c.Param("itemId")) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot remove the last line item")
	}
	return c.JSON(http.StatusOK, sessionResponse{SessionID: session.ID, State: session.State})
}

// ResetSessionHandler restores the default state with a fresh
// provisional number
func ResetSessionHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	session.State.Reset()
	return c.JSON(http.StatusOK, sessionResponse{SessionID: session.ID, State: session.State})
}

// CloseSessionHandler discards a session
func CloseSessionHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	services.Sessions.Close(session.ID)
	return c.NoContent(http.StatusNoContent)
}

// PreviewSessionHandler renders the live document preview as HTML
func PreviewSessionHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	return c.HTML(http.StatusOK, services.PreviewHTML(session.State, letterheadURL(c)))
}

func currentSession(c echo.Context) (*services.DocumentSession, error) {
	session, ok := services.Sessions.Get(c.Param("id"))
	if !ok {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Session not found")
	}
	return session, nil
}
