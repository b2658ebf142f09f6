package handlers

import (
	"log"
	"net/http"

	"docflow_app_go/config"
	"docflow_app_go/services"

	"github.com/labstack/echo/v4"
)

// Export artifacts are rendered per request and handed straight to the
// client or the mailer. Swappable here so tests can run without Chrome.
var exportPDF = services.ExportPDF

type emailRequest struct {
	To string `json:"to"`
}

// ExportSessionHandler renders the session preview to a single-page A4
// PDF and returns it as a download. Only one save or export may run per
// session at a time.
func ExportSessionHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	if err := session.Begin(); err != nil {
		return echo.NewHTTPError(http.StatusConflict, "An operation is already in progress for this session")
	}
	defer session.End()

	pdf, err := exportPDF(c.Request().Context(), session.State, letterheadURL(c))
	if err != nil {
		log.Printf("[WARNING] PDF export failed for session %s: %v", session.ID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate PDF")
	}

	filename := services.ExportFileName(session.State.DocType, session.State.Number)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// PrintSessionHandler returns the print view: the preview page with A4
// print rules, ready for the browser's print dialog
func PrintSessionHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	return c.HTML(http.StatusOK, services.PrintHTML(session.State, letterheadURL(c)))
}

// PrintPDFHandler runs the print flow through headless Chrome and
// returns the printed PDF inline
func PrintPDFHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	if err := session.Begin(); err != nil {
		return echo.NewHTTPError(http.StatusConflict, "An operation is already in progress for this session")
	}
	defer session.End()

	pdf, err := services.PrintDocumentPDF(c.Request().Context(), session.State, letterheadURL(c))
	if err != nil {
		log.Printf("[WARNING] Print PDF failed for session %s: %v", session.ID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to print PDF")
	}

	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// EmailSessionHandler exports the session document and emails it as an
// attachment. The send runs asynchronously; the PDF lives only in the
// outgoing message, nothing is written to storage.
func EmailSessionHandler(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	var req emailRequest
	if err := c.Bind(&req); err != nil || req.To == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Recipient email is required")
	}

	cfg, ok := c.Get("config").(*config.Config)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Configuration not available")
	}

	if err := session.Begin(); err != nil {
		return echo.NewHTTPError(http.StatusConflict, "An operation is already in progress for this session")
	}
	defer session.End()

	state := session.State
	pdf, err := exportPDF(c.Request().Context(), state, letterheadURL(c))
	if err != nil {
		log.Printf("[WARNING] PDF export failed for session %s: %v", session.ID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate PDF")
	}

	email := services.BuildDocumentEmail(req.To, state.DocType, state.Number, pdf)
	services.SendEmailAsync(cfg, email)

	return c.JSON(http.StatusAccepted, map[string]string{
		"status": "queued",
		"to":     req.To,
	})
}
