package handlers

import (
	"net/http"
	"time"

	"docflow_app_go/db"
	"docflow_app_go/models"
	"docflow_app_go/services"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHistoryHandler downloads the saved-documents history as an
// Excel workbook
func ExportHistoryHandler(c echo.Context) error {
	docType := c.QueryParam("type")
	if docType != "" && !models.IsValidDocumentType(docType) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown document type")
	}

	buf, err := services.ExportHistoryXLSX(db.DB, docType, time.Now())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build history export")
	}

	filename := "documents_" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
