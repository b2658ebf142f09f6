package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// historyColumns is the header row of the history workbook
var historyColumns = []string{
	"Number", "Type", "Date", "Due Date", "Customer",
	"Currency", "Subtotal", "Tax", "Discount", "Grand Total",
	"Overdue", "Created At",
}

// ExportHistoryXLSX writes the saved-documents history to an Excel
// workbook, newest first, one row per document.
func ExportHistoryXLSX(db *gorm.DB, docType string, now time.Time) (*bytes.Buffer, error) {
	entries, err := ListDocuments(db, docType, now)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Documents"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range historyColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, entry := range entries {
		values := []interface{}{
			entry.Number,
			entry.DocType,
			entry.DocumentDate,
			entry.DueDate,
			entry.BillToName,
			entry.Currency,
			entry.Subtotal,
			entry.TotalTax,
			entry.Discount,
			entry.GrandTotal,
			entry.Overdue,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
