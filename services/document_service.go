package services

import (
	"errors"
	"fmt"
	"time"

	"docflow_app_go/models"

	"gorm.io/gorm"
)

// ErrBillToNameRequired is returned when a save is attempted without a
// customer name.
var ErrBillToNameRequired = errors.New("customer name is required")

// ErrNumberRequired is returned when manual numbering is enabled and
// no document number was entered.
var ErrNumberRequired = errors.New("document number is required when manual entry is enabled")

// ErrDocumentNotFound is returned when a document id does not exist
var ErrDocumentNotFound = errors.New("document not found")

// SaveDocument validates the current state, stamps it with a reserved
// number (or a provisional one when the reservation fails), recomputes
// the totals, and persists the snapshot. The state keeps the stamped
// number afterwards so the export filename matches the saved record.
func SaveDocument(db *gorm.DB, state *DocumentState) (*models.Document, error) {
	if state.BillToName == "" {
		return nil, ErrBillToNameRequired
	}

	if state.AutoNumber && !state.Reserved {
		state.Number, state.Reserved = ReserveOrProvisional(db, state.DocType)
	}
	if !state.AutoNumber && state.Number == "" {
		return nil, ErrNumberRequired
	}

	// Totals are always derived fresh at save time
	state.Recompute()

	doc := snapshotFromState(state)
	if err := doc.SetLineItems(state.Items); err != nil {
		return nil, fmt.Errorf("failed to flatten line items: %w", err)
	}

	if err := db.Create(doc).Error; err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return doc, nil
}

func snapshotFromState(state *DocumentState) *models.Document {
	return &models.Document{
		DocType:             state.DocType,
		Number:              state.Number,
		DocumentDate:        state.DocumentDate,
		DueDate:             state.DueDate,
		CustomerNumber:      optional(state.CustomerNumber),
		BillToName:          state.BillToName,
		BillToAddress:       optional(state.BillToAddress),
		BillToCity:          optional(state.BillToCity),
		BillToPhone:         optional(state.BillToPhone),
		BillToEmail:         optional(state.BillToEmail),
		ShipToName:          optional(state.ShipToName),
		ShipToAddress:       optional(state.ShipToAddress),
		ShipToCity:          optional(state.ShipToCity),
		ShipToPhone:         optional(state.ShipToPhone),
		SupplierName:        optional(state.SupplierName),
		SupplierAddress:     optional(state.SupplierAddress),
		DeliveryLocation:    optional(state.DeliveryLocation),
		ReferenceInvoice:    optional(state.ReferenceInvoice),
		PurchaseOrderNumber: optional(state.PurchaseOrderNumber),
		PaymentTerms:        optional(state.PaymentTerms),
		Currency:            state.Currency,
		Discount:            state.Discount,
		VATPercent:          state.VATPercent,
		Notes:               optional(state.Notes),
		Terms:               optional(state.Terms),
		Subtotal:            state.Totals.Subtotal,
		TotalTax:            state.Totals.TotalTax,
		GrandTotal:          state.Totals.GrandTotal,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func fromOptional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// DocumentListEntry is one row of the saved-documents history
type DocumentListEntry struct {
	models.Document
	Overdue bool `json:"overdue"`
}

// ListDocuments returns saved documents, newest first, optionally
// filtered by type. Each entry carries an overdue flag derived from the
// due date.
func ListDocuments(db *gorm.DB, docType string, now time.Time) ([]DocumentListEntry, error) {
	query := db.Order("created_at DESC")
	if docType != "" {
		query = query.Where("doc_type = ?", docType)
	}

	var docs []models.Document
	if err := query.Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	entries := make([]DocumentListEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, DocumentListEntry{
			Document: doc,
			Overdue:  doc.IsOverdue(now),
		})
	}
	return entries, nil
}

// GetDocument fetches one saved document by id
func GetDocument(db *gorm.DB, id string) (*models.Document, error) {
	var doc models.Document
	err := db.Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return &doc, nil
}

// DeleteDocument soft-deletes a saved document by id
func DeleteDocument(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// StateFromDocument rebuilds an editable state from a saved snapshot so
// a stored document can be previewed and exported again. The rebuilt
// state keeps the saved number in manual mode.
func StateFromDocument(doc *models.Document) (*DocumentState, error) {
	items, err := doc.LineItems()
	if err != nil {
		return nil, fmt.Errorf("failed to parse line items: %w", err)
	}

	state := &DocumentState{
		DocType:             doc.DocType,
		Number:              doc.Number,
		AutoNumber:          false,
		Reserved:            true,
		DocumentDate:        doc.DocumentDate,
		DueDate:             doc.DueDate,
		CustomerNumber:      fromOptional(doc.CustomerNumber),
		BillToName:          doc.BillToName,
		BillToAddress:       fromOptional(doc.BillToAddress),
		BillToCity:          fromOptional(doc.BillToCity),
		BillToPhone:         fromOptional(doc.BillToPhone),
		BillToEmail:         fromOptional(doc.BillToEmail),
		ShipToName:          fromOptional(doc.ShipToName),
		ShipToAddress:       fromOptional(doc.ShipToAddress),
		ShipToCity:          fromOptional(doc.ShipToCity),
		ShipToPhone:         fromOptional(doc.ShipToPhone),
		SupplierName:        fromOptional(doc.SupplierName),
		SupplierAddress:     fromOptional(doc.SupplierAddress),
		DeliveryLocation:    fromOptional(doc.DeliveryLocation),
		ReferenceInvoice:    fromOptional(doc.ReferenceInvoice),
		PurchaseOrderNumber: fromOptional(doc.PurchaseOrderNumber),
		PaymentTerms:        fromOptional(doc.PaymentTerms),
		Items:               items,
		Currency:            doc.Currency,
		Discount:            doc.Discount,
		VATPercent:          doc.VATPercent,
		Notes:               fromOptional(doc.Notes),
		Terms:               fromOptional(doc.Terms),
	}
	state.Recompute()
	return state, nil
}
