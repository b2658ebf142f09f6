package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document type constants
const (
	DocumentTypeInvoice       = "invoice"
	DocumentTypePurchaseOrder = "purchase_order"
	DocumentTypeDeliveryOrder = "delivery_order"
)

// DocumentTypePrefix returns the numbering prefix for a document type
func DocumentTypePrefix(docType string) string {
	switch docType {
	case DocumentTypePurchaseOrder:
		return "PO"
	case DocumentTypeDeliveryOrder:
		return "DO"
	default:
		return "FFE-INV"
	}
}

// DocumentTypeDraftKey returns the draft keystore key for a document type
func DocumentTypeDraftKey(docType string) string {
	switch docType {
	case DocumentTypePurchaseOrder:
		return "po:draft"
	case DocumentTypeDeliveryOrder:
		return "do:draft"
	default:
		return "inv:draft"
	}
}

// IsValidDocumentType reports whether docType is one of the known variants
func IsValidDocumentType(docType string) bool {
	switch docType {
	case DocumentTypeInvoice, DocumentTypePurchaseOrder, DocumentTypeDeliveryOrder:
		return true
	}
	return false
}

// LineItem is one row of a document. For delivery orders the price and
// tax fields stay zero and Unit/Remarks carry the row detail instead.
type LineItem struct {
	ID          string  `json:"id"`
	ItemNo      string  `json:"itemNo,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TaxRate     float64 `json:"taxRate"`
	LineTotal   float64 `json:"lineTotal"`
	Unit        string  `json:"unit,omitempty"`
	Remarks     string  `json:"notes,omitempty"`
}

// Document is a persisted snapshot of an edited document: flattened
// header fields, the item rows as JSON, and the computed totals at
// save time. Saved records are never edited in place.
type Document struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	DocType string `gorm:"not null;index" json:"doc_type"`
	Number  string `gorm:"not null;index" json:"number"`

	// Dates as entered (YYYY-MM-DD)
	DocumentDate string `gorm:"not null" json:"document_date"`
	DueDate      string `json:"due_date,omitempty"`

	// Counterparties
	CustomerNumber  *string `json:"customer_number,omitempty"`
	BillToName      string  `json:"bill_to_name"`
	BillToAddress   *string `json:"bill_to_address,omitempty"`
	BillToCity      *string `json:"bill_to_city,omitempty"`
	BillToPhone     *string `json:"bill_to_phone,omitempty"`
	BillToEmail     *string `json:"bill_to_email,omitempty"`
	ShipToName      *string `json:"ship_to_name,omitempty"`
	ShipToAddress   *string `json:"ship_to_address,omitempty"`
	ShipToCity      *string `json:"ship_to_city,omitempty"`
	ShipToPhone     *string `json:"ship_to_phone,omitempty"`
	SupplierName    *string `json:"supplier_name,omitempty"`
	SupplierAddress *string `json:"supplier_address,omitempty"`

	// Variant-specific header fields
	DeliveryLocation    *string `json:"delivery_location,omitempty"`
	ReferenceInvoice    *string `json:"reference_invoice,omitempty"`
	PurchaseOrderNumber *string `json:"purchase_order_number,omitempty"`
	PaymentTerms        *string `json:"payment_terms,omitempty"`

	// Item rows, flattened to JSON in insertion order
	Items string `gorm:"type:text;not null" json:"-"`

	Currency   string  `gorm:"not null;default:OMR" json:"currency"`
	Discount   float64 `json:"discount"`
	VATPercent float64 `json:"vat_percent"`
	Notes      *string `gorm:"type:text" json:"notes,omitempty"`
	Terms      *string `gorm:"type:text" json:"terms,omitempty"`

	// Computed totals at save time
	Subtotal   float64 `json:"subtotal"`
	TotalTax   float64 `json:"total_tax"`
	GrandTotal float64 `json:"grand_total"`
}

// BeforeCreate hook to generate UUID
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// LineItems unmarshals the flattened item rows
func (d *Document) LineItems() ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal([]byte(d.Items), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SetLineItems flattens item rows into the Items column
func (d *Document) SetLineItems(items []LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	d.Items = string(data)
	return nil
}

// IsOverdue reports whether the due date lies in the past
func (d *Document) IsOverdue(now time.Time) bool {
	if d.DueDate == "" {
		return false
	}
	due, err := time.Parse("2006-01-02", d.DueDate)
	if err != nil {
		return false
	}
	return due.Before(now)
}
