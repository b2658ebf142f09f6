package services

import (
	"fmt"
	"strconv"
	"time"

	"docflow_app_go/models"

	"github.com/google/uuid"
)

// DocumentState is the owned, in-memory form state of one editing
// session. It is the single source of truth for both the editor and
// the preview: every mutation goes through Set/AddItem/RemoveItem,
// each of which recomputes the derived totals synchronously so the
// preview can never diverge from the current line-item values.
type DocumentState struct {
	DocType    string `json:"docType"`
	Number     string `json:"number"`
	AutoNumber bool   `json:"autoNumber"`
	Reserved   bool   `json:"isReserved"`

	DocumentDate string `json:"date"`
	DueDate      string `json:"dueDate,omitempty"`

	CustomerNumber string `json:"customerNumber,omitempty"`
	BillToName     string `json:"billToName,omitempty"`
	BillToAddress  string `json:"billToAddress,omitempty"`
	BillToCity     string `json:"billToCity,omitempty"`
	BillToPhone    string `json:"billToPhone,omitempty"`
	BillToEmail    string `json:"billToEmail,omitempty"`
	ShipToName     string `json:"shipToName,omitempty"`
	ShipToAddress  string `json:"shipToAddress,omitempty"`
	ShipToCity     string `json:"shipToCity,omitempty"`
	ShipToPhone    string `json:"shipToPhone,omitempty"`

	SupplierName     string `json:"supplierName,omitempty"`
	SupplierAddress  string `json:"supplierAddress,omitempty"`
	DeliveryLocation string `json:"deliveryLocation,omitempty"`
	ReferenceInvoice string `json:"referenceInvoice,omitempty"`

	PurchaseOrderNumber string `json:"purchaseOrderNumber,omitempty"`
	PaymentTerms        string `json:"paymentTerms,omitempty"`

	Items []models.LineItem `json:"items"`

	Currency   string  `json:"currency,omitempty"`
	Discount   float64 `json:"discount"`
	VATPercent float64 `json:"vatPercent"`
	Notes      string  `json:"notes,omitempty"`
	Terms      string  `json:"terms,omitempty"`

	// Derived; refreshed by Recompute, never mutated directly
	Totals Totals `json:"totals"`
}

// NewDocumentState returns the default state for a document type: one
// empty line item, today's date, a provisional (non-reserved) number,
// and a 30-day due date for invoices.
func NewDocumentState(docType string) *DocumentState {
	now := time.Now()

	s := &DocumentState{
		DocType:      docType,
		Number:       ProvisionalNumber(docType, now),
		AutoNumber:   true,
		Reserved:     false,
		DocumentDate: now.Format("2006-01-02"),
		Items: []models.LineItem{
			{ID: "1", Quantity: 1},
		},
	}

	if docType == models.DocumentTypeInvoice {
		s.DueDate = now.Add(30 * 24 * time.Hour).Format("2006-01-02")
		s.Currency = "OMR"
		s.PaymentTerms = "Credit Card"
		s.Items[0].ItemNo = "000010"
	}

	s.Recompute()
	return s
}

// Reset restores the default state in place, with a fresh provisional
// number and default dates.
func (s *DocumentState) Reset() {
	*s = *NewDocumentState(s.DocType)
}

// Recompute refreshes every line total and the document totals from the
// current field values. It is called by the mutation entry points and
// must not be skipped: totals are always derived fresh, never cached.
func (s *DocumentState) Recompute() {
	for i := range s.Items {
		switch s.DocType {
		case models.DocumentTypePurchaseOrder:
			// PO rows show the untaxed amount; VAT is applied once below
			s.Items[i].LineTotal = s.Items[i].Quantity * s.Items[i].UnitPrice
		case models.DocumentTypeDeliveryOrder:
			s.Items[i].LineTotal = 0
		default:
			s.Items[i].LineTotal = LineTotal(s.Items[i].Quantity, s.Items[i].UnitPrice, s.Items[i].TaxRate)
		}
	}

	if s.DocType == models.DocumentTypePurchaseOrder {
		s.Totals = ComputeDocumentTaxed(s.Items, s.Discount, s.VATPercent)
	} else {
		s.Totals = ComputeLineTaxed(s.Items, s.Discount)
	}
}

// Set is the single mutation entry point. Field names match the client
// form fields; itemID selects a line item for item-scoped fields. Raw
// values arrive as form text: numeric fields coerce malformed input to
// 0 via ParseAmount. Unknown fields return an error; every accepted
// mutation ends with a synchronous Recompute.
func (s *DocumentState) Set(field, itemID, raw string) error {
	switch field {
	case "number":
		// Typing a number switches to manual mode and voids any reservation
		s.Number = raw
		s.AutoNumber = false
		s.Reserved = false
	case "autoNumber":
		enabled := raw == "true" || raw == "1"
		s.AutoNumber = enabled
		s.Reserved = false
		if enabled {
			s.Number = ProvisionalNumber(s.DocType, time.Now())
		}
	case "date":
		s.DocumentDate = raw
	case "dueDate":
		s.DueDate = raw
	case "customerNumber":
		s.CustomerNumber = raw
	case "billToName":
		s.BillToName = raw
	case "billToAddress":
		s.BillToAddress = raw
	case "billToCity":
		s.BillToCity = raw
	case "billToPhone":
		s.BillToPhone = raw
	case "billToEmail":
		s.BillToEmail = raw
	case "shipToName":
		s.ShipToName = raw
	case "shipToAddress":
		s.ShipToAddress = raw
	case "shipToCity":
		s.ShipToCity = raw
	case "shipToPhone":
		s.ShipToPhone = raw
	case "supplierName":
		s.SupplierName = raw
	case "supplierAddress":
		s.SupplierAddress = raw
	case "deliveryLocation":
		s.DeliveryLocation = raw
	case "referenceInvoice":
		s.ReferenceInvoice = raw
	case "purchaseOrderNumber":
		s.PurchaseOrderNumber = raw
	case "paymentTerms":
		s.PaymentTerms = raw
	case "currency":
		s.Currency = raw
	case "notes":
		s.Notes = raw
	case "terms":
		s.Terms = raw
	case "discount":
		s.Discount = ParseAmount(raw)
	case "vatPercent":
		s.VATPercent = ParseAmount(raw)
	case "itemNo", "description", "quantity", "unitPrice", "taxRate", "unit", "remarks":
		item := s.findItem(itemID)
		if item == nil {
			return fmt.Errorf("line item %q not found", itemID)
		}
		switch field {
		case "itemNo":
			item.ItemNo = raw
		case "description":
			item.Description = raw
		case "quantity":
			item.Quantity = ParseAmount(raw)
		case "unitPrice":
			item.UnitPrice = ParseAmount(raw)
		case "taxRate":
			item.TaxRate = ParseAmount(raw)
		case "unit":
			item.Unit = raw
		case "remarks":
			item.Remarks = raw
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	s.Recompute()
	return nil
}

// AddItem appends a new empty line item and returns it
func (s *DocumentState) AddItem() *models.LineItem {
	item := models.LineItem{
		ID:       uuid.New().String(),
		Quantity: 1,
	}
	if s.DocType == models.DocumentTypeInvoice {
		item.ItemNo = nextItemNo(len(s.Items))
	}
	s.Items = append(s.Items, item)
	s.Recompute()
	return &s.Items[len(s.Items)-1]
}

// RemoveItem deletes a line item by id. A document always keeps at
// least one item: removing the last remaining item is a no-op.
func (s *DocumentState) RemoveItem(itemID string) bool {
	if len(s.Items) == 1 {
		return false
	}
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			s.Recompute()
			return true
		}
	}
	return false
}

func (s *DocumentState) findItem(itemID string) *models.LineItem {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

// nextItemNo mirrors the editor's item numbering: "00" + ordinal,
// trimmed to the last 6 characters.
func nextItemNo(count int) string {
	no := "00" + strconv.Itoa(count+1)
	if len(no) > 6 {
		no = no[len(no)-6:]
	}
	return no
}
