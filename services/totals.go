package services

import (
	"math"
	"strconv"

	"docflow_app_go/models"
)

// Totals is the derived subtotal/tax/grand-total triple for a document.
// Values keep full float64 precision; rounding happens only in
// FormatAmount when a value is rendered.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TotalTax   float64 `json:"total_tax"`
	GrandTotal float64 `json:"grand_total"`
}

// LineTotal computes the total of a single line:
// quantity*unitPrice plus the per-line tax on that amount.
func LineTotal(quantity, unitPrice, taxRate float64) float64 {
	subtotal := quantity * unitPrice
	return subtotal + subtotal*(taxRate/100)
}

// ComputeLineTaxed derives totals for documents that tax each line
// individually (invoices, delivery orders). The discount is a flat
// document-level amount and is not validated against the total: a
// discount larger than subtotal+tax yields a negative grand total.
func ComputeLineTaxed(items []models.LineItem, discount float64) Totals {
	var subtotal, totalTax float64
	for _, item := range items {
		itemSubtotal := item.Quantity * item.UnitPrice
		subtotal += itemSubtotal
		totalTax += itemSubtotal * (item.TaxRate / 100)
	}
	return Totals{
		Subtotal:   subtotal,
		TotalTax:   totalTax,
		GrandTotal: subtotal + totalTax - discount,
	}
}

// ComputeDocumentTaxed derives totals for documents that apply a single
// VAT percentage to the subtotal (purchase orders).
func ComputeDocumentTaxed(items []models.LineItem, discount, vatPercent float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Quantity * item.UnitPrice
	}
	totalTax := subtotal * (vatPercent / 100)
	return Totals{
		Subtotal:   subtotal,
		TotalTax:   totalTax,
		GrandTotal: subtotal + totalTax - discount,
	}
}

// ParseAmount converts numeric form input to a float64. Malformed,
// empty, NaN, or infinite input coerces to 0 - never an error.
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatAmount renders a monetary value with exactly 3 fractional digits
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// FormatRate renders a tax percentage with 2 fractional digits
func FormatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
