package services

import (
	"html"
	"sort"
	"strconv"
	"strings"

	"docflow_app_go/models"

	"github.com/microcosm-cc/bluemonday"
)

// notesPolicy strips all markup from free-text fields before they are
// interpolated into preview HTML.
var notesPolicy = bluemonday.StrictPolicy()

// Node is one element of the preview content tree. The tree is built
// per document variant, serialized with a class-based stylesheet for
// the live preview, and style-flattened for the export rasterizer.
type Node struct {
	Tag      string
	Class    string
	Text     string            // escaped on render
	RawHTML  string            // pre-sanitized markup, rendered verbatim
	Attrs    map[string]string // rendered in sorted order
	Style    map[string]string // inline styles, rendered in sorted order
	Children []*Node
}

func elem(tag, class string, children ...*Node) *Node {
	return &Node{Tag: tag, Class: class, Children: children}
}

func textNode(tag, class, text string) *Node {
	return &Node{Tag: tag, Class: class, Text: text}
}

// PreviewElementID returns the DOM id of the preview root for a
// document type.
func PreviewElementID(docType string) string {
	switch docType {
	case models.DocumentTypePurchaseOrder:
		return "po-preview"
	case models.DocumentTypeDeliveryOrder:
		return "do-preview"
	default:
		return "invoice-preview"
	}
}

// BuildPreview renders a document state into its preview content tree.
// Row order follows item insertion order.
func BuildPreview(state *DocumentState, letterheadURL string) *Node {
	var body []*Node
	switch state.DocType {
	case models.DocumentTypePurchaseOrder:
		body = buildPurchaseOrderBody(state)
	case models.DocumentTypeDeliveryOrder:
		body = buildDeliveryOrderBody(state)
	default:
		body = buildInvoiceBody(state)
	}

	root := elem("div", "page")
	root.Attrs = map[string]string{"id": PreviewElementID(state.DocType)}
	root.Children = append([]*Node{letterhead(letterheadURL)}, body...)
	return root
}

func letterhead(url string) *Node {
	img := &Node{
		Tag:   "img",
		Class: "letterhead",
		Attrs: map[string]string{"src": url, "alt": "Company Letterhead"},
	}
	return elem("div", "letterhead-wrap", img)
}

func buildInvoiceBody(s *DocumentState) []*Node {
	infoRow := elem("div", "info-grid",
		infoField("Invoice Number:", s.Number),
		infoField("Invoice Date:", s.DocumentDate),
		infoField("Due Date:", s.DueDate),
	)
	info := elem("div", "info-box", infoRow)
	if s.CustomerNumber != "" || s.PurchaseOrderNumber != "" || s.PaymentTerms != "" {
		extra := elem("div", "info-grid info-extra")
		if s.CustomerNumber != "" {
			extra.Children = append(extra.Children, infoField("Customer No:", s.CustomerNumber))
		}
		if s.PurchaseOrderNumber != "" {
			extra.Children = append(extra.Children, infoField("PO Number:", s.PurchaseOrderNumber))
		}
		extra.Children = append(extra.Children, infoField("Payment Terms:", s.PaymentTerms))
		info.Children = append(info.Children, extra)
	}

	billTo := elem("div", "",
		textNode("div", "party-title", "Bill To"),
	)
	if s.BillToName != "" {
		billTo.Children = append(billTo.Children, textNode("div", "party-name", s.BillToName))
		if s.BillToAddress != "" {
			billTo.Children = append(billTo.Children, textNode("div", "body-text", s.BillToAddress))
		}
		if s.BillToCity != "" {
			billTo.Children = append(billTo.Children, textNode("div", "body-text", s.BillToCity))
		}
		if s.BillToPhone != "" {
			billTo.Children = append(billTo.Children, textNode("div", "", "Tel: "+s.BillToPhone))
		}
		if s.BillToEmail != "" {
			billTo.Children = append(billTo.Children, textNode("div", "body-text", s.BillToEmail))
		}
	} else {
		billTo.Children = append(billTo.Children, textNode("div", "muted", "No billing information provided"))
	}
	parties := elem("div", "parties-box", billTo)
	if s.ShipToName != "" || s.ShipToAddress != "" || s.ShipToCity != "" {
		shipTo := elem("div", "", textNode("div", "party-title", "Ship To"))
		if s.ShipToName != "" {
			shipTo.Children = append(shipTo.Children, textNode("div", "party-name", s.ShipToName))
		}
		if s.ShipToAddress != "" {
			shipTo.Children = append(shipTo.Children, textNode("div", "body-text", s.ShipToAddress))
		}
		if s.ShipToCity != "" {
			shipTo.Children = append(shipTo.Children, textNode("div", "body-text", s.ShipToCity))
		}
		parties.Children = append(parties.Children, shipTo)
	}

	table := itemsTable(
		[]column{
			{"Item No", false},
			{"Description", false},
			{"Qty", true},
			{"Unit Price", true},
			{"Tax %", true},
			{"Total", true},
		},
		s.Items,
		func(item models.LineItem) []cell {
			return []cell{
				{item.ItemNo, false, false},
				{item.Description, false, false},
				{formatQuantity(item.Quantity), true, false},
				{FormatAmount(item.UnitPrice), true, false},
				{FormatRate(item.TaxRate) + "%", true, false},
				{FormatAmount(item.LineTotal), true, true},
			}
		},
	)

	totals := elem("div", "totals-wrap",
		elem("div", "totals",
			totalsRow("Subtotal:", s.Currency+" "+FormatAmount(s.Totals.Subtotal), ""),
			totalsRow("VAT/Tax Amount:", s.Currency+" "+FormatAmount(s.Totals.TotalTax), ""),
		),
	)
	if s.Discount > 0 {
		totals.Children[0].Children = append(totals.Children[0].Children,
			totalsRow("Discount:", "-"+s.Currency+" "+FormatAmount(s.Discount), "discount"))
	}
	totals.Children[0].Children = append(totals.Children[0].Children,
		grandTotalRow("Grand Total:", s.Currency+" "+FormatAmount(s.Totals.GrandTotal)))

	body := []*Node{info, parties, table, totals}
	if s.Notes != "" {
		body = append(body, notesBox("Notes / Terms & Conditions:", s.Notes))
	}

	footer := elem("div", "footer",
		textNode("p", "footer-strong", "Thank you for your business!"),
		textNode("p", "", "If you have any questions regarding this invoice, please contact us at +968 7637 3445"),
	)
	return append(body, footer)
}

func buildPurchaseOrderBody(s *DocumentState) []*Node {
	info := elem("div", "info-box",
		elem("div", "info-grid",
			infoField("PO Number:", s.Number),
			infoField("PO Date:", s.DocumentDate),
			infoField("Delivery Location:", s.DeliveryLocation),
		),
	)

	supplier := elem("div", "",
		textNode("div", "party-title", "Supplier"),
		textNode("div", "party-name", s.SupplierName),
	)
	if s.SupplierAddress != "" {
		supplier.Children = append(supplier.Children, textNode("div", "body-text pre-wrap", s.SupplierAddress))
	}
	parties := elem("div", "parties-box", supplier)

	table := itemsTable(
		[]column{
			{"Description", false},
			{"Qty", true},
			{"Unit Price", true},
			{"Total", true},
		},
		s.Items,
		func(item models.LineItem) []cell {
			return []cell{
				{item.Description, false, false},
				{formatQuantity(item.Quantity), true, false},
				{FormatAmount(item.UnitPrice), true, false},
				{FormatAmount(item.Quantity * item.UnitPrice), true, true},
			}
		},
	)

	totals := elem("div", "totals-wrap",
		elem("div", "totals",
			totalsRow("Subtotal:", FormatAmount(s.Totals.Subtotal), ""),
			totalsRow("VAT/Tax ("+FormatRate(s.VATPercent)+"%):", FormatAmount(s.Totals.TotalTax), ""),
			grandTotalRow("Grand Total:", FormatAmount(s.Totals.GrandTotal)),
		),
	)

	body := []*Node{info, parties, table, totals}
	if s.Terms != "" {
		body = append(body, notesBox("Terms & Conditions:", s.Terms))
	}
	return append(body, signatureBlock("Prepared By", "Authorized Signature"))
}

func buildDeliveryOrderBody(s *DocumentState) []*Node {
	info := elem("div", "info-box",
		elem("div", "info-grid",
			infoField("DO Number:", s.Number),
			infoField("DO Date:", s.DocumentDate),
			infoField("Reference:", s.ReferenceInvoice),
		),
	)

	deliverTo := elem("div", "",
		textNode("div", "party-title", "Deliver To"),
		textNode("div", "party-name", s.BillToName),
	)
	if s.BillToAddress != "" {
		deliverTo.Children = append(deliverTo.Children, textNode("div", "body-text pre-wrap", s.BillToAddress))
	}
	parties := elem("div", "parties-box", deliverTo)

	table := itemsTable(
		[]column{
			{"Description", false},
			{"Qty", true},
			{"Unit", false},
			{"Notes", false},
		},
		s.Items,
		func(item models.LineItem) []cell {
			return []cell{
				{item.Description, false, false},
				{formatQuantity(item.Quantity), true, false},
				{item.Unit, false, false},
				{item.Remarks, false, false},
			}
		},
	)

	body := []*Node{info, parties, table}
	if s.Notes != "" {
		body = append(body, notesBox("Notes / Remarks:", s.Notes))
	}
	return append(body, signatureBlock("Prepared By", "Authorized Signature"))
}

type column struct {
	title string
	right bool
}

type cell struct {
	text  string
	right bool
	bold  bool
}

func itemsTable(columns []column, items []models.LineItem, row func(models.LineItem) []cell) *Node {
	head := elem("tr", "table-head")
	for _, col := range columns {
		class := "head-cell"
		if col.right {
			class += " right"
		}
		head.Children = append(head.Children, textNode("th", class, col.title))
	}

	tbody := elem("tbody", "")
	for i, item := range items {
		rowClass := "row-odd"
		if i%2 == 0 {
			rowClass = "row-even"
		}
		tr := elem("tr", rowClass)
		for _, c := range row(item) {
			class := "cell"
			if c.right {
				class += " right"
			}
			if c.bold {
				class += " strong"
			}
			tr.Children = append(tr.Children, textNode("td", class, c.text))
		}
		tbody.Children = append(tbody.Children, tr)
	}

	return elem("div", "table-wrap",
		elem("table", "items", elem("thead", "", head), tbody),
	)
}

func infoField(label, value string) *Node {
	return elem("div", "",
		textNode("div", "info-label", label),
		textNode("div", "", value),
	)
}

func totalsRow(label, value, valueClass string) *Node {
	class := "totals-value"
	if valueClass != "" {
		class += " " + valueClass
	}
	return elem("div", "totals-row",
		textNode("span", "totals-label", label),
		textNode("span", class, value),
	)
}

func grandTotalRow(label, value string) *Node {
	return elem("div", "grand-row",
		textNode("span", "grand-label", label),
		textNode("span", "grand-value", value),
	)
}

func notesBox(title, body string) *Node {
	content := &Node{
		Tag:     "div",
		Class:   "body-text pre-wrap",
		RawHTML: notesPolicy.Sanitize(body),
	}
	return elem("div", "notes-box",
		textNode("div", "notes-title", title),
		content,
	)
}

func signatureBlock(left, right string) *Node {
	return elem("div", "signatures",
		elem("div", "",
			textNode("div", "info-label", left),
			elem("div", "signature-line"),
		),
		elem("div", "",
			textNode("div", "info-label", right),
			elem("div", "signature-line"),
		),
	)
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// RenderNode serializes a content tree to HTML. Attributes and inline
// styles are emitted in sorted order so output is deterministic.
func RenderNode(n *Node) string {
	var b strings.Builder
	renderNodeTo(&b, n)
	return b.String()
}

func renderNodeTo(b *strings.Builder, n *Node) {
	b.WriteString("<" + n.Tag)
	if n.Class != "" {
		b.WriteString(` class="` + html.EscapeString(n.Class) + `"`)
	}
	for _, key := range sortedKeys(n.Attrs) {
		b.WriteString(" " + key + `="` + html.EscapeString(n.Attrs[key]) + `"`)
	}
	if len(n.Style) > 0 {
		b.WriteString(` style="`)
		for i, key := range sortedKeys(n.Style) {
			if i > 0 {
				b.WriteString(";")
			}
			b.WriteString(key + ":" + html.EscapeString(n.Style[key]))
		}
		b.WriteString(`"`)
	}

	if n.Tag == "img" {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")

	if n.RawHTML != "" {
		b.WriteString(n.RawHTML)
	} else if n.Text != "" {
		b.WriteString(html.EscapeString(n.Text))
	}
	for _, child := range n.Children {
		renderNodeTo(b, child)
	}
	b.WriteString("</" + n.Tag + ">")
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// PreviewHTML renders the live preview page: the content tree plus a
// class stylesheet, colors resolved from the default style source.
func PreviewHTML(state *DocumentState, letterheadURL string) string {
	tree := BuildPreview(state, letterheadURL)
	return WrapPreviewHTML(RenderNode(tree), DefaultStyles())
}

// WrapPreviewHTML wraps rendered preview content with the structural
// stylesheet and the color classes for on-screen display.
func WrapPreviewHTML(content string, styles StyleSource) string {
	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
` + structuralCSS + styles.CSS() + `    </style>
</head>
<body>
` + content + `
</body>
</html>`
}

// WrapExportHTML wraps a style-flattened clone for the rasterizer.
// Colors must already be inlined: the rasterizer gets no color classes.
func WrapExportHTML(content string) string {
	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
` + structuralCSS + `    </style>
</head>
<body>
` + content + `
</body>
</html>`
}

// structuralCSS carries layout only. Visual colors live in the style
// source so the export flattening step stays meaningful.
const structuralCSS = `        html, body {
            margin: 0;
            padding: 0;
        }
        .page {
            font-family: Helvetica, Arial, sans-serif;
            font-size: 10pt;
            width: 210mm;
            min-height: 297mm;
            padding: 8mm;
            box-sizing: border-box;
            margin: 0 auto;
        }
        .letterhead-wrap { margin-bottom: 8mm; }
        .letterhead { width: 100%; height: auto; }
        .info-box { border-radius: 8px; padding: 12px; margin-bottom: 6mm; font-size: 8pt; }
        .info-grid { display: grid; grid-template-columns: 1fr 1fr 1fr; gap: 12px; }
        .info-extra { margin-top: 9px; padding-top: 9px; border-top: 1px solid; }
        .info-label { font-weight: 600; margin-bottom: 3px; }
        .parties-box { display: grid; grid-template-columns: 1fr 1fr; gap: 18px; border: 2px solid; border-radius: 8px; padding: 12px; margin-bottom: 6mm; font-size: 8pt; }
        .party-title { font-weight: 700; text-transform: uppercase; margin-bottom: 6px; }
        .party-name { font-weight: 600; }
        .table-wrap { margin-bottom: 6mm; }
        .items { width: 100%; border-collapse: collapse; font-size: 8pt; }
        .items th, .items td { border: 1px solid; padding: 9px; text-align: left; }
        .right { text-align: right !important; }
        .strong { font-weight: 700; }
        .head-cell { font-weight: 700; }
        .totals-wrap { display: flex; justify-content: flex-end; margin-bottom: 6mm; }
        .totals { width: 70mm; font-size: 8pt; }
        .totals-row { display: flex; justify-content: space-between; padding: 9px 12px; border-bottom: 1px solid; }
        .totals-label { font-weight: 500; }
        .totals-value { font-weight: 600; }
        .grand-row { display: flex; justify-content: space-between; padding: 12px; border-radius: 6px; font-weight: 700; }
        .grand-value { font-size: 11pt; }
        .notes-box { border: 1px solid; border-radius: 8px; padding: 12px; margin-bottom: 6mm; font-size: 8pt; }
        .notes-title { font-weight: 700; margin-bottom: 6px; }
        .pre-wrap { white-space: pre-wrap; }
        .footer { border-top: 2px solid; padding-top: 12px; text-align: center; font-size: 8pt; }
        .footer-strong { font-weight: 600; }
        .signatures { display: grid; grid-template-columns: 1fr 1fr; gap: 12px; margin-top: 12mm; font-size: 8pt; }
        .signature-line { height: 16mm; border-bottom: 1px solid; }
`
