package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"

	"docflow_app_go/models"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
)

// ErrPreviewNotAvailable is returned when the capture step yields no
// usable image for the document preview.
var ErrPreviewNotAvailable = errors.New("document preview not available")

// ExportPDF renders a document state to a single-page A4 PDF: the
// preview tree is style-flattened, rasterized in headless Chrome, fit
// to the page, and placed on a fresh PDF.
func ExportPDF(ctx context.Context, state *DocumentState, letterheadURL string) ([]byte, error) {
	clone := ClonePage(BuildPreview(state, letterheadURL), DefaultStyles())
	htmlContent := WrapExportHTML(RenderNode(clone))

	capture, err := CapturePNG(ctx, htmlContent)
	if err != nil {
		return nil, err
	}
	return AssemblePDF(capture)
}

// AssemblePDF places one captured PNG onto a portrait A4 page using the
// page-fit placement.
func AssemblePDF(capture []byte) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(capture))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreviewNotAvailable, err)
	}

	placement := FitToPage(cfg.Width, cfg.Height)
	if placement.Width <= 0 || placement.Height <= 0 {
		return nil, ErrPreviewNotAvailable
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	imageName := "capture-" + uuid.New().String()
	options := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imageName, options, bytes.NewReader(capture))
	pdf.ImageOptions(imageName, placement.X, placement.Y, placement.Width, placement.Height, false, options, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to assemble PDF: %w", err)
	}
	return out.Bytes(), nil
}

// PrintHTML renders the print view of a document: the live preview page
// plus print rules that scale the sheet onto A4 with no browser chrome.
func PrintHTML(state *DocumentState, letterheadURL string) string {
	previewID := PreviewElementID(state.DocType)
	printCSS := fmt.Sprintf(`        @page { size: A4; margin: 0; }
        @media print {
            html, body { margin: 0 !important; -webkit-print-color-adjust: exact; }
            body * { visibility: hidden !important; }
            #%[1]s, #%[1]s * { visibility: visible !important; }
            #%[1]s {
                position: absolute !important;
                left: 0 !important;
                top: 0 !important;
                transform: scale(1.12);
                transform-origin: top left;
                width: 187.5mm !important;
                min-height: 265.179mm !important;
                margin: 0 !important;
                padding: 10.714mm !important;
                background: #ffffff !important;
            }
        }
`, previewID)

	tree := BuildPreview(state, letterheadURL)
	styles := DefaultStyles()
	return `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
` + structuralCSS + styles.CSS() + printCSS + `    </style>
</head>
<body>
` + RenderNode(tree) + `
</body>
</html>`
}

// PrintDocumentPDF produces the print-flow PDF: Chrome prints the
// preview with the A4 print rules applied, no rasterization step.
func PrintDocumentPDF(ctx context.Context, state *DocumentState, letterheadURL string) ([]byte, error) {
	return PrintPDF(ctx, PrintHTML(state, letterheadURL))
}

// ExportFileName builds the download name for an exported document.
// Empty numbers fall back to "draft".
func ExportFileName(docType, number string) string {
	if number == "" {
		number = "draft"
	}
	prefix := "Invoice"
	switch docType {
	case models.DocumentTypePurchaseOrder:
		prefix = "PO"
	case models.DocumentTypeDeliveryOrder:
		prefix = "DO"
	}
	return fmt.Sprintf("%s-%s.pdf", prefix, number)
}
