package services

// A4 page geometry and capture parameters. The rasterizer renders the
// document clone at 2x device scale, so one captured pixel covers
// 25.4/(96*2) millimeters.
const (
	PageWidthMM  = 210.0
	PageHeightMM = 297.0

	CaptureScale = 2.0
	cssPixelsIn  = 96.0

	// Preferred zoom applied on top of the page-fit ratio. It trades
	// margin whitespace for a larger document body and is dropped when
	// it would push either dimension past the page.
	fitZoom = 1.12
)

// Placement is where a captured image lands on the A4 page, in mm.
type Placement struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// PxToMm converts captured pixels to millimeters at the capture scale.
func PxToMm(px float64) float64 {
	return px * 25.4 / (cssPixelsIn * CaptureScale)
}

// FitToPage computes the single-page placement for a captured image of
// the given pixel dimensions. The image is scaled to fit both page
// dimensions, zoomed by the preferred factor when that still fits, and
// centered horizontally at the top edge. The result never exceeds the
// page in either dimension.
func FitToPage(widthPx, heightPx int) Placement {
	widthMM := PxToMm(float64(widthPx))
	heightMM := PxToMm(float64(heightPx))
	if widthMM <= 0 || heightMM <= 0 {
		return Placement{}
	}

	base := PageWidthMM / widthMM
	if h := PageHeightMM / heightMM; h < base {
		base = h
	}

	ratio := base * fitZoom
	if widthMM*ratio > PageWidthMM || heightMM*ratio > PageHeightMM {
		ratio = base
	}

	finalW := widthMM * ratio
	finalH := heightMM * ratio
	return Placement{
		X:      (PageWidthMM - finalW) / 2,
		Y:      0,
		Width:  finalW,
		Height: finalH,
	}
}
