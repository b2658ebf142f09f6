package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPxToMm(t *testing.T) {
	// 192 captured pixels = 96 CSS pixels = 1 inch
	assert.InDelta(t, 25.4, PxToMm(192), 1e-9)
}

func TestFitToPageTallCapture(t *testing.T) {
	// A 210mm x 297mm capture at 2x: 1587 x 2245 px. Height limits the
	// fit, so the zoom cannot apply and the image fills the page.
	p := FitToPage(1587, 2245)

	assert.InDelta(t, 0.0, p.Y, 1e-9)
	assert.LessOrEqual(t, p.Width, PageWidthMM+1e-9)
	assert.LessOrEqual(t, p.Height, PageHeightMM+1e-9)
	assert.InDelta(t, PageHeightMM, p.Height, 0.2)
}

func TestFitToPageZoomFallsBackOnOverflow(t *testing.T) {
	// The base ratio already makes the limiting dimension fill the
	// page, so zooming would overflow it and the base fit is used.
	wide := FitToPage(2000, 1000)
	assert.InDelta(t, PageWidthMM, wide.Width, 1e-9)
	assert.InDelta(t, (PageWidthMM-wide.Width)/2, wide.X, 1e-9)

	tall := FitToPage(1000, 2000)
	assert.InDelta(t, PageHeightMM, tall.Height, 1e-9)
	assert.Less(t, tall.Width, PageWidthMM)
}

func TestFitToPageNeverOverflows(t *testing.T) {
	shapes := [][2]int{
		{100, 100}, {3000, 100}, {100, 3000},
		{1587, 2245}, {1587, 4000}, {794, 1123},
		{1, 1}, {5000, 7071},
	}
	for _, shape := range shapes {
		p := FitToPage(shape[0], shape[1])
		assert.LessOrEqual(t, p.Width, PageWidthMM+1e-9)
		assert.LessOrEqual(t, p.Height, PageHeightMM+1e-9)
		assert.GreaterOrEqual(t, p.X, -1e-9)
		assert.Equal(t, 0.0, p.Y)
		// Horizontally centered
		assert.InDelta(t, (PageWidthMM-p.Width)/2, p.X, 1e-9)
	}
}

func TestFitToPageZeroDimensions(t *testing.T) {
	assert.Equal(t, Placement{}, FitToPage(0, 0))
	assert.Equal(t, Placement{}, FitToPage(100, 0))
}
