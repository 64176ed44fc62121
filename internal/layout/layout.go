// Package layout computes image placement and per-correction annotation
// geometry for the report page. All coordinates use the PDF convention:
// origin at the bottom-left of the page, Y increasing upward, units in points.
package layout

// Page margin and annotation geometry constants
const (
	Margin = 50.0

	// IconSize is the side length of the square comment marker
	IconSize = 18.0

	// IconStride is the vertical distance between consecutive markers
	IconStride = 50.0

	// PopupWidth and PopupHeight bound the note panel a marker opens
	PopupWidth  = 300.0
	PopupHeight = 100.0
)

// Rect is an axis-aligned box anchored at its lower-left corner
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the top edge
func (r Rect) Top() float64 { return r.Y + r.H }

// Placement is the geometry for one correction marker: the clickable icon
// and the note panel it opens
type Placement struct {
	Icon  Rect
	Popup Rect
}

// ComputeImageLayout scales the image to fit the page region reserved for it,
// preserving aspect ratio. The image is never widened beyond
// pageW - 2*Margin - 100 (the right strip is reserved for markers) nor taller
// than pageH - 150; whichever dimension constrains locks the ratio and the
// other is recomputed. The image sits at x = Margin, with its bottom edge
// 120pt above the page bottom less its height.
func ComputeImageLayout(imageW, imageH, pageW, pageH float64) Rect {
	maxW := pageW - 2*Margin - 100
	maxH := pageH - 150

	w, h := imageW, imageH
	if w > maxW {
		h = h * maxW / w
		w = maxW
	}
	if h > maxH {
		w = w * maxH / h
		h = maxH
	}

	return Rect{
		X: Margin,
		Y: pageH - h - 120,
		W: w,
		H: h,
	}
}

// ComputePlacement positions the marker icon and its popup for the accepted
// correction at the given ordinal index. Icons stack downward from the
// image's top-right corner with a fixed stride so they never overlap; the
// popup opens to the left of and above its icon. Both rect origins are
// clamped to stay on the page regardless of image size or correction count.
func ComputePlacement(image Rect, index int, pageW, pageH float64) Placement {
	iconX := image.X + image.W + 20
	iconY := image.Y + image.H - float64(index)*IconStride - 50

	iconX, iconY = clamp(iconX, iconY, pageW, pageH)
	popupX, popupY := clamp(iconX-310, iconY-80, pageW, pageH)

	return Placement{
		Icon:  Rect{X: iconX, Y: iconY, W: IconSize, H: IconSize},
		Popup: Rect{X: popupX, Y: popupY, W: PopupWidth, H: PopupHeight},
	}
}

// clamp bounds an annotation origin to x in [20, pageW-IconSize-5] and
// y in [50, pageH-50]
func clamp(x, y, pageW, pageH float64) (float64, float64) {
	if x < 20 {
		x = 20
	}
	if max := pageW - IconSize - 5; x > max {
		x = max
	}
	if y < 50 {
		y = 50
	}
	if max := pageH - 50; y > max {
		y = max
	}
	return x, y
}
