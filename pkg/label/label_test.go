package label

import (
	"image"
	"image/color"
	"testing"
)

func fixture(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{100, 150, 200, 255})
		}
	}
	return img
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"none", "below", "beside"} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q) failed: %v", valid, err)
		}
	}

	if _, err := ParseMode("above"); err == nil {
		t.Error("ParseMode(\"above\") should fail")
	}
	if _, err := ParseMode(""); err == nil {
		t.Error("ParseMode(\"\") should fail")
	}
}

func TestComposeNoneUnchanged(t *testing.T) {
	c := New(ModeNone, 24, "")
	out := c.Compose(fixture(100, 140), "photo.jpg")

	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 140 {
		t.Errorf("ModeNone changed dimensions: %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}
	if c.StripThickness() != 0 {
		t.Errorf("ModeNone strip thickness = %d, want 0", c.StripThickness())
	}
}

func TestComposeBelowGrowsHeight(t *testing.T) {
	c := New(ModeBelow, 24, "")
	out := c.Compose(fixture(200, 280), "IMG_0042.jpg")

	wantHeight := 280 + c.StripThickness()
	if out.Bounds().Dx() != 200 {
		t.Errorf("ModeBelow changed width: %d", out.Bounds().Dx())
	}
	if out.Bounds().Dy() != wantHeight {
		t.Errorf("ModeBelow height = %d, want %d", out.Bounds().Dy(), wantHeight)
	}

	// The strip must contain dark text pixels on a white background.
	if !stripHasInk(out, image.Rect(0, 280, 200, wantHeight)) {
		t.Error("ModeBelow strip contains no rendered text")
	}
}

func TestComposeBesideGrowsWidth(t *testing.T) {
	c := New(ModeBeside, 24, "")
	out := c.Compose(fixture(200, 280), "IMG_0042.jpg")

	wantWidth := 200 + c.StripThickness()
	if out.Bounds().Dy() != 280 {
		t.Errorf("ModeBeside changed height: %d", out.Bounds().Dy())
	}
	if out.Bounds().Dx() != wantWidth {
		t.Errorf("ModeBeside width = %d, want %d", out.Bounds().Dx(), wantWidth)
	}

	if !stripHasInk(out, image.Rect(200, 0, wantWidth, 280)) {
		t.Error("ModeBeside strip contains no rendered text")
	}
}

func TestComposeEmptyIdentifier(t *testing.T) {
	c := New(ModeBelow, 24, "")
	out := c.Compose(fixture(100, 140), "")

	// The strip is still reserved, just blank.
	if out.Bounds().Dy() != 140+c.StripThickness() {
		t.Errorf("Empty identifier should still reserve the strip, got height %d", out.Bounds().Dy())
	}
}

func TestFontFallbackOnBadPath(t *testing.T) {
	c := New(ModeBelow, 24, "/nonexistent/font.ttf")
	out := c.Compose(fixture(200, 280), "fallback.png")

	if out == nil {
		t.Fatal("Compose returned nil with an unavailable preferred font")
	}
	if !stripHasInk(out, image.Rect(0, 280, 200, out.Bounds().Max.Y)) {
		t.Error("Fallback font rendered no text")
	}
}

// stripHasInk reports whether the region contains any pixel meaningfully
// darker than the white strip background.
func stripHasInk(img *image.NRGBA, region image.Rectangle) bool {
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.R < 200 && c.G < 200 && c.B < 200 {
				return true
			}
		}
	}
	return false
}
