package crop

import (
	"image"
	"image/color"
	"testing"
)

func TestParseRatio(t *testing.T) {
	tests := []struct {
		in      string
		want    Ratio
		wantErr bool
	}{
		{"5x7", Ratio{5, 7}, false},
		{"5:7", Ratio{5, 7}, false},
		{"16x9", Ratio{16, 9}, false},
		{" 1x1 ", Ratio{1, 1}, false},
		{"5", Ratio{}, true},
		{"0x7", Ratio{}, true},
		{"-5x7", Ratio{}, true},
		{"axb", Ratio{}, true},
	}

	for _, tt := range tests {
		got, err := ParseRatio(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseRatio(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRatio(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRatio(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPlanRatioInvariant(t *testing.T) {
	sizes := [][2]int{
		{2000, 1000}, {1000, 2000}, {500, 700}, {700, 500},
		{1, 1}, {3, 5}, {4096, 4096}, {1920, 1080}, {123, 457},
	}
	ratios := []Ratio{{5, 7}, {1, 1}, {7, 5}, {16, 9}, {2, 3}}

	for _, sz := range sizes {
		for _, r := range ratios {
			w, h := sz[0], sz[1]
			box := Plan(w, h, r, nil)

			if box.Left < 0 || box.Top < 0 || box.Right > w || box.Bottom > h {
				t.Errorf("Plan(%d,%d,%v) box %+v escapes image bounds", w, h, r, box)
			}
			if box.Width() <= 0 || box.Height() <= 0 {
				t.Errorf("Plan(%d,%d,%v) produced degenerate box %+v", w, h, r, box)
				continue
			}

			// One dimension must be kept whole.
			if box.Width() != w && box.Height() != h {
				t.Errorf("Plan(%d,%d,%v) shrank both dimensions: %+v", w, h, r, box)
			}

			// Width/height matches the ratio to integer truncation: the
			// cut dimension is the floor of the kept one scaled by the
			// ratio, but never below one pixel.
			if box.Height() == h {
				want := h * r.W / r.H
				if want < 1 {
					want = 1
				}
				if box.Width() != want {
					t.Errorf("Plan(%d,%d,%v) width %d, want %d", w, h, r, box.Width(), want)
				}
			}
			if box.Width() == w {
				want := w * r.H / r.W
				if want < 1 {
					want = 1
				}
				if box.Height() != want {
					t.Errorf("Plan(%d,%d,%v) height %d, want %d", w, h, r, box.Height(), want)
				}
			}
		}
	}
}

func TestPlanTinyImages(t *testing.T) {
	// The floor in the cut dimension must never empty the box, even when the
	// image is a single row or column of pixels.
	sizes := [][2]int{{1, 1}, {1, 100}, {100, 1}, {2, 3}, {6, 1}}
	ratios := []Ratio{{5, 7}, {7, 5}, {16, 9}, {2, 3}, {1, 1}}

	for _, sz := range sizes {
		for _, r := range ratios {
			w, h := sz[0], sz[1]
			box := Plan(w, h, r, nil)

			if box.Left < 0 || box.Top < 0 || box.Right > w || box.Bottom > h {
				t.Errorf("Plan(%d,%d,%v) box %+v escapes image bounds", w, h, r, box)
			}
			if box.Width() < 1 || box.Height() < 1 {
				t.Errorf("Plan(%d,%d,%v) produced empty box %+v", w, h, r, box)
			}
		}
	}
}

func TestPlanClampingExample(t *testing.T) {
	// 2000x1000 at 5:7 with no anchor: full height kept, width cut to 714,
	// default anchor is the image center.
	box := Plan(2000, 1000, Ratio{5, 7}, nil)

	want := Box{Left: 643, Top: 0, Right: 1357, Bottom: 1000}
	if box != want {
		t.Errorf("Plan(2000,1000,5:7,nil) = %+v, want %+v", box, want)
	}
}

func TestPlanCenteredWhenUnclamped(t *testing.T) {
	// Anchor far enough from every edge: the box must be exactly centered
	// on it (up to the floor in newWidth/2).
	anchor := image.Point{X: 900, Y: 500}
	box := Plan(2000, 1000, Ratio{5, 7}, &anchor)

	if box.Left != anchor.X-box.Width()/2 {
		t.Errorf("Box not horizontally centered on anchor: left=%d width=%d", box.Left, box.Width())
	}
	if box.Top != anchor.Y-box.Height()/2 {
		t.Errorf("Box not vertically centered on anchor: top=%d height=%d", box.Top, box.Height())
	}
}

func TestPlanClampsAnchorNearEdges(t *testing.T) {
	tests := []struct {
		name   string
		anchor image.Point
	}{
		{"top-left corner", image.Point{X: 0, Y: 0}},
		{"bottom-right corner", image.Point{X: 1999, Y: 999}},
		{"far outside", image.Point{X: -500, Y: 5000}},
	}

	for _, tt := range tests {
		box := Plan(2000, 1000, Ratio{5, 7}, &tt.anchor)
		if box.Left < 0 || box.Top < 0 || box.Right > 2000 || box.Bottom > 1000 {
			t.Errorf("%s: box %+v escapes bounds", tt.name, box)
		}
		if box.Width() != 714 || box.Height() != 1000 {
			t.Errorf("%s: clamping changed the box size: %+v", tt.name, box)
		}
	}
}

func TestPlanDeterministic(t *testing.T) {
	anchor := image.Point{X: 333, Y: 777}
	first := Plan(1234, 2345, Ratio{5, 7}, &anchor)

	for i := 0; i < 10; i++ {
		if got := Plan(1234, 2345, Ratio{5, 7}, &anchor); got != first {
			t.Fatalf("Plan is not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestApply(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}

	box := Plan(100, 50, Ratio{1, 1}, nil)
	cropped := Apply(img, box)

	if cropped.Bounds().Dx() != 50 || cropped.Bounds().Dy() != 50 {
		t.Errorf("Expected 50x50 crop, got %dx%d", cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
}

func TestRotate90SwapsDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 30, 70))
	rotated := Rotate90(img)

	if rotated.Bounds().Dx() != 70 || rotated.Bounds().Dy() != 30 {
		t.Errorf("Expected 70x30 after rotation, got %dx%d",
			rotated.Bounds().Dx(), rotated.Bounds().Dy())
	}
}

func TestNaturalPortrait(t *testing.T) {
	if !NaturalPortrait(image.NewRGBA(image.Rect(0, 0, 30, 70))) {
		t.Error("30x70 should be portrait")
	}
	if NaturalPortrait(image.NewRGBA(image.Rect(0, 0, 70, 30))) {
		t.Error("70x30 should not be portrait")
	}
	if NaturalPortrait(image.NewRGBA(image.Rect(0, 0, 50, 50))) {
		t.Error("Square should not count as portrait")
	}
}
