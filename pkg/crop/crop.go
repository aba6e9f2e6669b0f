// Package crop computes aspect-ratio-preserving crop boxes anchored on a
// point of interest and clamped to the image bounds.
//
// The planner is pure integer arithmetic, so identical inputs always yield
// identical boxes. Applying a box and rotating the result are thin wrappers
// over the imaging library.
package crop

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

// Ratio is a target aspect ratio expressed as a rational width:height, e.g.
// 5:7 for a standard portrait print.
type Ratio struct {
	W int
	H int
}

// ParseRatio parses a ratio from "WxH" or "W:H" form, e.g. "5x7".
func ParseRatio(s string) (Ratio, error) {
	sep := "x"
	if strings.Contains(s, ":") {
		sep = ":"
	}
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(s)), sep, 2)
	if len(parts) != 2 {
		return Ratio{}, fmt.Errorf("invalid ratio %q (expected WxH, e.g. 5x7)", s)
	}

	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid ratio width %q: %w", parts[0], err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return Ratio{}, fmt.Errorf("invalid ratio height %q: %w", parts[1], err)
	}

	r := Ratio{W: w, H: h}
	if err := r.Validate(); err != nil {
		return Ratio{}, err
	}
	return r, nil
}

// Validate checks that both terms of the ratio are positive.
func (r Ratio) Validate() error {
	if r.W <= 0 || r.H <= 0 {
		return fmt.Errorf("ratio terms must be positive, got %d:%d", r.W, r.H)
	}
	return nil
}

// Value returns the ratio as a float, width over height.
func (r Ratio) Value() float64 {
	return float64(r.W) / float64(r.H)
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.W, r.H)
}

// Box is a crop rectangle in source pixel coordinates. For a box produced by
// Plan, 0 <= Left < Right <= imageWidth, 0 <= Top < Bottom <= imageHeight,
// and Width/Height matches the target ratio to integer truncation.
type Box struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the horizontal extent of the box.
func (b Box) Width() int { return b.Right - b.Left }

// Height returns the vertical extent of the box.
func (b Box) Height() int { return b.Bottom - b.Top }

// Rect converts the box to a standard image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.Left, b.Top, b.Right, b.Bottom)
}

// Plan computes the largest crop box of the target ratio that fits inside a
// width x height image, centered on anchor and shifted as needed to stay
// fully inside the bounds. A nil anchor centers the box on the image.
//
// Exactly one dimension is kept whole: if the image is relatively wider than
// the target ratio the full height is used and the width is cut, otherwise
// the full width is used and the height is cut. The cut dimension is floored
// but never below one pixel, so the box is never empty. The image is never
// upscaled or padded. Width and height must be positive; that is the
// caller's precondition.
func Plan(width, height int, ratio Ratio, anchor *image.Point) Box {
	var newWidth, newHeight int
	// Compare width/height > ratio.W/ratio.H without leaving integers.
	if width*ratio.H > height*ratio.W {
		newHeight = height
		newWidth = height * ratio.W / ratio.H
	} else {
		newWidth = width
		newHeight = width * ratio.H / ratio.W
	}

	// On tiny images the floor can reach zero; a crop always keeps at least
	// one pixel in each dimension.
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	cx, cy := width/2, height/2
	if anchor != nil {
		cx, cy = anchor.X, anchor.Y
	}

	left := clamp(cx-newWidth/2, 0, width-newWidth)
	top := clamp(cy-newHeight/2, 0, height-newHeight)

	return Box{
		Left:   left,
		Top:    top,
		Right:  left + newWidth,
		Bottom: top + newHeight,
	}
}

// Apply cuts the box out of the image.
func Apply(img image.Image, box Box) *image.NRGBA {
	return imaging.Crop(img, box.Rect())
}

// NaturalPortrait reports whether an image is taller than it is wide.
func NaturalPortrait(img image.Image) bool {
	b := img.Bounds()
	return b.Dy() > b.Dx()
}

// Rotate90 turns the image a quarter turn counter-clockwise, swapping width
// and height. The same direction is used everywhere so labels baked into the
// pixels stay upright relative to the final cell orientation.
func Rotate90(img image.Image) *image.NRGBA {
	return imaging.Rotate90(img)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
