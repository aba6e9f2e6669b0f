// Package label bakes an identifier strip into a cropped cell image.
//
// Rendering is strictly best-effort: font selection walks a fallback chain
// (preferred file, bundled Go Regular, fixed bitmap face) and composing a
// label never fails the pipeline.
package label

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Mode selects where the identifier strip is placed.
type Mode string

const (
	// ModeNone leaves the cell untouched; no label is baked anywhere.
	ModeNone Mode = "none"
	// ModeBelow reserves a horizontal strip under the image.
	ModeBelow Mode = "below"
	// ModeBeside reserves a vertical strip at the right edge with the text
	// rotated to run parallel to it.
	ModeBeside Mode = "beside"
)

// ParseMode converts a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNone, ModeBelow, ModeBeside:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("invalid label mode %q (expected none, below or beside)", s)
	}
}

// strip padding in pixels on each side of the text, matching the reserved
// strip thickness of textSize + 2*stripPadding.
const stripPadding = 10

// Compositor renders identifier strips onto cell images.
type Compositor struct {
	mode     Mode
	textSize int
	fontPath string

	once sync.Once
	face font.Face
}

// New creates a Compositor. fontPath may be empty; the bundled Go Regular
// face is used then. textSize is in pixels of the cell image.
func New(mode Mode, textSize int, fontPath string) *Compositor {
	if textSize <= 0 {
		textSize = 24
	}
	return &Compositor{mode: mode, textSize: textSize, fontPath: fontPath}
}

// Mode returns the configured label mode.
func (c *Compositor) Mode() Mode { return c.mode }

// StripThickness returns the pixel thickness the strip adds to a cell, zero
// for ModeNone.
func (c *Compositor) StripThickness() int {
	if c.mode == ModeNone {
		return 0
	}
	return c.textSize + 2*stripPadding
}

// Compose returns the cell image with the identifier strip attached
// according to the mode. ModeNone returns the input unchanged. Compose
// never fails; if every font in the fallback chain is unusable the strip is
// still reserved and left blank.
func (c *Compositor) Compose(img image.Image, identifier string) *image.NRGBA {
	switch c.mode {
	case ModeBelow:
		return c.composeBelow(img, identifier)
	case ModeBeside:
		return c.composeBeside(img, identifier)
	default:
		return imaging.Clone(img)
	}
}

// composeBelow grows the image by a horizontal strip at the bottom with the
// identifier centered in it.
func (c *Compositor) composeBelow(img image.Image, identifier string) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	strip := c.StripThickness()

	out := image.NewNRGBA(image.Rect(0, 0, w, h+strip))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, w, h), img, bounds.Min, draw.Src)

	c.drawCentered(out, identifier, image.Rect(0, h, w, h+strip))
	return out
}

// composeBeside grows the image by a vertical strip at the right edge. The
// text is rendered horizontally and turned with the same quarter turn used
// for cell reorientation, so it reads bottom to top along the edge.
func (c *Compositor) composeBeside(img image.Image, identifier string) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	strip := c.StripThickness()

	// Horizontal staging strip, as long as the cell is tall.
	staged := image.NewNRGBA(image.Rect(0, 0, h, strip))
	draw.Draw(staged, staged.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	c.drawCentered(staged, identifier, staged.Bounds())
	vertical := imaging.Rotate90(staged)

	out := image.NewNRGBA(image.Rect(0, 0, w+strip, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(0, 0, w, h), img, bounds.Min, draw.Src)
	draw.Draw(out, image.Rect(w, 0, w+strip, h), vertical, image.Point{}, draw.Src)
	return out
}

// drawCentered renders the identifier in black, centered inside rect.
func (c *Compositor) drawCentered(dst *image.NRGBA, text string, rect image.Rectangle) {
	if text == "" {
		return
	}
	face := c.fontFace()
	if face == nil {
		return
	}

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
	}

	textWidth := drawer.MeasureString(text).Ceil()
	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()

	x := rect.Min.X + (rect.Dx()-textWidth)/2
	if x < rect.Min.X {
		x = rect.Min.X
	}
	baseline := rect.Min.Y + (rect.Dy()-textHeight)/2 + metrics.Ascent.Ceil()

	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
}

// fontFace resolves the font lazily: preferred file, then the bundled Go
// Regular face, then the fixed 7x13 bitmap face.
func (c *Compositor) fontFace() font.Face {
	c.once.Do(func() {
		if c.fontPath != "" {
			if data, err := os.ReadFile(c.fontPath); err == nil {
				if face, err := newFace(data, c.textSize); err == nil {
					c.face = face
					return
				}
			}
		}
		if face, err := newFace(goregular.TTF, c.textSize); err == nil {
			c.face = face
			return
		}
		c.face = basicfont.Face7x13
	})
	return c.face
}

func newFace(ttf []byte, size int) (font.Face, error) {
	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
