// Package face provides face detection and anchor-point resolution for
// face-centered cropping.
//
// Detection itself is pluggable behind the Detector interface; the bundled
// implementation wraps the pigo cascade classifier. The resolver reduces
// however many faces were found to a single anchor point that the crop
// planner centers on.
package face

import (
	"image"
)

// Box is an axis-aligned face bounding box in source-image pixel coordinates.
type Box struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Center returns the center point of the box using integer floor division.
func (b Box) Center() (int, int) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// Detector finds faces in an image. Coordinates of the returned boxes are in
// source pixel space. Zero boxes is a valid result, not an error.
type Detector interface {
	Detect(img image.Image) ([]Box, error)
}

// ResolveCenter reduces a set of detected face boxes to one anchor point: the
// centroid of the individual box centers, computed with integer floor
// division. The centroid is deliberately not area-weighted, so a small face
// pulls the anchor as strongly as a large one. Returns false when no boxes
// were given.
//
// Widely separated faces can average to a point that leaves some of them
// outside the final crop; that is accepted behavior.
func ResolveCenter(boxes []Box) (image.Point, bool) {
	if len(boxes) == 0 {
		return image.Point{}, false
	}

	var totalX, totalY int
	for _, b := range boxes {
		cx, cy := b.Center()
		totalX += cx
		totalY += cy
	}

	return image.Point{
		X: totalX / len(boxes),
		Y: totalY / len(boxes),
	}, true
}
