package face

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"
)

// PigoConfig holds tuning parameters for the pigo cascade classifier.
type PigoConfig struct {
	MinSize      int     // smallest face size in pixels
	MaxSize      int     // largest face size in pixels
	ShiftFactor  float64 // detection window shift as a fraction of its size
	ScaleFactor  float64 // detection window growth factor between scales
	IoUThreshold float64 // cluster overlap threshold for merging detections
	MinQuality   float32 // detections scoring below this are discarded
}

// DefaultPigoConfig returns detection parameters that work well for
// photographs of people at typical snapshot distances.
func DefaultPigoConfig() PigoConfig {
	return PigoConfig{
		MinSize:      20,
		MaxSize:      2000,
		ShiftFactor:  0.1,
		ScaleFactor:  1.1,
		IoUThreshold: 0.2,
		MinQuality:   5.0,
	}
}

// PigoDetector detects frontal faces using an embedded pigo cascade.
// It is safe for concurrent use: the classifier is read-only after Unpack.
type PigoDetector struct {
	classifier *pigo.Pigo
	config     PigoConfig
}

// NewPigoDetector loads a pigo cascade file from disk and builds a detector
// with default parameters.
func NewPigoDetector(cascadePath string) (*PigoDetector, error) {
	cascade, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read cascade file: %w", err)
	}
	return NewPigoDetectorFromBytes(cascade, DefaultPigoConfig())
}

// NewPigoDetectorFromBytes builds a detector from raw cascade bytes.
func NewPigoDetectorFromBytes(cascade []byte, config PigoConfig) (*PigoDetector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack cascade: %w", err)
	}
	return &PigoDetector{classifier: classifier, config: config}, nil
}

// Detect runs the cascade over the image and returns the clustered face
// boxes in source pixel coordinates.
func (d *PigoDetector) Detect(img image.Image) ([]Box, error) {
	// pigo wants a grayscale pixel slice with zero-based bounds.
	nrgba := imaging.Clone(img)
	cols := nrgba.Bounds().Dx()
	rows := nrgba.Bounds().Dy()

	params := pigo.CascadeParams{
		MinSize:     d.config.MinSize,
		MaxSize:     d.config.MaxSize,
		ShiftFactor: d.config.ShiftFactor,
		ScaleFactor: d.config.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pigo.RgbToGrayscale(nrgba),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	detections := d.classifier.RunCascade(params, 0.0)
	detections = d.classifier.ClusterDetections(detections, d.config.IoUThreshold)

	var boxes []Box
	for _, det := range detections {
		if det.Q < d.config.MinQuality {
			continue
		}
		boxes = append(boxes, Box{
			X:      det.Col - det.Scale/2,
			Y:      det.Row - det.Scale/2,
			Width:  det.Scale,
			Height: det.Scale,
		})
	}

	return boxes, nil
}
