// Package photosheet turns a folder of photos into a printable PDF of
// uniformly sized, face-centered prints.
//
// Every photo is cropped to a fixed aspect ratio around the centroid of its
// detected faces (or the image center when detection is disabled or finds
// nothing), optionally labeled with its filename, and laid out a fixed number
// of cells per page on a fixed sheet size.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		"github.com/menta2k/photosheet"
//	)
//
//	func main() {
//		generator, err := photosheet.New()
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		report, err := generator.Run(context.Background(), "./photos", "sheets.pdf")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		fmt.Printf("wrote %d photos on %d pages to %s\n",
//			report.Processed, report.Pages, report.Output)
//		for _, skip := range report.Skipped {
//			fmt.Printf("skipped %s: %s\n", skip.File, skip.Reason)
//		}
//	}
//
// The package consists of five main components:
//
// 1. Face (pkg/face): pigo cascade detection and anchor resolution
// 2. Crop (pkg/crop): aspect-ratio crop planning with clamping
// 3. Label (pkg/label): filename strips baked below or beside the photo
// 4. Layout (pkg/layout): fixed-capacity page placement in device points
// 5. PDF (pkg/pdf): deterministic document assembly
//
// Output is deterministic: identical input folders and configuration produce
// byte-identical PDF files.
package photosheet

import (
	"context"
	"fmt"

	"github.com/menta2k/photosheet/pkg/config"
	"github.com/menta2k/photosheet/pkg/face"
	"github.com/menta2k/photosheet/pkg/processing"
)

// Version of the photosheet library
const Version = "1.0.0"

// Generator provides a high-level interface over the processing pipeline.
type Generator struct {
	config    *config.Config
	processor *processing.Processor
}

// New creates a Generator with the default configuration: 5:7 portrait
// prints, filename labels below each photo, two prints per US letter page,
// face detection disabled.
func New() (*Generator, error) {
	return NewWithConfig(config.Default())
}

// NewWithConfig creates a Generator with a custom configuration. When the
// configuration names a pigo cascade file, face detection is enabled and
// crops are anchored on the faces it finds.
func NewWithConfig(cfg *config.Config) (*Generator, error) {
	processor, err := processing.New(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Detect.CascadePath != "" {
		detector, err := face.NewPigoDetector(cfg.Detect.CascadePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load face cascade: %w", err)
		}
		processor.SetDetector(detector)
	}

	return &Generator{config: cfg, processor: processor}, nil
}

// SetDetector replaces the face detector, or disables detection when nil.
func (g *Generator) SetDetector(detector face.Detector) {
	g.processor.SetDetector(detector)
}

// SetReporter attaches a progress reporter for per-image log lines.
func (g *Generator) SetReporter(reporter processing.Reporter) {
	g.processor.SetReporter(reporter)
}

// Config returns the configuration the Generator was built with.
func (g *Generator) Config() *config.Config {
	return g.config
}

// Run processes every accepted image in inputDir and writes the assembled
// document to outputPath.
func (g *Generator) Run(ctx context.Context, inputDir, outputPath string) (*processing.Report, error) {
	return g.processor.Run(ctx, inputDir, outputPath)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
