// Package processing orchestrates the full photo-to-document pipeline: scan
// a folder, crop each photo around its faces, compose labeled cells, and
// paginate them into a printable PDF.
//
// Per-image work carries no shared mutable state, so it runs concurrently
// across a bounded worker group; results are collected back into filename
// order before the strictly sequential layout pass. Per-image failures are
// recoverable and only remove that image from the sequence; everything else
// is fatal.
package processing

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/menta2k/photosheet/internal/utils"
	"github.com/menta2k/photosheet/pkg/config"
	"github.com/menta2k/photosheet/pkg/crop"
	"github.com/menta2k/photosheet/pkg/face"
	"github.com/menta2k/photosheet/pkg/label"
	"github.com/menta2k/photosheet/pkg/layout"
	"github.com/menta2k/photosheet/pkg/pdf"
)

// ErrNoImages is returned when the folder scan matches no files on the
// extension allow-list.
var ErrNoImages = errors.New("no image files found")

// Skip records one image dropped from the run and why.
type Skip struct {
	File   string
	Reason string
}

// Report summarizes a completed run.
type Report struct {
	Processed int
	Skipped   []Skip
	Pages     int
	Output    string
}

// Processor runs the pipeline.
type Processor struct {
	config     *config.Config
	detector   face.Detector
	compositor *label.Compositor
	writer     *pdf.Writer
	reporter   Reporter
}

// New creates a Processor for a validated configuration. Face detection is
// disabled until a detector is attached with SetDetector; crops are then
// anchored on the image center.
func New(cfg *config.Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Processor{
		config:     cfg,
		compositor: label.New(cfg.LabelMode(), cfg.Label.TextSize, cfg.Label.FontPath),
		writer:     pdf.NewWriter(),
		reporter:   NopReporter{},
	}, nil
}

// SetDetector attaches a face detector.
func (p *Processor) SetDetector(detector face.Detector) {
	p.detector = detector
}

// SetReporter attaches a progress reporter.
func (p *Processor) SetReporter(reporter Reporter) {
	if reporter != nil {
		p.reporter = reporter
	}
}

// Run processes every accepted image in inputDir and writes one PDF to
// outputPath. The returned Report lists how many images made it onto pages
// and which were skipped, with reasons. A non-nil error means the run
// failed as a whole and no document was written.
func (p *Processor) Run(ctx context.Context, inputDir, outputPath string) (*Report, error) {
	if !utils.DirExists(inputDir) {
		return nil, fmt.Errorf("input directory not found: %s", inputDir)
	}

	files, err := utils.ListImages(inputDir, p.config.Input.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, inputDir)
	}

	p.reporter.Logf("found %d images to process", len(files))

	cells, skipped, err := p.buildCells(ctx, files)
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("all %d images failed to process", len(files))
	}

	pages := layout.Paginate(cells, p.config.LayoutConfig())
	if err := layout.ValidateFit(pages, p.config.LayoutConfig()); err != nil {
		return nil, err
	}

	p.reporter.Logf("writing %d cells on %d pages to %s", len(cells), len(pages), outputPath)
	if err := p.writer.WriteFile(outputPath, pages); err != nil {
		return nil, err
	}

	return &Report{
		Processed: len(cells),
		Skipped:   skipped,
		Pages:     len(pages),
		Output:    outputPath,
	}, nil
}

// buildCells runs the per-image stage concurrently and compacts the results
// back into filename order, leaving no holes for skipped images.
func (p *Processor) buildCells(ctx context.Context, files []string) ([]layout.Cell, []Skip, error) {
	type slot struct {
		cell layout.Cell
		err  error
	}
	slots := make([]slot, len(files))

	workers := p.config.Input.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, path := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cell, err := p.processOne(path)
			slots[i] = slot{cell: cell, err: err}
			if err != nil {
				p.reporter.Warnf("skipping %s: %v", filepath.Base(path), err)
			} else {
				p.reporter.Logf("processed %s", filepath.Base(path))
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	cells := make([]layout.Cell, 0, len(files))
	var skipped []Skip
	for i, s := range slots {
		if s.err != nil {
			skipped = append(skipped, Skip{
				File:   filepath.Base(files[i]),
				Reason: s.err.Error(),
			})
			continue
		}
		cells = append(cells, s.cell)
	}

	return cells, skipped, nil
}

// processOne turns a single source image into a finished Cell: decode,
// detect, resolve anchor, crop, reorient, label.
func (p *Processor) processOne(path string) (layout.Cell, error) {
	img, err := LoadImage(path)
	if err != nil {
		return layout.Cell{}, fmt.Errorf("decode failed: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 1 || height < 1 {
		return layout.Cell{}, fmt.Errorf("image has no pixels")
	}

	var anchor *image.Point
	if p.detector != nil {
		boxes, err := p.detector.Detect(img)
		if err != nil {
			return layout.Cell{}, fmt.Errorf("face detection failed: %w", err)
		}
		if pt, ok := face.ResolveCenter(boxes); ok {
			anchor = &pt
		}
	}

	box := crop.Plan(width, height, p.config.Ratio(), anchor)
	cell := crop.Apply(img, box)

	wantPortrait := config.Orientation(p.config.Crop.Orientation) == config.OrientationPortrait
	if w, h := cell.Bounds().Dx(), cell.Bounds().Dy(); w != h && crop.NaturalPortrait(cell) != wantPortrait {
		cell = crop.Rotate90(cell)
	}

	identifier := filepath.Base(path)
	labeled := p.compositor.Compose(cell, identifier)

	// The configured print width is authoritative; the device height keeps
	// the pixel proportions so a label strip grows the cell physically too.
	deviceWidth, _ := p.config.CellBase()
	pixelWidth := labeled.Bounds().Dx()
	pixelHeight := labeled.Bounds().Dy()
	deviceHeight := deviceWidth * float64(pixelHeight) / float64(pixelWidth)

	return layout.Cell{
		Image:      labeled,
		Identifier: identifier,
		Width:      deviceWidth,
		Height:     deviceHeight,
		Portrait:   wantPortrait,
	}, nil
}
