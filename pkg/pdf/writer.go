// Package pdf serializes laid-out pages to a PDF document.
//
// Cell pixels are embedded losslessly as PNG; the writer consumes the
// complete page list in one call and either produces the whole file or
// nothing at all.
package pdf

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/menta2k/photosheet/pkg/layout"
)

// Writer emits PDF documents from laid-out pages.
type Writer struct{}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteFile renders all pages and writes the document to path. The file is
// only created after the entire document has been assembled in memory, so a
// rendering failure never leaves a partial document behind.
func (w *Writer) WriteFile(path string, pages []layout.Page) error {
	var buf bytes.Buffer
	if err := w.Write(&buf, pages); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Write renders all pages into out.
func (w *Writer) Write(out io.Writer, pages []layout.Page) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages to write")
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: pages[0].Width, Ht: pages[0].Height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	// Byte-identical output across runs: fixed metadata dates, and sorted
	// resource catalogs so registered images are emitted in registration
	// order instead of map iteration order.
	stamp := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	doc.SetCreationDate(stamp)
	doc.SetModificationDate(stamp)
	doc.SetCatalogSort(true)

	options := fpdf.ImageOptions{ImageType: "PNG"}

	for _, page := range pages {
		doc.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})

		for i, placement := range page.Cells {
			encoded, err := encodePNG(placement.Cell)
			if err != nil {
				return fmt.Errorf("failed to encode cell %q: %w", placement.Cell.Identifier, err)
			}

			// Registered image names must be unique per document.
			name := fmt.Sprintf("page%d-cell%d", page.Number, i)
			doc.RegisterImageOptionsReader(name, options, bytes.NewReader(encoded))

			// Layout coordinates are bottom-left origin; fpdf measures from
			// the top-left corner.
			top := page.Height - placement.Y - placement.Cell.Height
			doc.ImageOptions(name, placement.X, top,
				placement.Cell.Width, placement.Cell.Height, false, options, 0, "")
		}
	}

	if doc.Err() {
		return fmt.Errorf("failed to assemble document: %w", doc.Error())
	}
	if err := doc.Output(out); err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}
	return nil
}

// encodePNG encodes cell pixels losslessly.
func encodePNG(cell layout.Cell) ([]byte, error) {
	if cell.Image == nil {
		return nil, fmt.Errorf("cell has no pixels")
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, cell.Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
