// Package layout paginates an ordered sequence of cells onto fixed-size
// sheets and computes absolute per-cell placement in device points.
//
// The engine is a single sequential pass over pure in-memory values: cells
// are grouped in input order, never reordered or rebalanced, and every
// placement is derived arithmetically so identical inputs give identical
// pages.
package layout

import (
	"fmt"
	"image"
)

// Cell is one finished, placeable unit of page content: cropped, optionally
// rotated and labeled pixels together with the physical size the cell
// occupies on the sheet. Cells are immutable once created.
type Cell struct {
	Image      *image.NRGBA
	Identifier string
	Width      float64 // device points
	Height     float64 // device points
	Portrait   bool
}

// Placement is a cell with its absolute position on a sheet. X and Y locate
// the cell's bottom-left corner in a bottom-left-origin coordinate system,
// the convention of print device space.
type Placement struct {
	Cell Cell
	X    float64
	Y    float64
}

// Page is one sheet with its placed cells, in input order.
type Page struct {
	Number int // 1-based
	Width  float64
	Height float64
	Cells  []Placement
}

// Config drives pagination. All lengths are device points.
type Config struct {
	SheetWidth  float64
	SheetHeight float64
	Margin      float64
	Spacing     float64
	Capacity    int // cells per page
}

// Validate checks the sheet geometry.
func (c Config) Validate() error {
	if c.SheetWidth <= 0 || c.SheetHeight <= 0 {
		return fmt.Errorf("sheet size must be positive, got %.1fx%.1f", c.SheetWidth, c.SheetHeight)
	}
	if c.Margin < 0 || c.Spacing < 0 {
		return fmt.Errorf("margin and spacing must be non-negative")
	}
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", c.Capacity)
	}
	return nil
}

// Paginate partitions cells into consecutive groups of at most
// cfg.Capacity, preserving input order exactly; the last page may be short.
// Within a page the first cell sits flush against the top margin and each
// subsequent cell directly below the previous one, separated by
// cfg.Spacing. Every cell is horizontally centered independently, since
// label strips can make cell widths differ.
func Paginate(cells []Cell, cfg Config) []Page {
	var pages []Page

	for start := 0; start < len(cells); start += cfg.Capacity {
		end := start + cfg.Capacity
		if end > len(cells) {
			end = len(cells)
		}

		page := Page{
			Number: len(pages) + 1,
			Width:  cfg.SheetWidth,
			Height: cfg.SheetHeight,
		}

		y := cfg.SheetHeight - cfg.Margin
		for _, cell := range cells[start:end] {
			y -= cell.Height
			page.Cells = append(page.Cells, Placement{
				Cell: cell,
				X:    (cfg.SheetWidth - cell.Width) / 2,
				Y:    y,
			})
			y -= cfg.Spacing
		}

		pages = append(pages, page)
	}

	return pages
}

// ValidateFit verifies the configuration precondition that every page's
// vertical extent, including both margins, stays within the sheet height.
// The engine never corrects an overflowing layout; it is rejected here
// before any document is written.
func ValidateFit(pages []Page, cfg Config) error {
	for _, page := range pages {
		extent := 2 * cfg.Margin
		for i, placement := range page.Cells {
			extent += placement.Cell.Height
			if i > 0 {
				extent += cfg.Spacing
			}
		}
		if extent > cfg.SheetHeight {
			return fmt.Errorf("page %d needs %.1fpt of vertical space but the sheet is %.1fpt: reduce cell size, margin or cells per page",
				page.Number, extent, cfg.SheetHeight)
		}
	}
	return nil
}
