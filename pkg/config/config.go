package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/menta2k/photosheet/pkg/crop"
	"github.com/menta2k/photosheet/pkg/label"
	"github.com/menta2k/photosheet/pkg/layout"
)

// Orientation selects how cells lie on the sheet.
type Orientation string

const (
	// OrientationPortrait keeps crops upright.
	OrientationPortrait Orientation = "portrait"
	// OrientationLandscape turns crops a quarter turn so they lie sideways.
	OrientationLandscape Orientation = "landscape"
)

// Config holds the application configuration
type Config struct {
	Crop   CropConfig   `json:"crop"`
	Label  LabelConfig  `json:"label"`
	Sheet  SheetConfig  `json:"sheet"`
	Input  InputConfig  `json:"input"`
	Detect DetectConfig `json:"detect"`
}

// CropConfig drives the crop planner and the cell orientation.
type CropConfig struct {
	RatioWidth  int    `json:"ratio_width"`
	RatioHeight int    `json:"ratio_height"`
	Orientation string `json:"orientation"`
}

// LabelConfig drives the label compositor.
type LabelConfig struct {
	Mode     string `json:"mode"`
	TextSize int    `json:"text_size"`
	FontPath string `json:"font_path"`
}

// SheetConfig holds the page geometry, all lengths in points.
type SheetConfig struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Margin       float64 `json:"margin"`
	Spacing      float64 `json:"spacing"`
	CellsPerPage int     `json:"cells_per_page"`
	PhotoWidth   float64 `json:"photo_width"`
	PhotoHeight  float64 `json:"photo_height"`
}

// InputConfig controls the folder scan and the per-image stage.
type InputConfig struct {
	Extensions []string `json:"extensions"`
	Workers    int      `json:"workers"`
}

// DetectConfig configures face detection. An empty cascade path disables
// detection; crops are then anchored on the image center.
type DetectConfig struct {
	CascadePath string `json:"cascade_path"`
}

// Default returns a configuration with default values: 5:7 portrait prints,
// two per US-letter sheet, filename labels below each photo.
func Default() *Config {
	return &Config{
		Crop: CropConfig{
			RatioWidth:  5,
			RatioHeight: 7,
			Orientation: string(OrientationPortrait),
		},
		Label: LabelConfig{
			Mode:     string(label.ModeBelow),
			TextSize: 24,
			FontPath: "",
		},
		Sheet: SheetConfig{
			Width:        612, // 8.5in
			Height:       792, // 11in
			Margin:       36,  // 0.5in
			Spacing:      20,
			CellsPerPage: 2,
			PhotoWidth:   230,
			PhotoHeight:  322,
		},
		Input: InputConfig{
			Extensions: []string{"jpg", "jpeg", "png", "bmp", "tif", "tiff", "webp"},
			Workers:    0, // 0 = GOMAXPROCS
		},
		Detect: DetectConfig{
			CascadePath: "",
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Ratio returns the configured target aspect ratio.
func (c *Config) Ratio() crop.Ratio {
	return crop.Ratio{W: c.Crop.RatioWidth, H: c.Crop.RatioHeight}
}

// LabelMode returns the configured label mode.
func (c *Config) LabelMode() label.Mode {
	return label.Mode(c.Label.Mode)
}

// CellBase returns the physical width and height in points of an unlabeled
// cell, already accounting for the configured orientation.
func (c *Config) CellBase() (width, height float64) {
	if Orientation(c.Crop.Orientation) == OrientationLandscape {
		return c.Sheet.PhotoHeight, c.Sheet.PhotoWidth
	}
	return c.Sheet.PhotoWidth, c.Sheet.PhotoHeight
}

// LayoutConfig returns the pagination parameters.
func (c *Config) LayoutConfig() layout.Config {
	return layout.Config{
		SheetWidth:  c.Sheet.Width,
		SheetHeight: c.Sheet.Height,
		Margin:      c.Sheet.Margin,
		Spacing:     c.Sheet.Spacing,
		Capacity:    c.Sheet.CellsPerPage,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Ratio().Validate(); err != nil {
		return fmt.Errorf("crop: %w", err)
	}

	switch Orientation(c.Crop.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("crop.orientation must be portrait or landscape, got %q", c.Crop.Orientation)
	}

	if _, err := label.ParseMode(c.Label.Mode); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	if c.Label.TextSize < 1 {
		return fmt.Errorf("label.text_size must be positive")
	}

	if c.Sheet.PhotoWidth <= 0 || c.Sheet.PhotoHeight <= 0 {
		return fmt.Errorf("sheet.photo_width and sheet.photo_height must be positive")
	}
	if err := c.LayoutConfig().Validate(); err != nil {
		return fmt.Errorf("sheet: %w", err)
	}

	// Static vertical-fit precondition for unlabeled cells; label strips
	// consume the remaining slack and are re-checked against the actual
	// cells before any document is written.
	_, cellHeight := c.CellBase()
	extent := 2*c.Sheet.Margin +
		float64(c.Sheet.CellsPerPage)*cellHeight +
		float64(c.Sheet.CellsPerPage-1)*c.Sheet.Spacing
	if extent > c.Sheet.Height {
		return fmt.Errorf("sheet: %d cells of %.1fpt do not fit a %.1fpt sheet with %.1fpt margins and %.1fpt spacing",
			c.Sheet.CellsPerPage, cellHeight, c.Sheet.Height, c.Sheet.Margin, c.Sheet.Spacing)
	}

	if len(c.Input.Extensions) == 0 {
		return fmt.Errorf("input.extensions cannot be empty")
	}
	if c.Input.Workers < 0 {
		return fmt.Errorf("input.workers must be non-negative")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "photosheet", "config.json")
}
