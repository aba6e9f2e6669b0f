package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/menta2k/photosheet"
	"github.com/menta2k/photosheet/internal/utils"
	"github.com/menta2k/photosheet/pkg/config"
	"github.com/menta2k/photosheet/pkg/crop"
	"github.com/menta2k/photosheet/pkg/processing"
)

func main() {
	var in, out, configPath string
	var ratio, labelMode, fontPath, cascade, orient string
	var labelSize int
	var sheetW, sheetH, margin, spacing float64
	var photoW, photoH float64
	var perPage, workers int
	var saveConfig, version bool

	flag.StringVar(&in, "in", "", "input directory of photos (jpg/png/bmp/tif/webp)")
	flag.StringVar(&out, "out", "sheets.pdf", "output PDF path")
	flag.StringVar(&configPath, "config", "", "JSON config file (flags override its values)")

	flag.StringVar(&ratio, "ratio", "", "crop aspect ratio as WxH, e.g. 5x7")
	flag.StringVar(&orient, "orient", "", "cell orientation: portrait|landscape")

	flag.StringVar(&labelMode, "label", "", "filename label placement: none|below|beside")
	flag.IntVar(&labelSize, "labelsize", 0, "label text size in pixels")
	flag.StringVar(&fontPath, "font", "", "TTF font file for labels (bundled Go Regular if empty)")

	flag.Float64Var(&sheetW, "sheetw", 0, "sheet width in points")
	flag.Float64Var(&sheetH, "sheeth", 0, "sheet height in points")
	flag.Float64Var(&margin, "margin", 0, "sheet margin in points")
	flag.Float64Var(&spacing, "spacing", 0, "spacing between cells in points")
	flag.Float64Var(&photoW, "photow", 0, "printed photo width in points")
	flag.Float64Var(&photoH, "photoh", 0, "printed photo height in points")
	flag.IntVar(&perPage, "per-page", 0, "photos per page")

	flag.StringVar(&cascade, "cascade", "", "pigo facefinder cascade file (enables face-centered crops)")
	flag.IntVar(&workers, "workers", 0, "parallel image workers (0 = all CPUs)")

	flag.BoolVar(&saveConfig, "save-config", false, "write the effective config to the default location and exit")
	flag.BoolVar(&version, "version", false, "print version and exit")

	flag.Parse()

	if version {
		fmt.Println(photosheet.GetVersion())
		return
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFromFile(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}

	// Flags override whatever the config file says.
	if ratio != "" {
		parsed, err := crop.ParseRatio(ratio)
		if err != nil {
			log.Fatalf("invalid -ratio: %v", err)
		}
		cfg.Crop.RatioWidth = parsed.W
		cfg.Crop.RatioHeight = parsed.H
	}
	if orient != "" {
		cfg.Crop.Orientation = orient
	}
	if labelMode != "" {
		cfg.Label.Mode = labelMode
	}
	if labelSize > 0 {
		cfg.Label.TextSize = labelSize
	}
	if fontPath != "" {
		cfg.Label.FontPath = fontPath
	}
	if sheetW > 0 {
		cfg.Sheet.Width = sheetW
	}
	if sheetH > 0 {
		cfg.Sheet.Height = sheetH
	}
	if margin > 0 {
		cfg.Sheet.Margin = margin
	}
	if spacing > 0 {
		cfg.Sheet.Spacing = spacing
	}
	if photoW > 0 {
		cfg.Sheet.PhotoWidth = photoW
	}
	if photoH > 0 {
		cfg.Sheet.PhotoHeight = photoH
	}
	if perPage > 0 {
		cfg.Sheet.CellsPerPage = perPage
	}
	if cascade != "" {
		cfg.Detect.CascadePath = cascade
	}
	if workers > 0 {
		cfg.Input.Workers = workers
	}

	if saveConfig {
		path := config.GetConfigPath()
		if err := cfg.SaveToFile(path); err != nil {
			log.Fatalf("failed to save config: %v", err)
		}
		fmt.Printf("wrote %s\n", path)
		return
	}

	if in == "" {
		log.Fatalf("usage: %s -in photos/ [-out sheets.pdf] [-ratio 5x7] [-label below|beside|none] [-cascade facefinder]", filepath.Base(os.Args[0]))
	}

	generator, err := photosheet.NewWithConfig(cfg)
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}
	generator.SetReporter(processing.NewConsoleReporter())

	report, err := generator.Run(context.Background(), in, out)
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}

	for _, skip := range report.Skipped {
		fmt.Printf("skipped %s: %s\n", skip.File, skip.Reason)
	}

	size := ""
	if info, err := os.Stat(report.Output); err == nil {
		size = " (" + utils.FormatFileSize(info.Size()) + ")"
	}
	fmt.Printf("wrote %d photos on %d pages to %s%s\n",
		report.Processed, report.Pages, report.Output, size)
}
