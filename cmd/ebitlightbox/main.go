// Command ebitlightbox shows a folder or catalog of images in a zoomable
// lightbox.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/nicky-ayoub/ebitlightbox/internal/catalog"
	"github.com/nicky-ayoub/ebitlightbox/internal/config"
	"github.com/nicky-ayoub/ebitlightbox/internal/input"
	"github.com/nicky-ayoub/ebitlightbox/internal/scan"
	"github.com/nicky-ayoub/ebitlightbox/internal/service"
	"github.com/nicky-ayoub/ebitlightbox/internal/ui"
	"github.com/nicky-ayoub/ebitlightbox/internal/viewer"
)

var (
	cfgFile     string
	verbose     bool
	dirFlag     string
	catalogFlag string
	categoryArg string
	interval    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "ebitlightbox [dir]",
	Short: "Lightbox image viewer with zoom, pan and slideshow",
	Long: `ebitlightbox shows images one at a time over a dimmed overlay.

Arrow keys move between images, +/- zoom, 0 resets, Escape closes the
lightbox and Q quits. Drag a zoomed image to pan it; pinch to zoom on
touch screens. S toggles the slideshow and T the thumbnail strip. The
on-screen buttons do the same for mouse and touch.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "ebitlightbox.yml", "config file path")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().StringVar(&dirFlag, "dir", "", "directory to scan for images")
	rootCmd.Flags().StringVar(&catalogFlag, "catalog", "", "YAML catalog of images with alt text")
	rootCmd.Flags().StringVar(&categoryArg, "category", "", "show only one category")
	rootCmd.Flags().DurationVar(&interval, "interval", 0, "start the slideshow with this interval (e.g. '5s')")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig merges the config file with command-line overrides.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("dir") {
		cfg.Dir = dirFlag
	} else if len(args) > 0 {
		cfg.Dir = args[0]
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog = catalogFlag
	}
	if cmd.Flags().Changed("category") {
		cfg.Category = categoryArg
	}
	if cmd.Flags().Changed("interval") {
		cfg.SlideshowInterval = interval
		cfg.Slideshow = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildCatalog reads the configured catalog file or scans the directory.
func buildCatalog(cfg *config.Config, scanner *service.ScannerService, images *service.ImageService, logger *slog.Logger) (*catalog.Catalog, error) {
	var (
		c   *catalog.Catalog
		err error
	)
	if cfg.Catalog != "" {
		c, err = catalog.Load(cfg.Catalog)
	} else {
		files := scanner.Scan(cfg.Dir, func(msg string) { logger.Debug(msg) })
		c, err = catalog.FromFiles(files, exifAlt(images, logger))
		if err != nil {
			err = fmt.Errorf("no images in %s: %w", cfg.Dir, err)
		}
	}
	if err != nil {
		return nil, err
	}
	return c.Filter(cfg.Category)
}

// exifAlt uses an image's EXIF description as its alt text.
func exifAlt(images *service.ImageService, logger *slog.Logger) catalog.AltFunc {
	return func(path string) string {
		info, err := images.GetImageInfo(path)
		if err != nil {
			logger.Debug("reading image info", slog.String("path", path), slog.Any("err", err))
			return ""
		}
		return info.Description
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger(verbose)

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	images := service.NewImageService()
	scanner := service.NewScannerService(&scan.FileScannerImpl{Include: cfg.Include})
	cat, err := buildCatalog(cfg, scanner, images, logger)
	if err != nil {
		return err
	}
	logger.Info("catalog ready", slog.Int("images", cat.Len()), slog.String("category", cfg.Category))

	game := &Game{
		ImageService:        images,
		logger:              logger,
		mainImageJobChan:    make(chan string, 1),
		mainImageResultChan: make(chan mainImageResult, 1),
		showThumbnails:      cfg.Thumbnails,
		width:               cfg.WindowWidth,
		height:              cfg.WindowHeight,
	}
	game.viewer = viewer.New(cat, game)
	game.frame = game.viewer.Frame()
	game.slideshow = viewer.NewSlideshow(game.viewer, cfg.SlideshowInterval)
	game.dispatcher = input.NewDispatcher(game.viewer, game.slideshow)
	game.thumbnailStrip = ui.NewThumbnailStrip(game.viewer, game.ImageService, logger)

	if cfg.StartOpen || cfg.Slideshow {
		game.viewer.Open(cfg.StartIndex)
	}
	if cfg.Slideshow {
		game.slideshow.Toggle()
	}

	go game.mainImageLoader()

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(game)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
