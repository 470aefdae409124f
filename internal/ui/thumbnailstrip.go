// Package ui holds Ebiten widgets drawn around the lightbox.
package ui

import (
	"image"
	"image/color"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nicky-ayoub/ebitlightbox/internal/catalog"
	"github.com/nicky-ayoub/ebitlightbox/internal/service"
	"github.com/nicky-ayoub/ebitlightbox/internal/viewer"
)

const (
	viewportWidth = 11 // Must be an odd number for a clear center
	thumbSize     = 80
	thumbSpacing  = 10
	stripHeight   = thumbSize + 2*thumbSpacing
	loaderCount   = 2
)

// thumbnailResult holds a decoded image, ready to be converted to an ebiten.Image.
type thumbnailResult struct {
	url string
	img image.Image
}

// ThumbnailStrip draws the catalog around the current image along the
// bottom of the screen. Clicking a thumbnail opens that image.
type ThumbnailStrip struct {
	viewer       *viewer.Viewer
	imageService *service.ImageService
	logger       *slog.Logger

	thumbCache    map[string]*ebiten.Image
	pendingJobs   map[string]bool
	jobQueue      chan string
	resultQueue   chan thumbnailResult
	pendingJobsMu sync.Mutex

	selectionBox *ebiten.Image
}

// NewThumbnailStrip creates the strip and starts its background loaders.
func NewThumbnailStrip(v *viewer.Viewer, ivs *service.ImageService, logger *slog.Logger) *ThumbnailStrip {
	ts := &ThumbnailStrip{
		viewer:       v,
		imageService: ivs,
		logger:       logger,
		thumbCache:   make(map[string]*ebiten.Image),
		pendingJobs:  make(map[string]bool),
		jobQueue:     make(chan string, 50),
		resultQueue:  make(chan thumbnailResult, 50),
	}

	ts.selectionBox = ebiten.NewImage(thumbSize, thumbSize)
	borderColor := color.RGBA{R: 0xff, G: 0xff, B: 0, A: 0xff} // Yellow
	vector.StrokeRect(ts.selectionBox, 0, 0, float32(thumbSize), float32(thumbSize), 3, borderColor, false)

	for i := 0; i < loaderCount; i++ {
		go ts.loader()
	}
	return ts
}

// Height returns the total height of the thumbnail strip.
func (ts *ThumbnailStrip) Height() int {
	return stripHeight
}

// Bounds returns the strip's screen rectangle for a screen of the given size.
func (ts *ThumbnailStrip) Bounds(screenWidth, screenHeight int) viewer.Rect {
	return viewer.Rect{
		X:      0,
		Y:      float64(screenHeight - stripHeight),
		Width:  float64(screenWidth),
		Height: stripHeight,
	}
}

// loader is a background worker that decodes thumbnails. It never touches
// Ebiten images; those are created on the main thread in Update.
func (ts *ThumbnailStrip) loader() {
	for url := range ts.jobQueue {
		img, err := ts.imageService.LoadThumbnail(url, thumbSize)
		if err != nil {
			ts.logger.Debug("thumbnail failed", slog.String("url", url), slog.Any("err", err))
			ts.pendingJobsMu.Lock()
			delete(ts.pendingJobs, url) // Un-pend on error so it can be retried
			ts.pendingJobsMu.Unlock()
			continue
		}
		ts.resultQueue <- thumbnailResult{url: url, img: img}
	}
}

// slotRect returns the screen rectangle of slot i in a strip of n slots.
func slotRect(i, n, screenWidth, screenHeight int) image.Rectangle {
	totalWidth := n*(thumbSize+thumbSpacing) - thumbSpacing
	startX := (screenWidth - totalWidth) / 2
	startY := screenHeight - stripHeight + thumbSpacing
	x := startX + i*(thumbSize+thumbSpacing)
	return image.Rect(x, startY, x+thumbSize, startY+thumbSize)
}

// hitIndex returns the catalog index of the thumbnail under (x, y).
func hitIndex(items []catalog.WindowItem, x, y, screenWidth, screenHeight int) (int, bool) {
	pt := image.Pt(x, y)
	for i, wi := range items {
		if pt.In(slotRect(i, len(items), screenWidth, screenHeight)) {
			return wi.Index, true
		}
	}
	return 0, false
}

// Update converts loaded thumbnails, queues missing ones and handles a
// click at (clickX, clickY) when clicked is true.
func (ts *ThumbnailStrip) Update(clicked bool, clickX, clickY, screenWidth, screenHeight int) {
	// Results must become ebiten.Images on the main thread.
	processing := true
	for processing {
		select {
		case result := <-ts.resultQueue:
			ts.thumbCache[result.url] = ebiten.NewImageFromImage(result.img)
			ts.pendingJobsMu.Lock()
			delete(ts.pendingJobs, result.url)
			ts.pendingJobsMu.Unlock()
		default:
			processing = false
		}
	}

	items, _ := ts.viewer.Catalog().Window(ts.viewer.State().Index, viewportWidth)

	for _, wi := range items {
		url := wi.Item.URL
		if _, inCache := ts.thumbCache[url]; inCache {
			continue
		}
		ts.pendingJobsMu.Lock()
		if !ts.pendingJobs[url] {
			ts.pendingJobs[url] = true
			select {
			case ts.jobQueue <- url:
			default:
				// Queue is full; try again next frame.
				delete(ts.pendingJobs, url)
			}
		}
		ts.pendingJobsMu.Unlock()
	}

	if !clicked {
		return
	}
	if index, ok := hitIndex(items, clickX, clickY, screenWidth, screenHeight); ok {
		ts.viewer.Open(index)
	}
}

// Draw renders the thumbnail strip onto the bottom of the screen.
func (ts *ThumbnailStrip) Draw(screen *ebiten.Image) {
	items, center := ts.viewer.Catalog().Window(ts.viewer.State().Index, viewportWidth)
	if len(items) == 0 {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()

	for i, wi := range items {
		slot := slotRect(i, len(items), sw, sh)
		thumb, exists := ts.thumbCache[wi.Item.URL]
		if exists {
			op := &ebiten.DrawImageOptions{}
			// Thumbnails are pre-scaled by the loader; centre them in the slot.
			tw, th := thumb.Bounds().Dx(), thumb.Bounds().Dy()
			op.GeoM.Translate(
				float64(slot.Min.X)+float64(thumbSize-tw)/2,
				float64(slot.Min.Y)+float64(thumbSize-th)/2,
			)
			screen.DrawImage(thumb, op)
		}

		if i == center {
			selOp := &ebiten.DrawImageOptions{}
			selOp.GeoM.Translate(float64(slot.Min.X), float64(slot.Min.Y))
			screen.DrawImage(ts.selectionBox, selOp)
		}
	}
}
