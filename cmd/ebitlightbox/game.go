package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/nicky-ayoub/ebitlightbox/internal/input"
	"github.com/nicky-ayoub/ebitlightbox/internal/render"
	"github.com/nicky-ayoub/ebitlightbox/internal/service"
	"github.com/nicky-ayoub/ebitlightbox/internal/ui"
	"github.com/nicky-ayoub/ebitlightbox/internal/viewer"
)

var overlayColor = color.RGBA{A: 0xe6}

type Game struct {
	viewer     *viewer.Viewer
	slideshow  *viewer.Slideshow
	dispatcher *input.Dispatcher
	frame      viewer.Frame

	CurrentImage        *ebiten.Image
	currentImagePath    string // path of the image in CurrentImage
	currentImageInfo    string // status line for CurrentImage
	loadingImagePath    string // path of the image currently being loaded
	failedImagePath     string
	mainImageJobChan    chan string
	mainImageResultChan chan mainImageResult
	imageToDeallocate   *ebiten.Image

	thumbnailStrip *ui.ThumbnailStrip
	showThumbnails bool
	ImageService   *service.ImageService
	logger         *slog.Logger

	touchIDs   []ebiten.TouchID
	lastUpdate time.Time
	width      int
	height     int
}

// mainImageResult holds the result of a background image loading operation.
type mainImageResult struct {
	img  *ebiten.Image
	info string
	path string
	err  error
}

// Render records the latest frame from the viewer.
func (g *Game) Render(f viewer.Frame) {
	g.frame = f
}

// stripVisible reports whether the thumbnail strip takes screen space.
func (g *Game) stripVisible() bool {
	return g.thumbnailStrip != nil && g.showThumbnails && g.frame.Visible && !g.slideshow.Active()
}

// imageRect returns where the current image is drawn, or an empty rect.
func (g *Game) imageRect() viewer.Rect {
	if g.CurrentImage == nil {
		return viewer.Rect{}
	}
	b := g.CurrentImage.Bounds()
	return render.ImageRect(g.frame, b.Dx(), b.Dy(), g.width, g.mainHeight())
}

func (g *Game) toggleThumbnails() {
	g.showThumbnails = !g.showThumbnails
}

func (g *Game) mainHeight() int {
	if g.stripVisible() {
		return g.height - g.thumbnailStrip.Height()
	}
	return g.height
}

// pollInput gathers all raw input events for the current frame.
func (g *Game) pollInput() input.State {
	_, wheelY := ebiten.Wheel()
	mx, my := ebiten.CursorPosition()

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	touches := make([]input.Point, 0, len(g.touchIDs))
	for _, id := range g.touchIDs {
		tx, ty := ebiten.TouchPosition(id)
		touches = append(touches, input.Point{X: float64(tx), Y: float64(ty)})
	}

	state := input.State{
		Open:            inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		Close:           inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		PrevImage:       inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft),
		NextImage:       inpututil.IsKeyJustPressed(ebiten.KeyArrowRight),
		ZoomIn:          inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd),
		ZoomOut:         inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract),
		ResetZoom:       inpututil.IsKeyJustPressed(ebiten.KeyDigit0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0),
		ToggleSlideshow: inpututil.IsKeyJustPressed(ebiten.KeyS),

		WheelY:          wheelY,
		PointerPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		PointerHeld:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		PointerReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		PointerX:        float64(mx),
		PointerY:        float64(my),
		Touches:         touches,
		ImageRect:       g.imageRect(),
	}
	if g.frame.Visible {
		state.Buttons = ui.ControlButtons(g.width, g.mainHeight())
	}
	if g.stripVisible() {
		state.Controls = g.thumbnailStrip.Bounds(g.width, g.height)
	}
	return state
}

func (g *Game) Update() error {
	// Deallocate an image replaced in the previous frame, once Draw is done with it.
	if g.imageToDeallocate != nil {
		g.imageToDeallocate.Deallocate()
		g.imageToDeallocate = nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.toggleThumbnails()
	}

	in := g.pollInput()
	g.dispatcher.Apply(in)

	now := time.Now()
	if !g.lastUpdate.IsZero() && g.frame.Visible {
		g.slideshow.Tick(now.Sub(g.lastUpdate))
	}
	g.lastUpdate = now

	g.receiveImage()
	g.requestImage()

	if g.stripVisible() {
		clicked, x, y := in.PointerReleased, in.PointerX, in.PointerY
		if tap, ok := g.dispatcher.Tap(); ok {
			clicked, x, y = true, tap.X, tap.Y
		}
		g.thumbnailStrip.Update(clicked, int(x), int(y), g.width, g.height)
	}
	return nil
}

// receiveImage applies a finished background load if it is still wanted.
func (g *Game) receiveImage() {
	select {
	case result := <-g.mainImageResultChan:
		if result.path != g.loadingImagePath {
			// Stale result for an image we no longer want.
			if result.img != nil {
				result.img.Deallocate()
			}
			return
		}
		g.loadingImagePath = ""
		if result.err != nil {
			g.logger.Error("loading image", slog.String("path", result.path), slog.Any("err", result.err))
			g.failedImagePath = result.path
			return
		}
		if g.CurrentImage != nil {
			g.imageToDeallocate = g.CurrentImage
		}
		g.CurrentImage = result.img
		g.currentImagePath = result.path
		g.currentImageInfo = result.info
		g.failedImagePath = ""
	default:
	}
}

// requestImage starts loading the frame's image when it is not already
// shown, loading or known to be broken.
func (g *Game) requestImage() {
	url := g.frame.URL
	if url == g.currentImagePath || url == g.loadingImagePath || url == g.failedImagePath {
		return
	}
	select {
	case g.mainImageJobChan <- url:
		g.loadingImagePath = url
	default:
		// Loader busy; try again next frame.
	}
}

// mainImageLoader is a background worker that loads full-size images along
// with their status line.
func (g *Game) mainImageLoader() {
	for path := range g.mainImageJobChan {
		result := mainImageResult{path: path}
		img, err := g.ImageService.Decode(path)
		if err != nil {
			result.err = err
			g.mainImageResultChan <- result
			continue
		}
		result.img = ebiten.NewImageFromImage(img)
		if info, err := g.ImageService.GetImageInfo(path); err == nil {
			result.info = info.Summary()
		} else {
			g.logger.Debug("reading image info", slog.String("path", path), slog.Any("err", err))
		}
		g.mainImageResultChan <- result
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.frame.Visible {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("%d images. Press Enter to open the lightbox, Q to quit.",
			g.viewer.Catalog().Len()))
		return
	}

	screen.Fill(overlayColor)

	switch {
	case g.CurrentImage != nil && g.currentImagePath == g.frame.URL:
		b := g.CurrentImage.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM = render.GeoM(g.frame, b.Dx(), b.Dy(), g.width, g.mainHeight())
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(g.CurrentImage, op)
	case g.failedImagePath == g.frame.URL:
		ebitenutil.DebugPrintAt(screen, "Image unavailable: "+g.frame.Alt, g.width/2-100, g.mainHeight()/2)
	default:
		ebitenutil.DebugPrintAt(screen, "Loading: "+g.frame.Alt, g.width/2-100, g.mainHeight()/2)
	}

	slideshowStr := ""
	if g.slideshow.Active() {
		slideshowStr = " (Slideshow ON)"
	}
	info := ""
	if g.currentImagePath == g.frame.URL {
		info = g.currentImageInfo
	}
	st := g.viewer.State()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\n%d / %d  zoom %.0f%%%s\n%s",
		g.frame.Alt,
		st.Index+1,
		g.viewer.Catalog().Len(),
		st.Scale*100,
		slideshowStr,
		info))

	ui.DrawControls(screen, ui.ControlButtons(g.width, g.mainHeight()))
	if g.stripVisible() {
		g.thumbnailStrip.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	// A 1:1 pixel mapping keeps pointer coordinates and draw geometry aligned.
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
