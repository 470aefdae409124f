// Package service provides image loading and metadata extraction services.
package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ImageInfo holds metadata about an image.
type ImageInfo struct {
	Width       int
	Height      int
	Size        int64
	ModTime     time.Time
	Description string
	EXIFData    map[string]string
}

// Summary formats the info as a single status line, e.g.
// "4000x3000  2.4 MB  2024-05-01  f/2.8  1/200 s".
func (info *ImageInfo) Summary() string {
	parts := []string{fmt.Sprintf("%dx%d", info.Width, info.Height), formatSize(info.Size)}
	if !info.ModTime.IsZero() {
		parts = append(parts, info.ModTime.Format(time.DateOnly))
	}
	for _, key := range exifKeys {
		if v := info.EXIFData[key]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "  ")
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// EXIF fields shown in the status line, in display order.
const (
	exifCamera   = "Camera Model"
	exifFNumber  = "F-Number"
	exifExposure = "Exposure Time"
)

var exifKeys = []string{exifCamera, exifFNumber, exifExposure}

// ImageService provides methods for loading and decoding images.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// GetImageInfo reads an image's size and EXIF metadata without decoding
// its pixels.
func (is *ImageService) GetImageInfo(path string) (*ImageInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file stats: %w", err)
	}
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}

	info := &ImageInfo{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Size:     fileInfo.Size(),
		ModTime:  fileInfo.ModTime(),
		EXIFData: make(map[string]string),
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file for exif: %w", err)
	}
	if x, err := exif.Decode(file); err == nil {
		readEXIF(x, info)
	}
	return info, nil
}

// readEXIF copies the fields the viewer shows from x into info. Missing
// tags are skipped.
func readEXIF(x *exif.Exif, info *ImageInfo) {
	if tag, err := x.Get(exif.ImageDescription); err == nil {
		if s, err := tag.StringVal(); err == nil {
			info.Description = strings.TrimSpace(s)
		}
	}
	if tag, err := x.Get(exif.Model); err == nil {
		if s, err := tag.StringVal(); err == nil && strings.TrimSpace(s) != "" {
			info.EXIFData[exifCamera] = strings.TrimSpace(s)
		}
	}
	if tag, err := x.Get(exif.FNumber); err == nil {
		if n, d, err := tag.Rat2(0); err == nil && d != 0 {
			info.EXIFData[exifFNumber] = fmt.Sprintf("f/%.1f", float64(n)/float64(d))
		}
	}
	if tag, err := x.Get(exif.ExposureTime); err == nil {
		if n, d, err := tag.Rat2(0); err == nil && d != 0 {
			info.EXIFData[exifExposure] = fmt.Sprintf("%d/%d s", n, d)
		}
	}
}

// GetEmbeddedThumbnail attempts to read an embedded EXIF thumbnail from an image file.
func (is *ImageService) GetEmbeddedThumbnail(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file for thumbnail: %w", err)
	}
	defer file.Close()

	x, err := exif.Decode(file)
	if err != nil {
		return nil, errors.New("no EXIF data found")
	}

	thumbBytes, err := x.JpegThumbnail()
	if err != nil {
		return nil, fmt.Errorf("no JPEG thumbnail in EXIF: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(thumbBytes))
	return img, err
}

// Decode loads and decodes a full image.
func (is *ImageService) Decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// LoadThumbnail returns a thumbnail no larger than size x size, preferring
// the embedded EXIF thumbnail over decoding the full image.
func (is *ImageService) LoadThumbnail(path string, size int) (image.Image, error) {
	img, err := is.GetEmbeddedThumbnail(path)
	if err != nil {
		img, err = is.Decode(path)
		if err != nil {
			return nil, err
		}
	}
	return Thumbnail(img, size), nil
}

// Thumbnail scales img down to fit inside size x size, keeping its aspect
// ratio. Images already small enough are returned unchanged.
func Thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || w <= 0 || h <= 0 || (w <= size && h <= size) {
		return img
	}

	tw, th := size, size
	if w >= h {
		th = max(1, h*size/w)
	} else {
		tw = max(1, w*size/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
