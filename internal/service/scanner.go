package service

import (
	"github.com/nicky-ayoub/ebitlightbox/internal/scan"
)

// FileScanner abstracts file scanning.
type FileScanner interface {
	Run(dir string, logger scan.LoggerFunc) <-chan scan.FileItem
}

// ScannerService finds the images that make up a catalog.
type ScannerService struct {
	FileScan FileScanner
}

// NewScannerService constructs a new ScannerService.
func NewScannerService(fileScan FileScanner) *ScannerService {
	return &ScannerService{FileScan: fileScan}
}

// Scan walks dir and returns every image found, sorted by path.
func (s *ScannerService) Scan(dir string, logger scan.LoggerFunc) scan.FileItems {
	return scan.Collect(s.FileScan.Run(dir, logger))
}
