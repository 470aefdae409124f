// Package scan walks a directory tree looking for image files.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileItem is a single image file found on disk.
type FileItem struct {
	Path string
	Size int64
}

// FileItems is an ordered list of FileItem.
type FileItems []FileItem

// LoggerFunc receives progress messages from a scan.
type LoggerFunc func(msg string)

// DefaultExtensions are the image formats the viewer can decode.
var DefaultExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".thumbnails":  true,
}

// FileScannerImpl walks the filesystem.
type FileScannerImpl struct {
	// Extensions overrides DefaultExtensions when non-nil.
	Extensions map[string]bool
	// Include holds doublestar patterns matched against the path relative to
	// the root or against the file name. Empty means everything.
	Include []string
}

// Run walks dir in a goroutine and streams matching files. The channel is
// closed when the walk finishes.
func (s *FileScannerImpl) Run(dir string, logger LoggerFunc) <-chan FileItem {
	out := make(chan FileItem, 64)
	go func() {
		defer close(out)
		var found int
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logf(logger, "skipping %s: %v", path, err)
				return nil
			}
			if d.IsDir() {
				if path != dir && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				rel = path
			}
			if !s.accepts(rel) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				logf(logger, "stat %s: %v", path, err)
				return nil
			}
			out <- FileItem{Path: path, Size: info.Size()}
			found++
			return nil
		})
		if err != nil {
			logf(logger, "walking %s: %v", dir, err)
		}
		logf(logger, "scan of %s found %d images", dir, found)
	}()
	return out
}

// accepts reports whether the relative path is a supported image matching
// the include patterns.
func (s *FileScannerImpl) accepts(rel string) bool {
	exts := s.Extensions
	if exts == nil {
		exts = DefaultExtensions
	}
	if !exts[strings.ToLower(filepath.Ext(rel))] {
		return false
	}
	return MatchesInclude(rel, s.Include)
}

// MatchesInclude reports whether relPath matches any pattern. An empty
// pattern list matches everything.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	normalized := filepath.ToSlash(relPath)
	base := filepath.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.PathMatch(pattern, normalized); err == nil && ok {
			return true
		}
		if ok, err := doublestar.PathMatch(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// Collect drains ch and returns its items sorted by path.
func Collect(ch <-chan FileItem) FileItems {
	var items FileItems
	for item := range ch {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items
}

func logf(logger LoggerFunc, format string, args ...any) {
	if logger != nil {
		logger(fmt.Sprintf(format, args...))
	}
}
