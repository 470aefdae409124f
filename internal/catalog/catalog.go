// Package catalog holds the fixed, ordered list of images the lightbox can display.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nicky-ayoub/ebitlightbox/internal/scan"
)

var (
	// ErrEmpty is returned when a catalog would contain no images.
	ErrEmpty = errors.New("catalog is empty")
	// ErrMissingURL is returned when an item has no image location.
	ErrMissingURL = errors.New("catalog item has no url")
)

// CategoryAll selects every item when filtering.
const CategoryAll = "all"

// Item is a single displayable image.
type Item struct {
	URL      string `koanf:"url" yaml:"url"`
	Alt      string `koanf:"alt" yaml:"alt"`
	Category string `koanf:"category" yaml:"category,omitempty"`
}

// Catalog is an immutable ordered list of images. Indices handed to it are
// always normalized modulo its length.
type Catalog struct {
	items []Item
}

// New builds a catalog from items. The slice is copied.
func New(items []Item) (*Catalog, error) {
	if len(items) == 0 {
		return nil, ErrEmpty
	}
	for i, it := range items {
		if strings.TrimSpace(it.URL) == "" {
			return nil, fmt.Errorf("item %d: %w", i, ErrMissingURL)
		}
	}
	c := &Catalog{items: make([]Item, len(items))}
	copy(c.items, items)
	return c, nil
}

// AltFunc returns alt text for an image file, or "" when it has none.
type AltFunc func(path string) string

// FromFiles builds a catalog from scanned files. Alt text comes from alt
// when it returns something, otherwise from the file name. alt may be nil.
func FromFiles(files scan.FileItems, alt AltFunc) (*Catalog, error) {
	items := make([]Item, 0, len(files))
	for _, f := range files {
		text := ""
		if alt != nil {
			text = alt(f.Path)
		}
		if text == "" {
			text = AltFromPath(f.Path)
		}
		items = append(items, Item{
			URL:      f.Path,
			Alt:      text,
			Category: filepath.Base(filepath.Dir(f.Path)),
		})
	}
	return New(items)
}

// AltFromPath turns "beach_photo-2.jpg" into "beach photo 2".
func AltFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	return strings.Join(strings.Fields(base), " ")
}

// Wrap normalizes i into [0, n). Negative values wrap to the tail.
// n must be positive.
func Wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Index normalizes i against the catalog length.
func (c *Catalog) Index(i int) int {
	return Wrap(i, len(c.items))
}

// At returns the item at the wrapped index i.
func (c *Catalog) At(i int) Item {
	return c.items[c.Index(i)]
}

// Items returns a copy of all items in order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range c.items {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		out = append(out, it.Category)
	}
	return out
}

// Filter returns a catalog holding only the items in category. An empty
// category or CategoryAll returns c itself.
func (c *Catalog) Filter(category string) (*Catalog, error) {
	if category == "" || category == CategoryAll {
		return c, nil
	}
	var items []Item
	for _, it := range c.items {
		if it.Category == category {
			items = append(items, it)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("category %q: %w", category, ErrEmpty)
	}
	return &Catalog{items: items}, nil
}
