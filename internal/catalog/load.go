package catalog

import (
	"fmt"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads a YAML catalog file of the form
//
//	images:
//	  - url: photos/beach.jpg
//	    alt: Beach Photo
//	    category: travel
//
// Relative URLs are resolved against the file's directory.
func Load(path string) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var items []Item
	if err := k.Unmarshal("images", &items); err != nil {
		return nil, fmt.Errorf("unmarshalling catalog %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range items {
		if items[i].URL != "" && !filepath.IsAbs(items[i].URL) {
			items[i].URL = filepath.Join(base, items[i].URL)
		}
	}

	c, err := New(items)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}
