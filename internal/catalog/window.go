package catalog

// WindowItem bundles an item with its index in the catalog, for the
// thumbnail strip.
type WindowItem struct {
	Item  Item
	Index int
}

// Window returns up to size items centred on center, shifted to stay inside
// the catalog, along with the position of center within the returned slice.
// With an even size the extra item falls before center.
func (c *Catalog) Window(center, size int) ([]WindowItem, int) {
	count := len(c.items)
	if count == 0 || size <= 0 {
		return []WindowItem{}, -1
	}
	center = c.Index(center)

	start := center - size/2
	end := start + size - 1

	// Shift the window back inside the list.
	if start < 0 {
		end -= start
		start = 0
	}
	if end >= count {
		start -= end - (count - 1)
		end = count - 1
	}
	// The list may be smaller than the window.
	if start < 0 {
		start = 0
	}

	items := make([]WindowItem, 0, end-start+1)
	for i := start; i <= end; i++ {
		items = append(items, WindowItem{Item: c.items[i], Index: i})
	}
	return items, center - start
}
