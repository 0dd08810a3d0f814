package engine

import "github.com/arremate/leilao-finder/pkg/types"

// TotalPages computes the page count with a floor of one page so an empty
// result set still renders a single (empty) page.
func TotalPages(itemCount, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (itemCount + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// PageSlice returns the half-open window [(page-1)*size, page*size) of the
// items. Pages are 1-based; an out-of-range page yields an empty slice, the
// caller is expected to signal a page reset instead of rendering it.
func PageSlice(items []types.Item, page, pageSize int) []types.Item {
	if page < 1 || pageSize <= 0 {
		return []types.Item{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []types.Item{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end:end]
}
