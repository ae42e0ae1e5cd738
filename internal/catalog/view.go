package catalog

// DefaultPageSize is the page length used when configuration does not
// override it.
const DefaultPageSize = 5

// View holds the list controls: the free-text title search and the 1-based
// current page. Changing the search always snaps back to the first page so
// the narrowed result is visible from the top.
type View struct {
	search string
	page   int
	size   int
}

// NewView returns list controls on page 1 with the given page size.
func NewView(size int) View {
	if size < 1 {
		size = DefaultPageSize
	}
	return View{page: 1, size: size}
}

// Search returns the active search text.
func (v *View) Search() string {
	return v.search
}

// Page returns the 1-based current page.
func (v *View) Page() int {
	return v.page
}

// Size returns the page length.
func (v *View) Size() int {
	return v.size
}

// SetSearch replaces the search text and reports whether it changed. Any
// change resets the view to page 1.
func (v *View) SetSearch(search string) bool {
	if search == v.search {
		return false
	}
	v.search = search
	v.page = 1
	return true
}

// SetPage moves to the given page, raising anything below 1 to 1. Upper
// clamping happens against a projection, see Clamp.
func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.page = page
}

// Clamp pulls the current page back into [1, totalPages]. It runs after the
// collection shrinks so the view never points past the last page.
func (v *View) Clamp(totalPages int) {
	if totalPages < 1 {
		totalPages = 1
	}
	if v.page > totalPages {
		v.page = totalPages
	}
	if v.page < 1 {
		v.page = 1
	}
}
