// Package listing implements the state machines behind the two paginated
// product views: the flat product list and the category browser. Each view
// moves from idle through loading to loaded or error, re-entering loading
// on page or category change. Results are held page-local; navigating back
// to a page re-fetches it. Pagination bounds come verbatim from the server
// response and page changes are clamped to them.
package listing

import (
	"context"

	"storefront/internal/catalog"
)

// State is a view's fetch state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

// String returns the display name for each state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	}
	return "unknown"
}

// ProductSource fetches pages of the flat product list.
type ProductSource interface {
	Products(ctx context.Context, page, limit int) (*catalog.ProductPage, error)
}

// CategorySource fetches categories and category-scoped product pages.
type CategorySource interface {
	Categories(ctx context.Context) ([]catalog.Category, error)
	ProductsByCategory(ctx context.Context, categoryID string, page, limit int) (*catalog.ProductPage, error)
}

// QueryReader exposes the shared search query's normalized form.
type QueryReader interface {
	Normalized() string
}
