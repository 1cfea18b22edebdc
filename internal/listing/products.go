package listing

import (
	"context"
	"sync"

	"storefront/internal/catalog"
	"storefront/internal/logging"
	"storefront/internal/search"
)

// ProductList drives the flat, all-categories product view. When a page
// fetch fails the list falls back to the built-in catalog so the view is
// never empty.
type ProductList struct {
	mu      sync.RWMutex
	source  ProductSource
	query   QueryReader
	perPage int

	state       State
	products    []catalog.Product
	currentPage int
	totalPages  int
	totalCount  int
	fallback    bool
}

// NewProductList returns an idle list that will fetch perPage products at
// a time from source.
func NewProductList(source ProductSource, query QueryReader, perPage int) *ProductList {
	return &ProductList{
		source:      source,
		query:       query,
		perPage:     perPage,
		state:       StateIdle,
		currentPage: 1,
		totalPages:  1,
	}
}

// Load fetches the current page. It is called on first entry to the view
// and again on every revisit, so the page contents track the server. If
// the fetch fails the fallback catalog is paged in instead and the list
// still reports loaded.
func (l *ProductList) Load(ctx context.Context) error {
	l.mu.Lock()
	l.state = StateLoading
	page := l.currentPage
	limit := l.perPage
	l.mu.Unlock()

	result, err := l.source.Products(ctx, page, limit)
	if err != nil {
		logging.Listing("product page %d failed, serving fallback catalog: %v", page, err)
		result = catalog.FallbackPage(page, limit)
		l.apply(result, true)
		return nil
	}

	l.apply(result, false)
	return nil
}

// ChangePage moves to page n and re-fetches. Requests outside
// [1, totalPages] are ignored and the current page stays put.
func (l *ProductList) ChangePage(ctx context.Context, n int) error {
	l.mu.Lock()
	if n < 1 || n > l.totalPages || n == l.currentPage {
		l.mu.Unlock()
		return nil
	}
	l.currentPage = n
	l.mu.Unlock()

	return l.Load(ctx)
}

// apply installs a fetched page. The last response to land wins, even if
// an earlier request returns after a later one.
func (l *ProductList) apply(page *catalog.ProductPage, fromFallback bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.state = StateLoaded
	l.products = page.Products
	l.currentPage = page.Page
	l.totalPages = page.Pages
	l.totalCount = page.Total
	l.fallback = fromFallback
}

// Filtered returns the held page narrowed by the shared search query.
// Matching looks at name, description, brand, and the category display
// name. Filtering never triggers a fetch.
func (l *ProductList) Filtered() []catalog.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	q := l.query.Normalized()
	if q == "" {
		return append([]catalog.Product(nil), l.products...)
	}

	var out []catalog.Product
	for _, p := range l.products {
		if search.Matches(q, p.Name, p.Description, p.Brand, p.CategoryID.DisplayName()) {
			out = append(out, p)
		}
	}
	return out
}

// Products returns the unfiltered held page.
func (l *ProductList) Products() []catalog.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]catalog.Product(nil), l.products...)
}

func (l *ProductList) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

func (l *ProductList) CurrentPage() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentPage
}

func (l *ProductList) TotalPages() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalPages
}

func (l *ProductList) TotalCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalCount
}

// UsingFallback reports whether the held page came from the built-in
// catalog rather than the server.
func (l *ProductList) UsingFallback() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.fallback
}
