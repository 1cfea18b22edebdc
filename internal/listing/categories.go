package listing

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/catalog"
	"storefront/internal/logging"
	"storefront/internal/search"
)

// CategoryBrowser drives the category view: first a category index, then a
// paginated product list scoped to the selected category. Unlike the flat
// list there is no fallback catalog here; a failed fetch surfaces as an
// error the view renders.
type CategoryBrowser struct {
	mu      sync.RWMutex
	source  CategorySource
	query   QueryReader
	perPage int

	categoriesState State
	categoriesErr   error
	categories      []catalog.Category

	selected *catalog.Category

	productsState State
	productsErr   error
	products      []catalog.Product
	currentPage   int
	totalPages    int
	totalCount    int
}

// NewCategoryBrowser returns an idle browser fetching perPage products at
// a time from source.
func NewCategoryBrowser(source CategorySource, query QueryReader, perPage int) *CategoryBrowser {
	return &CategoryBrowser{
		source:          source,
		query:           query,
		perPage:         perPage,
		categoriesState: StateIdle,
		productsState:   StateIdle,
		currentPage:     1,
		totalPages:      1,
	}
}

// LoadCategories fetches the category index. Called on entry to the view
// and again on every revisit.
func (b *CategoryBrowser) LoadCategories(ctx context.Context) error {
	b.mu.Lock()
	b.categoriesState = StateLoading
	b.mu.Unlock()

	cats, err := b.source.Categories(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		logging.Listing("category index failed: %v", err)
		b.categoriesState = StateError
		b.categoriesErr = err
		return err
	}
	b.categoriesState = StateLoaded
	b.categoriesErr = nil
	b.categories = cats
	return nil
}

// Select picks a category and loads its first page of products.
func (b *CategoryBrowser) Select(ctx context.Context, cat catalog.Category) error {
	b.mu.Lock()
	selected := cat
	b.selected = &selected
	b.currentPage = 1
	b.totalPages = 1
	b.products = nil
	b.mu.Unlock()

	return b.loadProducts(ctx)
}

// ChangePage moves to page n of the selected category and re-fetches.
// It is a no-op when no category is selected or when n falls outside
// [1, totalPages].
func (b *CategoryBrowser) ChangePage(ctx context.Context, n int) error {
	b.mu.Lock()
	if b.selected == nil || n < 1 || n > b.totalPages || n == b.currentPage {
		b.mu.Unlock()
		return nil
	}
	b.currentPage = n
	b.mu.Unlock()

	return b.loadProducts(ctx)
}

// Reset drops the selected category and its products, returning the
// browser to the category index.
func (b *CategoryBrowser) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = nil
	b.products = nil
	b.productsState = StateIdle
	b.productsErr = nil
	b.currentPage = 1
	b.totalPages = 1
	b.totalCount = 0
}

func (b *CategoryBrowser) loadProducts(ctx context.Context) error {
	b.mu.Lock()
	if b.selected == nil {
		b.mu.Unlock()
		return fmt.Errorf("no category selected")
	}
	b.productsState = StateLoading
	id := b.selected.ID
	page := b.currentPage
	limit := b.perPage
	b.mu.Unlock()

	result, err := b.source.ProductsByCategory(ctx, id, page, limit)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		logging.Listing("category %s page %d failed: %v", id, page, err)
		b.productsState = StateError
		b.productsErr = err
		return err
	}
	b.productsState = StateLoaded
	b.productsErr = nil
	b.products = result.Products
	b.currentPage = result.Page
	b.totalPages = result.Pages
	b.totalCount = result.Total
	return nil
}

// Filtered returns the held page narrowed by the shared search query.
// In the category view only name, description, and brand are matched;
// the category is already fixed by selection.
func (b *CategoryBrowser) Filtered() []catalog.Product {
	b.mu.RLock()
	defer b.mu.RUnlock()

	q := b.query.Normalized()
	if q == "" {
		return append([]catalog.Product(nil), b.products...)
	}

	var out []catalog.Product
	for _, p := range b.products {
		if search.Matches(q, p.Name, p.Description, p.Brand) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the fetched category index.
func (b *CategoryBrowser) Categories() []catalog.Category {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]catalog.Category(nil), b.categories...)
}

// Selected returns the active category, or nil on the index.
func (b *CategoryBrowser) Selected() *catalog.Category {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.selected == nil {
		return nil
	}
	cat := *b.selected
	return &cat
}

func (b *CategoryBrowser) CategoriesState() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.categoriesState
}

func (b *CategoryBrowser) CategoriesErr() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.categoriesErr
}

func (b *CategoryBrowser) ProductsState() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.productsState
}

func (b *CategoryBrowser) ProductsErr() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.productsErr
}

func (b *CategoryBrowser) Products() []catalog.Product {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]catalog.Product(nil), b.products...)
}

func (b *CategoryBrowser) CurrentPage() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.currentPage
}

func (b *CategoryBrowser) TotalPages() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.totalPages
}

func (b *CategoryBrowser) TotalCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.totalCount
}
