package shop

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/listing"
	"storefront/internal/search"
	"storefront/internal/session"
	"storefront/internal/toast"
)

// stubSource serves a fixed product set without a backend and counts the
// page fetches it sees.
type stubSource struct {
	products   []catalog.Product
	categories []catalog.Category
	fetchCalls int
}

func (s *stubSource) Products(_ context.Context, page, limit int) (*catalog.ProductPage, error) {
	s.fetchCalls++
	return &catalog.ProductPage{
		Products: s.products,
		Total:    len(s.products),
		Page:     page,
		Pages:    1,
		Count:    len(s.products),
	}, nil
}

func (s *stubSource) Categories(_ context.Context) ([]catalog.Category, error) {
	return s.categories, nil
}

func (s *stubSource) ProductsByCategory(ctx context.Context, _ string, page, limit int) (*catalog.ProductPage, error) {
	return s.Products(ctx, page, limit)
}

// Product returns a copy with refreshed stock, standing in for the backend
// having newer data than the page the list is holding.
func (s *stubSource) Product(_ context.Context, id string) (*catalog.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			fresh := p
			fresh.Stock = 7
			return &fresh, nil
		}
	}
	return nil, fmt.Errorf("no product %s", id)
}

func newTestModel(t *testing.T) (Model, *session.Store) {
	m, _, store := buildTestModel(t)
	return m, store
}

func buildTestModel(t *testing.T) (Model, *stubSource, *session.Store) {
	t.Helper()

	src := &stubSource{
		products: []catalog.Product{
			{ID: "p-1", Name: "Wooden Vase", Price: 100},
			{ID: "p-2", Name: "DSLR Camera", Price: 45999, Discount: 18},
		},
		categories: []catalog.Category{{ID: "c-1", Name: "Home Decor"}},
	}

	store, err := session.NewStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	query := search.NewStore()
	notifier := toast.NewNotifier()
	t.Cleanup(notifier.Clear)

	m := New(Deps{
		Config:     config.DefaultConfig(),
		Client:     src,
		Cart:       cart.NewStore(),
		Query:      query,
		Session:    session.NewAccessor(store, "http://127.0.0.1:1/api/", time.Second),
		Toasts:     notifier,
		Products:   listing.NewProductList(src, query, 18),
		Categories: listing.NewCategoryBrowser(src, query, 12),
	})
	return m, src, store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_ViewRenders(t *testing.T) {
	m, _ := newTestModel(t)
	require.NoError(t, m.deps.Products.Load(context.Background()))

	out := m.View()
	assert.Contains(t, out, "Storefront")
	assert.Contains(t, out, "Wooden Vase")
}

func TestModel_EnterAddsToCart(t *testing.T) {
	m, _ := newTestModel(t)
	require.NoError(t, m.deps.Products.Load(context.Background()))

	next, _ := m.handleEnter()
	m = next.(Model)

	items := m.deps.Cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p-1", items[0].Product.ID)

	msgs := m.deps.Toasts.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Wooden Vase")
}

func TestModel_CartBadgeInHeader(t *testing.T) {
	m, _ := newTestModel(t)
	m.deps.Cart.Add(catalog.Product{ID: "p-1", Name: "Vase", Price: 10}, 3)

	assert.Contains(t, m.renderHeader(), "3")
}

func TestModel_SwitchToSignupWhileSignedIn(t *testing.T) {
	m, store := newTestModel(t)
	require.NoError(t, store.Set(session.KeyToken, "tok"))

	next, _ := m.switchTo(SignupView)
	m = next.(Model)

	assert.Equal(t, HomeView, m.viewMode)
	msgs := m.deps.Toasts.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "already signed in")
}

func TestModel_ProfileRequiresLogin(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.switchTo(ProfileView)
	m = next.(Model)
	assert.Equal(t, LoginView, m.viewMode)
}

func TestModel_CategoryRevisitResets(t *testing.T) {
	m, _ := newTestModel(t)
	require.NoError(t, m.deps.Categories.LoadCategories(context.Background()))
	require.NoError(t, m.deps.Categories.Select(context.Background(), catalog.Category{ID: "c-1", Name: "Home Decor"}))
	require.NotNil(t, m.deps.Categories.Selected())

	m.viewMode = CategoriesView
	next, _ := m.switchTo(CategoriesView)
	m = next.(Model)

	assert.Nil(t, m.deps.Categories.Selected())
}

func TestModel_FormErrorClearGuard(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = m.setFormError("first")
	m, _ = m.setFormError("second")

	// A stale clear for the first error must not wipe the second
	next, _ := m.Update(clearFormErrorMsg{seq: m.formErrorSeq - 1})
	m = next.(Model)
	assert.Equal(t, "second", m.formError)

	next, _ = m.Update(clearFormErrorMsg{seq: m.formErrorSeq})
	m = next.(Model)
	assert.Empty(t, m.formError)
}

func TestModel_SearchWritesThrough(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.handleKey(key("/"))
	m = next.(Model)
	assert.True(t, m.searchFocused)

	next, _ = m.handleKey(key("v"))
	m = next.(Model)
	assert.Equal(t, "v", m.deps.Query.Query())

	next, _ = m.handleKey(key("esc"))
	m = next.(Model)
	assert.False(t, m.searchFocused)
}

func TestModel_CursorClamped(t *testing.T) {
	m, _ := newTestModel(t)
	require.NoError(t, m.deps.Products.Load(context.Background()))

	// Two products: cursor can reach 1 but not 2
	for i := 0; i < 5; i++ {
		next, _ := m.handleKey(key("down"))
		m = next.(Model)
	}
	assert.Equal(t, 1, m.cursor)

	for i := 0; i < 5; i++ {
		next, _ := m.handleKey(key("up"))
		m = next.(Model)
	}
	assert.Equal(t, 0, m.cursor)
}

func TestModel_CartQuantityKeys(t *testing.T) {
	m, _ := newTestModel(t)
	p := catalog.Product{ID: "p-1", Name: "Vase", Price: 100}
	m.deps.Cart.Add(p, 1)
	m.viewMode = CartView

	next, _ := m.handleCartKey(key("+"))
	m = next.(Model)
	assert.Equal(t, 2, m.deps.Cart.Items()[0].Quantity)

	next, _ = m.handleCartKey(key("-"))
	m = next.(Model)
	assert.Equal(t, 1, m.deps.Cart.Items()[0].Quantity)

	// Dropping to zero removes the line
	next, _ = m.handleCartKey(key("-"))
	m = next.(Model)
	assert.Empty(t, m.deps.Cart.Items())
}

func TestModel_DetailKeyFetchesFreshProduct(t *testing.T) {
	m, _, _ := buildTestModel(t)
	require.NoError(t, m.deps.Products.Load(context.Background()))

	next, cmd := m.handleKey(key("d"))
	m = next.(Model)
	assert.True(t, m.detailLoading)
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(Model)

	require.NotNil(t, m.detail)
	assert.Equal(t, "p-1", m.detail.ID)
	assert.Equal(t, 7, m.detail.Stock, "detail must come from the by-id fetch, not the held page")
	assert.Contains(t, m.View(), "7 in stock")

	// Enter adds the fetched product, carrying its refreshed stock
	next, _ = m.handleKey(key("enter"))
	m = next.(Model)
	items := m.deps.Cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Product.Stock)

	// b closes the card and returns to the list
	next, _ = m.handleKey(key("b"))
	m = next.(Model)
	assert.Nil(t, m.detail)
}

func TestModel_PageChangeBeyondBoundsDoesNotRefetch(t *testing.T) {
	m, src, _ := buildTestModel(t)
	require.NoError(t, m.deps.Products.Load(context.Background()))
	fetches := src.fetchCalls

	// One page total: left from page 1 and right past the end must not
	// hit the source again
	next, cmd := m.changePage(-1)
	m = next.(Model)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, fetches, src.fetchCalls)
	assert.Equal(t, 1, m.deps.Products.CurrentPage())

	_, cmd = m.changePage(+1)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, fetches, src.fetchCalls)
}

func TestModel_SignupFieldNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	m.viewMode = SignupView

	next, _ := m.handleSignupKey(key("shift+tab"))
	m = next.(Model)
	assert.Equal(t, signupFieldConfirm, m.signupForm.focus)

	next, _ = m.handleSignupKey(key("tab"))
	m = next.(Model)
	assert.Equal(t, signupFieldName, m.signupForm.focus)

	next, _ = m.handleSignupKey(key("down"))
	m = next.(Model)
	assert.Equal(t, signupFieldEmail, m.signupForm.focus)

	next, _ = m.handleSignupKey(key("up"))
	m = next.(Model)
	assert.Equal(t, signupFieldName, m.signupForm.focus)
}

func TestModel_AuthResultWithoutToken(t *testing.T) {
	m, _ := newTestModel(t)
	m.viewMode = LoginView

	next, _ := m.Update(authResultMsg{resp: &session.AuthResponse{Message: "Invalid credentials"}})
	m = next.(Model)

	assert.Equal(t, LoginView, m.viewMode)
	assert.Equal(t, "Invalid credentials", m.formError)
}

func TestViewModeString(t *testing.T) {
	for v, want := range map[ViewMode]string{
		HomeView:       "home",
		CategoriesView: "categories",
		LoginView:      "login",
		SignupView:     "signup",
		CartView:       "cart",
		ProfileView:    "profile",
	} {
		assert.Equal(t, want, v.String())
	}
}
