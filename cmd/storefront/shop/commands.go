package shop

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"storefront/internal/catalog"
	"storefront/internal/session"
)

// Messages produced by background commands.

type homeLoadedMsg struct{ err error }

type productsLoadedMsg struct{ err error }

type categoriesLoadedMsg struct{ err error }

type categoryProductsLoadedMsg struct{ err error }

type productDetailMsg struct {
	product *catalog.Product
	err     error
}

type authResultMsg struct {
	signup bool
	resp   *session.AuthResponse
	err    error
}

type profileLoadedMsg struct {
	profile map[string]interface{}
	err     error
}

type logoutDoneMsg struct{ err error }

type clearFormErrorMsg struct{ seq int }

type toastTickMsg struct{}

func (m Model) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.deps.Config.GetAPITimeout())
}

// loadHomeCmd fetches the category index and the first product page in
// parallel so the home screen fills in one round trip.
func (m Model) loadHomeCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return m.deps.Products.Load(gctx) })
		g.Go(func() error { return m.deps.Categories.LoadCategories(gctx) })
		return homeLoadedMsg{err: g.Wait()}
	}
}

// loadProductsCmd moves the flat list to page. Out-of-range targets are
// swallowed by ChangePage, so paging left on page one never re-fetches.
func (m Model) loadProductsCmd(page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		return productsLoadedMsg{err: m.deps.Products.ChangePage(ctx, page)}
	}
}

// loadProductDetailCmd fetches a single product by id so the detail card
// shows current stock and attributes instead of the held page's copy.
func (m Model) loadProductDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		p, err := m.deps.Client.Product(ctx, id)
		return productDetailMsg{product: p, err: err}
	}
}

func (m Model) loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		return categoriesLoadedMsg{err: m.deps.Categories.LoadCategories(ctx)}
	}
}

func (m Model) selectCategoryCmd(idx int) tea.Cmd {
	cats := m.deps.Categories.Categories()
	if idx < 0 || idx >= len(cats) {
		return nil
	}
	cat := cats[idx]
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		return categoryProductsLoadedMsg{err: m.deps.Categories.Select(ctx, cat)}
	}
}

func (m Model) changeCategoryPageCmd(page int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		return categoryProductsLoadedMsg{err: m.deps.Categories.ChangePage(ctx, page)}
	}
}

func (m Model) loginCmd(creds session.Credentials) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		resp, err := m.deps.Session.Login(ctx, creds)
		return authResultMsg{resp: resp, err: err}
	}
}

func (m Model) registerCmd(reg session.Registration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		resp, err := m.deps.Session.Register(ctx, reg)
		return authResultMsg{signup: true, resp: resp, err: err}
	}
}

func (m Model) loadProfileCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opCtx()
		defer cancel()
		profile, err := m.deps.Session.CurrentUser(ctx)
		return profileLoadedMsg{profile: profile, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: m.deps.Session.Logout()}
	}
}

func clearFormErrorCmd(seq int) tea.Cmd {
	return tea.Tick(formErrorTTL, func(time.Time) tea.Msg {
		return clearFormErrorMsg{seq: seq}
	})
}

func toastTickCmd() tea.Cmd {
	return tea.Tick(toastRepaintInterval, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}
