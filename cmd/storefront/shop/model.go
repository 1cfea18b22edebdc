// Package shop provides the interactive TUI storefront. The interface is
// split across multiple files:
//   - model.go: Types, construction, Init (this file)
//   - update.go: Update loop and key handling
//   - commands.go: tea.Cmd constructors for remote work
//   - view.go: Rendering functions
//   - forms.go: Login and signup form components
package shop

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"storefront/cmd/storefront/ui"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/listing"
	"storefront/internal/search"
	"storefront/internal/session"
	"storefront/internal/toast"
)

// ViewMode determines which screen is active
type ViewMode int

const (
	HomeView ViewMode = iota
	CategoriesView
	LoginView
	SignupView
	CartView
	ProfileView
)

// String returns the nav label for each view.
func (v ViewMode) String() string {
	switch v {
	case HomeView:
		return "home"
	case CategoriesView:
		return "categories"
	case LoginView:
		return "login"
	case SignupView:
		return "signup"
	case CartView:
		return "cart"
	case ProfileView:
		return "profile"
	}
	return "unknown"
}

// formErrorTTL is how long inline auth form errors stay up before
// clearing on their own.
const formErrorTTL = 5 * time.Second

// toastRepaintInterval drives re-renders while toasts are on screen so
// expired messages disappear without a keypress.
const toastRepaintInterval = 250 * time.Millisecond

// ProductFetcher fetches a single product by id for the detail card, so the
// card shows current stock rather than whatever the held page carried.
type ProductFetcher interface {
	Product(ctx context.Context, id string) (*catalog.Product, error)
}

// Deps carries the shared application state the TUI operates on.
type Deps struct {
	Config     *config.Config
	Client     ProductFetcher
	Cart       *cart.Store
	Query      *search.Store
	Session    *session.Accessor
	Toasts     *toast.Notifier
	Products   *listing.ProductList
	Categories *listing.CategoryBrowser
}

// Model is the main model for the storefront TUI
type Model struct {
	deps   Deps
	styles ui.Styles

	spinner     spinner.Model
	searchInput textinput.Model
	renderer    *glamour.TermRenderer

	viewMode ViewMode
	width    int
	height   int

	// cursor indexes into whatever list the active view shows
	cursor        int
	searchFocused bool

	loginForm  loginForm
	signupForm signupForm

	// detail is the freshly fetched single product shown as an overlay card
	detail        *catalog.Product
	detailLoading bool

	// formError is the inline auth error; formErrorSeq guards the timed
	// clear so an old timer never wipes a newer error
	formError    string
	formErrorSeq int

	profile map[string]interface{}

	toastTicking bool
	quitting     bool
}

// New builds the TUI model around the shared state.
func New(deps Deps) Model {
	styles := ui.DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	si := textinput.New()
	si.Placeholder = "search products (press / to focus)"
	si.CharLimit = search.MaxQueryLen
	si.Width = 48

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		renderer = nil
	}

	return Model{
		deps:        deps,
		styles:      styles,
		spinner:     sp,
		searchInput: si,
		renderer:    renderer,
		viewMode:    HomeView,
		loginForm:   newLoginForm(),
		signupForm:  newSignupForm(),
	}
}

// Init kicks off the spinner and the initial home load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadHomeCmd())
}
