package shop

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"storefront/internal/catalog"
	"storefront/internal/listing"
	"storefront/internal/logging"
	"storefront/internal/session"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case homeLoadedMsg:
		m.cursor = 0
		var cmds []tea.Cmd
		if msg.err != nil {
			m, cmds = m.appendToast(cmds, func() { m.deps.Toasts.Error("could not load categories") })
		}
		if m.deps.Products.UsingFallback() {
			m, cmds = m.appendToast(cmds, func() { m.deps.Toasts.Warning("backend unreachable, showing the offline catalog") })
		}
		return m, tea.Batch(cmds...)

	case productsLoadedMsg:
		m.cursor = 0
		if m.deps.Products.UsingFallback() {
			var cmds []tea.Cmd
			m, cmds = m.appendToast(cmds, func() { m.deps.Toasts.Warning("backend unreachable, showing the offline catalog") })
			return m, tea.Batch(cmds...)
		}
		return m, nil

	case categoriesLoadedMsg:
		m.cursor = 0
		if msg.err != nil {
			return m.showToast(func() { m.deps.Toasts.Error("could not load categories") })
		}
		return m, nil

	case categoryProductsLoadedMsg:
		m.cursor = 0
		if msg.err != nil {
			return m.showToast(func() { m.deps.Toasts.Error("could not load products for this category") })
		}
		return m, nil

	case productDetailMsg:
		if !m.detailLoading {
			// Dismissed while the fetch was in flight
			return m, nil
		}
		m.detailLoading = false
		if msg.err != nil {
			return m.showToast(func() { m.deps.Toasts.Error("could not load product details") })
		}
		m.detail = msg.product
		return m, nil

	case authResultMsg:
		return m.handleAuthResult(msg)

	case profileLoadedMsg:
		if msg.err != nil {
			return m.showToast(func() { m.deps.Toasts.Error("could not load your profile") })
		}
		m.profile = msg.profile
		return m, nil

	case logoutDoneMsg:
		m.profile = nil
		m.viewMode = HomeView
		if msg.err != nil {
			return m.showToast(func() { m.deps.Toasts.Error("sign out failed") })
		}
		return m.showToast(func() { m.deps.Toasts.Info("signed out") })

	case clearFormErrorMsg:
		if msg.seq == m.formErrorSeq {
			m.formError = ""
		}
		return m, nil

	case toastTickMsg:
		if len(m.deps.Toasts.Messages()) > 0 {
			return m, toastTickCmd()
		}
		m.toastTicking = false
		return m, nil
	}

	return m, nil
}

// showToast runs fn (which posts to the notifier) and makes sure the
// repaint ticker is running so expiry is visible.
func (m Model) showToast(fn func()) (Model, tea.Cmd) {
	fn()
	if m.toastTicking {
		return m, nil
	}
	m.toastTicking = true
	return m, toastTickCmd()
}

// appendToast is showToast for call sites batching several commands.
func (m Model) appendToast(cmds []tea.Cmd, fn func()) (Model, []tea.Cmd) {
	var cmd tea.Cmd
	m, cmd = m.showToast(fn)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, cmds
}

func (m Model) setFormError(text string) (Model, tea.Cmd) {
	m.formError = text
	m.formErrorSeq++
	return m, clearFormErrorCmd(m.formErrorSeq)
}

func (m Model) handleAuthResult(msg authResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logging.Session("auth failed: %v", msg.err)
		return m.setFormError(msg.err.Error())
	}
	if msg.resp == nil || msg.resp.Token == "" {
		reason := "authentication failed"
		if msg.resp != nil && msg.resp.Message != "" {
			reason = msg.resp.Message
		}
		return m.setFormError(reason)
	}

	m.loginForm.reset()
	m.signupForm.reset()
	m.formError = ""
	m.viewMode = HomeView
	m.cursor = 0

	greeting := "welcome back"
	if msg.signup {
		greeting = "account created, welcome"
	}
	if name := m.deps.Session.Name(); name != "" {
		greeting = fmt.Sprintf("%s, %s", greeting, name)
	}

	var cmds []tea.Cmd
	m, cmds = m.appendToast(cmds, func() { m.deps.Toasts.Success(greeting) })
	cmds = append(cmds, m.loadHomeCmd())
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys work everywhere
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	if m.searchFocused {
		return m.handleSearchKey(msg)
	}

	switch m.viewMode {
	case LoginView:
		return m.handleLoginKey(msg)
	case SignupView:
		return m.handleSignupKey(msg)
	}

	if m.detail != nil || m.detailLoading {
		return m.handleDetailKey(msg)
	}

	// Browse-mode keys
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "/":
		m.searchFocused = true
		m.searchInput.Focus()
		return m, nil

	case "1", "h":
		return m.switchTo(HomeView)
	case "2", "c":
		return m.switchTo(CategoriesView)
	case "3", "t":
		return m.switchTo(CartView)
	case "4", "p":
		return m.switchTo(ProfileView)
	case "5", "l":
		return m.switchTo(LoginView)
	case "6", "s":
		return m.switchTo(SignupView)

	case "o":
		if m.deps.Session.IsLoggedIn() {
			return m, m.logoutCmd()
		}
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return m, nil

	case "left":
		return m.changePage(-1)
	case "right":
		return m.changePage(+1)

	case "b", "esc":
		if m.viewMode == CategoriesView && m.deps.Categories.Selected() != nil {
			m.deps.Categories.Reset()
			m.cursor = 0
		}
		return m, nil

	case "d":
		if m.viewMode == CartView {
			return m.handleCartKey(msg)
		}
		if p, ok := m.selectedProduct(); ok {
			m.detailLoading = true
			return m, m.loadProductDetailCmd(p.ID)
		}
		return m, nil

	case "enter":
		return m.handleEnter()
	}

	if m.viewMode == CartView {
		return m.handleCartKey(msg)
	}
	return m, nil
}

// handleDetailKey runs while the detail card is up. Enter adds the freshly
// fetched product to the cart; b, esc, or d put the list back.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc", "d":
		m.detail = nil
		m.detailLoading = false
		return m, nil
	case "enter":
		if m.detail != nil {
			p := *m.detail
			m.deps.Cart.Add(p, 1)
			return m.showToast(func() { m.deps.Toasts.Success(fmt.Sprintf("added %s to cart", p.Name)) })
		}
	case "q":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// selectedProduct is the product under the cursor in the active product
// list, if there is one.
func (m Model) selectedProduct() (catalog.Product, bool) {
	var products []catalog.Product
	switch m.viewMode {
	case HomeView:
		products = m.deps.Products.Filtered()
	case CategoriesView:
		if m.deps.Categories.Selected() == nil {
			return catalog.Product{}, false
		}
		products = m.deps.Categories.Filtered()
	default:
		return catalog.Product{}, false
	}
	if m.cursor >= len(products) {
		return catalog.Product{}, false
	}
	return products[m.cursor], true
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searchFocused = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.deps.Query.Set(m.searchInput.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = HomeView
		return m, nil
	case "tab", "down":
		m.loginForm.next()
		return m, nil
	case "shift+tab", "up":
		m.loginForm.prev()
		return m, nil
	case "enter":
		creds := m.loginForm.credentials()
		if err := session.ValidateCredentials(creds); err != nil {
			return m.setFormError(err.Error())
		}
		return m, m.loginCmd(creds)
	}

	cmd := m.loginForm.update(msg)
	return m, cmd
}

func (m Model) handleSignupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = HomeView
		return m, nil
	case "tab", "down":
		m.signupForm.next()
		return m, nil
	case "shift+tab", "up":
		m.signupForm.prev()
		return m, nil
	case "enter":
		reg := m.signupForm.registration()
		if err := session.ValidateRegistration(reg); err != nil {
			return m.setFormError(err.Error())
		}
		return m, m.registerCmd(reg)
	}

	cmd := m.signupForm.update(msg)
	return m, cmd
}

// switchTo changes the active view and kicks off whatever load it needs.
// Re-entering a view always re-fetches; re-entering the category view
// while inside a category returns to the category index first.
func (m Model) switchTo(view ViewMode) (tea.Model, tea.Cmd) {
	m.cursor = 0
	m.formError = ""
	m.detail = nil
	m.detailLoading = false

	switch view {
	case SignupView:
		if m.deps.Session.IsLoggedIn() {
			m.viewMode = HomeView
			var cmds []tea.Cmd
			m, cmds = m.appendToast(cmds, func() { m.deps.Toasts.Info("you are already signed in") })
			cmds = append(cmds, m.loadHomeCmd())
			return m, tea.Batch(cmds...)
		}
		m.signupForm.reset()
		m.viewMode = SignupView
		return m, nil

	case LoginView:
		if m.deps.Session.IsLoggedIn() {
			m.viewMode = ProfileView
			return m, m.loadProfileCmd()
		}
		m.loginForm.reset()
		m.viewMode = LoginView
		return m, nil

	case ProfileView:
		if !m.deps.Session.IsLoggedIn() {
			m.viewMode = LoginView
			return m.showToast(func() { m.deps.Toasts.Info("sign in to see your profile") })
		}
		m.viewMode = ProfileView
		return m, m.loadProfileCmd()

	case CategoriesView:
		if m.viewMode == CategoriesView {
			m.deps.Categories.Reset()
		}
		m.viewMode = CategoriesView
		return m, m.loadCategoriesCmd()

	case HomeView:
		m.viewMode = HomeView
		return m, m.loadHomeCmd()

	case CartView:
		m.viewMode = CartView
		return m, nil
	}

	m.viewMode = view
	return m, nil
}

// listLen is the number of rows the active view's list currently shows.
func (m Model) listLen() int {
	switch m.viewMode {
	case HomeView:
		return len(m.deps.Products.Filtered())
	case CategoriesView:
		if m.deps.Categories.Selected() == nil {
			return len(m.deps.Categories.Categories())
		}
		return len(m.deps.Categories.Filtered())
	case CartView:
		return len(m.deps.Cart.Items())
	}
	return 0
}

func (m Model) changePage(delta int) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case HomeView:
		return m, m.loadProductsCmd(m.deps.Products.CurrentPage() + delta)
	case CategoriesView:
		if m.deps.Categories.Selected() != nil {
			return m, m.changeCategoryPageCmd(m.deps.Categories.CurrentPage() + delta)
		}
	}
	return m, nil
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case HomeView:
		products := m.deps.Products.Filtered()
		if m.cursor < len(products) {
			p := products[m.cursor]
			m.deps.Cart.Add(p, 1)
			return m.showToast(func() { m.deps.Toasts.Success(fmt.Sprintf("added %s to cart", p.Name)) })
		}

	case CategoriesView:
		if m.deps.Categories.Selected() == nil {
			return m, m.selectCategoryCmd(m.cursor)
		}
		products := m.deps.Categories.Filtered()
		if m.cursor < len(products) {
			p := products[m.cursor]
			m.deps.Cart.Add(p, 1)
			return m.showToast(func() { m.deps.Toasts.Success(fmt.Sprintf("added %s to cart", p.Name)) })
		}
	}
	return m, nil
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.deps.Cart.Items()
	if m.cursor >= len(items) {
		return m, nil
	}
	item := items[m.cursor]

	switch msg.String() {
	case "+", "=":
		m.deps.Cart.SetQuantity(item.Product.ID, item.Quantity+1)
		return m, nil
	case "-":
		m.deps.Cart.SetQuantity(item.Product.ID, item.Quantity-1)
		if m.cursor >= m.listLen() && m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "x", "d":
		m.deps.Cart.Remove(item.Product.ID)
		if m.cursor >= m.listLen() && m.cursor > 0 {
			m.cursor--
		}
		return m.showToast(func() { m.deps.Toasts.Info(fmt.Sprintf("removed %s", item.Product.Name)) })
	case "D":
		m.deps.Cart.Clear()
		m.cursor = 0
		return m.showToast(func() { m.deps.Toasts.Info("cart cleared") })
	}
	return m, nil
}

// States the spinner should show for.
func (m Model) isLoading() bool {
	switch m.viewMode {
	case HomeView:
		return m.deps.Products.State() == listing.StateLoading
	case CategoriesView:
		if m.deps.Categories.Selected() == nil {
			return m.deps.Categories.CategoriesState() == listing.StateLoading
		}
		return m.deps.Categories.ProductsState() == listing.StateLoading
	}
	return false
}
