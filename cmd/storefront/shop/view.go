package shop

import (
	"fmt"
	"strings"

	"storefront/cmd/storefront/ui"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/listing"
	"storefront/internal/toast"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.renderSearchBar())
	sb.WriteString("\n\n")

	switch m.viewMode {
	case HomeView:
		sb.WriteString(m.renderHome())
	case CategoriesView:
		sb.WriteString(m.renderCategories())
	case CartView:
		sb.WriteString(m.renderCart())
	case ProfileView:
		sb.WriteString(m.renderProfile())
	case LoginView:
		sb.WriteString(m.renderAuthForm(m.loginForm.view(m.styles)))
	case SignupView:
		sb.WriteString(m.renderAuthForm(m.signupForm.view(m.styles)))
	}

	if toasts := m.renderToasts(); toasts != "" {
		sb.WriteString("\n")
		sb.WriteString(toasts)
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m Model) renderHeader() string {
	s := m.styles

	title := s.Header.Render(" Storefront ")

	nav := make([]string, 0, 6)
	for _, v := range []ViewMode{HomeView, CategoriesView, CartView, ProfileView, LoginView, SignupView} {
		label := v.String()
		if v == CartView {
			if n := m.deps.Cart.TotalCount(); n > 0 {
				label = fmt.Sprintf("%s %s", label, s.Badge.Render(fmt.Sprintf("%d", n)))
			}
		}
		if v == m.viewMode {
			label = s.Selected.Render(label)
		} else {
			label = s.Muted.Render(label)
		}
		nav = append(nav, label)
	}

	who := s.Muted.Render("guest")
	if m.deps.Session.IsLoggedIn() {
		who = s.Success.Render(m.deps.Session.Email())
	}

	return fmt.Sprintf("%s  %s  %s", title, strings.Join(nav, " · "), who)
}

func (m Model) renderSearchBar() string {
	if m.searchFocused {
		return m.searchInput.View()
	}
	if q := m.deps.Query.Query(); q != "" {
		return m.styles.Muted.Render(fmt.Sprintf("filter: %q (press / to edit)", q))
	}
	return m.styles.Muted.Render("press / to search")
}

func (m Model) renderHome() string {
	s := m.styles

	if out, ok := m.renderDetailOverlay(); ok {
		return out
	}
	if m.isLoading() {
		return fmt.Sprintf("%s loading products...", m.spinner.View())
	}

	var sb strings.Builder
	sb.WriteString(s.Title.Render("Products") + "\n")
	if m.deps.Products.UsingFallback() {
		sb.WriteString(s.Warning.Render("offline catalog") + "\n")
	}

	products := m.deps.Products.Filtered()
	sb.WriteString(m.renderProductList(products))

	sb.WriteString("\n")
	sb.WriteString(ui.Pagination(s, m.deps.Products.CurrentPage(), m.deps.Products.TotalPages(), m.deps.Products.TotalCount()))
	return sb.String()
}

func (m Model) renderCategories() string {
	s := m.styles

	if out, ok := m.renderDetailOverlay(); ok {
		return out
	}
	if selected := m.deps.Categories.Selected(); selected != nil {
		if m.isLoading() {
			return fmt.Sprintf("%s loading %s...", m.spinner.View(), selected.Name)
		}
		if err := m.deps.Categories.ProductsErr(); err != nil {
			return s.Error.Render("could not load this category") + "\n" + s.Muted.Render("press b to go back")
		}

		var sb strings.Builder
		sb.WriteString(s.Title.Render(selected.Name) + "\n")
		sb.WriteString(m.renderProductList(m.deps.Categories.Filtered()))
		sb.WriteString("\n")
		sb.WriteString(ui.Pagination(s, m.deps.Categories.CurrentPage(), m.deps.Categories.TotalPages(), m.deps.Categories.TotalCount()))
		sb.WriteString("\n" + s.Muted.Render("b: back to categories"))
		return sb.String()
	}

	if m.deps.Categories.CategoriesState() == listing.StateLoading {
		return fmt.Sprintf("%s loading categories...", m.spinner.View())
	}
	if err := m.deps.Categories.CategoriesErr(); err != nil {
		return s.Error.Render("could not load categories")
	}

	var sb strings.Builder
	sb.WriteString(s.Title.Render("Categories") + "\n")
	cats := m.deps.Categories.Categories()
	if len(cats) == 0 {
		sb.WriteString(s.Muted.Render("no categories"))
		return sb.String()
	}
	for i, cat := range cats {
		line := cat.Name
		if cat.Slug != "" {
			line = fmt.Sprintf("%s %s", cat.Name, s.Muted.Render("("+cat.Slug+")"))
		}
		if i == m.cursor {
			sb.WriteString(s.Selected.Render("> "+line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}
	sb.WriteString("\n" + s.Muted.Render("enter: browse category"))
	return sb.String()
}

// renderProductList renders rows plus a detail card for the selection.
func (m Model) renderProductList(products []catalog.Product) string {
	s := m.styles

	if len(products) == 0 {
		if m.deps.Query.Query() != "" {
			return s.Muted.Render("nothing on this page matches your search")
		}
		return s.Muted.Render("no products")
	}

	var sb strings.Builder
	for i, p := range products {
		sb.WriteString(ui.ProductRow(s, p, i == m.cursor))
		sb.WriteString("\n")
	}

	if m.cursor < len(products) {
		sb.WriteString("\n")
		sb.WriteString(m.renderProductDetail(products[m.cursor]))
	}
	return sb.String()
}

// renderDetailOverlay replaces the product list with the single-product
// fetch while it is loading or showing.
func (m Model) renderDetailOverlay() (string, bool) {
	if m.detailLoading {
		return fmt.Sprintf("%s loading product...", m.spinner.View()), true
	}
	if m.detail != nil {
		return m.renderProductDetail(*m.detail) + "\n" +
			m.styles.Muted.Render("enter: add to cart · b: back to list"), true
	}
	return "", false
}

func (m Model) renderProductDetail(p catalog.Product) string {
	s := m.styles

	var sb strings.Builder
	sb.WriteString(s.Bold.Render(p.Name))
	if p.Brand != "" {
		sb.WriteString(s.Muted.Render("  by " + p.Brand))
	}
	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render(p.CategoryID.DisplayName()))
	if p.SKU != "" {
		sb.WriteString(s.Muted.Render("  · " + p.SKU))
	}
	sb.WriteString("\n")
	sb.WriteString(ui.PriceLine(s, p))
	sb.WriteString("\n")
	if p.Stock > 0 {
		sb.WriteString(s.Muted.Render(fmt.Sprintf("%d in stock", p.Stock)))
	} else {
		sb.WriteString(s.Error.Render("out of stock"))
	}
	sb.WriteString("\n")
	if specs := attributeLine(p.Attributes); specs != "" {
		sb.WriteString(s.Muted.Render(specs))
		sb.WriteString("\n")
	}

	if p.Description != "" {
		desc := p.Description
		if m.renderer != nil {
			if rendered, err := m.renderer.Render(desc); err == nil {
				desc = strings.TrimSpace(rendered)
			}
		}
		sb.WriteString(desc)
		sb.WriteString("\n")
	}

	sb.WriteString(s.Muted.Render("enter: add to cart"))
	return s.Card.Render(sb.String())
}

// attributeLine joins the non-empty descriptive attributes into one line.
func attributeLine(a catalog.Attributes) string {
	parts := make([]string, 0, 3)
	if a.Color != "" {
		parts = append(parts, "color: "+a.Color)
	}
	if a.Material != "" {
		parts = append(parts, "material: "+a.Material)
	}
	if a.Warranty != "" {
		parts = append(parts, "warranty: "+a.Warranty)
	}
	return strings.Join(parts, " · ")
}

func (m Model) renderCart() string {
	s := m.styles

	items := m.deps.Cart.Items()
	if len(items) == 0 {
		return s.Title.Render("Cart") + "\n" + s.Muted.Render("your cart is empty")
	}

	var sb strings.Builder
	sb.WriteString(s.Title.Render("Cart") + "\n")
	for i, item := range items {
		sb.WriteString(m.renderCartRow(item, i == m.cursor))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.RenderDivider(60) + "\n")
	sb.WriteString(fmt.Sprintf("%s %s  %s\n",
		s.Bold.Render("Total:"),
		s.Price.Render(ui.FormatPrice(m.deps.Cart.TotalValue())),
		s.Muted.Render(fmt.Sprintf("%d items", m.deps.Cart.TotalCount())),
	))
	sb.WriteString(s.Muted.Render("+/-: quantity · x: remove · D: clear cart"))
	return sb.String()
}

func (m Model) renderCartRow(item cart.Item, selected bool) string {
	s := m.styles

	unit := catalog.DiscountedPrice(item.Product)
	line := fmt.Sprintf("%-36s  x%-3d  %s  %s",
		item.Product.Name,
		item.Quantity,
		s.Muted.Render(ui.FormatPrice(unit)+" each"),
		s.Price.Render(ui.FormatPrice(unit*float64(item.Quantity))),
	)

	if selected {
		return s.Selected.Render("> " + line)
	}
	return "  " + line
}

func (m Model) renderProfile() string {
	s := m.styles

	var sb strings.Builder
	sb.WriteString(s.Title.Render("Profile") + "\n")
	sb.WriteString(fmt.Sprintf("%s %s\n", s.Bold.Render("Name:"), m.deps.Session.Name()))
	sb.WriteString(fmt.Sprintf("%s %s\n", s.Bold.Render("Email:"), m.deps.Session.Email()))
	sb.WriteString(fmt.Sprintf("%s %s\n", s.Bold.Render("Role:"), m.deps.Session.Role()))
	if phone := m.deps.Session.Phone(); phone != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", s.Bold.Render("Phone:"), phone))
	}
	sb.WriteString("\n" + s.Muted.Render("o: sign out"))
	return sb.String()
}

func (m Model) renderAuthForm(form string) string {
	if m.formError != "" {
		form += "\n\n" + m.styles.Error.Render(m.formError)
	}
	return form
}

func (m Model) renderToasts() string {
	msgs := m.deps.Toasts.Messages()
	if len(msgs) == 0 {
		return ""
	}

	s := m.styles
	var sb strings.Builder
	for _, msg := range msgs {
		var style = s.Info
		switch msg.Kind {
		case toast.KindSuccess:
			style = s.Success
		case toast.KindError:
			style = s.Error
		case toast.KindWarning:
			style = s.Warning
		}
		sb.WriteString(style.Render("• "+msg.Text) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderFooter() string {
	help := "1-6: views · /: search · ↑/↓: select · enter: add · d: details · q: quit"
	switch m.viewMode {
	case LoginView, SignupView:
		help = "tab: next field · enter: submit · esc: back"
	case CartView:
		help = "↑/↓: select · +/-: quantity · x: remove · q: quit"
	}
	return m.styles.Footer.Render(help)
}
