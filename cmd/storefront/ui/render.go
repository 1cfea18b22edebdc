package ui

import (
	"fmt"
	"strings"

	"storefront/internal/catalog"
)

// Stars renders a five-star rating bar. Ratings round to the nearest half
// star: full stars, then at most one half star, padded with empty stars.
func Stars(rating float64) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	// Round to nearest half
	halves := int(rating*2 + 0.5)
	full := halves / 2
	half := halves % 2

	var sb strings.Builder
	for i := 0; i < full; i++ {
		sb.WriteString("★")
	}
	if half == 1 {
		sb.WriteString("⯨")
	}
	for i := full + half; i < 5; i++ {
		sb.WriteString("☆")
	}
	return sb.String()
}

// FormatPrice renders a price in rupees with two decimals.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("₹%.2f", amount)
}

// PriceLine renders a product's price, showing the original struck out next
// to the discounted price when a discount applies.
func PriceLine(s Styles, p catalog.Product) string {
	if p.Discount <= 0 {
		return s.Price.Render(FormatPrice(p.Price))
	}
	return fmt.Sprintf("%s %s %s",
		s.Price.Render(FormatPrice(catalog.DiscountedPrice(p))),
		s.OldPrice.Render(FormatPrice(p.Price)),
		s.Discount.Render(fmt.Sprintf("-%.0f%%", p.Discount)),
	)
}

// ProductRow renders one product line for a list view.
func ProductRow(s Styles, p catalog.Product, selected bool) string {
	name := p.Name
	if len(name) > 40 {
		name = name[:37] + "..."
	}

	stock := s.Muted.Render(fmt.Sprintf("%d in stock", p.Stock))
	if p.Stock == 0 {
		stock = s.Error.Render("out of stock")
	}

	line := fmt.Sprintf("%-40s  %s %s  %s  %s",
		name,
		s.Stars.Render(Stars(p.Rating)),
		s.Muted.Render(fmt.Sprintf("(%d)", p.NumReviews)),
		PriceLine(s, p),
		stock,
	)

	if selected {
		return s.Selected.Render("> " + line)
	}
	return "  " + line
}

// Pagination renders a "page X of Y" footer with the total item count.
func Pagination(s Styles, page, pages, total int) string {
	return s.Muted.Render(fmt.Sprintf("page %d of %d · %d products · ←/→ to change page", page, pages, total))
}
