// Package catalog implements the client for the remote shop API and the
// product/category data model. Products are read-only from the client's
// perspective; the only derived value is the discounted price.
package catalog

import (
	"encoding/json"
	"fmt"
)

// Attributes holds the free-form descriptive fields of a product.
type Attributes struct {
	Color    string `json:"color"`
	Material string `json:"material"`
	Warranty string `json:"warranty"`
}

// CategoryRef is a product's category reference. The backend returns either a
// plain string id or an embedded {_id, name} object depending on whether the
// reference was populated; both shapes decode into the same value so callers
// never branch on the wire format.
type CategoryRef struct {
	ID   string
	Name string
}

type categoryRefObject struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts both the string and the embedded-object shape.
func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		c.ID = id
		c.Name = ""
		return nil
	}

	var obj categoryRefObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("category reference is neither string nor object: %w", err)
	}
	c.ID = obj.ID
	c.Name = obj.Name
	return nil
}

// MarshalJSON writes the embedded-object shape when a name is known,
// otherwise the plain id.
func (c CategoryRef) MarshalJSON() ([]byte, error) {
	if c.Name == "" {
		return json.Marshal(c.ID)
	}
	return json.Marshal(categoryRefObject{ID: c.ID, Name: c.Name})
}

// DisplayName resolves the category name for display and filtering. An
// unpopulated reference falls back to the raw id (the slug is still useful
// as search text); an empty reference reads as "Unknown".
func (c CategoryRef) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.ID != "" {
		return c.ID
	}
	return "Unknown"
}

// Product is a sellable catalog item.
type Product struct {
	ID          string      `json:"_id"`
	Name        string      `json:"name"`
	SKU         string      `json:"sku"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Discount    float64     `json:"discount"` // percentage 0-100
	CategoryID  CategoryRef `json:"categoryId"`
	Brand       string      `json:"brand"`
	Images      []string    `json:"images"`
	Stock       int         `json:"stock"`
	Rating      float64     `json:"rating"`
	NumReviews  int         `json:"numReviews"`
	Attributes  Attributes  `json:"attributes"`
	IsFeatured  bool        `json:"isFeatured"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

// DiscountedPrice computes the effective price after the percentage discount.
func DiscountedPrice(p Product) float64 {
	return p.Price * (1 - p.Discount/100)
}

// Category is a top-level browsing category.
type Category struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ParentID  string `json:"parentId"`
	Image     string `json:"image"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}
