package catalog

import "time"

// FallbackProducts returns the fixed catalog shown when the remote API is
// unreachable, so a failed load never leaves the product list empty.
func FallbackProducts() []Product {
	now := time.Now().UTC().Format(time.RFC3339)
	return []Product{
		{
			ID:          "1",
			Name:        "Professional DSLR Camera",
			SKU:         "CAM-001",
			Description: "High-resolution camera with advanced features for professional photography.",
			Price:       45999,
			Discount:    18,
			CategoryID:  CategoryRef{ID: "electronics"},
			Brand:       "Canon",
			Images:      []string{"/images/camera.png"},
			Stock:       25,
			Rating:      4.8,
			NumReviews:  127,
			Attributes:  Attributes{Color: "Black", Material: "Metal", Warranty: "24 Months"},
			IsFeatured:  true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "2",
			Name:        "Handcrafted Wooden Vases",
			SKU:         "HOME-002",
			Description: "Beautiful handcrafted wooden decorative vases for your home decor.",
			Price:       2499,
			Discount:    29,
			CategoryID:  CategoryRef{ID: "home-decor"},
			Brand:       "Artisan Crafts",
			Images:      []string{"/images/wooden-vases.jpg"},
			Stock:       15,
			Rating:      4.2,
			NumReviews:  89,
			Attributes:  Attributes{Color: "Brown", Material: "Wood", Warranty: "6 Months"},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "3",
			Name:        "Indoor Plant Collection",
			SKU:         "PLANT-003",
			Description: "Premium indoor plants perfect for home and office spaces.",
			Price:       899,
			Discount:    31,
			CategoryID:  CategoryRef{ID: "plants"},
			Brand:       "Green Paradise",
			Images:      []string{"/images/indoor-plants.jpg"},
			Stock:       50,
			Rating:      4.9,
			NumReviews:  203,
			Attributes:  Attributes{Color: "Green", Material: "Natural", Warranty: "30 Days"},
			IsFeatured:  true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "4",
			Name:        "Abstract Wall Art Set",
			SKU:         "ART-004",
			Description: "Modern abstract circle wall art set to beautify your living space.",
			Price:       3299,
			Discount:    34,
			CategoryID:  CategoryRef{ID: "art"},
			Brand:       "Modern Designs",
			Images:      []string{"/images/abstract-wall-art.jpg"},
			Stock:       12,
			Rating:      4.1,
			NumReviews:  67,
			Attributes:  Attributes{Color: "Multi-color", Material: "Canvas", Warranty: "12 Months"},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "5",
			Name:        "Modern Entryway Furniture",
			SKU:         "FURN-005",
			Description: "Stylish modern furniture set perfect for your home entryway.",
			Price:       15999,
			Discount:    27,
			CategoryID:  CategoryRef{ID: "furniture"},
			Brand:       "Elite Furniture",
			Images:      []string{"/images/entryway-furniture.jpg"},
			Stock:       8,
			Rating:      4.7,
			NumReviews:  156,
			Attributes:  Attributes{Color: "White", Material: "Wood & Metal", Warranty: "36 Months"},
			IsFeatured:  true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "6",
			Name:        "Wireless Bluetooth Headphones",
			SKU:         "AUDIO-006",
			Description: "Premium wireless headphones with noise cancellation technology.",
			Price:       8999,
			Discount:    31,
			CategoryID:  CategoryRef{ID: "electronics"},
			Brand:       "SoundTech",
			Images:      []string{"/images/headphones.jpg"},
			Stock:       35,
			Rating:      4.6,
			NumReviews:  341,
			Attributes:  Attributes{Color: "Black", Material: "Plastic & Metal", Warranty: "18 Months"},
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
}

// FallbackPage slices the fallback catalog the way the server paginates, so
// the view's pagination controls keep working while the API is down.
func FallbackPage(page, limit int) *ProductPage {
	all := FallbackProducts()
	if limit <= 0 {
		limit = len(all)
	}
	if page < 1 {
		page = 1
	}

	pages := (len(all) + limit - 1) / limit
	start := (page - 1) * limit
	end := start + limit
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	return &ProductPage{
		Products: all[start:end],
		Total:    len(all),
		Page:     page,
		Pages:    pages,
		Count:    end - start,
	}
}
