package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"product-details/internal/domain"
)

// ProductWriter stores catalog products.
type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// Products is the demo catalog used for manual testing.
func Products() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Title:       "Fjallraven Foldsack No. 1 Backpack",
			Description: "Your perfect pack for everyday use and walks in the forest.",
			Price:       decimal.RequireFromString("109.95"),
			Image:       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
			Category:    "men's clothing",
			Rating:      domain.Rating{Rate: 3.9, Count: 120},
		},
		{
			ID:          "2",
			Title:       "Mens Casual Premium Slim Fit T-Shirts",
			Description: "Slim-fitting style, contrast raglan long sleeve.",
			Price:       decimal.RequireFromString("22.3"),
			Image:       "https://fakestoreapi.com/img/71-3HjGNDUL._AC_SY879._SX._UX._SY._UY_.jpg",
			Category:    "men's clothing",
			Rating:      domain.Rating{Rate: 4.1, Count: 259},
		},
		{
			ID:          "3",
			Title:       "Mens Cotton Jacket",
			Description: "Great outerwear jacket for Spring, Autumn and Winter.",
			Price:       decimal.RequireFromString("55.99"),
			Image:       "https://fakestoreapi.com/img/71li-ujtlUL._AC_UX679_.jpg",
			Category:    "men's clothing",
			Rating:      domain.Rating{Rate: 4.7, Count: 500},
		},
		{
			ID:          "5",
			Title:       "John Hardy Women's Legends Naga Bracelet",
			Description: "From our Legends Collection, inspired by the mythical water dragon.",
			Price:       decimal.RequireFromString("695"),
			Image:       "https://fakestoreapi.com/img/71pWzhdJNwL._AC_UL640_QL65_ML3_.jpg",
			Category:    "jewelery",
			Rating:      domain.Rating{Rate: 4.6, Count: 400},
		},
	}
}

// Apply upserts the demo catalog. It is idempotent.
func Apply(ctx context.Context, w ProductWriter) (int, error) {
	n := 0
	for _, p := range Products() {
		if _, err := w.Upsert(ctx, p); err != nil {
			return n, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
		n++
	}
	return n, nil
}
