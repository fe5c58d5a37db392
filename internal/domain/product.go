package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rating aggregates customer reviews for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog entry as shown on the details page.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Rating      Rating          `json:"rating"`
	CreatedAt   time.Time       `json:"createdAt"`
}
