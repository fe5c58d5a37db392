package selection

import (
	"math"

	"github.com/shopspring/decimal"

	"product-details/internal/domain"
)

// StarSlots is the number of rating slots drawn per product.
const StarSlots = 5

var (
	detailLines = []string{
		"In Stock: Yes",
		"Shipping: Free standard shipping",
	}
	supportLines = []string{
		"30-day return policy",
		"1-year warranty",
		"24/7 customer support",
	}
)

// Card is the display model of one selected product.
type Card struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Stars       [StarSlots]bool `json:"stars"`
	ReviewCount int             `json:"reviewCount"`
	Price       string          `json:"price"`
	Details     []string        `json:"details"`
	Support     []string        `json:"support"`
}

// Page is the display model of the whole view.
type Page struct {
	Empty        bool   `json:"empty"`
	Cards        []Card `json:"cards"`
	ShowClearAll bool   `json:"showClearAll"`
	BrowseURL    string `json:"browseUrl,omitempty"`
}

// Render builds the page for the current selection.
func (v *View) Render() Page {
	if len(v.selection) == 0 {
		return EmptyPage()
	}
	cards := make([]Card, 0, len(v.selection))
	for _, p := range v.selection {
		cards = append(cards, NewCard(p))
	}
	return Page{
		Cards:        cards,
		ShowClearAll: len(v.selection) > 1,
	}
}

// EmptyPage is the page shown when nothing is selected.
func EmptyPage() Page {
	return Page{Empty: true, Cards: []Card{}, BrowseURL: RouteLanding}
}

// NewCard maps a product to its card.
func NewCard(p domain.Product) Card {
	details := make([]string, 0, len(detailLines)+1)
	details = append(details, "Category: "+p.Category)
	details = append(details, detailLines...)
	return Card{
		ID:          p.ID,
		Title:       p.Title,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		Stars:       Stars(p.Rating.Rate),
		ReviewCount: p.Rating.Count,
		Price:       FormatPrice(p.Price),
		Details:     details,
		Support:     append([]string(nil), supportLines...),
	}
}

// FilledStars rounds rate half up and clamps it to [0, StarSlots].
func FilledStars(rate float64) int {
	if math.IsNaN(rate) {
		return 0
	}
	n := math.Floor(rate + 0.5)
	if n < 0 {
		return 0
	}
	if n > StarSlots {
		return StarSlots
	}
	return int(n)
}

// Stars reports, per slot, whether it renders filled.
func Stars(rate float64) [StarSlots]bool {
	var out [StarSlots]bool
	filled := FilledStars(rate)
	for i := range out {
		out[i] = i < filled
	}
	return out
}

// FormatPrice renders price with exactly two decimals.
func FormatPrice(price decimal.Decimal) string {
	return price.StringFixed(2)
}
