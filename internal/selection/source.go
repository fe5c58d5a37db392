package selection

import "product-details/internal/domain"

// SourceList is the parent-owned product list the view mirrors. Updates are
// whole-value replacements; subscribers run synchronously inside Set.
type SourceList struct {
	products    []domain.Product
	subscribers []func([]domain.Product)
}

// NewSourceList returns a source list holding a copy of products.
func NewSourceList(products []domain.Product) *SourceList {
	return &SourceList{products: clone(products)}
}

// Products returns a copy of the current value.
func (s *SourceList) Products() []domain.Product {
	return clone(s.products)
}

// Len reports the number of products in the current value.
func (s *SourceList) Len() int {
	return len(s.products)
}

// Set replaces the list and notifies every subscriber with the new value.
func (s *SourceList) Set(products []domain.Product) {
	s.products = clone(products)
	for _, fn := range s.subscribers {
		fn(clone(s.products))
	}
}

// Subscribe registers fn and immediately delivers the current value, the same
// way a freshly mounted view observes its input.
func (s *SourceList) Subscribe(fn func([]domain.Product)) {
	s.subscribers = append(s.subscribers, fn)
	fn(clone(s.products))
}

func clone(products []domain.Product) []domain.Product {
	if products == nil {
		return nil
	}
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

func without(products []domain.Product, id string) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
