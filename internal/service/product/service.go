package product

import (
	"context"
	"fmt"
	"strings"

	"product-details/internal/domain"
	productrepo "product-details/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Resolve turns a list of ids into products, keeping the caller's order.
// Blank ids are ignored; unknown ids are dropped.
func (s *Service) Resolve(ctx context.Context, ids []string) ([]domain.Product, error) {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			cleaned = append(cleaned, id)
		}
	}
	if len(cleaned) == 0 {
		return nil, nil
	}
	products, err := s.repo.GetByIDs(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}
	return products, nil
}
