package recorder

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"product-details/internal/domain"
)

// Service records products sent to a named shelf such as "cart" or
// "wishlist". It only logs and counts; nothing is persisted.
type Service struct {
	name   string
	logger *zap.Logger

	mu     sync.Mutex
	counts map[string]int
}

func New(name string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		name:   name,
		logger: logger.With(zap.String("shelf", name)),
		counts: make(map[string]int),
	}
}

// Name returns the shelf name.
func (s *Service) Name() string {
	return s.name
}

// Record notes one notification for p.
func (s *Service) Record(ctx context.Context, p domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.counts[p.ID]++
	n := s.counts[p.ID]
	s.mu.Unlock()

	s.logger.Info("added to "+s.name,
		zap.String("product_id", p.ID),
		zap.String("title", p.Title),
		zap.Int("times", n),
	)
	return nil
}

// Count reports how many times id was recorded.
func (s *Service) Count(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[id]
}
