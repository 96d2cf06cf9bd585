package stats

import (
	"context"

	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/model"
	"github.com/schoolhub/library-service/pkg/kafka"
)

type Service struct {
	log  *zap.Logger
	repo Repository
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

// GetStats returns the per-book circulation summary.
func (s *Service) GetStats(ctx context.Context) (model.CirculationStats, error) {
	return s.repo.GetStats(ctx)
}

// Record used by the kafka consumer.
func (s *Service) Record(ctx context.Context, ev kafka.ChangeEvent) error {
	return s.repo.Record(ctx, ev)
}
