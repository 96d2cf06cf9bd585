package calendar

import (
	"context"

	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/model"
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

func (s *Service) Add(ctx context.Context, req model.AddEventRequest) (model.Event, error) {
	return s.repo.CreateEvent(ctx, req)
}

func (s *Service) List(ctx context.Context) ([]model.Event, error) {
	return s.repo.ListEvents(ctx)
}
