package membership

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

func (s *Service) GetStudent(ctx context.Context, studentID string) (model.Student, error) {
	return s.repo.GetStudent(ctx, studentID)
}

func (s *Service) ListStudents(ctx context.Context, filter model.ListStudentsFilter) ([]model.Student, error) {
	return s.repo.ListStudents(ctx, filter)
}
