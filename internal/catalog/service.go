package catalog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/model"
	"github.com/schoolhub/library-service/internal/notify"
	"github.com/schoolhub/library-service/pkg/kafka"
)

type Service struct {
	log      *zap.Logger
	repo     Repository
	notifier notify.Notifier
}

func NewService(repo Repository, notifier notify.Notifier, log *zap.Logger) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		notifier: notifier,
	}
}

func (s *Service) AddBook(ctx context.Context, req model.AddBookRequest) (model.Book, error) {
	book, err := s.repo.CreateBook(ctx, req)
	if err != nil {
		return model.Book{}, err
	}
	s.notifier.Publish(kafka.ChangeEvent{
		Timestamp: time.Now().UTC(),
		EventType: kafka.EventBookAdded,
		BookID:    book.ID,
	})
	return book, nil
}

func (s *Service) ListBooks(ctx context.Context, filter model.ListBooksFilter) (model.ListBooks, error) {
	return s.repo.ListBooks(ctx, filter)
}

func (s *Service) GetBook(ctx context.Context, bookID int) (model.Book, error) {
	return s.repo.GetBook(ctx, bookID)
}

func (s *Service) AvailableCopies(ctx context.Context, bookID int) (int, error) {
	book, err := s.repo.GetBook(ctx, bookID)
	if err != nil {
		return 0, err
	}
	return book.Available, nil
}
