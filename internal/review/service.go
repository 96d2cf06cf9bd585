package review

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/model"
	"github.com/schoolhub/library-service/internal/notify"
	"github.com/schoolhub/library-service/pkg/kafka"
)

type BookGetter interface {
	GetBook(ctx context.Context, bookID int) (model.Book, error)
}

type StudentGetter interface {
	GetStudent(ctx context.Context, studentID string) (model.Student, error)
}

type Service struct {
	log      *zap.Logger
	repo     Repository
	books    BookGetter
	students StudentGetter
	notifier notify.Notifier
}

func NewService(repo Repository, books BookGetter, students StudentGetter, notifier notify.Notifier, log *zap.Logger) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		books:    books,
		students: students,
		notifier: notifier,
	}
}

func (s *Service) Submit(ctx context.Context, req model.SubmitReviewRequest) (model.Review, error) {
	if _, err := s.books.GetBook(ctx, req.BookID); err != nil {
		return model.Review{}, err
	}
	if _, err := s.students.GetStudent(ctx, req.StudentID); err != nil {
		return model.Review{}, err
	}
	rv, err := s.repo.CreateReview(ctx, req)
	if err != nil {
		return model.Review{}, err
	}
	s.notifier.Publish(kafka.ChangeEvent{
		Timestamp: time.Now().UTC(),
		EventType: kafka.EventReviewAdded,
		BookID:    rv.BookID,
		StudentID: rv.StudentID,
	})
	return rv, nil
}

func (s *Service) ForBook(ctx context.Context, bookID int) ([]model.Review, error) {
	return s.repo.ReviewsForBook(ctx, bookID)
}

func (s *Service) ByStudent(ctx context.Context, studentID string) ([]model.Review, error) {
	return s.repo.ReviewsByStudent(ctx, studentID)
}
