package loan

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/model"
	"github.com/schoolhub/library-service/internal/notify"
	"github.com/schoolhub/library-service/pkg/kafka"
)

// StudentGetter is the slice of membership the ledger needs to validate a
// borrower before lending.
type StudentGetter interface {
	GetStudent(ctx context.Context, studentID string) (model.Student, error)
}

type Service struct {
	log      *zap.Logger
	repo     Repository
	students StudentGetter
	notifier notify.Notifier
	policy   Policy
}

func NewService(repo Repository, students StudentGetter, notifier notify.Notifier, policy Policy, log *zap.Logger) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		students: students,
		notifier: notifier,
		policy:   policy,
	}
}

func (s *Service) Issue(ctx context.Context, req model.IssueLoanRequest) (model.Loan, error) {
	if _, err := s.students.GetStudent(ctx, req.StudentID); err != nil {
		return model.Loan{}, err
	}
	now := time.Now().UTC()
	ln, err := s.repo.CreateLoan(ctx, req.BookID, req.StudentID, now, now.Add(s.policy.Period()))
	if err != nil {
		return model.Loan{}, err
	}
	s.notifier.Publish(kafka.ChangeEvent{
		Timestamp: now,
		EventType: kafka.EventLoanIssued,
		BookID:    ln.BookID,
		StudentID: ln.StudentID,
		LoanID:    ln.ID,
	})
	return ln, nil
}

func (s *Service) Return(ctx context.Context, loanID string) (model.Loan, error) {
	now := time.Now().UTC()
	ln, err := s.repo.ReturnLoan(ctx, loanID, now, s.policy.FineRatePerDay)
	if err != nil {
		return model.Loan{}, err
	}
	s.notifier.Publish(kafka.ChangeEvent{
		Timestamp: now,
		EventType: kafka.EventLoanReturned,
		BookID:    ln.BookID,
		StudentID: ln.StudentID,
		LoanID:    ln.ID,
	})
	return ln, nil
}

func (s *Service) OpenFor(ctx context.Context, studentID string) ([]model.Loan, error) {
	return s.repo.OpenLoans(ctx, studentID)
}

func (s *Service) HistoryFor(ctx context.Context, studentID string) ([]model.Loan, error) {
	return s.repo.History(ctx, studentID)
}

func (s *Service) OutstandingFines(ctx context.Context, studentID string) (model.OutstandingFines, error) {
	total, err := s.repo.OutstandingFines(ctx, studentID)
	if err != nil {
		return model.OutstandingFines{}, err
	}
	return model.OutstandingFines{StudentID: studentID, Total: total}, nil
}
