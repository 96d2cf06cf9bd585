package handler

import (
	"context"

	"github.com/schoolhub/library-service/internal/calendar"
	"github.com/schoolhub/library-service/internal/catalog"
	"github.com/schoolhub/library-service/internal/loan"
	"github.com/schoolhub/library-service/internal/membership"
	"github.com/schoolhub/library-service/internal/model"
	"github.com/schoolhub/library-service/internal/recommend"
	"github.com/schoolhub/library-service/internal/review"
	"github.com/schoolhub/library-service/internal/stats"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type CatalogService interface {
	AddBook(ctx context.Context, req model.AddBookRequest) (model.Book, error)
	ListBooks(ctx context.Context, filter model.ListBooksFilter) (model.ListBooks, error)
	GetBook(ctx context.Context, bookID int) (model.Book, error)
	AvailableCopies(ctx context.Context, bookID int) (int, error)
}

type MembershipService interface {
	GetStudent(ctx context.Context, studentID string) (model.Student, error)
	ListStudents(ctx context.Context, filter model.ListStudentsFilter) ([]model.Student, error)
}

type LoanService interface {
	Issue(ctx context.Context, req model.IssueLoanRequest) (model.Loan, error)
	Return(ctx context.Context, loanID string) (model.Loan, error)
	OpenFor(ctx context.Context, studentID string) ([]model.Loan, error)
	HistoryFor(ctx context.Context, studentID string) ([]model.Loan, error)
	OutstandingFines(ctx context.Context, studentID string) (model.OutstandingFines, error)
}

type ReviewService interface {
	Submit(ctx context.Context, req model.SubmitReviewRequest) (model.Review, error)
	ForBook(ctx context.Context, bookID int) ([]model.Review, error)
}

type EventService interface {
	Add(ctx context.Context, req model.AddEventRequest) (model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
}

type RecommendService interface {
	Recommend(ctx context.Context, studentID string, k int) []int
}

type StatsService interface {
	GetStats(ctx context.Context) (model.CirculationStats, error)
}

var (
	_ CatalogService    = (*catalog.Service)(nil)
	_ MembershipService = (*membership.Service)(nil)
	_ LoanService       = (*loan.Service)(nil)
	_ ReviewService     = (*review.Service)(nil)
	_ EventService      = (*calendar.Service)(nil)
	_ RecommendService  = (*recommend.Service)(nil)
	_ StatsService      = (*stats.Service)(nil)
)
