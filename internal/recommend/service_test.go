package recommend_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/model"
	"github.com/schoolhub/library-service/internal/recommend"
)

type fakeLoans struct {
	history []model.Loan
	open    []model.Loan
}

func (f *fakeLoans) HistoryFor(context.Context, string) ([]model.Loan, error) {
	return f.history, nil
}

func (f *fakeLoans) OpenFor(context.Context, string) ([]model.Loan, error) {
	return f.open, nil
}

type fakeReviews struct {
	reviews []model.Review
}

func (f *fakeReviews) ByStudent(context.Context, string) ([]model.Review, error) {
	return f.reviews, nil
}

type fakeCatalog struct {
	books []model.Book
}

func (f *fakeCatalog) ListBooks(context.Context, model.ListBooksFilter) (model.ListBooks, error) {
	return model.ListBooks{Items: f.books}, nil
}

func newBooks() []model.Book {
	return []model.Book{
		{ID: 1, Name: "Dune", Author: "Herbert", Genre: model.GenreFiction, TotalCount: 2},
		{ID: 2, Name: "Dune Messiah", Author: "Herbert", Genre: model.GenreFiction, TotalCount: 1},
		{ID: 3, Name: "A Brief History of Time", Author: "Hawking", Genre: model.GenreScience, TotalCount: 1},
		{ID: 4, Name: "The Hobbit", Author: "Tolkien", Genre: model.GenreFantasy, TotalCount: 3},
		{ID: 5, Name: "Children of Dune", Author: "Herbert", Genre: model.GenreFiction, TotalCount: 1},
	}
}

func TestRecommend_NoSignalIsEmpty(t *testing.T) {
	t.Parallel()
	svc := recommend.NewService(&fakeLoans{}, &fakeReviews{}, &fakeCatalog{books: newBooks()}, zap.NewNop())

	got := svc.Recommend(context.Background(), "6b8e7c1e-58a8-4c3f-9c86-8f7ad7b3a001", 3)
	require.Empty(t, got)
}

func TestRecommend_ZeroK(t *testing.T) {
	t.Parallel()
	loans := &fakeLoans{history: []model.Loan{{BookID: 1, BorrowDate: time.Now().AddDate(0, 0, -3)}}}
	svc := recommend.NewService(loans, &fakeReviews{}, &fakeCatalog{books: newBooks()}, zap.NewNop())

	require.Empty(t, svc.Recommend(context.Background(), "student", 0))
}

func TestRecommend_GenreAndAuthorAffinity(t *testing.T) {
	t.Parallel()
	now := time.Now()
	loans := &fakeLoans{
		history: []model.Loan{
			{BookID: 1, BorrowDate: now.AddDate(0, 0, -5)},
		},
	}
	svc := recommend.NewService(loans, &fakeReviews{}, &fakeCatalog{books: newBooks()}, zap.NewNop())

	got := svc.Recommend(context.Background(), "student", 3)
	// same author and genre as Dune score highest; Dune itself still
	// qualifies because it is not currently on loan to the student
	require.Equal(t, []int{1, 2, 5}, got)
}

func TestRecommend_ExcludesBooksCurrentlyOnLoan(t *testing.T) {
	t.Parallel()
	now := time.Now()
	loans := &fakeLoans{
		history: []model.Loan{
			{BookID: 1, BorrowDate: now.AddDate(0, 0, -5)},
		},
		open: []model.Loan{
			{BookID: 1, BorrowDate: now.AddDate(0, 0, -5)},
		},
	}
	svc := recommend.NewService(loans, &fakeReviews{}, &fakeCatalog{books: newBooks()}, zap.NewNop())

	got := svc.Recommend(context.Background(), "student", 3)
	require.Equal(t, []int{2, 5}, got)
}

func TestRecommend_HighRatedReviewBoosts(t *testing.T) {
	t.Parallel()
	now := time.Now()
	loans := &fakeLoans{
		history: []model.Loan{
			{BookID: 3, BorrowDate: now.AddDate(0, 0, -2)},
			{BookID: 4, BorrowDate: now.AddDate(0, -11, 0)},
		},
	}
	reviews := &fakeReviews{reviews: []model.Review{
		{BookID: 4, Rating: 5},
		{BookID: 3, Rating: 2}, // low rating adds nothing
	}}
	svc := recommend.NewService(loans, reviews, &fakeCatalog{books: newBooks()}, zap.NewNop())

	got := svc.Recommend(context.Background(), "student", 2)
	// the five-star fantasy review outweighs the recent science borrow
	require.Equal(t, []int{4, 3}, got)
}

func TestRecommend_TiesBreakByBookIDAscending(t *testing.T) {
	t.Parallel()
	now := time.Now()
	loans := &fakeLoans{
		history: []model.Loan{
			{BookID: 2, BorrowDate: now.AddDate(0, 0, -10)},
		},
	}
	svc := recommend.NewService(loans, &fakeReviews{}, &fakeCatalog{books: newBooks()}, zap.NewNop())

	// books 1, 2 and 5 share author and genre, so they tie exactly
	got := svc.Recommend(context.Background(), "student", 2)
	require.Equal(t, []int{1, 2}, got)
}
