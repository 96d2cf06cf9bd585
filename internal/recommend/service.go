package recommend

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/model"
)

type LoanReader interface {
	HistoryFor(ctx context.Context, studentID string) ([]model.Loan, error)
	OpenFor(ctx context.Context, studentID string) ([]model.Loan, error)
}

type ReviewReader interface {
	ByStudent(ctx context.Context, studentID string) ([]model.Review, error)
}

type CatalogReader interface {
	ListBooks(ctx context.Context, filter model.ListBooksFilter) (model.ListBooks, error)
}

// Service derives book suggestions from a student's borrow history and
// reviews. It is advisory and best-effort: any failure to score yields an
// empty result, never an error.
type Service struct {
	log     *zap.Logger
	loans   LoanReader
	reviews ReviewReader
	catalog CatalogReader
	now     func() time.Time
}

func NewService(loans LoanReader, reviews ReviewReader, catalog CatalogReader, log *zap.Logger) *Service {
	return &Service{
		log:     log,
		loans:   loans,
		reviews: reviews,
		catalog: catalog,
		now:     time.Now,
	}
}

const highRating = 4

// Recommend returns up to k distinct book ids not currently on loan to the
// student, best score first, ties broken by book id ascending.
func (s *Service) Recommend(ctx context.Context, studentID string, k int) []int {
	if k <= 0 {
		return []int{}
	}

	history, err := s.loans.HistoryFor(ctx, studentID)
	if err != nil {
		s.log.Warn("recommend: history", zap.Error(err))
		return []int{}
	}
	reviews, err := s.reviews.ByStudent(ctx, studentID)
	if err != nil {
		s.log.Warn("recommend: reviews", zap.Error(err))
		return []int{}
	}
	if len(history) == 0 && len(reviews) == 0 {
		return []int{}
	}

	books, err := s.catalog.ListBooks(ctx, model.ListBooksFilter{})
	if err != nil {
		s.log.Warn("recommend: catalog", zap.Error(err))
		return []int{}
	}
	byID := make(map[int]model.Book, len(books.Items))
	for _, b := range books.Items {
		byID[b.ID] = b
	}

	genreAff := make(map[model.Genre]float64)
	authorAff := make(map[string]float64)

	now := s.now()
	for _, ln := range history {
		b, ok := byID[ln.BookID]
		if !ok {
			continue
		}
		w := recencyWeight(now.Sub(ln.BorrowDate))
		genreAff[b.Genre] += w
		authorAff[b.Author] += w
	}
	for _, rv := range reviews {
		if rv.Rating < highRating {
			continue
		}
		b, ok := byID[rv.BookID]
		if !ok {
			continue
		}
		bonus := float64(rv.Rating - highRating + 1)
		genreAff[b.Genre] += bonus
		authorAff[b.Author] += bonus
	}

	onLoan := make(map[int]struct{})
	open, err := s.loans.OpenFor(ctx, studentID)
	if err != nil {
		s.log.Warn("recommend: open loans", zap.Error(err))
		return []int{}
	}
	for _, ln := range open {
		onLoan[ln.BookID] = struct{}{}
	}

	type scored struct {
		id    int
		score float64
	}
	candidates := make([]scored, 0, len(books.Items))
	for _, b := range books.Items {
		if _, held := onLoan[b.ID]; held {
			continue
		}
		score := genreAff[b.Genre] + authorAff[b.Author]
		if score <= 0 {
			continue
		}
		candidates = append(candidates, scored{id: b.ID, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	ids := make([]int, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.id)
	}
	return ids
}

// recencyWeight decays a borrow's influence with its age: a loan from this
// month counts near 1.0, one from a year ago near 0.08.
func recencyWeight(age time.Duration) float64 {
	const month = 30 * 24 * time.Hour
	if age < 0 {
		age = 0
	}
	return 1.0 / (1.0 + float64(age)/float64(month))
}
