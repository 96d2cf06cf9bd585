package review

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/errs"
	"github.com/schoolhub/library-service/internal/model"
)

type Repository interface {
	CreateReview(ctx context.Context, req model.SubmitReviewRequest) (model.Review, error)
	ReviewsForBook(ctx context.Context, bookID int) ([]model.Review, error)
	ReviewsByStudent(ctx context.Context, studentID string) ([]model.Review, error)
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const reviewsTableName = `book_reviews`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const reviewColumns = `id, book_id, student_id, rating, coalesce(review, '') as review, created_at`

func (r *repository) CreateReview(ctx context.Context, req model.SubmitReviewRequest) (model.Review, error) {
	q, args, err := qb.Insert(reviewsTableName).
		Columns("id", "book_id", "student_id", "rating", "review").
		Values(uuid.New(), req.BookID, req.StudentID, req.Rating, req.Review).
		Suffix("returning " + reviewColumns).
		ToSql()
	if err != nil {
		return model.Review{}, err
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return model.Review{}, errs.FromPg(err)
	}
	rv, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Review])
	if err != nil {
		r.log.Error("CreateReview", zap.String("q", q), zap.Any("args", args))
		return model.Review{}, errs.FromPg(err)
	}
	return rv, nil
}

func (r *repository) ReviewsForBook(ctx context.Context, bookID int) ([]model.Review, error) {
	return r.selectReviews(ctx, sq.Eq{"book_id": bookID})
}

func (r *repository) ReviewsByStudent(ctx context.Context, studentID string) ([]model.Review, error) {
	return r.selectReviews(ctx, sq.Eq{"student_id": studentID})
}

func (r *repository) selectReviews(ctx context.Context, pred any) ([]model.Review, error) {
	q, args, err := qb.Select(reviewColumns).
		From(reviewsTableName).
		Where(pred).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errs.FromPg(err)
	}
	reviews, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Review])
	if err != nil {
		return nil, errs.FromPg(err)
	}
	return reviews, nil
}
