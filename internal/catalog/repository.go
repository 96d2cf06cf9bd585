package catalog

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/errs"
	"github.com/schoolhub/library-service/internal/model"
)

type Repository interface {
	CreateBook(ctx context.Context, req model.AddBookRequest) (model.Book, error)
	ListBooks(ctx context.Context, filter model.ListBooksFilter) (model.ListBooks, error)
	GetBook(ctx context.Context, bookID int) (model.Book, error)
	ReserveCopy(ctx context.Context, tx pgx.Tx, bookID int) error
	ReleaseCopy(ctx context.Context, tx pgx.Tx, bookID int) error
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

const booksTableName = `books`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) CreateBook(ctx context.Context, req model.AddBookRequest) (model.Book, error) {
	q, args, err := qb.Insert(booksTableName).
		Columns("name", "author", "genre", "total_count", "on_loan_count").
		Values(req.Name, req.Author, req.Genre, req.Copies, 0).
		Suffix("returning id, name, author, genre, total_count, on_loan_count").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	book, err := scanBook(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		r.log.Error("CreateBook", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, errs.FromPg(err)
	}
	return book, nil
}

func (r *repository) GetBook(ctx context.Context, bookID int) (model.Book, error) {
	q, args, err := qb.Select("id", "name", "author", "genre", "total_count", "on_loan_count").
		From(booksTableName).
		Where(sq.Eq{"id": bookID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	book, err := scanBook(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, errs.FromPg(err)
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context, filter model.ListBooksFilter) (model.ListBooks, error) {
	q := qb.Select("id", "name", "author", "genre", "total_count", "on_loan_count").
		From(booksTableName).
		OrderBy("id")

	if filter.Genre != "" {
		q = q.Where(sq.Eq{"genre": filter.Genre})
	}
	if filter.AvailableOnly {
		q = q.Where("on_loan_count < total_count")
	}
	if filter.Page != 0 && filter.Size != 0 {
		q = q.Limit(uint64(filter.Size)).Offset(uint64((filter.Page - 1) * filter.Size))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.ListBooks{}, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return model.ListBooks{}, errs.FromPg(err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return model.ListBooks{}, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return model.ListBooks{}, errs.FromPg(err)
	}

	return model.ListBooks{
		Paging: model.Paging{
			Page:          filter.Page,
			PageSize:      filter.Size,
			TotalElements: len(books),
		},
		Items: books,
	}, nil
}

// ReserveCopy increments on_loan_count iff a copy is free. It is a single
// conditional UPDATE so two issuances racing for the last copy cannot both
// win, and it runs on the caller's transaction so the loan row commits with
// the count change.
func (r *repository) ReserveCopy(ctx context.Context, tx pgx.Tx, bookID int) error {
	const q = `
update books set on_loan_count = on_loan_count + 1
where id = $1 and on_loan_count < total_count`
	tag, err := tx.Exec(ctx, q, bookID)
	if err != nil {
		return errs.FromPg(err)
	}
	if tag.RowsAffected() == 0 {
		if ok, err := r.bookExists(ctx, tx, bookID); err != nil {
			return err
		} else if !ok {
			return errs.ErrNotFound
		}
		return errs.ErrNoCopyAvailable
	}
	return nil
}

// ReleaseCopy decrements on_loan_count, refusing to go negative.
func (r *repository) ReleaseCopy(ctx context.Context, tx pgx.Tx, bookID int) error {
	const q = `
update books set on_loan_count = on_loan_count - 1
where id = $1 and on_loan_count > 0`
	tag, err := tx.Exec(ctx, q, bookID)
	if err != nil {
		return errs.FromPg(err)
	}
	if tag.RowsAffected() == 0 {
		if ok, err := r.bookExists(ctx, tx, bookID); err != nil {
			return err
		} else if !ok {
			return errs.ErrNotFound
		}
		r.log.Error("ReleaseCopy would drop on_loan_count below zero", zap.Int("bookID", bookID))
		return errs.ErrInvariantViolation
	}
	return nil
}

func (r *repository) bookExists(ctx context.Context, tx pgx.Tx, bookID int) (bool, error) {
	var ok bool
	if err := tx.QueryRow(ctx, `select exists(select 1 from books where id = $1)`, bookID).Scan(&ok); err != nil {
		return false, errs.FromPg(err)
	}
	return ok, nil
}

func scanBook(row pgx.Row) (model.Book, error) {
	var b model.Book
	if err := row.Scan(&b.ID, &b.Name, &b.Author, &b.Genre, &b.TotalCount, &b.OnLoanCount); err != nil {
		return model.Book{}, err
	}
	b.Available = b.TotalCount - b.OnLoanCount
	return b, nil
}
