package loan

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/errs"
	"github.com/schoolhub/library-service/internal/model"
)

// CopyKeeper is the slice of the catalog the ledger mutates. Both methods
// run on the ledger's transaction so the copy count and the loan row are
// committed together or not at all.
type CopyKeeper interface {
	ReserveCopy(ctx context.Context, tx pgx.Tx, bookID int) error
	ReleaseCopy(ctx context.Context, tx pgx.Tx, bookID int) error
}

type Repository interface {
	CreateLoan(ctx context.Context, bookID int, studentID string, borrow, due time.Time) (model.Loan, error)
	ReturnLoan(ctx context.Context, loanID string, returnedAt time.Time, ratePerDay float64) (model.Loan, error)
	OpenLoans(ctx context.Context, studentID string) ([]model.Loan, error)
	History(ctx context.Context, studentID string) ([]model.Loan, error)
	OutstandingFines(ctx context.Context, studentID string) (float64, error)
}

type repository struct {
	db     *pgxpool.Pool
	copies CopyKeeper
	log    *zap.Logger
}

func NewRepository(db *pgxpool.Pool, copies CopyKeeper, log *zap.Logger) (*repository, error) {
	return &repository{
		db:     db,
		copies: copies,
		log:    log.Named("repo"),
	}, nil
}

const loansTableName = `loans`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const loanColumns = `id, book_id, student_id, borrow_date, due_date, return_date, returned, fine`

func (r *repository) CreateLoan(ctx context.Context, bookID int, studentID string, borrow, due time.Time) (model.Loan, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Loan{}, errs.FromPg(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := r.copies.ReserveCopy(ctx, tx, bookID); err != nil {
		return model.Loan{}, err
	}

	q, args, err := qb.Insert(loansTableName).
		Columns("id", "book_id", "student_id", "borrow_date", "due_date", "returned").
		Values(uuid.New(), bookID, studentID, borrow, due, false).
		Suffix("returning " + loanColumns).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	rows, err := tx.Query(ctx, q, args...)
	if err != nil {
		return model.Loan{}, errs.FromPg(err)
	}
	ln, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		r.log.Error("CreateLoan", zap.String("q", q), zap.Any("args", args))
		return model.Loan{}, errs.FromPg(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Loan{}, errs.FromPg(err)
	}
	return ln, nil
}

func (r *repository) ReturnLoan(ctx context.Context, loanID string, returnedAt time.Time, ratePerDay float64) (model.Loan, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Loan{}, errs.FromPg(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	// conditional transition keeps the double-return rejected and the fine
	// computed exactly once
	const transition = `
update loans set returned = true, return_date = $2
where id = $1 and not returned
returning book_id, due_date`

	var (
		bookID int
		due    time.Time
	)
	if err := tx.QueryRow(ctx, transition, loanID, returnedAt).Scan(&bookID, &due); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, r.missingOrReturned(ctx, loanID)
		}
		return model.Loan{}, errs.FromPg(err)
	}

	if fine := Fine(due, returnedAt, ratePerDay); fine > 0 {
		if _, err := tx.Exec(ctx, `update loans set fine = $2 where id = $1`, loanID, fine); err != nil {
			return model.Loan{}, errs.FromPg(err)
		}
	}

	if err := r.copies.ReleaseCopy(ctx, tx, bookID); err != nil {
		return model.Loan{}, err
	}

	rows, err := tx.Query(ctx, `select `+loanColumns+` from loans where id = $1`, loanID)
	if err != nil {
		return model.Loan{}, errs.FromPg(err)
	}
	ln, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		return model.Loan{}, errs.FromPg(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Loan{}, errs.FromPg(err)
	}
	return ln, nil
}

func (r *repository) missingOrReturned(ctx context.Context, loanID string) error {
	var ok bool
	if err := r.db.QueryRow(ctx, `select exists(select 1 from loans where id = $1)`, loanID).Scan(&ok); err != nil {
		return errs.FromPg(err)
	}
	if ok {
		return errs.ErrAlreadyReturned
	}
	return errs.ErrNotFound
}

func (r *repository) OpenLoans(ctx context.Context, studentID string) ([]model.Loan, error) {
	// soonest due first surfaces urgency
	return r.selectLoans(ctx, qb.Select(loanColumns).
		From(loansTableName).
		Where(sq.Eq{"student_id": studentID, "returned": false}).
		OrderBy("due_date asc"))
}

func (r *repository) History(ctx context.Context, studentID string) ([]model.Loan, error) {
	return r.selectLoans(ctx, qb.Select(loanColumns).
		From(loansTableName).
		Where(sq.Eq{"student_id": studentID}).
		OrderBy("borrow_date desc"))
}

func (r *repository) selectLoans(ctx context.Context, q sq.SelectBuilder) ([]model.Loan, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.FromPg(err)
	}
	loans, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Loan])
	if err != nil {
		return nil, errs.FromPg(err)
	}
	return loans, nil
}

func (r *repository) OutstandingFines(ctx context.Context, studentID string) (float64, error) {
	const q = `
select coalesce(sum(fine), 0) from loans
where student_id = $1 and fine > 0`
	var total float64
	if err := r.db.QueryRow(ctx, q, studentID).Scan(&total); err != nil {
		return 0, errs.FromPg(err)
	}
	return total, nil
}
