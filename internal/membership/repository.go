package membership

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
	GetStudent(ctx context.Context, studentID string) (model.Student, error)
	ListStudents(ctx context.Context, filter model.ListStudentsFilter) ([]model.Student, error)
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

const studentsTableName = `students`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) GetStudent(ctx context.Context, studentID string) (model.Student, error) {
	q, args, err := qb.Select("id", "name", "grade", "section", "created_at").
		From(studentsTableName).
		Where(sq.Eq{"id": studentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Student{}, err
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return model.Student{}, errs.FromPg(err)
	}
	student, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Student])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Student{}, errs.ErrNotFound
		}
		return model.Student{}, errs.FromPg(err)
	}
	return student, nil
}

func (r *repository) ListStudents(ctx context.Context, filter model.ListStudentsFilter) ([]model.Student, error) {
	q := qb.Select("id", "name", "grade", "section", "created_at").
		From(studentsTableName).
		OrderBy("name")

	if filter.Grade != "" {
		q = q.Where(sq.Eq{"grade": filter.Grade})
	}
	if filter.Section != "" {
		q = q.Where(sq.Eq{"section": filter.Section})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("ListStudents", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.FromPg(err)
	}
	students, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Student])
	if err != nil {
		return nil, errs.FromPg(err)
	}
	return students, nil
}
