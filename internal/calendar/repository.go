package calendar

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/errs"
	"github.com/schoolhub/library-service/internal/model"
)

type Repository interface {
	CreateEvent(ctx context.Context, req model.AddEventRequest) (model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
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

const eventsTableName = `events`

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) CreateEvent(ctx context.Context, req model.AddEventRequest) (model.Event, error) {
	q, args, err := qb.Insert(eventsTableName).
		Columns("name", "date", "audience", "description").
		Values(req.Name, req.Date, req.Audience, req.Description).
		Suffix("returning id, name, date, audience, description").
		ToSql()
	if err != nil {
		return model.Event{}, err
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return model.Event{}, errs.FromPg(err)
	}
	ev, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Event])
	if err != nil {
		r.log.Error("CreateEvent", zap.String("q", q), zap.Any("args", args))
		return model.Event{}, errs.FromPg(err)
	}
	return ev, nil
}

func (r *repository) ListEvents(ctx context.Context) ([]model.Event, error) {
	q, args, err := qb.Select("id", "name", "date", "audience", "description").
		From(eventsTableName).
		OrderBy("date asc").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, errs.FromPg(err)
	}
	events, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Event])
	if err != nil {
		return nil, errs.FromPg(err)
	}
	return events, nil
}
