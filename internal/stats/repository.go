package stats

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/schoolhub/library-service/internal/model"
	"github.com/schoolhub/library-service/pkg/kafka"
)

type Repository interface {
	Record(ctx context.Context, ev kafka.ChangeEvent) error
	GetStats(ctx context.Context) (model.CirculationStats, error)
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

func (r *repository) Record(ctx context.Context, ev kafka.ChangeEvent) error {
	q := `insert into circulation_events (timestamp, event_type, book_id, student_id, loan_id)
	values (@timestamp, @event_type, @book_id, @student_id, @loan_id)`
	args := pgx.NamedArgs{
		"timestamp":  ev.Timestamp,
		"event_type": ev.EventType,
		"book_id":    ev.BookID,
		"student_id": nullable(ev.StudentID),
		"loan_id":    nullable(ev.LoanID),
	}
	_, err := r.db.Exec(ctx, q, args)
	return err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *repository) GetStats(ctx context.Context) (model.CirculationStats, error) {
	const q = `
	select book_id,
	       coalesce(count(*) filter (where event_type = 'loan-issued'), 0) as issued,
	       coalesce(count(*) filter (where event_type = 'loan-returned'), 0) as returned,
	       max(timestamp) as last_activity
	from circulation_events
	group by book_id
	order by book_id
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return model.CirculationStats{}, err
	}
	defer rows.Close()
	data, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.BookCirculation])
	if err != nil {
		return model.CirculationStats{}, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	return model.CirculationStats{Data: data}, nil
}
