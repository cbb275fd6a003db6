package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/opsdesk/portal/internal/logger"
)

// tracedQuerier logs every statement it runs. Failed statements are logged
// at error level, slow ones at warn level and the rest at debug level.
type tracedQuerier struct {
	Querier
	logger *logger.Logger
	txID   string
	slow   time.Duration
}

func (q *tracedQuerier) trace(query string, args any) func(error) {
	start := time.Now()
	return func(err error) {
		elapsed := time.Since(start)
		fields := []any{
			"duration_ms", elapsed.Milliseconds(),
			"query", query,
			"args", fmt.Sprintf("%+v", args),
		}
		if q.txID != "" {
			fields = append(fields, "tx_id", q.txID)
		}

		switch {
		case err != nil && !errors.Is(err, sql.ErrNoRows):
			q.logger.Errorw("query failed", append(fields, "error", err)...)
		case q.slow > 0 && elapsed >= q.slow:
			q.logger.Warnw("slow query", fields...)
		default:
			q.logger.Debugw("query done", fields...)
		}
	}
}

func (q *tracedQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	done := q.trace(query, args)
	res, err := q.Querier.ExecContext(ctx, query, args...)
	done(err)
	return res, err
}

func (q *tracedQuerier) NamedExec(query string, arg any) (sql.Result, error) {
	done := q.trace(query, arg)
	res, err := q.Querier.NamedExec(query, arg)
	done(err)
	return res, err
}

func (q *tracedQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	done := q.trace(query, args)
	rows, err := q.Querier.QueryContext(ctx, query, args...)
	done(err)
	return rows, err
}

func (q *tracedQuerier) NamedQuery(query string, arg any) (*sqlx.Rows, error) {
	done := q.trace(query, arg)
	rows, err := q.Querier.NamedQuery(query, arg)
	done(err)
	return rows, err
}

func (q *tracedQuerier) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	done := q.trace(query, args)
	err := q.Querier.GetContext(ctx, dest, query, args...)
	done(err)
	return err
}

func (q *tracedQuerier) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	done := q.trace(query, args)
	err := q.Querier.SelectContext(ctx, dest, query, args...)
	done(err)
	return err
}
