package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/types"
)

type txKey struct{}

// Tx is a top level transaction. Nested WithTx calls on the same context
// run inside savepoints of it.
type Tx struct {
	*sqlx.Tx
	ID    string
	depth int
}

// GetTx returns the transaction bound to ctx, if any
func GetTx(ctx context.Context) (*Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*Tx)
	return tx, ok
}

func (tx *Tx) savepoint() string {
	return fmt.Sprintf("sp_%d", tx.depth)
}

func (db *DB) exec(ctx context.Context, tx *Tx, stmt string) error {
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return ierr.WithError(err).
			WithMessage(stmt).
			WithHint("Database transaction failed").
			Mark(ierr.ErrDatabase)
	}
	db.logger.Debugw(stmt, "tx_id", tx.ID)
	return nil
}

// begin opens a transaction, or a savepoint when ctx already carries one
func (db *DB) begin(ctx context.Context) (context.Context, *Tx, error) {
	if tx, ok := GetTx(ctx); ok {
		tx.depth++
		if err := db.exec(ctx, tx, "SAVEPOINT "+tx.savepoint()); err != nil {
			tx.depth--
			return ctx, nil, err
		}
		return ctx, tx, nil
	}

	sqlxTx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return ctx, nil, ierr.WithError(err).
			WithHint("Could not start a database transaction").
			Mark(ierr.ErrDatabase)
	}

	tx := &Tx{Tx: sqlxTx, ID: types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TX)}
	db.logger.Debugw("transaction started", "tx_id", tx.ID)
	return context.WithValue(ctx, txKey{}, tx), tx, nil
}

func (db *DB) commit(ctx context.Context, tx *Tx) error {
	if tx.depth > 0 {
		defer func() { tx.depth-- }()
		return db.exec(ctx, tx, "RELEASE SAVEPOINT "+tx.savepoint())
	}

	if err := tx.Commit(); err != nil {
		return ierr.WithError(err).
			WithHint("Could not commit the database transaction").
			Mark(ierr.ErrDatabase)
	}
	db.logger.Debugw("transaction committed", "tx_id", tx.ID)
	return nil
}

func (db *DB) rollback(ctx context.Context, tx *Tx) error {
	if tx.depth > 0 {
		defer func() { tx.depth-- }()
		return db.exec(ctx, tx, "ROLLBACK TO SAVEPOINT "+tx.savepoint())
	}

	if err := tx.Rollback(); err != nil {
		return ierr.WithError(err).
			WithHint("Could not roll back the database transaction").
			Mark(ierr.ErrDatabase)
	}
	db.logger.Debugw("transaction rolled back", "tx_id", tx.ID)
	return nil
}

// WithTx runs fn in a transaction bound to the context it receives. An
// error or panic from fn rolls back; a nested call only rolls back to its
// own savepoint.
func (db *DB) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, tx, err := db.begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			db.logger.Errorw("panic in transaction", "tx_id", tx.ID, "panic", r)
			_ = db.rollback(ctx, tx)
			panic(r)
		}
	}()

	if err := fn(ctx); err != nil {
		if rbErr := db.rollback(ctx, tx); rbErr != nil {
			db.logger.Errorw("rollback failed", "tx_id", tx.ID, "error", rbErr)
		}
		return err
	}

	return db.commit(ctx, tx)
}
