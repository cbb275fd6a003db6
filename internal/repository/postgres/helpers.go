package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/types"
)

const pqUniqueViolation = "23505"

// wrapErr maps driver errors onto the application sentinels
func wrapErr(err error, entity string, id string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			WithReportableDetails(map[string]any{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ierr.WithError(err).
			WithHintf("%s already exists", entity).
			WithReportableDetails(map[string]any{
				"constraint": pqErr.Constraint,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	return ierr.WithError(err).
		WithHintf("Failed to access %s", entity).
		Mark(ierr.ErrDatabase)
}

// whereBuilder accumulates positional conditions
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) add(cond string, args ...interface{}) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// status excludes deleted rows unless the filter asks for a status explicitly
func (w *whereBuilder) status(column string, f *types.QueryFilter) {
	if f != nil && f.Status != nil {
		w.add(column+" = ?", string(*f.Status))
		return
	}
	w.add(column+" != ?", string(types.StatusDeleted))
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// page appends ordering and pagination for a list query
func (w *whereBuilder) page(orderColumn string, f *types.QueryFilter) string {
	order := "DESC"
	if f != nil && f.GetOrder() == types.OrderAsc {
		order = "ASC"
	}
	clause := fmt.Sprintf(" ORDER BY %s %s", orderColumn, order)
	if f == nil || f.IsUnlimited() {
		return clause
	}
	w.args = append(w.args, f.GetLimit(), f.GetOffset())
	return clause + fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}
