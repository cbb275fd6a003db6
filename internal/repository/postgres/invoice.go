package postgres

import (
	"context"

	"github.com/opsdesk/portal/internal/domain/invoice"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
	"github.com/opsdesk/portal/internal/types"
)

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

const invoiceColumns = `id, client_id, project_id, invoice_number, currency, amount, gst, tds,
	amount_paid, bank_charges, conversion_rate, conversion_rate_diff, period_start, period_end,
	sent_on, due_on, payment_at, invoice_status, status, created_at, updated_at, created_by, updated_by`

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (
			id, client_id, project_id, invoice_number, currency, amount, gst, tds,
			amount_paid, bank_charges, conversion_rate, conversion_rate_diff, period_start, period_end,
			sent_on, due_on, payment_at, invoice_status, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :client_id, :project_id, :invoice_number, :currency, :amount, :gst, :tds,
			:amount_paid, :bank_charges, :conversion_rate, :conversion_rate_diff, :period_start, :period_end,
			:sent_on, :due_on, :payment_at, :invoice_status, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating invoice",
		"invoice_id", inv.ID,
		"client_id", inv.ClientID,
		"invoice_number", inv.InvoiceNumber,
	)

	_, err := r.db.NamedExecContext(ctx, query, inv)
	return wrapErr(err, "invoice", inv.ID)
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND status != $2`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &inv, query, id, types.StatusDeleted); err != nil {
		return nil, wrapErr(err, "invoice", id)
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	w := &whereBuilder{}
	var qf *types.QueryFilter
	if filter != nil {
		qf = filter.QueryFilter
		if filter.ClientID != "" {
			w.add("client_id = ?", filter.ClientID)
		}
		if filter.Year != 0 {
			w.add("EXTRACT(YEAR FROM sent_on) = ?", filter.Year)
		}
		if filter.Currency != "" {
			w.add("currency = ?", filter.Currency)
		}
	}
	w.status("status", qf)
	query := `SELECT ` + invoiceColumns + ` FROM invoices` + w.sql() + w.page("sent_on", qf)

	var invoices []*invoice.Invoice
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &invoices, query, w.args...); err != nil {
		return nil, wrapErr(err, "invoice", "")
	}
	return invoices, nil
}

func (r *invoiceRepository) CountForClientInMonth(ctx context.Context, clientID string, year int, month int) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM invoices
		WHERE client_id = $1
			AND EXTRACT(YEAR FROM sent_on) = $2
			AND EXTRACT(MONTH FROM sent_on) = $3`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, clientID, year, month); err != nil {
		return 0, wrapErr(err, "invoice", clientID)
	}
	return count, nil
}

func (r *invoiceRepository) ClientIDsInvoicedInMonth(ctx context.Context, year int, month int) ([]string, error) {
	var ids []string
	query := `
		SELECT DISTINCT client_id FROM invoices
		WHERE EXTRACT(YEAR FROM sent_on) = $1
			AND EXTRACT(MONTH FROM sent_on) = $2
			AND status != $3`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &ids, query, year, month, types.StatusDeleted); err != nil {
		return nil, wrapErr(err, "invoice", "")
	}
	return ids, nil
}
