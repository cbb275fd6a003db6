package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/opsdesk/portal/internal/domain/client"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
	"github.com/opsdesk/portal/internal/types"
)

type clientRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return &clientRepository{db: db, logger: logger}
}

const clientColumns = `id, reference_number, name, email, phone, address, country_code,
	key_account_manager_id, is_channel_partner, channel_partner_id, parent_organisation_id,
	status, created_at, updated_at, created_by, updated_by`

func (r *clientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (
			id, name, email, phone, address, country_code, key_account_manager_id,
			is_channel_partner, channel_partner_id, parent_organisation_id,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :email, :phone, :address, :country_code, :key_account_manager_id,
			:is_channel_partner, :channel_partner_id, :parent_organisation_id,
			:status, :created_at, :updated_at, :created_by, :updated_by
		) RETURNING reference_number`

	r.logger.Debugw("creating client", "client_id", c.ID)

	rows, err := r.db.NamedQueryContext(ctx, query, c)
	if err != nil {
		return wrapErr(err, "client", c.ID)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&c.ReferenceNumber); err != nil {
			return wrapErr(err, "client", c.ID)
		}
	}
	return wrapErr(rows.Err(), "client", c.ID)
}

func (r *clientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	var c client.Client
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND status != $2`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id, types.StatusDeleted); err != nil {
		return nil, wrapErr(err, "client", id)
	}
	return &c, nil
}

func (r *clientRepository) where(filter *types.ClientFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter == nil {
		w.status("status", nil)
		return w
	}
	w.status("status", filter.QueryFilter)
	if len(filter.ClientIDs) > 0 {
		w.add("id = ANY(?)", pq.Array(filter.ClientIDs))
	}
	if filter.Name != "" {
		w.add("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.KeyAccountManagerID != "" {
		w.add("key_account_manager_id = ?", filter.KeyAccountManagerID)
	}
	return w
}

func (r *clientRepository) List(ctx context.Context, filter *types.ClientFilter) ([]*client.Client, error) {
	w := r.where(filter)
	var qf *types.QueryFilter
	if filter != nil {
		qf = filter.QueryFilter
	}
	query := `SELECT ` + clientColumns + ` FROM clients` + w.sql() + w.page("created_at", qf)

	var clients []*client.Client
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &clients, query, w.args...); err != nil {
		return nil, wrapErr(err, "client", "")
	}
	return clients, nil
}

func (r *clientRepository) Count(ctx context.Context, filter *types.ClientFilter) (int, error) {
	w := r.where(filter)
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, `SELECT COUNT(*) FROM clients`+w.sql(), w.args...); err != nil {
		return 0, wrapErr(err, "client", "")
	}
	return count, nil
}

func (r *clientRepository) Update(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients SET
			name = :name,
			email = :email,
			phone = :phone,
			address = :address,
			country_code = :country_code,
			key_account_manager_id = :key_account_manager_id,
			is_channel_partner = :is_channel_partner,
			channel_partner_id = :channel_partner_id,
			parent_organisation_id = :parent_organisation_id,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating client", "client_id", c.ID)

	_, err := r.db.NamedExecContext(ctx, query, c)
	return wrapErr(err, "client", c.ID)
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE clients SET
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("deleting client", "client_id", id)

	_, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":         id,
		"status":     types.StatusDeleted,
		"updated_by": types.GetUserID(ctx),
		"updated_at": time.Now().UTC(),
	})
	return wrapErr(err, "client", id)
}

func (r *clientRepository) GetBillingDetail(ctx context.Context, clientID string) (*client.BillingDetail, error) {
	var d client.BillingDetail
	query := `
		SELECT id, client_id, service_rate, billing_day, status, created_at, updated_at, created_by, updated_by
		FROM client_billing_details
		WHERE client_id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &d, query, clientID); err != nil {
		return nil, wrapErr(err, "billing detail", clientID)
	}
	return &d, nil
}

func (r *clientRepository) UpsertBillingDetail(ctx context.Context, d *client.BillingDetail) error {
	query := `
		INSERT INTO client_billing_details (
			id, client_id, service_rate, billing_day, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :client_id, :service_rate, :billing_day, :status, :created_at, :updated_at, :created_by, :updated_by
		)
		ON CONFLICT (client_id) DO UPDATE SET
			service_rate = EXCLUDED.service_rate,
			billing_day = EXCLUDED.billing_day,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by`

	r.logger.Debugw("upserting billing detail", "client_id", d.ClientID)

	_, err := r.db.NamedExecContext(ctx, query, d)
	return wrapErr(err, "billing detail", d.ClientID)
}

func (r *clientRepository) ListContacts(ctx context.Context, clientID string, contactType types.ContactPersonType) ([]*client.ContactPerson, error) {
	w := &whereBuilder{}
	w.add("client_id = ?", clientID)
	w.status("status", nil)
	if contactType != "" {
		w.add("type = ?", string(contactType))
	}
	query := `
		SELECT id, client_id, name, email, phone, type, status, created_at, updated_at, created_by, updated_by
		FROM client_contact_persons` + w.sql() + ` ORDER BY created_at ASC`

	var contacts []*client.ContactPerson
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &contacts, query, w.args...); err != nil {
		return nil, wrapErr(err, "contact person", clientID)
	}
	return contacts, nil
}

func (r *clientRepository) AddContact(ctx context.Context, c *client.ContactPerson) error {
	query := `
		INSERT INTO client_contact_persons (
			id, client_id, name, email, phone, type, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :client_id, :name, :email, :phone, :type, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("adding contact person", "client_id", c.ClientID, "type", c.Type)

	_, err := r.db.NamedExecContext(ctx, query, c)
	return wrapErr(err, "contact person", c.ID)
}
