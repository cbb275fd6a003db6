package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/opsdesk/portal/internal/domain/client"
	"github.com/opsdesk/portal/internal/domain/project"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
	"github.com/opsdesk/portal/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*postgres.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return postgres.NewFromSQLX(sqlx.NewDb(mockDB, "postgres"), logger.NewNoopLogger()), mock
}

var clientCols = []string{
	"id", "reference_number", "name", "email", "phone", "address", "country_code",
	"key_account_manager_id", "is_channel_partner", "channel_partner_id", "parent_organisation_id",
	"status", "created_at", "updated_at", "created_by", "updated_by",
}

func TestClientRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, logger.NewNoopLogger())
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE id = $1 AND status != $2")).
		WithArgs("client_1", types.StatusDeleted).
		WillReturnRows(sqlmock.NewRows(clientCols).AddRow(
			"client_1", 7, "Acme", "billing@acme.test", "", "", "IN",
			nil, false, nil, nil,
			"active", now, now, "", "",
		))

	c, err := repo.Get(context.Background(), "client_1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, "007", c.ReferenceID())
	assert.Equal(t, types.CurrencyINR, c.Currency())
	assert.Nil(t, c.KeyAccountManagerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, logger.NewNoopLogger())

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE id = $1")).
		WillReturnRows(sqlmock.NewRows(clientCols))

	_, err := repo.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestClientRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, logger.NewNoopLogger())

	c := &client.Client{
		ID:          "client_2",
		Name:        "Globex",
		CountryCode: lo.ToPtr("US"),
		BaseModel:   types.GetDefaultBaseModel(context.Background()),
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clients")).
		WillReturnRows(sqlmock.NewRows([]string{"reference_number"}).AddRow(12))

	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, int64(12), c.ReferenceNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_List_Filters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, logger.NewNoopLogger())

	filter := types.NewClientFilter()
	filter.Name = "acme"

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE status != $1 AND name ILIKE $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4")).
		WithArgs("deleted", "%acme%", 50, 0).
		WillReturnRows(sqlmock.NewRows(clientCols))

	clients, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, clients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_BillingDetail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, logger.NewNoopLogger())
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM client_billing_details")).
		WithArgs("client_1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "client_id", "service_rate", "billing_day", "status", "created_at", "updated_at", "created_by", "updated_by",
		}).AddRow("bill_1", "client_1", "25.50", nil, "active", now, now, "", ""))

	d, err := repo.GetBillingDetail(context.Background(), "client_1")
	require.NoError(t, err)
	require.NotNil(t, d.ServiceRate)
	assert.True(t, decimal.RequireFromString("25.5").Equal(*d.ServiceRate))
	assert.Nil(t, d.BillingDay)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (client_id) DO UPDATE")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	d.BillingDay = lo.ToPtr(15)
	require.NoError(t, repo.UpsertBillingDetail(context.Background(), d))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_AddContact_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientRepository(db, logger.NewNoopLogger())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO client_contact_persons")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "client_contact_persons_pkey"})

	err := repo.AddContact(context.Background(), &client.ContactPerson{ID: "contact_1", ClientID: "client_1"})
	require.Error(t, err)
	assert.True(t, ierr.IsAlreadyExists(err))
}

func TestEffortRepository_GetLatestBefore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEffortRepository(db, logger.NewNoopLogger())
	now := time.Now().UTC()
	day := types.NewDate(2024, time.March, 10)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE project_team_member_id = $1 AND added_on < $2")).
		WithArgs("ptm_1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "project_team_member_id", "added_on", "actual_effort", "total_effort_in_effortsheet", "created_at", "updated_at",
		}).AddRow("effort_1", "ptm_1", time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), "4", "36", now, now))

	e, err := repo.GetLatestBefore(context.Background(), "ptm_1", day)
	require.NoError(t, err)
	assert.Equal(t, types.NewDate(2024, time.March, 9), e.AddedOn)
	assert.True(t, decimal.NewFromInt(36).Equal(e.TotalEffort))

	mock.ExpectQuery(regexp.QuoteMeta("added_on < $2")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetLatestBefore(context.Background(), "ptm_2", day)
	assert.True(t, ierr.IsNotFound(err))
}

func TestEffortRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEffortRepository(db, logger.NewNoopLogger())

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (project_team_member_id, added_on) DO UPDATE")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &project.Effort{
		ID:           "effort_1",
		TeamMemberID: "ptm_1",
		AddedOn:      types.NewDate(2024, time.March, 10),
		ActualEffort: decimal.NewFromInt(4),
		TotalEffort:  decimal.NewFromInt(40),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEffortRepository_ListInRange_NoMembers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEffortRepository(db, logger.NewNoopLogger())

	efforts, err := repo.ListInRange(context.Background(), nil, types.NewDate(2024, time.March, 1), types.NewDate(2024, time.March, 31))
	require.NoError(t, err)
	assert.Empty(t, efforts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepository_CountForClientInMonth(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db, logger.NewNoopLogger())

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM invoices\s+WHERE client_id = \$1\s+AND EXTRACT\(YEAR FROM sent_on\) = \$2\s+AND EXTRACT\(MONTH FROM sent_on\) = \$3$`).
		WithArgs("client_1", 2024, 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountForClientInMonth(context.Background(), "client_1", 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecruitmentRepository_DailyApplicantCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecruitmentRepository(db, logger.NewNoopLogger())

	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY day")).
		WillReturnRows(sqlmock.NewRows([]string{"day", "count"}).
			AddRow(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), 3).
			AddRow(time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), 1))

	counts, err := repo.DailyApplicantCounts(context.Background(), types.NewDate(2024, time.March, 1), types.NewDate(2024, time.March, 31))
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "Mar 04", counts[0].Label())
	assert.Equal(t, 3, counts[0].Count)
}
