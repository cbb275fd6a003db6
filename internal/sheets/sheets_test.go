package sheets

import (
	"context"
	"testing"

	"github.com/opsdesk/portal/internal/config"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSpreadsheetID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "edit link",
			url:  "https://docs.google.com/spreadsheets/d/1AbCdEfGhIjKlMnOpQrStUvWxYz0123456789/edit#gid=0",
			want: "1AbCdEfGhIjKlMnOpQrStUvWxYz0123456789",
		},
		{
			name: "id with dashes and underscores",
			url:  "https://docs.google.com/spreadsheets/d/1a-b_c-d_e-f_g-h_i-j_k-l_m/",
			want: "1a-b_c-d_e-f_g-h_i-j_k-l_m",
		},
		{
			name:    "too short",
			url:     "https://docs.google.com/spreadsheets/d/short/edit",
			wantErr: true,
		},
		{
			name:    "empty",
			url:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractSpreadsheetID(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringRows(t *testing.T) {
	rows := stringRows([][]interface{}{
		{"Team Member", "Billable Effort"},
		{"alice", "12.5", 3},
	})
	assert.Equal(t, [][]string{
		{"Team Member", "Billable Effort"},
		{"alice", "12.5", ""},
	}, rows)
}

func TestNewReader_Unconfigured(t *testing.T) {
	cfg := config.GetDefaultConfig()
	r, err := NewReader(cfg, nil, nil, logger.NewNoopLogger())
	require.NoError(t, err)

	_, err = r.ReadRange(context.Background(), "sheet", "C1:Z1")
	assert.True(t, ierr.IsConfiguration(err))
}

type stubReader struct {
	calls int
}

func (s *stubReader) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	s.calls++
	return [][]string{{spreadsheetID, rng}}, nil
}

func TestNewRateLimitedReader(t *testing.T) {
	inner := &stubReader{}
	assert.Same(t, Reader(inner), NewRateLimitedReader(inner, 0))

	r := NewRateLimitedReader(inner, 60)
	rows, err := r.ReadRange(context.Background(), "sheet", "C1:Z1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"sheet", "C1:Z1"}}, rows)

	// the single token is spent, so a cancelled context cannot wait for the next one
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.ReadRange(ctx, "sheet", "C2:G3")
	assert.True(t, ierr.IsHTTPClient(err))
	assert.Equal(t, 1, inner.calls)
}
