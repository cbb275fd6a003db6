package scheduler

import (
	"context"
	"testing"

	"github.com/opsdesk/portal/internal/config"
	ierr "github.com/opsdesk/portal/internal/errors"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := New(config.GetDefaultConfig(), logger.NewNoopLogger())
	require.NoError(t, err)
	return s
}

func TestScheduler_Register(t *testing.T) {
	s := newScheduler(t)
	noop := func(ctx context.Context) error { return nil }

	require.NoError(t, s.Register("effortsheet-sync", "0 22 * * *", noop))
	require.NoError(t, s.Register("disabled", "", noop))

	entries := s.Entries()
	assert.Len(t, entries, 1)
	assert.Contains(t, entries, "effortsheet-sync")

	err := s.Register("broken", "not a schedule", noop)
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidConfiguration(err))
}

func TestScheduler_RunAttachesRequestID(t *testing.T) {
	s := newScheduler(t)

	var requestID string
	s.run("request_id_check", func(ctx context.Context) error {
		requestID = types.GetRequestID(ctx)
		return nil
	})
	assert.NotEmpty(t, requestID)
}
