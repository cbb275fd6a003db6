package testutil

import (
	"context"
	"sync"

	"github.com/opsdesk/portal/internal/logger"
	"github.com/opsdesk/portal/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient runs transactional callbacks inline and counts them
type MockPostgresClient struct {
	mu     sync.Mutex
	logger *logger.Logger
	txs    int
	// PingErr is returned by Ping when set
	PingErr error
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes the given function without a real transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.mu.Lock()
	c.txs++
	c.mu.Unlock()
	return fn(ctx)
}

// TxCount reports how many transactions were started
func (c *MockPostgresClient) TxCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.txs
}

func (c *MockPostgresClient) Ping(ctx context.Context) error {
	return c.PingErr
}
