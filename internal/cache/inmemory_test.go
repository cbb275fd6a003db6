package cache

import (
	"context"
	"testing"
	"time"

	"github.com/opsdesk/portal/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	c := NewInMemoryCache(cfg)

	key := GenerateKey(PrefixSalaryConfiguration, "default")
	assert.Equal(t, "salary_configuration:v1::default", key)

	c.Set(ctx, key, 42, time.Minute)
	v, ok := c.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	c.Set(ctx, GenerateKey(PrefixBillingDetail, "client_1"), "a", 0)
	c.DeleteByPrefix(ctx, PrefixBillingDetail)
	_, ok = c.Get(ctx, GenerateKey(PrefixBillingDetail, "client_1"))
	assert.False(t, ok)

	c.Delete(ctx, key)
	_, ok = c.Get(ctx, key)
	assert.False(t, ok)
}

func TestInMemoryCache_Disabled(t *testing.T) {
	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	cfg.Cache.Enabled = false
	c := NewInMemoryCache(cfg)

	c.Set(ctx, "k", "v", time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}
