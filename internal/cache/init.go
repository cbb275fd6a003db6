package cache

import (
	"github.com/opsdesk/portal/internal/config"
	"github.com/opsdesk/portal/internal/logger"
)

// Initialize builds the process wide cache from configuration
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	log.Infow("initializing cache", "enabled", cfg.Cache.Enabled, "ttl", cfg.Cache.TTL)
	return NewInMemoryCache(cfg)
}
