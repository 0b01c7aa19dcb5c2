package cache

import (
	"github.com/flexprice/invoicing/internal/config"
	"github.com/flexprice/invoicing/internal/logger"
)

// Initialize builds the process cache
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	log.Infow("initializing cache system",
		"enabled", cfg.Cache.Enabled,
		"expiration_minutes", cfg.Cache.ExpirationMinutes)

	return NewInMemoryCache(cfg)
}
