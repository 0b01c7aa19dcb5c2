package middleware

import (
	"context"

	"github.com/flexprice/invoicing/internal/config"
	"github.com/flexprice/invoicing/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// PyroscopeMiddleware labels CPU samples taken during a request with its route
// and tenant so hot invoices paths can be told apart.
func PyroscopeMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	if !cfg.Pyroscope.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		labels := pyroscope.Labels(
			"method", c.Request.Method,
			"route", route,
			"tenant_id", c.GetHeader(types.HeaderTenantID),
		)

		pyroscope.TagWrapper(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
