package client

import (
	"context"
	"net/http"

	"github.com/preranah7/archweekly/internal/client/models"
)

// Health reports the backend status. It never fails: any error becomes
// {status: "error", message: "API is down"}.
func (c *Client) Health(ctx context.Context) models.HealthStatus {
	var out models.HealthStatus
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		c.logger.Debug(ctx, "health check failed", "error", err)
		return models.HealthStatus{Status: "error", Message: "API is down"}
	}
	return out
}
