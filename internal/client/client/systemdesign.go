package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/preranah7/archweekly/internal/client/models"
)

// DefaultSystemDesignTimeout bounds TriggerSystemDesignUpdate unless the
// caller passes its own WithTimeout.
const DefaultSystemDesignTimeout = 200 * time.Second

// FilterAll disables a resource filter.
const FilterAll = "all"

// SystemDesignResources lists curated resources. Empty or "all" filters
// are omitted from the query.
func (c *Client) SystemDesignResources(ctx context.Context, category, difficulty string) (*models.SystemDesignResources, error) {
	q := url.Values{}
	if category != "" && category != FilterAll {
		q.Set("category", category)
	}
	if difficulty != "" && difficulty != FilterAll {
		q.Set("difficulty", difficulty)
	}

	var out models.SystemDesignResources
	if err := c.doJSON(ctx, http.MethodGet, "/system-design", q, nil, &out); err != nil {
		return nil, fmt.Errorf("system design resources: %w", err)
	}
	return &out, nil
}

func (c *Client) SystemDesignStats(ctx context.Context) (models.SystemDesignStats, error) {
	var out models.SystemDesignStats
	if err := c.doJSON(ctx, http.MethodGet, "/system-design/stats", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("system design stats: %w", err)
	}
	return out, nil
}

func (c *Client) TriggerSystemDesignUpdate(ctx context.Context, opts ...CallOption) (*models.SystemDesignUpdateResult, error) {
	opts = append([]CallOption{WithTimeout(DefaultSystemDesignTimeout)}, opts...)

	var out models.SystemDesignUpdateResult
	err := c.doJSON(ctx, http.MethodPost, "/admin/trigger-system-design-update", nil, struct{}{}, &out, opts...)
	if err != nil {
		return nil, fmt.Errorf("system design update: %w", err)
	}
	return &out, nil
}
