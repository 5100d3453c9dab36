package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/preranah7/archweekly/internal/client/models"
)

const defaultSubscriberPageSize = 50

// Subscribe registers email; referredBy is the optional referral code of
// an existing subscriber.
func (c *Client) Subscribe(ctx context.Context, email, referredBy string) (*models.SubscribeResponse, error) {
	var out models.SubscribeResponse
	req := models.SubscribeRequest{Email: email, ReferredBy: referredBy}
	if err := c.doJSON(ctx, http.MethodPost, "/subscribers/subscribe", nil, req, &out); err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return &out, nil
}

func (c *Client) Unsubscribe(ctx context.Context, email string) (*models.MessageResponse, error) {
	var out models.MessageResponse
	path := "/subscribers/unsubscribe/" + url.PathEscape(email)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("unsubscribe: %w", err)
	}
	return &out, nil
}

func (c *Client) SubscriberStats(ctx context.Context) (*models.SubscriberStats, error) {
	var out models.SubscriberStats
	if err := c.doJSON(ctx, http.MethodGet, "/subscribers/stats", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("subscriber stats: %w", err)
	}
	return &out, nil
}

func (c *Client) SubscriberCount(ctx context.Context) (*models.SubscriberCount, error) {
	var out models.SubscriberCount
	if err := c.doJSON(ctx, http.MethodGet, "/subscribers/count", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("subscriber count: %w", err)
	}
	return &out, nil
}

func (c *Client) ReferralStats(ctx context.Context, email string) (*models.ReferralStats, error) {
	var out models.ReferralStats
	path := "/subscribers/referrals/" + url.PathEscape(email)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("referral stats: %w", err)
	}
	return &out, nil
}

// ListSubscribers returns one page of subscribers (admin only). Non-positive
// page and limit fall back to 1 and 50.
func (c *Client) ListSubscribers(ctx context.Context, page, limit int) (*models.SubscriberList, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultSubscriberPageSize
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out models.SubscriberList
	if err := c.doJSON(ctx, http.MethodGet, "/subscribers", q, nil, &out); err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return &out, nil
}
