package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/preranah7/archweekly/internal/client/models"
)

// DefaultWorkflowTimeout bounds TriggerWorkflow unless the caller passes
// its own WithTimeout.
const DefaultWorkflowTimeout = 5 * time.Minute

const defaultTopArticles = 10

func (c *Client) LatestNewsletter(ctx context.Context) (*models.NewsletterResponse, error) {
	var out models.NewsletterResponse
	if err := c.doJSON(ctx, http.MethodGet, "/newsletters/latest", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("latest newsletter: %w", err)
	}
	return &out, nil
}

func (c *Client) NewsletterArchive(ctx context.Context, page int) (*models.NewsletterArchive, error) {
	if page <= 0 {
		page = 1
	}
	q := url.Values{"page": {strconv.Itoa(page)}}

	var out models.NewsletterArchive
	if err := c.doJSON(ctx, http.MethodGet, "/newsletters", q, nil, &out); err != nil {
		return nil, fmt.Errorf("newsletter archive: %w", err)
	}
	return &out, nil
}

func (c *Client) NewsletterByID(ctx context.Context, id string) (*models.NewsletterResponse, error) {
	var out models.NewsletterResponse
	if err := c.doJSON(ctx, http.MethodGet, "/newsletters/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("newsletter %s: %w", id, err)
	}
	return &out, nil
}

func (c *Client) TopArticles(ctx context.Context, limit int) (*models.TopArticles, error) {
	if limit <= 0 {
		limit = defaultTopArticles
	}
	q := url.Values{"limit": {strconv.Itoa(limit)}}

	var out models.TopArticles
	if err := c.doJSON(ctx, http.MethodGet, "/newsletters/top", q, nil, &out); err != nil {
		return nil, fmt.Errorf("top articles: %w", err)
	}
	return &out, nil
}

func (c *Client) ArticlesByCategory(ctx context.Context, category string) (*models.CategoryArticles, error) {
	var out models.CategoryArticles
	path := "/newsletters/category/" + url.PathEscape(category)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("articles in %s: %w", category, err)
	}
	return &out, nil
}

// SendNewsletter broadcasts the current newsletter to every active
// subscriber.
func (c *Client) SendNewsletter(ctx context.Context, opts ...CallOption) (*models.SendResult, error) {
	var out models.SendResult
	if err := c.doJSON(ctx, http.MethodPost, "/newsletters/send", nil, nil, &out, opts...); err != nil {
		return nil, fmt.Errorf("send newsletter: %w", err)
	}
	return &out, nil
}

// SendTestEmail sends the newsletter to email only; an empty email lets the
// backend pick its configured test address.
func (c *Client) SendTestEmail(ctx context.Context, email string) (*models.TestEmailResponse, error) {
	var out models.TestEmailResponse
	req := models.TestEmailRequest{Email: email}
	if err := c.doJSON(ctx, http.MethodPost, "/newsletters/test", nil, req, &out); err != nil {
		return nil, fmt.Errorf("send test email: %w", err)
	}
	return &out, nil
}

// TriggerWorkflow runs scrape, score, compose and send on the backend. It
// routinely outlives the default timeout; a timeout here does not mean the
// workflow failed.
func (c *Client) TriggerWorkflow(ctx context.Context, opts ...CallOption) (*models.SendResult, error) {
	opts = append([]CallOption{WithTimeout(DefaultWorkflowTimeout)}, opts...)

	var out models.SendResult
	if err := c.doJSON(ctx, http.MethodPost, "/newsletters/trigger", nil, struct{}{}, &out, opts...); err != nil {
		return nil, fmt.Errorf("trigger workflow: %w", err)
	}
	return &out, nil
}
