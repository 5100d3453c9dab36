package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

func requestID(req *http.Request) error {
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return nil
}

// bearerToken reads the token at call time. A failing token source never
// fails the request; the call simply goes out unauthenticated.
func (c *Client) bearerToken(req *http.Request) error {
	token, err := c.tokenSource.Token(req.Context())
	if err != nil {
		c.logger.Warn(req.Context(), "token source failed, sending request without token", "error", err)
		return nil
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func (c *Client) unauthorized(resp *http.Response) error {
	if resp.StatusCode != http.StatusUnauthorized {
		return nil
	}
	ctx := context.WithoutCancel(resp.Request.Context())
	c.logger.Info(ctx, "api rejected credentials", "path", resp.Request.URL.Path)
	c.onUnauthorized(ctx)
	return nil
}
