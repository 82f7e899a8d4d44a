// Package enhance is a thin pass-through client for the Enhance control
// panel API used to provision customer websites.
package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 15 * time.Second

// Client calls the Enhance API scoped to one organization.
type Client struct {
	baseURL     string
	orgID       string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates a new Enhance client.
func NewClient(baseURL, orgID, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		orgID:       orgID,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("enhance: API URL not configured")
	}

	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.orgID, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("enhance: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("enhance: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("enhance: unexpected status %d for %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("enhance: failed to read response: %w", err)
	}
	return json.RawMessage(body), nil
}

// ListWebsites lists the organization's provisioned websites.
func (c *Client) ListWebsites(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "websites")
}
