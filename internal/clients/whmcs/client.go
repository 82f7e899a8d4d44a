// Package whmcs is a thin pass-through client for the reseller's WHMCS
// billing endpoint. It speaks the form-encoded action API and does not
// interpret responses beyond the result envelope.
package whmcs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const requestTimeout = 15 * time.Second

// Client calls the WHMCS API with a fixed identifier/secret pair.
type Client struct {
	baseURL    string
	identifier string
	secret     string
	httpClient *http.Client
}

// NewClient creates a new WHMCS client.
func NewClient(baseURL, identifier, secret string) *Client {
	return &Client{
		baseURL:    baseURL,
		identifier: identifier,
		secret:     secret,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Response is the generic WHMCS envelope. Everything beyond the result flag
// is passed through untouched.
type Response map[string]any

func (c *Client) call(ctx context.Context, action string, params map[string]string) (Response, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("whmcs: API URL not configured")
	}

	form := url.Values{}
	form.Set("identifier", c.identifier)
	form.Set("secret", c.secret)
	form.Set("action", action)
	form.Set("responsetype", "json")
	for k, v := range params {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("whmcs: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("whmcs: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("whmcs: unexpected status %d for action %s", resp.StatusCode, action)
	}

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("whmcs: failed to decode response: %w", err)
	}

	if result, _ := body["result"].(string); result != "" && result != "success" {
		msg, _ := body["message"].(string)
		return nil, fmt.Errorf("whmcs: action %s failed: %s", action, msg)
	}

	return body, nil
}

// GetClientProducts lists the hosting products provisioned for a client.
func (c *Client) GetClientProducts(ctx context.Context, clientID string) (Response, error) {
	return c.call(ctx, "GetClientsProducts", map[string]string{"clientid": clientID})
}

// GetInvoices lists a client's invoices.
func (c *Client) GetInvoices(ctx context.Context, clientID string) (Response, error) {
	return c.call(ctx, "GetInvoices", map[string]string{"userid": clientID})
}

// GetTickets lists a client's support tickets.
func (c *Client) GetTickets(ctx context.Context, clientID string) (Response, error) {
	return c.call(ctx, "GetTickets", map[string]string{"clientid": clientID})
}
