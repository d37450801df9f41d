// Package boardapi implements the remote section and session ports
// against the schedule board's backend HTTP API.
package boardapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"scheduleboard/internal/domain"
)

// Client fetches section and session lists from the backend. It satisfies
// both remote ports; every failure wraps domain.ErrFetch so loaders can
// treat it uniformly as "no fresh data".
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

var (
	_ domain.RemoteSectionsPort = (*Client)(nil)
	_ domain.RemoteSessionsPort = (*Client)(nil)
)

func (c *Client) GetScheduleSections(ctx context.Context, eventID string) ([]*domain.Section, error) {
	var sections []*domain.Section
	if err := c.getJSON(ctx, "/api/sections/"+url.PathEscape(eventID), &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

func (c *Client) GetSessions(ctx context.Context, eventID string) ([]*domain.Session, error) {
	var sessions []*domain.Session
	if err := c.getJSON(ctx, "/api/sessions/"+url.PathEscape(eventID), &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", domain.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: backend returned status %d", domain.ErrFetch, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrFetch, err)
	}
	return nil
}
