// Package fetch pulls insight records from the analysis backend. Transport
// concerns (auth, envelopes, schema drift) stop here; the scoring engine only
// ever sees already-parsed insight records.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/ventradar/ventradar/pkg/insight"
)

// Client talks to the analysis backend's JSON API.
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewClient creates a backend API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type listEnvelope struct {
	Data  []insight.Insight `json:"data"`
	Count int               `json:"count"`
}

// ListInsights fetches insights generated since the given time. A zero time
// fetches everything the backend will return.
func (c *Client) ListInsights(ctx context.Context, since time.Time) ([]insight.Insight, error) {
	params := url.Values{}
	if !since.IsZero() {
		params.Set("since", since.Format(time.RFC3339))
	}

	reqURL := c.baseURL + "/insights"
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var env listEnvelope
	if err := c.getJSON(ctx, reqURL, &env); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range env.Data {
		if env.Data[i].ID == "" {
			env.Data[i].ID = uuid.NewString()
		}
		env.Data[i].FetchedAt = now
	}
	return env.Data, nil
}

// GetInsight fetches a single insight by ID.
func (c *Client) GetInsight(ctx context.Context, id string) (*insight.Insight, error) {
	var in insight.Insight
	if err := c.getJSON(ctx, c.baseURL+"/insights/"+url.PathEscape(id), &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		in.ID = id
	}
	in.FetchedAt = time.Now().UTC()
	return &in, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create backend request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend status %d for %s", resp.StatusCode, reqURL)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}
