package slideshow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lysyi3m/benefit-slides/app/benefits"
)

// ErrNoItems is shown to the viewer when the API answers with an empty list.
var ErrNoItems = errors.New("No benefit items returned")

type Fetcher interface {
	Fetch(ctx context.Context) (benefits.Payload, error)
}

// Client polls the benefits endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
}

func NewClient(endpoint string, timeout time.Duration, version string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "Benefit-Slides-Player/" + version,
	}
}

func (c *Client) Fetch(ctx context.Context) (benefits.Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return benefits.Payload{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return benefits.Payload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return benefits.Payload{}, fmt.Errorf("API error %d", resp.StatusCode)
	}

	var payload benefits.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return benefits.Payload{}, fmt.Errorf("failed to decode benefits: %w", err)
	}

	if len(payload.Items) == 0 {
		return benefits.Payload{}, ErrNoItems
	}

	return payload, nil
}
