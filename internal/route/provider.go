package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Provider computes a pedestrian route between two coordinate pairs.
type Provider interface {
	PedestrianRoute(ctx context.Context, from, to [2]float64) (Leg, error)
}

// HTTPProvider talks to the external routing service over plain HTTP.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (p *HTTPProvider) PedestrianRoute(ctx context.Context, from, to [2]float64) (Leg, error) {
	q := url.Values{}
	q.Set("from", coordPair(from))
	q.Set("to", coordPair(to))
	q.Set("mode", "pedestrian")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/route?%s", p.baseURL, q.Encode()), nil)
	if err != nil {
		return Leg{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Leg{}, fmt.Errorf("routing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Leg{}, fmt.Errorf("routing service status %d", resp.StatusCode)
	}

	var leg Leg
	if err := json.NewDecoder(resp.Body).Decode(&leg); err != nil {
		return Leg{}, fmt.Errorf("routing response decode: %w", err)
	}
	return leg, nil
}

// coordPair renders "lat,lng" at full float precision so the provider and the
// deep link see the exact values the catalog holds.
func coordPair(c [2]float64) string {
	return strconv.FormatFloat(c[0], 'f', -1, 64) + "," + strconv.FormatFloat(c[1], 'f', -1, 64)
}
