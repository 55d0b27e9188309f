package ingest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// ElevationLookup resolves a coordinate to its elevation in meters.
// A nil ElevationLookup on the Ingestor disables enrichment entirely.
type ElevationLookup interface {
	Elevation(ctx context.Context, latitude, longitude float64) (float64, error)
}

// ElevationClient queries an Open-Elevation-compatible HTTP API
// (GET {base}/api/v1/lookup?locations=lat,lon).
type ElevationClient struct {
	baseURL string
	client  *http.Client
}

// NewElevationClient constructs an elevation client for the given API root.
func NewElevationClient(baseURL string) *ElevationClient {
	return &ElevationClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// elevationEnvelope mirrors the lookup response: {"results":[{"elevation": n}]}.
type elevationEnvelope struct {
	Results []struct {
		Elevation float64 `json:"elevation"`
	} `json:"results"`
}

// Elevation returns the elevation in meters at the given coordinate.
func (c *ElevationClient) Elevation(ctx context.Context, latitude, longitude float64) (float64, error) {
	url := fmt.Sprintf("%s/api/v1/lookup?locations=%f,%f", c.baseURL, latitude, longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("ingest.ElevationClient.Elevation: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ingest.ElevationClient.Elevation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("ingest.ElevationClient.Elevation: status %d", resp.StatusCode)
	}

	var envelope elevationEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return 0, fmt.Errorf("ingest.ElevationClient.Elevation: decode: %w", err)
	}
	if len(envelope.Results) == 0 {
		return 0, fmt.Errorf("ingest.ElevationClient.Elevation: empty results")
	}

	return envelope.Results[0].Elevation, nil
}
