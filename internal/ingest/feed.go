// Package ingest pulls satellite tracker pings from the SPOT public feed and
// persists the ones the store has not seen yet. It is driven on a fixed
// schedule by cmd/ingest; a run that fails is simply retried by the next one.
package ingest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sethvargo/go-retry"
)

// DefaultFeedBaseURL is the SPOT public feed API root.
const DefaultFeedBaseURL = "https://api.findmespot.com/spot-main-web/consumer/rest-api/2.0/public/feed"

// FeedMessage is one tracker ping as the SPOT feed reports it.
// UnixTime is in seconds.
type FeedMessage struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	UnixTime       int64   `json:"unixTime"`
	MessageType    string  `json:"messageType"`
	MessageContent string  `json:"messageContent"`
	BatteryState   string  `json:"batteryState"`
}

// Timestamp converts the feed's second-precision unix time into the internal
// absolute-instant representation.
func (m FeedMessage) Timestamp() time.Time {
	return time.Unix(m.UnixTime, 0).UTC()
}

// FeedPage is one page of the paginated feed.
// End is set when the feed signalled an error block, which in practice means
// "no more data at this offset" — the ingestion loop treats it as caught up.
type FeedPage struct {
	Count    int
	Messages []FeedMessage
	End      bool
}

// feedEnvelope mirrors the SPOT response wrapper:
//
//	{ response: { feedMessageResponse: { count, messages: { message: [...] } }, errors: [...] } }
type feedEnvelope struct {
	Response struct {
		FeedMessageResponse struct {
			Count    int `json:"count"`
			Messages struct {
				Message []FeedMessage `json:"message"`
			} `json:"messages"`
		} `json:"feedMessageResponse"`
		Errors []json.RawMessage `json:"errors"`
	} `json:"response"`
}

// Feed fetches pages of tracker messages. Implemented by SpotFeed in
// production and by a test double in ingestion tests.
type Feed interface {
	FetchPage(ctx context.Context, offset int) (FeedPage, error)
}

// SpotFeed fetches pages from the SPOT public feed over HTTP.
// Transient failures (network errors, 5xx) are retried with exponential
// backoff before the page fetch is reported as failed.
type SpotFeed struct {
	baseURL string
	feedID  string
	client  *http.Client
}

// NewSpotFeed constructs a feed client for the given feed ID.
// Pass DefaultFeedBaseURL outside of tests.
func NewSpotFeed(baseURL, feedID string) *SpotFeed {
	return &SpotFeed{
		baseURL: baseURL,
		feedID:  feedID,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchPage fetches the page of messages starting at offset.
func (f *SpotFeed) FetchPage(ctx context.Context, offset int) (FeedPage, error) {
	url := fmt.Sprintf("%s/%s/message.json?start=%d", f.baseURL, f.feedID, offset)

	var envelope feedEnvelope
	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("feed returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("feed returned status %d", resp.StatusCode)
		}

		envelope = feedEnvelope{}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return fmt.Errorf("decode feed response: %w", err)
		}
		return nil
	})
	if err != nil {
		return FeedPage{}, fmt.Errorf("ingest.SpotFeed.FetchPage: offset %d: %w", offset, err)
	}

	return FeedPage{
		Count:    envelope.Response.FeedMessageResponse.Count,
		Messages: envelope.Response.FeedMessageResponse.Messages.Message,
		End:      len(envelope.Response.Errors) > 0,
	}, nil
}
