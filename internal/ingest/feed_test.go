package ingest_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expeditiontrail/backend/internal/ingest"
)

const feedBody = `{
	"response": {
		"feedMessageResponse": {
			"count": 2,
			"messages": {
				"message": [
					{
						"latitude": 45.5017,
						"longitude": -73.5673,
						"unixTime": 1594900000,
						"messageType": "OK",
						"messageContent": "",
						"batteryState": "GOOD"
					},
					{
						"latitude": 46.8139,
						"longitude": -71.2080,
						"unixTime": 1594890000,
						"messageType": "CUSTOM",
						"messageContent": "checking in",
						"batteryState": "GOOD"
					}
				]
			}
		}
	}
}`

const feedEndBody = `{
	"response": {
		"errors": [{"error": {"code": "E-0195", "text": "No displayable messages"}}]
	}
}`

func TestSpotFeed_FetchPage(t *testing.T) {
	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, feedBody)
	}))
	defer ts.Close()

	feed := ingest.NewSpotFeed(ts.URL, "test-feed-id")
	page, err := feed.FetchPage(context.Background(), 40)

	require.NoError(t, err)
	assert.Equal(t, "/test-feed-id/message.json", gotPath)
	assert.Equal(t, "start=40", gotQuery)

	assert.False(t, page.End)
	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Messages, 2)
	assert.Equal(t, 45.5017, page.Messages[0].Latitude)
	assert.Equal(t, int64(1594900000), page.Messages[0].UnixTime)
	assert.Equal(t, "CUSTOM", page.Messages[1].MessageType)
	assert.Equal(t, "checking in", page.Messages[1].MessageContent)
}

func TestSpotFeed_FetchPage_EndOfFeed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, feedEndBody)
	}))
	defer ts.Close()

	feed := ingest.NewSpotFeed(ts.URL, "test-feed-id")
	page, err := feed.FetchPage(context.Background(), 0)

	require.NoError(t, err)
	assert.True(t, page.End, "an errors block marks the end of the feed")
	assert.Empty(t, page.Messages)
}

// Transient 5xx responses are retried; the fetch succeeds once the feed recovers.
func TestSpotFeed_FetchPage_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, feedBody)
	}))
	defer ts.Close()

	feed := ingest.NewSpotFeed(ts.URL, "test-feed-id")
	page, err := feed.FetchPage(context.Background(), 0)

	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
	assert.Equal(t, 2, page.Count)
}

func TestSpotFeed_FetchPage_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	feed := ingest.NewSpotFeed(ts.URL, "bad-feed-id")
	_, err := feed.FetchPage(context.Background(), 0)

	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load(), "4xx responses must not be retried")
}

func TestElevationClient_Elevation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/lookup", r.URL.Path)
		assert.Contains(t, r.URL.RawQuery, "locations=")
		fmt.Fprint(w, `{"results":[{"latitude":45.5017,"longitude":-73.5673,"elevation":36}]}`)
	}))
	defer ts.Close()

	client := ingest.NewElevationClient(ts.URL)
	elev, err := client.Elevation(context.Background(), 45.5017, -73.5673)

	require.NoError(t, err)
	assert.Equal(t, 36.0, elev)
}

func TestElevationClient_Elevation_EmptyResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer ts.Close()

	client := ingest.NewElevationClient(ts.URL)
	_, err := client.Elevation(context.Background(), 45.5017, -73.5673)

	assert.Error(t, err)
}
