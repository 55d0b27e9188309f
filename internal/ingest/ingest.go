package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expeditiontrail/backend/internal/domain"
)

// PointStore is the slice of the point repo the ingestor needs.
// Defining it here (in the consumer package) lets ingestion tests inject an
// in-memory double without touching the database.
type PointStore interface {
	Insert(ctx context.Context, p domain.LocationPoint) (domain.LocationPoint, error)
	ExistsAtTimestamp(ctx context.Context, ts time.Time) (bool, error)
}

// Stats summarises one ingestion run for logging.
type Stats struct {
	Pages     int  // feed pages fetched
	Inserted  int  // new points persisted
	Failed    int  // points whose insert failed (logged, not fatal)
	Duplicate bool // run stopped on a duplicate timestamp rather than feed end
}

// Ingestor pulls new tracker pings from the feed and persists only
// previously-unseen ones.
//
// The loop stops on the first message whose timestamp is already stored: the
// feed is newest-first, so a known timestamp marks the high-water mark of
// already-ingested data, and re-running over an already-ingested feed is a
// no-op. Messages within a page are processed strictly sequentially — the
// duplicate check is the termination condition and must observe every
// preceding insert.
type Ingestor struct {
	feed      Feed
	points    PointStore
	elevation ElevationLookup // nil disables elevation enrichment
	log       *slog.Logger
}

// NewIngestor constructs an Ingestor. elevation may be nil.
func NewIngestor(feed Feed, points PointStore, elevation ElevationLookup, log *slog.Logger) *Ingestor {
	return &Ingestor{feed: feed, points: points, elevation: elevation, log: log}
}

// Run executes one ingestion sweep over the feed.
//
// A page fetch failure aborts the run and is returned — points inserted
// earlier in the run stay persisted, and the next scheduled run picks up
// where the feed left off. A single point's insert failure is logged and the
// loop continues.
func (i *Ingestor) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	for offset := 0; ; {
		page, err := i.feed.FetchPage(ctx, offset)
		if err != nil {
			return stats, fmt.Errorf("ingest.Ingestor.Run: %w", err)
		}
		stats.Pages++

		// An errors block or an empty page both mean there is nothing left
		// at this offset.
		if page.End || len(page.Messages) == 0 {
			i.log.Info("reached the end of the feed", "pages", stats.Pages, "inserted", stats.Inserted)
			return stats, nil
		}

		for _, msg := range page.Messages {
			ts := msg.Timestamp()

			exists, err := i.points.ExistsAtTimestamp(ctx, ts)
			if err != nil {
				return stats, fmt.Errorf("ingest.Ingestor.Run: dedup check: %w", err)
			}
			if exists {
				stats.Duplicate = true
				i.log.Info("found duplicate entry, stopping",
					"timestamp", ts, "inserted", stats.Inserted)
				return stats, nil
			}

			point := i.convert(ctx, msg)
			if _, err := i.points.Insert(ctx, point); err != nil {
				// Best effort per message: log and keep going.
				stats.Failed++
				i.log.Error("could not insert point", "timestamp", ts, "error", err)
				continue
			}
			stats.Inserted++
		}

		offset += page.Count
	}
}

// convert maps a feed message to a domain point, enriching it with an
// elevation when a lookup is configured. A failed lookup logs and stores the
// point without elevation rather than dropping the ping.
func (i *Ingestor) convert(ctx context.Context, msg FeedMessage) domain.LocationPoint {
	point := domain.LocationPoint{
		Timestamp:      msg.Timestamp(),
		Latitude:       msg.Latitude,
		Longitude:      msg.Longitude,
		MessageType:    msg.MessageType,
		MessageContent: msg.MessageContent,
		BatteryState:   msg.BatteryState,
	}

	if i.elevation != nil {
		elev, err := i.elevation.Elevation(ctx, msg.Latitude, msg.Longitude)
		if err != nil {
			i.log.Warn("elevation lookup failed, storing point without elevation",
				"timestamp", point.Timestamp, "error", err)
		} else {
			point.Elevation = &elev
		}
	}

	return point
}
