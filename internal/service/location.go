package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expeditiontrail/backend/internal/domain"
	"github.com/expeditiontrail/backend/internal/geo"
	"github.com/expeditiontrail/backend/internal/repo"
)

// LocationService is the location-history query engine. It resolves an
// expedition's timezone-local calendar-day bounds into absolute time windows
// and queries the point store accordingly.
//
// The filtering is deliberately asymmetric:
//   - The default full-expedition view covers the on-site window and keeps
//     only "OK" position reports, so the rendered route is free of
//     check-in/test/alert noise.
//   - A single-day view covers one local day inside the travel-inclusive
//     window and keeps every ping, so that day can be inspected in full.
//   - The latest-point view covers the travel-inclusive window with no
//     message filter.
type LocationService struct {
	expeditions repo.ExpeditionRepo
	points      repo.PointRepo
}

// NewLocationService constructs a LocationService backed by the provided repos.
func NewLocationService(expeditions repo.ExpeditionRepo, points repo.PointRepo) *LocationService {
	return &LocationService{expeditions: expeditions, points: points}
}

// History returns an expedition's location points ascending by timestamp.
//
// With day == nil, it returns "OK" points across the whole on-site window.
// With a day, it validates the day against the travel-inclusive window
// (domain.ErrDateOutOfBounds when outside) and returns every point of that
// local day, unfiltered.
//
// Returns domain.ErrNotFound for an unknown expedition. An empty result is
// not an error. Always returns a non-nil slice.
func (s *LocationService) History(ctx context.Context, expeditionID uuid.UUID, day *time.Time) ([]domain.LocationPoint, error) {
	exp, err := s.expeditions.GetByID(ctx, expeditionID)
	if err != nil {
		return nil, fmt.Errorf("service.LocationService.History: %w", err)
	}

	var (
		window domain.TimeWindow
		onlyOK bool
	)
	if day == nil {
		window, err = exp.Window(false)
		if err != nil {
			return nil, fmt.Errorf("service.LocationService.History: %w", err)
		}
		onlyOK = true
	} else {
		window, err = s.dayWindow(exp, *day)
		if err != nil {
			return nil, err
		}
	}

	points, err := s.points.Range(ctx, window, onlyOK)
	if err != nil {
		return nil, fmt.Errorf("service.LocationService.History: %w", err)
	}
	if points == nil {
		return []domain.LocationPoint{}, nil
	}
	return points, nil
}

// Latest returns the most recent point inside the expedition's
// travel-inclusive window, with no message-type filter.
// Returns domain.ErrNoData when the window holds no points.
func (s *LocationService) Latest(ctx context.Context, expeditionID uuid.UUID) (domain.LocationPoint, error) {
	exp, err := s.expeditions.GetByID(ctx, expeditionID)
	if err != nil {
		return domain.LocationPoint{}, fmt.Errorf("service.LocationService.Latest: %w", err)
	}

	window, err := exp.Window(true)
	if err != nil {
		return domain.LocationPoint{}, fmt.Errorf("service.LocationService.Latest: %w", err)
	}

	point, err := s.points.LatestInWindow(ctx, window)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LocationPoint{}, fmt.Errorf("service.LocationService.Latest: %w", domain.ErrNoData)
		}
		return domain.LocationPoint{}, fmt.Errorf("service.LocationService.Latest: %w", err)
	}
	return point, nil
}

// Profile returns the cumulative distance/elevation profile of the points
// History would return for the same arguments. Always returns a non-nil
// slice; an empty history yields an empty profile.
func (s *LocationService) Profile(ctx context.Context, expeditionID uuid.UUID, day *time.Time) ([]geo.ProfilePoint, error) {
	points, err := s.History(ctx, expeditionID, day)
	if err != nil {
		return nil, fmt.Errorf("service.LocationService.Profile: %w", err)
	}
	return geo.HeightProfile(points), nil
}

// dayWindow computes the single-day query window for the given calendar day:
// local midnight (exclusive lower bound under strict >) to the next local
// midnight (exclusive upper bound under strict <). The day start must lie
// within the travel-inclusive window, bounds included.
func (s *LocationService) dayWindow(exp domain.Expedition, day time.Time) (domain.TimeWindow, error) {
	loc, err := exp.Location()
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("service.LocationService.History: %w", err)
	}

	travel, err := exp.Window(true)
	if err != nil {
		return domain.TimeWindow{}, fmt.Errorf("service.LocationService.History: %w", err)
	}

	dayStart := domain.LocalDayStart(day, loc)
	if !travel.Contains(dayStart) {
		return domain.TimeWindow{}, fmt.Errorf("service.LocationService.History: %w", domain.ErrDateOutOfBounds)
	}

	return domain.TimeWindow{
		From: dayStart,
		To:   domain.NextDayStart(day, loc),
	}, nil
}
