package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/expeditiontrail/backend/internal/domain"
	"github.com/expeditiontrail/backend/internal/repo"
)

// SpotService exposes tracker-device level queries that are not scoped to a
// single expedition.
type SpotService struct {
	points repo.PointRepo
}

// NewSpotService constructs a SpotService backed by the provided PointRepo.
func NewSpotService(points repo.PointRepo) *SpotService {
	return &SpotService{points: points}
}

// BatteryState returns the battery state reported by the chronologically
// earliest point ever recorded.
// Returns domain.ErrNoData when no point has ever been stored.
func (s *SpotService) BatteryState(ctx context.Context) (string, error) {
	point, err := s.points.EarliestEver(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("service.SpotService.BatteryState: %w", domain.ErrNoData)
		}
		return "", fmt.Errorf("service.SpotService.BatteryState: %w", err)
	}
	return point.BatteryState, nil
}
