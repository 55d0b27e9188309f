// Package service contains the business logic for the expedition trail API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expeditiontrail/backend/internal/domain"
	"github.com/expeditiontrail/backend/internal/repo"
)

// ExpeditionService implements business logic for Expedition operations.
// Expeditions are read-only through the API; Create exists for seeding.
type ExpeditionService struct {
	repo repo.ExpeditionRepo
}

// NewExpeditionService constructs an ExpeditionService backed by the provided repo.
func NewExpeditionService(r repo.ExpeditionRepo) *ExpeditionService {
	return &ExpeditionService{repo: r}
}

// Create validates and persists a new expedition.
// Returns domain.ErrValidation if the calendar-date invariants are violated.
func (s *ExpeditionService) Create(ctx context.Context, exp domain.Expedition) (domain.Expedition, error) {
	if err := exp.Validate(); err != nil {
		return domain.Expedition{}, err
	}
	result, err := s.repo.Create(ctx, exp)
	if err != nil {
		return domain.Expedition{}, fmt.Errorf("service.ExpeditionService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single expedition by ID.
// Returns domain.ErrNotFound if no expedition with that ID exists.
func (s *ExpeditionService) GetByID(ctx context.Context, id uuid.UUID) (domain.Expedition, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Expedition{}, fmt.Errorf("service.ExpeditionService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all expeditions.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExpeditionService) List(ctx context.Context) ([]domain.Expedition, error) {
	exps, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExpeditionService.List: %w", err)
	}
	if exps == nil {
		return []domain.Expedition{}, nil
	}
	return exps, nil
}
