// Package repo contains all database access logic for the expedition trail API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/expeditiontrail/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ExpeditionRepo defines the persistence operations for Expeditions.
// Expeditions are created out-of-band (seeding, admin tooling); the query
// path only ever reads them.
type ExpeditionRepo interface {
	// Create inserts a new expedition and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, exp domain.Expedition) (domain.Expedition, error)

	// GetByID retrieves a single expedition by its UUID primary key.
	// Returns domain.ErrNotFound if no expedition with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Expedition, error)

	// List returns all expeditions ordered by from_date descending.
	List(ctx context.Context) ([]domain.Expedition, error)
}

// pgExpeditionRepo is the Postgres implementation of ExpeditionRepo.
type pgExpeditionRepo struct {
	db db
}

// NewExpeditionRepo constructs an ExpeditionRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewExpeditionRepo(db db) ExpeditionRepo {
	return &pgExpeditionRepo{db: db}
}

const expeditionColumns = `id, name, description, image, from_date, to_date,
	travel_from, travel_to, timezone, created_at, updated_at`

// Create inserts a new expedition row and returns the full persisted record.
func (r *pgExpeditionRepo) Create(ctx context.Context, exp domain.Expedition) (domain.Expedition, error) {
	const q = `
		INSERT INTO expeditions (name, description, image, from_date, to_date,
			travel_from, travel_to, timezone)
		VALUES (@name, @description, @image, @from_date, @to_date,
			@travel_from, @travel_to, @timezone)
		RETURNING ` + expeditionColumns

	args := pgx.NamedArgs{
		"name":        exp.Name,
		"description": exp.Description,
		"image":       exp.Image,
		"from_date":   exp.From,
		"to_date":     exp.To,
		"travel_from": exp.TravelFrom, // nil becomes NULL
		"travel_to":   exp.TravelTo,
		"timezone":    exp.Timezone,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanExpedition(row)
	if err != nil {
		return domain.Expedition{}, fmt.Errorf("repo.ExpeditionRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an expedition by primary key.
func (r *pgExpeditionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Expedition, error) {
	const q = `
		SELECT ` + expeditionColumns + `
		FROM expeditions
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanExpedition(row)
	if err != nil {
		return domain.Expedition{}, fmt.Errorf("repo.ExpeditionRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all expeditions ordered by from_date descending (most recent first).
func (r *pgExpeditionRepo) List(ctx context.Context) ([]domain.Expedition, error) {
	const q = `
		SELECT ` + expeditionColumns + `
		FROM expeditions
		ORDER BY from_date DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ExpeditionRepo.List: %w", err)
	}
	defer rows.Close()

	var exps []domain.Expedition
	for rows.Next() {
		e, err := scanExpedition(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpeditionRepo.List: scan: %w", err)
		}
		exps = append(exps, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpeditionRepo.List: rows: %w", err)
	}

	return exps, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanExpedition maps a single database row into a domain.Expedition.
// It handles the UUID and nullable travel-date conversions.
func scanExpedition(s scanner) (domain.Expedition, error) {
	var (
		e          domain.Expedition
		id         pgtype.UUID
		from, to   pgtype.Date
		travelFrom pgtype.Date
		travelTo   pgtype.Date
	)

	err := s.Scan(&id, &e.Name, &e.Description, &e.Image, &from, &to,
		&travelFrom, &travelTo, &e.Timezone, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expedition{}, domain.ErrNotFound
		}
		return domain.Expedition{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.From = from.Time
	e.To = to.Time
	if travelFrom.Valid {
		tf := travelFrom.Time
		e.TravelFrom = &tf
	}
	if travelTo.Valid {
		tt := travelTo.Time
		e.TravelTo = &tt
	}

	return e, nil
}
