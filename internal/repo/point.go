package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/expeditiontrail/backend/internal/domain"
)

// PointRepo defines the persistence operations for LocationPoints.
// Points are insert-only: ingestion writes them once and the query engine
// reads them back by time window. There is no update or delete.
type PointRepo interface {
	// Insert persists a new point and returns the stored record.
	Insert(ctx context.Context, p domain.LocationPoint) (domain.LocationPoint, error)

	// ExistsAtTimestamp reports whether a point with exactly this timestamp
	// is already stored. This is the ingestion dedup check — point
	// timestamps are unique by convention, not by constraint.
	ExistsAtTimestamp(ctx context.Context, ts time.Time) (bool, error)

	// Range returns the points strictly inside the window
	// (w.From < timestamp < w.To), ascending by timestamp.
	// With onlyOK, only points whose message type is "OK" are returned.
	Range(ctx context.Context, w domain.TimeWindow, onlyOK bool) ([]domain.LocationPoint, error)

	// LatestInWindow returns the single most recent point strictly inside
	// the window. Returns domain.ErrNotFound when the window is empty.
	LatestInWindow(ctx context.Context, w domain.TimeWindow) (domain.LocationPoint, error)

	// EarliestEver returns the chronologically first point ever recorded,
	// across all expeditions. Returns domain.ErrNotFound on an empty store.
	EarliestEver(ctx context.Context) (domain.LocationPoint, error)
}

// pgPointRepo is the Postgres implementation of PointRepo.
type pgPointRepo struct {
	db db
}

// NewPointRepo constructs a PointRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPointRepo(db db) PointRepo {
	return &pgPointRepo{db: db}
}

const pointColumns = `id, recorded_at, latitude, longitude, elevation,
	message_type, message_content, battery_state, created_at`

func (r *pgPointRepo) Insert(ctx context.Context, p domain.LocationPoint) (domain.LocationPoint, error) {
	const q = `
		INSERT INTO location_points (recorded_at, latitude, longitude, elevation,
			message_type, message_content, battery_state)
		VALUES (@recorded_at, @latitude, @longitude, @elevation,
			@message_type, @message_content, @battery_state)
		RETURNING ` + pointColumns

	args := pgx.NamedArgs{
		"recorded_at":     p.Timestamp,
		"latitude":        p.Latitude,
		"longitude":       p.Longitude,
		"elevation":       p.Elevation, // nil becomes NULL
		"message_type":    p.MessageType,
		"message_content": p.MessageContent,
		"battery_state":   p.BatteryState,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPoint(row)
	if err != nil {
		return domain.LocationPoint{}, fmt.Errorf("repo.PointRepo.Insert: %w", err)
	}
	return result, nil
}

func (r *pgPointRepo) ExistsAtTimestamp(ctx context.Context, ts time.Time) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM location_points WHERE recorded_at = @recorded_at)`

	var exists bool
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"recorded_at": ts}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("repo.PointRepo.ExistsAtTimestamp: %w", err)
	}
	return exists, nil
}

// Range uses strict comparisons on both bounds: the caller computes windows
// whose closing bound is already inclusive (23:59:59.999) or exclusive
// (next local midnight), so the SQL never needs >= / <=.
func (r *pgPointRepo) Range(ctx context.Context, w domain.TimeWindow, onlyOK bool) ([]domain.LocationPoint, error) {
	q := `
		SELECT ` + pointColumns + `
		FROM location_points
		WHERE recorded_at > @from AND recorded_at < @to`
	if onlyOK {
		q += ` AND message_type = @message_type`
	}
	q += ` ORDER BY recorded_at ASC`

	args := pgx.NamedArgs{"from": w.From, "to": w.To}
	if onlyOK {
		args["message_type"] = domain.MessageTypeOK
	}

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.PointRepo.Range: %w", err)
	}
	defer rows.Close()

	var points []domain.LocationPoint
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PointRepo.Range: scan: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PointRepo.Range: rows: %w", err)
	}

	return points, nil
}

func (r *pgPointRepo) LatestInWindow(ctx context.Context, w domain.TimeWindow) (domain.LocationPoint, error) {
	const q = `
		SELECT ` + pointColumns + `
		FROM location_points
		WHERE recorded_at > @from AND recorded_at < @to
		ORDER BY recorded_at DESC
		LIMIT 1`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"from": w.From, "to": w.To})
	result, err := scanPoint(row)
	if err != nil {
		return domain.LocationPoint{}, fmt.Errorf("repo.PointRepo.LatestInWindow: %w", err)
	}
	return result, nil
}

func (r *pgPointRepo) EarliestEver(ctx context.Context) (domain.LocationPoint, error) {
	const q = `
		SELECT ` + pointColumns + `
		FROM location_points
		ORDER BY recorded_at ASC
		LIMIT 1`

	result, err := scanPoint(r.db.QueryRow(ctx, q))
	if err != nil {
		return domain.LocationPoint{}, fmt.Errorf("repo.PointRepo.EarliestEver: %w", err)
	}
	return result, nil
}

// scanPoint maps a single database row into a domain.LocationPoint.
func scanPoint(s scanner) (domain.LocationPoint, error) {
	var (
		p  domain.LocationPoint
		id pgtype.UUID
	)

	err := s.Scan(&id, &p.Timestamp, &p.Latitude, &p.Longitude, &p.Elevation,
		&p.MessageType, &p.MessageContent, &p.BatteryState, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LocationPoint{}, domain.ErrNotFound
		}
		return domain.LocationPoint{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
