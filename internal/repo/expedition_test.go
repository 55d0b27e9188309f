package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expeditiontrail/backend/internal/domain"
	"github.com/expeditiontrail/backend/internal/repo"
	"github.com/expeditiontrail/backend/testutil"
)

// newTestExpeditionRepo opens a transaction against the test database and
// returns an ExpeditionRepo backed by it. The transaction is rolled back when
// the test finishes, giving free per-test isolation.
func newTestExpeditionRepo(t *testing.T) repo.ExpeditionRepo {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return repo.NewExpeditionRepo(tx)
}

// expeditionFixture returns a domain.Expedition with sensible defaults.
// Callers can override individual fields after calling this function.
func expeditionFixture() domain.Expedition {
	travelFrom := time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC)
	travelTo := time.Date(2020, 7, 18, 0, 0, 0, 0, time.UTC)
	return domain.Expedition{
		Name:        "Gaspésie Crossing",
		Description: "Sea kayak along the St. Lawrence",
		Image:       "https://example.com/gaspesie.jpg",
		From:        time.Date(2020, 7, 16, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2020, 7, 17, 0, 0, 0, 0, time.UTC),
		TravelFrom:  &travelFrom,
		TravelTo:    &travelTo,
		Timezone:    "America/Montreal",
	}
}

func TestExpeditionRepo_Create(t *testing.T) {
	r := newTestExpeditionRepo(t)
	ctx := context.Background()

	input := expeditionFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, [16]byte{}, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.Description, got.Description)
	assert.Equal(t, input.Timezone, got.Timezone)
	assert.True(t, got.From.Equal(input.From), "From mismatch")
	assert.True(t, got.To.Equal(input.To), "To mismatch")
	require.NotNil(t, got.TravelFrom)
	assert.True(t, got.TravelFrom.Equal(*input.TravelFrom), "TravelFrom mismatch")
	require.NotNil(t, got.TravelTo)
	assert.True(t, got.TravelTo.Equal(*input.TravelTo), "TravelTo mismatch")
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestExpeditionRepo_Create_NilTravelBounds(t *testing.T) {
	r := newTestExpeditionRepo(t)
	ctx := context.Background()

	input := expeditionFixture()
	input.TravelFrom = nil
	input.TravelTo = nil

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Nil(t, got.TravelFrom, "TravelFrom should be nil when not provided")
	assert.Nil(t, got.TravelTo, "TravelTo should be nil when not provided")
}

func TestExpeditionRepo_GetByID(t *testing.T) {
	r := newTestExpeditionRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, expeditionFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
}

func TestExpeditionRepo_GetByID_NotFound(t *testing.T) {
	r := newTestExpeditionRepo(t)
	ctx := context.Background()

	// Use a UUID that was never inserted.
	id := [16]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	_, err := r.GetByID(ctx, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpeditionRepo_List(t *testing.T) {
	r := newTestExpeditionRepo(t)
	ctx := context.Background()

	e1 := expeditionFixture()
	e1.Name = "First Expedition"

	e2 := expeditionFixture()
	e2.Name = "Second Expedition"
	e2.From = e1.From.AddDate(0, 1, 0) // one month later
	e2.To = e1.To.AddDate(0, 1, 0)
	e2.TravelFrom = nil
	e2.TravelTo = nil

	_, err := r.Create(ctx, e1)
	require.NoError(t, err)
	_, err = r.Create(ctx, e2)
	require.NoError(t, err)

	exps, err := r.List(ctx)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(exps), 2, "should return at least the two created expeditions")

	var names []string
	for _, e := range exps {
		names = append(names, e.Name)
	}
	assert.Contains(t, names, "First Expedition")
	assert.Contains(t, names, "Second Expedition")
}
