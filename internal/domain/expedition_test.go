package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expeditiontrail/backend/internal/domain"
)

// expeditionFixture returns an expedition with a July 2020 on-site window and
// one travel day on each side, in the Montreal timezone (UTC-4 in summer).
func expeditionFixture(t *testing.T) domain.Expedition {
	t.Helper()
	travelFrom := mustParseDate(t, "2020-07-15")
	travelTo := mustParseDate(t, "2020-07-18")
	return domain.Expedition{
		Name:       "Gaspésie Crossing",
		From:       mustParseDate(t, "2020-07-16"),
		To:         mustParseDate(t, "2020-07-17"),
		TravelFrom: &travelFrom,
		TravelTo:   &travelTo,
		Timezone:   "America/Montreal",
	}
}

func TestExpedition_Window_OnSite(t *testing.T) {
	exp := expeditionFixture(t)

	w, err := exp.Window(false)

	require.NoError(t, err)
	// Local midnight on the 16th is 04:00 UTC; day end of the 17th is one
	// millisecond before local midnight on the 18th.
	assert.Equal(t, time.Date(2020, 7, 16, 4, 0, 0, 0, time.UTC).Unix(), w.From.Unix())
	assert.Equal(t, time.Date(2020, 7, 18, 3, 59, 59, 999e6, time.UTC).UnixMilli(), w.To.UnixMilli())
}

func TestExpedition_Window_IncludeTravel(t *testing.T) {
	exp := expeditionFixture(t)

	w, err := exp.Window(true)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 7, 15, 4, 0, 0, 0, time.UTC).Unix(), w.From.Unix())
	assert.Equal(t, time.Date(2020, 7, 19, 3, 59, 59, 999e6, time.UTC).UnixMilli(), w.To.UnixMilli())
}

// Travel bounds are optional; the window falls back to the on-site bounds.
func TestExpedition_Window_TravelFallsBackToOnSite(t *testing.T) {
	exp := expeditionFixture(t)
	exp.TravelFrom = nil
	exp.TravelTo = nil

	travel, err := exp.Window(true)
	require.NoError(t, err)
	onSite, err := exp.Window(false)
	require.NoError(t, err)

	assert.True(t, travel.From.Equal(onSite.From))
	assert.True(t, travel.To.Equal(onSite.To))
}

func TestExpedition_Window_UnknownTimezone(t *testing.T) {
	exp := expeditionFixture(t)
	exp.Timezone = "Mars/Olympus_Mons"

	_, err := exp.Window(false)

	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestExpedition_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, expeditionFixture(t).Validate())
	})

	t.Run("name required", func(t *testing.T) {
		exp := expeditionFixture(t)
		exp.Name = ""
		assert.ErrorIs(t, exp.Validate(), domain.ErrValidation)
	})

	t.Run("from after to", func(t *testing.T) {
		exp := expeditionFixture(t)
		exp.From = mustParseDate(t, "2020-07-20")
		assert.ErrorIs(t, exp.Validate(), domain.ErrValidation)
	})

	t.Run("travelFrom after from", func(t *testing.T) {
		exp := expeditionFixture(t)
		tf := mustParseDate(t, "2020-07-17")
		exp.TravelFrom = &tf
		assert.ErrorIs(t, exp.Validate(), domain.ErrValidation)
	})

	t.Run("travelTo before to", func(t *testing.T) {
		exp := expeditionFixture(t)
		tt := mustParseDate(t, "2020-07-16")
		exp.TravelTo = &tt
		assert.ErrorIs(t, exp.Validate(), domain.ErrValidation)
	})

	t.Run("bad timezone", func(t *testing.T) {
		exp := expeditionFixture(t)
		exp.Timezone = "nope"
		assert.ErrorIs(t, exp.Validate(), domain.ErrValidation)
	})
}
