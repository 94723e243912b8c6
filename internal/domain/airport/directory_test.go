package airport_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/aeroroute-go/internal/domain/airport"
	"github.com/andrescamacho/aeroroute-go/internal/domain/shared"
	"github.com/andrescamacho/aeroroute-go/test/helpers"
)

// coarseRepository ignores every filter, as a lazy provider might
type coarseRepository struct {
	*helpers.MockAirportRepository
	all []*airport.Airport
}

func (r *coarseRepository) FindFuelCandidates(ctx context.Context, minRunwayFt int, bbox airport.BoundingBox) ([]*airport.Airport, error) {
	return r.all, nil
}

func TestDirectoryLookup(t *testing.T) {
	dir := airport.NewDirectory(helpers.NewFixtureAirportRepository())
	ctx := context.Background()

	t.Run("normalizes the code", func(t *testing.T) {
		a, found, err := dir.Lookup(ctx, " kden")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "KDEN", a.ICAO)
	})

	t.Run("unknown code is not an error", func(t *testing.T) {
		a, found, err := dir.Lookup(ctx, "ZZZZ")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, a)
	})

	t.Run("blank code", func(t *testing.T) {
		_, found, err := dir.Lookup(ctx, "")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("require fails with UNKNOWN_AIRPORT", func(t *testing.T) {
		_, err := dir.RequireLookup(ctx, "zzzz")
		assert.True(t, errors.Is(err, shared.ErrUnknownAirport))
		assert.Contains(t, err.Error(), "ZZZZ")
	})
}

func TestDirectoryCandidatesInBoundingBox(t *testing.T) {
	ctx := context.Background()
	box := airport.BoundingBox{MinLat: 30, MaxLat: 45, MinLon: -110, MaxLon: -90}

	t.Run("fuel and runway filters", func(t *testing.T) {
		dir := airport.NewDirectory(helpers.NewFixtureAirportRepository())

		candidates, err := dir.CandidatesInBoundingBox(ctx, 5000, box)

		require.NoError(t, err)
		assert.Equal(t, []string{"KDEN", "KICT", "KMKC", "KOMA"}, icaos(candidates))
	})

	t.Run("shorter runway requirement admits more airports", func(t *testing.T) {
		dir := airport.NewDirectory(helpers.NewFixtureAirportRepository())

		candidates, err := dir.CandidatesInBoundingBox(ctx, 3500, box)

		require.NoError(t, err)
		assert.Contains(t, icaos(candidates), "KHYS")
		assert.NotContains(t, icaos(candidates), "KGLD")
	})

	t.Run("re-filters a coarse provider and sorts by ICAO", func(t *testing.T) {
		all := helpers.FixtureAirports()
		dir := airport.NewDirectory(&coarseRepository{all: []*airport.Airport{all[5], all[3], all[6], all[0], all[2]}})

		candidates, err := dir.CandidatesInBoundingBox(ctx, 5000, box)

		require.NoError(t, err)
		assert.Equal(t, []string{"KDEN", "KMKC", "KOMA"}, icaos(candidates))
	})

	t.Run("provider error is wrapped", func(t *testing.T) {
		repo := helpers.NewFixtureAirportRepository()
		repo.CandidateErr = errors.New("connection refused")
		dir := airport.NewDirectory(repo)

		_, err := dir.CandidatesInBoundingBox(ctx, 5000, box)

		assert.ErrorContains(t, err, "connection refused")
	})
}

func icaos(airports []*airport.Airport) []string {
	out := make([]string, 0, len(airports))
	for _, a := range airports {
		out = append(out, a.ICAO)
	}
	return out
}
