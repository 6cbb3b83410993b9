package cvrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func TestSweep_PacksInAngularOrderUntilSlotsRunOut(t *testing.T) {
	locations := sampleLocations()
	depot := locations[0]
	vehicles := []models.VehicleType{{ID: "van", Name: "Van", Capacity: 5, Count: 2}}

	routes, err := Sweep(vehicles, locations, depot)
	require.NoError(t, err)

	served := servedLocationCount(routes)
	assert.Equal(t, 2, served)
	for _, r := range routes {
		assert.LessOrEqual(t, routeDemand(r), 5)
	}
}

func TestSweep_SkipsEmptySlotsWithoutStopping(t *testing.T) {
	locations := sampleLocations()
	depot := locations[0]
	// First slot too small for either customer (demand 5 each); second
	// slot can carry both. Sweep must skip the unusable first slot and
	// still place everything on the second.
	vehicles := []models.VehicleType{
		{ID: "tiny", Name: "Tiny", Capacity: 1, Count: 1},
		{ID: "van", Name: "Van", Capacity: 10, Count: 1},
	}

	routes, err := Sweep(vehicles, locations, depot)
	require.NoError(t, err)

	served := servedLocationCount(routes)
	assert.Equal(t, 2, served)
}

func TestSortByPolarAngle_OrdersAroundDepot(t *testing.T) {
	depot := models.Location{ID: "D", Latitude: 0, Longitude: 0}
	locs := []models.Location{
		{ID: "east", Latitude: 0, Longitude: 1},
		{ID: "north", Latitude: 1, Longitude: 0},
		{ID: "west", Latitude: 0, Longitude: -1},
	}

	sorted := sortByPolarAngle(depot, locs)

	require.Len(t, sorted, 3)
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, polarAngle(depot, sorted[i-1]), polarAngle(depot, sorted[i]))
	}
}
