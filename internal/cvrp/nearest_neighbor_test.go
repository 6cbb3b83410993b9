package cvrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func TestNearestNeighbor_ServesEveryCustomerWithinCapacity(t *testing.T) {
	locations := sampleLocations()
	depot := locations[0]
	vehicles := []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 2}}

	routes, err := NearestNeighbor(vehicles, locations, depot)
	require.NoError(t, err)

	served := servedLocationCount(routes)
	assert.Equal(t, 2, served)
	for _, r := range routes {
		assert.LessOrEqual(t, routeDemand(r), 10)
	}
}

func TestNearestNeighbor_SkipsCustomerNoSlotCanCarry(t *testing.T) {
	locations := sampleLocations()
	depot := locations[0]
	locations = append(locations, models.Location{ID: "Z", Latitude: 0, Longitude: 9, Demand: 999})
	vehicles := []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 2}}

	routes, err := NearestNeighbor(vehicles, locations, depot)
	require.NoError(t, err)

	served := servedLocationCount(routes)
	assert.Equal(t, 2, served) // A and B served, Z never fits any slot
}
