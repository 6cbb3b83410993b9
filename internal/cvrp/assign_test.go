package cvrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func noopLocalSearch(*models.Route, *DistanceMatrix) {}

func TestExpandVehicleSlots_OneSlotPerCount(t *testing.T) {
	vehicles := []models.VehicleType{
		{ID: "van", Name: "Van", Capacity: 10, Count: 2},
		{ID: "truck", Name: "Truck", Capacity: 20, Count: 1},
	}

	slots := ExpandVehicleSlots(vehicles)

	require.Len(t, slots, 3)
	assert.Equal(t, "van-slot-0", slots[0].ID)
	assert.Equal(t, "van-slot-1", slots[1].ID)
	assert.Equal(t, "truck-slot-0", slots[2].ID)
}

func TestAssignVehicles_FitsWithinCapacity(t *testing.T) {
	locations := sampleLocations()
	depot := locations[0]
	matrix := BuildDistanceMatrix(locations)

	routes := []models.Route{
		newSingletonRoute(depot, locations[1], matrix),
		newSingletonRoute(depot, locations[2], matrix),
	}
	vehicles := []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 2}}

	assigned := AssignVehicles(routes, vehicles, matrix, noopLocalSearch)

	require.Len(t, assigned, 2)
	for _, r := range assigned {
		assert.False(t, r.CapacityExceeded)
		assert.NotEmpty(t, r.VehicleID)
		assert.LessOrEqual(t, r.TotalCapacity, 10)
	}
}

// TestAssignVehicles_MarksOverloadWhenNoSlotFits exercises the §4.13 step 5
// fallback: a singleton route whose demand exceeds every available slot's
// capacity is kept unassigned with CapacityExceeded set, instead of being
// silently dropped.
func TestAssignVehicles_MarksOverloadWhenNoSlotFits(t *testing.T) {
	locations := sampleLocations()
	depot := locations[0]
	big := models.Location{ID: "Z", Name: "Z", Latitude: 0, Longitude: 5, Demand: 999}
	matrix := BuildDistanceMatrix(append(locations, big))

	routes := []models.Route{newSingletonRoute(depot, big, matrix)}
	vehicles := []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 1}}

	assigned := AssignVehicles(routes, vehicles, matrix, noopLocalSearch)

	require.Len(t, assigned, 1)
	assert.True(t, assigned[0].CapacityExceeded)
	assert.Empty(t, assigned[0].VehicleID)
}

func TestAssignVehicles_SplitsOversizedRouteAcrossSlots(t *testing.T) {
	locations := []models.Location{
		{ID: "D", Name: "Depot", Latitude: 0, Longitude: 0, Depot: true},
		{ID: "A", Name: "A", Latitude: 0, Longitude: 1, Demand: 6},
		{ID: "B", Name: "B", Latitude: 0, Longitude: 2, Demand: 6},
	}
	depot := locations[0]
	matrix := BuildDistanceMatrix(locations)

	oversized := models.Route{Stops: []models.Stop{
		newDepotStop(depot, 0),
		newStop(locations[1], 1),
		newStop(locations[2], 2),
		newDepotStop(depot, 3),
	}}
	RecomputeRouteMetrics(&oversized, matrix)

	vehicles := []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 2}}

	assigned := AssignVehicles([]models.Route{oversized}, vehicles, matrix, noopLocalSearch)

	served := servedLocationCount(assigned)
	assert.Equal(t, 2, served)
	for _, r := range assigned {
		assert.LessOrEqual(t, r.TotalCapacity, 10)
	}
}
