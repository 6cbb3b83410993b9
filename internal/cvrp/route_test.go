package cvrp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func TestRecomputeRouteMetrics_Idempotent(t *testing.T) {
	locations := sampleLocations()
	matrix := BuildDistanceMatrix(locations)
	depot := locations[0]

	route := models.Route{
		Stops: []models.Stop{
			newDepotStop(depot, 0),
			newStop(locations[1], 1),
			newStop(locations[2], 2),
			newDepotStop(depot, 3),
		},
	}

	RecomputeRouteMetrics(&route, matrix)
	first := route

	RecomputeRouteMetrics(&route, matrix)

	assert.Equal(t, first.Distance, route.Distance)
	assert.Equal(t, first.Duration, route.Duration)
	assert.Equal(t, first.TotalCapacity, route.TotalCapacity)
}

func TestRecomputeRouteMetrics_MatchesSpecFormulas(t *testing.T) {
	locations := sampleLocations()
	matrix := BuildDistanceMatrix(locations)
	depot := locations[0]

	route := models.Route{
		Stops: []models.Stop{
			newDepotStop(depot, 0),
			newStop(locations[1], 1),
			newDepotStop(depot, 2),
		},
	}
	RecomputeRouteMetrics(&route, matrix)

	expectedDistance := matrix.Distance("D", "A") + matrix.Distance("A", "D")
	assert.InDelta(t, expectedDistance, route.Distance, 1e-6)
	assert.Equal(t, durationMinutes(route.Distance), route.Duration)
	assert.Equal(t, 5, route.TotalCapacity)
}

func TestRecomputeRouteMetrics_RenumbersStops(t *testing.T) {
	locations := sampleLocations()
	matrix := BuildDistanceMatrix(locations)
	depot := locations[0]

	route := models.Route{
		Stops: []models.Stop{
			{LocationID: "D", Order: 99},
			{LocationID: "A", Demand: 5, Order: 1},
			{LocationID: "D", Order: 2},
		},
	}
	RecomputeRouteMetrics(&route, matrix)

	for i, s := range route.Stops {
		assert.Equal(t, i, s.Order)
	}
	_ = depot
}

func TestCloneRoutes_IsIndependent(t *testing.T) {
	locations := sampleLocations()
	matrix := BuildDistanceMatrix(locations)
	depot := locations[0]

	original := []models.Route{newSingletonRoute(depot, locations[1], matrix)}
	clone := cloneRoutes(original)

	clone[0].Stops[1].Demand = 999
	assert.NotEqual(t, original[0].Stops[1].Demand, clone[0].Stops[1].Demand)
}
