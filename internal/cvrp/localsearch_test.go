package cvrp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func lineLocations() []models.Location {
	return []models.Location{
		{ID: "D", Name: "Depot", Latitude: 0, Longitude: 0, Depot: true},
		{ID: "A", Name: "A", Latitude: 0, Longitude: 1, Demand: 1},
		{ID: "B", Name: "B", Latitude: 0, Longitude: 2, Demand: 1},
		{ID: "C", Name: "C", Latitude: 0, Longitude: 3, Demand: 1},
	}
}

func routeOf(depot models.Location, stops ...models.Location) models.Route {
	route := models.Route{}
	route.Stops = append(route.Stops, newDepotStop(depot, 0))
	for i, loc := range stops {
		route.Stops = append(route.Stops, newStop(loc, i+1))
	}
	route.Stops = append(route.Stops, newDepotStop(depot, len(stops)+1))
	return route
}

func stopIDs(route models.Route) []string {
	ids := make([]string, len(route.Stops))
	for i, s := range route.Stops {
		ids[i] = s.LocationID
	}
	return ids
}

func TestTwoOpt_FixedPointLeavesOptimalRouteUnchanged(t *testing.T) {
	locs := lineLocations()
	matrix := BuildDistanceMatrix(locs)
	depot := locs[0]

	route := routeOf(depot, locs[1], locs[2], locs[3])
	RecomputeRouteMetrics(&route, matrix)
	before := stopIDs(route)

	TwoOpt(&route, matrix)

	assert.Equal(t, before, stopIDs(route))
}

func TestTwoOpt_UncrossesRoute(t *testing.T) {
	locs := lineLocations()
	matrix := BuildDistanceMatrix(locs)
	depot := locs[0]

	// D -> C -> A -> B -> D is a crossed tour on a line of points; 2-opt
	// should reach the same total distance as the already-sorted order
	// (the reverse of it is equally optimal on a symmetric line).
	crossed := routeOf(depot, locs[3], locs[1], locs[2])
	RecomputeRouteMetrics(&crossed, matrix)
	beforeDistance := crossed.Distance

	TwoOpt(&crossed, matrix)

	optimal := routeOf(depot, locs[1], locs[2], locs[3])
	RecomputeRouteMetrics(&optimal, matrix)

	assert.LessOrEqual(t, crossed.Distance, beforeDistance)
	assert.InDelta(t, optimal.Distance, crossed.Distance, 1e-6)
}

func TestTwoOpt_ShortRouteIsNoOp(t *testing.T) {
	locs := lineLocations()
	matrix := BuildDistanceMatrix(locs)
	depot := locs[0]

	route := newSingletonRoute(depot, locs[1], matrix)
	before := stopIDs(route)

	TwoOpt(&route, matrix)

	assert.Equal(t, before, stopIDs(route))
}

func TestOrOpt_RelocatesMisplacedStop(t *testing.T) {
	locs := lineLocations()
	matrix := BuildDistanceMatrix(locs)
	depot := locs[0]

	// B placed before A is worse than A before B on a line of points.
	route := routeOf(depot, locs[2], locs[1], locs[3])
	RecomputeRouteMetrics(&route, matrix)
	beforeDistance := route.Distance

	OrOpt(&route, matrix)

	assert.LessOrEqual(t, route.Distance, beforeDistance)
}

func TestThreeOpt_NeverWorsensDistance(t *testing.T) {
	locs := lineLocations()
	matrix := BuildDistanceMatrix(locs)
	depot := locs[0]

	route := routeOf(depot, locs[3], locs[1], locs[2])
	RecomputeRouteMetrics(&route, matrix)
	beforeDistance := route.Distance

	ThreeOpt(&route, matrix)

	assert.LessOrEqual(t, route.Distance, beforeDistance+1e-6)
}
