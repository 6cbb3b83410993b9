package cvrp

import "github.com/tobangado69/cvrp-solver/pkg/models"

// newDepotStop builds the Stop record for the depot location.
func newDepotStop(depot models.Location, order int) models.Stop {
	return models.Stop{
		LocationID: depot.ID,
		Name:       depot.Name,
		Latitude:   depot.Latitude,
		Longitude:  depot.Longitude,
		Demand:     0,
		Order:      order,
	}
}

func newStop(loc models.Location, order int) models.Stop {
	return models.Stop{
		LocationID: loc.ID,
		Name:       loc.Name,
		Latitude:   loc.Latitude,
		Longitude:  loc.Longitude,
		Demand:     loc.Demand,
		Order:      order,
	}
}

// newSingletonRoute builds a depot -> loc -> depot route, metrics included.
func newSingletonRoute(depot, loc models.Location, matrix *DistanceMatrix) models.Route {
	route := models.Route{
		Stops: []models.Stop{
			newDepotStop(depot, 0),
			newStop(loc, 1),
			newDepotStop(depot, 2),
		},
	}
	RecomputeRouteMetrics(&route, matrix)
	return route
}

// RecomputeRouteMetrics walks route.Stops pairwise, sums matrix distances,
// and updates Distance, Duration and TotalCapacity. It is idempotent and
// MUST be called after any structural change to a route before it is
// exposed to a caller.
func RecomputeRouteMetrics(route *models.Route, matrix *DistanceMatrix) {
	renumberStops(route)

	var distance float64
	var capacity int

	for i := 0; i < len(route.Stops); i++ {
		if i > 0 {
			distance += matrix.Distance(route.Stops[i-1].LocationID, route.Stops[i].LocationID)
		}
		if i != 0 && i != len(route.Stops)-1 {
			capacity += route.Stops[i].Demand
		}
	}

	route.Distance = roundTo(distance, distancePrecision)
	route.Duration = durationMinutes(route.Distance)
	route.TotalCapacity = capacity
}

// renumberStops reassigns Stop.Order to match each stop's position, a
// repair step required after splicing stops between routes.
func renumberStops(route *models.Route) {
	for i := range route.Stops {
		route.Stops[i].Order = i
	}
}

// interior returns the index range [1, len-1) of a route's non-depot
// stops — the slice every local-search kernel operates over.
func interior(route *models.Route) (start, end int) {
	if len(route.Stops) < 3 {
		return 1, 1
	}
	return 1, len(route.Stops) - 1
}

// routeDemand sums the demand of a route's interior stops without
// requiring a full RecomputeRouteMetrics pass.
func routeDemand(route models.Route) int {
	total := 0
	start, end := interior(&route)
	for i := start; i < end; i++ {
		total += route.Stops[i].Demand
	}
	return total
}

// cloneRoute returns a deep copy safe to mutate independently of the
// original — metaheuristics snapshot whole solutions frequently.
func cloneRoute(route models.Route) models.Route {
	stops := make([]models.Stop, len(route.Stops))
	copy(stops, route.Stops)
	route.Stops = stops
	return route
}

func cloneRoutes(routes []models.Route) []models.Route {
	out := make([]models.Route, len(routes))
	for i, r := range routes {
		out[i] = cloneRoute(r)
	}
	return out
}

// totalDistance sums Distance across a set of routes.
func totalDistance(routes []models.Route) float64 {
	var sum float64
	for _, r := range routes {
		sum += r.Distance
	}
	return sum
}
