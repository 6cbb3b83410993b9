package cvrp

import "github.com/tobangado69/cvrp-solver/pkg/models"

// NearestNeighbor expands vehicles to slots, then for each slot in
// order, greedily chains the nearest location whose demand
// still fits the remaining capacity. Unvisited leftovers after the slot
// pass are each retried as a singleton route on the first slot that can
// carry them.
func NearestNeighbor(vehicles []models.VehicleType, locations []models.Location, depot models.Location) ([]models.Route, error) {
	matrix := BuildDistanceMatrix(locations)
	slots := ExpandVehicleSlots(vehicles)
	customers := nonDepotLocations(locations)

	visited := make(map[string]bool, len(customers))
	routes := make([]models.Route, 0, len(slots))

	for _, slot := range slots {
		route, ok := buildNearestNeighborRoute(depot, customers, visited, slot.Capacity, matrix)
		if ok {
			routes = append(routes, route)
		}
	}

	for _, loc := range customers {
		if visited[loc.ID] {
			continue
		}
		for _, slot := range slots {
			if loc.Demand <= slot.Capacity {
				routes = append(routes, newSingletonRoute(depot, loc, matrix))
				visited[loc.ID] = true
				break
			}
		}
	}

	return routes, nil
}

// buildNearestNeighborRoute greedily extends one route from the depot
// until no unvisited location fits the slot's remaining capacity. It
// returns ok=false for a slot that never admits a single stop.
func buildNearestNeighborRoute(depot models.Location, customers []models.Location, visited map[string]bool, capacity int, matrix *DistanceMatrix) (models.Route, bool) {
	stops := []models.Stop{newDepotStop(depot, 0)}
	remaining := capacity
	current := depot

	for {
		next, ok := nearestFittingLocation(current, customers, visited, remaining, matrix)
		if !ok {
			break
		}
		stops = append(stops, newStop(next, len(stops)))
		visited[next.ID] = true
		remaining -= next.Demand
		current = next
	}

	if len(stops) == 1 {
		return models.Route{}, false
	}

	stops = append(stops, newDepotStop(depot, len(stops)))
	route := models.Route{Stops: stops}
	RecomputeRouteMetrics(&route, matrix)
	return route, true
}

func nearestFittingLocation(current models.Location, customers []models.Location, visited map[string]bool, remaining int, matrix *DistanceMatrix) (models.Location, bool) {
	var best models.Location
	found := false
	bestDistance := 0.0

	for _, loc := range customers {
		if visited[loc.ID] || loc.Demand > remaining {
			continue
		}
		d := matrix.Distance(current.ID, loc.ID)
		if !found || d < bestDistance {
			best = loc
			bestDistance = d
			found = true
		}
	}

	return best, found
}
