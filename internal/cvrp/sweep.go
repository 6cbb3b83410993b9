package cvrp

import (
	"sort"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// Sweep sorts non-depot locations by polar angle around the depot, then
// greedily packs them into vehicle slots in that angular order,
// advancing to the next slot once the current one is full. No local
// search follows. Sweep is a building block, not in the comparison
// driver's registry.
func Sweep(vehicles []models.VehicleType, locations []models.Location, depot models.Location) ([]models.Route, error) {
	matrix := BuildDistanceMatrix(locations)
	slots := ExpandVehicleSlots(vehicles)
	customers := sortByPolarAngle(depot, nonDepotLocations(locations))

	routes := make([]models.Route, 0, len(slots))

	ptr := 0
	for _, slot := range slots {
		if ptr >= len(customers) {
			break
		}

		stops := []models.Stop{newDepotStop(depot, 0)}
		remaining := slot.Capacity

		for ptr < len(customers) && customers[ptr].Demand <= remaining {
			stops = append(stops, newStop(customers[ptr], len(stops)))
			remaining -= customers[ptr].Demand
			ptr++
		}

		if len(stops) == 1 {
			continue // this slot admits none of the next locations in angular order
		}

		stops = append(stops, newDepotStop(depot, len(stops)))
		route := models.Route{Stops: stops}
		RecomputeRouteMetrics(&route, matrix)
		routes = append(routes, route)
	}

	return routes, nil
}

func sortByPolarAngle(depot models.Location, locations []models.Location) []models.Location {
	out := make([]models.Location, len(locations))
	copy(out, locations)
	sort.SliceStable(out, func(a, b int) bool {
		return polarAngle(depot, out[a]) < polarAngle(depot, out[b])
	})
	return out
}
