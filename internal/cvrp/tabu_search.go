package cvrp

import "github.com/tobangado69/cvrp-solver/pkg/models"

// maxTabuNeighbors bounds the neighborhood kept per iteration: up to 50
// neighbors, kept deterministically in generation order.
const maxTabuNeighbors = 50

// TabuSearch explores the move neighborhood of a Clarke-Wright starting
// solution under a tabu list, seeded by Enhanced Clarke-Wright. cancel
// may be nil; when non-nil it is consulted between iterations.
func TabuSearch(vehicles []models.VehicleType, locations []models.Location, depot models.Location, cancel *CancelToken) ([]models.Route, error) {
	matrix := BuildDistanceMatrix(locations)

	current, err := EnhancedClarkeWright(vehicles, locations, depot)
	if err != nil {
		return nil, err
	}

	n := len(nonDepotLocations(locations))
	tenure := clamp(n/2, 5, 15)
	iterations := clamp(3*n, 20, 100)

	best := cloneRoutes(current)
	bestCost := totalDistance(best)

	tabu := make(map[string]int)

	for iter := 0; iter < iterations; iter++ {
		if cancel.Cancelled() {
			break
		}

		neighbors := generateSwapNeighbors(current, matrix, maxTabuNeighbors)
		if len(neighbors) == 0 {
			break
		}

		candidate, found := bestNonTabuNeighbor(neighbors, tabu)
		if !found {
			break
		}

		current = candidate
		currentKey := solutionKey(current)
		tabu[currentKey] = iter + tenure
		pruneExpiredTabu(tabu, iter)

		if cost := totalDistance(current); cost < bestCost-improvementTolerance {
			best = cloneRoutes(current)
			bestCost = cost
		}
	}

	return best, nil
}

// generateSwapNeighbors enumerates intra-route pairwise swaps across
// every route, in deterministic generation order, capped at limit.
func generateSwapNeighbors(routes []models.Route, matrix *DistanceMatrix, limit int) [][]models.Route {
	neighbors := make([][]models.Route, 0, limit)

	for ri := range routes {
		start, end := interior(&routes[ri])
		for i := start; i < end && len(neighbors) < limit; i++ {
			for j := i + 1; j < end && len(neighbors) < limit; j++ {
				neighbor := cloneRoutes(routes)
				neighbor[ri].Stops[i], neighbor[ri].Stops[j] = neighbor[ri].Stops[j], neighbor[ri].Stops[i]
				RecomputeRouteMetrics(&neighbor[ri], matrix)
				neighbors = append(neighbors, neighbor)
			}
		}
		if len(neighbors) >= limit {
			break
		}
	}

	return neighbors
}

// bestNonTabuNeighbor picks the lowest-total-distance neighbor whose
// solution key is not currently tabu. There is no aspiration bypass.
func bestNonTabuNeighbor(neighbors [][]models.Route, tabu map[string]int) ([]models.Route, bool) {
	var best []models.Route
	bestCost := 0.0
	found := false

	for _, n := range neighbors {
		key := solutionKey(n)
		if _, isTabu := tabu[key]; isTabu {
			continue
		}
		cost := totalDistance(n)
		if !found || cost < bestCost {
			best = n
			bestCost = cost
			found = true
		}
	}

	return best, found
}

func pruneExpiredTabu(tabu map[string]int, iteration int) {
	for key, expiry := range tabu {
		if expiry <= iteration {
			delete(tabu, key)
		}
	}
}
