package cvrp

import (
	"math/rand"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

const (
	gaMutationRate  = 0.1
	gaCrossoverRate = 0.8
	gaTournamentSize = 3
)

// Genetic evolves a population of candidate solutions under tournament
// selection, route-based crossover and interior-stop-swap mutation.
func Genetic(vehicles []models.VehicleType, locations []models.Location, depot models.Location, seed *int64, cancel *CancelToken) ([]models.Route, error) {
	matrix := BuildDistanceMatrix(locations)
	customers := nonDepotLocations(locations)
	slotsTemplate := ExpandVehicleSlots(vehicles)
	rng := newRNG(seed)

	n := len(customers)
	populationSize := clamp(2*n, 10, 30)
	generations := clamp(2*n, 15, 50)

	population := make([][]models.Route, populationSize)
	for i := range population {
		population[i] = randomGASolution(depot, customers, slotsTemplate, matrix, rng)
	}

	best := bestOf(population)
	bestCost := totalDistance(best)

	for gen := 0; gen < generations; gen++ {
		if cancel.Cancelled() {
			break
		}

		next := make([][]models.Route, 0, populationSize)
		next = append(next, cloneRoutes(best)) // one-slot elitism

		for len(next) < populationSize {
			parent1 := tournamentSelect(population, rng)
			parent2 := tournamentSelect(population, rng)

			var child []models.Route
			if rng.Float64() < gaCrossoverRate {
				child = crossoverRoutes(parent1, parent2, matrix, rng)
			} else {
				child = cloneRoutes(parent1)
			}

			if rng.Float64() < gaMutationRate {
				child = mutateRoutes(child, matrix, rng)
			}

			next = append(next, child)
		}

		population = next
		candidate := bestOf(population)
		if cost := totalDistance(candidate); cost < bestCost-improvementTolerance {
			best = candidate
			bestCost = cost
		}
	}

	return best, nil
}

// randomGASolution shuffles customers and places each into the first
// vehicle slot (in order) whose remaining capacity admits it, dropping
// locations that fit nowhere.
func randomGASolution(depot models.Location, customers []models.Location, slotsTemplate []models.VehicleSlot, matrix *DistanceMatrix, rng *rand.Rand) []models.Route {
	shuffled := make([]models.Location, len(customers))
	copy(shuffled, customers)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	return firstFitAssignToSlots(depot, shuffled, slotsTemplate, matrix)
}

// firstFitAssignToSlots is the shared first-fit policy used by Genetic's
// random solutions and Ant Colony's per-ant construction.
func firstFitAssignToSlots(depot models.Location, locations []models.Location, slotsTemplate []models.VehicleSlot, matrix *DistanceMatrix) []models.Route {
	remaining := make([]int, len(slotsTemplate))
	for i, s := range slotsTemplate {
		remaining[i] = s.Capacity
	}
	buckets := make([][]models.Location, len(slotsTemplate))

	for _, loc := range locations {
		for i := range slotsTemplate {
			if loc.Demand <= remaining[i] {
				buckets[i] = append(buckets[i], loc)
				remaining[i] -= loc.Demand
				break
			}
		}
	}

	routes := make([]models.Route, 0, len(slotsTemplate))
	for _, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		stops := []models.Stop{newDepotStop(depot, 0)}
		for _, loc := range bucket {
			stops = append(stops, newStop(loc, len(stops)))
		}
		stops = append(stops, newDepotStop(depot, len(stops)))
		route := models.Route{Stops: stops}
		RecomputeRouteMetrics(&route, matrix)
		routes = append(routes, route)
	}
	return routes
}

func bestOf(population [][]models.Route) []models.Route {
	best := population[0]
	bestCost := totalDistance(best)
	for _, p := range population[1:] {
		if cost := totalDistance(p); cost < bestCost {
			best = p
			bestCost = cost
		}
	}
	return cloneRoutes(best)
}

// tournamentSelect picks the best-by-distance of gaTournamentSize random
// individuals.
func tournamentSelect(population [][]models.Route, rng *rand.Rand) []models.Route {
	best := population[rng.Intn(len(population))]
	bestCost := totalDistance(best)
	for i := 1; i < gaTournamentSize; i++ {
		candidate := population[rng.Intn(len(population))]
		if cost := totalDistance(candidate); cost < bestCost {
			best = candidate
			bestCost = cost
		}
	}
	return best
}

// crossoverRoutes is the route-based crossover: for each index up to
// max(|A|,|B|)-1, copy the route at that index from a uniformly chosen
// parent when both have it, else from whichever parent has it.
func crossoverRoutes(a, b []models.Route, matrix *DistanceMatrix, rng *rand.Rand) []models.Route {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}

	child := make([]models.Route, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		hasA := i < len(a)
		hasB := i < len(b)

		switch {
		case hasA && hasB:
			if rng.Float64() < 0.5 {
				child = append(child, cloneRoute(a[i]))
			} else {
				child = append(child, cloneRoute(b[i]))
			}
		case hasA:
			child = append(child, cloneRoute(a[i]))
		case hasB:
			child = append(child, cloneRoute(b[i]))
		}
	}

	for i := range child {
		RecomputeRouteMetrics(&child[i], matrix)
	}
	return child
}

// mutateRoutes picks a random route with >=3 stops and swaps two random
// interior stops.
func mutateRoutes(routes []models.Route, matrix *DistanceMatrix, rng *rand.Rand) []models.Route {
	mutated := cloneRoutes(routes)

	candidates := make([]int, 0, len(mutated))
	for i, r := range mutated {
		if len(r.Stops) >= 3 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return mutated
	}

	ri := candidates[rng.Intn(len(candidates))]
	start, end := interior(&mutated[ri])
	if end-start < 2 {
		return mutated
	}

	i := start + rng.Intn(end-start)
	j := start + rng.Intn(end-start)
	mutated[ri].Stops[i], mutated[ri].Stops[j] = mutated[ri].Stops[j], mutated[ri].Stops[i]
	RecomputeRouteMetrics(&mutated[ri], matrix)

	return mutated
}
