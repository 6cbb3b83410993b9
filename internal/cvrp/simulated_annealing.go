package cvrp

import (
	"math"
	"math/rand"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

const (
	saInitialTemp = 1000.0
	saCoolingRate = 0.95
	saMinTemp     = 1.0
)

// SimulatedAnnealing explores the neighborhood of a Clarke-Wright
// starting solution, seeded by Enhanced Clarke-Wright. seed, when
// non-nil, makes the run reproducible.
func SimulatedAnnealing(vehicles []models.VehicleType, locations []models.Location, depot models.Location, seed *int64, cancel *CancelToken) ([]models.Route, error) {
	matrix := BuildDistanceMatrix(locations)

	current, err := EnhancedClarkeWright(vehicles, locations, depot)
	if err != nil {
		return nil, err
	}

	n := len(nonDepotLocations(locations))
	innerIterations := clamp(5*n, 50, 200)
	rng := newRNG(seed)

	currentCost := totalDistance(current)
	best := cloneRoutes(current)
	bestCost := currentCost

	for temperature := saInitialTemp; temperature > saMinTemp; temperature *= saCoolingRate {
		if cancel.Cancelled() {
			break
		}

		for i := 0; i < innerIterations; i++ {
			neighbor := saMove(current, matrix, rng)
			neighborCost := totalDistance(neighbor)
			delta := neighborCost - currentCost

			if delta < 0 || rng.Float64() < math.Exp(-delta/temperature) {
				current = neighbor
				currentCost = neighborCost

				if currentCost < bestCost-improvementTolerance {
					best = cloneRoutes(current)
					bestCost = currentCost
				}
			}
		}
	}

	return best, nil
}

// saMove picks a random route, two interior indices, and swaps them if
// distinct.
func saMove(routes []models.Route, matrix *DistanceMatrix, rng *rand.Rand) []models.Route {
	neighbor := cloneRoutes(routes)
	if len(neighbor) == 0 {
		return neighbor
	}

	ri := rng.Intn(len(neighbor))
	start, end := interior(&neighbor[ri])
	if end-start < 2 {
		return neighbor
	}

	i := start + rng.Intn(end-start)
	j := start + rng.Intn(end-start)
	if i == j {
		return neighbor
	}

	neighbor[ri].Stops[i], neighbor[ri].Stops[j] = neighbor[ri].Stops[j], neighbor[ri].Stops[i]
	RecomputeRouteMetrics(&neighbor[ri], matrix)
	return neighbor
}
