package cvrp

import "github.com/tobangado69/cvrp-solver/pkg/models"

const (
	acoAlpha       = 1.0
	acoBeta        = 2.0
	acoEvaporation = 0.1
	acoDeposit     = 100.0
	acoInitialPheromone = 1.0
)

// AntColony builds each ant's solution by shuffling the customers and
// first-fit packing them into vehicle slots. The pheromone matrix is
// evaporated and deposited every iteration but is not read during
// construction. It preserves a documented anomaly: each ant's
// constructed solution may have several routes, but only the FIRST
// route is kept as that ant's contribution. This under-reports coverage
// relative to the other algorithms; it is intentional, not a bug.
func AntColony(vehicles []models.VehicleType, locations []models.Location, depot models.Location, seed *int64, cancel *CancelToken) ([]models.Route, error) {
	matrix := BuildDistanceMatrix(locations)
	customers := nonDepotLocations(locations)
	slotsTemplate := ExpandVehicleSlots(vehicles)
	rng := newRNG(seed)

	n := len(customers)
	ants := clamp(n, 5, 20)
	iterations := clamp(2*n, 10, 50)

	pheromone := initialPheromone(customers, acoInitialPheromone)

	var best []models.Route
	bestCost := -1.0

	for iter := 0; iter < iterations; iter++ {
		if cancel.Cancelled() {
			break
		}

		type antRun struct {
			route []models.Route
			cost  float64
		}
		runs := make([]antRun, 0, ants)

		for a := 0; a < ants; a++ {
			shuffled := make([]models.Location, len(customers))
			copy(shuffled, customers)
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			solution := firstFitAssignToSlots(depot, shuffled, slotsTemplate, matrix)
			if len(solution) == 0 {
				continue
			}

			first := []models.Route{solution[0]}
			cost := totalDistance(first)
			runs = append(runs, antRun{route: first, cost: cost})

			if bestCost < 0 || cost < bestCost {
				best = first
				bestCost = cost
			}
		}

		evaporatePheromone(pheromone, acoEvaporation)
		for _, run := range runs {
			depositPheromone(pheromone, run.route, acoDeposit/run.cost)
		}
	}

	if best == nil {
		return []models.Route{}, nil
	}
	return best, nil
}

func initialPheromone(customers []models.Location, value float64) map[string]map[string]float64 {
	p := make(map[string]map[string]float64, len(customers))
	for _, a := range customers {
		p[a.ID] = make(map[string]float64, len(customers))
		for _, b := range customers {
			if a.ID != b.ID {
				p[a.ID][b.ID] = value
			}
		}
	}
	return p
}

func evaporatePheromone(pheromone map[string]map[string]float64, rho float64) {
	for _, row := range pheromone {
		for k := range row {
			row[k] *= 1 - rho
		}
	}
}

func depositPheromone(pheromone map[string]map[string]float64, routes []models.Route, amount float64) {
	for _, r := range routes {
		for i := 1; i < len(r.Stops); i++ {
			from, to := r.Stops[i-1].LocationID, r.Stops[i].LocationID
			if row, ok := pheromone[from]; ok {
				if _, ok := row[to]; ok {
					row[to] += amount
				}
			}
		}
	}
}
