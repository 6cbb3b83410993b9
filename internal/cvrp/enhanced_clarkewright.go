package cvrp

import (
	"math"
	"sort"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// EnhancedClarkeWright implements the §4.5 constructor: the same
// initialization and endpoint-merge rule as ClarkeWright, but the saving
// score is enriched by five multiplicative factors before sorting.
func EnhancedClarkeWright(vehicles []models.VehicleType, locations []models.Location, depot models.Location) ([]models.Route, error) {
	matrix := BuildDistanceMatrix(locations)
	routes := initializeSingletonRoutes(depot, locations, matrix)

	maxCapacity := maxVehicleCapacity(vehicles)
	totalSlots := totalVehicleSlots(vehicles)

	savings := computeEnhancedSavings(depot, locations, matrix, maxCapacity)

	merged := mergeBySavings(routes, savings, maxCapacity)
	merged = relieveSlotPressure(merged, totalSlots, maxCapacity)

	for i := range merged {
		applyEnhancedLocalSearch(&merged[i], matrix)
	}

	return merged, nil
}

// computeEnhancedSavings multiplies the basic saving by angular
// continuity, capacity compatibility, urgency, distance efficiency and a
// time-compatibility placeholder (always 1 — kept as a future extension
// point; do not omit it).
func computeEnhancedSavings(depot models.Location, locations []models.Location, matrix *DistanceMatrix, maxCapacity int) []saving {
	customers := nonDepotLocations(locations)
	byID := make(map[string]models.Location, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}

	savings := make([]saving, 0, len(customers)*(len(customers)-1)/2)
	for a := 0; a < len(customers); a++ {
		for b := a + 1; b < len(customers); b++ {
			i, j := customers[a], customers[b]
			basic := matrix.Distance(depot.ID, i.ID) + matrix.Distance(depot.ID, j.ID) - matrix.Distance(i.ID, j.ID)

			score := basic *
				angularContinuityFactor(depot, i, j) *
				capacityCompatibilityFactor(i, j, maxCapacity) *
				urgencyFactor(i, j, maxCapacity) *
				distanceEfficiencyFactor(matrix, i, j) *
				timeCompatibilityFactor()

			savings = append(savings, saving{i: i.ID, j: j.ID, amount: score})
		}
	}

	sort.SliceStable(savings, func(a, b int) bool { return savings[a].amount > savings[b].amount })
	return savings
}

func angularContinuityFactor(depot, i, j models.Location) float64 {
	thetaI := polarAngle(depot, i)
	thetaJ := polarAngle(depot, j)

	diff := math.Abs(thetaI - thetaJ)
	angularBonus := math.Min(diff, 2*math.Pi-diff) / math.Pi

	return 1 + 0.15*angularBonus
}

func capacityCompatibilityFactor(i, j models.Location, maxCapacity int) float64 {
	combined := i.Demand + j.Demand
	if maxCapacity == 0 || combined <= maxCapacity {
		return 1
	}
	return math.Max(0.1, float64(maxCapacity)/float64(combined))
}

func urgencyFactor(i, j models.Location, maxCapacity int) float64 {
	if maxCapacity == 0 {
		return 1
	}
	combined := float64(i.Demand + j.Demand)
	return math.Min(1.2, 1+(combined/float64(maxCapacity))*0.2)
}

func distanceEfficiencyFactor(matrix *DistanceMatrix, i, j models.Location) float64 {
	d := matrix.Distance(i.ID, j.ID)
	return math.Max(0.8, 1-d/50)
}

// timeCompatibilityFactor is always 1 in the source; kept so future
// extensions (time windows) have a field to plug into without changing
// the savings-score shape.
func timeCompatibilityFactor() float64 {
	return 1
}

// applyEnhancedLocalSearch is the §4.5 post-construction kernel: 2-opt to
// a fixed point, then Or-opt sweeps for segment lengths 1-3 (Or-opt's own
// loop already covers all three lengths per sweep).
func applyEnhancedLocalSearch(route *models.Route, matrix *DistanceMatrix) {
	TwoOpt(route, matrix)
	OrOpt(route, matrix)
}
