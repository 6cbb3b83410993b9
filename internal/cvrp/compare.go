package cvrp

import (
	"time"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// buildSolution computes a Solution's derived aggregates from an assigned
// route set.
func buildSolution(algorithm string, routes []models.Route, instance models.Instance, elapsed time.Duration) models.Solution {
	nonDepotCount := len(nonDepotLocations(instance.Locations))
	fleetCapacity := totalFleetCapacity(instance.Vehicles)

	served := servedLocationCount(routes)
	demand := totalServedDemand(routes)

	return models.Solution{
		Algorithm:          algorithm,
		Routes:             routes,
		TotalDistance:      totalDistance(routes),
		TotalDuration:      totalDurationOf(routes),
		LocationsServed:    served,
		CoveragePercent:    percentage(served, nonDepotCount),
		VehicleUtilization: percentage(demand, fleetCapacity),
		RoutesCount:        len(routes),
		ExecutionTime:      elapsed,
	}
}

func totalDurationOf(routes []models.Route) int {
	total := 0
	for _, r := range routes {
		total += r.Duration
	}
	return total
}

func totalFleetCapacity(vehicles []models.VehicleType) int {
	total := 0
	for _, v := range vehicles {
		total += v.Capacity * v.Count
	}
	return total
}

func servedLocationCount(routes []models.Route) int {
	seen := make(map[string]bool)
	for _, r := range routes {
		start, end := interior(&r)
		for i := start; i < end; i++ {
			seen[r.Stops[i].LocationID] = true
		}
	}
	return len(seen)
}

func totalServedDemand(routes []models.Route) int {
	total := 0
	for _, r := range routes {
		total += routeDemand(r)
	}
	return total
}

func percentage(numerator, denominator int) float64 {
	if denominator <= 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}

// Compare runs every algorithm in the fixed registry sequentially on the
// same instance, isolating per-algorithm failures into that algorithm's
// AlgorithmResult rather than aborting the run, and
// selects a winner under the lexicographic rule: maximum coverage, then
// minimum total distance, then first-in-registry-order on an exact tie.
func Compare(instance models.Instance, opts RunOptions) (models.SolveResult, error) {
	depot, err := ValidateInstance(instance)
	if err != nil {
		return models.SolveResult{}, err
	}

	matrix := BuildDistanceMatrix(instance.Locations)
	results := make(map[string]models.AlgorithmResult, len(comparisonRegistry()))
	order := make([]string, 0, len(comparisonRegistry()))

	for _, algo := range comparisonRegistry() {
		if opts.Cancel.Cancelled() {
			break
		}

		result := runOneComparisonAlgorithm(algo, instance, depot, matrix, opts)
		results[string(algo)] = result
		order = append(order, string(algo))
	}

	winnerKey, winnerResult := selectWinner(order, results)

	out := models.SolveResult{
		SelectedAlgorithm: winnerKey,
		AlgorithmResults:  results,
		ComparisonRun:     true,
	}
	if winnerResult.Solution != nil {
		out.Routes = winnerResult.Solution.Routes
		out.TotalDistance = winnerResult.Solution.TotalDistance
		out.TotalDuration = winnerResult.Solution.TotalDuration
	}
	return out, nil
}

func runOneComparisonAlgorithm(algo Algorithm, instance models.Instance, depot models.Location, matrix *DistanceMatrix, opts RunOptions) models.AlgorithmResult {
	started := time.Now()

	routes, err := RunAlgorithm(algo, instance.Vehicles, instance.Locations, depot, opts)
	if err != nil {
		return models.AlgorithmResult{Algorithm: string(algo), Error: err.Error()}
	}

	assigned := AssignVehicles(routes, instance.Vehicles, matrix, localSearchFor(algo))
	elapsed := time.Since(started)

	solution := buildSolution(string(algo), assigned, instance, elapsed)
	return algorithmResultFromSolution(string(algo), solution, instance)
}

func algorithmResultFromSolution(algorithm string, solution models.Solution, instance models.Instance) models.AlgorithmResult {
	fleetCapacity := totalFleetCapacity(instance.Vehicles)

	avgDistance, avgDuration := 0.0, 0.0
	if solution.RoutesCount > 0 {
		avgDistance = solution.TotalDistance / float64(solution.RoutesCount)
		avgDuration = float64(solution.TotalDuration) / float64(solution.RoutesCount)
	}

	sol := solution
	return models.AlgorithmResult{
		Algorithm:            algorithm,
		Solution:             &sol,
		TotalDistance:        solution.TotalDistance,
		TotalDuration:        solution.TotalDuration,
		ExecutionTime:        solution.ExecutionTime,
		LocationsServed:      solution.LocationsServed,
		CoveragePercent:      solution.CoveragePercent,
		FleetCapacity:        fleetCapacity,
		VehicleUtilization:   solution.VehicleUtilization,
		RoutesCount:          solution.RoutesCount,
		AverageRouteDistance: avgDistance,
		AverageRouteDuration: avgDuration,
	}
}

// selectWinner applies the winner rule: among results with no error,
// the maximum coverage percentage, tie-broken by minimum total
// distance, tie-broken by registry order (first inserted wins a dead
// tie). If every result errored, the first (failed) result is returned so
// callers always get a key back.
func selectWinner(order []string, results map[string]models.AlgorithmResult) (string, models.AlgorithmResult) {
	var winnerKey string
	var winner models.AlgorithmResult
	haveWinner := false

	for _, key := range order {
		result := results[key]
		if result.Error != "" {
			continue
		}
		if !haveWinner ||
			result.CoveragePercent > winner.CoveragePercent ||
			(result.CoveragePercent == winner.CoveragePercent && result.TotalDistance < winner.TotalDistance) {
			winnerKey = key
			winner = result
			haveWinner = true
		}
	}

	if haveWinner {
		return winnerKey, winner
	}
	if len(order) > 0 {
		return order[0], results[order[0]]
	}
	return "", models.AlgorithmResult{}
}
