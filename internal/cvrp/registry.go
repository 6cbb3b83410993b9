package cvrp

import "github.com/tobangado69/cvrp-solver/pkg/models"

// Algorithm identifies one construction or improvement strategy: a fixed
// registry consumed by the comparison driver, plus the single low-level
// operation every variant implements.
type Algorithm string

const (
	AlgorithmClarkeWright         Algorithm = "clarke-wright"
	AlgorithmEnhancedClarkeWright Algorithm = "enhanced-clarke-wright"
	AlgorithmNearestNeighbor      Algorithm = "nearest-neighbor"
	AlgorithmGenetic              Algorithm = "genetic"
	AlgorithmTabuSearch           Algorithm = "tabu-search"
	AlgorithmSimulatedAnnealing   Algorithm = "simulated-annealing"
	AlgorithmAntColony            Algorithm = "ant-colony"
	AlgorithmExternal             Algorithm = "or-tools"
)

// comparisonRegistry is the fixed eight-algorithm set the comparison
// driver runs. Sweep is deliberately absent: it remains a usable
// construction building block but is not reachable via Solve.
func comparisonRegistry() []Algorithm {
	return []Algorithm{
		AlgorithmClarkeWright,
		AlgorithmEnhancedClarkeWright,
		AlgorithmNearestNeighbor,
		AlgorithmGenetic,
		AlgorithmTabuSearch,
		AlgorithmSimulatedAnnealing,
		AlgorithmAntColony,
		AlgorithmExternal,
	}
}

// RunAlgorithm is the low-level entry point: each algorithm is directly
// callable as (vehicles, locations, depot) -> []Route, with no vehicle
// assignment performed. opts configures the PRNG seed, the cancellation
// token, and the external-solver client.
func RunAlgorithm(algo Algorithm, vehicles []models.VehicleType, locations []models.Location, depot models.Location, opts RunOptions) ([]models.Route, error) {
	switch algo {
	case AlgorithmClarkeWright:
		return ClarkeWright(vehicles, locations, depot)
	case AlgorithmEnhancedClarkeWright:
		return EnhancedClarkeWright(vehicles, locations, depot)
	case AlgorithmNearestNeighbor:
		return NearestNeighbor(vehicles, locations, depot)
	case AlgorithmGenetic:
		return Genetic(vehicles, locations, depot, opts.Seed, opts.Cancel)
	case AlgorithmTabuSearch:
		return TabuSearch(vehicles, locations, depot, opts.Cancel)
	case AlgorithmSimulatedAnnealing:
		return SimulatedAnnealing(vehicles, locations, depot, opts.Seed, opts.Cancel)
	case AlgorithmAntColony:
		return AntColony(vehicles, locations, depot, opts.Seed, opts.Cancel)
	case AlgorithmExternal:
		client := opts.ExternalClient
		if client == nil {
			return EnhancedClarkeWright(vehicles, locations, depot)
		}
		ctx := opts.Context
		if ctx == nil {
			ctx = defaultContext()
		}
		return ExternalSolver(ctx, client, vehicles, locations, depot)
	default:
		return nil, unknownAlgorithmError(algo)
	}
}

// localSearchFor returns the post-assignment local-search kernel that
// matches the construction style of algo: apply the local-search kernel
// of the invoking algorithm once more.
func localSearchFor(algo Algorithm) func(*models.Route, *DistanceMatrix) {
	switch algo {
	case AlgorithmClarkeWright:
		return applyBasicLocalSearch
	default:
		return applyEnhancedLocalSearch
	}
}
