package cvrp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func smallFleet() []models.VehicleType {
	return []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 2}}
}

func TestEnhancedClarkeWright_ServesAllWithinCapacity(t *testing.T) {
	depot, locations := depotAndTwoCustomers(3, 3)

	routes, err := EnhancedClarkeWright(smallFleet(), locations, depot)
	require.NoError(t, err)

	assert.Equal(t, 2, servedLocationCount(routes))
}

func TestTabuSearch_NeverExceedsSeedSolutionCost(t *testing.T) {
	depot, locations := depotAndTwoCustomers(3, 3)
	seeded, err := EnhancedClarkeWright(smallFleet(), locations, depot)
	require.NoError(t, err)
	seededCost := totalDistance(seeded)

	routes, err := TabuSearch(smallFleet(), locations, depot, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, totalDistance(routes), seededCost+1e-6)
}

func TestTabuSearch_RespectsCancellation(t *testing.T) {
	depot, locations := depotAndTwoCustomers(3, 3)
	cancel := NewCancelToken()
	cancel.Cancel()

	routes, err := TabuSearch(smallFleet(), locations, depot, cancel)
	require.NoError(t, err)
	assert.NotEmpty(t, routes)
}

func TestSimulatedAnnealing_IsReproducibleWithSeed(t *testing.T) {
	depot, locations := depotAndTwoCustomers(3, 3)
	seed := int64(7)

	a, err := SimulatedAnnealing(smallFleet(), locations, depot, &seed, nil)
	require.NoError(t, err)
	b, err := SimulatedAnnealing(smallFleet(), locations, depot, &seed, nil)
	require.NoError(t, err)

	assert.Equal(t, solutionKey(a), solutionKey(b))
}

func TestGenetic_ProducesAFeasibleSolution(t *testing.T) {
	depot, locations := depotAndTwoCustomers(3, 3)
	seed := int64(3)

	routes, err := Genetic(smallFleet(), locations, depot, &seed, nil)
	require.NoError(t, err)

	for _, r := range routes {
		assert.LessOrEqual(t, routeDemand(r), 10)
	}
}

func TestAntColony_ReturnsOnlyFirstRoutePerAnt(t *testing.T) {
	depot, locations := depotAndTwoCustomers(3, 3)
	seed := int64(1)

	routes, err := AntColony(smallFleet(), locations, depot, &seed, nil)
	require.NoError(t, err)

	// The documented anomaly: AntColony's best solution is a single route,
	// never the full multi-route plan firstFitAssignToSlots can produce.
	assert.LessOrEqual(t, len(routes), 1)
}

func TestExternalSolver_FallsBackToEnhancedClarkeWrightOnFailure(t *testing.T) {
	depot, locations := depotAndTwoCustomers(3, 3)

	routes, err := ExternalSolver(context.Background(), alwaysFailClient{}, smallFleet(), locations, depot)
	require.NoError(t, err)
	assert.Equal(t, 2, servedLocationCount(routes))
}

type alwaysFailClient struct{}

func (alwaysFailClient) Do(_ context.Context, _ externalSolveRequest) (externalSolveResponse, error) {
	return externalSolveResponse{}, errors.New("connection refused")
}
