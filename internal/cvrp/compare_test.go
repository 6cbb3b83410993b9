package cvrp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func resultWith(coverage, distance float64) models.AlgorithmResult {
	sol := models.Solution{CoveragePercent: coverage, TotalDistance: distance}
	return models.AlgorithmResult{CoveragePercent: coverage, TotalDistance: distance, Solution: &sol}
}

// TestSelectWinner_MaximizesCoverageThenMinimizesDistance exercises the
// comparison rule directly: coverages {60,80,80} with distances
// {50,100,90} must select the 80%/90km result.
func TestSelectWinner_MaximizesCoverageThenMinimizesDistance(t *testing.T) {
	order := []string{"a", "b", "c"}
	results := map[string]models.AlgorithmResult{
		"a": resultWith(60, 50),
		"b": resultWith(80, 100),
		"c": resultWith(80, 90),
	}

	key, winner := selectWinner(order, results)

	assert.Equal(t, "c", key)
	assert.Equal(t, 80.0, winner.CoveragePercent)
	assert.Equal(t, 90.0, winner.TotalDistance)
}

// TestSelectWinner_TiesBreakByRegistryOrder exercises an exact tie in both
// coverage and distance: the first-inserted (registry order) result wins.
func TestSelectWinner_TiesBreakByRegistryOrder(t *testing.T) {
	order := []string{"first", "second"}
	results := map[string]models.AlgorithmResult{
		"first":  resultWith(100, 50),
		"second": resultWith(100, 50),
	}

	key, _ := selectWinner(order, results)

	assert.Equal(t, "first", key)
}

// TestSelectWinner_SkipsErroredResults verifies that an errored algorithm
// result is excluded from winner selection, and the winner is still
// chosen from the remaining results.
func TestSelectWinner_SkipsErroredResults(t *testing.T) {
	order := []string{"genetic", "clarke-wright"}
	results := map[string]models.AlgorithmResult{
		"genetic":       {Algorithm: "genetic", Error: "boom"},
		"clarke-wright": resultWith(100, 42),
	}

	key, winner := selectWinner(order, results)

	assert.Equal(t, "clarke-wright", key)
	assert.Equal(t, 100.0, winner.CoveragePercent)
}

func TestSelectWinner_AllErroredFallsBackToFirst(t *testing.T) {
	order := []string{"a", "b"}
	results := map[string]models.AlgorithmResult{
		"a": {Algorithm: "a", Error: "boom"},
		"b": {Algorithm: "b", Error: "also boom"},
	}

	key, winner := selectWinner(order, results)

	assert.Equal(t, "a", key)
	assert.Equal(t, "boom", winner.Error)
}

func TestSelectWinner_EmptyOrderReturnsEmpty(t *testing.T) {
	key, winner := selectWinner(nil, map[string]models.AlgorithmResult{})
	assert.Equal(t, "", key)
	assert.Equal(t, models.AlgorithmResult{}, winner)
}

// TestCompare_RunsFullRegistryAndProducesAWinner runs Compare end to end on
// a small feasible instance. The external-solver leg always falls back to
// Enhanced Clarke-Wright here (no remote service is reachable), exercising
// the §4.12 "graceful fallback on any failure" behavior while Compare still
// isolates that leg rather than aborting the whole run.
func TestCompare_RunsFullRegistryAndProducesAWinner(t *testing.T) {
	_, locations := depotAndTwoCustomers(3, 3)
	vehicles := []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 2}}
	instance := models.Instance{Locations: locations, Vehicles: vehicles}

	result, err := Compare(instance, RunOptions{ExternalClient: failingExternalClient{}})

	assert.NoError(t, err)
	assert.True(t, result.ComparisonRun)
	assert.NotEmpty(t, result.SelectedAlgorithm)
	assert.Len(t, result.AlgorithmResults, len(comparisonRegistry()))

	for _, algoResult := range result.AlgorithmResults {
		if algoResult.Error != "" {
			assert.Nil(t, algoResult.Solution)
		}
	}
}

type failingExternalClient struct{}

func (failingExternalClient) Do(_ context.Context, _ externalSolveRequest) (externalSolveResponse, error) {
	return externalSolveResponse{}, errors.New("unreachable")
}
