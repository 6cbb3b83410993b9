package cvrp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cvrperrors "github.com/tobangado69/cvrp-solver/pkg/errors"
	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// TestSolve_TrivialTwoLocationInstance covers the trivial case: one
// customer, one vehicle, expect a single D->A->D route at the haversine
// distance for one degree of latitude... here expressed for one degree of
// longitude at the equator, which is the same great-circle length.
func TestSolve_TrivialTwoLocationInstance(t *testing.T) {
	depot := models.Location{ID: "D", Name: "Depot", Latitude: 0, Longitude: 0, Depot: true}
	a := models.Location{ID: "A", Name: "A", Latitude: 0, Longitude: 1, Demand: 5}
	instance := models.Instance{
		Locations: []models.Location{depot, a},
		Vehicles:  []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 1}},
	}

	result, err := Solve(instance, SolveOptions{Mode: ModeSingle, Algorithm: AlgorithmClarkeWright})
	require.NoError(t, err)

	require.Len(t, result.Routes, 1)
	route := result.Routes[0]
	assert.Equal(t, 5, route.TotalCapacity)
	assert.False(t, route.CapacityExceeded)

	expected := 2 * haversineDistance(0, 0, 0, 1)
	assert.InDelta(t, expected, route.Distance, 0.001)
}

// TestSolve_CapacitySplit covers the capacity-split case: two customers
// whose combined demand fits the fleet but not one vehicle must end up on
// two separate routes with full coverage.
func TestSolve_CapacitySplit(t *testing.T) {
	depot, locations := depotAndTwoCustomers(7, 7)
	instance := models.Instance{
		Locations: locations,
		Vehicles:  []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 2}},
	}

	result, err := Solve(instance, SolveOptions{Mode: ModeSingle, Algorithm: AlgorithmClarkeWright})
	require.NoError(t, err)

	assert.Len(t, result.Routes, 2)
	served := servedLocationCount(result.Routes)
	assert.Equal(t, 2, served)
	_ = depot
}

// TestSolve_OversizeInstanceIsBadInput covers the oversize case: an
// instance with more than 100 locations must fail validation before any
// algorithm runs, regardless of which algorithm was requested.
func TestSolve_OversizeInstanceIsBadInput(t *testing.T) {
	locations := make([]models.Location, 0, 101)
	locations = append(locations, models.Location{ID: "D", Latitude: 0, Longitude: 0, Depot: true})
	for i := 0; i < 100; i++ {
		locations = append(locations, models.Location{
			ID:       fmt.Sprintf("loc-%d", i),
			Latitude: 0, Longitude: float64(i + 1), Demand: 1,
		})
	}
	instance := models.Instance{
		Locations: locations,
		Vehicles:  []models.VehicleType{{ID: "van", Name: "Van", Capacity: 1000, Count: 1}},
	}

	_, err := Solve(instance, SolveOptions{Mode: ModeSingle, Algorithm: AlgorithmClarkeWright})

	require.Error(t, err)
	appErr := cvrperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "BAD_INPUT", appErr.Code)
}

func TestSolve_CompareModeReturnsWinnerAcrossRegistry(t *testing.T) {
	depot, locations := depotAndTwoCustomers(3, 3)
	instance := models.Instance{
		Locations: locations,
		Vehicles:  []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 2}},
	}

	result, err := Solve(instance, SolveOptions{Mode: ModeCompare})
	require.NoError(t, err)

	assert.True(t, result.ComparisonRun)
	assert.NotEmpty(t, result.SelectedAlgorithm)
	_ = depot
}
