package solverapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobangado69/cvrp-solver/internal/cvrp"
	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func sampleRequest() SolveRequest {
	return SolveRequest{
		Locations: []LocationRequest{
			{ID: "depot", Latitude: -6.2, Longitude: 106.8, Depot: true},
			{ID: "cust-1", Latitude: -6.21, Longitude: 106.81, Demand: 5},
			{ID: "cust-2", Latitude: -6.22, Longitude: 106.82, Demand: 7},
		},
		Vehicles: []VehicleTypeRequest{
			{ID: "van", Capacity: 20, Count: 2},
		},
	}
}

func TestSolveRequest_ToInstanceCarriesEveryField(t *testing.T) {
	instance := sampleRequest().toInstance()

	require.Len(t, instance.Locations, 3)
	assert.Equal(t, "depot", instance.Locations[0].ID)
	assert.True(t, instance.Locations[0].Depot)
	assert.Equal(t, 5, instance.Locations[1].Demand)

	require.Len(t, instance.Vehicles, 1)
	assert.Equal(t, 20, instance.Vehicles[0].Capacity)
	assert.Equal(t, 2, instance.Vehicles[0].Count)
}

func TestSolveRequest_ModeDefaultsToSingle(t *testing.T) {
	req := sampleRequest()
	assert.Equal(t, cvrp.ModeSingle, req.mode())

	req.Mode = "compare"
	assert.Equal(t, cvrp.ModeCompare, req.mode())
}

func TestSolveRequest_AlgorithmDefaultsToEnhancedClarkeWright(t *testing.T) {
	req := sampleRequest()
	assert.Equal(t, cvrp.AlgorithmEnhancedClarkeWright, req.algorithm())

	req.Algorithm = "tabu-search"
	assert.Equal(t, cvrp.Algorithm("tabu-search"), req.algorithm())
}

func TestNewSolveResponse_FlattensRoutesAndAddsFuelEstimate(t *testing.T) {
	result := models.SolveResult{
		SelectedAlgorithm: "enhanced-clarke-wright",
		TotalDistance:      40,
		TotalDuration:       60,
		Routes: []models.Route{
			{
				VehicleID: "van-1",
				Distance:  40,
				Duration:  60,
				Stops: []models.Stop{
					{LocationID: "depot"},
					{LocationID: "cust-1"},
					{LocationID: "depot"},
				},
			},
		},
	}

	resp := newSolveResponse("run-1", result)

	require.Len(t, resp.Routes, 1)
	assert.Equal(t, []string{"depot", "cust-1", "depot"}, resp.Routes[0].Stops)
	assert.InDelta(t, 60000.0, resp.Routes[0].EstimatedFuelCost, 0.001)
	assert.Equal(t, "run-1", resp.ID)
}

func TestEstimatedFuelCost_MatchesFleetPlanningAssumption(t *testing.T) {
	assert.InDelta(t, 15000.0, estimatedFuelCost(10), 0.001)
	assert.InDelta(t, 0.0, estimatedFuelCost(0), 0.001)
}
