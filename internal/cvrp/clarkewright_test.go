package cvrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func depotAndTwoCustomers(demandA, demandB int) (models.Location, []models.Location) {
	depot := models.Location{ID: "D", Name: "Depot", Latitude: 0, Longitude: 0, Depot: true}
	locations := []models.Location{
		depot,
		{ID: "A", Name: "A", Latitude: 0, Longitude: 1, Demand: demandA},
		{ID: "B", Name: "B", Latitude: 0, Longitude: 2, Demand: demandB},
	}
	return depot, locations
}

// TestClarkeWright_MergesWhenCapacityAllows covers the merge case: a
// positive saving between A and B under a fleet capacity of 10 must
// merge the two singleton routes into one.
func TestClarkeWright_MergesWhenCapacityAllows(t *testing.T) {
	depot, locations := depotAndTwoCustomers(3, 3)
	vehicles := []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 2}}

	routes, err := ClarkeWright(vehicles, locations, depot)
	require.NoError(t, err)

	require.Len(t, routes, 1)
	assert.Equal(t, 6, routeDemand(routes[0]))
	assert.ElementsMatch(t, []string{"A", "B"}, interiorIDs(routes[0]))
}

// TestClarkeWright_RefusesMergeOverCapacity covers the capacity-refusal
// case: the saving is positive but 8+8 exceeds the fleet capacity of
// 10, so the merge must be refused and both singleton routes must
// survive.
func TestClarkeWright_RefusesMergeOverCapacity(t *testing.T) {
	depot, locations := depotAndTwoCustomers(8, 8)
	vehicles := []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 2}}

	routes, err := ClarkeWright(vehicles, locations, depot)
	require.NoError(t, err)

	require.Len(t, routes, 2)
	for _, r := range routes {
		assert.LessOrEqual(t, routeDemand(r), 10)
	}
	served := servedLocationCount(routes)
	assert.Equal(t, 2, served)
}

func interiorIDs(route models.Route) []string {
	start, end := interior(&route)
	ids := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		ids = append(ids, route.Stops[i].LocationID)
	}
	return ids
}
