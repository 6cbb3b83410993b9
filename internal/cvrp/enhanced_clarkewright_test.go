package cvrp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func TestCapacityCompatibilityFactor(t *testing.T) {
	a := models.Location{Demand: 4}
	b := models.Location{Demand: 4}
	assert.Equal(t, 1.0, capacityCompatibilityFactor(a, b, 10))

	c := models.Location{Demand: 8}
	d := models.Location{Demand: 8}
	assert.Less(t, capacityCompatibilityFactor(c, d, 10), 1.0)
}

func TestUrgencyFactor_CapsAtOnePointTwo(t *testing.T) {
	a := models.Location{Demand: 100}
	b := models.Location{Demand: 100}
	assert.Equal(t, 1.2, urgencyFactor(a, b, 10))
}

func TestDistanceEfficiencyFactor_FloorsAtZeroPointEight(t *testing.T) {
	locations := sampleLocations()
	matrix := BuildDistanceMatrix(locations)
	far := models.Location{ID: "far", Latitude: 0, Longitude: 90}
	near := models.Location{ID: "near", Latitude: 0, Longitude: 0}

	assert.GreaterOrEqual(t, distanceEfficiencyFactor(matrix, far, near), 0.8)
}

func TestAngularContinuityFactor_SameDirectionIsLowestBonus(t *testing.T) {
	depot := models.Location{ID: "D", Latitude: 0, Longitude: 0}
	sameDirection := models.Location{ID: "A", Latitude: 0, Longitude: 1}
	opposite := models.Location{ID: "B", Latitude: 0, Longitude: -1}

	same := angularContinuityFactor(depot, sameDirection, sameDirection)
	apart := angularContinuityFactor(depot, sameDirection, opposite)

	assert.Less(t, same, apart)
}

func TestEnhancedClarkeWright_RefusesMergeOverCapacity(t *testing.T) {
	depot, locations := depotAndTwoCustomers(8, 8)
	vehicles := []models.VehicleType{{ID: "van", Name: "Van", Capacity: 10, Count: 2}}

	routes, err := EnhancedClarkeWright(vehicles, locations, depot)
	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(routes, 2)
	for _, r := range routes {
		assert.LessOrEqual(routeDemand(r), 10)
	}
}
