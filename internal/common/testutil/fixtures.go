package testutil

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// NewTestInstance creates a small, valid CVRP instance: one depot, two
// customers, one vehicle type with capacity enough to serve both.
func NewTestInstance() models.Instance {
	return models.Instance{
		Locations: []models.Location{
			{ID: "depot", Name: "Depot", Latitude: -6.2088, Longitude: 106.8456, Depot: true},
			{ID: "cust-1", Name: "Customer 1", Latitude: -6.21, Longitude: 106.85, Demand: 5},
			{ID: "cust-2", Name: "Customer 2", Latitude: -6.22, Longitude: 106.83, Demand: 5},
		},
		Vehicles: []models.VehicleType{
			{ID: "van", Name: "Van", Capacity: 20, Count: 1},
		},
	}
}

// NewTestSolveRun creates a persisted-record fixture for repository tests.
func NewTestSolveRun() *models.SolveRun {
	result, _ := json.Marshal(map[string]interface{}{"routes": []interface{}{}})
	return &models.SolveRun{
		ID:                uuid.New().String(),
		RequestedBy:       uuid.New().String(),
		Mode:              "single",
		SelectedAlgorithm: "enhanced-clarke-wright",
		TotalDistance:     12.5,
		TotalDuration:      20,
		RoutesCount:        1,
		ResultJSON:         result,
		CreatedAt:          time.Now(),
	}
}

// PtrString returns a pointer to s.
func PtrString(s string) *string {
	return &s
}

// PtrTime returns a pointer to t.
func PtrTime(t time.Time) *time.Time {
	return &t
}
