package solverapi

import (
	"github.com/tobangado69/cvrp-solver/internal/cvrp"
	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// LocationRequest is the wire shape of one instance location.
type LocationRequest struct {
	ID        string  `json:"id" binding:"required" validate:"required"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude" validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
	Demand    int     `json:"demand" validate:"gte=0"`
	Depot     bool    `json:"depot"`
}

// VehicleTypeRequest is the wire shape of one fleet vehicle type.
type VehicleTypeRequest struct {
	ID       string `json:"id" binding:"required" validate:"required"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
	Count    int    `json:"count" validate:"required,gt=0"`
}

// SolveRequest is the POST /api/v1/solve body.
type SolveRequest struct {
	Locations []LocationRequest    `json:"locations" binding:"required,min=1" validate:"required,min=1,dive"`
	Vehicles  []VehicleTypeRequest `json:"vehicles" binding:"required,min=1" validate:"required,min=1,dive"`
	Mode      string               `json:"mode" validate:"omitempty,oneof=single compare"`
	Algorithm string               `json:"algorithm" validate:"omitempty"`
	Seed      *int64               `json:"seed"`
}

func (r SolveRequest) toInstance() models.Instance {
	locations := make([]models.Location, len(r.Locations))
	for i, l := range r.Locations {
		locations[i] = models.Location{
			ID: l.ID, Name: l.Name, Latitude: l.Latitude, Longitude: l.Longitude,
			Demand: l.Demand, Depot: l.Depot,
		}
	}

	vehicles := make([]models.VehicleType, len(r.Vehicles))
	for i, v := range r.Vehicles {
		vehicles[i] = models.VehicleType{ID: v.ID, Name: v.Name, Capacity: v.Capacity, Count: v.Count}
	}

	return models.Instance{Locations: locations, Vehicles: vehicles}
}

func (r SolveRequest) mode() cvrp.SolveMode {
	if r.Mode == string(cvrp.ModeCompare) {
		return cvrp.ModeCompare
	}
	return cvrp.ModeSingle
}

func (r SolveRequest) algorithm() cvrp.Algorithm {
	if r.Algorithm == "" {
		return cvrp.AlgorithmEnhancedClarkeWright
	}
	return cvrp.Algorithm(r.Algorithm)
}

// fuelEfficiencyKmPerLiter and fuelPriceIDRPerLiter are the same planning
// assumptions the fleet side uses for its fuel-cost estimate. They are not
// part of the solver's canonical Solution fields — purely a cosmetic
// annotation added when rendering the HTTP response.
const (
	fuelEfficiencyKmPerLiter = 10.0
	fuelPriceIDRPerLiter     = 15000.0
)

func estimatedFuelCost(distanceKm float64) float64 {
	return (distanceKm / fuelEfficiencyKmPerLiter) * fuelPriceIDRPerLiter
}

// RouteResponse is the wire shape of one computed route.
type RouteResponse struct {
	VehicleID        string   `json:"vehicle_id"`
	VehicleName      string   `json:"vehicle_name"`
	Stops            []string `json:"stops"`
	Distance         float64  `json:"distance_km"`
	Duration         int      `json:"duration_minutes"`
	TotalCapacity    int      `json:"total_capacity"`
	CapacityExceeded bool     `json:"capacity_exceeded"`
	EstimatedFuelCost float64 `json:"estimated_fuel_cost_idr"`
}

// SolveResponse is the POST /api/v1/solve response body.
type SolveResponse struct {
	ID                string                            `json:"id"`
	SelectedAlgorithm string                            `json:"selected_algorithm"`
	Routes            []RouteResponse                   `json:"routes"`
	TotalDistance     float64                            `json:"total_distance_km"`
	TotalDuration     int                               `json:"total_duration_minutes"`
	ComparisonRun     bool                              `json:"comparison_run"`
	AlgorithmResults  map[string]models.AlgorithmResult `json:"algorithm_results,omitempty"`
}

func newSolveResponse(id string, result models.SolveResult) SolveResponse {
	routes := make([]RouteResponse, len(result.Routes))
	for i, r := range result.Routes {
		stops := make([]string, len(r.Stops))
		for j, s := range r.Stops {
			stops[j] = s.LocationID
		}
		routes[i] = RouteResponse{
			VehicleID:         r.VehicleID,
			VehicleName:       r.VehicleName,
			Stops:             stops,
			Distance:          r.Distance,
			Duration:          r.Duration,
			TotalCapacity:     r.TotalCapacity,
			CapacityExceeded:  r.CapacityExceeded,
			EstimatedFuelCost: estimatedFuelCost(r.Distance),
		}
	}

	return SolveResponse{
		ID:                id,
		SelectedAlgorithm: result.SelectedAlgorithm,
		Routes:            routes,
		TotalDistance:     result.TotalDistance,
		TotalDuration:     result.TotalDuration,
		ComparisonRun:     result.ComparisonRun,
		AlgorithmResults:  result.AlgorithmResults,
	}
}
