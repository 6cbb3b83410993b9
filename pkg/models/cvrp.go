// Package models holds the domain types shared across the CVRP solver and
// its HTTP/persistence layers. The shapes in this file are the
// "persisted/serialized surface" callers bind to: field names are kept
// stable across the solver internals, the HTTP responses, and the
// repository layer.
package models

import "time"

// Location is a single geographic point a route may visit. Exactly one
// Location per Instance must have Depot set to true.
type Location struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Demand    int     `json:"demand"`
	Depot     bool    `json:"depot"`
}

// VehicleType describes a class of vehicle available to the fleet.
// Count physical vehicles of this type are expanded into Count independent
// VehicleSlots at solve time.
type VehicleType struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Count    int    `json:"count"`
}

// VehicleSlot is one physical vehicle expanded from a VehicleType.
type VehicleSlot struct {
	ID          string `json:"id"`
	TypeID      string `json:"type_id"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Used        bool   `json:"used"`
	CurrentLoad int    `json:"current_load"`
}

// Stop is one position inside a Route. Location fields are denormalized so
// the inner loops of the savings/metaheuristic search never have to chase a
// pointer back into the locations table.
type Stop struct {
	LocationID string  `json:"location_id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Demand     int     `json:"demand"`
	Order      int     `json:"order"`
}

// Route is an ordered, depot-rooted sequence of stops produced by one
// algorithm run. Stops[0] and Stops[len(Stops)-1] are always the depot.
type Route struct {
	Stops            []Stop  `json:"stops"`
	VehicleID        string  `json:"vehicle_id,omitempty"`
	VehicleName      string  `json:"vehicle_name,omitempty"`
	Distance         float64 `json:"distance"`          // km
	Duration         int     `json:"duration"`          // minutes
	TotalCapacity    int     `json:"total_capacity"`    // sum of non-depot demand
	CapacityExceeded bool    `json:"capacity_exceeded"`
}

// Solution is the output of one algorithm run (or the winner of a compare
// run): a set of routes plus the aggregates derived from them.
type Solution struct {
	Algorithm         string        `json:"algorithm"`
	Routes            []Route       `json:"routes"`
	TotalDistance     float64       `json:"total_distance"`
	TotalDuration     int           `json:"total_duration"`
	LocationsServed   int           `json:"locations_served"`
	CoveragePercent   float64       `json:"coverage_percent"`
	VehicleUtilization float64      `json:"vehicle_utilization"`
	RoutesCount       int           `json:"routes_count"`
	ExecutionTime     time.Duration `json:"execution_time"`
}

// AlgorithmResult is a Solution annotated with the comparison driver's
// per-algorithm bookkeeping: the tag used in the registry, and any error
// that aborted this algorithm without aborting the comparison run.
type AlgorithmResult struct {
	Algorithm           string        `json:"algorithm"`
	Solution            *Solution     `json:"solution,omitempty"`
	TotalDistance        float64      `json:"total_distance"`
	TotalDuration        int          `json:"total_duration"`
	ExecutionTime        time.Duration `json:"execution_time"`
	LocationsServed      int          `json:"locations_served"`
	CoveragePercent      float64      `json:"coverage_percent"`
	FleetCapacity        int          `json:"fleet_capacity"`
	VehicleUtilization   float64      `json:"vehicle_utilization"`
	RoutesCount          int          `json:"routes_count"`
	AverageRouteDistance float64      `json:"average_route_distance"`
	AverageRouteDuration float64      `json:"average_route_duration"`
	Error                string       `json:"error,omitempty"`
}

// Score is a weighted, logging-only convenience metric. It never
// participates in winner selection (the comparison rule in compare.go
// is the sole source of truth for that); it exists so telemetry/log
// lines have one comparable number across heterogeneous runs.
func (r AlgorithmResult) Score() float64 {
	if r.Error != "" {
		return 0
	}
	score := r.CoveragePercent
	if r.TotalDistance > 0 {
		score += 100.0 / (1.0 + r.TotalDistance/100.0)
	}
	return score
}

// SolveResult is the top-level shape returned by the high-level Solve
// entry point and the shape persisted/serialized to callers.
type SolveResult struct {
	SelectedAlgorithm string            `json:"selected_algorithm"`
	Routes            []Route           `json:"routes"`
	TotalDistance     float64           `json:"total_distance"`
	TotalDuration     int               `json:"total_duration"`
	AlgorithmResults  map[string]AlgorithmResult `json:"algorithm_results,omitempty"`
	ComparisonRun     bool              `json:"comparison_run"`
}

// Instance is the solver's input: a fleet and a set of locations.
type Instance struct {
	Locations []Location    `json:"locations"`
	Vehicles  []VehicleType `json:"vehicles"`
}

// SolveRun is the persisted record of one Solve invocation, stored by
// internal/common/repository so a caller can retrieve a past result by ID.
// It is not part of the CORE; the CORE never imports it.
type SolveRun struct {
	ID                string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	RequestedBy       string    `json:"requested_by" gorm:"type:uuid;index"`
	Mode              string    `json:"mode" gorm:"size:32;not null"`
	SelectedAlgorithm string    `json:"selected_algorithm" gorm:"size:32"`
	TotalDistance     float64   `json:"total_distance"`
	TotalDuration     int       `json:"total_duration"`
	RoutesCount       int       `json:"routes_count"`
	ResultJSON        []byte    `json:"-" gorm:"type:jsonb"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime"`
}
