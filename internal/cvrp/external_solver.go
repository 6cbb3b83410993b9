package cvrp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// externalSolverTimeout is the bounded request/response budget for the
// remote CVRP service. A single POST needs no feature beyond
// context-scoped cancellation, which net/http already provides, so no
// HTTP client library is used.
const externalSolverTimeout = 30 * time.Second

// ExternalSolverClient is the narrow collaborator interface the adapter
// depends on, so tests can substitute a stub without a real HTTP server.
type ExternalSolverClient interface {
	Do(ctx context.Context, payload externalSolveRequest) (externalSolveResponse, error)
}

// HTTPExternalSolverClient calls a remote CVRP service over HTTP POST.
type HTTPExternalSolverClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPExternalSolverClient returns a client whose *http.Client is
// bounded by externalSolverTimeout.
func NewHTTPExternalSolverClient(baseURL string) *HTTPExternalSolverClient {
	return &HTTPExternalSolverClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: externalSolverTimeout},
	}
}

type externalLocation struct {
	ID       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Demand   int     `json:"demand"`
}

type externalVehicle struct {
	ID        string  `json:"id"`
	Capacity  int     `json:"capacity"`
	CostPerKM float64 `json:"cost_per_km"`
	Type      string  `json:"type"`
}

type externalSolveRequest struct {
	Locations []externalLocation `json:"locations"` // depot first, demand 0
	Vehicles  []externalVehicle  `json:"vehicles"`
	Flags     map[string]bool    `json:"flags"`
}

type externalRouteResult struct {
	VehicleID     string  `json:"Vehicle ID"`
	RouteIndices  []int   `json:"Route Indices"`
	DistanceKM    float64 `json:"Distance (km)"`
	LoadCarried   int     `json:"Load Carried"`
}

type externalSolveResponse struct {
	Result []externalRouteResult `json:"result"`
}

// Do posts payload to BaseURL and decodes the response within the
// caller's context deadline.
func (c *HTTPExternalSolverClient) Do(ctx context.Context, payload externalSolveRequest) (externalSolveResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return externalSolveResponse{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return externalSolveResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return externalSolveResponse{}, fmt.Errorf("call external solver: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return externalSolveResponse{}, fmt.Errorf("external solver returned status %d", resp.StatusCode)
	}

	var out externalSolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return externalSolveResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// ExternalSolver sends the instance to an opaque remote CVRP service
// with a bounded time budget; on ANY failure — network error, non-2xx,
// malformed payload — it falls back to Enhanced Clarke-Wright.
// ExternalSolverUnavailable never reaches the caller.
func ExternalSolver(ctx context.Context, client ExternalSolverClient, vehicles []models.VehicleType, locations []models.Location, depot models.Location) ([]models.Route, error) {
	ctx, cancel := context.WithTimeout(ctx, externalSolverTimeout)
	defer cancel()

	routes, err := callExternalSolver(ctx, client, vehicles, locations, depot)
	if err == nil {
		return routes, nil
	}
	return EnhancedClarkeWright(vehicles, locations, depot)
}

func callExternalSolver(ctx context.Context, client ExternalSolverClient, vehicles []models.VehicleType, locations []models.Location, depot models.Location) ([]models.Route, error) {
	payload := buildExternalRequest(vehicles, locations, depot)

	resp, err := client.Do(ctx, payload)
	if err != nil {
		return nil, err
	}

	return decodeExternalResponse(resp, locations, depot)
}

func buildExternalRequest(vehicles []models.VehicleType, locations []models.Location, depot models.Location) externalSolveRequest {
	locs := make([]externalLocation, 0, len(locations))
	locs = append(locs, externalLocation{ID: depot.ID, Lat: depot.Latitude, Lon: depot.Longitude, Demand: 0})
	for _, loc := range nonDepotLocations(locations) {
		locs = append(locs, externalLocation{ID: loc.ID, Lat: loc.Latitude, Lon: loc.Longitude, Demand: loc.Demand})
	}

	vs := make([]externalVehicle, 0, len(vehicles))
	for _, v := range ExpandVehicleSlots(vehicles) {
		vs = append(vs, externalVehicle{ID: v.ID, Capacity: v.Capacity, Type: v.TypeID})
	}

	return externalSolveRequest{
		Locations: locs,
		Vehicles:  vs,
		Flags:     map[string]bool{"capacitated": true},
	}
}

// decodeExternalResponse looks each stop up by index into the original
// locations list (depot first, as sent) and rebuilds native Routes.
func decodeExternalResponse(resp externalSolveResponse, locations []models.Location, depot models.Location) ([]models.Route, error) {
	ordered := append([]models.Location{depot}, nonDepotLocations(locations)...)
	matrix := BuildDistanceMatrix(locations)

	if len(resp.Result) == 0 {
		return nil, fmt.Errorf("external solver returned no routes")
	}

	routes := make([]models.Route, 0, len(resp.Result))
	for _, vr := range resp.Result {
		stops := make([]models.Stop, 0, len(vr.RouteIndices))
		for order, idx := range vr.RouteIndices {
			if idx < 0 || idx >= len(ordered) {
				return nil, fmt.Errorf("external solver route index %d out of range", idx)
			}
			loc := ordered[idx]
			if loc.Depot {
				stops = append(stops, newDepotStop(loc, order))
			} else {
				stops = append(stops, newStop(loc, order))
			}
		}
		if len(stops) == 0 {
			continue
		}
		route := models.Route{Stops: stops, VehicleID: vr.VehicleID}
		RecomputeRouteMetrics(&route, matrix)
		routes = append(routes, route)
	}

	if len(routes) == 0 {
		return nil, fmt.Errorf("external solver decoded to zero usable routes")
	}
	return routes, nil
}
