package cvrp

import (
	"sort"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// saving is one candidate Clarke-Wright merge: joining i and j into one
// route instead of two separate depot round-trips saves Amount km.
type saving struct {
	i, j   string
	amount float64
}

// ClarkeWright implements the basic savings constructor: one route per
// non-depot location, merged in descending-savings order subject to the
// endpoint rule and the fleet's max capacity, then 2-opt + one 3-opt
// pass + 2-opt per route.
func ClarkeWright(vehicles []models.VehicleType, locations []models.Location, depot models.Location) ([]models.Route, error) {
	matrix := BuildDistanceMatrix(locations)
	routes := initializeSingletonRoutes(depot, locations, matrix)
	savings := computeSavings(depot, locations, matrix)

	maxCapacity := maxVehicleCapacity(vehicles)
	totalSlots := totalVehicleSlots(vehicles)

	merged := mergeBySavings(routes, savings, maxCapacity)
	merged = relieveSlotPressure(merged, totalSlots, maxCapacity)

	for i := range merged {
		applyBasicLocalSearch(&merged[i], matrix)
	}

	return merged, nil
}

func initializeSingletonRoutes(depot models.Location, locations []models.Location, matrix *DistanceMatrix) []models.Route {
	routes := make([]models.Route, 0, len(locations))
	for _, loc := range locations {
		if loc.Depot {
			continue
		}
		routes = append(routes, newSingletonRoute(depot, loc, matrix))
	}
	return routes
}

// computeSavings computes s(i,j) = d(depot,i) + d(depot,j) - d(i,j) for
// every pair of non-depot locations, sorted descending.
func computeSavings(depot models.Location, locations []models.Location, matrix *DistanceMatrix) []saving {
	customers := nonDepotLocations(locations)

	savings := make([]saving, 0, len(customers)*(len(customers)-1)/2)
	for a := 0; a < len(customers); a++ {
		for b := a + 1; b < len(customers); b++ {
			i, j := customers[a], customers[b]
			amount := matrix.Distance(depot.ID, i.ID) + matrix.Distance(depot.ID, j.ID) - matrix.Distance(i.ID, j.ID)
			savings = append(savings, saving{i: i.ID, j: j.ID, amount: amount})
		}
	}

	sort.SliceStable(savings, func(a, b int) bool { return savings[a].amount > savings[b].amount })
	return savings
}

func nonDepotLocations(locations []models.Location) []models.Location {
	out := make([]models.Location, 0, len(locations))
	for _, loc := range locations {
		if !loc.Depot {
			out = append(out, loc)
		}
	}
	return out
}

func maxVehicleCapacity(vehicles []models.VehicleType) int {
	max := 0
	for _, v := range vehicles {
		if v.Capacity > max {
			max = v.Capacity
		}
	}
	return max
}

func totalVehicleSlots(vehicles []models.VehicleType) int {
	total := 0
	for _, v := range vehicles {
		total += v.Count
	}
	return total
}

// mergeBySavings walks savings in descending order and, for each pair
// still eligible (different routes, proper start/end endpoints, capacity
// respected), merges the two routes. Every other saving is skipped.
func mergeBySavings(routes []models.Route, savings []saving, maxCapacity int) []models.Route {
	owner := make(map[string]int, len(routes)*2)
	live := make([]*models.Route, len(routes))
	for idx := range routes {
		r := routes[idx]
		live[idx] = &r
		for _, s := range r.Stops {
			if s.Order != 0 && s.Order != len(r.Stops)-1 {
				owner[s.LocationID] = idx
			}
		}
	}

	for _, s := range savings {
		ri, iok := owner[s.i]
		rj, jok := owner[s.j]
		if !iok || !jok || ri == rj {
			continue
		}
		if live[ri] == nil || live[rj] == nil {
			continue
		}

		merged, ok := tryEndpointMerge(live[ri], live[rj], s.i, s.j, maxCapacity)
		if !ok {
			continue
		}

		*live[ri] = merged
		live[rj] = nil
		for _, stop := range merged.Stops {
			if stop.Order != 0 && stop.Order != len(merged.Stops)-1 {
				owner[stop.LocationID] = ri
			}
		}
	}

	out := make([]models.Route, 0, len(live))
	for _, r := range live {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// tryEndpointMerge applies the §4.4 endpoint rule: i at the end of r1 with
// j at the start of r2 (r1 ⊕ r2), or j at the end of r2 with i at the
// start of r1 (r2 ⊕ r1). No other combination merges.
func tryEndpointMerge(r1, r2 *models.Route, i, j string, maxCapacity int) (models.Route, bool) {
	if endOf(*r1) == i && startOf(*r2) == j {
		return concatRoutes(*r1, *r2, maxCapacity)
	}
	if endOf(*r2) == j && startOf(*r1) == i {
		return concatRoutes(*r2, *r1, maxCapacity)
	}
	return models.Route{}, false
}

func startOf(r models.Route) string {
	if len(r.Stops) < 2 {
		return ""
	}
	return r.Stops[1].LocationID
}

func endOf(r models.Route) string {
	if len(r.Stops) < 2 {
		return ""
	}
	return r.Stops[len(r.Stops)-2].LocationID
}

// concatRoutes joins head's interior with tail's interior (head ⊕ tail),
// dropping head's trailing depot and tail's leading depot, subject to the
// fleet's max-capacity gate.
func concatRoutes(head, tail models.Route, maxCapacity int) (models.Route, bool) {
	if len(head.Stops) < 2 || len(tail.Stops) < 2 {
		return models.Route{}, false
	}

	combined := routeDemand(head) + routeDemand(tail)
	if combined > maxCapacity {
		return models.Route{}, false
	}

	stops := make([]models.Stop, 0, len(head.Stops)+len(tail.Stops)-2)
	stops = append(stops, head.Stops[:len(head.Stops)-1]...)
	stops = append(stops, tail.Stops[1:]...)

	merged := models.Route{Stops: stops}
	renumberStops(&merged)
	return merged, true
}

// relieveSlotPressure merges routes down toward the fleet's total slot
// count when there are more constructed routes than available vehicles:
// sort by ascending demand, merge the smallest pair that respects
// capacity, and repeat until slots fit or no merge is found.
func relieveSlotPressure(routes []models.Route, totalSlots, maxCapacity int) []models.Route {
	const maxPasses = 1000

	for pass := 0; pass < maxPasses && len(routes) > totalSlots; pass++ {
		sort.SliceStable(routes, func(a, b int) bool { return routeDemand(routes[a]) < routeDemand(routes[b]) })

		mergedAny := false
		for a := 0; a < len(routes) && !mergedAny; a++ {
			for b := a + 1; b < len(routes) && !mergedAny; b++ {
				if merged, ok := tryEndpointMerge(&routes[a], &routes[b], endOf(routes[a]), startOf(routes[b]), maxCapacity); ok {
					routes[a] = merged
					routes = append(routes[:b], routes[b+1:]...)
					mergedAny = true
					continue
				}
				if merged, ok := tryEndpointMerge(&routes[b], &routes[a], endOf(routes[b]), startOf(routes[a]), maxCapacity); ok {
					routes[b] = merged
					routes = append(routes[:a], routes[a+1:]...)
					mergedAny = true
				}
			}
		}

		if !mergedAny {
			break
		}
	}

	return routes
}

// applyBasicLocalSearch is the basic post-construction kernel: 2-opt,
// one 3-opt pass, then 2-opt again.
func applyBasicLocalSearch(route *models.Route, matrix *DistanceMatrix) {
	TwoOpt(route, matrix)
	threeOptSinglePass(route, matrix)
	TwoOpt(route, matrix)
}

// threeOptSinglePass runs one outer sweep of 3-opt reconnections without
// the TwoOpt-to-convergence loop ThreeOpt itself performs.
func threeOptSinglePass(route *models.Route, matrix *DistanceMatrix) {
	start, end := interior(route)
	if end-start < 3 {
		return
	}
	for i := start; i < end-2; i++ {
		for j := i + 1; j < end-1; j++ {
			for k := j + 1; k < end; k++ {
				if applyBestThreeOptReconnection(route, matrix, i, j, k) {
					return
				}
			}
		}
	}
}
