package cvrp

import (
	"fmt"
	"sort"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// unassignedVehicleName is the sentinel the caller sees on a route that
// could not be placed on any vehicle slot.
const unassignedVehicleName = "Unassigned — Insufficient Capacity"

// vehicleSlot is the mutable expansion of one physical vehicle used only
// during assignment; it is distinct from models.VehicleSlot, which is the
// read-only, serializable view exposed to callers.
type vehicleSlot struct {
	id          string
	typeID      string
	name        string
	capacity    int
	used        bool
	currentLoad int
}

// ExpandVehicleSlots emits Count independent, identically-capacitied
// slots per vehicle type. Slot IDs are stable and deterministic given
// the caller's vehicle ordering.
func ExpandVehicleSlots(vehicles []models.VehicleType) []models.VehicleSlot {
	slots := make([]models.VehicleSlot, 0)
	for _, v := range vehicles {
		for n := 0; n < v.Count; n++ {
			slots = append(slots, models.VehicleSlot{
				ID:       fmt.Sprintf("%s-slot-%d", v.ID, n),
				TypeID:   v.ID,
				Name:     fmt.Sprintf("%s #%d", v.Name, n+1),
				Capacity: v.Capacity,
			})
		}
	}
	return slots
}

func expandMutableSlots(vehicles []models.VehicleType) []*vehicleSlot {
	public := ExpandVehicleSlots(vehicles)
	out := make([]*vehicleSlot, len(public))
	for i, s := range public {
		out[i] = &vehicleSlot{id: s.ID, typeID: s.TypeID, name: s.Name, capacity: s.Capacity}
	}
	return out
}

// AssignVehicles converts a raw, slot-less route set into a feasible,
// capacity-respecting assignment: strict best-fit assignment, then
// packing, splitting and singleton placement for whatever doesn't fit
// on the first pass. The supplied localSearch is reapplied to every
// route once assignment settles, applying the local-search kernel of
// the invoking algorithm once more.
func AssignVehicles(routes []models.Route, vehicles []models.VehicleType, matrix *DistanceMatrix, localSearch func(*models.Route, *DistanceMatrix)) []models.Route {
	slots := expandMutableSlots(vehicles)

	pending := cloneRoutes(routes)
	sort.SliceStable(pending, func(a, b int) bool { return routeDemand(pending[a]) > routeDemand(pending[b]) })
	sort.SliceStable(slots, func(a, b int) bool { return slots[a].capacity > slots[b].capacity })

	assigned, unassigned := strictBestFitAssign(pending, slots)
	assigned, unassigned = packIntoUsedSlots(assigned, unassigned, slots, matrix)
	assigned, unassigned = splitLargeUnassigned(assigned, unassigned, slots, matrix)
	assigned = assignSingletons(assigned, unassigned, slots)

	for i := range assigned {
		RecomputeRouteMetrics(&assigned[i], matrix)
		if localSearch != nil {
			localSearch(&assigned[i], matrix)
		}
	}

	return assigned
}

// strictBestFitAssign is §4.13 step 2: for each route (demand
// descending), assign the smallest unused slot whose capacity covers the
// route's demand, picking the slot that minimizes leftover slack.
func strictBestFitAssign(routes []models.Route, slots []*vehicleSlot) (assigned []models.Route, unassigned []models.Route) {
	for _, route := range routes {
		demand := routeDemand(route)
		best := bestFitSlot(slots, demand)
		if best == nil {
			unassigned = append(unassigned, route)
			continue
		}

		best.used = true
		best.currentLoad += demand
		route.VehicleID = best.id
		route.VehicleName = best.name
		assigned = append(assigned, route)
	}
	return assigned, unassigned
}

// bestFitSlot picks the unused slot minimizing capacity-(currentLoad+demand)
// among slots that can still carry demand.
func bestFitSlot(slots []*vehicleSlot, demand int) *vehicleSlot {
	var best *vehicleSlot
	bestSlack := -1

	for _, s := range slots {
		if s.used || s.capacity-s.currentLoad < demand {
			continue
		}
		slack := s.capacity - (s.currentLoad + demand)
		if best == nil || slack < bestSlack {
			best = s
			bestSlack = slack
		}
	}
	return best
}

// packIntoUsedSlots is §4.13 step 3: merge a still-unassigned route's
// interior into an already-used slot's route if that slot has enough
// remaining capacity, splicing the interior stops before the target
// route's trailing depot.
func packIntoUsedSlots(assigned, unassigned []models.Route, slots []*vehicleSlot, matrix *DistanceMatrix) ([]models.Route, []models.Route) {
	var stillUnassigned []models.Route

	for _, route := range unassigned {
		demand := routeDemand(route)
		targetIdx, slot := findUsedSlotWithRoom(assigned, slots, demand)
		if slot == nil {
			stillUnassigned = append(stillUnassigned, route)
			continue
		}

		assigned[targetIdx] = spliceRouteInto(assigned[targetIdx], route)
		RecomputeRouteMetrics(&assigned[targetIdx], matrix)
		slot.currentLoad += demand
	}

	return assigned, stillUnassigned
}

func findUsedSlotWithRoom(assigned []models.Route, slots []*vehicleSlot, demand int) (int, *vehicleSlot) {
	for _, s := range slots {
		if !s.used || s.capacity-s.currentLoad < demand {
			continue
		}
		for idx, r := range assigned {
			if r.VehicleID == s.id {
				return idx, s
			}
		}
	}
	return -1, nil
}

// spliceRouteInto concatenates extra's interior stops before target's
// trailing depot and renumbers Order uniformly.
func spliceRouteInto(target, extra models.Route) models.Route {
	if len(target.Stops) == 0 {
		return extra
	}
	extraStart, extraEnd := interior(&extra)

	stops := make([]models.Stop, 0, len(target.Stops)+extraEnd-extraStart)
	stops = append(stops, target.Stops[:len(target.Stops)-1]...)
	stops = append(stops, extra.Stops[extraStart:extraEnd]...)
	stops = append(stops, target.Stops[len(target.Stops)-1])

	target.Stops = stops
	renumberStops(&target)
	return target
}

// splitLargeUnassigned is §4.13 step 4: walk an unassigned route's
// interior left to right, accumulating stops into the current slot until
// the next stop would overflow it, closing that slot as a new route and
// claiming a fresh unused slot for the remainder. Stops no slot can carry
// at all are skipped.
func splitLargeUnassigned(assigned, unassigned []models.Route, slots []*vehicleSlot, matrix *DistanceMatrix) ([]models.Route, []models.Route) {
	var stillUnassigned []models.Route

	for _, route := range unassigned {
		start, end := interior(&route)
		if end-start <= 1 {
			stillUnassigned = append(stillUnassigned, route)
			continue
		}

		depotStop := route.Stops[0]
		var current []models.Stop
		var currentSlot *vehicleSlot
		load := 0

		flush := func() {
			if currentSlot == nil || len(current) == 0 {
				return
			}
			stops := append([]models.Stop{depotStop}, current...)
			stops = append(stops, depotStop)
			r := models.Route{Stops: stops, VehicleID: currentSlot.id, VehicleName: currentSlot.name}
			RecomputeRouteMetrics(&r, matrix)
			assigned = append(assigned, r)
			currentSlot.currentLoad += load
			current = nil
			load = 0
		}

		for i := start; i < end; i++ {
			stop := route.Stops[i]
			if currentSlot == nil || load+stop.Demand > currentSlot.capacity-currentSlot.currentLoad {
				flush()
				currentSlot = firstUnusedSlotFitting(slots, stop.Demand)
				if currentSlot == nil {
					continue // no slot anywhere can carry this stop
				}
				currentSlot.used = true
			}
			current = append(current, stop)
			load += stop.Demand
		}
		flush()
	}

	return assigned, stillUnassigned
}

func firstUnusedSlotFitting(slots []*vehicleSlot, demand int) *vehicleSlot {
	for _, s := range slots {
		if !s.used && s.capacity >= demand {
			return s
		}
	}
	return nil
}

// assignSingletons is §4.13 step 5: a remaining one-stop route takes any
// unused slot that fits; if none fits, it is marked capacity-exceeded and
// left without a vehicle.
func assignSingletons(assigned, unassigned []models.Route, slots []*vehicleSlot) []models.Route {
	for _, route := range unassigned {
		demand := routeDemand(route)
		slot := firstUnusedSlotFitting(slots, demand)
		if slot == nil {
			route.CapacityExceeded = true
			route.VehicleID = ""
			route.VehicleName = unassignedVehicleName
			assigned = append(assigned, route)
			continue
		}

		slot.used = true
		slot.currentLoad += demand
		route.VehicleID = slot.id
		route.VehicleName = slot.name
		assigned = append(assigned, route)
	}
	return assigned
}
