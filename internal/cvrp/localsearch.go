package cvrp

import "github.com/tobangado69/cvrp-solver/pkg/models"

// improvementTolerance is the epsilon below which a candidate move is not
// considered an improvement, guarding against floating-point noise
// re-accepting a no-op move forever.
const improvementTolerance = 1e-9

// TwoOpt runs 2-opt to a fixed point on route's interior using
// first-improvement descent: for each pair (i,k), reversing stops[i..=k]
// is accepted as soon as it strictly reduces total distance, and full
// sweeps repeat until one yields no improvement.
func TwoOpt(route *models.Route, matrix *DistanceMatrix) {
	for {
		improved := false
		start, end := interior(route)
		for i := start; i < end-1; i++ {
			for k := i + 1; k < end; k++ {
				if tryTwoOptMove(route, matrix, i, k) {
					improved = true
				}
			}
		}
		if !improved {
			return
		}
	}
}

func tryTwoOptMove(route *models.Route, matrix *DistanceMatrix, i, k int) bool {
	stops := route.Stops
	before := edgeCost(matrix, stops[i-1], stops[i]) + edgeCost(matrix, stops[k], stops[k+1])
	after := edgeCost(matrix, stops[i-1], stops[k]) + edgeCost(matrix, stops[i], stops[k+1])

	if before-after > improvementTolerance {
		reverseSegment(stops, i, k)
		RecomputeRouteMetrics(route, matrix)
		return true
	}
	return false
}

func edgeCost(matrix *DistanceMatrix, a, b models.Stop) float64 {
	return matrix.Distance(a.LocationID, b.LocationID)
}

func reverseSegment(stops []models.Stop, i, k int) {
	for i < k {
		stops[i], stops[k] = stops[k], stops[i]
		i++
		k--
	}
}

// ThreeOpt considers every triple (i,j,k) over route's interior, splits it
// into segments A|B|C|D, and takes the best-improving one of the six
// standard reconnections for that triple (best-of-six local,
// first-improving across triples). After any accepted move it reruns
// TwoOpt to convergence.
func ThreeOpt(route *models.Route, matrix *DistanceMatrix) {
	for {
		start, end := interior(route)
		n := end - start
		if n < 3 {
			return
		}

		accepted := false
		for i := start; i < end-2 && !accepted; i++ {
			for j := i + 1; j < end-1 && !accepted; j++ {
				for k := j + 1; k < end && !accepted; k++ {
					if applyBestThreeOptReconnection(route, matrix, i, j, k) {
						accepted = true
					}
				}
			}
		}

		if !accepted {
			return
		}
		TwoOpt(route, matrix)
	}
}

// applyBestThreeOptReconnection evaluates the six reconnections of a
// segment split at (i,j,k) and applies the best-improving one, if any.
func applyBestThreeOptReconnection(route *models.Route, matrix *DistanceMatrix, i, j, k int) bool {
	stops := route.Stops
	segA := stops[:i]
	segB := append([]models.Stop{}, stops[i:j]...)
	segC := append([]models.Stop{}, stops[j:k]...)
	segD := stops[k:]

	reversedB := reversedCopy(segB)
	reversedC := reversedCopy(segC)

	candidates := [][]models.Stop{
		concatStops(segA, segB, segC, segD),        // identity (no-op, baseline)
		concatStops(segA, reversedB, segC, segD),   // reverse B
		concatStops(segA, segB, reversedC, segD),   // reverse C
		concatStops(segA, segC, segB, segD),        // swap B and C
		concatStops(segA, reversedC, segB, segD),   // swap, C reversed
		concatStops(segA, segC, reversedB, segD),   // swap, B reversed
		concatStops(segA, reversedC, reversedB, segD), // double reverse
	}

	baseline := candidates[0]
	baselineCost := sequenceCost(matrix, baseline)

	bestIdx := -1
	bestCost := baselineCost
	for idx := 1; idx < len(candidates); idx++ {
		cost := sequenceCost(matrix, candidates[idx])
		if baselineCost-cost > improvementTolerance && cost < bestCost {
			bestCost = cost
			bestIdx = idx
		}
	}

	if bestIdx == -1 {
		return false
	}

	route.Stops = candidates[bestIdx]
	RecomputeRouteMetrics(route, matrix)
	return true
}

func reversedCopy(stops []models.Stop) []models.Stop {
	out := make([]models.Stop, len(stops))
	for i, s := range stops {
		out[len(stops)-1-i] = s
	}
	return out
}

func concatStops(segments ...[]models.Stop) []models.Stop {
	total := 0
	for _, s := range segments {
		total += len(s)
	}
	out := make([]models.Stop, 0, total)
	for _, s := range segments {
		out = append(out, s...)
	}
	return out
}

func sequenceCost(matrix *DistanceMatrix, stops []models.Stop) float64 {
	var cost float64
	for i := 1; i < len(stops); i++ {
		cost += matrix.Distance(stops[i-1].LocationID, stops[i].LocationID)
	}
	return cost
}

// OrOpt lifts segments of length 1, 2 and 3 from route's interior and
// reinserts them at every other interior position, accepting the first
// improving move it finds. It is used only by the enhanced local-search
// kernel; basic Clarke-Wright never calls it.
func OrOpt(route *models.Route, matrix *DistanceMatrix) {
	for {
		if !orOptSweep(route, matrix) {
			return
		}
	}
}

func orOptSweep(route *models.Route, matrix *DistanceMatrix) bool {
	for segLen := 1; segLen <= 3; segLen++ {
		start, end := interior(route)
		for i := start; i+segLen <= end; i++ {
			for j := start; j <= end-segLen; j++ {
				if j >= i && j <= i+segLen {
					continue // reinsertion would be a no-op / overlap
				}
				if tryOrOptMove(route, matrix, i, segLen, j) {
					return true
				}
			}
		}
	}
	return false
}

func tryOrOptMove(route *models.Route, matrix *DistanceMatrix, i, segLen, j int) bool {
	before := cloneStopSlice(route.Stops)
	beforeCost := sequenceCost(matrix, before)

	candidate := relocateSegment(before, i, segLen, j)
	afterCost := sequenceCost(matrix, candidate)

	if beforeCost-afterCost > improvementTolerance {
		route.Stops = candidate
		RecomputeRouteMetrics(route, matrix)
		return true
	}
	return false
}

func cloneStopSlice(stops []models.Stop) []models.Stop {
	out := make([]models.Stop, len(stops))
	copy(out, stops)
	return out
}

// relocateSegment lifts stops[i:i+segLen] and reinserts it next to the
// stop originally at index j: before it when j < i, after it when j > i.
func relocateSegment(stops []models.Stop, i, segLen, j int) []models.Stop {
	segment := append([]models.Stop{}, stops[i:i+segLen]...)

	remaining := make([]models.Stop, 0, len(stops)-segLen)
	remaining = append(remaining, stops[:i]...)
	remaining = append(remaining, stops[i+segLen:]...)

	insertAt := j
	if j > i {
		insertAt = j - segLen + 1
	}
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(remaining) {
		insertAt = len(remaining)
	}

	out := make([]models.Stop, 0, len(stops))
	out = append(out, remaining[:insertAt]...)
	out = append(out, segment...)
	out = append(out, remaining[insertAt:]...)
	return out
}
