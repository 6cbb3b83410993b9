package cvrp

import "github.com/tobangado69/cvrp-solver/pkg/models"

// DistanceMatrix is the symmetric, all-pairs km cache the routing engine
// consults instead of recomputing haversineDistance in inner loops. It
// is built once per solve and is read-only across every algorithm the
// comparison driver runs.
type DistanceMatrix struct {
	byID map[string]map[string]float64
	locs map[string]models.Location
}

// BuildDistanceMatrix computes the n×n distance cache for a set of
// locations, keyed by location ID. The diagonal is zero; off-diagonal
// entries are symmetric by construction.
func BuildDistanceMatrix(locations []models.Location) *DistanceMatrix {
	m := &DistanceMatrix{
		byID: make(map[string]map[string]float64, len(locations)),
		locs: make(map[string]models.Location, len(locations)),
	}

	for _, loc := range locations {
		m.locs[loc.ID] = loc
		m.byID[loc.ID] = make(map[string]float64, len(locations))
	}

	for i, a := range locations {
		m.byID[a.ID][a.ID] = 0
		for j := i + 1; j < len(locations); j++ {
			b := locations[j]
			d := haversineDistance(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
			m.byID[a.ID][b.ID] = d
			m.byID[b.ID][a.ID] = d
		}
	}

	return m
}

// Distance returns the cached km distance between two location IDs,
// falling back to a direct haversine computation when the pair is not
// cached but both locations are known. It returns 0 when either ID is
// unknown.
func (m *DistanceMatrix) Distance(fromID, toID string) float64 {
	if fromID == toID {
		return 0
	}
	if row, ok := m.byID[fromID]; ok {
		if d, ok := row[toID]; ok {
			return d
		}
	}

	from, fok := m.locs[fromID]
	to, tok := m.locs[toID]
	if !fok || !tok {
		return 0
	}
	return haversineDistance(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
}

// Location returns the location registered under id and whether it exists.
func (m *DistanceMatrix) Location(id string) (models.Location, bool) {
	loc, ok := m.locs[id]
	return loc, ok
}
