package cvrp

import (
	"sort"
	"strings"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// solutionKey canonicalizes a route set for Tabu Search's memory: each
// route's stop IDs joined with "-", the resulting per-route strings
// sorted, then joined with "|".
func solutionKey(routes []models.Route) string {
	keys := make([]string, len(routes))
	for i, r := range routes {
		ids := make([]string, len(r.Stops))
		for j, s := range r.Stops {
			ids[j] = s.LocationID
		}
		keys[i] = strings.Join(ids, "-")
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}
