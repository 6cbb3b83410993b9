package cvrp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, clamp(1, 5, 10))
	assert.Equal(t, 10, clamp(20, 5, 10))
	assert.Equal(t, 7, clamp(7, 5, 10))
}

func TestNewRNG_SeededIsReproducible(t *testing.T) {
	seed := int64(42)
	a := newRNG(&seed)
	b := newRNG(&seed)

	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Int63(), b.Int63())
	}
}

func TestCancelToken_NilIsNeverCancelled(t *testing.T) {
	var token *CancelToken
	assert.False(t, token.Cancelled())
	token.Cancel() // must not panic
}

func TestCancelToken_CancelIsIdempotentAndObservable(t *testing.T) {
	token := NewCancelToken()
	assert.False(t, token.Cancelled())

	token.Cancel()
	token.Cancel() // must not panic or block on double-close

	assert.True(t, token.Cancelled())
}

func TestSolutionKey_OrderIndependentAcrossRoutes(t *testing.T) {
	routeA := models.Route{Stops: []models.Stop{{LocationID: "D"}, {LocationID: "A"}, {LocationID: "D"}}}
	routeB := models.Route{Stops: []models.Stop{{LocationID: "D"}, {LocationID: "B"}, {LocationID: "D"}}}

	keyAB := solutionKey([]models.Route{routeA, routeB})
	keyBA := solutionKey([]models.Route{routeB, routeA})

	assert.Equal(t, keyAB, keyBA)
}

func TestSolutionKey_DiffersWhenStopsDiffer(t *testing.T) {
	routeA := models.Route{Stops: []models.Stop{{LocationID: "D"}, {LocationID: "A"}, {LocationID: "D"}}}
	routeC := models.Route{Stops: []models.Stop{{LocationID: "D"}, {LocationID: "C"}, {LocationID: "D"}}}

	assert.NotEqual(t, solutionKey([]models.Route{routeA}), solutionKey([]models.Route{routeC}))
}
