package cvrp

import (
	"context"
	"fmt"

	cvrperrors "github.com/tobangado69/cvrp-solver/pkg/errors"
	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// RunOptions configures a single low-level algorithm invocation.
type RunOptions struct {
	Seed           *int64
	Cancel         *CancelToken
	Context        context.Context
	ExternalClient ExternalSolverClient
}

func defaultContext() context.Context { return context.Background() }

func unknownAlgorithmError(algo Algorithm) error {
	return cvrperrors.NewBadInputError(fmt.Sprintf("unknown algorithm %q", algo))
}

// SolveMode selects between running one algorithm and running the full
// comparison.
type SolveMode string

const (
	ModeSingle  SolveMode = "single"
	ModeCompare SolveMode = "compare"
)

// SolveOptions is the high-level entry point's options argument.
type SolveOptions struct {
	Mode      SolveMode
	Algorithm Algorithm // required when Mode == ModeSingle
	RunOptions
}

// Solve is the routing engine's high-level entry point: it validates
// the instance, then either runs one algorithm or the full eight-way
// comparison, assigning vehicles and computing aggregates either way.
func Solve(instance models.Instance, options SolveOptions) (models.SolveResult, error) {
	depot, err := ValidateInstance(instance)
	if err != nil {
		return models.SolveResult{}, err
	}

	if options.Mode == ModeCompare {
		return Compare(instance, options.RunOptions)
	}
	return solveSingle(instance, depot, options)
}

func solveSingle(instance models.Instance, depot models.Location, options SolveOptions) (models.SolveResult, error) {
	routes, err := RunAlgorithm(options.Algorithm, instance.Vehicles, instance.Locations, depot, options.RunOptions)
	if err != nil {
		return models.SolveResult{}, cvrperrors.NewAlgorithmFailureError(string(options.Algorithm), err)
	}

	matrix := BuildDistanceMatrix(instance.Locations)
	assigned := AssignVehicles(routes, instance.Vehicles, matrix, localSearchFor(options.Algorithm))

	solution := buildSolution(string(options.Algorithm), assigned, instance, 0)

	return models.SolveResult{
		SelectedAlgorithm: string(options.Algorithm),
		Routes:            solution.Routes,
		TotalDistance:     solution.TotalDistance,
		TotalDuration:     solution.TotalDuration,
		ComparisonRun:     false,
	}, nil
}
