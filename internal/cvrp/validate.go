package cvrp

import (
	"github.com/tobangado69/cvrp-solver/pkg/errors"
	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// maxLocations and maxVehicleTypes are the hard input limits on any
// instance. Exceeding either is a BadInput error, never a silent
// truncation.
const (
	maxLocations    = 100
	maxVehicleTypes = 20
)

// ValidateInstance checks these limits and the instance's basic shape
// before any algorithm runs, and returns the located depot for
// convenience.
func ValidateInstance(instance models.Instance) (models.Location, error) {
	if len(instance.Vehicles) == 0 {
		return models.Location{}, errors.NewBadInputError("at least one vehicle type is required")
	}
	if len(instance.Locations) == 0 {
		return models.Location{}, errors.NewBadInputError("at least one location is required")
	}
	if len(instance.Locations) > maxLocations {
		return models.Location{}, errors.NewBadInputError("instance exceeds the 100-location limit")
	}
	if len(instance.Vehicles) > maxVehicleTypes {
		return models.Location{}, errors.NewBadInputError("instance exceeds the 20-vehicle-type limit")
	}

	var depot models.Location
	depotCount := 0
	for _, loc := range instance.Locations {
		if !validCoordinate(loc.Latitude, loc.Longitude) {
			return models.Location{}, errors.NewBadInputError("location " + loc.ID + " has non-finite coordinates")
		}
		if loc.Depot {
			depot = loc
			depotCount++
		}
	}
	if depotCount != 1 {
		return models.Location{}, errors.NewBadInputError("exactly one location must be marked as the depot")
	}

	for _, v := range instance.Vehicles {
		if v.Capacity <= 0 {
			return models.Location{}, errors.NewBadInputError("vehicle type " + v.ID + " must have positive capacity")
		}
		if v.Count <= 0 {
			return models.Location{}, errors.NewBadInputError("vehicle type " + v.ID + " must have a positive count")
		}
	}

	return depot, nil
}
