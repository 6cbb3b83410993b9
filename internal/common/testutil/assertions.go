package testutil

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertValidUUID checks if a string is a valid UUID
func AssertValidUUID(t *testing.T, id string, msgAndArgs ...interface{}) bool {
	uuidRegex := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	return assert.Regexp(t, uuidRegex, id, msgAndArgs...)
}

// AssertValidCoordinate checks that a latitude/longitude pair falls within
// the valid range the haversine distance calculation assumes.
func AssertValidCoordinate(t *testing.T, latitude, longitude float64, msgAndArgs ...interface{}) bool {
	okLat := assert.GreaterOrEqual(t, latitude, -90.0, msgAndArgs...) && assert.LessOrEqual(t, latitude, 90.0, msgAndArgs...)
	okLon := assert.GreaterOrEqual(t, longitude, -180.0, msgAndArgs...) && assert.LessOrEqual(t, longitude, 180.0, msgAndArgs...)
	return okLat && okLon
}
