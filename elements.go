package sgp4

import (
	"fmt"
	"math"
	"time"
)

// Elements holds a satellite's mean orbital elements at a reference epoch,
// normalized to radians and radians per minute. This is the input record of
// the propagator; it is never mutated.
type Elements struct {
	Name    string
	NoradID int

	Epoch           time.Time
	MeanAnomaly     float64 // rad
	AscendingNode   float64 // right ascension of the ascending node, rad
	ArgumentPerigee float64 // rad
	Eccentricity    float64
	Inclination     float64 // rad
	MeanMotion      float64 // Kozai mean motion, rad/min
	Bstar           float64 // drag term, 1/Earth radii
}

func (el Elements) String() string {
	return fmt.Sprintf("Elements{%s #%d e=%f i=%f n=%f @ %s}", el.Name, el.NoradID,
		el.Eccentricity, el.Inclination/deg2rad, el.MeanMotion, el.Epoch.Format(time.RFC3339))
}

// validate enforces the documented legal ranges at configuration time.
func (el Elements) validate() error {
	if el.Eccentricity < 0.0 || el.Eccentricity > 1.0-1.0e-3 {
		return ConfigurationError{Field: "eccentricity", Value: el.Eccentricity}
	}
	if el.Inclination < 0.0 || el.Inclination > math.Pi {
		return ConfigurationError{Field: "inclination", Value: el.Inclination}
	}
	return nil
}
