package sgp4

import "fmt"

// ConfigurationError reports an element set rejected at configuration time.
// The offending field is either "eccentricity" or "inclination".
type ConfigurationError struct {
	Field string
	Value float64
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("sgp4: %s out of range: %g", e.Field, e.Value)
}

// PropagationReason classifies why a propagation call failed. All failures
// are deterministic consequences of the element set and requested offset,
// never transient: a failed offset will fail again.
type PropagationReason uint8

const (
	// ReasonNegativeMeanMotion: the deep-space secular update drove the mean
	// motion to zero or below.
	ReasonNegativeMeanMotion PropagationReason = iota + 1
	// ReasonEccentricityOutOfBounds: perturbed eccentricity reached 1.0 or
	// fell below -0.001.
	ReasonEccentricityOutOfBounds
	// ReasonInvalidGeometry: the semi-latus rectum came out negative.
	ReasonInvalidGeometry
	// ReasonSubOrbitalDecay: the orbital radius dropped below one Earth
	// radius. The object is no longer trackable with this element set.
	ReasonSubOrbitalDecay
)

func (r PropagationReason) String() string {
	switch r {
	case ReasonNegativeMeanMotion:
		return "negative mean motion"
	case ReasonEccentricityOutOfBounds:
		return "eccentricity out of bounds"
	case ReasonInvalidGeometry:
		return "negative semi-latus rectum"
	case ReasonSubOrbitalDecay:
		return "suborbital decay"
	default:
		return "unknown"
	}
}

// PropagationError reports a failed propagation. Tsince is the requested
// offset in minutes since epoch, Value the quantity that violated the model
// bound.
type PropagationError struct {
	Reason PropagationReason
	Tsince float64
	Value  float64
}

func (e PropagationError) Error() string {
	return fmt.Sprintf("sgp4: %s at tsince=%.4f min (value %g)", e.Reason, e.Tsince, e.Value)
}

// Decayed returns whether the failure means the object has reentered.
func (e PropagationError) Decayed() bool {
	return e.Reason == ReasonSubOrbitalDecay
}
