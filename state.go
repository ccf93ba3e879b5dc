package sgp4

import (
	"fmt"
	"time"
)

// State is an Earth-centered-inertial position/velocity fix at an absolute
// time. Positions are in kilometers, velocities in kilometers per second.
type State struct {
	DT time.Time
	R  []float64 // km
	V  []float64 // km/s
}

func (s State) String() string {
	return fmt.Sprintf("R=[%.3f %.3f %.3f] km V=[%.6f %.6f %.6f] km/s @ %s",
		s.R[0], s.R[1], s.R[2], s.V[0], s.V[1], s.V[2], s.DT.Format(time.RFC3339))
}

// RNorm returns the geocentric distance in km.
func (s State) RNorm() float64 {
	return norm(s.R)
}

// VNorm returns the speed in km/s.
func (s State) VNorm() float64 {
	return norm(s.V)
}
