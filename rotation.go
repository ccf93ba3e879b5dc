package sgp4

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

const (
	// EarthRotationRate is the average Earth rotation rate in radians per second.
	EarthRotationRate = 7.2921158553e-5
)

// R3 rotation about the 3rd axis.
func R3(x float64) *mat64.Dense {
	s, c := math.Sincos(x)
	return mat64.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat64.Dense, v []float64) (o []float64) {
	vVec := mat64.NewVector(len(v), v)
	var rVec mat64.Vector
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// ECI2ECEF rotates an inertial vector into the Earth-fixed frame for the
// given sidereal angle.
func ECI2ECEF(R []float64, θgst float64) []float64 {
	return MxV33(R3(θgst), R)
}

// ECEF2ECI rotates an Earth-fixed vector into the inertial frame for the
// given sidereal angle.
func ECEF2ECI(R []float64, θgst float64) []float64 {
	return ECI2ECEF(R, -θgst)
}
