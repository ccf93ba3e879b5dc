package sgp4

import "math"

// The SGP4/SDP4 series is defined against the WGS-72 low precision gravity
// model together with a fixed set of lunar and solar mean elements. Every
// literal of the model lives here so that the near-earth and deep-space
// branches can never drift apart.
const (
	// EarthRadiusKm is the equatorial radius of the Earth (XKMPER), which is
	// also the distance unit of the model: positions are computed in Earth
	// radii and scaled to kilometers on output.
	EarthRadiusKm = 6378.135
	// EarthFlattening of the reference ellipsoid used for geodetic output.
	EarthFlattening = 1.0 / 298.26
	// GMEarth is μ⊕ in km³/s².
	GMEarth = 398600.8

	ae = 1.0   // distance unit in Earth radii
	q0 = 120.0 // density function upper altitude bound, km
	s0 = 78.0  // density function reference altitude, km

	j2 = 1.082616e-3 // second zonal harmonic
	j3 = -2.53881e-6 // third zonal harmonic
	j4 = -1.65597e-6 // fourth zonal harmonic

	twoPi     = 2 * math.Pi
	twothird  = 2.0 / 3.0
	deg2rad   = math.Pi / 180
	minPerDay = 1440.0

	// thdt is the Earth rotation rate in radians per minute.
	thdt = 4.37526908801129966e-3
)

// Derived gravity constants. xke is the square root of μ⊕ expressed in
// (Earth radii)³/min².
var (
	xke    = 60.0 / math.Sqrt(EarthRadiusKm*EarthRadiusKm*EarthRadiusKm/GMEarth)
	ck2    = 0.5 * j2 * ae * ae
	ck4    = -0.375 * j4 * ae * ae * ae * ae
	qoms2t = math.Pow((q0-s0)/EarthRadiusKm, 4)
	sCoef  = ae * (1.0 + s0/EarthRadiusKm)
	a3ovk2 = -j3 / ck2 * ae * ae * ae
)

// Lunar and solar mean elements at the 1900 reference epoch, and the
// amplitude constants of the deep-space perturbation series.
const (
	zns  = 1.19459e-5 // solar mean motion, rad/min
	zes  = 0.01675    // solar eccentricity
	c1ss = 2.9864797e-6
	znl  = 1.5835218e-4 // lunar mean motion, rad/min
	zel  = 0.05490      // lunar eccentricity
	c1l  = 4.7968065e-7

	// orientation of the ecliptic on the equator
	zcosis = 0.91744867
	zsinis = 0.39785416
	zsings = -0.98088458
	zcosgs = 0.1945905
)

// Geopotential resonance constants: the Q/ROOT amplitudes and the G/FASX
// phase angles of the 24-hour and 12-hour commensurability terms.
const (
	q22    = 1.7891679e-6
	q31    = 2.1460748e-6
	q33    = 2.2123015e-7
	root22 = 1.7891679e-6
	root32 = 3.7393792e-7
	root44 = 7.3636953e-9
	root52 = 1.1428639e-7
	root54 = 2.1765803e-9

	g22   = 5.7686396
	g32   = 0.95240898
	g44   = 1.8014998
	g52   = 1.0508330
	g54   = 4.4108898
	fasx2 = 0.13130908
	fasx4 = 2.8843198
	fasx6 = 0.37448087
)
