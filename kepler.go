package sgp4

import "math"

// geometry bundles an inclination together with the trigonometric
// combinations the long- and short-period corrections need. The near-earth
// branch computes it once at configuration; the deep-space branch rebuilds
// it on every call because the periodic corrections move the inclination.
type geometry struct {
	incl   float64
	sinio  float64
	cosio  float64
	x3thm1 float64
	x1mth2 float64
	x7thm1 float64
	xlcof  float64
	aycof  float64
}

func newGeometry(incl float64) geometry {
	g := geometry{incl: incl}
	g.sinio = math.Sin(incl)
	g.cosio = math.Cos(incl)
	theta2 := g.cosio * g.cosio
	g.x3thm1 = 3.0*theta2 - 1.0
	g.x1mth2 = 1.0 - theta2
	g.x7thm1 = 7.0*theta2 - 1.0
	// guard the retrograde-equatorial pole of the long-period coefficient
	if math.Abs(g.cosio+1.0) > 1.5e-12 {
		g.xlcof = 0.125 * a3ovk2 * g.sinio * (3.0 + 5.0*g.cosio) / (1.0 + g.cosio)
	} else {
		g.xlcof = 0.125 * a3ovk2 * g.sinio * (3.0 + 5.0*g.cosio) / 1.5e-12
	}
	g.aycof = 0.25 * a3ovk2 * g.sinio
	return g
}

// solveKepler solves Kepler's equation in rectangular-eccentricity form,
//
//	capu = epw - ayn·cos(epw) + axn·sin(epw),
//
// by bounded Newton-Raphson: at most 10 iterations, converged when the
// residual drops below 1e-12. The first step is clamped to ±1.25·e to keep
// high-eccentricity cases from overshooting; later steps apply a
// second-order correction. Returns sin/cos of the eccentric longitude and
// the e·cosE / e·sinE products the position composition needs.
func solveKepler(capu, axn, ayn float64) (sinepw, cosepw, ecose, esine float64) {
	epw := capu
	maxStep := 1.25 * math.Abs(math.Sqrt(axn*axn+ayn*ayn))
	for i := 0; i < 10; i++ {
		sinepw = math.Sin(epw)
		cosepw = math.Cos(epw)
		ecose = axn*cosepw + ayn*sinepw
		esine = axn*sinepw - ayn*cosepw
		f := capu - epw + esine
		if math.Abs(f) < 1.0e-12 {
			break
		}
		fdot := 1.0 - ecose
		delta := f / fdot
		if i == 0 {
			if delta > maxStep {
				delta = maxStep
			} else if delta < -maxStep {
				delta = -maxStep
			}
		} else {
			delta = f / (fdot + 0.5*esine*delta)
		}
		epw += delta
	}
	return sinepw, cosepw, ecose, esine
}

// composeState turns the perturbed mean elements of one propagation call
// into an inertial position/velocity fix. The orbital-plane coordinates come
// out of the Kepler solution, short-period corrections are applied, and the
// result is rotated to the equatorial frame and scaled to km and km/s.
func (p *Propagator) composeState(tsince, e, a, omega, xl, xnode float64, g geometry) (State, error) {
	beta := math.Sqrt(1.0 - e*e)
	xn := xke / math.Pow(a, 1.5)

	// long period periodics
	axn := e * math.Cos(omega)
	temp := 1.0 / (a * beta * beta)
	xll := temp * g.xlcof * axn
	aynl := temp * g.aycof
	xlt := xl + xll
	ayn := e*math.Sin(omega) + aynl
	elsq := axn*axn + ayn*ayn
	capu := math.Mod(xlt-xnode, twoPi)

	sinepw, cosepw, ecose, esine := solveKepler(capu, axn, ayn)

	// short period preliminary quantities
	temp = 1.0 - elsq
	pl := a * temp
	if pl < 0.0 {
		return State{}, PropagationError{Reason: ReasonInvalidGeometry, Tsince: tsince, Value: pl}
	}
	r := a * (1.0 - ecose)
	temp1 := 1.0 / r
	rdot := xke * math.Sqrt(a) * esine * temp1
	rfdot := xke * math.Sqrt(pl) * temp1
	temp2 := a * temp1
	betal := math.Sqrt(temp)
	temp3 := 1.0 / (1.0 + betal)
	cosu := temp2 * (cosepw - axn + ayn*esine*temp3)
	sinu := temp2 * (sinepw - ayn - axn*esine*temp3)
	u := math.Atan2(sinu, cosu)
	sin2u := 2.0 * sinu * cosu
	cos2u := 2.0*cosu*cosu - 1.0

	temp = 1.0 / pl
	temp1 = ck2 * temp
	temp2 = temp1 * temp

	rk := r*(1.0-1.5*temp2*betal*g.x3thm1) + 0.5*temp1*g.x1mth2*cos2u
	uk := u - 0.25*temp2*g.x7thm1*sin2u
	xnodek := xnode + 1.5*temp2*g.cosio*sin2u
	xinck := g.incl + 1.5*temp2*g.cosio*g.sinio*cos2u
	rdotk := rdot - xn*temp1*g.x1mth2*sin2u
	rfdotk := rfdot + xn*temp1*(g.x1mth2*cos2u+1.5*g.x3thm1)

	if rk < 1.0 {
		return State{}, PropagationError{Reason: ReasonSubOrbitalDecay, Tsince: tsince, Value: rk}
	}

	// orientation vectors
	sinuk := math.Sin(uk)
	cosuk := math.Cos(uk)
	sinik := math.Sin(xinck)
	cosik := math.Cos(xinck)
	sinnok := math.Sin(xnodek)
	cosnok := math.Cos(xnodek)
	xmx := -sinnok * cosik
	xmy := cosnok * cosik
	ux := xmx*sinuk + cosnok*cosuk
	uy := xmy*sinuk + sinnok*cosuk
	uz := sinik * sinuk
	vx := xmx*cosuk - cosnok*sinuk
	vy := xmy*cosuk - sinnok*sinuk
	vz := sinik * cosuk

	return State{
		DT: addMinutes(p.elements.Epoch, tsince),
		R: []float64{
			rk * ux * EarthRadiusKm,
			rk * uy * EarthRadiusKm,
			rk * uz * EarthRadiusKm,
		},
		V: []float64{
			(rdotk*ux + rfdotk*vx) * EarthRadiusKm / 60.0,
			(rdotk*uy + rfdotk*vy) * EarthRadiusKm / 60.0,
			(rdotk*uz + rfdotk*vz) * EarthRadiusKm / 60.0,
		},
	}, nil
}
