package sgp4

import (
	"math"
	"time"
)

// Propagator is a configured SGP4/SDP4 analytic propagator for one element
// set. Configuration happens once in NewPropagator; after that Propagate may
// be called for any offset, positive or negative, in any order.
//
// Near-earth propagators are read-only after configuration and safe for
// concurrent use. Deep-space propagators carry resonance integrator state
// that is advanced in place, so a single instance must not be shared across
// goroutines without external locking.
type Propagator struct {
	elements Elements
	jdepoch  float64

	deepSpace   bool
	simpleModel bool

	xnodp   float64 // recovered (Brouwer) mean motion, rad/min
	aodp    float64 // recovered semi-major axis, Earth radii
	perigee float64 // perigee altitude, km
	period  float64 // orbital period, min

	geo    geometry
	eta    float64
	s4     float64
	qoms24 float64

	// secular rates and drag coefficients common to both branches
	xmdot  float64
	omgdot float64
	xnodot float64
	xnodcf float64
	t2cof  float64
	c1     float64
	c4     float64

	// near-earth drag series, unset in deep-space mode
	c5     float64
	omgcof float64
	xmcof  float64
	delmo  float64
	sinmo  float64
	d2     float64
	d3     float64
	d4     float64
	t3cof  float64
	t4cof  float64
	t5cof  float64

	ds *deepSpace
}

// NewPropagator validates the element set, recovers the Brouwer mean motion
// from the Kozai value, and precomputes every coefficient the propagation
// calls need. A ConfigurationError means the element set itself is illegal;
// such a set can never be propagated.
func NewPropagator(el Elements) (*Propagator, error) {
	if err := el.validate(); err != nil {
		return nil, err
	}
	p := &Propagator{
		elements: el,
		jdepoch:  julianDate(el.Epoch),
		geo:      newGeometry(el.Inclination),
	}

	// un-kozai the mean motion
	a1 := math.Pow(xke/el.MeanMotion, twothird)
	eosq := el.Eccentricity * el.Eccentricity
	betao2 := 1.0 - eosq
	betao := math.Sqrt(betao2)
	temp := (1.5 * ck2) * p.geo.x3thm1 / (betao * betao2)
	del1 := temp / (a1 * a1)
	a0 := a1 * (1.0 - del1*(1.0/3.0+del1*(1.0+del1*134.0/81.0)))
	del0 := temp / (a0 * a0)
	p.xnodp = el.MeanMotion / (1.0 + del0)
	p.aodp = a0 / (1.0 - del0)
	p.perigee = (p.aodp*(1.0-el.Eccentricity) - ae) * EarthRadiusKm
	p.period = twoPi / p.xnodp

	p.initialize(eosq, betao, betao2)
	return p, nil
}

// Elements returns the element set this propagator was configured with.
func (p *Propagator) Elements() Elements { return p.elements }

// DeepSpace reports whether the set propagates with the deep-space (SDP4)
// branch, selected when the recovered period is 225 minutes or longer.
func (p *Propagator) DeepSpace() bool { return p.deepSpace }

// MeanMotion returns the recovered Brouwer mean motion in rad/min.
func (p *Propagator) MeanMotion() float64 { return p.xnodp }

// SemiMajorAxis returns the recovered semi-major axis in Earth radii.
func (p *Propagator) SemiMajorAxis() float64 { return p.aodp }

// Perigee returns the perigee altitude in km above the equatorial radius.
func (p *Propagator) Perigee() float64 { return p.perigee }

// Period returns the recovered orbital period in minutes.
func (p *Propagator) Period() float64 { return p.period }

func (p *Propagator) initialize(eosq, betao, betao2 float64) {
	el := p.elements

	p.simpleModel = false
	if p.period >= 225.0 {
		p.deepSpace = true
	} else if p.perigee < 220.0 {
		// below 220 km the truncated drag expansion is used
		p.simpleModel = true
	}

	// rework the density function bounds for low perigees
	s4 := sCoef
	qoms24 := qoms2t
	if p.perigee < 156.0 {
		s4 = p.perigee - 78.0
		if p.perigee < 98.0 {
			s4 = 20.0
		}
		qoms24 = math.Pow((120.0-s4)*ae/EarthRadiusKm, 4)
		s4 = s4/EarthRadiusKm + ae
	}
	p.s4 = s4
	p.qoms24 = qoms24

	aodp := p.aodp
	xnodp := p.xnodp
	e := el.Eccentricity
	cosio := p.geo.cosio
	sinio := p.geo.sinio
	theta2 := cosio * cosio

	pinvsq := 1.0 / (aodp * aodp * betao2 * betao2)
	tsi := 1.0 / (aodp - s4)
	p.eta = aodp * e * tsi
	etasq := p.eta * p.eta
	eeta := e * p.eta
	psisq := math.Abs(1.0 - etasq)
	coef := qoms24 * tsi * tsi * tsi * tsi
	coef1 := coef / math.Pow(psisq, 3.5)
	c2 := coef1 * xnodp * (aodp*(1.0+1.5*etasq+eeta*(4.0+etasq)) +
		0.75*ck2*tsi/psisq*p.geo.x3thm1*(8.0+3.0*etasq*(8.0+etasq)))
	p.c1 = el.Bstar * c2
	p.c4 = 2.0 * xnodp * coef1 * aodp * betao2 *
		(p.eta*(2.0+0.5*etasq) + e*(0.5+2.0*etasq) -
			2.0*ck2*tsi/(aodp*psisq)*
				(-3.0*p.geo.x3thm1*(1.0-2.0*eeta+etasq*(1.5-0.5*eeta))+
					0.75*p.geo.x1mth2*(2.0*etasq-eeta*(1.0+etasq))*math.Cos(2.0*el.ArgumentPerigee)))
	theta4 := theta2 * theta2
	temp1 := 3.0 * ck2 * pinvsq * xnodp
	temp2 := temp1 * ck2 * pinvsq
	temp3 := 1.25 * ck4 * pinvsq * pinvsq * xnodp
	p.xmdot = xnodp + 0.5*temp1*betao*p.geo.x3thm1 +
		0.0625*temp2*betao*(13.0-78.0*theta2+137.0*theta4)
	x1m5th := 1.0 - 5.0*theta2
	p.omgdot = -0.5*temp1*x1m5th +
		0.0625*temp2*(7.0-114.0*theta2+395.0*theta4) +
		temp3*(3.0-36.0*theta2+49.0*theta4)
	xhdot1 := -temp1 * cosio
	p.xnodot = xhdot1 + (0.5*temp2*(4.0-19.0*theta2)+2.0*temp3*(3.0-7.0*theta2))*cosio
	p.xnodcf = 3.5 * betao2 * xhdot1 * p.c1
	p.t2cof = 1.5 * p.c1

	if p.deepSpace {
		p.ds = p.newDeepSpace(eosq, betao, betao2, theta2)
		return
	}

	c3 := 0.0
	if e > 1.0e-4 {
		c3 = coef * tsi * a3ovk2 * xnodp * ae * sinio / e
	}
	p.c5 = 2.0 * coef1 * aodp * betao2 * (1.0 + 2.75*(etasq+eeta) + eeta*etasq)
	p.omgcof = el.Bstar * c3 * math.Cos(el.ArgumentPerigee)
	p.xmcof = 0.0
	if e > 1.0e-4 {
		p.xmcof = -twothird * coef * el.Bstar * ae / eeta
	}
	p.delmo = math.Pow(1.0+p.eta*math.Cos(el.MeanAnomaly), 3)
	p.sinmo = math.Sin(el.MeanAnomaly)

	if !p.simpleModel {
		c1sq := p.c1 * p.c1
		p.d2 = 4.0 * aodp * tsi * c1sq
		temp := p.d2 * tsi * p.c1 / 3.0
		p.d3 = (17.0*aodp + s4) * temp
		p.d4 = 0.5 * temp * aodp * tsi * (221.0*aodp + 31.0*s4) * p.c1
		p.t3cof = p.d2 + 2.0*c1sq
		p.t4cof = 0.25 * (3.0*p.d3 + p.c1*(12.0*p.d2+10.0*c1sq))
		p.t5cof = 0.2 * (3.0*p.d4 + 12.0*p.c1*p.d3 + 6.0*p.d2*p.d2 + 15.0*c1sq*(2.0*p.d2+c1sq))
	}
}

// Propagate computes the state tsince minutes after (or, if negative,
// before) the element set epoch. A PropagationError is deterministic: the
// same offset fails the same way every time.
func (p *Propagator) Propagate(tsince float64) (State, error) {
	if p.deepSpace {
		return p.propagateDeep(tsince)
	}
	return p.propagateNear(tsince)
}

// PropagateAt computes the state at an absolute time.
func (p *Propagator) PropagateAt(dt time.Time) (State, error) {
	return p.Propagate(spanMinutes(dt, p.elements.Epoch))
}

func (p *Propagator) propagateNear(tsince float64) (State, error) {
	el := p.elements
	xmdf := el.MeanAnomaly + p.xmdot*tsince
	omgadf := el.ArgumentPerigee + p.omgdot*tsince
	xnoddf := el.AscendingNode + p.xnodot*tsince
	tsq := tsince * tsince
	xnode := xnoddf + p.xnodcf*tsq
	tempa := 1.0 - p.c1*tsince
	tempe := el.Bstar * p.c4 * tsince
	templ := p.t2cof * tsq

	omega := omgadf
	xmp := xmdf
	if !p.simpleModel {
		delomg := p.omgcof * tsince
		delm := p.xmcof * (math.Pow(1.0+p.eta*math.Cos(xmdf), 3) - p.delmo)
		temp := delomg + delm
		xmp += temp
		omega -= temp
		tcube := tsq * tsince
		tfour := tsince * tcube
		tempa = tempa - p.d2*tsq - p.d3*tcube - p.d4*tfour
		tempe += el.Bstar * p.c5 * (math.Sin(xmp) - p.sinmo)
		templ += p.t3cof*tcube + tfour*(p.t4cof+tsince*p.t5cof)
	}
	a := p.aodp * tempa * tempa
	e := el.Eccentricity - tempe
	xl := xmp + omega + xnode + p.xnodp*templ

	if e >= 1.0 || e < -0.001 {
		return State{}, PropagationError{Reason: ReasonEccentricityOutOfBounds, Tsince: tsince, Value: e}
	}
	// near-circular floor inherited from the model definition
	if e < 1.0e-6 {
		e = 1.0e-6
	}
	return p.composeState(tsince, e, a, omega, xl, xnode, p.geo)
}

func (p *Propagator) propagateDeep(tsince float64) (State, error) {
	el := p.elements
	xmdf := el.MeanAnomaly + p.xmdot*tsince
	omgadf := el.ArgumentPerigee + p.omgdot*tsince
	xnoddf := el.AscendingNode + p.xnodot*tsince
	tsq := tsince * tsince
	xnode := xnoddf + p.xnodcf*tsq
	tempa := 1.0 - p.c1*tsince
	tempe := el.Bstar * p.c4 * tsince
	templ := p.t2cof * tsq

	xn := p.xnodp
	e := el.Eccentricity
	xincl := el.Inclination
	xmdf, omgadf, xnode, e, xincl, xn = p.dsSecular(tsince, xmdf, omgadf, xnode, e, xincl, xn)
	if xn <= 0.0 {
		return State{}, PropagationError{Reason: ReasonNegativeMeanMotion, Tsince: tsince, Value: xn}
	}
	a := math.Pow(xke/xn, twothird) * tempa * tempa
	e -= tempe
	if e >= 1.0 || e < -0.001 {
		return State{}, PropagationError{Reason: ReasonEccentricityOutOfBounds, Tsince: tsince, Value: e}
	}
	if e < 1.0e-6 {
		e = 1.0e-6
	}
	xmam := xmdf + p.xnodp*templ
	e, xincl, omgadf, xnode, xmam = p.dsPeriodics(tsince, e, xincl, omgadf, xnode, xmam)
	if xincl < 0.0 {
		xincl = -xincl
		xnode += math.Pi
		omgadf -= math.Pi
	}
	xl := xmam + omgadf + xnode
	// the periodic corrections are applied unscaled and can push a
	// near-parabolic eccentricity out of range
	if e < 0.0 || e > 1.0 {
		return State{}, PropagationError{Reason: ReasonEccentricityOutOfBounds, Tsince: tsince, Value: e}
	}
	return p.composeState(tsince, e, a, omgadf, xl, xnode, newGeometry(xincl))
}
