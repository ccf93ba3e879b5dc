package sgp4

import "math"

// The deep-space (SDP4) model layers three effects on top of the near-earth
// secular rates: lunar and solar secular drift, lunar and solar periodic
// corrections, and geopotential resonance for 24-hour and 12-hour
// commensurable orbits. Resonant orbits are handled with a fixed-step
// numerical integration of the resonance terms whose state lives in the
// integrator struct below.

type resonanceKind uint8

const (
	resonanceNone resonanceKind = iota
	// 24-hour commensurability, recovered mean motion in
	// (0.0034906585, 0.0052359877) rad/min
	resonanceSynchronous
	// 12-hour geopotential resonance, recovered mean motion in
	// [8.26e-3, 9.24e-3] rad/min with eccentricity of at least 0.5
	resonanceHalfDay
)

// dotTerms holds the resonance rates evaluated at one integrator state.
type dotTerms struct {
	xndot float64 // dn/dt
	xnddt float64 // d²n/dt²
	xldot float64 // dλ/dt
}

// dsStep is the resonance integration step in minutes, dsStep2 the
// second-order Taylor factor step²/2.
const (
	dsStep  = 720.0
	dsStep2 = 259200.0
)

// integrator is the state of the fixed-step resonance integration. atime,
// xli and xni advance together in whole steps of dsStep; rates always holds
// the dot terms evaluated at (atime, xli, xni). epochRates caches the terms
// at the element set epoch so a restart needs no re-evaluation.
type integrator struct {
	atime      float64 // accumulated integration time, min
	xli        float64 // integrated resonance mean longitude
	xni        float64 // integrated mean motion, rad/min
	rates      dotTerms
	epochRates dotTerms
}

// restart rewinds the integration to the element set epoch.
func (in *integrator) restart(xnodp, xlamo float64) {
	in.atime = 0.0
	in.xni = xnodp
	in.xli = xlamo
	in.rates = in.epochRates
}

// step advances the state one interval of delt (±dsStep) with a
// second-order Taylor extrapolation. The caller must refresh rates after
// every step.
func (in *integrator) step(delt float64) {
	in.xli += in.rates.xldot*delt + in.rates.xndot*dsStep2
	in.xni += in.rates.xndot*delt + in.rates.xnddt*dsStep2
	in.atime += delt
}

// perturber carries the orientation and strength of one perturbing body
// (Sun or Moon) as seen at the element set epoch.
type perturber struct {
	zcosg, zsing float64
	zcosi, zsini float64
	zcosh, zsinh float64
	cc           float64 // amplitude constant
	zn           float64 // body mean motion, rad/min
	ze           float64 // body eccentricity
}

// periodicCoeffs are the per-body amplitude coefficients of the lunar/solar
// periodic corrections.
type periodicCoeffs struct {
	e2, e3        float64
	i2, i3        float64
	l2, l3, l4    float64
	gh2, gh3, gh4 float64
	h2, h3        float64
}

// evaluate computes a body's periodic contributions for the body mean
// anomaly zm and eccentricity ze.
func (c periodicCoeffs) evaluate(zm, ze float64) (pe, pinc, pl, pgh, ph float64) {
	zf := zm + 2.0*ze*math.Sin(zm)
	sinzf := math.Sin(zf)
	f2 := 0.5*sinzf*sinzf - 0.25
	f3 := -0.5 * sinzf * math.Cos(zf)
	pe = c.e2*f2 + c.e3*f3
	pinc = c.i2*f2 + c.i3*f3
	pl = c.l2*f2 + c.l3*f3 + c.l4*sinzf
	pgh = c.gh2*f2 + c.gh3*f3 + c.gh4*sinzf
	ph = c.h2*f2 + c.h3*f3
	return pe, pinc, pl, pgh, ph
}

// secularRates are one body's contributions to the deep-space secular
// drift. shdq is the node rate already divided by sin(i); it is zeroed for
// near-equatorial orbits where the division is unstable.
type secularRates struct {
	se, si, sl, sgh, shdq float64
}

// deepSpace holds everything the SDP4 branch adds to the propagator.
type deepSpace struct {
	gsto float64 // Greenwich sidereal time at epoch, rad
	zmos float64 // solar mean anomaly at epoch
	zmol float64 // lunar mean anomaly at epoch

	// combined lunar+solar secular rates
	sse, ssi, ssl, ssg, ssh float64

	solar periodicCoeffs
	lunar periodicCoeffs

	resonance resonanceKind

	// 24-hour resonance amplitudes
	del1, del2, del3 float64

	// 12-hour resonance amplitudes
	d2201, d2211 float64
	d3210, d3222 float64
	d4410, d4422 float64
	d5220, d5232 float64
	d5421, d5433 float64

	xlamo float64 // resonance mean longitude at epoch
	xfact float64

	integ integrator
}

// eccBand is one eccentricity regime of a 12-hour resonance coefficient,
// a cubic c0 + c1·e + c2·e² + c3·e³ valid up to the upTo bound. Bands are
// ordered by upTo; the bound is inclusive unless exclusive is set. The last
// band of each table is open-ended.
type eccBand struct {
	upTo      float64
	exclusive bool
	c         [4]float64
}

func evalBands(bands []eccBand, e, eosq, eoc float64) float64 {
	b := bands[len(bands)-1]
	for _, cand := range bands {
		if e < cand.upTo || (!cand.exclusive && e == cand.upTo) {
			b = cand
			break
		}
	}
	return b.c[0] + b.c[1]*e + b.c[2]*eosq + b.c[3]*eoc
}

var (
	inf = math.Inf(1)

	g211Bands = []eccBand{
		{0.65, false, [4]float64{3.616, -13.247, 16.290, 0}},
		{inf, false, [4]float64{-72.099, 331.819, -508.738, 266.724}},
	}
	g310Bands = []eccBand{
		{0.65, false, [4]float64{-19.302, 117.390, -228.419, 156.591}},
		{inf, false, [4]float64{-346.844, 1582.851, -2415.925, 1246.113}},
	}
	g322Bands = []eccBand{
		{0.65, false, [4]float64{-18.9068, 109.7927, -214.6334, 146.5816}},
		{inf, false, [4]float64{-342.585, 1554.908, -2366.899, 1215.972}},
	}
	g410Bands = []eccBand{
		{0.65, false, [4]float64{-41.122, 242.694, -471.094, 313.953}},
		{inf, false, [4]float64{-1052.797, 4758.686, -7193.992, 3651.957}},
	}
	g422Bands = []eccBand{
		{0.65, false, [4]float64{-146.407, 841.880, -1629.014, 1083.435}},
		{inf, false, [4]float64{-3581.69, 16178.11, -24462.77, 12422.52}},
	}
	g520Bands = []eccBand{
		{0.65, false, [4]float64{-532.114, 3017.977, -5740.032, 3708.276}},
		{0.715, false, [4]float64{1464.74, -4664.75, 3763.64, 0}},
		{inf, false, [4]float64{-5149.66, 29936.92, -54087.36, 31324.56}},
	}
	// the fifth-order tables switch regimes at e = 0.7 exclusive
	g533Bands = []eccBand{
		{0.7, true, [4]float64{-919.2277, 4988.61, -9064.77, 5542.21}},
		{inf, false, [4]float64{-37995.78, 161616.52, -229838.2, 109377.94}},
	}
	g521Bands = []eccBand{
		{0.7, true, [4]float64{-822.71072, 4568.6173, -8491.4146, 5337.524}},
		{inf, false, [4]float64{-51752.104, 218913.95, -309468.16, 146349.42}},
	}
	g532Bands = []eccBand{
		{0.7, true, [4]float64{-853.666, 4690.25, -8624.77, 5341.4}},
		{inf, false, [4]float64{-40023.88, 170470.89, -242699.48, 115605.82}},
	}
)

// perturbAmplitudes evaluates the Brown lunar/solar disturbing function for
// one body and returns its periodic coefficients and secular rates. The
// same expansion serves the Sun and the Moon; only the perturber bundle
// differs.
func (p *Propagator) perturbAmplitudes(b perturber, eosq, betao, betao2, xnoi float64) (periodicCoeffs, secularRates) {
	el := p.elements
	sinio := p.geo.sinio
	cosio := p.geo.cosio
	sing := math.Sin(el.ArgumentPerigee)
	cosg := math.Cos(el.ArgumentPerigee)
	eo := el.Eccentricity

	a1 := b.zcosg*b.zcosh + b.zsing*b.zcosi*b.zsinh
	a3 := -b.zsing*b.zcosh + b.zcosg*b.zcosi*b.zsinh
	a7 := -b.zcosg*b.zsinh + b.zsing*b.zcosi*b.zcosh
	a8 := b.zsing * b.zsini
	a9 := b.zsing*b.zsinh + b.zcosg*b.zcosi*b.zcosh
	a10 := b.zcosg * b.zsini
	a2 := cosio*a7 + sinio*a8
	a4 := cosio*a9 + sinio*a10
	a5 := -sinio*a7 + cosio*a8
	a6 := -sinio*a9 + cosio*a10

	x1 := a1*cosg + a2*sing
	x2 := a3*cosg + a4*sing
	x3 := -a1*sing + a2*cosg
	x4 := -a3*sing + a4*cosg
	x5 := a5 * sing
	x6 := a6 * sing
	x7 := a5 * cosg
	x8 := a6 * cosg

	z31 := 12.0*x1*x1 - 3.0*x3*x3
	z32 := 24.0*x1*x2 - 6.0*x3*x4
	z33 := 12.0*x2*x2 - 3.0*x4*x4
	z1 := 3.0*(a1*a1+a2*a2) + z31*eosq
	z2 := 6.0*(a1*a3+a2*a4) + z32*eosq
	z3 := 3.0*(a3*a3+a4*a4) + z33*eosq
	z11 := -6.0*a1*a5 + eosq*(-24.0*x1*x7-6.0*x3*x5)
	z12 := -6.0*(a1*a6+a3*a5) + eosq*(-24.0*(x2*x7+x1*x8)-6.0*(x3*x6+x4*x5))
	z13 := -6.0*a3*a6 + eosq*(-24.0*x2*x8-6.0*x4*x6)
	z21 := 6.0*a2*a5 + eosq*(24.0*x1*x5-6.0*x3*x7)
	z22 := 6.0*(a4*a5+a2*a6) + eosq*(24.0*(x2*x5+x1*x6)-6.0*(x4*x7+x3*x8))
	z23 := 6.0*a4*a6 + eosq*(24.0*x2*x6-6.0*x4*x8)
	z1 = z1 + z1 + betao2*z31
	z2 = z2 + z2 + betao2*z32
	z3 = z3 + z3 + betao2*z33

	s3 := b.cc * xnoi
	s2 := -0.5 * s3 / betao
	s4 := s3 * betao
	s1 := -15.0 * eo * s4
	s5 := x1*x3 + x2*x4
	s6 := x2*x3 + x1*x4
	s7 := x2*x4 - x1*x3

	sec := secularRates{
		se:  s1 * b.zn * s5,
		si:  s2 * b.zn * (z11 + z13),
		sl:  -b.zn * s3 * (z1 + z3 - 14.0 - 6.0*eosq),
		sgh: s4 * b.zn * (z31 + z33 - 6.0),
	}
	// the node rate divides by sin(i); suppress it within 3 degrees of an
	// equatorial orbit, prograde or retrograde
	if el.Inclination >= 5.2359877e-2 && el.Inclination <= math.Pi-5.2359877e-2 {
		sec.shdq = (-b.zn * s2 * (z21 + z23)) / sinio
	}

	per := periodicCoeffs{
		e2:  2.0 * s1 * s6,
		e3:  2.0 * s1 * s7,
		i2:  2.0 * s2 * z12,
		i3:  2.0 * s2 * (z13 - z11),
		l2:  -2.0 * s3 * z2,
		l3:  -2.0 * s3 * (z3 - z1),
		l4:  -2.0 * s3 * (-21.0 - 9.0*eosq) * b.ze,
		gh2: 2.0 * s4 * z32,
		gh3: 2.0 * s4 * (z33 - z31),
		gh4: -18.0 * s4 * b.ze,
		h2:  -2.0 * s2 * z22,
		h3:  -2.0 * s2 * (z23 - z21),
	}
	return per, sec
}

// newDeepSpace runs the deep-space initialization: epoch-dependent lunar
// orientation, the solar and lunar passes of the disturbing function,
// resonance classification, and integrator seeding.
func (p *Propagator) newDeepSpace(eosq, betao, betao2, theta2 float64) *deepSpace {
	el := p.elements
	ds := &deepSpace{gsto: gstime(p.jdepoch)}

	aqnv := 1.0 / p.aodp
	xnoi := 1.0 / p.xnodp
	xpidot := p.omgdot + p.xnodot
	sinq := math.Sin(el.AscendingNode)
	cosq := math.Cos(el.AscendingNode)
	cosio := p.geo.cosio
	sinio := p.geo.sinio

	// lunar orientation and mean anomalies at epoch
	day := sinceJan1900(p.jdepoch)
	xnodce := math.Mod(4.5236020-9.2422029e-4*day, twoPi)
	stem := math.Sin(xnodce)
	ctem := math.Cos(xnodce)
	zcosil := 0.91375164 - 0.03568096*ctem
	zsinil := math.Sqrt(1.0 - zcosil*zcosil)
	zsinhl := 0.089683511 * stem / zsinil
	zcoshl := math.Sqrt(1.0 - zsinhl*zsinhl)
	c := 4.7199672 + 0.22997150*day
	gam := 5.8351514 + 0.0019443680*day
	ds.zmol = fmod2p(c - gam)
	zx := 0.39785416 * stem / zsinil
	zy := zcoshl*ctem + 0.91744867*zsinhl*stem
	zx = math.Atan2(zx, zy)
	zx = math.Mod(gam+zx-xnodce, twoPi)
	zcosgl := math.Cos(zx)
	zsingl := math.Sin(zx)
	ds.zmos = fmod2p(6.2565837 + 0.017201977*day)

	sun := perturber{
		zcosg: zcosgs, zsing: zsings,
		zcosi: zcosis, zsini: zsinis,
		zcosh: cosq, zsinh: sinq,
		cc: c1ss, zn: zns, ze: zes,
	}
	moon := perturber{
		zcosg: zcosgl, zsing: zsingl,
		zcosi: zcosil, zsini: zsinil,
		zcosh: zcoshl*cosq + zsinhl*sinq,
		zsinh: sinq*zcoshl - cosq*zsinhl,
		cc: c1l, zn: znl, ze: zel,
	}

	var solarSec, lunarSec secularRates
	ds.solar, solarSec = p.perturbAmplitudes(sun, eosq, betao, betao2, xnoi)
	ds.lunar, lunarSec = p.perturbAmplitudes(moon, eosq, betao, betao2, xnoi)

	ds.sse = solarSec.se + lunarSec.se
	ds.ssi = solarSec.si + lunarSec.si
	ds.ssl = solarSec.sl + lunarSec.sl
	ds.ssh = solarSec.shdq + lunarSec.shdq
	ds.ssg = (solarSec.sgh - cosio*solarSec.shdq) + (lunarSec.sgh - cosio*lunarSec.shdq)

	// resonance classification on the recovered mean motion
	eo := el.Eccentricity
	var bfact float64
	switch {
	case p.xnodp < 0.0052359877 && p.xnodp > 0.0034906585:
		ds.resonance = resonanceSynchronous
		g200 := 1.0 + eosq*(-2.5+0.8125*eosq)
		g310 := 1.0 + 2.0*eosq
		g300 := 1.0 + eosq*(-6.0+6.60937*eosq)
		f220 := 0.75 * (1.0 + cosio) * (1.0 + cosio)
		f311 := 0.9375*sinio*sinio*(1.0+3.0*cosio) - 0.75*(1.0+cosio)
		f330 := 1.0 + cosio
		f330 = 1.875 * f330 * f330 * f330
		ds.del1 = 3.0 * p.xnodp * p.xnodp * aqnv * aqnv
		ds.del2 = 2.0 * ds.del1 * f220 * g200 * q22
		ds.del3 = 3.0 * ds.del1 * f330 * g300 * q33 * aqnv
		ds.del1 = ds.del1 * f311 * g310 * q31 * aqnv
		ds.xlamo = el.MeanAnomaly + el.AscendingNode + el.ArgumentPerigee - ds.gsto
		bfact = p.xmdot + xpidot - thdt
		bfact += ds.ssl + ds.ssg + ds.ssh

	case p.xnodp < 8.26e-3 || p.xnodp > 9.24e-3 || eo < 0.5:
		return ds

	default:
		ds.resonance = resonanceHalfDay
		eoc := eo * eosq
		g201 := -0.306 - (eo-0.64)*0.440
		g211 := evalBands(g211Bands, eo, eosq, eoc)
		g310 := evalBands(g310Bands, eo, eosq, eoc)
		g322 := evalBands(g322Bands, eo, eosq, eoc)
		g410 := evalBands(g410Bands, eo, eosq, eoc)
		g422 := evalBands(g422Bands, eo, eosq, eoc)
		g520 := evalBands(g520Bands, eo, eosq, eoc)
		g533 := evalBands(g533Bands, eo, eosq, eoc)
		g521 := evalBands(g521Bands, eo, eosq, eoc)
		g532 := evalBands(g532Bands, eo, eosq, eoc)

		sini2 := sinio * sinio
		f220 := 0.75 * (1.0 + 2.0*cosio + theta2)
		f221 := 1.5 * sini2
		f321 := 1.875 * sinio * (1.0 - 2.0*cosio - 3.0*theta2)
		f322 := -1.875 * sinio * (1.0 + 2.0*cosio - 3.0*theta2)
		f441 := 35.0 * sini2 * f220
		f442 := 39.3750 * sini2 * sini2
		f522 := 9.84375 * sinio * (sini2*(1.0-2.0*cosio-5.0*theta2) +
			0.33333333*(-2.0+4.0*cosio+6.0*theta2))
		f523 := sinio * (4.92187512*sini2*(-2.0-4.0*cosio+10.0*theta2) +
			6.56250012*(1.0+2.0*cosio-3.0*theta2))
		f542 := 29.53125 * sinio * (2.0 - 8.0*cosio + theta2*(-12.0+8.0*cosio+10.0*theta2))
		f543 := 29.53125 * sinio * (-2.0 - 8.0*cosio + theta2*(12.0+8.0*cosio-10.0*theta2))

		xno2 := p.xnodp * p.xnodp
		ainv2 := aqnv * aqnv
		temp1 := 3.0 * xno2 * ainv2
		temp := temp1 * root22
		ds.d2201 = temp * f220 * g201
		ds.d2211 = temp * f221 * g211
		temp1 *= aqnv
		temp = temp1 * root32
		ds.d3210 = temp * f321 * g310
		ds.d3222 = temp * f322 * g322
		temp1 *= aqnv
		temp = 2.0 * temp1 * root44
		ds.d4410 = temp * f441 * g410
		ds.d4422 = temp * f442 * g422
		temp1 *= aqnv
		temp = temp1 * root52
		ds.d5220 = temp * f522 * g520
		ds.d5232 = temp * f523 * g532
		temp = 2.0 * temp1 * root54
		ds.d5421 = temp * f542 * g521
		ds.d5433 = temp * f543 * g533

		ds.xlamo = el.MeanAnomaly + el.AscendingNode + el.AscendingNode - ds.gsto - ds.gsto
		bfact = p.xmdot + p.xnodot + p.xnodot - thdt - thdt
		bfact = bfact + ds.ssl + ds.ssh + ds.ssh
	}

	ds.xfact = bfact - p.xnodp
	ds.integ.atime = 0.0
	ds.integ.xni = p.xnodp
	ds.integ.xli = ds.xlamo
	p.ds = ds
	rates := p.dsDotTerms()
	ds.integ.epochRates = rates
	ds.integ.rates = rates
	return ds
}

// dsDotTerms evaluates the resonance rate terms at the integrator's current
// state.
func (p *Propagator) dsDotTerms() dotTerms {
	ds := p.ds
	var dt dotTerms
	if ds.resonance == resonanceSynchronous {
		xli := ds.integ.xli
		dt.xndot = ds.del1*math.Sin(xli-fasx2) +
			ds.del2*math.Sin(2.0*(xli-fasx4)) +
			ds.del3*math.Sin(3.0*(xli-fasx6))
		dt.xnddt = ds.del1*math.Cos(xli-fasx2) +
			2.0*ds.del2*math.Cos(2.0*(xli-fasx4)) +
			3.0*ds.del3*math.Cos(3.0*(xli-fasx6))
	} else {
		xomi := p.elements.ArgumentPerigee + p.omgdot*ds.integ.atime
		x2omi := xomi + xomi
		xli := ds.integ.xli
		x2li := xli + xli
		dt.xndot = ds.d2201*math.Sin(x2omi+xli-g22) +
			ds.d2211*math.Sin(xli-g22) +
			ds.d3210*math.Sin(xomi+xli-g32) +
			ds.d3222*math.Sin(-xomi+xli-g32) +
			ds.d4410*math.Sin(x2omi+x2li-g44) +
			ds.d4422*math.Sin(x2li-g44) +
			ds.d5220*math.Sin(xomi+xli-g52) +
			ds.d5232*math.Sin(-xomi+xli-g52) +
			ds.d5421*math.Sin(xomi+x2li-g54) +
			ds.d5433*math.Sin(-xomi+x2li-g54)
		dt.xnddt = ds.d2201*math.Cos(x2omi+xli-g22) +
			ds.d2211*math.Cos(xli-g22) +
			ds.d3210*math.Cos(xomi+xli-g32) +
			ds.d3222*math.Cos(-xomi+xli-g32) +
			ds.d5220*math.Cos(xomi+xli-g52) +
			ds.d5232*math.Cos(-xomi+xli-g52) +
			2.0*(ds.d4410*math.Cos(x2omi+x2li-g44)+
				ds.d4422*math.Cos(x2li-g44)+
				ds.d5421*math.Cos(xomi+x2li-g54)+
				ds.d5433*math.Cos(-xomi+x2li-g54))
	}
	dt.xldot = ds.integ.xni + ds.xfact
	dt.xnddt *= dt.xldot
	return dt
}

// dsSecular applies the lunar/solar secular drift and, for resonant orbits,
// advances the resonance integration to tsince. The integration restarts
// from epoch whenever the target lies within one step of epoch, on the
// other side of epoch from the current state, or closer to epoch than the
// current state; otherwise it resumes from where the previous call left
// off.
func (p *Propagator) dsSecular(tsince, xll, omgasm, xnodes, em, xinc, xn float64) (float64, float64, float64, float64, float64, float64) {
	ds := p.ds
	xll += ds.ssl * tsince
	omgasm += ds.ssg * tsince
	xnodes += ds.ssh * tsince
	em += ds.sse * tsince
	xinc += ds.ssi * tsince

	if ds.resonance == resonanceNone {
		return xll, omgasm, xnodes, em, xinc, xn
	}

	in := &ds.integ
	if math.Abs(tsince) < dsStep || tsince*in.atime <= 0.0 || math.Abs(tsince) < math.Abs(in.atime) {
		in.restart(p.xnodp, ds.xlamo)
	}
	ft := tsince - in.atime
	if math.Abs(ft) >= dsStep {
		delt := dsStep
		if ft < 0.0 {
			delt = -dsStep
		}
		for {
			in.step(delt)
			in.rates = p.dsDotTerms()
			ft = tsince - in.atime
			if math.Abs(ft) < dsStep {
				break
			}
		}
	}
	xn = in.xni + in.rates.xndot*ft + in.rates.xnddt*ft*ft*0.5
	xl := in.xli + in.rates.xldot*ft + in.rates.xndot*ft*ft*0.5
	temp := -xnodes + ds.gsto + tsince*thdt
	if ds.resonance == resonanceSynchronous {
		xll = xl + temp - omgasm
	} else {
		xll = xl + temp + temp
	}
	return xll, omgasm, xnodes, em, xinc, xn
}

// dsPeriodics applies the lunar and solar periodic corrections at tsince.
// Below 0.2 rad of inclination the node and argument of perigee are
// corrected through the Lyddane variables, with the node kept on the branch
// nearest its uncorrected value.
func (p *Propagator) dsPeriodics(tsince, em, xinc, omgasm, xnodes, xll float64) (float64, float64, float64, float64, float64) {
	ds := p.ds
	pes, pincs, pls, pghs, phs := ds.solar.evaluate(ds.zmos+zns*tsince, zes)
	pel, pincl, pll, pghl, phl := ds.lunar.evaluate(ds.zmol+znl*tsince, zel)
	pe := pes + pel
	pinc := pincs + pincl
	pl := pls + pll
	pgh := pghs + pghl
	ph := phs + phl

	xinc += pinc
	em += pe
	sinis := math.Sin(xinc)
	cosis := math.Cos(xinc)
	if xinc >= 0.2 {
		tmp := ph / sinis
		omgasm += pgh - cosis*tmp
		xnodes += tmp
		xll += pl
	} else {
		sinok := math.Sin(xnodes)
		cosok := math.Cos(xnodes)
		alfdp := sinis * sinok
		betdp := sinis * cosok
		alfdp += ph*cosok + pinc*cosis*sinok
		betdp += -ph*sinok + pinc*cosis*cosok
		xnodes = fmod2p(xnodes)
		xls := xll + omgasm + cosis*xnodes
		xls += pl + pgh - pinc*xnodes*sinis
		oldxnodes := xnodes
		xnodes = math.Atan2(alfdp, betdp)
		if xnodes < 0.0 {
			xnodes += twoPi
		}
		// keep the node continuous across the atan2 branch cut
		if math.Abs(oldxnodes-xnodes) > math.Pi {
			if xnodes < oldxnodes {
				xnodes += twoPi
			} else {
				xnodes -= twoPi
			}
		}
		xll += pl
		omgasm = xls - xll - cosis*xnodes
	}
	return em, xinc, omgasm, xnodes, xll
}
