package sgp4

import (
	"math"
	"testing"
	"time"

	"github.com/gonum/floats"
)

const (
	posε = 1e-4 // km
	velε = 1e-7 // km/s
)

// testElements builds an element set from TLE-style values: degrees,
// revolutions per day, and a yyddd.dddd epoch.
func testElements(incl, raan, ecc, argp, ma, nRevDay, bstar float64, yy int, doy float64) Elements {
	return Elements{
		MeanAnomaly:     ma * deg2rad,
		AscendingNode:   raan * deg2rad,
		ArgumentPerigee: argp * deg2rad,
		Eccentricity:    ecc,
		Inclination:     incl * deg2rad,
		MeanMotion:      nRevDay * twoPi / minPerDay,
		Bstar:           bstar,
		Epoch:           tleEpochTime(yy, doy),
	}
}

func elements88888() Elements {
	return testElements(72.8435, 115.9689, 0.0086731, 52.6988, 110.5714, 16.05824518, 0.66816e-4, 80, 275.98708465)
}

func assertState(t *testing.T, s State, r, v []float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if !floats.EqualWithinAbs(s.R[i], r[i], posε) {
			t.Fatalf("position[%d] = %.8f, expected %.8f", i, s.R[i], r[i])
		}
		if !floats.EqualWithinAbs(s.V[i], v[i], velε) {
			t.Fatalf("velocity[%d] = %.9f, expected %.9f", i, s.V[i], v[i])
		}
	}
}

func TestPropagateNearEarth(t *testing.T) {
	p, err := NewPropagator(elements88888())
	if err != nil {
		t.Fatalf("configuration failed: %s", err)
	}
	if p.DeepSpace() {
		t.Fatal("a 90 minute orbit must use the near-earth branch")
	}
	cases := []struct {
		tsince float64
		r, v   []float64
	}{
		{0, []float64{2328.96975262, -5995.22051338, 1719.97297192}, []float64{2.912073281, -0.983417956, -7.090816210}},
		{360, []float64{2456.10706534, -6071.93855503, 1222.89768554}, []float64{2.679390040, -0.448290811, -7.228792155}},
		{720, []float64{2567.56229695, -6112.50383923, 713.96374435}, []float64{2.440245751, 0.098109002, -7.319959258}},
		{1080, []float64{2663.08964352, -6115.48290885, 196.40072867}, []float64{2.196121564, 0.652415093, -7.362824152}},
		{1440, []float64{2742.55398832, -6079.67009123, -326.39012649}, []float64{1.948497651, 1.211072678, -7.356193131}},
	}
	for _, c := range cases {
		s, err := p.Propagate(c.tsince)
		if err != nil {
			t.Fatalf("t=%.0f: %s", c.tsince, err)
		}
		assertState(t, s, c.r, c.v)
	}
}

func TestRecoveredElements(t *testing.T) {
	p, err := NewPropagator(elements88888())
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualWithinAbs(p.MeanMotion(), 0.070106155666529, 1e-13) {
		t.Fatalf("recovered mean motion %f", p.MeanMotion())
	}
	if !floats.EqualWithinAbs(p.SemiMajorAxis(), 1.040117523000496, 1e-12) {
		t.Fatalf("recovered semi-major axis %f", p.SemiMajorAxis())
	}
	if !floats.EqualWithinAbs(p.Perigee(), 198.337545626368, 1e-6) {
		t.Fatalf("perigee altitude %f", p.Perigee())
	}
	if !floats.EqualWithinAbs(p.Period(), 89.623874643285, 1e-9) {
		t.Fatalf("period %f", p.Period())
	}
	if p.Elements().Eccentricity != 0.0086731 {
		t.Fatal("elements must be returned unchanged")
	}
}

func TestConfigurationErrors(t *testing.T) {
	cases := []struct {
		name  string
		mod   func(*Elements)
		field string
	}{
		{"negative eccentricity", func(el *Elements) { el.Eccentricity = -0.1 }, "eccentricity"},
		{"near parabolic", func(el *Elements) { el.Eccentricity = 1.0 - 0.9e-3 }, "eccentricity"},
		{"negative inclination", func(el *Elements) { el.Inclination = -0.01 }, "inclination"},
		{"hyper-retrograde", func(el *Elements) { el.Inclination = math.Pi + 0.01 }, "inclination"},
	}
	for _, c := range cases {
		el := elements88888()
		c.mod(&el)
		if _, err := NewPropagator(el); err == nil {
			t.Fatalf("%s: expected a configuration error", c.name)
		} else if cerr, ok := err.(ConfigurationError); !ok {
			t.Fatalf("%s: expected ConfigurationError, got %T", c.name, err)
		} else if cerr.Field != c.field {
			t.Fatalf("%s: field %s, expected %s", c.name, cerr.Field, c.field)
		}
	}
	// the bounds themselves are legal
	el := elements88888()
	el.Eccentricity = 1.0 - 1.0e-3
	if _, err := NewPropagator(el); err != nil {
		t.Fatalf("e = 1-1e-3 must be accepted: %s", err)
	}
}

// Mean motions straddling a perigee of 220 km: below it the drag expansion
// is truncated.
func TestSimpleModelBoundary(t *testing.T) {
	el := testElements(30.0, 45.0, 0.01, 30.0, 10.0, 1.0, 1e-5, 80, 1.5)
	el.MeanMotion = 0.069686032889717753
	p, err := NewPropagator(el)
	if err != nil {
		t.Fatal(err)
	}
	if !p.simpleModel {
		t.Fatalf("perigee %.4f km must truncate the drag series", p.Perigee())
	}
	el.MeanMotion = 0.06968600116591761
	p, err = NewPropagator(el)
	if err != nil {
		t.Fatal(err)
	}
	if p.simpleModel {
		t.Fatalf("perigee %.4f km must keep the full drag series", p.Perigee())
	}
}

// Below 156 km of perigee the density function bounds are reworked, with a
// hard floor at 98 km.
func TestDensityBoundaries(t *testing.T) {
	cases := []struct {
		xno float64
		s4  float64
	}{
		{0.070713633672571108, sCoef},               // perigee 156.001, untouched
		{0.070713666180294385, 1.01222912340363},    // perigee 155.999, recomputed
		{0.071666945790704401, 1.00313586965469},    // perigee 98.001
		{0.071666979032496456, 20.0/EarthRadiusKm + ae}, // perigee 97.999, floored
	}
	for _, c := range cases {
		el := testElements(30.0, 45.0, 0.01, 30.0, 10.0, 1.0, 1e-5, 80, 1.5)
		el.MeanMotion = c.xno
		p, err := NewPropagator(el)
		if err != nil {
			t.Fatal(err)
		}
		if !floats.EqualWithinAbs(p.s4, c.s4, 1e-9) {
			t.Fatalf("perigee %.4f km: s4 = %.12f, expected %.12f", p.Perigee(), p.s4, c.s4)
		}
	}
}

func TestDeepSpaceBoundary(t *testing.T) {
	el := testElements(30.0, 45.0, 0.01, 30.0, 10.0, 1.0, 1e-5, 80, 1.5)
	el.MeanMotion = 0.027933075929418537 // period 224.999 min
	p, err := NewPropagator(el)
	if err != nil {
		t.Fatal(err)
	}
	if p.DeepSpace() {
		t.Fatalf("period %.4f min must stay near-earth", p.Period())
	}
	el.MeanMotion = 0.027932827545397911 // period 225.001 min
	p, err = NewPropagator(el)
	if err != nil {
		t.Fatal(err)
	}
	if !p.DeepSpace() {
		t.Fatalf("period %.4f min must go deep-space", p.Period())
	}
}

// A barely-orbital satellite: valid fixes until drag pulls the radius under
// one Earth radius.
func TestSubOrbitalDecay(t *testing.T) {
	el := testElements(28.5, 50.0, 0.006, 90.0, 180.0, 16.9, 1e-5, 80, 100.0)
	p, err := NewPropagator(el)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		tsince float64
		r, v   []float64
	}{
		{0, []float64{4345.45160366, -3646.26683793, -3077.49289561}, []float64{5.037004317, 6.002867990, -0.000000000}},
		{4, []float64{5338.46060820, -2057.30523122, -2935.63977090}, []float64{3.300809840, 7.046352311, 1.088890424}},
		{8, []float64{5873.76029572, -289.15138401, -2540.30061279}, []float64{1.258236613, 7.490864640, 2.095683496}},
		{12, []float64{5897.45136062, 1506.06493278, -1922.33260584}, []float64{-0.918909852, 7.280307024, 2.928856349}},
	}
	for _, c := range cases {
		s, err := p.Propagate(c.tsince)
		if err != nil {
			t.Fatalf("t=%.0f: %s", c.tsince, err)
		}
		assertState(t, s, c.r, c.v)
	}
	_, err = p.Propagate(13)
	perr, ok := err.(PropagationError)
	if !ok {
		t.Fatalf("expected a propagation error, got %v", err)
	}
	if perr.Reason != ReasonSubOrbitalDecay || !perr.Decayed() {
		t.Fatalf("expected suborbital decay, got %s", perr)
	}
	if perr.Tsince != 13 {
		t.Fatalf("error must carry the failing offset, got %f", perr.Tsince)
	}
	// deterministic: the same offset fails the same way again
	if _, err := p.Propagate(13); err == nil {
		t.Fatal("decay must be reported on every call")
	}
	// and earlier offsets still work
	if _, err := p.Propagate(12); err != nil {
		t.Fatalf("t=12 must still propagate: %s", err)
	}
}

func TestPropagateAt(t *testing.T) {
	p, err := NewPropagator(elements88888())
	if err != nil {
		t.Fatal(err)
	}
	want, err := p.Propagate(360)
	if err != nil {
		t.Fatal(err)
	}
	got, err := p.PropagateAt(p.Elements().Epoch.Add(6 * time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	assertState(t, got, want.R, want.V)
	if !got.DT.Equal(want.DT) {
		t.Fatalf("state time %s, expected %s", got.DT, want.DT)
	}
}

func TestStateStamp(t *testing.T) {
	p, err := NewPropagator(elements88888())
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.Propagate(90)
	if err != nil {
		t.Fatal(err)
	}
	want := p.Elements().Epoch.Add(90 * time.Minute)
	if !s.DT.Equal(want) {
		t.Fatalf("state time %s, expected %s", s.DT, want)
	}
	if s.RNorm() < EarthRadiusKm {
		t.Fatalf("orbital radius %.1f km below the surface", s.RNorm())
	}
	if s.VNorm() < 6 || s.VNorm() > 9 {
		t.Fatalf("unreasonable LEO speed %.3f km/s", s.VNorm())
	}
}
