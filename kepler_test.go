package sgp4

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestSolveKepler(t *testing.T) {
	cases := []struct {
		capu, axn, ayn float64
	}{
		{0.9158529015192103, 0.1, 0.0}, // E=1.0, e=0.1
		{0.0, 0.0, 0.0},                // circular, trivial root
		{2.5, 0.0007, 0.0007},          // near-circular
		{0.1, 0.95, 0.0},               // high eccentricity, first step clamped
		{-1.2, 0.3, -0.65},
	}
	for _, c := range cases {
		sinepw, cosepw, ecose, esine := solveKepler(c.capu, c.axn, c.ayn)
		if !floats.EqualWithinAbs(sinepw*sinepw+cosepw*cosepw, 1.0, 1e-12) {
			t.Fatalf("capu=%g: sin/cos pair is not on the unit circle", c.capu)
		}
		epw := math.Atan2(sinepw, cosepw)
		// the residual must vanish for any branch of the eccentric longitude
		f := math.Mod(c.capu-epw+esine, twoPi)
		if f > math.Pi {
			f -= twoPi
		} else if f < -math.Pi {
			f += twoPi
		}
		if math.Abs(f) > 1e-11 {
			t.Fatalf("capu=%g axn=%g ayn=%g: residual %g", c.capu, c.axn, c.ayn, f)
		}
		wantEcose := c.axn*cosepw + c.ayn*sinepw
		wantEsine := c.axn*sinepw - c.ayn*cosepw
		if !floats.EqualWithinAbs(ecose, wantEcose, 1e-14) || !floats.EqualWithinAbs(esine, wantEsine, 1e-14) {
			t.Fatalf("capu=%g: inconsistent ecose/esine", c.capu)
		}
	}
}

func TestGeometryRetrogradeEquatorial(t *testing.T) {
	g := newGeometry(math.Pi)
	if math.IsNaN(g.xlcof) || math.IsInf(g.xlcof, 0) {
		t.Fatalf("long-period coefficient must stay finite at i=180, got %g", g.xlcof)
	}
	if !floats.EqualWithinAbs(g.x3thm1, 2.0, 1e-12) {
		t.Fatalf("3cos2i-1 at i=180: %f", g.x3thm1)
	}
}

func TestComposeStateInvalidGeometry(t *testing.T) {
	p, err := NewPropagator(elements88888())
	if err != nil {
		t.Fatal(err)
	}
	// a unit semi-major axis with e=0.999 drives the semi-latus rectum negative
	g := newGeometry(72.8435 * deg2rad)
	_, err = p.composeState(0, 0.999, 1.0, math.Pi/2, 1.0, 0, g)
	if err == nil {
		t.Fatal("expected an orientation failure")
	}
	perr, ok := err.(PropagationError)
	if !ok {
		t.Fatalf("expected a PropagationError, got %T", err)
	}
	if perr.Reason != ReasonInvalidGeometry {
		t.Fatalf("wrong reason: %s", perr.Reason)
	}
	if !floats.EqualWithinAbs(perr.Value, -1.431916, 1e-5) {
		t.Fatalf("semi-latus rectum %f", perr.Value)
	}
	if perr.Decayed() {
		t.Fatal("an orientation failure is not a decay")
	}
}
