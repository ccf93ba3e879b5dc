package sgp4

import (
	"testing"
	"time"

	"github.com/gonum/floats"
)

const (
	tleLine1 = "1 88888U          80275.98708465  .00073094  13844-3  66816-4 0    87"
	tleLine2 = "2 88888  72.8435 115.9689 0086731  52.6988 110.5714 16.05824518  1058"
)

func TestParseTLE(t *testing.T) {
	el, err := ParseTLE(tleLine1, tleLine2)
	if err != nil {
		t.Fatalf("parse failed: %s", err)
	}
	if el.NoradID != 88888 {
		t.Fatalf("catalog number %d", el.NoradID)
	}
	want := elements88888()
	pairs := []struct {
		name      string
		got, want float64
	}{
		{"inclination", el.Inclination, want.Inclination},
		{"ascending node", el.AscendingNode, want.AscendingNode},
		{"eccentricity", el.Eccentricity, want.Eccentricity},
		{"argument of perigee", el.ArgumentPerigee, want.ArgumentPerigee},
		{"mean anomaly", el.MeanAnomaly, want.MeanAnomaly},
		{"mean motion", el.MeanMotion, want.MeanMotion},
		{"bstar", el.Bstar, want.Bstar},
	}
	for _, p := range pairs {
		if !floats.EqualWithinAbs(p.got, p.want, 1e-15) {
			t.Fatalf("%s = %.15f, expected %.15f", p.name, p.got, p.want)
		}
	}
	epoch := time.Date(1980, time.October, 1, 23, 41, 24, 113760000, time.UTC)
	if d := el.Epoch.Sub(epoch); d < -time.Millisecond || d > time.Millisecond {
		t.Fatalf("epoch %s, expected %s", el.Epoch, epoch)
	}
}

func TestParseTLEErrors(t *testing.T) {
	cases := []struct {
		name  string
		line1 string
		line2 string
	}{
		{"short line", tleLine1[:68], tleLine2},
		{"wrong line number", "2" + tleLine1[1:], tleLine2},
		{"bad checksum", tleLine1[:68] + "9", tleLine2},
		{"catalog mismatch", tleLine1, "2 88889  72.8435 115.9689 0086731  52.6988 110.5714 16.05824518  1059"},
	}
	for _, c := range cases {
		if _, err := ParseTLE(c.line1, c.line2); err == nil {
			t.Fatalf("%s: expected an error", c.name)
		}
	}
	// trailing whitespace is tolerated
	if _, err := ParseTLE(tleLine1+"\r\n", tleLine2+" \n"); err != nil {
		t.Fatalf("trailing whitespace: %s", err)
	}
}

func TestParsePointAssumed(t *testing.T) {
	cases := []struct {
		field string
		want  float64
	}{
		{" 66816-4", 0.66816e-4},
		{"-11606-4", -0.11606e-4},
		{" 13844-3", 0.13844e-3},
		{" 00000-0", 0.0},
		{" 12345+2", 0.12345e2},
	}
	for _, c := range cases {
		got, err := parsePointAssumed(c.field)
		if err != nil {
			t.Fatalf("%q: %s", c.field, err)
		}
		if !floats.EqualWithinAbs(got, c.want, 1e-18) {
			t.Fatalf("%q = %g, expected %g", c.field, got, c.want)
		}
	}
}

func TestTLEEpochCentury(t *testing.T) {
	if y := tleEpochTime(57, 1.0).Year(); y != 1957 {
		t.Fatalf("year 57 resolved to %d", y)
	}
	if y := tleEpochTime(56, 1.0).Year(); y != 2056 {
		t.Fatalf("year 56 resolved to %d", y)
	}
	if y := tleEpochTime(0, 1.0).Year(); y != 2000 {
		t.Fatalf("year 00 resolved to %d", y)
	}
}

func TestParseTLEPropagates(t *testing.T) {
	el, err := ParseTLE(tleLine1, tleLine2)
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPropagator(el)
	if err != nil {
		t.Fatal(err)
	}
	s, err := p.Propagate(0)
	if err != nil {
		t.Fatal(err)
	}
	assertState(t, s,
		[]float64{2328.96975262, -5995.22051338, 1719.97297192},
		[]float64{2.912073281, -0.983417956, -7.090816210})
}
