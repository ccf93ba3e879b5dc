package sgp4

import (
	"os"
	"testing"
	"time"
)

func TestEphemerisGenerate(t *testing.T) {
	cfgLoaded = true
	config = _sgp4config{outputDir: t.TempDir(), stepMins: 1}

	p, err := NewPropagator(elements88888())
	if err != nil {
		t.Fatal(err)
	}
	start := p.Elements().Epoch
	end := start.Add(30 * time.Minute)
	eph := NewPreciseEphemeris(p, start, end, 5*time.Minute, ExportConfig{Filename: "eph88888", Cosmo: true})
	eph.LogStatus()
	if err := eph.Generate(); err != nil {
		t.Fatal(err)
	}
	if !eph.CurrentDT.After(end) {
		t.Fatalf("run stopped at %s", eph.CurrentDT)
	}
	xyzv, err := os.ReadFile(config.outputDir + "/ephem-eph88888.xyzv")
	if err != nil {
		t.Fatal(err)
	}
	if states := ParseInterpolatedStates(string(xyzv)); len(states) != 7 {
		t.Fatalf("exported %d states over 30 minutes at a 5 minute step", len(states))
	}
}

func TestEphemerisDecayStopsEarly(t *testing.T) {
	cfgLoaded = true
	config = _sgp4config{outputDir: t.TempDir(), stepMins: 1}

	// re-enters within a quarter hour of epoch
	el := testElements(28.5, 50.0, 0.006, 90.0, 180.0, 16.9, 1e-5, 80, 100.0)
	p, err := NewPropagator(el)
	if err != nil {
		t.Fatal(err)
	}
	start := p.Elements().Epoch
	end := start.Add(2 * time.Hour)
	eph := NewPreciseEphemeris(p, start, end, time.Minute, ExportConfig{})
	if err := eph.Generate(); err != nil {
		t.Fatalf("decay must end the run without an error, got: %s", err)
	}
	if !eph.CurrentDT.Before(end) {
		t.Fatal("run must stop at re-entry, not at the requested end")
	}
}

func TestEphemerisStepFromConfig(t *testing.T) {
	cfgLoaded = true
	config = _sgp4config{outputDir: t.TempDir(), stepMins: 2.5}

	p, err := NewPropagator(elements88888())
	if err != nil {
		t.Fatal(err)
	}
	start := p.Elements().Epoch
	eph := NewEphemeris(p, start, start.Add(time.Hour), ExportConfig{})
	if eph.step != 150*time.Second {
		t.Fatalf("step %s, expected 2m30s", eph.step)
	}
}
