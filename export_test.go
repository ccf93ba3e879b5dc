package sgp4

import (
	"os"
	"strings"
	"testing"

	"github.com/gonum/floats"
)

func TestExportConfigIsUseless(t *testing.T) {
	if !(ExportConfig{Filename: "x"}).IsUseless() {
		t.Fatal("no output format means nothing to do")
	}
	if (ExportConfig{Cosmo: true}).IsUseless() {
		t.Fatal("Cosmographia output requested")
	}
	if (ExportConfig{AsCSV: true}).IsUseless() {
		t.Fatal("CSV output requested")
	}
}

func TestCgTrajectoryValidate(t *testing.T) {
	good := CgTrajectory{Type: "InterpolatedStates", Source: "ephem-sat.xyzv"}
	if err := good.Validate(); err != nil {
		t.Fatal(err)
	}
	bad := CgTrajectory{Type: "FixedPoint", Source: "ephem-sat.xyzv"}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected an unsupported trajectory type error")
	}
}

func TestParseInterpolatedStates(t *testing.T) {
	txt := `# header comment
2444514.487085 2328.969753 -5995.220513 1719.972972 2.912073 -0.983418 -7.090816
2444514.737085 2456.107065 -6071.938555 1222.897686 2.679390 -0.448291 -7.228792`
	states := ParseInterpolatedStates(txt)
	if len(states) != 2 {
		t.Fatalf("parsed %d states", len(states))
	}
	if !floats.EqualWithinAbs(states[0].JD, 2444514.487085, 1e-6) {
		t.Fatalf("JD %f", states[0].JD)
	}
	if !floats.EqualWithinAbs(states[1].Position[2], 1222.897686, 1e-6) {
		t.Fatalf("position %f", states[1].Position[2])
	}
	if !floats.EqualWithinAbs(states[0].Velocity[2], -7.090816, 1e-6) {
		t.Fatalf("velocity %f", states[0].Velocity[2])
	}
	// the textual form must round-trip through the same parser
	reparsed := ParseInterpolatedStates(states[0].ToText())
	if len(reparsed) != 1 || !floats.EqualWithinAbs(reparsed[0].Position[0], states[0].Position[0], 1e-6) {
		t.Fatal("ToText output did not reparse")
	}
}

func TestStreamStates(t *testing.T) {
	cfgLoaded = true
	config = _sgp4config{outputDir: t.TempDir(), stepMins: 1}

	p, err := NewPropagator(elements88888())
	if err != nil {
		t.Fatal(err)
	}
	stateChan := make(chan State, 10)
	for tsince := 0.0; tsince < 10; tsince++ {
		s, err := p.Propagate(tsince)
		if err != nil {
			t.Fatal(err)
		}
		stateChan <- s
	}
	close(stateChan)
	StreamStates(ExportConfig{Filename: "test88888", Cosmo: true, AsCSV: true}, stateChan)

	xyzv, err := os.ReadFile(config.outputDir + "/ephem-test88888.xyzv")
	if err != nil {
		t.Fatal(err)
	}
	states := ParseInterpolatedStates(string(xyzv))
	if len(states) != 10 {
		t.Fatalf("exported %d states", len(states))
	}
	if !floats.EqualWithinAbs(states[0].JD, 2444514.48708465, 1e-6) {
		t.Fatalf("first JD %f", states[0].JD)
	}
	if !floats.EqualWithinAbs(states[0].Position[0], 2328.96975262, 1e-4) {
		t.Fatalf("first position %f", states[0].Position[0])
	}

	csvData, err := os.ReadFile(config.outputDir + "/groundtrack-test88888.csv")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	var dataLines int
	for _, l := range lines {
		if !strings.HasPrefix(l, "#") && !strings.HasPrefix(l, "time,") {
			dataLines++
		}
	}
	if dataLines != 10 {
		t.Fatalf("exported %d groundtrack rows", dataLines)
	}

	if _, err := os.Stat(config.outputDir + "/catalog-test88888.json"); err != nil {
		t.Fatalf("catalog not written: %s", err)
	}
}
