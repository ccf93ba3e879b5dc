package sgp4

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CgCatalog definition.
type CgCatalog struct {
	Version string     `json:"version"`
	Name    string     `json:"name"`
	Items   []*CgItems `json:"items"`
	Require []string   `json:"require,omitempty"`
}

func (c *CgCatalog) String() string {
	return c.Name + "(" + c.Version + ")"
}

// CgItems definition.
type CgItems struct {
	Class           string            `json:"class"`
	Name            string            `json:"name"`
	StartTime       string            `json:"startTime"`
	EndTime         string            `json:"endTime"`
	Center          string            `json:"center"`
	TrajectoryFrame string            `json:"trajectoryFrame"`
	Trajectory      *CgTrajectory     `json:"trajectory,omitempty"`
	Label           *CgLabel          `json:"label,omitempty"`
	TrajectoryPlot  *CgTrajectoryPlot `json:"trajectoryPlot,omitempty"`
}

// CgTrajectory definition.
type CgTrajectory struct {
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
}

// Validate validates a CgTrajectory.
func (t *CgTrajectory) Validate() error {
	if t.Type != "InterpolatedStates" || !strings.HasSuffix(t.Source, "xyzv") {
		return errors.New("only InterpolatedStates are currently supported in Cosmographia trajectory types")
	}
	return nil
}

func (t *CgTrajectory) String() string {
	return t.Source + " as " + t.Type
}

// CgLabel definition.
type CgLabel struct {
	Color    []float64 `json:"color,omitempty"`
	FadeSize int       `json:"fadeSize,omitempty"`
	ShowText bool      `json:"showText,omitempty"`
}

func (l *CgLabel) String() string {
	return fmt.Sprintf("color %v, fade %d, show %v", l.Color, l.FadeSize, l.ShowText)
}

// CgTrajectoryPlot definition.
type CgTrajectoryPlot struct {
	Color       []float64 `json:"color,omitempty"`
	LineWidth   int       `json:"lineWidth,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Lead        string    `json:"lead,omitempty"`
	Fade        int       `json:"fade,omitempty"`
	SampleCount int       `json:"sampleCount,omitempty"`
}

// CgInterpolatedState definition.
type CgInterpolatedState struct {
	JD       float64
	Position []float64
	Velocity []float64
}

// FromText initializes from text.
// The `record` parameter must be an array of seven items.
func (i *CgInterpolatedState) FromText(record []string) {
	if val, err := strconv.ParseFloat(record[0], 64); err != nil {
		panic(err)
	} else {
		i.JD = val
	}

	if posX, err := strconv.ParseFloat(record[1], 64); err != nil {
		panic(err)
	} else if posY, err := strconv.ParseFloat(record[2], 64); err != nil {
		panic(err)
	} else if posZ, err := strconv.ParseFloat(record[3], 64); err != nil {
		panic(err)
	} else {
		i.Position = []float64{posX, posY, posZ}
	}

	if velX, err := strconv.ParseFloat(record[4], 64); err != nil {
		panic(err)
	} else if velY, err := strconv.ParseFloat(record[5], 64); err != nil {
		panic(err)
	} else if velZ, err := strconv.ParseFloat(record[6], 64); err != nil {
		panic(err)
	} else {
		i.Velocity = []float64{velX, velY, velZ}
	}
}

// ToText converts to text for written output.
func (i *CgInterpolatedState) ToText() string {
	return fmt.Sprintf("%f %f %f %f %f %f %f", i.JD, i.Position[0], i.Position[1], i.Position[2], i.Velocity[0], i.Velocity[1], i.Velocity[2])
}

// ParseInterpolatedStates takes a string and converts that into a CgInterpolatedState.
func ParseInterpolatedStates(s string) []*CgInterpolatedState {
	var states = []*CgInterpolatedState{}
	r := csv.NewReader(strings.NewReader(s))
	r.Comma = ' '
	r.Comment = '#'
	for {
		record, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			panic(err)
		}
		state := CgInterpolatedState{}
		state.FromText(record)
		states = append(states, &state)
	}

	return states
}

// createInterpolatedFile returns a file which requires a defer close statement!
func createInterpolatedFile(filename string, stamped bool, stateDT time.Time) *os.File {
	config := sgp4Config()
	if stamped {
		t := time.Now()
		filename = fmt.Sprintf("%s/ephem-%s-%d-%02d-%02dT%02d.%02d.%02d.xyzv", config.outputDir, filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/ephem-%s.xyzv", config.outputDir, filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are <jd> <x> <y> <z> <vel x> <vel y> <vel z>
#   Time is a UTC Julian date
#   Position in km (TEME of epoch)
#   Velocity in km/sec
#   Simulation time start (UTC): %s`, time.Now(), stateDT.UTC()))
	return f
}

// createCSVFile returns a file which requires a defer close statement!
func createCSVFile(filename string, conf ExportConfig, stateDT time.Time) *os.File {
	config := sgp4Config()
	if conf.Timestamp {
		t := time.Now()
		filename = fmt.Sprintf("%s/groundtrack-%s-%d-%02d-%02dT%02d.%02d.%02d.csv", config.outputDir, filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	} else {
		filename = fmt.Sprintf("%s/groundtrack-%s.csv", config.outputDir, filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	// Header
	f.WriteString(fmt.Sprintf(`# Creation date (UTC): %s
# Records are time, geocentric radius (km), speed (km/s), latitude, longitude (degrees), altitude (km)
#   Simulation time start (UTC): %s
time,radius,speed,latitude,longitude,altitude`, time.Now(), stateDT.UTC()))
	return f
}

// StreamStates streams the output of the channel to the export files. The
// channel is expected to carry states of a single satellite in time order.
func StreamStates(conf ExportConfig, stateChan <-chan State) {
	var prevStatePtr, firstStatePtr *State
	var f, fAsCSV *os.File
	var curCgItem *CgItems
	color := []float64{0.6, 1, 1}

	defer func() {
		if prevStatePtr == nil {
			return
		}
		if conf.Cosmo {
			f.WriteString(fmt.Sprintf("\n# Simulation time end (UTC): %s\n", prevStatePtr.DT.UTC()))
			f.Close()
			longerEnd := prevStatePtr.DT.Add(time.Duration(24) * time.Hour)
			curCgItem.EndTime = fmt.Sprintf("%s", longerEnd.UTC())
			curCgItem.TrajectoryPlot.Duration = fmt.Sprintf("%d d", int(longerEnd.Sub(firstStatePtr.DT).Hours()/24+1))
			c := CgCatalog{Version: "1.0", Name: conf.Filename, Items: []*CgItems{curCgItem}, Require: nil}
			fc, err := os.Create(fmt.Sprintf("%s/catalog-%s.json", sgp4Config().outputDir, conf.Filename))
			if err != nil {
				panic(err)
			}
			defer fc.Close()
			if marsh, err := json.Marshal(c); err != nil {
				panic(err)
			} else {
				fc.Write(marsh)
			}
		}
		if conf.AsCSV {
			fAsCSV.WriteString(fmt.Sprintf("\n# Simulation time end (UTC): %s\n", prevStatePtr.DT.UTC()))
			fAsCSV.Close()
		}
	}()

	for state := range stateChan {
		state := state
		if prevStatePtr == nil {
			firstStatePtr = &state
			if conf.Cosmo {
				f = createInterpolatedFile(conf.Filename, conf.Timestamp, state.DT)
				traj := CgTrajectory{Type: "InterpolatedStates", Source: fmt.Sprintf("ephem-%s.xyzv", conf.Filename)}
				label := CgLabel{Color: color, FadeSize: 1000000, ShowText: true}
				plot := CgTrajectoryPlot{Color: color, LineWidth: 1, Duration: "", Lead: "0 d", Fade: 0, SampleCount: 10}
				curCgItem = &CgItems{Class: "spacecraft", Name: conf.Filename, StartTime: fmt.Sprintf("%s", state.DT.UTC()), EndTime: "", Center: "Earth", TrajectoryFrame: "EquatorJ2000", Trajectory: &traj, Label: &label, TrajectoryPlot: &plot}
			}
			if conf.AsCSV {
				fAsCSV = createCSVFile(conf.Filename, conf, state.DT)
			}
		}
		prevStatePtr = &state
		if conf.Cosmo {
			asTxt := CgInterpolatedState{JD: julianDate(state.DT), Position: state.R, Velocity: state.V}
			if _, err := f.WriteString("\n" + asTxt.ToText()); err != nil {
				panic(err)
			}
		}
		if conf.AsCSV {
			geo := state.Geodetic()
			asTxt := fmt.Sprintf("%s,%.3f,%.6f,%.4f,%.4f,%.3f", state.DT.UTC().Format("2006-01-02 15:04:05"), state.RNorm(), state.VNorm(), geo.Latitude/deg2rad, geo.Longitude/deg2rad, geo.Altitude)
			if _, err := fAsCSV.WriteString("\n" + asTxt); err != nil {
				panic(err)
			}
		}
	}
}

// ExportConfig configures the exporting of the generated ephemeris.
type ExportConfig struct {
	Filename  string
	Cosmo     bool
	AsCSV     bool
	Timestamp bool
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.Cosmo && !c.AsCSV
}
