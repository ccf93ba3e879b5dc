package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/davidtgillard/sgp4"
	"github.com/soniakeys/meeus/julian"
	"github.com/spf13/viper"
)

// This code effectively only reads the scenario file and generates the ephemeris.

const (
	defaultScenario = "~~unset~~"
	dateFormat      = "2006-01-02 15:04:05"
)

var (
	scenario string
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "ephemeris scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "really verbose (esp. for configuration)")
}

func main() {
	flag.Parse()
	// Load scenario
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	// Read satellite
	name := viper.GetString("satellite.name")
	line1 := viper.GetString("satellite.line1")
	line2 := viper.GetString("satellite.line2")
	el, err := sgp4.ParseTLE(line1, line2)
	if err != nil {
		log.Fatalf("could not parse TLE: %s", err)
	}
	el.Name = name
	if verbose {
		log.Printf("[conf] %s\n", el)
	}

	prop, err := sgp4.NewPropagator(el)
	if err != nil {
		log.Fatalf("could not configure propagator: %s", err)
	}
	if verbose {
		model := "near-earth"
		if prop.DeepSpace() {
			model = "deep-space"
		}
		log.Printf("[conf] model: %s, perigee: %.1f km, period: %.1f min\n", model, prop.Perigee(), prop.Period())
	}

	// Read ephemeris parameters
	startDT := confReadJDEorTime("ephemeris.start")
	if startDT.IsZero() {
		startDT = el.Epoch
	}
	endDT := confReadJDEorTime("ephemeris.end")
	if endDT.IsZero() {
		endDT = startDT.Add(24 * time.Hour)
	}
	timeStep := viper.GetDuration("ephemeris.step")
	if timeStep == 0 {
		timeStep = time.Minute
	}
	if verbose {
		log.Printf("[conf] start: %s end: %s step: %s\n", startDT, endDT, timeStep)
	}

	// Read export
	export := sgp4.ExportConfig{
		Filename:  viper.GetString("export.filename"),
		Cosmo:     viper.GetBool("export.cosmo"),
		AsCSV:     viper.GetBool("export.csv"),
		Timestamp: viper.GetBool("export.timestamp"),
	}
	if export.Filename == "" {
		export.Filename = name
	}

	eph := sgp4.NewPreciseEphemeris(prop, startDT, endDT, timeStep, export)
	if err := eph.Generate(); err != nil {
		log.Fatalf("generation failed: %s", err)
	}
}

// confReadJDEorTime reads the scenario time as either a Julian date or a
// formatted civil date. Returns the zero time when the key is absent.
func confReadJDEorTime(key string) (dt time.Time) {
	jde := viper.GetFloat64(key)
	if jde == 0 {
		rawDT := viper.GetString(key)
		if rawDT == "" {
			return time.Time{}
		}
		var err error
		dt, err = time.Parse(dateFormat, rawDT)
		if err != nil {
			log.Fatalf("could not understand `%s`: %s", key, err)
		}
	} else {
		dt = julian.JDToTime(jde)
	}
	return dt.UTC()
}
