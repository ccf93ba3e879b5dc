package sgp4

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _sgp4config{}
)

// _sgp4config is a "hidden" struct, just use `sgp4Config`
type _sgp4config struct {
	outputDir string
	tleDir    string
	stepMins  float64
}

// sgp4Config returns the runtime configuration, loading it on first use from
// the conf.toml in the directory named by the SGP4_CONFIG environment
// variable.
func sgp4Config() _sgp4config {
	if cfgLoaded {
		return config
	}
	confPath := os.Getenv("SGP4_CONFIG")
	if confPath == "" {
		panic("environment variable `SGP4_CONFIG` is missing or empty")
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found", confPath))
	}

	outputDir := viper.GetString("general.output_path")
	tleDir := viper.GetString("general.tle_path")
	stepMins := viper.GetFloat64("ephemeris.step_mins")
	if stepMins <= 0 {
		stepMins = 1.0
	}

	config = _sgp4config{outputDir: outputDir, tleDir: tleDir, stepMins: stepMins}
	cfgLoaded = true
	return config
}
