package sgp4

import (
	"fmt"
	"os"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

/* Handles the ephemeris generation runs. */

// Ephemeris drives a configured Propagator over a time span at a fixed step
// and streams every fix to the export layer.
type Ephemeris struct {
	Prop                       *Propagator
	StartDT, StopDT, CurrentDT time.Time
	step                       time.Duration
	histChan                   chan (State)
	logger                     kitlog.Logger
	wg                         sync.WaitGroup
	done                       bool
}

// NewEphemeris is the same as NewPreciseEphemeris with the step size taken
// from the runtime configuration.
func NewEphemeris(p *Propagator, start, end time.Time, conf ExportConfig) *Ephemeris {
	step := time.Duration(sgp4Config().stepMins * float64(time.Minute))
	return NewPreciseEphemeris(p, start, end, step, conf)
}

// NewPreciseEphemeris returns a new Ephemeris instance with a custom step.
func NewPreciseEphemeris(p *Propagator, start, end time.Time, step time.Duration, conf ExportConfig) *Ephemeris {
	e := &Ephemeris{Prop: p, StartDT: start.UTC(), StopDT: end.UTC(), CurrentDT: start.UTC(), step: step}
	if !conf.IsUseless() {
		e.histChan = make(chan (State), 1000) // a 1k entry buffer
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			StreamStates(conf, e.histChan)
		}()
	}
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	e.logger = kitlog.With(klog, "subsys", "ephemeris", "norad", p.Elements().NoradID)
	return e
}

// LogStatus reports the current propagation status.
func (e *Ephemeris) LogStatus() {
	e.logger.Log("level", "info", "date", e.CurrentDT, "step", e.step)
}

// Generate runs the propagation from the start to the stop time, blocking
// until the export files are flushed. A decayed satellite ends the run early
// with a nil error; any other propagation failure is returned.
func (e *Ephemeris) Generate() error {
	e.logger.Log("level", "notice", "status", "starting", "start", e.StartDT, "stop", e.StopDT)
	var genErr error
	for !e.CurrentDT.After(e.StopDT) {
		state, err := e.Prop.PropagateAt(e.CurrentDT)
		if err != nil {
			if perr, ok := err.(PropagationError); ok && perr.Decayed() {
				e.logger.Log("level", "notice", "status", "decayed", "date", e.CurrentDT)
			} else {
				genErr = fmt.Errorf("ephemeris at %s: %w", e.CurrentDT, err)
			}
			break
		}
		if e.histChan != nil {
			e.histChan <- state
		}
		e.CurrentDT = e.CurrentDT.Add(e.step)
	}
	if e.histChan != nil {
		close(e.histChan)
	}
	e.wg.Wait()
	e.done = true
	duration := e.CurrentDT.Sub(e.StartDT)
	durStr := duration.String()
	if duration.Hours() > 24 {
		durStr += fmt.Sprintf(" (~%.3fd)", duration.Hours()/24)
	}
	e.logger.Log("level", "notice", "status", "finished", "duration", durStr)
	return genErr
}
