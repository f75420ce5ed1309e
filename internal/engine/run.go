package engine

import (
	"context"

	"github.com/san-kum/hairsim/internal/hair"
	"github.com/san-kum/hairsim/internal/metrics"
)

// Metric accumulates an observable over a run. Implementations live in
// the metrics package; Observe sees the settled buffer after each step.
type Metric interface {
	Name() string
	Observe(state *hair.Buffer, t float64)
	Value() float64
	Reset()
}

// RunConfig drives a fixed-cadence headless run.
type RunConfig struct {
	Steps int

	// ProbeStrand selects the strand whose tip position is recorded
	// into the result series.
	ProbeStrand int

	// SampleEvery thins the recorded series; 0 means every step.
	SampleEvery int

	// BeforeStep, when set, runs before each step. Anchor sway is
	// applied here via Sim.SetAnchors.
	BeforeStep func(step int, t float64)

	// Validate checks the active state for NaN/Inf after each step and
	// aborts the run with ErrDiverged when found.
	Validate bool
}

// Result holds the recorded series and final metric values of a run.
type Result struct {
	Times      []float64
	Tip        []hair.Vec3
	MeanStrain []float64
	Energy     []float64
	Metrics    map[string]float64
	StepsTaken int
}

// AddMetric registers a metric observed by Run after every step.
func (s *Sim) AddMetric(m Metric) {
	s.metrics = append(s.metrics, m)
}

// Run advances the simulation cfg.Steps steps, sampling the probe
// strand's tip along with mean strain and total energy. Cancellation
// is observed between steps only; steps themselves are atomic. A
// divergence aborts with a StepError wrapping ErrDiverged, returning
// the series recorded so far.
func (s *Sim) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	sample := cfg.SampleEvery
	if sample <= 0 {
		sample = 1
	}
	probe := cfg.ProbeStrand
	if probe < 0 || probe >= len(s.strands) {
		probe = 0
	}

	result := &Result{
		Times:      make([]float64, 0, cfg.Steps/sample+1),
		Tip:        make([]hair.Vec3, 0, cfg.Steps/sample+1),
		MeanStrain: make([]float64, 0, cfg.Steps/sample+1),
		Energy:     make([]float64, 0, cfg.Steps/sample+1),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.finishMetrics(result)
			return result, ctx.Err()
		default:
		}

		if cfg.BeforeStep != nil {
			cfg.BeforeStep(i, s.time)
		}

		s.Step()

		state := s.front
		for _, m := range s.metrics {
			m.Observe(state, s.time)
		}

		if i%sample == 0 {
			tip := s.strands[probe].Anchor
			if n := s.strands[probe].Length; n > 0 {
				tip = state.Pos[hair.Index(probe, n-1)]
			}
			result.Times = append(result.Times, s.time)
			result.Tip = append(result.Tip, tip)
			result.MeanStrain = append(result.MeanStrain, metrics.MeanStrain(state, s.strands, s.par.RestLength))
			result.Energy = append(result.Energy, metrics.TotalEnergy(state, s.strands, s.par))
		}

		result.StepsTaken++

		if cfg.Validate && !state.Finite(s.strands) {
			s.finishMetrics(result)
			return result, &StepError{Step: s.steps, Time: s.time, Err: ErrDiverged}
		}
	}

	s.finishMetrics(result)
	return result, nil
}

func (s *Sim) finishMetrics(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
