package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hairsim/internal/compute"
	"github.com/san-kum/hairsim/internal/config"
	"github.com/san-kum/hairsim/internal/engine"
	"github.com/san-kum/hairsim/internal/hair"
	"github.com/san-kum/hairsim/internal/metrics"
	"github.com/san-kum/hairsim/internal/scene"
	"github.com/san-kum/hairsim/internal/storage"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario. It starts from a preset
// and applies parameter overrides on top.
type ScenarioStep struct {
	Preset string             `yaml:"preset"`
	Steps  int                `yaml:"steps"`
	Params map[string]float64 `yaml:"params"`
	Sway   *config.SwayConfig `yaml:"sway"`
	SaveAs string             `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// StepConfig resolves a scenario step into a full configuration.
func StepConfig(step ScenarioStep) (*config.Config, error) {
	cfg := config.GetPreset(step.Preset)
	if cfg == nil {
		return nil, fmt.Errorf("automation: unknown preset %q", step.Preset)
	}

	if step.Steps > 0 {
		cfg.Steps = step.Steps
	}
	for k, v := range step.Params {
		switch k {
		case "dt":
			cfg.Dt = v
		case "mass":
			cfg.Mass = v
		case "rest_length":
			cfg.RestLength = v
		case "stiffness":
			cfg.Stiffness = v
		case "damping":
			cfg.Damping = v
		case "gravity_y":
			cfg.GravityY = v
		case "spacing":
			cfg.Spacing = v
		case "rows":
			cfg.Rows = int(v)
		case "cols":
			cfg.Cols = int(v)
		case "points":
			cfg.Points = int(v)
		default:
			return nil, fmt.Errorf("automation: unknown parameter %q", k)
		}
	}
	if step.Sway != nil {
		cfg.Sway = *step.Sway
	}

	return cfg, cfg.Validate()
}

func runStep(ctx context.Context, cfg *config.Config) (*engine.Result, error) {
	sc := scene.FromConfig(cfg)

	sim, err := engine.New(sc.Strands, sc.Initial, cfg.Params())
	if err != nil {
		return nil, err
	}
	sim.SetBackend(compute.ByName(cfg.Backend))
	sim.AddMetric(metrics.NewMaxStrain(sc.Strands, cfg.RestLength))
	sim.AddMetric(metrics.NewEnergyDrift(sc.Strands, cfg.Params()))

	run := engine.RunConfig{Steps: cfg.Steps, Validate: true}
	if cfg.Sway.Amplitude != 0 {
		run.BeforeStep = func(_ int, t float64) {
			sim.SetAnchors(sc.AnchorsAt(t))
		}
	}

	return sim.Run(ctx, run)
}

// RunScenario executes all steps in a scenario, saving any step that
// names a save_as target into the store.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]*engine.Result, error) {
	results := make([]*engine.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Printf("Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Preset)

		cfg, err := StepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := runStep(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, result)

		if step.SaveAs != "" && st != nil {
			meta := storage.RunMetadata{
				Rows: cfg.Rows, Cols: cfg.Cols, Points: cfg.Points,
				Dt: cfg.Dt, Steps: result.StepsTaken, Backend: cfg.Backend,
			}
			if _, err := st.Save(step.SaveAs, meta, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
	}

	return results, nil
}

// ParameterSweep runs simulations across a range of parameter values
type ParameterSweep struct {
	Preset    string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from one sweep point
type SweepResult struct {
	ParamValue float64
	MaxStrain  float64
	FinalTip   hair.Vec3
	Diverged   bool
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("automation: sweep needs at least 2 points")
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg, err := StepConfig(ScenarioStep{
			Preset: sweep.Preset,
			Params: map[string]float64{sweep.ParamName: paramVal},
		})
		if err != nil {
			return nil, err
		}

		result, err := runStep(ctx, cfg)

		sr := SweepResult{ParamValue: paramVal}
		if err != nil {
			var stepErr *engine.StepError
			if !errors.As(err, &stepErr) {
				return results, err
			}
			sr.Diverged = true
		}
		if result != nil {
			sr.MaxStrain = result.Metrics["max_strain"]
			if n := len(result.Tip); n > 0 {
				sr.FinalTip = result.Tip[n-1]
			}
		}
		results = append(results, sr)

		fmt.Printf("Sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}

// MonteCarloConfig defines randomized-drape trial parameters
type MonteCarloConfig struct {
	Preset       string
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID int
	Stable  bool
}

// RunMonteCarlo executes multiple trials, each starting from the
// preset's drape with every point position randomly perturbed.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	base := config.GetPreset(cfg.Preset)
	if base == nil {
		return nil, fmt.Errorf("automation: unknown preset %q", cfg.Preset)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		sc := scene.FromConfig(base)
		for s := range sc.Strands {
			for p := 0; p < sc.Strands[s].Length; p++ {
				i := hair.Index(s, p)
				sc.Initial.Pos[i] = sc.Initial.Pos[i].Add(hair.Vec3{
					X: (rng.Float64() - 0.5) * 2 * cfg.Perturbation,
					Y: (rng.Float64() - 0.5) * 2 * cfg.Perturbation,
					Z: (rng.Float64() - 0.5) * 2 * cfg.Perturbation,
				})
			}
		}

		sim, err := engine.New(sc.Strands, sc.Initial, base.Params())
		if err != nil {
			return nil, err
		}
		sim.SetBackend(compute.ByName(base.Backend))

		_, err = sim.Run(ctx, engine.RunConfig{Steps: base.Steps, Validate: true})
		stable := true
		if err != nil {
			var stepErr *engine.StepError
			if !errors.As(err, &stepErr) {
				return results, err
			}
			stable = false
		}

		results = append(results, MonteCarloResult{TrialID: trial, Stable: stable})

		if (trial+1)%10 == 0 {
			fmt.Printf("Monte Carlo: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary counts from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
