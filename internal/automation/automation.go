package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nuosc/internal/config"
	"github.com/san-kum/nuosc/internal/oscillation"
	"github.com/san-kum/nuosc/internal/storage"
	"github.com/san-kum/nuosc/internal/sweep"
)

// Scenario defines a scripted batch of evaluations.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one evaluation. Omitted fields fall back to the preset,
// then to the defaults; an explicit zero is kept.
type ScenarioStep struct {
	Preset   string   `yaml:"preset"`
	Energy   *float64 `yaml:"energy"`
	Distance *float64 `yaml:"distance"`
	Theta12  *float64 `yaml:"theta12"`
	Flavor   string   `yaml:"flavor"`
	Points   *int     `yaml:"points"`
	SaveAs   string   `yaml:"save_as"`
}

// StepResult reports where a step's run was stored.
type StepResult struct {
	Step        int
	RunID       string
	Config      *config.Config
	Probability float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s: no steps", path)
	}

	return &scenario, nil
}

// Config resolves the step against its preset and the defaults.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets())
		}
	}
	if s.Energy != nil {
		cfg.Energy = *s.Energy
	}
	if s.Distance != nil {
		cfg.Distance = *s.Distance
	}
	if s.Theta12 != nil {
		cfg.Theta12 = *s.Theta12
	}
	if s.Flavor != "" {
		cfg.Flavor = s.Flavor
	}
	if s.Points != nil {
		cfg.Points = *s.Points
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in order, storing each as a run. It stops
// at the first failing step or when ctx is done.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		name := step.SaveAs
		if name == "" {
			name = fmt.Sprintf("%s-%d", scenario.Name, i+1)
		}
		run, err := BuildRun(cfg, name)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		runID, err := st.Save(run)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		logger.Info("scenario step complete",
			"scenario", scenario.Name,
			"step", i+1,
			"run_id", runID,
			"probability", run.Meta.Probability)

		results = append(results, StepResult{
			Step:        i + 1,
			RunID:       runID,
			Config:      cfg,
			Probability: run.Meta.Probability,
		})
	}

	return results, nil
}

// BuildRun evaluates the configured point and both sweeps.
func BuildRun(cfg *config.Config, name string) (*storage.Run, error) {
	from, err := cfg.InitialFlavor()
	if err != nil {
		return nil, err
	}

	lr := sweep.Range{Min: cfg.DistanceRange.Min, Max: cfg.DistanceRange.Max}
	er := sweep.Range{Min: cfg.EnergyRange.Min, Max: cfg.EnergyRange.Max}

	dist, err := sweep.Distance(cfg.Energy, cfg.Theta12, from, lr, cfg.Points)
	if err != nil {
		return nil, err
	}
	energy, err := sweep.Energy(cfg.Distance, cfg.Theta12, from, er, cfg.Points)
	if err != nil {
		return nil, err
	}

	p := oscillation.Compute(cfg.Energy, cfg.Distance, cfg.Theta12)
	return &storage.Run{
		Meta: storage.RunMetadata{
			Name:          name,
			Energy:        cfg.Energy,
			Distance:      cfg.Distance,
			Theta12:       cfg.Theta12,
			Flavor:        from.String(),
			DeltaM2:       oscillation.DeltaM21,
			Probability:   p.Transition(from),
			Matrix:        p,
			Points:        cfg.Points,
			DistanceRange: lr,
			EnergyRange:   er,
		},
		Distance: dist,
		Energy:   energy,
	}, nil
}
