package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/nuosc/internal/config"
	"github.com/san-kum/nuosc/internal/oscillation"
	"github.com/san-kum/nuosc/internal/storage"
)

const scenarioYAML = `
name: baselines
description: accelerator baselines at solar mixing
steps:
  - preset: t2k
    points: 40
  - preset: dune
    points: 40
    save_as: dune-long
  - energy: 2.0
    distance: 4000
    theta12: 45
    flavor: electron
    points: 40
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "baselines" || len(sc.Steps) != 3 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
	if sc.Steps[1].SaveAs != "dune-long" {
		t.Errorf("expected save_as dune-long, got %q", sc.Steps[1].SaveAs)
	}

	if _, err := LoadScenario(writeScenario(t, "name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func ptr[T any](v T) *T { return &v }

func TestScenarioStep_Config(t *testing.T) {
	cfg, err := ScenarioStep{Preset: "dune", Theta12: ptr(40.0)}.Config()
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if cfg.Distance != 1300 || cfg.Theta12 != 40 || cfg.Flavor != "muon" {
		t.Errorf("unexpected resolved config: %+v", cfg)
	}

	if _, err := (ScenarioStep{Preset: "nova"}).Config(); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := (ScenarioStep{Energy: ptr(50.0)}).Config(); !errors.Is(err, config.ErrEnergyRange) {
		t.Errorf("expected ErrEnergyRange, got %v", err)
	}
}

func TestScenarioStep_ExplicitZeroTheta(t *testing.T) {
	for _, name := range config.ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg, err := ScenarioStep{Preset: name, Theta12: ptr(0.0)}.Config()
			if err != nil {
				t.Fatalf("config failed: %v", err)
			}
			if cfg.Theta12 != 0 {
				t.Errorf("expected θ12 = 0, got %v", cfg.Theta12)
			}
		})
	}
}

func TestLoadScenario_ZeroFieldsFromYAML(t *testing.T) {
	body := `
name: no-mixing
steps:
  - preset: maximal
    theta12: 0
  - preset: maximal
`
	sc, err := LoadScenario(writeScenario(t, body))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	zero, err := sc.Steps[0].Config()
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if zero.Theta12 != 0 || zero.Distance != 5000 {
		t.Errorf("explicit theta12: 0 lost: %+v", zero)
	}
	if p := buildProbability(t, zero); p != 0 {
		t.Errorf("no mixing should give P = 0, got %v", p)
	}

	inherited, err := sc.Steps[1].Config()
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if inherited.Theta12 != 45 {
		t.Errorf("omitted theta12 should come from the preset, got %v", inherited.Theta12)
	}
}

func buildProbability(t *testing.T, cfg *config.Config) float64 {
	t.Helper()
	run, err := BuildRun(cfg, "zero")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return run.Meta.Probability
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	results, err := RunScenario(context.Background(), sc, st, nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	last := results[2]
	want := oscillation.Compute(2.0, 4000, 45)[0][1]
	if last.Probability != want {
		t.Errorf("expected probability %v, got %v", want, last.Probability)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("expected 3 stored runs, got %d", len(runs))
	}
}

func TestRunScenario_Canceled(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := RunScenario(ctx, sc, storage.New(t.TempDir()), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBuildRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Points = 25
	cfg.Flavor = "muon"

	run, err := BuildRun(cfg, "check")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if run.Distance.Len() != 25 || run.Energy.Len() != 25 {
		t.Errorf("expected 25 samples, got %d/%d", run.Distance.Len(), run.Energy.Len())
	}
	if run.Meta.Probability != oscillation.Compute(1, 500, 33)[1][0] {
		t.Errorf("unexpected probability %v", run.Meta.Probability)
	}
	if run.Distance.X[0] != 1 || run.Energy.X[len(run.Energy.X)-1] != 10 {
		t.Error("sweeps should span the configured ranges")
	}
}
