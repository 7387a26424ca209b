package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/nuosc/internal/config"
	"github.com/san-kum/nuosc/internal/oscillation"
	"github.com/san-kum/nuosc/internal/sweep"
)

func TestWriteSurface(t *testing.T) {
	s, err := sweep.Grid(context.Background(), 33, oscillation.Electron,
		sweep.Range{Min: 0.5, Max: 2}, sweep.Range{Min: 100, Max: 1000}, 3, 4)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeSurface(&buf, s); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if len(r) != 5 {
			t.Fatalf("expected 5 columns, got %d: %v", len(r), r)
		}
	}
	if rows[0][1] != "100" || rows[1][0] != "0.5" {
		t.Errorf("unexpected axes: %v / %v", rows[0], rows[1])
	}
}

func TestWriteSurfaceFile(t *testing.T) {
	s, err := sweep.Grid(context.Background(), 45, oscillation.Muon,
		sweep.Range{Min: 1, Max: 2}, sweep.Range{Min: 10, Max: 20}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "surface.csv")
	if err := writeSurfaceFile(path, s); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("expected header + 2 rows, got %d", len(rows))
	}

	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "surface.csv")
	if err := writeSurfaceFile(missing, s); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn", true)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("unexpected log output: %s", out)
	}

	if _, err := newLogger(&buf, "loud", false); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Float64Var(&energy, "energy", config.DefaultEnergy, "")
	cmd.Flags().Float64Var(&distance, "distance", config.DefaultDistance, "")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "")
	cmd.Flags().StringVar(&flavor, "flavor", "electron", "")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "")

	preset = "t2k"
	configFile = ""
	t.Cleanup(func() { preset = "" })

	if err := cmd.Flags().Parse([]string{"--energy", "2"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	want := config.GetPreset("t2k")
	if cfg.Energy != 2 {
		t.Errorf("flag should win: energy %v", cfg.Energy)
	}
	if cfg.Distance != want.Distance || cfg.Flavor != want.Flavor {
		t.Errorf("preset values lost: %+v", cfg)
	}

	preset = "nope"
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected unknown preset error")
	}
}
