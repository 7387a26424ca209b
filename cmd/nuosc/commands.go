package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/san-kum/nuosc/internal/automation"
	"github.com/san-kum/nuosc/internal/config"
	"github.com/san-kum/nuosc/internal/oscillation"
	"github.com/san-kum/nuosc/internal/plot"
	"github.com/san-kum/nuosc/internal/server"
	"github.com/san-kum/nuosc/internal/storage"
	"github.com/san-kum/nuosc/internal/sweep"
)

// resolveConfig layers preset, config file and explicitly set flags, in
// that order. The result is not validated.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("energy") {
		cfg.Energy = energy
	}
	if flags.Changed("distance") {
		cfg.Distance = distance
	}
	if flags.Changed("theta") {
		cfg.Theta12 = theta
	}
	if flags.Changed("flavor") {
		cfg.Flavor = flavor
	}
	if flags.Changed("points") {
		cfg.Points = points
	}
	if flags.Lookup("backend") != nil && flags.Changed("backend") {
		cfg.Backend = backend
	}
	return cfg, nil
}

// loadConfig is resolveConfig followed by validation, for the batch commands.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string, json bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func probability(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	from, _ := cfg.InitialFlavor()

	p := oscillation.Compute(cfg.Energy, cfg.Distance, cfg.Theta12)

	fmt.Printf("E = %g GeV, L = %g km, θ12 = %g°, Δm² = %g eV²\n",
		cfg.Energy, cfg.Distance, cfg.Theta12, oscillation.DeltaM21)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tνe\tνμ")
	for _, a := range oscillation.Flavors {
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\n", a.Symbol(), p.At(a, oscillation.Electron), p.At(a, oscillation.Muon))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nphase: %.6f rad\n", oscillation.Phase(cfg.Energy, cfg.Distance))
	fmt.Printf("%s → %s\n", from.Label(), from.Other().Label())
	fmt.Printf("Oscillation Probability: %.4f\n", p.Transition(from))
	return nil
}

func sweepPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	from, _ := cfg.InitialFlavor()

	axis := "distance"
	if len(args) > 0 {
		axis = args[0]
	}

	var s sweep.Series
	switch axis {
	case "distance":
		s, err = sweep.Distance(cfg.Energy, cfg.Theta12, from,
			sweep.Range{Min: cfg.DistanceRange.Min, Max: cfg.DistanceRange.Max}, cfg.Points)
	case "energy":
		s, err = sweep.Energy(cfg.Distance, cfg.Theta12, from,
			sweep.Range{Min: cfg.EnergyRange.Min, Max: cfg.EnergyRange.Max}, cfg.Points)
	default:
		return fmt.Errorf("unknown axis: %s", axis)
	}
	if err != nil {
		return err
	}

	r, err := plot.New(cfg.Backend, 0, 0)
	if err != nil {
		return err
	}

	if outPath == "" {
		if cfg.Backend != "ascii" {
			return fmt.Errorf("backend %s writes binary output, use --out", cfg.Backend)
		}
		return r.Render(os.Stdout, s)
	}
	if err := renderFile(r, outPath, s); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func renderFile(r plot.Renderer, path string, s sweep.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Render(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runEvaluation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, logLevel, false)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	name := runName
	if name == "" {
		name = preset
	}
	run, err := automation.BuildRun(cfg, name)
	if err != nil {
		return err
	}
	runID, err := st.Save(run)
	if err != nil {
		return err
	}
	logger.Debug("run stored", "run_id", runID, "dir", dataDir)

	dx, dy := run.Distance.Peak()
	ex, ey := run.Energy.Peak()
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("Oscillation Probability: %.4f\n", run.Meta.Probability)
	fmt.Printf("distance sweep peak: %.4f at %.1f km\n", dy, dx)
	fmt.Printf("energy sweep peak:   %.4f at %.3f GeV\n", ey, ex)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tE [GeV]\tL [km]\tθ12\tFLAVOR\tP")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.0f\t%.2f\t%s\t%.4f\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Energy,
			run.Distance,
			run.Theta12,
			run.Flavor,
			run.Probability,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	r, err := plot.New(backend, 0, 0)
	if err != nil {
		return err
	}

	if backend == "ascii" && outPath == "" {
		fmt.Printf("run %s: P = %.4f at E = %g GeV, L = %g km, θ12 = %g°\n\n",
			run.Meta.ID, run.Meta.Probability, run.Meta.Energy, run.Meta.Distance, run.Meta.Theta12)
		if err := r.Render(os.Stdout, run.Distance); err != nil {
			return err
		}
		fmt.Println()
		return r.Render(os.Stdout, run.Energy)
	}

	prefix := outPath
	if prefix == "" {
		prefix = run.Meta.ID
	}
	for _, s := range []sweep.Series{run.Distance, run.Energy} {
		path := prefix + "_" + s.Name + plot.Extension(backend)
		if err := renderFile(r, path, s); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if _, err := st.Load(args[0]); err != nil {
		return err
	}

	f, err := os.Open(st.SeriesPath(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, f)
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, run)
}

func gridSurface(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	from, _ := cfg.InitialFlavor()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	surface, err := sweep.Grid(ctx, cfg.Theta12, from,
		sweep.Range{Min: cfg.EnergyRange.Min, Max: cfg.EnergyRange.Max},
		sweep.Range{Min: cfg.DistanceRange.Min, Max: cfg.DistanceRange.Max},
		gridEnergyN, gridDistN)
	if err != nil {
		return err
	}

	if outPath == "" {
		return writeSurface(os.Stdout, surface)
	}
	if err := writeSurfaceFile(outPath, surface); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d × %d)\n", outPath, len(surface.Energies), len(surface.Distances))
	return nil
}

func writeSurfaceFile(path string, s *sweep.Surface) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeSurface(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// writeSurface emits one row per energy; the header lists the distances.
func writeSurface(out io.Writer, s *sweep.Surface) error {
	w := csv.NewWriter(out)

	header := make([]string, 0, len(s.Distances)+1)
	header = append(header, "energy_gev\\distance_km")
	for _, l := range s.Distances {
		header = append(header, strconv.FormatFloat(l, 'f', -1, 64))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, e := range s.Energies {
		row := make([]string, 0, len(s.P[i])+1)
		row = append(row, strconv.FormatFloat(e, 'f', -1, 64))
		for _, p := range s.P[i] {
			row = append(row, strconv.FormatFloat(p, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tE [GeV]\tL [km]\tθ12\tFLAVOR")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.0f\t%.2f\t%s\n", name, p.Energy, p.Distance, p.Theta12, p.Flavor)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(os.Stderr, logLevel, false)
	if err != nil {
		return err
	}

	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, st, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN\tE [GeV]\tL [km]\tθ12\tFLAVOR\tP")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.0f\t%.2f\t%s\t%.4f\n",
			r.Step, r.RunID, r.Config.Energy, r.Config.Distance, r.Config.Theta12, r.Config.Flavor, r.Probability)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, logLevel, true)
	if err != nil {
		return err
	}

	listen := cfg.Server.Addr
	if addr != "" {
		listen = addr
	}
	if strings.TrimSpace(listen) == "" {
		listen = config.DefaultAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger, prometheus.NewRegistry())
	return srv.Run(ctx, listen)
}
