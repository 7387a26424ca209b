package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/nuosc/internal/config"
	"github.com/san-kum/nuosc/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string

	energy   float64
	distance float64
	theta    float64
	flavor   string
	points   int
	backend  string
	outPath  string

	runName     string
	gridEnergyN int
	gridDistN   int
	addr        string
)

// main registers the commands and flags. With no subcommand the interactive
// page is launched.
func main() {
	rootCmd := &cobra.Command{
		Use:   "nuosc",
		Short: "two-flavor neutrino oscillation explorer",
		RunE:  runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".nuosc", "data directory")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&energy, "energy", config.DefaultEnergy, "neutrino energy [GeV]")
	pf.Float64Var(&distance, "distance", config.DefaultDistance, "distance traveled [km]")
	pf.Float64Var(&theta, "theta", config.DefaultTheta, "mixing angle θ12 [degrees]")
	pf.StringVar(&flavor, "flavor", "electron", "initial flavor (electron|muon)")
	pf.IntVar(&points, "points", config.DefaultPoints, "samples per sweep")

	probCmd := &cobra.Command{
		Use:   "prob",
		Short: "evaluate the transition probability at one point",
		Args:  cobra.NoArgs,
		RunE:  probability,
	}

	sweepCmd := &cobra.Command{
		Use:       "sweep [distance|energy]",
		Short:     "plot probability against distance or energy",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"distance", "energy"},
		RunE:      sweepPlot,
	}
	sweepCmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "chart backend (ascii|png|svg)")
	sweepCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute a point and both sweeps and store the run",
		Args:  cobra.NoArgs,
		RunE:  runEvaluation,
	}
	runCmd.Flags().StringVar(&runName, "name", "", "run name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "chart backend (ascii|png|svg)")
	plotCmd.Flags().StringVar(&outPath, "out", "", "output file prefix for image backends")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run sweeps to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "sample the energy × distance surface as CSV",
		Args:  cobra.NoArgs,
		RunE:  gridSurface,
	}
	gridCmd.Flags().IntVar(&gridEnergyN, "energy-points", 50, "samples along energy")
	gridCmd.Flags().IntVar(&gridDistN, "distance-points", 50, "samples along distance")
	gridCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario and store every step",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the http api",
		Args:  cobra.NoArgs,
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal page",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	rootCmd.AddCommand(probCmd, sweepCmd, runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd,
		gridCmd, presetsCmd, scenarioCmd, serveCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := viz.Run(cfg); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
