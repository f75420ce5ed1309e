package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/hairsim/internal/analysis"
	"github.com/san-kum/hairsim/internal/automation"
	"github.com/san-kum/hairsim/internal/compute"
	"github.com/san-kum/hairsim/internal/config"
	"github.com/san-kum/hairsim/internal/engine"
	"github.com/san-kum/hairsim/internal/export"
	"github.com/san-kum/hairsim/internal/hair"
	"github.com/san-kum/hairsim/internal/metrics"
	"github.com/san-kum/hairsim/internal/optim"
	"github.com/san-kum/hairsim/internal/scene"
	"github.com/san-kum/hairsim/internal/serve"
	"github.com/san-kum/hairsim/internal/storage"
	"github.com/san-kum/hairsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	rows    int
	cols    int
	points  int
	spacing float64

	dt         float64
	steps      int
	mass       float64
	restLength float64
	stiffness  float64
	damping    float64
	gravityY   float64
	backend    string

	swayAmp  float64
	swayFreq float64

	runName     string
	sampleEvery int

	// serve
	addr string

	// tune
	tuneSteps  int
	tunePoints int

	// plot/analyze axis
	series string

	// export
	svgPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hairsim",
		Short: "parallel hair strand simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hairsim", "data directory")

	addSimFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVar(&rows, "rows", 4, "anchor grid rows")
		cmd.Flags().IntVar(&cols, "cols", 8, "anchor grid columns")
		cmd.Flags().IntVar(&points, "points", 20, "points per strand (max 50)")
		cmd.Flags().Float64Var(&spacing, "spacing", 0.5, "anchor grid spacing")
		cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
		cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
		cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "point mass")
		cmd.Flags().Float64Var(&restLength, "rest", config.DefaultRestLength, "segment rest length")
		cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "spring stiffness")
		cmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "velocity damping")
		cmd.Flags().Float64Var(&gravityY, "gravity", config.DefaultGravityY, "gravity (y component)")
		cmd.Flags().StringVar(&backend, "backend", "auto", "compute backend (serial, parallel, auto)")
		cmd.Flags().Float64Var(&swayAmp, "sway-amp", 0, "anchor sway amplitude")
		cmd.Flags().Float64Var(&swayFreq, "sway-freq", 0.5, "anchor sway frequency (hz)")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save the result",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&runName, "name", "run", "run name for storage")
	runCmd.Flags().IntVar(&sampleEvery, "sample", 1, "record every n-th step")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream frames to browser clients over websocket",
		RunE:  runServe,
	}
	addSimFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark backends across strand counts",
		RunE:  benchBackends,
	}
	benchCmd.Flags().IntVar(&points, "points", 50, "points per strand")
	benchCmd.Flags().IntVar(&steps, "steps", 200, "steps per measurement")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid-search stiffness and damping for minimal peak strain",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneParams,
	}
	tuneCmd.Flags().IntVar(&tuneSteps, "steps", 500, "steps per trial")
	tuneCmd.Flags().IntVar(&tunePoints, "grid", 5, "grid points per parameter")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the tip trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&series, "series", "tip_x", "series to analyze (tip_x, tip_y, tip_z)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				cfg := config.GetPreset(name)
				fmt.Printf("%-10s %dx%d strands, %d points, k=%.0f d=%.1f\n",
					name, cfg.Rows, cfg.Cols, cfg.Points, cfg.Stiffness, cfg.Damping)
			}
			return nil
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "run a simulation and write the final pose as SVG",
		RunE:  exportSVG,
	}
	addSimFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVar(&svgPath, "out", "pose.svg", "output file")

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, benchCmd, tuneCmd, batchCmd,
		listCmd, plotCmd, analyzeCmd, presetsCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file, and explicit flags: a flag
// set on the command line wins over both.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	if cmd.Flags().Changed("cols") {
		cfg.Cols = cols
	}
	if cmd.Flags().Changed("points") {
		cfg.Points = points
	}
	if cmd.Flags().Changed("spacing") {
		cfg.Spacing = spacing
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("rest") {
		cfg.RestLength = restLength
	}
	if cmd.Flags().Changed("stiffness") {
		cfg.Stiffness = stiffness
	}
	if cmd.Flags().Changed("damping") {
		cfg.Damping = damping
	}
	if cmd.Flags().Changed("gravity") {
		cfg.GravityY = gravityY
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = backend
	}
	if cmd.Flags().Changed("sway-amp") {
		cfg.Sway.Amplitude = swayAmp
	}
	if cmd.Flags().Changed("sway-freq") {
		cfg.Sway.Frequency = swayFreq
	}

	return cfg, cfg.Validate()
}

func buildSim(cfg *config.Config) (*engine.Sim, *scene.Scene, error) {
	sc := scene.FromConfig(cfg)
	sim, err := engine.New(sc.Strands, sc.Initial, cfg.Params())
	if err != nil {
		return nil, nil, err
	}
	sim.SetBackend(compute.ByName(cfg.Backend))
	return sim, sc, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim, sc, err := buildSim(cfg)
	if err != nil {
		return err
	}
	sim.AddMetric(metrics.NewMaxStrain(sc.Strands, cfg.RestLength))
	sim.AddMetric(metrics.NewEnergyDrift(sc.Strands, cfg.Params()))
	sim.AddMetric(metrics.NewStability(sc.Strands, 100*cfg.RestLength*float64(hair.MaxStrandPoints)))

	runCfg := engine.RunConfig{
		Steps:       cfg.Steps,
		SampleEvery: sampleEvery,
		Validate:    true,
	}
	if cfg.Sway.Amplitude != 0 {
		runCfg.BeforeStep = func(_ int, t float64) {
			sim.SetAnchors(sc.AnchorsAt(t))
		}
	}

	fmt.Printf("running %dx%d strands, %d points, %d steps...\n", cfg.Rows, cfg.Cols, cfg.Points, cfg.Steps)
	start := time.Now()

	result, err := sim.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Rows: cfg.Rows, Cols: cfg.Cols, Points: cfg.Points,
		Dt: cfg.Dt, Steps: result.StepsTaken, Backend: cfg.Backend,
	}
	runID, err := st.Save(runName, meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sim, sc, err := buildSim(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(sim, sc, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	srv, err := serve.New(cfg)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(addr)
}

func benchBackends(cmd *cobra.Command, args []string) error {
	strandCounts := []int{8, 64, 512}
	backends := []string{"serial", "parallel"}

	fmt.Printf("benchmarking %d points per strand, %d steps\n\n", points, steps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRANDS\tBACKEND\tWORKERS\tTIME\tSTEPS/SEC")

	for _, count := range strandCounts {
		for _, name := range backends {
			sc := scene.Grid(scene.GridSpec{Rows: 1, Cols: count, Spacing: 0.1}, points, config.DefaultRestLength)

			par := hair.Params{
				Dt: config.DefaultDt, Mass: config.DefaultMass,
				RestLength: config.DefaultRestLength,
				Stiffness:  config.DefaultStiffness, Damping: config.DefaultDamping,
				Gravity: hair.Vec3{Y: config.DefaultGravityY},
			}
			sim, err := engine.New(sc.Strands, sc.Initial, par)
			if err != nil {
				return err
			}
			b := compute.ByName(name)
			sim.SetBackend(b)

			start := time.Now()
			for i := 0; i < steps; i++ {
				sim.Step()
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(steps) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.0f\n", count, b.Name(), b.Workers(), elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func tuneParams(cmd *cobra.Command, args []string) error {
	presetName := args[0]
	base := config.GetPreset(presetName)
	if base == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
	}

	g := optim.NewGridSearch(
		[]string{"stiffness", "damping"},
		[][]float64{
			optim.Span(base.Stiffness*0.25, base.Stiffness*4, tunePoints),
			optim.Span(base.Damping*0.25, base.Damping*4, tunePoints),
		},
	)

	fmt.Printf("tuning %s over %dx%d grid, %d steps per trial...\n", presetName, tunePoints, tunePoints, tuneSteps)

	best, val, err := g.Search(context.Background(), func(ctx context.Context, p map[string]float64) (float64, error) {
		cfg := *base
		cfg.Stiffness = p["stiffness"]
		cfg.Damping = p["damping"]
		cfg.Steps = tuneSteps

		sim, sc, err := buildSim(&cfg)
		if err != nil {
			return 0, err
		}
		maxStrain := metrics.NewMaxStrain(sc.Strands, cfg.RestLength)
		sim.AddMetric(maxStrain)

		result, err := sim.Run(ctx, engine.RunConfig{Steps: cfg.Steps, Validate: true})
		if err != nil {
			return 0, err
		}
		return result.Metrics["max_strain"], nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nbest parameters (peak strain %.6f):\n", val)
	fmt.Printf("  stiffness: %.2f\n", best["stiffness"])
	fmt.Printf("  damping:   %.2f\n", best["damping"])
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}

	results, err := automation.RunScenario(context.Background(), scenario, st)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d steps\n", len(results))
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
	fmt.Fprintln(w, "ID\tTIME\tGRID\tPOINTS\tSTEPS\tDT\tBACKEND")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\t%.4fs\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows, run.Cols,
			run.Points,
			run.Steps,
			run.Dt,
			run.Backend,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	ser, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(ser.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d, %d points\n", meta.Rows, meta.Cols, meta.Points)
	fmt.Printf("samples: %d\n\n", len(ser.Times))

	charts := []struct {
		caption string
		data    []float64
	}{
		{"tip x", ser.TipX},
		{"tip y", ser.TipY},
		{"mean strain", ser.Strain},
		{"total energy", ser.Energy},
	}

	for _, c := range charts {
		graph := asciigraph.Plot(c.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(c.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	ser, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(ser.Times) < 2 {
		return fmt.Errorf("not enough data")
	}

	var data []float64
	switch series {
	case "tip_x":
		data = ser.TipX
	case "tip_y":
		data = ser.TipY
	case "tip_z":
		data = ser.TipZ
	default:
		return fmt.Errorf("unknown series: %s", series)
	}

	fmt.Printf("frequency analysis: %s (%s)\n\n", meta.ID, series)

	ps := analysis.PowerSpectrum(data)
	if len(ps) == 0 {
		return fmt.Errorf("no data")
	}

	plotData := ps
	if len(plotData) > 128 {
		plotData = plotData[:128]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	sampleDt := ser.Times[1] - ser.Times[0]
	freq := analysis.DominantFrequency(ps, sampleDt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ser, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(ser.Times) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "tip_x", "tip_y", "tip_z", "strain", "energy"}); err != nil {
		return err
	}

	for i := range ser.Times {
		row := []string{
			strconv.FormatFloat(ser.Times[i], 'f', 6, 64),
			strconv.FormatFloat(ser.TipX[i], 'f', 6, 64),
			strconv.FormatFloat(ser.TipY[i], 'f', 6, 64),
			strconv.FormatFloat(ser.TipZ[i], 'f', 6, 64),
			strconv.FormatFloat(ser.Strain[i], 'f', 6, 64),
			strconv.FormatFloat(ser.Energy[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	ser, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	result := &engine.Result{
		Times:      ser.Times,
		Tip:        make([]hair.Vec3, len(ser.Times)),
		MeanStrain: ser.Strain,
		Energy:     ser.Energy,
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
	}
	for i := range ser.Times {
		result.Tip[i] = hair.Vec3{X: ser.TipX[i], Y: ser.TipY[i], Z: ser.TipZ[i]}
	}

	info := export.RunInfo{
		Rows: meta.Rows, Cols: meta.Cols, Points: meta.Points,
		Dt: meta.Dt, Backend: meta.Backend,
	}
	return export.ExportJSONStdout(info, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sim, sc, err := buildSim(cfg)
	if err != nil {
		return err
	}

	runCfg := engine.RunConfig{Steps: cfg.Steps, SampleEvery: cfg.Steps, Validate: true}
	if cfg.Sway.Amplitude != 0 {
		runCfg.BeforeStep = func(_ int, t float64) {
			sim.SetAnchors(sc.AnchorsAt(t))
		}
	}
	if _, err := sim.Run(context.Background(), runCfg); err != nil {
		return err
	}

	pose := export.FinalPose(sim.State(), sim.Strands())
	svg := export.StrandsToSVG(pose, 800, 600)
	if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", svgPath)
	return nil
}
