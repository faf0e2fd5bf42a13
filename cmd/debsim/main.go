package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/jamesmaino/DEBtutorial/internal/analysis"
	"github.com/jamesmaino/DEBtutorial/internal/config"
	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
	"github.com/jamesmaino/DEBtutorial/internal/experiment"
	"github.com/jamesmaino/DEBtutorial/internal/export"
	"github.com/jamesmaino/DEBtutorial/internal/store"
	"github.com/jamesmaino/DEBtutorial/internal/viz"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool

	// DEB parameters
	pAm  float64
	eG   float64
	cond float64
	pM   float64
	food float64
	// initial state
	v0 float64
	e0 float64
	// grid
	tEnd   float64
	points int
	// solver
	integrator string
	tolerance  float64
	dt         float64
	maxSteps   int
	adaptive   bool
	// forcing
	forcing string
	fMean   float64
	fAmp    float64
	fPeriod float64
	// scenario source and persistence
	configFile string
	preset     string
	label      string
	noSave     bool
	// compare
	integratorList string
	fList          string
	// check
	checkTol float64
	// config
	configOut string
	// svg
	svgOut    string
	svgWidth  int
	svgHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "debsim",
		Short: "dynamic energy budget growth lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive explorer when no command given
			return viz.RunExplorer(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".debsim", "data directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})))
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a growth scenario",
		RunE:  runGrowth,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&label, "label", "growth", "run label")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving artifacts")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "cross-check the solver against the closed-form curve",
		RunE:  checkGrowth,
	}
	addScenarioFlags(checkCmd)
	checkCmd.Flags().Float64Var(&checkTol, "tol", 1e-3, "max relative error allowed")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare integrators or food levels on one scenario",
		RunE:  compareScenario,
	}
	addScenarioFlags(compareCmd)
	compareCmd.Flags().StringVar(&integratorList, "integrators", "euler,rk4,rk45", "integrators to compare")
	compareCmd.Flags().StringVar(&fList, "f-values", "", "food levels to compare, e.g. 0.5,0.7,0.9")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "convergence, accuracy and period analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		RunE:  listPresets,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a saved trajectory as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run, or a fresh scenario, as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSONRun,
	}
	addScenarioFlags(exportJSONCmd)
	exportJSONCmd.Flags().StringVar(&label, "label", "growth", "run label")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a saved run as an SVG growth curve",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVar(&svgOut, "out", "", "output path (default <run_id>.svg)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 960, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 540, "image height")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive parameter explorer",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "write a starter config file",
		RunE:  writeConfig,
	}
	configCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	configCmd.Flags().StringVar(&configOut, "out", "deb.yaml", "output path")

	rootCmd.AddCommand(runCmd, checkCmd, compareCmd, listCmd, plotCmd, analyzeCmd, presetsCmd, exportCSVCmd, exportJSONCmd, svgCmd, liveCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	dp := deb.DefaultParams()
	cmd.Flags().Float64Var(&pAm, "p-am", dp.PAm, "surface-specific assimilation rate")
	cmd.Flags().Float64Var(&eG, "e-g", dp.EG, "volume-specific cost of structure")
	cmd.Flags().Float64Var(&cond, "v", dp.V, "energy conductance")
	cmd.Flags().Float64Var(&pM, "p-m", dp.PM, "volume-specific maintenance rate")
	cmd.Flags().Float64Var(&food, "f", dp.F, "scaled functional response")
	cmd.Flags().Float64Var(&v0, "v0", config.DefaultV0, "initial structural volume")
	cmd.Flags().Float64Var(&e0, "e0", 0, "initial reserve (0 seeds the equilibrium density)")
	cmd.Flags().Float64Var(&tEnd, "time", config.DefaultTEnd, "duration in days")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "output samples")
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator (euler, rk4, rk45)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", config.DefaultTol, "adaptive error tolerance")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "initial or fixed step size")
	cmd.Flags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "step budget")
	cmd.Flags().BoolVar(&adaptive, "adaptive", true, "adaptive step control")
	cmd.Flags().StringVar(&forcing, "forcing", "constant", "food forcing (constant, seasonal)")
	cmd.Flags().Float64Var(&fMean, "f-mean", 0.8, "seasonal mean food level")
	cmd.Flags().Float64Var(&fAmp, "f-amplitude", 0.1, "seasonal amplitude")
	cmd.Flags().Float64Var(&fPeriod, "f-period", 365, "seasonal period in days")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
}

// scenarioConfig resolves the run configuration with flags taking priority
// over a config file, which takes priority over a preset.
func scenarioConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	if cmd.Flags().Changed("p-am") {
		cfg.Params.PAm = pAm
	}
	if cmd.Flags().Changed("e-g") {
		cfg.Params.EG = eG
	}
	if cmd.Flags().Changed("v") {
		cfg.Params.V = cond
	}
	if cmd.Flags().Changed("p-m") {
		cfg.Params.PM = pM
	}
	if cmd.Flags().Changed("f") {
		cfg.Params.F = food
	}
	if cmd.Flags().Changed("v0") {
		cfg.Init.V0 = v0
	}
	if cmd.Flags().Changed("e0") {
		cfg.Init.E0 = e0
	}
	if cmd.Flags().Changed("time") {
		cfg.Grid.TEnd = tEnd
	}
	if cmd.Flags().Changed("points") {
		cfg.Grid.Points = points
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Solver.Integrator = integrator
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Solver.Tolerance = tolerance
	}
	if cmd.Flags().Changed("dt") {
		cfg.Solver.Dt = dt
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.Solver.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("adaptive") {
		cfg.Solver.Adaptive = adaptive
	}
	if cmd.Flags().Changed("forcing") {
		cfg.Forcing.Kind = forcing
	}
	if cmd.Flags().Changed("f-mean") {
		cfg.Forcing.Mean = fMean
	}
	if cmd.Flags().Changed("f-amplitude") {
		cfg.Forcing.Amplitude = fAmp
	}
	if cmd.Flags().Changed("f-period") {
		cfg.Forcing.Period = fPeriod
	}
	// A bare --forcing seasonal still needs a full seasonal block.
	if cfg.Forcing.Kind == "seasonal" && cfg.Forcing.Period <= 0 {
		cfg.Forcing.Mean = fMean
		cfg.Forcing.Amplitude = fAmp
		cfg.Forcing.Period = fPeriod
	}

	slog.Debug("scenario resolved",
		"integrator", cfg.Solver.Integrator,
		"t_end", cfg.Grid.TEnd,
		"points", cfg.Grid.Points,
		"forcing", forcingName(cfg))

	return cfg, nil
}

func forcingName(cfg *config.Config) string {
	if cfg.Forcing.Kind == "" {
		return "constant"
	}
	return cfg.Forcing.Kind
}

func runScenario(cfg *config.Config) (*experiment.Experiment, *engine.Result, error) {
	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := exp.Run(context.Background())
	if err != nil {
		return nil, nil, err
	}
	return exp, res, nil
}

func firstError(result *engine.Result) string {
	if len(result.Errors) == 0 {
		return "unknown"
	}
	return result.Errors[0].Error()
}

func runGrowth(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("running deb growth scenario (%s)...\n", forcingName(cfg))
	start := time.Now()

	_, result, err := runScenario(cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	slog.Info("run complete",
		"elapsed", elapsed,
		"steps", result.StepsTaken,
		"rejected", result.Rejected,
		"samples", result.Len())
	if result.Truncated {
		slog.Warn("run truncated", "reason", firstError(result))
	}

	runID := "(not saved)"
	if !noSave {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err = st.Save(label, cfg, result)
		if err != nil {
			return err
		}
	}

	tReached, final := result.Final()
	vInf := cfg.Params.UltimateStructure()

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n\n", runID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "time reached\t%.1f d\n", tReached)
	fmt.Fprintf(w, "final structure\t%.6g\n", final[deb.StateStructure])
	fmt.Fprintf(w, "final reserve\t%.6g\n", final[deb.StateReserve])
	fmt.Fprintf(w, "ultimate structure\t%.6g\n", vInf)
	if vInf > 0 {
		fmt.Fprintf(w, "fraction of V_inf\t%.4f\n", final[deb.StateStructure]/vInf)
	}
	fmt.Fprintf(w, "steps\t%d (+%d rejected)\n", result.StepsTaken, result.Rejected)
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(w, "%s\t%.6g\n", name, result.Metrics[name])
	}
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func checkGrowth(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd)
	if err != nil {
		return err
	}

	exp, result, err := runScenario(cfg)
	if err != nil {
		return err
	}
	vb := exp.Analytic()
	if vb == nil {
		return fmt.Errorf("cross-check needs constant food, got %s forcing", forcingName(cfg))
	}
	if result.Truncated {
		slog.Warn("run truncated, checking the completed prefix", "samples", result.Len())
	}

	rep := analysis.CrossCheck(result, vb)

	fmt.Printf("cross-check against the von bertalanffy curve (%s)\n\n", cfg.Solver.Integrator)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "samples\t%d\n", rep.N)
	fmt.Fprintf(w, "max rel error\t%.3e\n", rep.MaxRel)
	fmt.Fprintf(w, "worst at\tt=%.2f\n", rep.WorstTime)
	fmt.Fprintf(w, "rel rmse\t%.3e\n", rep.RMSE)
	if err := w.Flush(); err != nil {
		return err
	}

	if rep.N == 0 {
		return fmt.Errorf("no samples to check")
	}
	if rep.MaxRel > checkTol {
		return fmt.Errorf("max relative error %.3e exceeds tolerance %.1e", rep.MaxRel, checkTol)
	}
	fmt.Printf("\nok: within %.1e\n", checkTol)
	return nil
}

func compareScenario(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd)
	if err != nil {
		return err
	}
	if fList != "" {
		return compareFood(cfg)
	}
	return compareIntegrators(cfg)
}

func compareIntegrators(cfg *config.Config) error {
	names := strings.Split(integratorList, ",")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL V\tMAX REL ERR\tSTEPS\tREJECTED\tTIME")

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c := *cfg
		c.Solver.Integrator = name

		exp, err := experiment.New(&c)
		if err != nil {
			return err
		}
		start := time.Now()
		res, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		_, final := res.Final()
		errStr := "n/a"
		if vb := exp.Analytic(); vb != nil {
			rep := analysis.CrossCheck(res, vb)
			errStr = fmt.Sprintf("%.3e", rep.MaxRel)
		}
		fmt.Fprintf(w, "%s\t%.6g\t%s\t%d\t%d\t%v\n",
			name, final[deb.StateStructure], errStr, res.StepsTaken, res.Rejected, elapsed)
	}
	return w.Flush()
}

// compareFood sweeps the constant food level with one integrator, running
// the variants concurrently.
func compareFood(cfg *config.Config) error {
	parts := strings.Split(fList, ",")
	levels := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("bad food level %q: %w", p, err)
		}
		levels = append(levels, v)
	}

	reg := experiment.NewRegistry()
	if _, err := reg.GetIntegrator(cfg.Solver.Integrator); err != nil {
		return err
	}
	factory := func() engine.Integrator {
		integ, _ := reg.GetIntegrator(cfg.Solver.Integrator)
		return integ
	}

	variants := make([]engine.Variant, 0, len(levels))
	for _, f := range levels {
		p := cfg.Params
		p.F = f
		if err := p.Validate(); err != nil {
			return fmt.Errorf("f=%g: %w", f, err)
		}
		model := deb.New(p)
		variants = append(variants, engine.Variant{
			Label: fmt.Sprintf("f=%.2f", f),
			Sys:   model,
			X0:    model.InitialState(cfg.Init.V0),
		})
	}

	times := engine.Linspace(0, cfg.Grid.TEnd, cfg.Grid.Points)
	ens := engine.NewEnsemble(factory, cfg.EngineConfig())

	start := time.Now()
	results, err := ens.Run(context.Background(), variants, times)
	if err != nil {
		return err
	}
	slog.Info("ensemble complete", "variants", len(variants), "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FOOD\tFINAL V\tV_INF\tFRACTION\tSTEPS")
	for i, res := range results {
		p := cfg.Params
		p.F = levels[i]
		vInf := p.UltimateStructure()
		_, final := res.Final()
		fmt.Fprintf(w, "%s\t%.6g\t%.6g\t%.4f\t%d\n",
			variants[i].Label, final[deb.StateStructure], vInf,
			final[deb.StateStructure]/vInf, res.StepsTaken)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tT_END\tPOINTS\tINTEG\tFORCING\tTRUNCATED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%d\t%s\t%s\t%v\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.TEnd,
			run.Points,
			run.Integrator,
			run.Forcing,
			run.Truncated,
		)
	}

	return w.Flush()
}

func component(states []engine.State, idx int) []float64 {
	out := make([]float64, len(states))
	for i, x := range states {
		out[i] = x[idx]
	}
	return out
}

func densitySeries(states []engine.State) []float64 {
	out := make([]float64, len(states))
	for i, x := range states {
		if x[deb.StateStructure] > 0 {
			out[i] = x[deb.StateReserve] / x[deb.StateStructure]
		}
	}
	return out
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, states, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("label: %s\n", meta.Label)
	fmt.Printf("samples: %d over %.0f d\n\n", len(states), times[len(times)-1])

	curves := []struct {
		caption string
		data    []float64
	}{
		{"structure V (cm^3)", component(states, deb.StateStructure)},
		{"reserve E (J)", component(states, deb.StateReserve)},
		{"reserve density E/V (J/cm^3)", densitySeries(states)},
	}

	for _, c := range curves {
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

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, states, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(states) < 8 {
		return fmt.Errorf("not enough samples to analyze")
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("forcing: %s\n\n", meta.Forcing)

	res := &engine.Result{Times: times, States: states}

	vInf := meta.Params.UltimateStructure()
	if tConv, ok := analysis.ConvergenceTime(res, vInf, 0.95); ok {
		fmt.Printf("time to 95%% of V_inf: %.1f d\n", tConv)
	} else {
		fmt.Printf("95%% of V_inf not reached in %.0f d\n", times[len(times)-1])
	}

	if meta.Forcing == "constant" {
		vb := deb.NewVonBertalanffy(meta.Params, meta.V0)
		rep := analysis.CrossCheck(res, vb)
		fmt.Printf("max rel error vs closed form: %.3e at t=%.1f\n", rep.MaxRel, rep.WorstTime)
	}

	density := densitySeries(states)
	sampleDt := times[1] - times[0]
	period, power := analysis.DominantPeriod(density, sampleDt)
	if period > 0 {
		fmt.Printf("dominant period in reserve density: %.1f d (power %.3g)\n", period, power)
	} else {
		fmt.Println("no dominant period in reserve density")
	}
	fmt.Println()

	// Spectrum of the mean-removed density; the growth transient sits in
	// bin zero and would dwarf any seasonal ripple.
	mean := 0.0
	for _, v := range density {
		mean += v
	}
	mean /= float64(len(density))

	n := 1
	for n < len(density) {
		n *= 2
	}
	padded := make([]float64, n)
	for i, v := range density {
		padded[i] = v - mean
	}

	ps := analysis.PowerSpectrum(padded)
	plotData := ps[1 : len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (reserve density)"),
	)
	fmt.Println(graph)

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFORCING\tV_INF\tRB\tE*\tT_END")

	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		if cfg == nil {
			continue
		}
		vb := deb.NewVonBertalanffy(cfg.Params, cfg.Init.V0)
		fmt.Fprintf(w, "%s\t%s\t%.4g\t%.3e\t%.4g\t%.0f\n",
			name,
			forcingName(cfg),
			cfg.Params.UltimateStructure(),
			vb.RB,
			cfg.Params.EquilibriumDensity(),
			cfg.Grid.TEnd,
		)
	}
	return w.Flush()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	times, states, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	res := &engine.Result{Times: times, States: states}
	return store.WriteTrajectoryCSV(os.Stdout, res)
}

func metaConfig(meta *store.RunMetadata) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Params = meta.Params
	cfg.Init.V0 = meta.V0
	cfg.Grid.TEnd = meta.TEnd
	cfg.Grid.Points = meta.Points
	cfg.Solver.Integrator = meta.Integrator
	cfg.Forcing.Kind = meta.Forcing
	return cfg
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		st := store.New(dataDir)
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		times, states, err := st.LoadTrajectory(args[0])
		if err != nil {
			return err
		}
		res := &engine.Result{
			Times:      times,
			States:     states,
			Metrics:    meta.Metrics,
			StepsTaken: meta.StepsTaken,
			Rejected:   meta.Rejected,
			Truncated:  meta.Truncated,
		}
		return store.ExportJSONStdout(store.NewExportData(meta.Label, metaConfig(meta), res))
	}

	cfg, err := scenarioConfig(cmd)
	if err != nil {
		return err
	}
	_, res, err := runScenario(cfg)
	if err != nil {
		return err
	}
	return store.ExportJSONStdout(store.NewExportData(label, cfg, res))
}

func svgRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return fmt.Errorf("no data to render")
	}

	series := []export.Series{{
		Label:  "structure (numeric)",
		Times:  times,
		Values: component(states, deb.StateStructure),
		Color:  "#00ff00",
	}}
	if meta.Forcing == "constant" {
		vb := deb.NewVonBertalanffy(meta.Params, meta.V0)
		want := make([]float64, len(times))
		for i, t := range times {
			want[i] = vb.StructureAt(t)
		}
		series = append(series, export.Series{
			Label:  "structure (closed form)",
			Times:  times,
			Values: want,
			Color:  "#8888ff",
			Dashed: true,
		})
	}

	doc := export.CurveSVG(series, svgWidth, svgHeight, "deb growth: "+meta.ID)
	if doc == "" {
		return fmt.Errorf("nothing to draw")
	}

	out := svgOut
	if out == "" {
		out = meta.ID + ".svg"
	}
	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := scenarioConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunExplorer(cfg)
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}
	if err := config.Save(configOut, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", configOut)
	return nil
}
