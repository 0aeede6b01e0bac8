package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbprop/internal/bodies"
	"github.com/san-kum/orbprop/internal/config"
	"github.com/san-kum/orbprop/internal/elements"
	"github.com/san-kum/orbprop/internal/export"
	"github.com/san-kum/orbprop/internal/kepler"
	"github.com/san-kum/orbprop/internal/metrics"
	"github.com/san-kum/orbprop/internal/numeric"
	"github.com/san-kum/orbprop/internal/orbit"
	"github.com/san-kum/orbprop/internal/storage"
	"github.com/san-kum/orbprop/internal/viz"
)

var (
	dataDir    string
	bodyName   string
	gmFlag     float64
	positionS  string
	velocityS  string
	timesS     string
	spanStart  float64
	spanStop   float64
	spanStep   float64
	unitS      string
	parallel   bool
	configFile string
	preset     string
	saveRun    bool
	rkStep     float64
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbprop",
		Short: "analytic two-body orbit propagation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbprop", "data directory")

	propagateCmd := &cobra.Command{
		Use:   "propagate",
		Short: "propagate an orbit over a batch of elapsed times",
		RunE:  runPropagate,
	}
	addScenarioFlags(propagateCmd)
	propagateCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run to the data directory")

	elementsCmd := &cobra.Command{
		Use:   "elements",
		Short: "show the classical orbital elements of a state",
		RunE:  runElements,
	}
	addScenarioFlags(elementsCmd)

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "cross-check the analytic solve against RK4 integration",
		RunE:  runCompare,
	}
	addScenarioFlags(compareCmd)
	compareCmd.Flags().Float64Var(&rkStep, "rk-dt", 1.0, "RK4 timestep in seconds")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate a propagated orbit in the terminal",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the radius history of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  runList,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "export a saved run's trajectory to SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  runExportSVG,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [file]",
		Short: "export a saved run's states to CSV",
		Args:  cobra.ExactArgs(2),
		RunE:  runExportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [file]",
		Short: "export a saved run (metadata and states) to JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  runExportJSON,
	}

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list the central body catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "name\tGM (km³/s²)\tradius (km)")
			for _, name := range bodies.Names() {
				b, _ := bodies.Get(name)
				fmt.Fprintf(w, "%s\t%.6g\t%.1f\n", name, b.GM, b.Radius)
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, p := range names {
				fmt.Println(p)
			}
		},
	}

	rootCmd.AddCommand(propagateCmd, elementsCmd, compareCmd, liveCmd,
		plotCmd, listCmd, exportSVGCmd, exportCSVCmd, exportJSONCmd,
		bodiesCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&bodyName, "body", "earth", "central body")
	cmd.Flags().Float64Var(&gmFlag, "gm", 0, "gravitational parameter km³/s² (overrides --body)")
	cmd.Flags().StringVarP(&positionS, "position", "r", "", "position km, comma separated x,y,z")
	cmd.Flags().StringVarP(&velocityS, "velocity", "v", "", "velocity km/s, comma separated x,y,z")
	cmd.Flags().StringVar(&timesS, "times", "", "elapsed times, comma separated")
	cmd.Flags().Float64Var(&spanStart, "start", 0, "span start time")
	cmd.Flags().Float64Var(&spanStop, "stop", 0, "span stop time")
	cmd.Flags().Float64Var(&spanStep, "step", 0, "span step")
	cmd.Flags().StringVar(&unitS, "unit", "seconds", "time unit (seconds or days)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "parallelize over time steps")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario config file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named scenario preset")
}

// resolveScenario merges preset, config file and flags, in that
// precedence order (flags win).
func resolveScenario(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("body") {
		cfg.Body = bodyName
	}
	if cmd.Flags().Changed("gm") {
		cfg.GM = gmFlag
	}
	if cmd.Flags().Changed("unit") {
		cfg.Unit = unitS
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = parallel
	}
	if cmd.Flags().Changed("position") {
		v, err := parseVec3(positionS)
		if err != nil {
			return nil, fmt.Errorf("bad --position: %w", err)
		}
		cfg.Position = v
	}
	if cmd.Flags().Changed("velocity") {
		v, err := parseVec3(velocityS)
		if err != nil {
			return nil, fmt.Errorf("bad --velocity: %w", err)
		}
		cfg.Velocity = v
	}
	if cmd.Flags().Changed("times") {
		times, err := parseFloats(timesS)
		if err != nil {
			return nil, fmt.Errorf("bad --times: %w", err)
		}
		cfg.Times = times
	}
	if cmd.Flags().Changed("stop") || cmd.Flags().Changed("step") {
		cfg.Times = nil
		cfg.Span = config.Span{Start: spanStart, Stop: spanStop, Step: spanStep}
	}

	return cfg, nil
}

type scenario struct {
	cfg   *config.Config
	gm    float64
	state orbit.StateVector
	times []float64
	unit  orbit.TimeUnit
}

func buildScenario(cmd *cobra.Command) (*scenario, error) {
	cfg, err := resolveScenario(cmd)
	if err != nil {
		return nil, err
	}

	gm, err := cfg.ResolveGM()
	if err != nil {
		return nil, err
	}
	unit, err := orbit.ParseTimeUnit(cfg.Unit)
	if err != nil {
		return nil, err
	}
	times, err := cfg.TimeSteps()
	if err != nil {
		return nil, err
	}

	return &scenario{
		cfg: cfg,
		gm:  gm,
		state: orbit.StateVector{
			R: orbit.Vec3(cfg.Position),
			V: orbit.Vec3(cfg.Velocity),
		},
		times: times,
		unit:  unit,
	}, nil
}

func runPropagate(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}

	prop, err := kepler.New(sc.gm)
	if err != nil {
		return err
	}
	prop.SetParallel(sc.cfg.Parallel)

	result, err := prop.Propagate(sc.state, sc.times, sc.unit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "t (s)\tx (km)\ty (km)\tz (km)\tvx\tvy\tvz\tstatus\titers\tcf\tterr (s)")
	for _, step := range result.Steps {
		if step.Err != nil {
			fmt.Fprintf(w, "%.1f\t-\t-\t-\t-\t-\t-\terror: %v\t\t\t\n", step.Time, step.Err)
			continue
		}
		st := step.State
		fmt.Fprintf(w, "%.1f\t%.3f\t%.3f\t%.3f\t%.6f\t%.6f\t%.6f\t%s\t%d\t%d\t%.2g\n",
			step.Time, st.R[0], st.R[1], st.R[2], st.V[0], st.V[1], st.V[2],
			step.Status, step.Diag.OuterIters, step.Diag.InnerIters, step.Diag.TimeError)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	energy := metrics.NewEnergyDrift(sc.gm)
	momentum := metrics.NewMomentumDrift()
	energy.Observe(sc.state)
	momentum.Observe(sc.state)
	metrics.ObserveResult(result, energy, momentum)

	fmt.Printf("\nsteps: %d  fallbacks: %d  energy drift: %.3g  momentum drift: %.3g\n",
		len(result.Steps), result.FallbackCount, energy.Value(), momentum.Value())

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(sc.cfg.Body, sc.gm, sc.unit, sc.state, result)
		if err != nil {
			return err
		}
		fmt.Printf("saved run: %s\n", runID)
	}

	return nil
}

func runElements(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}

	set, err := elements.FromCartesian(sc.state, sc.gm)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "semi-major axis\t%.3f km\n", set.SemiMajorAxis)
	fmt.Fprintf(w, "eccentricity\t%.6f\n", set.Eccentricity)
	fmt.Fprintf(w, "inclination\t%.4f rad\n", set.Inclination)
	fmt.Fprintf(w, "RAAN\t%.4f rad\n", set.RAAN)
	fmt.Fprintf(w, "arg periapsis\t%.4f rad\n", set.ArgPeriapsis)
	fmt.Fprintf(w, "mean anomaly\t%.4f rad\n", set.MeanAnomaly)
	fmt.Fprintf(w, "periapsis\t%.3f km\n", set.Periapsis())
	if p := set.Period(); p > 0 {
		fmt.Fprintf(w, "apoapsis\t%.3f km\n", set.Apoapsis())
		fmt.Fprintf(w, "period\t%.1f s\n", p)
	} else {
		fmt.Fprintf(w, "orbit\thyperbolic\n")
	}
	return w.Flush()
}

func runCompare(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}
	if len(sc.times) == 0 {
		return orbit.ErrNoTimeSteps
	}

	prop, err := kepler.New(sc.gm)
	if err != nil {
		return err
	}

	factor, err := sc.unit.Factor()
	if err != nil {
		return err
	}
	tEnd := sc.times[len(sc.times)-1] * factor

	result, err := prop.Propagate(sc.state, []float64{sc.times[len(sc.times)-1]}, sc.unit)
	if err != nil {
		return err
	}
	analytic := result.Steps[0].State

	rk := numeric.NewRK4()
	sys := &numeric.TwoBody{Mu: sc.gm}
	numState := numeric.ToOrbit(rk.Integrate(sys, numeric.FromOrbit(sc.state), tEnd, rkStep))

	posErr := analytic.R.Sub(numState.R).Norm()
	velErr := analytic.V.Sub(numState.V).Norm()

	fmt.Printf("elapsed time: %.1f s  (rk4 dt %.3g s)\n", tEnd, rkStep)
	fmt.Printf("analytic: r=%.3f km  v=%.6f km/s  [%s, %d iters]\n",
		analytic.Radius(), analytic.Speed(), result.Steps[0].Status, result.Steps[0].Diag.OuterIters)
	fmt.Printf("rk4:      r=%.3f km  v=%.6f km/s\n", numState.Radius(), numState.Speed())
	fmt.Printf("position error: %.6g km  velocity error: %.6g km/s\n", posErr, velErr)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := buildScenario(cmd)
	if err != nil {
		return err
	}

	prop, err := kepler.New(sc.gm)
	if err != nil {
		return err
	}
	prop.SetParallel(sc.cfg.Parallel)

	result, err := prop.Propagate(sc.state, sc.times, sc.unit)
	if err != nil {
		return err
	}

	radius := 0.0
	if b, err := bodies.Get(sc.cfg.Body); err == nil {
		radius = b.Radius
	}

	return viz.Run(viz.NewModel(sc.cfg.Body, radius, sc.gm, result, frameRate))
}

func runPlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	times, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("run %s has too few states to plot", args[0])
	}

	radii := make([]float64, len(states))
	for i, s := range states {
		radii[i] = s.Radius()
	}

	fmt.Println(plotSeries(radii, fmt.Sprintf("radius (km), t %.0f..%.0f s", times[0], times[len(times)-1])))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tbody\tsteps\tfallbacks\ttimestamp")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Body, r.Steps, r.Fallbacks, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runExportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	radius := 0.0
	if b, err := bodies.Get(meta.Body); err == nil {
		radius = b.Radius
	}

	svg := export.TrajectorySVG(states, radius)
	if err := os.WriteFile(args[1], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d states)\n", args[1], len(states))
	return nil
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.StatesCSV(args[0])
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], data, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", args[1], len(data))
	return nil
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, states, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	type row struct {
		Time     float64    `json:"time"`
		Position [3]float64 `json:"position"`
		Velocity [3]float64 `json:"velocity"`
	}
	out := struct {
		Metadata *storage.RunMetadata `json:"metadata"`
		States   []row                `json:"states"`
	}{Metadata: meta}
	for i, s := range states {
		out.States = append(out.States, row{
			Time:     times[i],
			Position: [3]float64(s.R),
			Velocity: [3]float64(s.V),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], data, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d states)\n", args[1], len(out.States))
	return nil
}

func plotSeries(series []float64, caption string) string {
	return asciigraph.Plot(series,
		asciigraph.Height(16),
		asciigraph.Width(90),
		asciigraph.Caption(caption))
}

func parseVec3(s string) ([3]float64, error) {
	vals, err := parseFloats(s)
	if err != nil {
		return [3]float64{}, err
	}
	if len(vals) != 3 {
		return [3]float64{}, fmt.Errorf("want 3 components, got %d", len(vals))
	}
	return [3]float64{vals[0], vals[1], vals[2]}, nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}
