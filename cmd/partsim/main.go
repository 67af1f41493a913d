package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/partsim/internal/analysis"
	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/physics"
	"github.com/san-kum/partsim/internal/sandbox"
	"github.com/san-kum/partsim/internal/scenario"
	"github.com/san-kum/partsim/internal/script"
	"github.com/san-kum/partsim/internal/tui"
	"github.com/san-kum/partsim/internal/viz"
)

var (
	configFile   string
	preset       string
	scenarioFile string

	mode        string
	gravity     float32
	scale       float32
	width       float32
	height      float32
	dt          float32
	duration    float32
	count       int
	pattern     string
	mass        float32
	radius      float32
	restitution float32
	seed        int64
	sticks      bool
	metricNames []string
	logLevel    string
	logFormat   string

	showPlot bool

	sweepParam  string
	sweepFrom   float32
	sweepTo     float32
	sweepPoints int
	sweepMetric string

	workers int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "partsim",
		Short: "2d particle sandbox engine",
		// No subcommand drops into the live dashboard with defaults.
		RunE: runWatch,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation",
		RunE:  runHeadless,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml)")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "plot energy and trajectory")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "live dashboard",
		RunE:  runWatch,
	}
	addConfigFlags(watchCmd)
	watchCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml)")

	scriptCmd := &cobra.Command{
		Use:   "script [file.lua]",
		Short: "drive a session from a lua script",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	addConfigFlags(scriptCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresets,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "bounce frequency analysis",
		RunE:  runAnalyze,
	}
	addConfigFlags(analyzeCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep a parameter and plot a metric",
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "restitution", "parameter to sweep (restitution, gravity)")
	sweepCmd.Flags().Float32Var(&sweepFrom, "from", 0.1, "sweep start")
	sweepCmd.Flags().Float32Var(&sweepTo, "to", 1.0, "sweep end")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 10, "number of sweep points")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "kinetic_energy", "metric to report")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run both modes on the same setup",
		RunE:  runCompare,
	}
	addConfigFlags(compareCmd)
	compareCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml)")
	compareCmd.Flags().IntVar(&workers, "workers", 2, "concurrent sessions")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "step throughput of both modes",
		RunE:  runBench,
	}
	addConfigFlags(benchCmd)

	rootCmd.AddCommand(runCmd, watchCmd, scriptCmd, presetsCmd, analyzeCmd, sweepCmd, compareCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "preset as category/name")
	cmd.Flags().StringVar(&mode, "mode", "euler", "integration mode (euler, verlet)")
	cmd.Flags().Float32Var(&gravity, "gravity", config.DefaultGravity, "gravity acceleration")
	cmd.Flags().Float32Var(&scale, "scale", config.DefaultScale, "gravity scale factor")
	cmd.Flags().Float32Var(&width, "width", config.DefaultWidth, "world width")
	cmd.Flags().Float32Var(&height, "height", config.DefaultHeight, "world height")
	cmd.Flags().Float32Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float32Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	cmd.Flags().IntVar(&count, "count", 1, "particles to spawn")
	cmd.Flags().StringVar(&pattern, "pattern", "random", "spawn pattern (random, ring, chain)")
	cmd.Flags().Float32Var(&mass, "mass", config.DefaultMass, "particle mass")
	cmd.Flags().Float32Var(&radius, "radius", config.DefaultRadius, "particle radius")
	cmd.Flags().Float32Var(&restitution, "restitution", config.DefaultRestitution, "bounce restitution")
	cmd.Flags().Int64Var(&seed, "seed", 0, "spawner seed (0 uses the clock)")
	cmd.Flags().BoolVar(&sticks, "sticks", false, "enable the stick solver")
	cmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to observe")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level")
	cmd.Flags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
}

// resolveConfig layers preset, config file, and explicit flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		parts := strings.SplitN(preset, "/", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("preset must be category/name, got %q", preset)
		}
		p := config.GetPreset(parts[0], parts[1])
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(parts[0]))
		}
		merged := *p
		if merged.Metrics == nil {
			merged.Metrics = cfg.Metrics
		}
		if merged.Logging == (config.LoggingConfig{}) {
			merged.Logging = cfg.Logging
		}
		cfg = &merged
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("mode") {
		cfg.Mode = mode
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Gravity = gravity
	}
	if cmd.Flags().Changed("scale") {
		cfg.Scale = scale
	}
	if cmd.Flags().Changed("width") {
		cfg.Bounds.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Bounds.Height = height
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("count") {
		cfg.Spawn.Count = count
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Spawn.Pattern = pattern
	}
	if cmd.Flags().Changed("mass") {
		cfg.Spawn.Mass = mass
	}
	if cmd.Flags().Changed("radius") {
		cfg.Spawn.Radius = radius
	}
	if cmd.Flags().Changed("restitution") {
		cfg.Spawn.Restitution = restitution
	}
	if cmd.Flags().Changed("seed") {
		cfg.Spawn.Seed = seed
	}
	if cmd.Flags().Changed("sticks") {
		cfg.Sticks.Enabled = sticks
	}
	if cmd.Flags().Changed("metrics") {
		cfg.Metrics = metricNames
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// buildSession assembles a world, spawner, and session from a resolved
// config. The returned world and spawner stay usable for pre-run
// population; the session owns them once stepping starts.
func buildSession(cfg *config.Config, log *zap.Logger) (*sandbox.Session, *physics.World, *sandbox.Spawner, error) {
	reg := sandbox.NewRegistry()
	integ, err := reg.GetIntegrator(cfg.Mode)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%v (available: %v)", err, reg.ListIntegrators())
	}

	w := physics.NewWorld(integ, cfg.Gravity, mgl32.Vec2{cfg.Bounds.Width, cfg.Bounds.Height}, cfg.Scale)
	w.SetStickSolver(cfg.Sticks.Enabled)

	sp := sandbox.NewSpawner(sandbox.SpawnerConfig{
		Mass:        cfg.Spawn.Mass,
		Radius:      cfg.Spawn.Radius,
		Restitution: cfg.Spawn.Restitution,
		SpeedScale:  cfg.Spawn.SpeedScale,
		Seed:        cfg.Spawn.Seed,
	})

	sess := sandbox.NewSession(w, sp, log)
	for _, name := range cfg.Metrics {
		m, err := reg.GetMetric(name)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%v (available: %v)", err, reg.ListMetrics())
		}
		sess.AddMetric(m)
	}

	return sess, w, sp, nil
}

// populate seeds the world with the configured spawn pattern before the
// first frame.
func populate(w *physics.World, sp *sandbox.Spawner, cfg *config.Config) error {
	sc := cfg.Spawn
	speed := sc.Speed
	if speed == 0 {
		speed = config.DefaultSpeed
	}

	switch sc.Pattern {
	case "", "random":
		for i := 0; i < sc.Count; i++ {
			p, err := sp.Scatter(w)
			if err != nil {
				return err
			}
			if err := w.AddParticle(p); err != nil {
				return err
			}
		}
	case "ring":
		for i := 0; i < sc.Count; i++ {
			p, err := sp.RingParticle(w, mgl32.Vec2{}, i, sc.Count, speed)
			if err != nil {
				return err
			}
			if err := w.AddParticle(p); err != nil {
				return err
			}
		}
	case "chain":
		rest := sc.Rest
		if rest == 0 {
			rest = config.DefaultRest
		}
		var prev uint32
		for i := 0; i < sc.Count; i++ {
			x := (float32(i) - float32(sc.Count-1)/2) * rest
			p, err := sp.Make(w, sandbox.SpawnRequest{Pos: mgl32.Vec2{x, 0}})
			if err != nil {
				return err
			}
			if err := w.AddParticle(p); err != nil {
				return err
			}
			if i > 0 {
				w.AddStick(physics.Stick{A: prev, B: p.ID, RestLength: rest})
			}
			prev = p.ID
		}
	default:
		return fmt.Errorf("unknown spawn pattern: %s", sc.Pattern)
	}

	return nil
}

func loadScenario() (*scenario.Scenario, error) {
	if scenarioFile == "" {
		return nil, nil
	}
	return scenario.Load(scenarioFile)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	sess, w, sp, err := buildSession(cfg, log)
	if err != nil {
		return err
	}
	if err := populate(w, sp, cfg); err != nil {
		return err
	}

	sc, err := loadScenario()
	if err != nil {
		return err
	}

	rc := sandbox.RunConfig{Dt: cfg.Dt, Duration: cfg.Duration}

	log.Info("starting run",
		zap.String("mode", cfg.Mode),
		zap.Int("particles", sess.ParticleCount()),
		zap.Float32("duration", cfg.Duration),
	)

	fmt.Printf("running %s simulation...\n", cfg.Mode)
	start := time.Now()

	if sc != nil {
		err = scenario.NewPlayer(sc).Play(context.Background(), sess, rc)
	} else {
		err = sess.Run(context.Background(), rc)
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", sess.FrameCount())
	fmt.Printf("particles: %d\n\n", sess.ParticleCount())

	fmt.Println(viz.Summary("metrics", sess.MetricValues()))

	if showPlot {
		fmt.Println(viz.Plot(sess.EnergySeries(), 80, 10, "kinetic energy vs time"))
		fmt.Println()
		fmt.Println(viz.Plot(sess.YSeries(), 80, 10, "first particle height vs time"))
	}

	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// The dashboard owns the terminal; session logs stay quiet.
	sess, w, sp, err := buildSession(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	if err := populate(w, sp, cfg); err != nil {
		return err
	}

	sc, err := loadScenario()
	if err != nil {
		return err
	}
	var player *scenario.Player
	if sc != nil {
		player = scenario.NewPlayer(sc)
	}

	return tui.RunWatch(sess, player, cfg.Dt, cfg.Mode)
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Scripts drive their own spawning; the world starts empty.
	sess, _, _, err := buildSession(cfg, log)
	if err != nil {
		return err
	}

	eng := script.NewEngine(sess, log)
	defer eng.Close()

	fmt.Printf("running %s...\n", args[0])
	start := time.Now()
	if err := eng.Run(args[0]); err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", sess.FrameCount())
	fmt.Printf("particles: %d\n\n", sess.ParticleCount())
	fmt.Println(viz.Summary("metrics", sess.MetricValues()))

	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	categories := make([]string, 0, len(config.Presets))
	for cat := range config.Presets {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tNAME\tMODE\tPATTERN\tCOUNT\tGRAVITY\tDURATION")

	for _, cat := range categories {
		names := config.ListPresets(cat)
		sort.Strings(names)
		for _, name := range names {
			p := config.Presets[cat][name]
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2f\t%.1fs\n",
				cat, name, p.Mode, p.Spawn.Pattern, p.Spawn.Count, p.Gravity, p.Duration)
		}
	}

	return w.Flush()
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()

	sess, w, sp, err := buildSession(cfg, log)
	if err != nil {
		return err
	}
	if err := populate(w, sp, cfg); err != nil {
		return err
	}

	rc := sandbox.RunConfig{Dt: cfg.Dt, Duration: cfg.Duration}
	fmt.Printf("running %s simulation...\n\n", cfg.Mode)
	if err := sess.Run(context.Background(), rc); err != nil {
		return err
	}

	ys := sess.YSeries()
	if len(ys) < 4 {
		return fmt.Errorf("run too short to analyze: %d samples", len(ys))
	}

	spectrum := analysis.PowerSpectrum(ys)
	sampleRate := 1.0 / float64(cfg.Dt)
	freq := analysis.DominantFrequency(spectrum, sampleRate)

	plotData := spectrum
	if len(spectrum) >= 8 {
		plotData = spectrum[:len(spectrum)/4]
	}
	fmt.Println(viz.Plot(plotData, 80, 15, "power spectrum (first particle height)"))
	fmt.Println()

	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	fmt.Println()

	fmt.Println("phase portrait (height vs vertical velocity):")
	fmt.Println(viz.PhasePortrait(sess.YSeries(), sess.VYSeries(), 70, 20))

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if sweepParam != "restitution" && sweepParam != "gravity" {
		return fmt.Errorf("unknown sweep parameter: %s (restitution, gravity)", sweepParam)
	}
	if sweepPoints < 2 {
		return fmt.Errorf("sweep needs at least 2 points, got %d", sweepPoints)
	}

	// The swept metric must be observed.
	hasMetric := false
	for _, name := range cfg.Metrics {
		if name == sweepMetric {
			hasMetric = true
			break
		}
	}
	if !hasMetric {
		cfg.Metrics = append(cfg.Metrics, sweepMetric)
	}

	fmt.Printf("sweeping %s from %.2f to %.2f (%d points, %s mode)\n\n",
		sweepParam, sweepFrom, sweepTo, sweepPoints, cfg.Mode)

	var sweepErr error
	points := analysis.Sweep(float64(sweepFrom), float64(sweepTo), sweepPoints, func(v float64) float64 {
		pointCfg := *cfg
		switch sweepParam {
		case "restitution":
			pointCfg.Spawn.Restitution = float32(v)
		case "gravity":
			pointCfg.Gravity = float32(v)
		}

		sess, w, sp, err := buildSession(&pointCfg, zap.NewNop())
		if err != nil {
			sweepErr = err
			return math.NaN()
		}
		if err := populate(w, sp, &pointCfg); err != nil {
			sweepErr = err
			return math.NaN()
		}
		rc := sandbox.RunConfig{Dt: pointCfg.Dt, Duration: pointCfg.Duration}
		if err := sess.Run(context.Background(), rc); err != nil {
			sweepErr = err
			return math.NaN()
		}
		return sess.MetricValues()[sweepMetric]
	})
	if sweepErr != nil {
		return sweepErr
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(sweepMetric))
	series := make([]float64, len(points))
	for i, pt := range points {
		fmt.Fprintf(w, "%.3f\t%.4f\n", pt.Value, pt.Metric)
		series[i] = pt.Metric
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.Plot(series, 80, 10, fmt.Sprintf("%s vs %s", sweepMetric, sweepParam)))

	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sc, err := loadScenario()
	if err != nil {
		return err
	}

	modes := []string{"euler", "verlet"}
	jobs := make([]sandbox.BatchJob, len(modes))
	for i, m := range modes {
		jobCfg := *cfg
		jobCfg.Mode = m
		jobs[i] = sandbox.BatchJob{
			Name: m,
			Build: func() (*sandbox.Session, sandbox.RunConfig, error) {
				sess, w, sp, err := buildSession(&jobCfg, zap.NewNop())
				if err != nil {
					return nil, sandbox.RunConfig{}, err
				}
				if err := populate(w, sp, &jobCfg); err != nil {
					return nil, sandbox.RunConfig{}, err
				}
				return sess, sandbox.RunConfig{Dt: jobCfg.Dt, Duration: jobCfg.Duration}, nil
			},
		}
		if sc != nil {
			jobs[i].Run = func(ctx context.Context, sess *sandbox.Session, rc sandbox.RunConfig) error {
				return scenario.NewPlayer(sc).Play(ctx, sess, rc)
			}
		}
	}

	fmt.Printf("comparing modes (dt=%.4f, duration=%.1fs, %d particles)\n\n",
		cfg.Dt, cfg.Duration, cfg.Spawn.Count)

	start := time.Now()
	results := sandbox.NewBatch(workers).Run(context.Background(), jobs)
	elapsed := time.Since(start)

	metricCols := append([]string(nil), cfg.Metrics...)
	sort.Strings(metricCols)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "MODE\tFRAMES"
	for _, name := range metricCols {
		header += "\t" + strings.ToUpper(name)
	}
	fmt.Fprintln(w, header)

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", res.Name, res.Err)
			continue
		}
		row := fmt.Sprintf("%s\t%d", res.Name, res.Frames)
		for _, name := range metricCols {
			row += fmt.Sprintf("\t%.4f", res.Metrics[name])
		}
		fmt.Fprintln(w, row)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	counts := []int{10, 100, 500}
	modes := []string{"euler", "verlet"}
	rc := sandbox.RunConfig{Dt: cfg.Dt, Duration: cfg.Duration}

	fmt.Printf("benchmarking %d frames per run (dt=%.4f)\n\n", rc.Steps(), cfg.Dt)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tPARTICLES\tFRAMES\tTIME\tFRAMES/SEC")

	for _, m := range modes {
		for _, n := range counts {
			benchCfg := *cfg
			benchCfg.Mode = m
			benchCfg.Spawn.Count = n
			benchCfg.Spawn.Pattern = "random"
			benchCfg.Metrics = nil

			sess, world, sp, err := buildSession(&benchCfg, zap.NewNop())
			if err != nil {
				return err
			}
			if err := populate(world, sp, &benchCfg); err != nil {
				return err
			}

			start := time.Now()
			if err := sess.Run(context.Background(), rc); err != nil {
				return err
			}
			elapsed := time.Since(start)

			frames := sess.FrameCount()
			perSec := float64(frames) / elapsed.Seconds()
			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n", m, n, frames, elapsed.Round(time.Microsecond), perSec)
		}
	}

	return w.Flush()
}
