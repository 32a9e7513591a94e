package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/regolith-sim/regolith/internal/analysis"
	"github.com/regolith-sim/regolith/internal/config"
	"github.com/regolith-sim/regolith/internal/export"
	"github.com/regolith-sim/regolith/internal/physics"
	"github.com/regolith-sim/regolith/internal/planet"
	"github.com/regolith-sim/regolith/internal/sim"
	"github.com/regolith-sim/regolith/internal/solar"
	"github.com/regolith-sim/regolith/internal/storage"
	"github.com/regolith-sim/regolith/internal/thermal"
	"github.com/regolith-sim/regolith/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	planetName string
	latitude   float64
	layersSpec string
	co2        bool
	startDay   int
	days       int
	steps      int
	startTemp  float64
	output     string
	configFile string
	preset     string
	// batch
	latitudes string
	// plot
	layerIndex int
	extremes   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "regolith",
		Short: "planetary surface and subsurface thermal model",
		Long:  "regolith integrates the diurnal and seasonal temperature of a layered planetary surface, with optional CO2 frost condensation, after Leighton & Murray.",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".regolith", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [config...]",
		Short: "run several simulations in parallel",
		Long:  "batch runs one simulation per given config file, or one per --latitudes entry when no files are given, all in parallel.",
		RunE:  runBatch,
	}
	addRunFlags(batchCmd)
	batchCmd.Flags().StringVar(&latitudes, "latitudes", "-70,0,70", "comma-separated latitudes in degrees, used when no config files are given")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's temperatures",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&layerIndex, "layer", 0, "layer index, 0 is the surface")
	plotCmd.Flags().BoolVar(&extremes, "extremes", false, "plot per-day min/max instead of the full series")

	profileCmd := &cobra.Command{
		Use:   "profile [run_id]",
		Short: "temperature statistics per layer",
		Args:  cobra.ExactArgs(1),
		RunE:  profileRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a layer's temperature",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&layerIndex, "layer", 0, "layer index, 0 is the surface")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a layer's temperature series as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&layerIndex, "layer", 0, "layer index, 0 is the surface")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run snapshots as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	extractCmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "extract one layer's series from a text log",
		Args:  cobra.ExactArgs(1),
		RunE:  extractLog,
	}
	extractCmd.Flags().IntVar(&layerIndex, "layer", 0, "layer index, 0 is the surface")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with a live terminal view",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPLANET\tLATITUDE\tCO2\tDAYS")
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%t\t%d\n", name, p.Planet, p.LatitudeDegrees, p.CO2, p.Days)
			}
			return w.Flush()
		},
	}

	planetsCmd := &cobra.Command{
		Use:   "planets",
		Short: "list known planets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := planet.Names()
			sort.Strings(names)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tA (AU)\tECC\tOBLIQUITY\tHOURS/DAY")
			for _, name := range names {
				body, err := planet.ByName(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%.3f\t%.4f\t%.1f\t%.2f\n",
					body.Name, body.SemimajorAxis, body.Eccentricity,
					body.Obliquity*180/math.Pi, body.HoursInDay)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, batchCmd, listCmd, plotCmd, profileCmd, analyzeCmd, exportCmd, exportCSVCmd, exportSVGCmd, extractCmd, liveCmd, presetsCmd, planetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&planetName, "planet", "mars", "planet to simulate")
	cmd.Flags().Float64Var(&latitude, "lat", 0, "latitude in degrees, south negative")
	cmd.Flags().StringVar(&layersSpec, "layers", "9x0.015,10x0.3", "layer bands as countxthickness[,countxthickness...]")
	cmd.Flags().BoolVar(&co2, "co2", true, "model CO2 frost at the surface")
	cmd.Flags().IntVar(&startDay, "start-day", 0, "first simulated day")
	cmd.Flags().IntVar(&days, "days", config.DefaultDays, "number of days to simulate")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultStepsPerHour, "integration substeps per hour")
	cmd.Flags().Float64Var(&startTemp, "temp", -1, "start temperature in K, non-positive derives it from insolation")
	cmd.Flags().StringVar(&output, "output", "", "text log file, empty derives a name from the run parameters")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func newLogger() *zap.SugaredLogger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, err = cfg.Build()
	}
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// buildConfig assembles the run configuration: preset first, then config
// file, with explicit CLI flags taking precedence over both.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("planet") {
		cfg.Planet = planetName
	}
	if cmd.Flags().Changed("lat") {
		cfg.LatitudeDegrees = latitude
	}
	if cmd.Flags().Changed("layers") {
		spec, err := parseLayers(layersSpec)
		if err != nil {
			return nil, err
		}
		cfg.Layers = spec
	}
	if cmd.Flags().Changed("co2") {
		cfg.CO2 = co2
	}
	if cmd.Flags().Changed("start-day") {
		cfg.StartDay = startDay
	}
	if cmd.Flags().Changed("days") {
		cfg.Days = days
	}
	if cmd.Flags().Changed("steps") {
		cfg.StepsPerHour = steps
	}
	if cmd.Flags().Changed("temp") {
		cfg.StartTemperature = startTemp
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = output
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseLayers reads a band list like "9x0.015,10x0.3": nine 1.5 cm layers
// over ten 30 cm layers.
func parseLayers(s string) (thermal.Spec, error) {
	var spec thermal.Spec
	for _, part := range strings.Split(s, ",") {
		count, thickness, ok := strings.Cut(strings.TrimSpace(part), "x")
		if !ok {
			return nil, fmt.Errorf("bad layer band %q, want countxthickness", part)
		}
		n, err := strconv.Atoi(count)
		if err != nil {
			return nil, fmt.Errorf("bad layer count in %q: %w", part, err)
		}
		th, err := strconv.ParseFloat(thickness, 64)
		if err != nil {
			return nil, fmt.Errorf("bad layer thickness in %q: %w", part, err)
		}
		spec = append(spec, thermal.Band{Count: n, Thickness: th})
	}
	return spec, nil
}

// assembled holds everything one run needs.
type assembled struct {
	cfg   *config.Config
	body  *planet.Body
	stack *thermal.Stack
	temp  float64
}

func assemble(cfg *config.Config) (*assembled, error) {
	body, err := planet.ByName(cfg.Planet)
	if err != nil {
		return nil, err
	}
	sun := solar.New(body)

	temp := cfg.StartTemperature
	if temp <= 0 {
		temp = sim.StableTemperature(sun, 0.25)
	}

	stack, err := thermal.NewStack(body, cfg.Layers, cfg.Latitude(), temp, sun, physics.CO2, cfg.CO2)
	if err != nil {
		return nil, err
	}
	return &assembled{cfg: cfg, body: body, stack: stack, temp: temp}, nil
}

// tee fans one snapshot out to several sinks.
type tee []sim.Sink

func (t tee) Record(s *storage.Snapshot) {
	for _, sink := range t {
		sink.Record(s)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	a, err := assemble(cfg)
	if err != nil {
		return err
	}

	log := newLogger()
	defer log.Sync()

	st := storage.NewStore(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	name := cfg.Output
	if name == "" {
		name = storage.DefaultLogName(cfg.StartDay, cfg.StartDay+cfg.Days, a.temp, cfg.CO2, cfg.LatitudeDegrees)
	}
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	defer out.Close()

	textLog := storage.NewTextLog(out)
	textLog.WriteLine(fmt.Sprintf("planet: %s", cfg.Planet))
	textLog.WriteLine(fmt.Sprintf("latitude: %.2f", cfg.LatitudeDegrees))
	textLog.WriteLine(fmt.Sprintf("layers: %d", a.stack.NumLayers()))
	textLog.WriteLine(fmt.Sprintf("co2: %t", cfg.CO2))
	textLog.WriteLine(fmt.Sprintf("start temperature: %.1f", a.temp))

	memLog := storage.NewMemoryLog()
	model := sim.New(a.body, a.stack, tee{memLog, textLog}, log, planet.EarthYear)

	fmt.Printf("running %s, latitude %.1f, %d days...\n", cfg.Planet, cfg.LatitudeDegrees, cfg.Days)
	start := time.Now()

	runErr := model.Run(context.Background(), sim.Config{
		StartDay:     cfg.StartDay,
		NumberOfDays: cfg.Days,
		StepsPerHour: cfg.StepsPerHour,
	})
	elapsed := time.Since(start)
	if err := textLog.Close(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	runID, err := st.Save(storage.RunMetadata{
		Planet:           cfg.Planet,
		LatitudeDegrees:  cfg.LatitudeDegrees,
		CO2:              cfg.CO2,
		StartDay:         cfg.StartDay,
		Days:             cfg.Days,
		StepsPerHour:     cfg.StepsPerHour,
		StartTemperature: a.temp,
		ElapsedSeconds:   elapsed.Seconds(),
	}, memLog)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("text log: %s\n", name)
	stats, err := memLog.Stats(0)
	if err != nil {
		return err
	}
	fmt.Printf("surface: min %.1f K, max %.1f K, mean %.1f K\n", stats.Min, stats.Max, stats.Mean)
	if frost := a.stack.Condensate(); frost > 0 {
		fmt.Printf("remaining frost: %.2f kg/m2\n", frost)
	}
	return nil
}

// batchConfigs builds one config per run: one per config file argument, or
// a latitude sweep of the flag-built config when no files are given.
func batchConfigs(cmd *cobra.Command, args []string) ([]*config.Config, error) {
	if len(args) > 0 {
		configs := make([]*config.Config, 0, len(args))
		for _, path := range args {
			cfg, err := config.Load(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", path, err)
			}
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			configs = append(configs, cfg)
		}
		return configs, nil
	}

	base, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	var configs []*config.Config
	for _, field := range strings.Split(latitudes, ",") {
		lat, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("bad latitude %q: %w", field, err)
		}
		cfg := *base
		cfg.LatitudeDegrees = lat
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		configs = append(configs, &cfg)
	}
	return configs, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	configs, err := batchConfigs(cmd, args)
	if err != nil {
		return err
	}

	log := newLogger()
	defer log.Sync()

	st := storage.NewStore(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	batch := sim.NewBatch()
	var logs []*storage.MemoryLog
	var temps []float64

	for _, runCfg := range configs {
		a, err := assemble(runCfg)
		if err != nil {
			return err
		}
		memLog := storage.NewMemoryLog()
		batch.Add(sim.New(a.body, a.stack, memLog, log, planet.EarthYear), sim.Config{
			StartDay:     runCfg.StartDay,
			NumberOfDays: runCfg.Days,
			StepsPerHour: runCfg.StepsPerHour,
		})
		logs = append(logs, memLog)
		temps = append(temps, a.temp)
	}

	fmt.Printf("running %d simulations...\n", batch.Len())
	start := time.Now()
	if err := batch.Run(context.Background()); err != nil {
		return err
	}
	elapsed := time.Since(start)

	for i, runCfg := range configs {
		runID, err := st.Save(storage.RunMetadata{
			Planet:           runCfg.Planet,
			LatitudeDegrees:  runCfg.LatitudeDegrees,
			CO2:              runCfg.CO2,
			StartDay:         runCfg.StartDay,
			Days:             runCfg.Days,
			StepsPerHour:     runCfg.StepsPerHour,
			StartTemperature: temps[i],
			ElapsedSeconds:   elapsed.Seconds(),
		}, logs[i])
		if err != nil {
			return err
		}
		fmt.Printf("latitude %.1f: run id %s\n", runCfg.LatitudeDegrees, runID)
	}
	fmt.Printf("completed in %v\n", elapsed)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLANET\tLAT\tCO2\tDAYS\tSTEPS/H\tLAYERS\tTIME")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%t\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Planet,
			run.LatitudeDegrees,
			run.CO2,
			run.Days,
			run.StepsPerHour,
			run.Layers,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	log, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("planet: %s, latitude %.1f\n", meta.Planet, meta.LatitudeDegrees)
	fmt.Printf("samples: %d\n\n", log.Len())

	var graph string
	if extremes {
		graph, err = viz.PlotDailyExtremes(log, layerIndex)
	} else {
		graph, err = viz.PlotChannel(log, layerIndex)
	}
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func profileRun(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	log, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAYER\tMIN (K)\tMAX (K)\tMEAN (K)\tSWING (K)")
	for i := 0; i < log.Channels(); i++ {
		stats, err := log.Stats(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%.2f\n", i, stats.Min, stats.Max, stats.Mean, stats.Max-stats.Min)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	log, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}
	_, temps, err := log.Extract(layerIndex)
	if err != nil {
		return err
	}
	if len(temps) < 2 {
		return fmt.Errorf("no data to analyze")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("planet: %s, latitude %.1f, layer %d\n\n", meta.Planet, meta.LatitudeDegrees, layerIndex)

	ps := analysis.PowerSpectrum(temps)
	plotData := ps[:len(ps)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (layer %d)", layerIndex)),
	)
	fmt.Println(graph)
	fmt.Println()

	// Snapshots land hourly, 24 per simulated day.
	period := analysis.DominantPeriod(temps, 1.0/24)
	if period > 0 {
		fmt.Printf("dominant period: %.2f days\n", period)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	log, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}
	days, temps, err := log.Extract(layerIndex)
	if err != nil {
		return err
	}

	svg := export.SeriesToSVG(days, temps, 960, 480, "#00ff00")
	if svg == "" {
		return fmt.Errorf("no data to export")
	}
	fmt.Println(svg)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.NewStore(dataDir)
	log, err := st.LoadSnapshots(args[0])
	if err != nil {
		return err
	}
	if log.Len() == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(os.Stdout, log)
}

func extractLog(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	snaps, err := storage.ReadTextLog(f)
	if err != nil {
		return err
	}
	for _, snap := range snaps {
		if layerIndex < 0 || layerIndex >= len(snap.Temperatures) {
			return fmt.Errorf("layer %d out of range, log has %d layers", layerIndex, len(snap.Temperatures))
		}
		fmt.Printf("%f %f\n", snap.Day, snap.Temperatures[layerIndex])
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	a, err := assemble(cfg)
	if err != nil {
		return err
	}

	m := viz.NewLive(a.body, a.stack, planet.EarthYear, cfg.StepsPerHour)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
