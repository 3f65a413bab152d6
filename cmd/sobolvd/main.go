package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/sobolvd/internal/climate"
	"github.com/san-kum/sobolvd/internal/config"
	"github.com/san-kum/sobolvd/internal/experiment"
	"github.com/san-kum/sobolvd/internal/export"
	"github.com/san-kum/sobolvd/internal/logging"
	"github.com/san-kum/sobolvd/internal/plot"
	"github.com/san-kum/sobolvd/internal/progress"
	"github.com/san-kum/sobolvd/internal/storage"
	"github.com/san-kum/sobolvd/internal/sweep"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir string
	verbose bool
	logger  *zap.Logger

	configFile  string
	preset      string
	variant     string
	samples     int
	runs        int
	seed        uint64
	workers     int
	tmin        float64
	tmax        float64
	tcount      int
	temperature float64
	pairs       []string
	triple      string
	live        bool

	columns    int
	plotWidth  int
	plotHeight int

	format  string
	outPath string
	withRaw bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "sobolvd",
		Short:         "variance decomposition of climate budget and cost models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.New(verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sobolvd", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "estimate sensitivity indices at one temperature",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAnalysis,
	}
	addConfigFlags(runCmd)
	runCmd.Flags().Float64VarP(&temperature, "temperature", "t", 2.0, "warming level in K")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "repeat the analysis over a temperature grid and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&runs, "runs", config.DefaultRuns, "repetitions per temperature")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel temperatures (0 = GOMAXPROCS)")
	sweepCmd.Flags().Float64Var(&tmin, "tmin", config.DefaultTMin, "lowest temperature")
	sweepCmd.Flags().Float64Var(&tmax, "tmax", config.DefaultTMax, "highest temperature")
	sweepCmd.Flags().IntVar(&tcount, "count", config.DefaultTCount, "number of temperatures")
	sweepCmd.Flags().BoolVar(&live, "live", false, "show a live progress view")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored sweeps",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show the shares of a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&columns, "columns", 5, "temperatures to show")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot cumulative shares of a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "chart width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 15, "chart height")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "output format ("+strings.Join(export.Formats(), "|")+")")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout, or <run_id>.xlsx)")
	exportCmd.Flags().BoolVar(&withRaw, "raw", false, "include per-run estimates (json only)")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(presetModel(args[0]))
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	variantsCmd := &cobra.Command{
		Use:   "variants",
		Short: "list parameter distribution variants",
		RunE:  listVariants,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models",
		RunE:  listModels,
	}

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, showCmd, plotCmd, exportCmd, presetsCmd, variantsCmd, modelsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&variant, "variant", config.DefaultVariant, "distribution variant (name or code)")
	cmd.Flags().IntVarP(&samples, "samples", "n", config.DefaultSamples, "samples per matrix")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "base seed (0 = fresh entropy)")
	cmd.Flags().StringSliceVar(&pairs, "pairs", nil, "interaction pairs as i:j (e.g. 0:1,0:2)")
	cmd.Flags().StringVar(&triple, "triple", "", "third-order triple as i:j:k")
}

// presetModel maps model names onto the preset table they share.
func presetModel(model string) string {
	return strings.TrimSuffix(model, "_usd")
}

// resolveConfig applies, in order: the model's default preset or --preset,
// --config, then any flag set on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	model := config.DefaultModel
	if len(args) > 0 {
		model = args[0]
	}

	name := "default"
	if preset != "" {
		name = preset
	}
	cfg := config.GetPreset(presetModel(model), name)
	if cfg == nil {
		if preset != "" {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(presetModel(model)))
		}
		cfg = config.DefaultConfig()
	}
	cfg.Model = model

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Model = args[0]
		}
	}

	flags := cmd.Flags()
	if flags.Changed("variant") {
		cfg.Variant = variant
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("pairs") {
		parsed, err := parsePairs(pairs)
		if err != nil {
			return nil, err
		}
		cfg.Pairs = parsed
	}
	if flags.Changed("triple") {
		parsed, err := parseIndices(triple, 3)
		if err != nil {
			return nil, err
		}
		cfg.Triple = parsed
	}
	if flags.Lookup("runs") != nil && flags.Changed("runs") {
		cfg.Runs = runs
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Lookup("tmin") != nil {
		if flags.Changed("tmin") || flags.Changed("tmax") || flags.Changed("count") {
			cfg.Temperatures.Values = nil
		}
		if flags.Changed("tmin") {
			cfg.Temperatures.Min = tmin
		}
		if flags.Changed("tmax") {
			cfg.Temperatures.Max = tmax
		}
		if flags.Changed("count") {
			cfg.Temperatures.Count = tcount
		}
	}

	return cfg, cfg.Validate()
}

func parsePairs(raw []string) ([][]int, error) {
	out := make([][]int, 0, len(raw))
	for _, s := range raw {
		p, err := parseIndices(s, 2)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func parseIndices(s string, n int) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d indices separated by ':', got %q", n, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp, err := experiment.FromConfig(experiment.NewRegistry(), cfg)
	if err != nil {
		return err
	}

	logger.Info("analysis started",
		zap.String("model", cfg.Model),
		zap.String("variant", cfg.Variant),
		zap.Int("samples", cfg.Samples),
		zap.Float64("t", temperature))

	fmt.Printf("running %s (%s) at T=%gK with N=%d...\n", cfg.Model, cfg.Variant, temperature, cfg.Samples)
	start := time.Now()

	est, err := exp.Analyze(temperature, cfg.Seed)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start).Round(time.Millisecond))

	labels := exp.Labels()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tTERM\tSHARE")
	printTerms(w, "1", labels.First, est.FirstOrder)
	printTerms(w, "2", labels.Second, est.SecondOrder)
	printTerms(w, "3", labels.Third, est.ThirdOrder)
	return w.Flush()
}

func printTerms(w io.Writer, order string, names []string, values []float64) {
	for i, name := range names {
		fmt.Fprintf(w, "%s\t%s\t%.6f\n", order, name, values[i])
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.FromConfig(experiment.NewRegistry(), cfg)
	if err != nil {
		return err
	}

	grid := cfg.Grid()
	run := func(ctx context.Context, onStep sweep.ProgressFunc) (*sweep.Result, error) {
		d := sweep.NewDriver(exp, grid, cfg.Runs,
			sweep.WithSeed(cfg.Seed),
			sweep.WithWorkers(cfg.Workers),
			sweep.WithLogger(logger),
			sweep.WithProgress(onStep),
		)
		return d.Run(ctx)
	}

	var res *sweep.Result
	if live {
		title := fmt.Sprintf("%s / %s  N=%d  runs=%d", cfg.Model, cfg.Variant, cfg.Samples, cfg.Runs)
		err = progress.Run(cmd.Context(), title, len(grid), func(ctx context.Context, onStep sweep.ProgressFunc) error {
			var err error
			res, err = run(ctx, onStep)
			return err
		})
	} else {
		fmt.Printf("sweeping %s (%s): %d temperatures x %d runs, N=%d...\n", cfg.Model, cfg.Variant, len(grid), cfg.Runs, cfg.Samples)
		res, err = run(cmd.Context(), func(done, total int, t float64) {
			logger.Info("progress", zap.Int("done", done), zap.Int("total", total), zap.Float64("t", t))
		})
	}
	if err != nil {
		return err
	}

	sum, err := sweep.Aggregate(res)
	if err != nil {
		return err
	}
	if n := sum.NaNs(); n > 0 {
		logger.Warn("non-finite shares in summary", zap.Int("cells", n))
	}

	runID, err := st.Save(cfg, res, sum)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", res.Elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n\n", runID)
	fmt.Println(plot.Table(sum, plot.Pick(len(sum.Temperatures), 5)))
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
	fmt.Fprintln(w, "ID\tMODEL\tVARIANT\tTIME\tN\tRUNS\tTEMPS\tELAPSED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%.1fs\n",
			run.ID,
			run.Model,
			run.Variant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Samples,
			run.Runs,
			len(run.Temperatures),
			run.ElapsedSeconds,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	sum, err := st.LoadSummary(args[0])
	if err != nil {
		return err
	}

	fmt.Println(plot.TitleStyle.Render(fmt.Sprintf("%s  %s / %s", meta.ID, meta.Model, meta.Variant)))
	fmt.Println(plot.Subtle.Render(fmt.Sprintf("N=%d  runs=%d  seed=%d  %s", meta.Samples, meta.Runs, meta.Seed, meta.Timestamp.Format("2006-01-02 15:04:05"))))
	fmt.Println()
	fmt.Println(plot.Table(sum, plot.Pick(len(sum.Temperatures), columns)))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	sum, err := st.LoadSummary(args[0])
	if err != nil {
		return err
	}

	chart, err := plot.CumulativeChart(sum, plot.Options{Width: plotWidth, Height: plotHeight})
	if err != nil {
		return err
	}
	fmt.Println(chart)
	fmt.Println()
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	sum, err := st.LoadSummary(runID)
	if err != nil {
		return err
	}

	var raw *sweep.Result
	if withRaw {
		raw, err = st.LoadRuns(runID)
		if err != nil {
			return err
		}
	}

	f := export.Format(format)
	path := outPath
	if path == "" && f == export.FormatXLSX {
		path = runID + ".xlsx"
	}

	if path == "" {
		return export.Write(os.Stdout, f, sum, raw)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := export.Write(file, f, sum, raw); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported to %s\n", path)
	return nil
}

func listVariants(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tTCRE\tT2010\tSIGMA_NONCO2\tP")
	for _, v := range climate.Variants() {
		specs := v.Distributions()
		fmt.Fprintf(w, "%s\t%s", v.Code(), v)
		for _, s := range specs {
			fmt.Fprintf(w, "\t%s", s)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func listModels(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tPARAMETERS")
	for _, name := range reg.ListModels() {
		m, err := reg.GetModel(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(m.Params(), ", "))
	}
	return w.Flush()
}
