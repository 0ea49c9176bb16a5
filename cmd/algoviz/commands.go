package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/highlight"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/scenario"
	"github.com/san-kum/algoviz/internal/sequence"
	"github.com/san-kum/algoviz/internal/session"
	"github.com/san-kum/algoviz/internal/trace"
	"github.com/san-kum/algoviz/internal/tui"
)

var (
	live        bool
	fps         int
	traceFormat string
	outputPath  string
	benchTrials int
	plotTrials  int
	sizes       []int
	points      []string
)

func addCommands(root *cobra.Command) {
	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "Run one algorithm headless and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAlgorithm,
	}
	runCmd.Flags().BoolVar(&live, "live", false, "draw every step in the terminal")
	runCmd.Flags().IntVar(&fps, "fps", 30, "redraw limit for --live (0 = every step)")

	traceCmd := &cobra.Command{
		Use:   "trace [algorithm]",
		Short: "Record every step of a run as JSON or CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  traceAlgorithm,
	}
	traceCmd.Flags().StringVarP(&traceFormat, "format", "f", trace.FormatJSON, "output format (json, csv)")
	traceCmd.Flags().StringVarP(&outputPath, "output", "o", "-", "output file (- for stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm...]",
		Short: "Compare step counts across algorithms",
		RunE:  benchAlgorithms,
	}
	benchCmd.Flags().IntVar(&benchTrials, "trials", 10, "random inputs per algorithm")

	plotCmd := &cobra.Command{
		Use:   "plot [algorithm]",
		Short: "Plot mean steps against input size",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotGrowth,
	}
	plotCmd.Flags().IntVar(&plotTrials, "trials", 5, "random inputs per size")
	plotCmd.Flags().IntSliceVar(&sizes, "sizes", []int{5, 10, 20, 40, 60, 80, 100}, "input sizes")

	codeCmd := &cobra.Command{
		Use:   "code [algorithm]",
		Short: "Print the code listing of an algorithm",
		Args:  cobra.MaximumNArgs(1),
		RunE:  printCode,
	}
	codeCmd.Flags().StringSliceVar(&points, "point", nil, "highlight the lines of these labels")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available algorithms",
		RunE:  listAlgorithms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "List input presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.GetPreset(name).Description)
			}
			return w.Flush()
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario <file>",
		Short: "Run the steps of a scenario file and check their expectations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	root.AddCommand(runCmd, traceCmd, benchCmd, plotCmd, codeCmd, listCmd, presetsCmd, scenarioCmd)
}

// prepare resolves the algorithm and its starting values from cfg.
func prepare(cmd *cobra.Command, args []string) (*config.Config, algo.Info, []int, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, algo.Info{}, nil, err
	}
	info, err := algo.NewRegistry().Info(algorithmArg(args, cfg))
	if err != nil {
		return nil, algo.Info{}, nil, err
	}
	values, err := cfg.Values(cfg.Rand())
	if err != nil {
		return nil, algo.Info{}, nil, err
	}
	if info.RequiresSorted {
		values = sequence.Sorted(values)
	}
	return cfg, info, values, nil
}

func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

func runAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, info, values, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, live)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := interruptible(cmd)
	defer cancel()

	registry := algo.NewRegistry()
	set := metrics.Standard()
	params := algo.Params{Target: cfg.Target}

	var (
		res    algo.Result
		output []int
	)
	if live {
		f := frame.New()
		screen := tui.NewLiveRenderer(f, info.ID, cfg.Language, fps)
		cues, stop := startAudio(cfg, logger)
		defer stop()

		ctrl := session.New(values, session.Options{
			Registry:  registry,
			Renderer:  f,
			Cues:      cues,
			Code:      f,
			Narrator:  f,
			Observers: []algo.Observer{set, screen},
			SpeedMs:   cfg.SpeedMs,
			Logger:    logger,
		})
		defer ctrl.Close()

		screen.Start()
		if err := ctrl.Start(info.ID, params); err != nil {
			screen.Stop()
			return err
		}
		r, err := ctrl.Wait(ctx)
		screen.Flush()
		screen.Stop()
		if err != nil {
			return err
		}
		res, output = *r, ctrl.Values()
	} else {
		runner, err := registry.Get(info.ID, params)
		if err != nil {
			return err
		}
		env := algo.NewEnv(sequence.New(values), nil)
		env.AddObserver(set)
		logger.Debug("run started", "algorithm", info.ID, "size", len(values))
		res, err = algo.Execute(ctx, runner, env)
		if err != nil {
			return err
		}
		output = env.Store.Values()
	}

	logger.Info("run finished", "algorithm", info.ID, "outcome", res.Outcome, "steps", res.Stats.Steps)
	printResult(os.Stdout, info, values, output, res, set)
	return nil
}

func printResult(out io.Writer, info algo.Info, input, output []int, res algo.Result, set *metrics.Set) {
	fmt.Fprintf(out, "\nalgorithm: %s\n", info.Title)
	fmt.Fprintf(out, "input:     %s\n", sequence.Format(input))
	if info.Search {
		switch res.Outcome {
		case algo.Found:
			fmt.Fprintf(out, "result:    found at index %d\n", res.Index)
		default:
			fmt.Fprintf(out, "result:    %s\n", res.Outcome)
		}
	} else {
		fmt.Fprintf(out, "output:    %s\n", sequence.Format(output))
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", res.Stats.Steps)
	vals := set.Values()
	for _, name := range set.Names() {
		fmt.Fprintf(w, "%s\t%g\n", name, vals[name])
	}
	w.Flush()
}

func traceAlgorithm(cmd *cobra.Command, args []string) error {
	cfg, info, values, err := prepare(cmd, args)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := interruptible(cmd)
	defer cancel()

	runner, err := algo.NewRegistry().Get(info.ID, algo.Params{Target: cfg.Target})
	if err != nil {
		return err
	}
	rec := trace.NewRecorder()
	set := metrics.Standard()
	env := algo.NewEnv(sequence.New(values), nil)
	env.AddObserver(rec)
	env.AddObserver(set)

	res, err := algo.Execute(ctx, runner, env)
	if err != nil {
		return err
	}

	t := rec.Build(values, env.Store.Values(), res, set.Values())
	if err := trace.Save(outputPath, traceFormat, t); err != nil {
		return err
	}
	if outputPath != "-" && outputPath != "" {
		logger.Info("trace written", "path", outputPath, "events", len(t.Events))
	}
	return nil
}

type benchRow struct {
	info    algo.Info
	results []scenario.TrialResult
	elapsed time.Duration
}

func benchAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	registry := algo.NewRegistry()
	var rows []benchRow
	if len(args) == 0 {
		for _, info := range registry.List() {
			if !info.Search {
				rows = append(rows, benchRow{info: info})
			}
		}
	}
	for _, id := range args {
		info, err := registry.Info(id)
		if err != nil {
			return err
		}
		rows = append(rows, benchRow{info: info})
	}

	// one seed for every row so all algorithms see the same inputs
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, cancel := interruptible(cmd)
	defer cancel()

	eg, gctx := errgroup.WithContext(ctx)
	for i := range rows {
		row := &rows[i]
		eg.Go(func() error {
			start := time.Now()
			res, err := scenario.RunTrials(gctx, scenario.TrialConfig{
				Algorithm: row.info.ID,
				Size:      cfg.Size,
				MaxValue:  cfg.MaxValue,
				Trials:    benchTrials,
				Seed:      seed,
			}, registry)
			if err != nil {
				return fmt.Errorf("%s: %w", row.info.ID, err)
			}
			row.results = res
			row.elapsed = time.Since(start)
			logger.Debug("bench finished", "algorithm", row.info.ID, "elapsed", row.elapsed)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	fmt.Printf("benchmarking %d algorithms, size %d, %d trials\n\n", len(rows), cfg.Size, benchTrials)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tSTEPS\tCOMPARISONS\tSWAPS\tWRITES\tTIME")
	for _, row := range rows {
		var cmp, swp, wr float64
		for _, r := range row.results {
			cmp += float64(r.Stats.Comparisons)
			swp += float64(r.Stats.Swaps)
			wr += float64(r.Stats.Writes)
		}
		n := float64(max(len(row.results), 1))
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%v\n",
			row.info.ID,
			scenario.MeanSteps(row.results),
			cmp/n,
			swp/n,
			wr/n,
			row.elapsed.Round(time.Microsecond),
		)
	}
	return w.Flush()
}

func plotGrowth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	id := algorithmArg(args, cfg)
	registry := algo.NewRegistry()
	if _, err := registry.Info(id); err != nil {
		return err
	}
	if len(sizes) < 2 {
		return errors.New("plot needs at least two sizes")
	}

	ctx, cancel := interruptible(cmd)
	defer cancel()

	data := make([]float64, len(sizes))
	for i, n := range sizes {
		res, err := scenario.RunTrials(ctx, scenario.TrialConfig{
			Algorithm: id,
			Size:      n,
			MaxValue:  cfg.MaxValue,
			Trials:    plotTrials,
			Seed:      cfg.Seed,
		}, registry)
		if err != nil {
			return err
		}
		data[i] = scenario.MeanSteps(res)
	}

	fmt.Printf("algorithm: %s\n", id)
	fmt.Printf("sizes: %v\n\n", sizes)
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("mean steps vs size (%d trials)", plotTrials)),
	)
	fmt.Println(graph)
	return nil
}

func printCode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	l, err := highlight.Lookup(algorithmArg(args, cfg), cfg.Language)
	if err != nil {
		return err
	}
	fmt.Print(highlight.RenderPadded(l, l.Resolve(points...), "> "))
	return nil
}

func listAlgorithms(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tDESCRIPTION")
	for _, info := range algo.NewRegistry().List() {
		kind := "sort"
		if info.Search {
			kind = "search"
		}
		if info.RequiresSorted {
			kind += " (sorted input)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.ID, info.Title, kind, info.Description)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	sc, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := interruptible(cmd)
	defer cancel()

	results, err := scenario.Run(ctx, sc, scenario.Options{Logger: logger})

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tALGORITHM\tOUTCOME\tSTEPS\tOUTPUT")
	for _, r := range results {
		outcome := r.Result.Outcome.String()
		if r.Result.Outcome == algo.Found {
			outcome = fmt.Sprintf("found@%d", r.Result.Index)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			r.Step,
			r.Result.Algorithm,
			outcome,
			r.Result.Stats.Steps,
			sequence.Format(r.Output),
		)
	}
	w.Flush()

	var expErr *scenario.ExpectationError
	if errors.As(err, &expErr) {
		fmt.Printf("\nFAIL step %d (%s): %s want %v, got %v\n", expErr.Step, expErr.Algorithm, expErr.Field, expErr.Want, expErr.Got)
	}
	return err
}
