package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/audio"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/gui"
	"github.com/san-kum/algoviz/internal/viz"
)

var (
	configFile string
	size       int
	maxValue   int
	speedMs    int
	language   string
	seed       int64
	array      string
	preset     string
	target     int
	withAudio  bool
	logFile    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "algoviz",
	Short: "Step-by-step sorting and searching visualizer",
	Long:  "Animates sorting and searching algorithms one step at a time, with the matching source line highlighted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return startTerminal(cfg, "")
	},
}

var visualizeCmd = &cobra.Command{
	Use:     "visualize [algorithm]",
	Aliases: []string{"viz"},
	Short:   "Open the terminal visualizer on one algorithm",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return startTerminal(cfg, algorithmArg(args, cfg))
	},
}

var guiCmd = &cobra.Command{
	Use:   "gui [algorithm]",
	Short: "Open the graphical visualizer",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closeLog, err := newLogger(cfg, true)
		if err != nil {
			return err
		}
		defer closeLog()

		cues, stop := startAudio(cfg, logger)
		defer stop()

		opts := gui.Options{
			Config:   cfg,
			Registry: algo.NewRegistry(),
			Cues:     cues,
			Logger:   logger,
		}
		if len(args) == 0 {
			return gui.RunInteractive(opts)
		}
		return gui.Run(args[0], opts)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "YAML config file")
	pf.IntVarP(&size, "size", "n", 0, "number of elements")
	pf.IntVar(&maxValue, "max", 0, "largest random value")
	pf.IntVarP(&speedMs, "speed", "s", 0, "delay per step in milliseconds")
	pf.StringVarP(&language, "lang", "l", "", "code listing language (cpp, java)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = clock)")
	pf.StringVarP(&array, "array", "a", "", "comma separated input, e.g. \"5,3,8,1\"")
	pf.StringVarP(&preset, "preset", "p", "", "input preset (see 'algoviz presets')")
	pf.IntVarP(&target, "target", "t", 0, "value to look for in search algorithms")
	pf.BoolVar(&withAudio, "audio", false, "play comparison and swap cues")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file")
	pf.BoolVar(&debug, "debug", false, "debug logging")

	rootCmd.AddCommand(visualizeCmd, guiCmd)
	addCommands(rootCmd)
}

// loadConfig starts from the config file, or the defaults, and applies
// every flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = size
	}
	if flags.Changed("max") {
		cfg.MaxValue = maxValue
	}
	if flags.Changed("speed") {
		cfg.SpeedMs = speedMs
	}
	if flags.Changed("lang") {
		cfg.Language = language
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("array") {
		cfg.Array = array
	}
	if flags.Changed("preset") {
		cfg.Preset = preset
	}
	if flags.Changed("target") {
		cfg.Target = target
	}
	if flags.Changed("audio") {
		cfg.Audio = withAudio
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func algorithmArg(args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Algorithm
}

// startTerminal runs the bubbletea program, on the menu when id is empty.
func startTerminal(cfg *config.Config, id string) error {
	logger, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	cues, stop := startAudio(cfg, logger)
	defer stop()

	opts := viz.Options{
		Config:   cfg,
		Registry: algo.NewRegistry(),
		Cues:     cues,
		Logger:   logger,
	}
	if id == "" {
		return viz.RunInteractive(opts)
	}
	return viz.Run(id, opts)
}

// startAudio returns silent cues unless audio is enabled and the output
// device opens.
func startAudio(cfg *config.Config, logger *slog.Logger) (algo.Cues, func()) {
	if !cfg.Audio {
		return algo.NopCues{}, func() {}
	}
	player := audio.NewPlayer()
	if err := player.Start(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return algo.NopCues{}, func() {}
	}
	return player, player.Stop
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
