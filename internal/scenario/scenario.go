// Package scenario runs scripted sequences of algorithm runs and checks
// their outcomes.
package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"reflect"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/sequence"
	"github.com/san-kum/algoviz/internal/session"
)

type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run. The input comes from Array, then Input (a comma
// separated string parsed like custom input), then Preset.
type Step struct {
	Algorithm string       `yaml:"algorithm"`
	Array     []int        `yaml:"array"`
	Input     string       `yaml:"input"`
	Preset    string       `yaml:"preset"`
	Size      int          `yaml:"size"`
	MaxValue  int          `yaml:"max_value"`
	Seed      int64        `yaml:"seed"`
	Target    int          `yaml:"target"`
	SpeedMs   int          `yaml:"speed_ms"`
	Expect    *Expectation `yaml:"expect"`
}

type Expectation struct {
	Output  []int  `yaml:"output"`
	Index   *int   `yaml:"index"`
	Outcome string `yaml:"outcome"`
}

// ExpectationError reports the first expectation a step did not meet.
type ExpectationError struct {
	Step      int
	Algorithm string
	Field     string
	Want      any
	Got       any
}

func (e *ExpectationError) Error() string {
	return fmt.Sprintf("step %d (%s): expected %s %v, got %v", e.Step, e.Algorithm, e.Field, e.Want, e.Got)
}

type StepResult struct {
	Step   int
	Input  []int
	Output []int
	Result algo.Result
}

type Options struct {
	Registry  *algo.Registry
	Observers []algo.Observer
	Logger    *slog.Logger
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", sc.Name)
	}
	return &sc, nil
}

func (s Step) values() ([]int, error) {
	if len(s.Array) > 0 {
		return append([]int(nil), s.Array...), nil
	}
	if s.Input != "" {
		return sequence.Parse(s.Input)
	}

	cfg := config.DefaultConfig()
	cfg.Seed = s.Seed
	if s.Preset != "" {
		cfg.Preset = s.Preset
	}
	if s.Size > 0 {
		cfg.Size = s.Size
	}
	if s.MaxValue > 0 {
		cfg.MaxValue = s.MaxValue
	}
	return cfg.Values(cfg.Rand())
}

// Run executes every step through a session controller, stopping at the
// first failure.
func Run(ctx context.Context, sc *Scenario, opts Options) ([]StepResult, error) {
	if opts.Registry == nil {
		opts.Registry = algo.NewRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	results := make([]StepResult, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		n := i + 1
		log.Info("scenario step", "step", n, "of", len(sc.Steps), "algorithm", step.Algorithm)

		res, err := runStep(ctx, n, step, opts, log)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func runStep(ctx context.Context, n int, step Step, opts Options, log *slog.Logger) (StepResult, error) {
	values, err := step.values()
	if err != nil {
		return StepResult{}, fmt.Errorf("step %d: %w", n, err)
	}

	info, err := opts.Registry.Info(step.Algorithm)
	if err != nil {
		return StepResult{}, fmt.Errorf("step %d: %w", n, err)
	}
	if info.RequiresSorted {
		values = sequence.Sorted(values)
	}

	speed := step.SpeedMs
	if speed <= 0 {
		speed = 1
	}
	ctrl := session.New(values, session.Options{
		Registry:  opts.Registry,
		Observers: opts.Observers,
		SpeedMs:   speed,
		Logger:    log,
	})
	defer ctrl.Close()

	if err := ctrl.Start(step.Algorithm, algo.Params{Target: step.Target}); err != nil {
		return StepResult{}, fmt.Errorf("step %d start: %w", n, err)
	}
	res, err := ctrl.Wait(ctx)
	if err != nil {
		return StepResult{}, fmt.Errorf("step %d run: %w", n, err)
	}

	out := StepResult{Step: n, Input: values, Output: ctrl.Values(), Result: *res}
	if err := check(n, step, out); err != nil {
		return out, err
	}
	return out, nil
}

func check(n int, step Step, r StepResult) error {
	exp := step.Expect
	if exp == nil {
		return nil
	}
	fail := func(field string, want, got any) error {
		return &ExpectationError{Step: n, Algorithm: step.Algorithm, Field: field, Want: want, Got: got}
	}

	if exp.Output != nil && !reflect.DeepEqual(exp.Output, r.Output) {
		return fail("output", exp.Output, r.Output)
	}
	if exp.Outcome != "" && exp.Outcome != r.Result.Outcome.String() {
		return fail("outcome", exp.Outcome, r.Result.Outcome.String())
	}
	if exp.Index != nil && *exp.Index != r.Result.Index {
		return fail("index", *exp.Index, r.Result.Index)
	}
	return nil
}

type TrialConfig struct {
	Algorithm string
	Size      int
	MaxValue  int
	Trials    int
	Seed      int64
}

type TrialResult struct {
	Trial  int
	Size   int
	Stats  algo.Stats
	Sorted bool
}

// RunTrials runs an algorithm on fresh random inputs with no delay and
// reports per trial stats. Search algorithms look for a value drawn from
// the input.
func RunTrials(ctx context.Context, cfg TrialConfig, registry *algo.Registry) ([]TrialResult, error) {
	if registry == nil {
		registry = algo.NewRegistry()
	}
	info, err := registry.Info(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]TrialResult, 0, cfg.Trials)
	for trial := 0; trial < cfg.Trials; trial++ {
		values := sequence.Random(rng, cfg.Size, cfg.MaxValue)
		if info.RequiresSorted {
			values = sequence.Sorted(values)
		}
		p := algo.Params{}
		if info.Search && len(values) > 0 {
			p.Target = values[rng.Intn(len(values))]
		}

		r, err := registry.Get(cfg.Algorithm, p)
		if err != nil {
			return nil, err
		}
		env := algo.NewEnv(sequence.New(values), nil)
		res, err := algo.Execute(ctx, r, env)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		results = append(results, TrialResult{
			Trial:  trial,
			Size:   cfg.Size,
			Stats:  res.Stats,
			Sorted: env.Store.IsSorted(),
		})
	}
	return results, nil
}

// MeanSteps averages the step counts of results.
func MeanSteps(results []TrialResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum uint64
	for _, r := range results {
		sum += r.Stats.Steps
	}
	return float64(sum) / float64(len(results))
}
