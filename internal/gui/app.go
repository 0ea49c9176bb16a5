package gui

import (
	"errors"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/highlight"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/sequence"
	"github.com/san-kum/algoviz/internal/session"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)

	ColBar    = rl.NewColor(90, 200, 220, 255)
	ColActive = rl.NewColor(255, 210, 60, 255)
	ColSorted = rl.NewColor(200, 120, 230, 255)
	ColDivide = rl.NewColor(80, 140, 255, 255)
	ColMerge  = rl.NewColor(240, 80, 80, 255)
	ColFound  = rl.NewColor(90, 230, 120, 255)
	ColMiss   = rl.NewColor(50, 50, 50, 255)
)

const (
	screenW = 1280
	screenH = 720

	minSize  = 5
	maxSize  = 100
	sizeStep = 5
)

var speeds = []int{1, 5, 10, 25, 50, 100, 200, 400, 800}

type Options struct {
	Config   *config.Config
	Registry *algo.Registry
	Cues     algo.Cues
	Logger   *slog.Logger
}

type inputMode int

const (
	inputNone inputMode = iota
	inputArray
	inputTarget
)

type App struct {
	InMenu   bool
	Infos    []algo.Info
	Selected int
	Font     rl.Font

	opts     Options
	cfg      *config.Config
	info     algo.Info
	ctrl     *session.Controller
	frame    *frame.Frame
	metrics  *metrics.Set
	history  *metrics.History
	rng      *rand.Rand
	language string
	size     int
	target   int

	mode   inputMode
	input  string
	notice string
	quit   bool
}

func initWindow() {
	rl.InitWindow(screenW, screenH, "algoviz")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to the raylib default.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp starts in the menu when id is empty, otherwise directly on id.
func NewApp(id string, opts Options) (*App, error) {
	if opts.Registry == nil {
		opts.Registry = algo.NewRegistry()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	app := &App{
		InMenu:   id == "",
		Infos:    opts.Registry.List(),
		Font:     loadFont(),
		opts:     opts,
		cfg:      cfg,
		rng:      cfg.Rand(),
		language: cfg.Language,
		size:     clampSize(cfg.Size),
		target:   cfg.Target,
	}
	if id != "" {
		if err := app.load(id); err != nil {
			return nil, err
		}
	}
	return app, nil
}

func clampSize(n int) int {
	if n < minSize {
		return minSize
	}
	if n > maxSize {
		return maxSize
	}
	return n
}

// RunInteractive opens the window on the algorithm menu and blocks until it
// is closed.
func RunInteractive(opts Options) error {
	return Run("", opts)
}

// Run opens the window on one algorithm and blocks until it is closed.
func Run(id string, opts Options) error {
	initWindow()
	defer rl.CloseWindow()

	app, err := NewApp(id, opts)
	if err != nil {
		return err
	}
	defer app.Close()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	if a.ctrl != nil {
		a.ctrl.Close()
	}
}

func (a *App) load(id string) error {
	info, err := a.opts.Registry.Info(id)
	if err != nil {
		return err
	}
	values, err := a.cfg.Values(a.rng)
	if err != nil {
		return err
	}
	if info.RequiresSorted {
		values = sequence.Sorted(values)
	}

	a.Close()
	a.info = info
	a.frame = frame.New()
	a.metrics = metrics.Standard()
	a.history = metrics.NewHistory(400)
	a.ctrl = session.New(values, session.Options{
		Registry:  a.opts.Registry,
		Renderer:  a.frame,
		Cues:      a.opts.Cues,
		Code:      a.frame,
		Narrator:  a.frame,
		Observers: []algo.Observer{a.metrics, a.history},
		SpeedMs:   a.cfg.SpeedMs,
		Logger:    a.opts.Logger,
	})
	a.notice = ""
	return nil
}

func (a *App) Update() {
	if a.mode != inputNone {
		a.updateInput()
		return
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if a.InMenu {
		if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
			a.Selected++
		}
		if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
			a.Selected--
		}
		if a.Selected >= len(a.Infos) {
			a.Selected = 0
		}
		if a.Selected < 0 {
			a.Selected = len(a.Infos) - 1
		}
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
			if err := a.load(a.Infos[a.Selected].ID); err != nil {
				a.notice = err.Error()
				return
			}
			a.InMenu = false
		}
		return
	}

	switch {
	case rl.IsKeyPressed(rl.KeyEscape):
		a.Close()
		a.InMenu = true
	case rl.IsKeyPressed(rl.KeyS):
		a.start()
	case rl.IsKeyPressed(rl.KeySpace):
		a.ctrl.PauseResume()
	case rl.IsKeyPressed(rl.KeyN):
		a.regenerate()
	case rl.IsKeyPressed(rl.KeyC):
		a.mode, a.input = inputArray, ""
	case rl.IsKeyPressed(rl.KeyT) && a.info.Search:
		a.mode, a.input = inputTarget, ""
	case rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd):
		a.changeSpeed(-1)
	case rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract):
		a.changeSpeed(1)
	case rl.IsKeyPressed(rl.KeyL):
		a.language = highlight.NextLanguage(a.language)
	case rl.IsKeyPressed(rl.KeyLeftBracket):
		a.size = clampSize(a.size - sizeStep)
		a.regenerate()
	case rl.IsKeyPressed(rl.KeyRightBracket):
		a.size = clampSize(a.size + sizeStep)
		a.regenerate()
	case rl.IsKeyPressed(rl.KeyR):
		a.ctrl.Reset()
		a.resetMetrics()
	}
}

func (a *App) updateInput() {
	// the key that opened the prompt is queued too; letters never pass
	for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
		if (c >= '0' && c <= '9') || c == '-' || (a.mode == inputArray && (c == ',' || c == ' ')) {
			a.input += string(c)
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace) && len(a.input) > 0:
		a.input = a.input[:len(a.input)-1]
	case rl.IsKeyPressed(rl.KeyEscape):
		a.mode, a.input = inputNone, ""
	case rl.IsKeyPressed(rl.KeyEnter):
		a.commitInput()
		a.mode, a.input = inputNone, ""
	}
}

func (a *App) commitInput() {
	switch a.mode {
	case inputArray:
		values, err := sequence.Parse(a.input)
		if err != nil {
			a.notice = err.Error()
			return
		}
		if len(values) > maxSize {
			values = values[:maxSize]
		}
		a.replace(values)
		a.size = clampSize(len(values))
	case inputTarget:
		v, err := strconv.Atoi(strings.TrimSpace(a.input))
		if err != nil {
			a.notice = "target must be a whole number"
			return
		}
		a.target = v
		a.notice = ""
	}
}

func (a *App) start() {
	if st := a.ctrl.State(); st == session.Running || st == session.Paused {
		return
	}
	a.notice = ""
	if a.info.RequiresSorted && !a.ctrl.IsSorted() {
		a.replace(a.ctrl.Values())
	}
	a.resetMetrics()
	err := a.ctrl.Start(a.info.ID, algo.Params{Target: a.target})
	if err != nil && !errors.Is(err, session.ErrBusy) {
		a.notice = err.Error()
	}
}

func (a *App) replace(values []int) {
	if a.info.RequiresSorted {
		values = sequence.Sorted(values)
	}
	if err := a.ctrl.NewSequence(values); err != nil {
		a.notice = err.Error()
		return
	}
	a.resetMetrics()
	a.notice = ""
}

func (a *App) regenerate() {
	a.replace(sequence.Random(a.rng, a.size, a.cfg.MaxValue))
}

func (a *App) changeSpeed(dir int) {
	cur := a.ctrl.Speed()
	idx := len(speeds) - 1
	for i, s := range speeds {
		if s >= cur {
			idx = i
			break
		}
	}
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= len(speeds) {
		idx = len(speeds) - 1
	}
	if err := a.ctrl.SetSpeed(speeds[idx]); err != nil {
		a.notice = err.Error()
	}
}

func (a *App) resetMetrics() {
	a.metrics.Reset()
	a.history.Reset()
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		v := a.frame.Snapshot()
		a.drawBars(v)
		a.drawCode(v)
		a.DrawHUD(v)
		a.DrawTelemetry()
	}

	rl.EndDrawing()
}
