package viz

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/highlight"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/sequence"
	"github.com/san-kum/algoviz/internal/session"
)

const (
	MinSize  = 5
	MaxSize  = 100
	sizeStep = 5

	barHeight    = 14
	maxBarCols   = 40
	historyLimit = 600
	indent       = "   "
)

// speeds are the delays +/- step through, fastest first.
var speeds = []int{1, 5, 10, 25, 50, 100, 200, 400, 800}

type TickMsg time.Time

// BackMsg asks the menu to take over again.
type BackMsg struct{}

type inputMode int

const (
	inputNone inputMode = iota
	inputArray
	inputTarget
)

type Options struct {
	Config   *config.Config
	Registry *algo.Registry
	Cues     algo.Cues
	Logger   *slog.Logger

	// Standalone makes esc quit instead of returning to the menu.
	Standalone bool
}

// runStatus follows the session through its listener hook.
type runStatus struct{ state atomic.Int32 }

func (s *runStatus) StateChanged(_, to session.State) { s.state.Store(int32(to)) }

func (s *runStatus) Load() session.State { return session.State(s.state.Load()) }

// Model is the visualizer for one algorithm. The run itself happens in the
// session goroutine; the model only sends commands and redraws from the
// frame on every tick.
type Model struct {
	info     algo.Info
	ctrl     *session.Controller
	status   *runStatus
	frame    *frame.Frame
	metrics  *metrics.Set
	history  *metrics.History
	rng      *rand.Rand
	language string

	size, maxValue int
	target         int

	mode   inputMode
	input  string
	notice string

	standalone    bool
	width, height int
}

func NewModel(id string, opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	reg := opts.Registry
	if reg == nil {
		reg = algo.NewRegistry()
	}
	info, err := reg.Info(id)
	if err != nil {
		return Model{}, err
	}

	rng := cfg.Rand()
	values, err := cfg.Values(rng)
	if err != nil {
		return Model{}, err
	}
	if info.RequiresSorted {
		values = sequence.Sorted(values)
	}

	f := frame.New()
	set := metrics.Standard()
	hist := metrics.NewHistory(historyLimit)
	status := &runStatus{}
	ctrl := session.New(values, session.Options{
		Registry:  reg,
		Renderer:  f,
		Cues:      opts.Cues,
		Code:      f,
		Narrator:  f,
		Observers: []algo.Observer{set, hist},
		Listeners: []session.Listener{status},
		SpeedMs:   cfg.SpeedMs,
		Logger:    opts.Logger,
	})

	return Model{
		info:       info,
		ctrl:       ctrl,
		status:     status,
		frame:      f,
		metrics:    set,
		history:    hist,
		rng:        rng,
		language:   cfg.Language,
		size:       clampSize(cfg.Size),
		maxValue:   cfg.MaxValue,
		target:     cfg.Target,
		standalone: opts.Standalone,
	}, nil
}

func clampSize(n int) int {
	if n < MinSize {
		return MinSize
	}
	if n > MaxSize {
		return MaxSize
	}
	return n
}

// Controller exposes the session, mainly for tests and shutdown.
func (m Model) Controller() *session.Controller { return m.ctrl }

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != inputNone {
			m.inputKey(msg)
			return m, nil
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Close()
		return m, tea.Quit
	case "esc":
		m.ctrl.Close()
		if m.standalone {
			return m, tea.Quit
		}
		return m, func() tea.Msg { return BackMsg{} }
	case "s":
		m.start()
	case " ":
		m.ctrl.PauseResume()
	case "n":
		m.regenerate()
	case "c":
		m.mode, m.input = inputArray, ""
	case "t":
		if m.info.Search {
			m.mode, m.input = inputTarget, strconv.Itoa(m.target)
		}
	case "+", "=":
		m.changeSpeed(-1)
	case "-", "_":
		m.changeSpeed(1)
	case "l":
		m.language = highlight.NextLanguage(m.language)
	case "[":
		m.resize(-sizeStep)
	case "]":
		m.resize(sizeStep)
	case "r":
		m.ctrl.Reset()
		m.resetMetrics()
		m.notice = ""
	}
	return m, nil
}

func (m *Model) inputKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.commitInput()
		m.mode, m.input = inputNone, ""
	case tea.KeyEsc:
		m.mode, m.input = inputNone, ""
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	default:
		s := msg.String()
		if len(s) != 1 {
			return
		}
		c := s[0]
		if (c >= '0' && c <= '9') || c == '-' || (m.mode == inputArray && (c == ',' || c == ' ')) {
			m.input += s
		}
	}
}

func (m *Model) commitInput() {
	switch m.mode {
	case inputArray:
		values, err := sequence.Parse(m.input)
		if err != nil {
			m.notice = err.Error()
			return
		}
		if len(values) > MaxSize {
			values = values[:MaxSize]
		}
		m.replace(values)
		m.size = clampSize(len(values))
	case inputTarget:
		v, err := strconv.Atoi(strings.TrimSpace(m.input))
		if err != nil {
			m.notice = "target must be a whole number"
			return
		}
		m.target = v
		m.notice = ""
	}
}

func (m *Model) busy() bool {
	st := m.status.Load()
	return st == session.Running || st == session.Paused
}

func (m *Model) start() {
	if m.busy() {
		return
	}
	m.notice = ""
	if m.info.RequiresSorted && !m.ctrl.IsSorted() {
		m.replace(m.ctrl.Values())
	}
	m.resetMetrics()

	err := m.ctrl.Start(m.info.ID, algo.Params{Target: m.target})
	if err != nil && !errors.Is(err, session.ErrBusy) {
		m.notice = err.Error()
	}
}

// replace installs values as the new sequence, sorted first for searches
// that need it.
func (m *Model) replace(values []int) {
	if m.info.RequiresSorted {
		values = sequence.Sorted(values)
	}
	if err := m.ctrl.NewSequence(values); err != nil {
		m.notice = err.Error()
		return
	}
	m.resetMetrics()
	m.notice = ""
}

func (m *Model) regenerate() {
	m.replace(sequence.Random(m.rng, m.size, m.maxValue))
}

func (m *Model) resize(delta int) {
	m.size = clampSize(m.size + delta)
	m.regenerate()
}

// changeSpeed moves dir steps along speeds; negative is faster.
func (m *Model) changeSpeed(dir int) {
	cur := m.ctrl.Speed()
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
	if err := m.ctrl.SetSpeed(speeds[idx]); err != nil {
		m.notice = err.Error()
	}
}

func (m *Model) resetMetrics() {
	m.metrics.Reset()
	m.history.Reset()
}

func (m Model) View() string {
	v := m.frame.Snapshot()
	state := m.status.Load()
	icon, st := stateStyle(state)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n%s%s %s  %s  %s\n", indent,
		st.Render(icon), title.Render(strings.ToUpper(m.info.Title)),
		st.Render(state.String()), dim.Render(m.info.Description)))
	b.WriteString(indent + separator(60) + "\n\n")

	bars, code := m.viewBars(v), m.viewCode(v)
	if m.width == 0 || lipgloss.Width(bars)+lipgloss.Width(code)+2 <= m.width {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, bars, "  ", code))
	} else {
		b.WriteString(bars + "\n" + code)
	}
	b.WriteString("\n\n")

	if v.Message != "" {
		b.WriteString(indent + white.Render(v.Message) + "\n\n")
	}
	b.WriteString(m.viewStats())

	if chart := m.viewChart(); chart != "" {
		b.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}

	switch m.mode {
	case inputArray:
		b.WriteString("\n" + indent + cyan.Render("array: ") + white.Render(m.input+"_") + "\n")
	case inputTarget:
		b.WriteString("\n" + indent + cyan.Render("target: ") + white.Render(m.input+"_") + "\n")
	}
	if m.notice != "" {
		b.WriteString("\n" + indent + errStyle.Render(m.notice) + "\n")
	}

	pairs := []string{"s", "start", "space", "pause", "n", "new", "c", "custom"}
	if m.info.Search {
		pairs = append(pairs, "t", "target")
	}
	pairs = append(pairs, "+/-", "speed", "l", "lang", "[/]", "size", "r", "reset", "esc", "menu", "q", "quit")
	b.WriteString("\n" + indent + hints(pairs...) + "\n")
	return b.String()
}

func (m Model) viewBars(v frame.View) string {
	n := len(v.Items)
	if n == 0 {
		return indent + dim.Render("(empty)")
	}

	maxVal := 1
	for _, it := range v.Items {
		if it.Value > maxVal {
			maxVal = it.Value
		}
	}

	if n > maxBarCols {
		c := NewCanvas((n+1)/2, barHeight/2)
		c.Bars(v.Values(), maxVal)
		lines := strings.Split(c.String(), "\n")
		for i := range lines {
			lines[i] = indent + cyan.Render(lines[i])
		}
		return strings.Join(lines, "\n")
	}

	cell := 2
	if n <= 20 {
		cell = 4
	}
	heights := make([]int, n)
	for i, it := range v.Items {
		heights[i] = it.Value * barHeight / maxVal
		if heights[i] == 0 && it.Value > 0 {
			heights[i] = 1
		}
	}

	var b strings.Builder
	for row := barHeight; row >= 1; row-- {
		b.WriteString(indent)
		for i := range v.Items {
			if heights[i] >= row {
				b.WriteString(barStyle(v, i).Render(strings.Repeat("█", cell-1)))
				b.WriteString(" ")
			} else {
				b.WriteString(strings.Repeat(" ", cell))
			}
		}
		b.WriteString("\n")
	}
	if cell == 4 {
		b.WriteString(indent)
		for _, it := range v.Items {
			b.WriteString(dim.Render(fmt.Sprintf("%-4d", it.Value)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewCode(v frame.View) string {
	l, err := highlight.Lookup(m.info.ID, m.language)
	if err != nil {
		return ""
	}
	body := highlight.Render(l, l.Resolve(v.Labels...), highlight.LipglossStyler(codeLine))
	return panel.Render(dim.Render(m.language) + "\n" + body)
}

func (m Model) viewStats() string {
	vals := m.metrics.Values()
	row := func(label, value string) string {
		return indent + metricLabel.Render(label) + metricValue.Render(value) + "\n"
	}

	var b strings.Builder
	b.WriteString(row("size", strconv.Itoa(len(m.ctrl.Items()))))
	b.WriteString(row("speed", fmt.Sprintf("%dms", m.ctrl.Speed())))
	if m.info.Search {
		b.WriteString(row("target", strconv.Itoa(m.target)))
	}
	for _, name := range m.metrics.Names() {
		b.WriteString(row(name, formatMetric(vals[name])))
	}
	if res := m.ctrl.Result(); res != nil {
		b.WriteString(row("steps", strconv.FormatUint(res.Stats.Steps, 10)))
		outcome := res.Outcome.String()
		if res.Outcome == algo.Found {
			outcome = fmt.Sprintf("%s at %d", outcome, res.Index)
		}
		b.WriteString(row("outcome", outcome))
	}
	return b.String()
}

func formatMetric(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func (m Model) viewChart() string {
	series := m.history.Comparisons()
	if len(series) < 2 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Height(5),
		asciigraph.Width(40),
		asciigraph.Offset(len(indent)+3),
		asciigraph.Caption("comparisons per step"))
}
