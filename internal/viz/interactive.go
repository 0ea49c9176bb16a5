package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/algoviz/internal/algo"
)

type screen int

const (
	screenMenu screen = iota
	screenRun
)

// App is the full program: an algorithm menu in front of the visualizer.
type App struct {
	screen screen
	cursor int
	infos  []algo.Info
	opts   Options
	live   Model
	err    error

	width, height int
}

func NewApp(opts Options) App {
	if opts.Registry == nil {
		opts.Registry = algo.NewRegistry()
	}
	opts.Standalone = false
	return App{
		screen: screenMenu,
		infos:  opts.Registry.List(),
		opts:   opts,
	}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.screen == screenRun {
			return a.forward(msg)
		}
		return a, nil
	case BackMsg:
		a.screen = screenMenu
		return a, nil
	case tea.KeyMsg:
		if a.screen == screenMenu {
			return a.menuKey(msg)
		}
	}
	if a.screen == screenRun {
		return a.forward(msg)
	}
	return a, nil
}

func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.live.Update(msg)
	a.live = next.(Model)
	return a, cmd
}

func (a App) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.infos)-1 {
			a.cursor++
		}
	case "enter", " ":
		live, err := NewModel(a.infos[a.cursor].ID, a.opts)
		if err != nil {
			a.err = err
			return a, nil
		}
		a.err = nil
		live.width, live.height = a.width, a.height
		a.live = live
		a.screen = screenRun
		return a, live.Init()
	}
	return a, nil
}

// Close stops a visualizer left running when the program exits.
func (a App) Close() {
	if a.screen == screenRun {
		a.live.ctrl.Close()
	}
}

func (a App) View() string {
	if a.screen == screenRun {
		return a.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n" + indent + title.Render("ALGOVIZ") + "\n")
	b.WriteString(indent + dim.Render("sorting and searching, step by step") + "\n")
	b.WriteString(indent + separator(40) + "\n\n")

	for i, info := range a.infos {
		kind := "sort"
		if info.Search {
			kind = "search"
		}
		name := fmt.Sprintf("%-16s", info.Title)
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("%s%s %s %s  %s\n", indent,
				lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(name),
				dim.Render(fmt.Sprintf("%-7s", kind)),
				lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(info.Description)))
		} else {
			b.WriteString(fmt.Sprintf("%s  %s %s\n", indent,
				lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(name),
				dimmer.Render(kind)))
		}
	}

	if a.err != nil {
		b.WriteString("\n" + indent + errStyle.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n" + indent + hints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

// RunInteractive starts the menu-driven program.
func RunInteractive(opts Options) error {
	final, err := tea.NewProgram(NewApp(opts), tea.WithAltScreen()).Run()
	if app, ok := final.(App); ok {
		app.Close()
	}
	return err
}

// Run opens the visualizer on one algorithm without the menu.
func Run(id string, opts Options) error {
	opts.Standalone = true
	m, err := NewModel(id, opts)
	if err != nil {
		return err
	}
	defer m.ctrl.Close()
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
