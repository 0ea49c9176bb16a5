// Package tui draws a running algorithm straight to a plain terminal with
// ANSI escapes. It is the non-interactive counterpart of package viz.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/highlight"
)

const (
	width       = 70
	height      = 16
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	marker      = "> "
)

// LiveRenderer redraws the whole screen from a frame. It observes run
// events and redraws at most frameRate times a second; Flush forces a
// redraw.
type LiveRenderer struct {
	out       io.Writer
	frame     *frame.Frame
	title     string
	language  string
	frameRate int

	mu        sync.Mutex
	lastFrame time.Time
	step      uint64
	canvas    [][]rune
}

func NewLiveRenderer(f *frame.Frame, title, language string, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       os.Stdout,
		frame:     f,
		title:     title,
		language:  language,
		frameRate: frameRate,
		canvas:    canvas,
	}
}

// SetOutput redirects drawing, mainly for tests.
func (r *LiveRenderer) SetOutput(w io.Writer) {
	r.mu.Lock()
	r.out = w
	r.mu.Unlock()
}

func (r *LiveRenderer) OnEvent(ev algo.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.step = ev.Step
	if r.frameRate > 0 && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.draw(r.frame.Snapshot())
}

func (r *LiveRenderer) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFrame = time.Now()
	r.draw(r.frame.Snapshot())
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// barRune picks the glyph for bar i. Active beats color, color beats the
// sorted mark.
func barRune(v frame.View, i int) rune {
	if v.IsActive(i) {
		return '▒'
	}
	switch v.Colors[i] {
	case algo.ColorFound:
		return '◆'
	case algo.ColorMiss, algo.ColorFixed:
		return '░'
	case algo.ColorDivide, algo.ColorMerge:
		return '▚'
	}
	if v.Sorted[i] {
		return '█'
	}
	return '▓'
}

func (r *LiveRenderer) drawBars(v frame.View) {
	n := len(v.Items)
	if n == 0 {
		return
	}
	maxVal := 1
	for _, it := range v.Items {
		if it.Value > maxVal {
			maxVal = it.Value
		}
	}

	bw := width / n
	if bw > 3 {
		bw = 3
	}
	if bw < 1 {
		bw = 1
	}
	for i, it := range v.Items {
		c := barRune(v, i)
		bh := it.Value * height / maxVal
		if bh == 0 && it.Value > 0 {
			bh = 1
		}
		for dx := 0; dx < bw; dx++ {
			if bw > 1 && dx == bw-1 {
				continue
			}
			for y := height - 1; y >= height-bh; y-- {
				r.set(i*bw+dx, y, c)
			}
		}
	}
}

func (r *LiveRenderer) draw(v frame.View) {
	r.clear()
	r.drawBars(v)

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  step=%d\n", r.title, r.step))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteString("\n")
	}
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	if len(v.Items) <= 20 {
		b.WriteString("  " + strings.Trim(fmt.Sprint(v.Values()), "[]") + "\n")
	}

	if l, err := highlight.Lookup(r.title, r.language); err == nil {
		b.WriteString("\n")
		for _, line := range strings.Split(highlight.RenderPadded(l, l.Resolve(v.Labels...), marker), "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	if v.Message != "" {
		b.WriteString("\n  " + v.Message + "\n")
	}

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

var _ algo.Observer = (*LiveRenderer)(nil)
