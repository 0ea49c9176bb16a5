package gui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/frame"
	"github.com/san-kum/algoviz/internal/highlight"
	"github.com/san-kum/algoviz/internal/session"
)

// Layout of the run screen.
const (
	barsX, barsY = 30, 90
	barsW, barsH = 760, 440
	codeX, codeY = 820, 90
	lineH        = 22
)

func barColor(v frame.View, i int) rl.Color {
	if v.IsActive(i) {
		return ColActive
	}
	switch v.Colors[i] {
	case algo.ColorFound:
		return ColFound
	case algo.ColorMiss:
		return ColMiss
	case algo.ColorFixed, algo.ColorMerge:
		return ColMerge
	case algo.ColorDivide:
		return ColDivide
	}
	if v.Sorted[i] {
		return ColSorted
	}
	return ColBar
}

func (a *App) drawBars(v frame.View) {
	n := len(v.Items)
	rl.DrawRectangleLines(barsX-4, barsY-4, barsW+8, barsH+8, ColGrid)
	if n == 0 {
		a.drawText("empty array", barsX+10, barsY+10, 16, ColTextDim)
		return
	}

	maxVal := 1
	for _, it := range v.Items {
		if it.Value > maxVal {
			maxVal = it.Value
		}
	}

	slot := float32(barsW) / float32(n)
	gap := slot * 0.15
	if gap < 1 {
		gap = 0
	}
	for i, it := range v.Items {
		h := float32(it.Value) / float32(maxVal) * float32(barsH-20)
		if h < 2 && it.Value > 0 {
			h = 2
		}
		rect := rl.NewRectangle(barsX+float32(i)*slot, barsY+barsH-h, slot-gap, h)
		rl.DrawRectangleRec(rect, barColor(v, i))

		if n <= 30 {
			label := fmt.Sprint(it.Value)
			a.drawText(label, int(rect.X), barsY+barsH+8, 14, ColText)
		}
	}
}

func (a *App) drawCode(v frame.View) {
	l, err := highlight.Lookup(a.info.ID, a.language)
	if err != nil {
		return
	}
	a.drawText(a.language, codeX, codeY-30, 14, ColTextDim)
	p := l.Resolve(v.Labels...)
	for i, line := range l.Lines {
		y := codeY + i*lineH
		if p.Contains(i) {
			rl.DrawRectangle(codeX-6, int32(y-2), 440, lineH, ColGrid)
			a.drawText(line, codeX, y, 16, ColActive)
		} else {
			a.drawText(line, codeX, y, 16, ColText)
		}
	}
}

func (a *App) DrawHUD(v frame.View) {
	a.drawText("algoviz", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", strings.ToLower(a.info.Title)), 150, 34, 16, ColText)

	state := a.ctrl.State()
	col := ColSelect
	if state == session.Paused || state == session.Idle {
		col = ColTextDim
	}
	a.drawText(strings.ToUpper(state.String()), 1150, 30, 16, col)

	if v.Message != "" {
		a.drawText(v.Message, barsX, 565, 20, ColSelect)
	}

	vals := a.metrics.Values()
	x := codeX
	for _, name := range a.metrics.Names() {
		a.drawText(fmt.Sprintf("%s %.4g", name, vals[name]), x, 540, 14, ColAccent)
		x += 110
	}
	stats := fmt.Sprintf("size %d  speed %dms", len(v.Items), a.ctrl.Speed())
	if a.info.Search {
		stats += fmt.Sprintf("  target %d", a.target)
	}
	a.drawText(stats, codeX, 565, 14, ColText)

	switch a.mode {
	case inputArray:
		a.drawText("ARRAY: "+a.input+"_", codeX, 600, 18, ColSelect)
	case inputTarget:
		a.drawText("TARGET: "+a.input+"_", codeX, 600, 18, ColSelect)
	}
	if a.notice != "" {
		a.drawText(a.notice, codeX, 630, 14, ColMerge)
	}

	a.drawText("[S] START [SPACE] PAUSE [N] NEW [C] CUSTOM [T] TARGET [+/-] SPEED [L] LANG [[/]] SIZE [R] RESET [ESC] MENU [Q] QUIT", 30, 690, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 1200, 660, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots cumulative comparisons per step.
func (a *App) DrawTelemetry() {
	series := a.history.Comparisons()
	if len(series) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	maxVal := series[len(series)-1]
	if maxVal == 0 {
		maxVal = 1
	}

	points := make([]rl.Vector2, len(series))
	for i, val := range series {
		px := float32(rectX) + (float32(i)/float32(len(series)-1))*float32(width)
		py := float32(rectY+height) - float32(val/maxVal)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("cmp %.0f", series[len(series)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawMenu() {
	a.drawText("algoviz", 50, 50, 40, ColSelect)
	a.drawText("Select Algorithm", 50, 100, 16, ColTextDim)

	y := 160
	for i, info := range a.Infos {
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %-16s %s", info.Title, info.Description), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", info.Title), 50, y, 20, ColText)
		}
		y += 28
	}
	if a.notice != "" {
		a.drawText(a.notice, 50, y+20, 14, ColMerge)
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 850, 680, 14, ColTextDim)
}
