package viz

import (
	"strings"
)

// Braille cells hold 2x4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas packs bars into braille cells so arrays wider than the terminal
// still get one column per element.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in dot coordinates, (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Column fills dot column x from the bottom up to height dots.
func (c *Canvas) Column(x, height int) {
	bottom := c.Height*4 - 1
	for y := bottom; y > bottom-height && y >= 0; y-- {
		c.Set(x, y)
	}
}

// Bars draws one dot column per value, scaled so maxValue fills the
// canvas. Values beyond the canvas width are clipped.
func (c *Canvas) Bars(values []int, maxValue int) {
	if maxValue < 1 {
		maxValue = 1
	}
	dots := c.Height * 4
	for i, v := range values {
		h := v * dots / maxValue
		if h == 0 && v > 0 {
			h = 1
		}
		c.Column(i, h)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(string(row))
	}
	return b.String()
}
