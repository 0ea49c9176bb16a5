package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Point is a set of line indices into a listing, kept sorted and unique.
type Point []int

func NewPoint(lines ...int) Point {
	if len(lines) == 0 {
		return nil
	}
	seen := make(map[int]bool, len(lines))
	p := make(Point, 0, len(lines))
	for _, l := range lines {
		if seen[l] {
			continue
		}
		seen[l] = true
		p = append(p, l)
	}
	sort.Ints(p)
	return p
}

func (p Point) Contains(line int) bool {
	i := sort.SearchInts(p, line)
	return i < len(p) && p[i] == line
}

// Listing is the fixed source text shown next to a running algorithm.
// Points maps a program point label to the lines it covers.
type Listing struct {
	Algorithm string
	Language  string
	Lines     []string
	Points    map[string][]int
}

// Resolve maps labels to the union of their lines. Unknown labels are
// ignored.
func (l Listing) Resolve(labels ...string) Point {
	var lines []int
	for _, label := range labels {
		lines = append(lines, l.Points[label]...)
	}
	return NewPoint(lines...)
}

// Styler decorates one highlighted line.
type Styler func(line string) string

// Prefix marks highlighted lines with marker.
func Prefix(marker string) Styler {
	return func(line string) string { return marker + line }
}

func LipglossStyler(style lipgloss.Style) Styler {
	return func(line string) string { return style.Render(line) }
}

// Render returns the listing with exactly the lines in p passed through
// mark. It has no state and does not touch the sequence.
func Render(l Listing, p Point, mark Styler) string {
	var b strings.Builder
	for i, line := range l.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if mark != nil && p.Contains(i) {
			b.WriteString(mark(line))
		} else {
			b.WriteString(line)
		}
	}
	return b.String()
}

// RenderPadded is Render for plain terminals: every line gets a gutter so
// highlighted and plain lines stay aligned.
func RenderPadded(l Listing, p Point, marker string) string {
	pad := strings.Repeat(" ", len(marker))
	var b strings.Builder
	for i, line := range l.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		if p.Contains(i) {
			b.WriteString(marker)
		} else {
			b.WriteString(pad)
		}
		b.WriteString(line)
	}
	return b.String()
}

// Lookup finds the listing for algorithm in language.
func Lookup(algorithm, language string) (Listing, error) {
	byLang, ok := listings[algorithm]
	if !ok {
		return Listing{}, fmt.Errorf("no listing for algorithm: %s", algorithm)
	}
	l, ok := byLang[language]
	if !ok {
		return Listing{}, fmt.Errorf("no %s listing for algorithm: %s", language, algorithm)
	}
	return l, nil
}

// Languages lists the listing languages in display order.
func Languages() []string {
	return []string{LangCpp, LangJava}
}

// NextLanguage cycles through Languages.
func NextLanguage(current string) string {
	langs := Languages()
	for i, l := range langs {
		if l == current {
			return langs[(i+1)%len(langs)]
		}
	}
	return langs[0]
}
