package highlight

import (
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"gotest.tools/v3/golden"
)

func TestRender_MarksExactlyRequestedLines(t *testing.T) {
	l := Listing{Lines: []string{"a", "b", "c", "d"}}
	got := Render(l, NewPoint(1, 3), Prefix("*"))
	want := "a\n*b\nc\n*d"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestLipglossStyler(t *testing.T) {
	mark := LipglossStyler(lipgloss.NewStyle().Transform(strings.ToUpper))
	l := Listing{Lines: []string{"i++;", "swap(a, b);"}}
	got := Render(l, NewPoint(1), mark)
	want := "i++;\nSWAP(A, B);"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRender_EmptyPointClears(t *testing.T) {
	l := Listing{Lines: []string{"x", "y"}}
	if got := Render(l, nil, Prefix("*")); got != "x\ny" {
		t.Errorf("Render with no point = %q", got)
	}
}

func TestRender_OutOfRangeIgnored(t *testing.T) {
	l := Listing{Lines: []string{"x", "y"}}
	if got := Render(l, NewPoint(-1, 7), Prefix("*")); got != "x\ny" {
		t.Errorf("Render with out of range point = %q", got)
	}
}

func TestNewPoint_SortsAndDedupes(t *testing.T) {
	p := NewPoint(5, 2, 5, 1)
	if !reflect.DeepEqual(p, Point{1, 2, 5}) {
		t.Errorf("NewPoint = %v", p)
	}
	if !p.Contains(2) || p.Contains(3) {
		t.Error("Contains mismatch")
	}
}

func TestResolve(t *testing.T) {
	l, err := Lookup("bubble", LangJava)
	if err != nil {
		t.Fatal(err)
	}
	p := l.Resolve(Compare, Swap, "nonexistent")
	if !reflect.DeepEqual(p, Point{4, 5, 6, 7}) {
		t.Errorf("Resolve = %v", p)
	}
}

func TestListings_LabelsMatchAcrossLanguages(t *testing.T) {
	for algorithm, byLang := range listings {
		var want []string
		for _, lang := range Languages() {
			l, ok := byLang[lang]
			if !ok {
				t.Errorf("%s: missing %s listing", algorithm, lang)
				continue
			}
			var keys []string
			for k, lines := range l.Points {
				keys = append(keys, k)
				for _, line := range lines {
					if line < 0 || line >= len(l.Lines) {
						t.Errorf("%s/%s: label %s points at line %d of %d", algorithm, lang, k, line, len(l.Lines))
					}
				}
			}
			sort.Strings(keys)
			if want == nil {
				want = keys
			} else if !reflect.DeepEqual(keys, want) {
				t.Errorf("%s/%s labels %v, want %v", algorithm, lang, keys, want)
			}
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, err := Lookup("bogo", LangCpp); err == nil {
		t.Error("expected error for unknown algorithm")
	}
	if _, err := Lookup("bubble", "cobol"); err == nil {
		t.Error("expected error for unknown language")
	}
}

func TestNextLanguage(t *testing.T) {
	if NextLanguage(LangCpp) != LangJava {
		t.Error("cpp should cycle to java")
	}
	if NextLanguage(LangJava) != LangCpp {
		t.Error("java should cycle to cpp")
	}
	if NextLanguage("") != LangCpp {
		t.Error("unknown language should reset to cpp")
	}
}

func TestRenderPadded_Aligns(t *testing.T) {
	l := Listing{Lines: []string{"a", "b"}}
	got := RenderPadded(l, NewPoint(0), "> ")
	for _, line := range strings.Split(got, "\n") {
		if len(line) != 3 {
			t.Errorf("line %q not padded to gutter width", line)
		}
	}
}

func TestRender_BubbleCompareGolden(t *testing.T) {
	l, err := Lookup("bubble", LangCpp)
	if err != nil {
		t.Fatal(err)
	}
	got := Render(l, l.Resolve(Compare), Prefix("> "))
	golden.Assert(t, got, "bubble_cpp_compare.golden")
}
