// Package trace records the step events of one run and writes them out as
// JSON or CSV.
package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/san-kum/algoviz/internal/algo"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type Event struct {
	Step  uint64 `json:"step"`
	Kind  string `json:"kind"`
	I     int    `json:"i"`
	J     int    `json:"j"`
	Value int    `json:"value"`
	Color string `json:"color,omitempty"`
}

type Trace struct {
	Algorithm   string             `json:"algorithm"`
	Input       []int              `json:"input"`
	Output      []int              `json:"output"`
	Outcome     string             `json:"outcome"`
	Index       int                `json:"index"`
	Steps       uint64             `json:"steps"`
	Comparisons uint64             `json:"comparisons"`
	Swaps       uint64             `json:"swaps"`
	Writes      uint64             `json:"writes"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
	Events      []Event            `json:"events"`
}

// Recorder is an algo.Observer that keeps every event.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OnEvent(ev algo.Event) {
	e := Event{
		Step:  ev.Step,
		Kind:  ev.Kind.String(),
		I:     ev.I,
		J:     ev.J,
		Value: ev.Value,
	}
	if ev.Kind == algo.KindRangeColor {
		e.Color = ev.Color.String()
	}
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Build assembles a trace from a finished run.
func (r *Recorder) Build(input, output []int, res algo.Result, metrics map[string]float64) *Trace {
	return &Trace{
		Algorithm:   res.Algorithm,
		Input:       input,
		Output:      output,
		Outcome:     res.Outcome.String(),
		Index:       res.Index,
		Steps:       res.Stats.Steps,
		Comparisons: res.Stats.Comparisons,
		Swaps:       res.Stats.Swaps,
		Writes:      res.Stats.Writes,
		Metrics:     metrics,
		Events:      r.Events(),
	}
}

func WriteJSON(w io.Writer, t *Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

// WriteCSV writes one row per event. Run level fields are not included.
func WriteCSV(w io.Writer, t *Trace) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"step", "kind", "i", "j", "value", "color"}); err != nil {
		return err
	}
	for _, e := range t.Events {
		row := []string{
			strconv.FormatUint(e.Step, 10),
			e.Kind,
			strconv.Itoa(e.I),
			strconv.Itoa(e.J),
			strconv.Itoa(e.Value),
			e.Color,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func Write(w io.Writer, format string, t *Trace) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, t)
	case FormatCSV:
		return WriteCSV(w, t)
	default:
		return fmt.Errorf("unknown trace format: %s", format)
	}
}

// Save writes t to path, or to stdout when path is empty or "-".
func Save(path, format string, t *Trace) error {
	if path == "" || path == "-" {
		return Write(os.Stdout, format, t)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return Write(file, format, t)
}

// ReadJSON loads a trace written by WriteJSON.
func ReadJSON(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Trace
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse trace %s: %w", path, err)
	}
	return &t, nil
}
