package trace

import (
	"bytes"
	"context"
	"encoding/csv"
	"path/filepath"
	"testing"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/sequence"
)

func record(t *testing.T, id string, values []int, p algo.Params) *Trace {
	t.Helper()
	store := sequence.New(values)
	rec := NewRecorder()
	env := algo.NewEnv(store, nil)
	env.AddObserver(rec)

	r, err := algo.NewRegistry().Get(id, p)
	if err != nil {
		t.Fatal(err)
	}
	res, err := algo.Execute(context.Background(), r, env)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return rec.Build(values, store.Values(), res, nil)
}

func TestRecorder_LinearSearch(t *testing.T) {
	tr := record(t, "linear", []int{7, 2, 9, 4}, algo.Params{Target: 9})

	if tr.Outcome != "found" || tr.Index != 2 {
		t.Errorf("expected found at 2, got %s at %d", tr.Outcome, tr.Index)
	}

	var probes int
	for _, e := range tr.Events {
		if e.Kind == "compare" {
			probes++
		}
	}
	if probes != 3 {
		t.Errorf("expected 3 probes, got %d", probes)
	}
	if tr.Events[len(tr.Events)-1].Color != "found" {
		t.Errorf("expected final found color event, got %+v", tr.Events[len(tr.Events)-1])
	}
}

func TestWriteCSV(t *testing.T) {
	tr := record(t, "bubble", []int{2, 1}, algo.Params{})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, tr); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv unreadable: %v", err)
	}
	if len(rows) != len(tr.Events)+1 {
		t.Fatalf("expected %d rows, got %d", len(tr.Events)+1, len(rows))
	}
	if rows[0][0] != "step" || rows[1][1] != "compare" {
		t.Errorf("unexpected rows: %v", rows[:2])
	}
}

func TestSaveAndReadJSON(t *testing.T) {
	tr := record(t, "merge", []int{4, 2, 2, 3}, algo.Params{})
	path := filepath.Join(t.TempDir(), "merge.json")

	if err := Save(path, FormatJSON, tr); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if got.Algorithm != "merge" {
		t.Errorf("expected algorithm merge, got %s", got.Algorithm)
	}
	if len(got.Output) != 4 || got.Output[0] != 2 || got.Output[3] != 4 {
		t.Errorf("unexpected output %v", got.Output)
	}
	if len(got.Events) != len(tr.Events) {
		t.Errorf("expected %d events, got %d", len(tr.Events), len(got.Events))
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, "xml", &Trace{}); err == nil {
		t.Error("expected error for unknown format")
	}
}
