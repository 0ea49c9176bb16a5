package frame

import (
	"context"
	"testing"

	"github.com/san-kum/algoviz/internal/algo"
	"github.com/san-kum/algoviz/internal/sequence"
)

func TestFrame_TracksRun(t *testing.T) {
	store := sequence.New([]int{3, 1, 2})
	f := New()

	env := algo.NewEnv(store, nil)
	env.Renderer = f
	env.Code = f
	env.Narrator = f

	r, err := algo.NewRegistry().Get("insertion", algo.Params{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := algo.Execute(context.Background(), r, env); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	v := f.Snapshot()
	got := v.Values()
	want := store.Values()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame values %v differ from store %v", got, want)
		}
	}
	for i, s := range v.Sorted {
		if !s {
			t.Errorf("index %d not marked sorted", i)
		}
	}
	if len(v.Active) != 0 {
		t.Errorf("active marks left after run: %v", v.Active)
	}
	if v.Message != "Array is sorted!" {
		t.Errorf("message = %q", v.Message)
	}
}

func TestFrame_ItemsKeepOriginIDs(t *testing.T) {
	for _, id := range []string{"bubble", "insertion", "merge", "heap"} {
		store := sequence.New([]int{4, 2, 2, 3, 1})
		f := New()
		env := algo.NewEnv(store, nil)
		env.Renderer = f

		r, err := algo.NewRegistry().Get(id, algo.Params{})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := algo.Execute(context.Background(), r, env); err != nil {
			t.Fatalf("%s: run failed: %v", id, err)
		}

		got, want := f.Snapshot().Items, store.Items()
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: index %d is %+v in the frame, %+v in the store", id, i, got[i], want[i])
			}
		}
	}
}

func TestFrame_SnapshotIsCopy(t *testing.T) {
	f := New()
	f.Render([]sequence.Item{{Value: 1}, {Value: 2}})
	f.SetActive(0, 1)

	v := f.Snapshot()
	v.Items[0].Value = 99
	v.Active[0] = 7

	again := f.Snapshot()
	if again.Items[0].Value != 1 || again.Active[0] != 0 {
		t.Error("snapshot shares memory with the frame")
	}
	if !again.IsActive(1) || again.IsActive(5) {
		t.Error("IsActive mismatch")
	}
}

func TestFrame_IgnoresOutOfRange(t *testing.T) {
	f := New()
	f.Render([]sequence.Item{{Value: 1}})
	f.MarkSorted(4)
	f.UpdateValue(-1, 3)
	f.ColorRange(-2, 9, algo.ColorMerge)

	v := f.Snapshot()
	if v.Colors[0] != algo.ColorMerge {
		t.Errorf("color = %v", v.Colors[0])
	}
	if v.Items[0].Value != 1 {
		t.Errorf("value changed to %d", v.Items[0].Value)
	}
}

func TestFrame_RenderResetsMarks(t *testing.T) {
	f := New()
	f.Render([]sequence.Item{{Value: 1}, {Value: 2}})
	f.MarkSorted(0)
	f.ColorRange(0, 1, algo.ColorFound)
	before := f.Snapshot().Version

	f.Render([]sequence.Item{{Value: 5}})
	v := f.Snapshot()
	if len(v.Sorted) != 1 || v.Sorted[0] {
		t.Errorf("sorted marks survived render: %v", v.Sorted)
	}
	if v.Colors[0] != algo.ColorNone {
		t.Errorf("color survived render: %v", v.Colors[0])
	}
	if v.Version <= before {
		t.Error("version did not advance")
	}
}
