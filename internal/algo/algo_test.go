package algo

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/algoviz/internal/highlight"
	"github.com/san-kum/algoviz/internal/sequence"
)

var sortIDs = []string{"bubble", "selection", "insertion", "merge", "quick", "heap"}

func run(t *testing.T, id string, values []int, p Params) (Result, *Env, error) {
	t.Helper()
	r, err := NewRegistry().Get(id, p)
	require.NoError(t, err)
	env := NewEnv(sequence.New(values), nil)
	res, err := Execute(context.Background(), r, env)
	return res, env, err
}

func TestSorts_PermutationAndOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, id := range sortIDs {
		for trial := 0; trial < 20; trial++ {
			values := sequence.Random(rng, 1+rng.Intn(40), 15)
			res, env, err := run(t, id, values, Params{})
			require.NoError(t, err, id)
			assert.Equal(t, Sorted, res.Outcome)
			assert.Equal(t, sequence.Sorted(values), env.Store.Values(), "%s on %v", id, values)
		}
	}
}

type passRecorder struct {
	store  *sequence.Store
	passes [][]int
}

func (p *passRecorder) OnEvent(ev Event) {
	if ev.Kind == KindMarkSorted {
		p.passes = append(p.passes, p.store.Values())
	}
}

func TestBubble_PassStates(t *testing.T) {
	r, err := NewRegistry().Get("bubble", Params{})
	require.NoError(t, err)

	env := NewEnv(sequence.New([]int{5, 3, 8, 1}), nil)
	rec := &passRecorder{store: env.Store}
	env.AddObserver(rec)

	_, err = Execute(context.Background(), r, env)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(rec.passes), 3)
	assert.Equal(t, []int{3, 5, 1, 8}, rec.passes[0])
	assert.Equal(t, []int{3, 1, 5, 8}, rec.passes[1])
	assert.Equal(t, []int{1, 3, 5, 8}, rec.passes[2])
	assert.Equal(t, []int{1, 3, 5, 8}, env.Store.Values())
}

func TestMerge_Stable(t *testing.T) {
	_, env, err := run(t, "merge", []int{4, 2, 2, 3}, Params{})
	require.NoError(t, err)

	items := env.Store.Items()
	assert.Equal(t, []int{2, 2, 3, 4}, env.Store.Values())
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 2, items[1].ID)
}

func TestMerge_StableOnRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	values := sequence.Random(rng, 60, 5)
	_, env, err := run(t, "merge", values, Params{})
	require.NoError(t, err)

	items := env.Store.Items()
	assert.True(t, sort.SliceIsSorted(items, func(i, j int) bool {
		if items[i].Value != items[j].Value {
			return items[i].Value < items[j].Value
		}
		return items[i].ID < items[j].ID
	}))
}

func TestInsertionAndBubble_Stable(t *testing.T) {
	for _, id := range []string{"bubble", "insertion"} {
		_, env, err := run(t, id, []int{4, 2, 2, 3}, Params{})
		require.NoError(t, err)
		items := env.Store.Items()
		assert.Equal(t, 1, items[0].ID, id)
		assert.Equal(t, 2, items[1].ID, id)
	}
}

func TestLinearSearch_Found(t *testing.T) {
	res, _, err := run(t, "linear", []int{7, 2, 9, 4}, Params{Target: 9})
	require.NoError(t, err)
	assert.Equal(t, Found, res.Outcome)
	assert.Equal(t, 2, res.Index)
	assert.Equal(t, uint64(3), res.Stats.Steps)
	assert.Equal(t, uint64(3), res.Stats.Comparisons)
}

func TestLinearSearch_NotFound(t *testing.T) {
	res, _, err := run(t, "linear", []int{7, 2, 9, 4}, Params{Target: 5})
	require.NoError(t, err)
	assert.Equal(t, NotFound, res.Outcome)
	assert.Equal(t, uint64(4), res.Stats.Steps)
}

func TestBinarySearch(t *testing.T) {
	values := make([]int, 100)
	for i := range values {
		values[i] = i * 2
	}
	limit := uint64(math.Floor(math.Log2(float64(len(values))))) + 1

	for k, v := range values {
		res, _, err := run(t, "binary", values, Params{Target: v})
		require.NoError(t, err)
		assert.Equal(t, Found, res.Outcome)
		assert.Equal(t, k, res.Index)
		assert.LessOrEqual(t, res.Stats.Steps, limit)
	}

	for _, missing := range []int{-1, 3, 101, 500} {
		res, _, err := run(t, "binary", values, Params{Target: missing})
		require.NoError(t, err)
		assert.Equal(t, NotFound, res.Outcome)
		assert.LessOrEqual(t, res.Stats.Steps, limit)
	}
}

func TestBinarySearch_RejectsUnsorted(t *testing.T) {
	res, _, err := run(t, "binary", []int{7, 2, 9, 4}, Params{Target: 9})
	require.ErrorIs(t, err, ErrUnsorted)
	assert.Zero(t, res.Stats.Steps)

	var runErr *RunError
	require.True(t, errors.As(err, &runErr))
	assert.Equal(t, "binary", runErr.Algorithm)
}

func TestDegenerateInputs(t *testing.T) {
	for _, id := range sortIDs {
		for _, values := range [][]int{{}, {42}} {
			res, env, err := run(t, id, values, Params{})
			require.NoError(t, err)
			assert.Equal(t, Sorted, res.Outcome)
			assert.Zero(t, res.Stats.Steps, id)
			assert.Equal(t, values, env.Store.Values())
		}
	}

	for _, id := range []string{"linear", "binary"} {
		res, _, err := run(t, id, []int{}, Params{Target: 1})
		require.NoError(t, err)
		assert.Equal(t, NotFound, res.Outcome)
		assert.Zero(t, res.Stats.Steps)

		res, _, err = run(t, id, []int{1}, Params{Target: 1})
		require.NoError(t, err)
		assert.Equal(t, Found, res.Outcome)
		assert.Equal(t, 0, res.Index)
		assert.Equal(t, uint64(1), res.Stats.Steps)
	}
}

type cancelAfter struct {
	n      int
	cancel context.CancelFunc
}

func (c *cancelAfter) Wait(ctx context.Context) error {
	c.n--
	if c.n == 0 {
		c.cancel()
	}
	return ctx.Err()
}

func TestCancellation(t *testing.T) {
	for _, id := range sortIDs {
		ctx, cancel := context.WithCancel(context.Background())
		r, err := NewRegistry().Get(id, Params{})
		require.NoError(t, err)

		env := NewEnv(sequence.New([]int{9, 8, 7, 6, 5, 4, 3, 2, 1}), &cancelAfter{n: 3, cancel: cancel})
		res, err := Execute(ctx, r, env)
		cancel()

		require.ErrorIs(t, err, ErrCanceled, id)
		require.ErrorIs(t, err, context.Canceled, id)
		assert.Equal(t, uint64(2), res.Stats.Steps, id)
		assert.ElementsMatch(t, []int{9, 8, 7, 6, 5, 4, 3, 2, 1}, env.Store.Values(), id)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("bogo", Params{})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	_, err = reg.Info("bogo")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	infos := reg.List()
	require.Len(t, infos, 8)
	assert.Equal(t, "bubble", infos[0].ID)

	info, err := reg.Info("binary")
	require.NoError(t, err)
	assert.True(t, info.Search)
	assert.True(t, info.RequiresSorted)

	info, err = reg.Info("linear")
	require.NoError(t, err)
	assert.True(t, info.Search)
	assert.False(t, info.RequiresSorted)
}

type labelRecorder struct{ labels []string }

func (l *labelRecorder) Show(labels ...string) { l.labels = append(l.labels, labels...) }

func TestRunners_LabelsExistInListings(t *testing.T) {
	reg := NewRegistry()
	for _, info := range reg.List() {
		r, err := reg.Get(info.ID, Params{Target: 3})
		require.NoError(t, err)

		values := []int{5, 1, 4, 3, 2, 3}
		if info.RequiresSorted {
			values = sequence.Sorted(values)
		}
		env := NewEnv(sequence.New(values), nil)
		rec := &labelRecorder{}
		env.Code = rec
		_, err = Execute(context.Background(), r, env)
		require.NoError(t, err)
		require.NotEmpty(t, rec.labels)

		listing := lookupListing(t, info.ID)
		for _, label := range rec.labels {
			assert.Contains(t, listing, label, "%s emits %q", info.ID, label)
		}
	}
}

func lookupListing(t *testing.T, id string) map[string][]int {
	t.Helper()
	l, err := highlight.Lookup(id, highlight.LangCpp)
	require.NoError(t, err)
	return l.Points
}

// eventLog keeps every event with the value at ev.I when it fired.
type eventLog struct {
	store  *sequence.Store
	events []Event
	values []int
}

func (l *eventLog) OnEvent(ev Event) {
	l.events = append(l.events, ev)
	v := -1
	if ev.I >= 0 && ev.I < l.store.Len() {
		v = l.store.At(ev.I)
	}
	l.values = append(l.values, v)
}

func runLogged(t *testing.T, id string, values []int) (Result, *eventLog) {
	t.Helper()
	r, err := NewRegistry().Get(id, Params{})
	require.NoError(t, err)
	env := NewEnv(sequence.New(values), nil)
	log := &eventLog{store: env.Store}
	env.AddObserver(log)
	res, err := Execute(context.Background(), r, env)
	require.NoError(t, err)
	return res, log
}

func inversions(values []int) uint64 {
	var n uint64
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			if values[i] > values[j] {
				n++
			}
		}
	}
	return n
}

func TestSelection_SwapsOnlyWhenMinMoves(t *testing.T) {
	cases := []struct {
		input []int
		swaps uint64
	}{
		{[]int{1, 2, 3}, 0},
		{[]int{2, 1, 3}, 1},
		{[]int{3, 1, 2}, 2},
		{[]int{4, 4, 4, 4}, 0},
	}
	for _, tc := range cases {
		res, log := runLogged(t, "selection", tc.input)
		assert.Equal(t, tc.swaps, res.Stats.Swaps, "input %v", tc.input)
		for _, ev := range log.events {
			if ev.Kind == KindSwap {
				assert.NotEqual(t, ev.I, ev.J, "self swap on %v", tc.input)
			}
		}
	}
}

func TestInsertion_StepPerCompareShiftAndPlacement(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	inputs := [][]int{
		{5, 3, 8, 1},
		{1, 2, 3, 4},
		{4, 3, 2, 1},
		sequence.Random(rng, 25, 40),
	}
	for _, input := range inputs {
		res, _ := runLogged(t, "insertion", input)
		placements := uint64(len(input) - 1)
		assert.Equal(t, inversions(input)+placements, res.Stats.Writes, "input %v", input)
		assert.Equal(t, res.Stats.Comparisons+res.Stats.Writes, res.Stats.Steps, "input %v", input)
		assert.Zero(t, res.Stats.Swaps)
	}

	res, _ := runLogged(t, "insertion", []int{5, 3, 8, 1})
	assert.Equal(t, uint64(5), res.Stats.Comparisons)
	assert.Equal(t, uint64(12), res.Stats.Steps)
}

func TestQuick_PivotLandsAtSortedRank(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	inputs := [][]int{
		{5, 3, 8, 1},
		{2, 2, 1, 1, 3},
		sequence.Random(rng, 30, 20),
	}
	for _, input := range inputs {
		sorted := sequence.Sorted(input)
		_, log := runLogged(t, "quick", input)

		marks := 0
		for k, ev := range log.events {
			if ev.Kind != KindMarkSorted {
				continue
			}
			marks++
			assert.Equal(t, sorted[ev.I], log.values[k], "index %d marked early on %v", ev.I, input)
		}
		assert.GreaterOrEqual(t, marks, len(input))
	}
}

func TestHeap_FixesTailInOrder(t *testing.T) {
	input := []int{4, 9, 2, 7, 5, 1, 8}
	_, log := runLogged(t, "heap", input)

	var fixed []int
	for _, ev := range log.events {
		if ev.Kind == KindRangeColor && ev.Color == ColorFixed {
			assert.Equal(t, ev.I, ev.J)
			fixed = append(fixed, ev.I)
		}
	}
	assert.Equal(t, []int{6, 5, 4, 3, 2, 1}, fixed)
}
