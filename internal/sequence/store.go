package sequence

import "sync"

// Item is one bar: its value and the position it held in the input the
// sequence was built from.
type Item struct {
	Value int
	ID    int
}

// Store owns the array every runner step mutates.
type Store struct {
	mu    sync.RWMutex
	items []Item
}

func New(values []int) *Store {
	s := &Store{}
	s.items = itemsFrom(values)
	return s
}

func itemsFrom(values []int) []Item {
	items := make([]Item, len(values))
	for i, v := range values {
		items[i] = Item{Value: v, ID: i}
	}
	return items
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) At(i int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items[i].Value
}

func (s *Store) Item(i int) Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items[i]
}

func (s *Store) Set(i int, it Item) {
	s.mu.Lock()
	s.items[i] = it
	s.mu.Unlock()
}

func (s *Store) Swap(i, j int) {
	s.mu.Lock()
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.mu.Unlock()
}

// Values returns a copy of the current values in index order.
func (s *Store) Values() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.items))
	for i, it := range s.items {
		out[i] = it.Value
	}
	return out
}

func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) IsSorted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := 1; i < len(s.items); i++ {
		if s.items[i-1].Value > s.items[i].Value {
			return false
		}
	}
	return true
}

// Replace drops the current contents and renumbers item IDs from zero.
func (s *Store) Replace(values []int) {
	items := itemsFrom(values)
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}
