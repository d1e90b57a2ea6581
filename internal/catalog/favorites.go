package catalog

import (
	"sort"
	"sync"
)

// Favorites is a process-scoped set of product ids. It is never persisted.
type Favorites struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewFavorites creates an empty favorites set.
func NewFavorites() *Favorites {
	return &Favorites{ids: make(map[string]struct{})}
}

// Toggle flips membership of id and returns whether it is now a favorite.
func (f *Favorites) Toggle(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.ids[id]; ok {
		delete(f.ids, id)
		return false
	}
	f.ids[id] = struct{}{}
	return true
}

// Contains reports whether id is a favorite.
func (f *Favorites) Contains(id string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	_, ok := f.ids[id]
	return ok
}

// List returns the favorite ids in sorted order.
func (f *Favorites) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]string, 0, len(f.ids))
	for id := range f.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
