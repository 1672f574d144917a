package store

import (
	"context"
	"sync"

	"localcart/internal/domain"
)

// Collection is an observable, wholesale-replaced list of listings.
type Collection struct {
	mu       sync.RWMutex
	items    []domain.Listing
	watchers map[int]func([]domain.Listing)
	nextID   int
	gen      int

	loadOnce sync.Once
	loaded   chan struct{}
}

func newCollection() *Collection {
	return &Collection{
		watchers: make(map[int]func([]domain.Listing)),
		loaded:   make(chan struct{}),
	}
}

// Items returns a copy of the current contents.
func (c *Collection) Items() []domain.Listing {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.copyLocked()
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Watch registers fn to run after every change. The returned func unregisters it.
func (c *Collection) Watch(fn func([]domain.Listing)) (cancel func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.watchers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.watchers, id)
		c.mu.Unlock()
	}
}

// Loaded is closed once the first snapshot has been applied.
func (c *Collection) Loaded() <-chan struct{} { return c.loaded }

// WaitLoaded blocks until the first snapshot or ctx is done.
func (c *Collection) WaitLoaded(ctx context.Context) error {
	select {
	case <-c.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retire drops snapshots from any live query older than gen.
func (c *Collection) retire(gen int) {
	c.mu.Lock()
	if gen > c.gen {
		c.gen = gen
	}
	c.mu.Unlock()
}

// replace installs items unless the query that produced them (gen) has been
// superseded. The check and the swap happen under one lock.
func (c *Collection) replace(gen int, items []domain.Listing) bool {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return false
	}
	c.items = items
	snap, fns := c.copyLocked(), c.watchersLocked()
	c.mu.Unlock()

	c.loadOnce.Do(func() { close(c.loaded) })
	for _, fn := range fns {
		fn(snap)
	}
	return true
}

func (c *Collection) remove(id string) bool {
	c.mu.Lock()
	idx := -1
	for i, l := range c.items {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return false
	}
	next := make([]domain.Listing, 0, len(c.items)-1)
	next = append(next, c.items[:idx]...)
	next = append(next, c.items[idx+1:]...)
	c.items = next
	snap, fns := c.copyLocked(), c.watchersLocked()
	c.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
	return true
}

func (c *Collection) copyLocked() []domain.Listing {
	out := make([]domain.Listing, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection) watchersLocked() []func([]domain.Listing) {
	fns := make([]func([]domain.Listing), 0, len(c.watchers))
	for _, fn := range c.watchers {
		fns = append(fns, fn)
	}
	return fns
}
