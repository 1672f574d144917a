package repos

import (
	"context"
	"sync"

	"localcart/internal/gateway"
)

// hub tracks live queries per collection.
type hub struct {
	repo *DocumentRepo

	mu   sync.Mutex
	subs map[string]map[*subscription]struct{}
}

func newHub(repo *DocumentRepo) *hub {
	return &hub{repo: repo, subs: make(map[string]map[*subscription]struct{})}
}

type subscription struct {
	hub   *hub
	q     gateway.Query
	fn    func(gateway.Snapshot)
	dirty chan struct{}
	done  chan struct{}
	once  sync.Once
}

func (h *hub) subscribe(ctx context.Context, q gateway.Query, fn func(gateway.Snapshot)) *subscription {
	s := &subscription{
		hub:   h,
		q:     q,
		fn:    fn,
		dirty: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	s.dirty <- struct{}{} // initial snapshot

	h.mu.Lock()
	set, ok := h.subs[q.Collection]
	if !ok {
		set = make(map[*subscription]struct{})
		h.subs[q.Collection] = set
	}
	set[s] = struct{}{}
	h.mu.Unlock()

	go s.run(ctx)
	return s
}

func (h *hub) notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs[collection] {
		// pending refresh already queued: the next query sees this write too
		select {
		case s.dirty <- struct{}{}:
		default:
		}
	}
}

func (h *hub) remove(s *subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[s.q.Collection]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, s.q.Collection)
		}
	}
}

func (s *subscription) run(ctx context.Context) {
	defer s.Cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-s.dirty:
		}
		docs, err := s.hub.repo.Query(ctx, s.q)
		select {
		case <-s.done:
			return
		default:
		}
		if ctx.Err() != nil {
			return
		}
		s.fn(gateway.Snapshot{Documents: docs, Err: err})
	}
}

func (s *subscription) Cancel() {
	s.once.Do(func() {
		close(s.done)
		s.hub.remove(s)
	})
}
