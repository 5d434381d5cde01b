package service

import (
	"sync"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
)

// FavoriteHub fans favorites changes out to subscribers of the same scope.
// Publish never blocks: each subscriber holds at most the latest list.
type FavoriteHub struct {
	mu     sync.Mutex
	subs   map[string]map[chan domain.FavoriteSet]struct{}
	closed bool
}

func NewFavoriteHub() *FavoriteHub {
	return &FavoriteHub{subs: make(map[string]map[chan domain.FavoriteSet]struct{})}
}

// Subscribe registers a listener for scope. The returned cancel func closes
// the channel and must be called once the listener is done.
func (h *FavoriteHub) Subscribe(scope string) (<-chan domain.FavoriteSet, func()) {
	ch := make(chan domain.FavoriteSet, 1)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	if h.subs[scope] == nil {
		h.subs[scope] = make(map[chan domain.FavoriteSet]struct{})
	}
	h.subs[scope][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[scope][ch]; !ok {
				return
			}
			delete(h.subs[scope], ch)
			if len(h.subs[scope]) == 0 {
				delete(h.subs, scope)
			}
			close(ch)
		})
	}
	return ch, cancel
}

func (h *FavoriteHub) Publish(scope string, set domain.FavoriteSet) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[scope] {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- set.Clone():
		default:
		}
	}
}

func (h *FavoriteHub) Subscribers(scope string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[scope])
}

// Close ends every subscription. Later subscribers get a closed channel.
func (h *FavoriteHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for scope, chans := range h.subs {
		for ch := range chans {
			close(ch)
		}
		delete(h.subs, scope)
	}
}
