package service

import (
	"context"
	"sync"

	"github.com/domeballhq/match-engine/internal/model"
)

// liveMatch fans one paced simulation out to any number of stream
// subscribers. Publishing never blocks: a viewer that stops draining its
// channel loses updates, not the match.
type liveMatch struct {
	mu      sync.Mutex
	subs    map[int]chan model.MatchUpdate
	nextSub int
	cancel  context.CancelFunc
	done    bool
}

func (lm *liveMatch) publish(update model.MatchUpdate) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	for _, ch := range lm.subs {
		select {
		case ch <- update:
		default: // slow viewer, drop
		}
	}
}

func (lm *liveMatch) subscribe() (<-chan model.MatchUpdate, func()) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	id := lm.nextSub
	lm.nextSub++
	ch := make(chan model.MatchUpdate, 64)
	if lm.done {
		close(ch)
		return ch, func() {}
	}
	lm.subs[id] = ch
	return ch, func() {
		lm.mu.Lock()
		defer lm.mu.Unlock()
		if _, ok := lm.subs[id]; ok {
			delete(lm.subs, id)
			close(ch)
		}
	}
}

func (lm *liveMatch) finish() {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	lm.done = true
	for id, ch := range lm.subs {
		delete(lm.subs, id)
		close(ch)
	}
}

// liveHub tracks paced matches currently in flight.
type liveHub struct {
	mu      sync.RWMutex
	matches map[int64]*liveMatch
}

func newLiveHub() *liveHub {
	return &liveHub{matches: make(map[int64]*liveMatch)}
}

func (h *liveHub) open(id int64, cancel context.CancelFunc) *liveMatch {
	lm := &liveMatch{subs: make(map[int]chan model.MatchUpdate), cancel: cancel}
	h.mu.Lock()
	h.matches[id] = lm
	h.mu.Unlock()
	return lm
}

func (h *liveHub) get(id int64) (*liveMatch, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	lm, ok := h.matches[id]
	return lm, ok
}

func (h *liveHub) finish(id int64) {
	h.mu.Lock()
	lm, ok := h.matches[id]
	delete(h.matches, id)
	h.mu.Unlock()
	if ok {
		lm.finish()
	}
}
