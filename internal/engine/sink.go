package engine

import (
	"errors"

	"github.com/domeballhq/match-engine/internal/model"
)

// Sink receives ordered match updates after every tick. Delivery is
// best-effort: a failing sink is logged and skipped, never allowed to
// stall or alter the simulation.
type Sink interface {
	Push(update model.MatchUpdate) error
}

// NopSink discards every update. Used for bulk/offline simulation.
type NopSink struct{}

func (NopSink) Push(model.MatchUpdate) error { return nil }

// ErrSinkFull is returned by ChannelSink when the consumer is not keeping
// up and the buffer is exhausted.
var ErrSinkFull = errors.New("broadcast sink buffer full")

// ChannelSink bridges the engine to a channel consumer (SSE handler, test
// harness). Pushes never block: a full buffer drops the update.
type ChannelSink struct {
	ch     chan model.MatchUpdate
	closed bool
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 256
	}
	return &ChannelSink{ch: make(chan model.MatchUpdate, buffer)}
}

// Updates exposes the consumer side of the sink.
func (s *ChannelSink) Updates() <-chan model.MatchUpdate { return s.ch }

func (s *ChannelSink) Push(update model.MatchUpdate) error {
	if s.closed {
		return nil
	}
	select {
	case s.ch <- update:
		return nil
	default:
		return ErrSinkFull
	}
}

// Close releases the consumer. Only the producing side may call it, after
// the final update.
func (s *ChannelSink) Close() {
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
