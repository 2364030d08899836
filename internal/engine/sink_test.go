package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domeballhq/match-engine/internal/model"
)

func TestChannelSink_DropsWhenFull(t *testing.T) {
	s := NewChannelSink(2)

	require.NoError(t, s.Push(model.MatchUpdate{Tick: 1}))
	require.NoError(t, s.Push(model.MatchUpdate{Tick: 2}))
	assert.ErrorIs(t, s.Push(model.MatchUpdate{Tick: 3}), ErrSinkFull)

	got := <-s.Updates()
	assert.Equal(t, 1, got.Tick)
	require.NoError(t, s.Push(model.MatchUpdate{Tick: 4}))
}

func TestChannelSink_CloseStopsConsumer(t *testing.T) {
	s := NewChannelSink(4)
	require.NoError(t, s.Push(model.MatchUpdate{Tick: 1}))
	s.Close()

	// Pushes after close are silently ignored.
	assert.NoError(t, s.Push(model.MatchUpdate{Tick: 2}))

	var ticks []int
	for u := range s.Updates() {
		ticks = append(ticks, u.Tick)
	}
	assert.Equal(t, []int{1}, ticks)
}
