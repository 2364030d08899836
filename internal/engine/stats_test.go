package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domeballhq/match-engine/internal/model"
)

// Replaying a finished match's event log through a fresh reducer must
// reproduce every counter exactly. Minutes are clock state and are copied
// across before comparison.
func TestAggregator_ReplayReconciles(t *testing.T) {
	cfg := testConfig(1234, model.KindLeague)
	eng, err := New(cfg, Options{})
	require.NoError(t, err)
	res := eng.Run(context.Background())

	replay := NewAggregator(cfg)
	for _, ev := range res.Events {
		replay.Accumulate(ev)
	}
	for _, line := range res.PlayerStats {
		replay.SetMinutes(line.PlayerID, line.MinutesPlayed)
	}
	lines, home, away := replay.Finalize()

	assert.Equal(t, res.PlayerStats, lines)
	assert.Equal(t, res.HomeStats, home)
	assert.Equal(t, res.AwayStats, away)
}

func TestAggregator_SeedsWholeRoster(t *testing.T) {
	cfg := testConfig(1, model.KindLeague)
	lines, _, _ := NewAggregator(cfg).Finalize()

	require.Len(t, lines, len(cfg.Home.Players)+len(cfg.Away.Players))
	assert.Equal(t, cfg.Home.Players[0].ID, lines[0].PlayerID, "roster order preserved")
	for _, l := range lines {
		assert.Equal(t, model.InjuryHealthy, l.FinalInjury)
		assert.Zero(t, l.PassAttempts)
	}
}

func TestAggregator_PassEvents(t *testing.T) {
	a := NewAggregator(testConfig(1, model.KindLeague))

	a.Accumulate(model.MatchEvent{
		Type: model.EventPassComplete, Team: model.SideHome,
		PlayerID: 101, TargetID: 103, Yards: 12,
	})
	a.Accumulate(model.MatchEvent{
		Type: model.EventPassIncomplete, Team: model.SideHome,
		PlayerID: 101, TargetID: 104,
	})

	lines, home, _ := a.Finalize()
	byID := map[int64]model.PlayerStatLine{}
	for _, l := range lines {
		byID[l.PlayerID] = l
	}

	passer := byID[101]
	assert.Equal(t, 2, passer.PassAttempts)
	assert.Equal(t, 1, passer.PassCompletions)
	assert.Equal(t, 12, passer.PassYards)

	receiver := byID[103]
	assert.Equal(t, 1, receiver.Catches)
	assert.Equal(t, 12, receiver.CatchYards)

	assert.Equal(t, 2, home.PassAttempts)
	assert.Equal(t, 1, home.PassCompletions)
	assert.Equal(t, 12, home.PassYards)
	assert.Equal(t, 12, home.TotalYards)
	assert.Equal(t, 2, home.PossessionTicks)
}

func TestAggregator_TurnoversCreditBothSides(t *testing.T) {
	a := NewAggregator(testConfig(1, model.KindLeague))

	// Away defender 203 strips home carrier 103.
	a.Accumulate(model.MatchEvent{
		Type: model.EventTurnover, Team: model.SideAway,
		PlayerID: 203, OpponentID: 103, Reason: model.TurnoverStrip,
	})
	// Away defender 206 forces a fumble on 104.
	a.Accumulate(model.MatchEvent{
		Type: model.EventTurnover, Team: model.SideAway,
		PlayerID: 206, OpponentID: 104, Reason: model.TurnoverFumble,
	})

	lines, home, away := a.Finalize()
	byID := map[int64]model.PlayerStatLine{}
	for _, l := range lines {
		byID[l.PlayerID] = l
	}

	assert.Equal(t, 1, byID[203].Strips)
	assert.Equal(t, 0, byID[206].Strips, "fumble is not a strip")
	assert.Equal(t, 1, byID[103].FumblesLost)
	assert.Equal(t, 1, byID[104].FumblesLost)
	assert.Equal(t, 2, away.TurnoversForced)
	assert.Equal(t, 2, home.TurnoversLost)
}

func TestAggregator_InjuryKeepsWorstSeverity(t *testing.T) {
	a := NewAggregator(testConfig(1, model.KindLeague))

	a.Accumulate(model.MatchEvent{Type: model.EventInjury, Team: model.SideHome, PlayerID: 103, Severity: model.InjuryModerate})
	a.Accumulate(model.MatchEvent{Type: model.EventInjury, Team: model.SideHome, PlayerID: 103, Severity: model.InjuryMinor})

	lines, home, _ := a.Finalize()
	for _, l := range lines {
		if l.PlayerID == 103 {
			assert.Equal(t, model.InjuryModerate, l.FinalInjury)
		}
	}
	assert.Equal(t, 2, home.Injuries)
}
