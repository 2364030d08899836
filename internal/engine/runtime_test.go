package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domeballhq/match-engine/internal/model"
)

func TestStartingStamina(t *testing.T) {
	p := testPlayer(1, "A", model.RoleRunner)
	p.DailyStamina = 80
	p.Attributes.Stamina = 50

	assert.Equal(t, 100.0, startingStamina(p, model.KindExhibition), "exhibitions always start fresh")
	assert.InDelta(t, 80*(0.6+0.4*0.5), startingStamina(p, model.KindLeague), 1e-9)

	p.DailyStamina = 100
	p.Attributes.Stamina = 100
	assert.Equal(t, 100.0, startingStamina(p, model.KindLeague), "capped at 100")
}

func TestNewTeamRuntime_FieldsStartersInRosterOrder(t *testing.T) {
	snap := testTeam("Dome Jackals", 300)
	tr, err := newTeamRuntime(model.SideHome, snap, model.KindLeague, DefaultTuning())
	require.NoError(t, err)

	onField := map[int64]bool{}
	for _, p := range tr.onFieldPlayers() {
		onField[p.id()] = true
	}
	// First passer, first two runners, first three blockers.
	assert.Equal(t, map[int64]bool{301: true, 303: true, 304: true, 306: true, 307: true, 308: true}, onField)
}

func TestNewTeamRuntime_SkipsInjuredStarters(t *testing.T) {
	snap := testTeam("Dome Jackals", 300)
	snap.Players[0].InjuryStatus = model.InjuryModerate // first passer out

	tr, err := newTeamRuntime(model.SideHome, snap, model.KindLeague, DefaultTuning())
	require.NoError(t, err)

	var passer *playerRuntime
	for _, p := range tr.onFieldPlayers() {
		if p.snap.Role == model.RolePasser {
			passer = p
		}
	}
	require.NotNil(t, passer)
	assert.Equal(t, int64(302), passer.id(), "backup passer starts instead")
}

func TestNewTeamRuntime_FailsWithoutQuota(t *testing.T) {
	snap := testTeam("Dome Jackals", 300)
	snap.Players[0].InjuryStatus = model.InjurySevere
	snap.Players[1].InjuryStatus = model.InjurySevere // both passers out

	_, err := newTeamRuntime(model.SideHome, snap, model.KindLeague, DefaultTuning())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passer")
}

func TestNextSubstitute_RoundRobin(t *testing.T) {
	snap := testTeam("Dome Jackals", 300)
	tr, err := newTeamRuntime(model.SideHome, snap, model.KindLeague, DefaultTuning())
	require.NoError(t, err)

	// Bench runner is 305; bench blocker is 309.
	first := tr.nextSubstitute(model.RoleRunner, 50)
	require.NotNil(t, first)
	assert.Equal(t, int64(305), first.id())

	// Once 305 is on field, nobody else of the role is benched.
	first.onField = true
	assert.Nil(t, tr.nextSubstitute(model.RoleRunner, 50))

	// A tired bench player is not eligible.
	blocker := tr.byID[309]
	blocker.stamina = 40
	assert.Nil(t, tr.nextSubstitute(model.RoleBlocker, 50))
	blocker.stamina = 80
	assert.Equal(t, int64(309), tr.nextSubstitute(model.RoleBlocker, 50).id())
}

func TestBenchEligible(t *testing.T) {
	p := &playerRuntime{stamina: 80, injury: model.InjuryHealthy}
	assert.True(t, p.benchEligible(50))

	p.onField = true
	assert.False(t, p.benchEligible(50), "on-field players are not bench options")

	p.onField = false
	p.injury = model.InjuryModerate
	assert.False(t, p.benchEligible(50))

	p.injury = model.InjuryMinor
	assert.True(t, p.benchEligible(50), "minor knocks may still come on")

	p.stamina = 50
	assert.False(t, p.benchEligible(50), "threshold is exclusive")
}
