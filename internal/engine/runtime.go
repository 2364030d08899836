package engine

import (
	"fmt"

	"github.com/domeballhq/match-engine/internal/model"
)

// playerRuntime is the mutable in-match state of one player. Owned
// exclusively by the match instance; summarized into the result at the end.
type playerRuntime struct {
	snap    model.PlayerSnapshot
	stamina float64 // in-match stamina, 0-100
	injury  string
	minutes float64
	fatigue float64 // cumulative involvement cost, for injury scaling
	onField bool
}

func (p *playerRuntime) id() int64 { return p.snap.ID }

// selectable reports whether the player may act as an event participant.
// A severely injured player never takes part in anything again.
func (p *playerRuntime) selectable() bool {
	return p.onField && p.injury != model.InjurySevere
}

// benchEligible reports whether a bench player may come on for a swap.
func (p *playerRuntime) benchEligible(threshold float64) bool {
	if p.onField {
		return false
	}
	if p.injury == model.InjuryModerate || p.injury == model.InjurySevere {
		return false
	}
	return p.stamina > threshold
}

// teamRuntime is the mutable in-match state of one side: roster order is
// preserved from the snapshot, which also fixes the substitution queue.
type teamRuntime struct {
	side       string
	snap       model.TeamSnapshot
	players    []*playerRuntime
	byID       map[int64]*playerRuntime
	subCursor  map[string]int // round-robin position per role
	score      int
	driveYards int
	situation  string
}

// startingStamina derives the opening in-match stamina level. Exhibition
// matches always start fresh; otherwise the persistent daily level is
// scaled by the stamina attribute.
func startingStamina(p model.PlayerSnapshot, kind string) float64 {
	if kind == model.KindExhibition {
		return 100
	}
	s := float64(p.DailyStamina) * (0.6 + 0.4*float64(p.Attributes.Stamina)/100)
	if s > 100 {
		s = 100
	}
	if s < 0 {
		s = 0
	}
	return s
}

// newTeamRuntime builds the runtime and fields the starting lineup in
// roster order: the first healthy-enough players of each role.
func newTeamRuntime(side string, snap model.TeamSnapshot, kind string, tune Tuning) (*teamRuntime, error) {
	tr := &teamRuntime{
		side:      side,
		snap:      snap,
		byID:      make(map[int64]*playerRuntime, len(snap.Players)),
		subCursor: map[string]int{model.RolePasser: 0, model.RoleRunner: 0, model.RoleBlocker: 0},
		situation: model.SituationNormal,
	}
	for _, ps := range snap.Players {
		pr := &playerRuntime{
			snap:    ps,
			stamina: startingStamina(ps, kind),
			injury:  ps.InjuryStatus,
		}
		if pr.injury == "" {
			pr.injury = model.InjuryHealthy
		}
		tr.players = append(tr.players, pr)
		tr.byID[ps.ID] = pr
	}

	for _, role := range []string{model.RolePasser, model.RoleRunner, model.RoleBlocker} {
		needed := tune.roleQuota(role)
		for _, pr := range tr.players {
			if needed == 0 {
				break
			}
			if pr.snap.Role == role && pr.injury != model.InjurySevere && pr.injury != model.InjuryModerate {
				pr.onField = true
				needed--
			}
		}
		if needed > 0 {
			return nil, fmt.Errorf("%s team cannot field %d %ss", side, tune.roleQuota(role), role)
		}
	}
	return tr, nil
}

func (tr *teamRuntime) onFieldPlayers() []*playerRuntime {
	out := make([]*playerRuntime, 0, 8)
	for _, p := range tr.players {
		if p.onField {
			out = append(out, p)
		}
	}
	return out
}

func (tr *teamRuntime) selectableByRole(role string) []*playerRuntime {
	out := make([]*playerRuntime, 0, 4)
	for _, p := range tr.players {
		if p.selectable() && p.snap.Role == role {
			out = append(out, p)
		}
	}
	return out
}

func (tr *teamRuntime) selectableOnField() []*playerRuntime {
	out := make([]*playerRuntime, 0, 8)
	for _, p := range tr.players {
		if p.selectable() {
			out = append(out, p)
		}
	}
	return out
}

// nextSubstitute picks the next eligible bench player of the given role,
// round-robin by roster queue order. Returns nil when nobody can come on.
func (tr *teamRuntime) nextSubstitute(role string, threshold float64) *playerRuntime {
	n := len(tr.players)
	start := tr.subCursor[role]
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		p := tr.players[idx]
		if p.snap.Role == role && p.benchEligible(threshold) {
			tr.subCursor[role] = (idx + 1) % n
			return p
		}
	}
	return nil
}
