package engine

import "github.com/domeballhq/match-engine/internal/model"

// Per-tick baseline stamina decay before any involvement costs.
const baseTickDecay = 0.25

// roleDecayScale makes heavier roles tire slightly differently: runners
// burn hot, blockers pace themselves.
func roleDecayScale(role string) float64 {
	switch role {
	case model.RoleRunner:
		return 1.1
	case model.RoleBlocker:
		return 0.9
	default:
		return 1.0
	}
}

// applyTickUpkeep accrues minutes for everyone on field and applies the
// baseline stamina decay. Runs once at the start of every tick, before
// events, so substitutions made afterwards take effect the next tick and
// minutes never double-count.
func (e *Engine) applyTickUpkeep() {
	tickMinutes := 1 / float64(e.tune.TicksPerMinute)
	for _, tr := range []*teamRuntime{e.home, e.away} {
		for _, p := range tr.onFieldPlayers() {
			p.minutes += tickMinutes
			e.drainStamina(p, baseTickDecay)
		}
	}
}

// noteInvolvement charges a player's stamina for taking part in an event,
// scaled by role and the event's intensity.
func (e *Engine) noteInvolvement(p *playerRuntime, intensity float64) {
	e.drainStamina(p, intensity*roleDecayScale(p.snap.Role))
	p.fatigue += intensity
}

func (e *Engine) drainStamina(p *playerRuntime, amount float64) {
	p.stamina -= amount
	if p.stamina < 0 {
		p.stamina = 0
	}
	if p.stamina < 0 || p.stamina > 100 {
		e.fail("player %d stamina out of range: %f", p.id(), p.stamina)
	}
}

// checkSubstitutions sweeps both teams after a tick's events and swaps out
// anyone past the stamina threshold or carrying a moderate/severe injury.
// The replacement is the next eligible bench player of the same role,
// round-robin by roster order. With nobody eligible the player stays on
// under penalty.
func (e *Engine) checkSubstitutions() []model.MatchEvent {
	var events []model.MatchEvent
	for _, tr := range []*teamRuntime{e.home, e.away} {
		for _, p := range tr.onFieldPlayers() {
			reason := substitutionReason(p, e.tune.SubStaminaThreshold)
			if reason == "" {
				continue
			}
			sub := tr.nextSubstitute(p.snap.Role, e.tune.SubStaminaThreshold)
			if sub == nil {
				continue
			}
			p.onField = false
			sub.onField = true

			ev := e.newEvent(model.EventSubstitution, tr.side)
			ev.PlayerID = p.id()
			ev.TargetID = sub.id()
			ev.Reason = reason
			events = append(events, ev)
		}
	}
	return events
}

func substitutionReason(p *playerRuntime, threshold float64) string {
	if p.injury == model.InjuryModerate || p.injury == model.InjurySevere {
		return model.SubReasonInjury
	}
	if p.stamina <= threshold {
		return model.SubReasonStamina
	}
	return ""
}
