package engine

import (
	"math"

	"github.com/domeballhq/match-engine/internal/model"
)

func logistic(x float64) float64 { return 1 / (1 + math.Exp(-x)) }

// roleWeightedPower folds a player's effective attributes into a single
// contribution to the team's possession strength, weighted by role.
func roleWeightedPower(role string, a EffectiveAttributes) float64 {
	switch role {
	case model.RolePasser:
		return 0.5*a.Throwing + 0.3*a.Agility + 0.2*a.Speed
	case model.RoleRunner:
		return 0.45*a.Speed + 0.35*a.Agility + 0.2*a.Power
	default: // blocker
		return 0.6*a.Power + 0.25*a.Agility + 0.15*a.Speed
	}
}

// tickAttributes holds the effective attributes computed once per tick for
// every selectable on-field player.
type tickAttributes map[int64]EffectiveAttributes

func (e *Engine) computeTickAttributes(team, opp *teamRuntime, home bool) tickAttributes {
	ctx := modifierContext{team: team, opponent: opp, situation: team.situation, home: home, tune: e.tune}
	attrs := make(tickAttributes, 8)
	for _, p := range team.selectableOnField() {
		attrs[p.id()] = effectiveAttributes(p, ctx)
	}
	return attrs
}

func aggregatePower(team *teamRuntime, attrs tickAttributes) float64 {
	var sum float64
	for _, p := range team.selectableOnField() {
		sum += roleWeightedPower(p.snap.Role, attrs[p.id()])
	}
	return sum
}

// resolveTick runs one tick of the stochastic state machine and returns the
// events it produced, usually zero or one offensive chain. All sampling
// draws from the match's seeded stream, in a fixed order, so identical
// inputs replay identically.
func (e *Engine) resolveTick() []model.MatchEvent {
	homeAttrs := e.computeTickAttributes(e.home, e.away, true)
	awayAttrs := e.computeTickAttributes(e.away, e.home, false)

	// Possession is resampled every tick from the strength differential,
	// which produces natural swings instead of a fixed split.
	pHome := logistic((aggregatePower(e.home, homeAttrs) - aggregatePower(e.away, awayAttrs)) / 12)
	var offense, defense *teamRuntime
	var offAttrs, defAttrs tickAttributes
	if e.rng.Float64() < pHome {
		offense, defense = e.home, e.away
		offAttrs, defAttrs = homeAttrs, awayAttrs
	} else {
		offense, defense = e.away, e.home
		offAttrs, defAttrs = awayAttrs, homeAttrs
	}

	if e.rng.Float64() > e.tune.ActionRate {
		return nil // nothing happens this tick, teams reset
	}

	var events []model.MatchEvent
	switch e.sampleActionType(offense) {
	case model.EventPassComplete: // a pass attempt; outcome decided below
		events = e.resolvePass(offense, defense, offAttrs, defAttrs)
	case model.EventRun:
		events = e.resolveRun(offense, defense, offAttrs, defAttrs)
	default:
		events = e.resolveAdvance(offense, defense, offAttrs, defAttrs)
	}
	return events
}

// sampleActionType weighs advance/pass/run by role composition, tactical
// focus and the classified situation. Losing big pushes risk up, winning
// big pushes it down.
func (e *Engine) sampleActionType(offense *teamRuntime) string {
	advance, pass, run := 0.45, 0.25, 0.30

	passers := len(offense.selectableByRole(model.RolePasser))
	runners := len(offense.selectableByRole(model.RoleRunner))
	if passers == 0 {
		pass = 0
	}
	if runners == 0 {
		run = 0
	}

	switch offense.snap.Tactics.Focus {
	case model.FocusPassing:
		pass += 0.15
	case model.FocusRunning:
		run += 0.15
	case model.FocusDefensive:
		advance += 0.10
	}
	switch offense.situation {
	case model.SituationWinningBig:
		pass -= 0.10
		advance += 0.10
	case model.SituationLosingBig:
		pass += 0.10
	}
	if pass < 0 {
		pass = 0
	}

	total := advance + pass + run
	r := e.rng.Float64() * total
	switch {
	case r < pass:
		return model.EventPassComplete
	case r < pass+run:
		return model.EventRun
	default:
		return model.EventAdvance
	}
}

// pickWeighted selects a player proportionally to a weight function.
func (e *Engine) pickWeighted(players []*playerRuntime, weight func(*playerRuntime) float64) *playerRuntime {
	if len(players) == 0 {
		return nil
	}
	var total float64
	for _, p := range players {
		total += weight(p)
	}
	if total <= 0 {
		return players[e.rng.Intn(len(players))]
	}
	r := e.rng.Float64() * total
	for _, p := range players {
		r -= weight(p)
		if r <= 0 {
			return p
		}
	}
	return players[len(players)-1]
}

func (e *Engine) resolvePass(offense, defense *teamRuntime, offAttrs, defAttrs tickAttributes) []model.MatchEvent {
	passer := e.pickWeighted(offense.selectableByRole(model.RolePasser), func(p *playerRuntime) float64 {
		return offAttrs[p.id()].Throwing
	})
	targets := offense.selectableByRole(model.RoleRunner)
	if len(targets) == 0 {
		targets = offense.selectableOnField()
	}
	target := e.pickWeighted(targets, func(p *playerRuntime) float64 {
		return offAttrs[p.id()].Catching + offAttrs[p.id()].Speed
	})
	if passer == nil || target == nil || passer.id() == target.id() {
		return e.resolveAdvance(offense, defense, offAttrs, defAttrs)
	}
	// Nearest coverage: the defender most capable of contesting the throw.
	defender := e.pickWeighted(defense.selectableOnField(), func(p *playerRuntime) float64 {
		return defAttrs[p.id()].Agility
	})

	throw := offAttrs[passer.id()].Throwing
	catch := offAttrs[target.id()].Catching
	coverage := 50.0
	if defender != nil {
		coverage = defAttrs[defender.id()].Agility
	}
	e.noteInvolvement(passer, 1.0)
	e.noteInvolvement(target, 0.8)

	completion := 0.25 + 0.65*logistic((0.6*throw+0.4*catch-coverage)/15)
	if e.rng.Float64() < completion {
		yards := 3 + e.rng.Intn(18)
		ev := e.newEvent(model.EventPassComplete, offense.side)
		ev.PlayerID = passer.id()
		ev.TargetID = target.id()
		if defender != nil {
			ev.OpponentID = defender.id()
		}
		ev.Yards = yards
		events := []model.MatchEvent{ev}
		events = append(events, e.afterCarry(offense, defense, target, yards, offAttrs, defAttrs)...)
		return events
	}

	miss := e.newEvent(model.EventPassIncomplete, offense.side)
	miss.PlayerID = passer.id()
	miss.TargetID = target.id()
	events := []model.MatchEvent{miss}

	if defender != nil {
		interception := 0.08 + (coverage-50)/400
		if interception > 0 && e.rng.Float64() < interception {
			pick := e.newEvent(model.EventInterception, defense.side)
			pick.PlayerID = defender.id()
			pick.OpponentID = passer.id()
			events = append(events, pick)
			offense.driveYards = 0
		}
	}
	return events
}

func (e *Engine) resolveRun(offense, defense *teamRuntime, offAttrs, defAttrs tickAttributes) []model.MatchEvent {
	runner := e.pickWeighted(offense.selectableByRole(model.RoleRunner), func(p *playerRuntime) float64 {
		return offAttrs[p.id()].Speed + offAttrs[p.id()].Agility
	})
	if runner == nil {
		return e.resolveAdvance(offense, defense, offAttrs, defAttrs)
	}
	e.noteInvolvement(runner, 1.6)

	var blockerPower float64
	blockers := defense.selectableByRole(model.RoleBlocker)
	for _, b := range blockers {
		blockerPower += defAttrs[b.id()].Power
	}
	if len(blockers) > 0 {
		blockerPower /= float64(len(blockers))
	} else {
		blockerPower = 50
	}

	ra := offAttrs[runner.id()]
	breakaway := e.rng.Float64() < 0.25*logistic((0.5*ra.Speed+0.5*ra.Agility-blockerPower)/12)

	var yards int
	if breakaway {
		yards = 15 + e.rng.Intn(26)
	} else {
		yards = 1 + e.rng.Intn(8)
	}
	ev := e.newEvent(model.EventRun, offense.side)
	ev.PlayerID = runner.id()
	ev.Yards = yards
	ev.Breakaway = breakaway
	events := []model.MatchEvent{ev}
	events = append(events, e.afterCarry(offense, defense, runner, yards, offAttrs, defAttrs)...)
	return events
}

func (e *Engine) resolveAdvance(offense, defense *teamRuntime, offAttrs, defAttrs tickAttributes) []model.MatchEvent {
	carrier := e.pickWeighted(offense.selectableOnField(), func(p *playerRuntime) float64 {
		return offAttrs[p.id()].Power + offAttrs[p.id()].Speed
	})
	if carrier == nil {
		return nil
	}
	e.noteInvolvement(carrier, 0.8)

	yards := 1 + e.rng.Intn(5)
	ev := e.newEvent(model.EventAdvance, offense.side)
	ev.PlayerID = carrier.id()
	ev.Yards = yards
	events := []model.MatchEvent{ev}
	events = append(events, e.afterCarry(offense, defense, carrier, yards, offAttrs, defAttrs)...)
	return events
}

// afterCarry applies everything that can follow a successful carry: the
// drive advancing (possibly into a score) and a defensive counter.
func (e *Engine) afterCarry(offense, defense *teamRuntime, carrier *playerRuntime, yards int, offAttrs, defAttrs tickAttributes) []model.MatchEvent {
	var events []model.MatchEvent

	offense.driveYards += yards
	if offense.driveYards >= e.tune.DriveScoreYards {
		score := e.newEvent(model.EventScore, offense.side)
		score.PlayerID = carrier.id()
		score.Points = 1
		offense.score++
		offense.driveYards = 0
		defense.driveYards = 0
		events = append(events, score)
		return events // the score stops play; no counter on this tick
	}

	events = append(events, e.resolveCounter(offense, defense, carrier, offAttrs, defAttrs)...)
	return events
}

// resolveCounter samples the primary defender's answer to an offensive
// action: a tackle, a knockdown, or a strip attempt. Contact can injure
// the carrier.
func (e *Engine) resolveCounter(offense, defense *teamRuntime, carrier *playerRuntime, offAttrs, defAttrs tickAttributes) []model.MatchEvent {
	if e.rng.Float64() > e.tune.CounterRate {
		return nil
	}
	defender := e.pickWeighted(defense.selectableOnField(), func(p *playerRuntime) float64 {
		return defAttrs[p.id()].Power + defAttrs[p.id()].Agility
	})
	if defender == nil {
		return nil
	}

	da := defAttrs[defender.id()]
	ca := offAttrs[carrier.id()]
	edge := (da.Power + da.Agility - ca.Power - ca.Agility) / 2

	e.noteInvolvement(defender, 1.2)
	e.noteInvolvement(carrier, 2.0)

	var events []model.MatchEvent
	highPower := da.Power >= 80

	r := e.rng.Float64()
	switch {
	case r < 0.15: // strip attempt
		if e.rng.Float64() < 0.5*logistic(edge/10) {
			strip := e.newEvent(model.EventTurnover, defense.side)
			strip.PlayerID = defender.id()
			strip.OpponentID = carrier.id()
			strip.Reason = model.TurnoverStrip
			offense.driveYards = 0
			events = append(events, strip)
		} else {
			tackle := e.newEvent(model.EventTackle, defense.side)
			tackle.PlayerID = defender.id()
			tackle.OpponentID = carrier.id()
			events = append(events, tackle)
		}
	case r < 0.40: // knockdown, with a ball-security check under pressure
		e.noteInvolvement(carrier, 0.8)
		kd := e.newEvent(model.EventKnockdown, defense.side)
		kd.PlayerID = defender.id()
		kd.OpponentID = carrier.id()
		events = append(events, kd)
		highPower = true

		fumble := clampProb(0.18-float64(carrier.snap.Attributes.BallSecurity)/600, 0.02, 0.30)
		if e.rng.Float64() < fumble {
			to := e.newEvent(model.EventTurnover, defense.side)
			to.PlayerID = defender.id()
			to.OpponentID = carrier.id()
			to.Reason = model.TurnoverFumble
			offense.driveYards = 0
			events = append(events, to)
		}
	default:
		tackle := e.newEvent(model.EventTackle, defense.side)
		tackle.PlayerID = defender.id()
		tackle.OpponentID = carrier.id()
		events = append(events, tackle)
	}

	if inj := e.sampleInjury(offense, carrier, highPower); inj != nil {
		events = append(events, *inj)
	}
	return events
}

func clampProb(p, lo, hi float64) float64 {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// sampleInjury rolls the contacted player's injury chance for one contact
// event. The base rate scales with age, current stamina and prior injury
// history; the severity draw shifts when the contact was high-power.
func (e *Engine) sampleInjury(team *teamRuntime, p *playerRuntime, highPower bool) *model.MatchEvent {
	age := 1 + 0.06*math.Max(0, float64(p.snap.Age-26))
	stamina := 1 + (100-p.stamina)/100*0.8
	history := 1 + 0.25*float64(p.snap.PriorInjuries)
	switch p.injury {
	case model.InjuryMinor:
		history += 0.3
	case model.InjuryModerate:
		history += 0.6
	}

	if e.rng.Float64() >= e.tune.BaseInjuryRate*age*stamina*history {
		return nil
	}

	var severity string
	r := e.rng.Float64()
	if highPower {
		switch {
		case r < 0.40:
			severity = model.InjuryMinor
		case r < 0.75:
			severity = model.InjuryModerate
		default:
			severity = model.InjurySevere
		}
	} else {
		switch {
		case r < 0.60:
			severity = model.InjuryMinor
		case r < 0.90:
			severity = model.InjuryModerate
		default:
			severity = model.InjurySevere
		}
	}

	p.injury = worseInjury(p.injury, severity)

	ev := e.newEvent(model.EventInjury, team.side)
	ev.PlayerID = p.id()
	ev.Severity = p.injury
	return &ev
}

func injuryRank(status string) int {
	switch status {
	case model.InjuryMinor:
		return 1
	case model.InjuryModerate:
		return 2
	case model.InjurySevere:
		return 3
	default:
		return 0
	}
}

func worseInjury(a, b string) string {
	if injuryRank(b) > injuryRank(a) {
		return b
	}
	if a == "" {
		return model.InjuryHealthy
	}
	return a
}
