package engine

import "github.com/domeballhq/match-engine/internal/model"

// Aggregator is a strict reducer over the event log: every event type maps
// to exactly one set of counter increments, and no statistic comes from any
// other source. Replaying a match's log through a fresh Aggregator must
// reproduce its stat lines exactly.
type Aggregator struct {
	players map[int64]*model.PlayerStatLine
	order   []int64
	home    model.TeamStatLine
	away    model.TeamStatLine
}

// NewAggregator seeds zeroed stat lines for every roster player so that
// players without events still appear in the output.
func NewAggregator(cfg model.MatchConfig) *Aggregator {
	a := &Aggregator{
		players: make(map[int64]*model.PlayerStatLine, len(cfg.Home.Players)+len(cfg.Away.Players)),
		home:    model.TeamStatLine{Team: model.SideHome},
		away:    model.TeamStatLine{Team: model.SideAway},
	}
	seed := func(side string, players []model.PlayerSnapshot) {
		for _, p := range players {
			a.players[p.ID] = &model.PlayerStatLine{
				PlayerID:    p.ID,
				Name:        p.Name,
				Team:        side,
				Role:        p.Role,
				FinalInjury: orHealthy(p.InjuryStatus),
			}
			a.order = append(a.order, p.ID)
		}
	}
	seed(model.SideHome, cfg.Home.Players)
	seed(model.SideAway, cfg.Away.Players)
	return a
}

func orHealthy(status string) string {
	if status == "" {
		return model.InjuryHealthy
	}
	return status
}

func (a *Aggregator) line(id int64) *model.PlayerStatLine {
	if l, ok := a.players[id]; ok {
		return l
	}
	// Unknown ids should not happen; keep the reducer total anyway.
	l := &model.PlayerStatLine{PlayerID: id, FinalInjury: model.InjuryHealthy}
	a.players[id] = l
	a.order = append(a.order, id)
	return l
}

func (a *Aggregator) team(side string) *model.TeamStatLine {
	if side == model.SideHome {
		return &a.home
	}
	return &a.away
}

func (a *Aggregator) opponent(side string) *model.TeamStatLine {
	if side == model.SideHome {
		return &a.away
	}
	return &a.home
}

// Accumulate folds one event into the counters.
func (a *Aggregator) Accumulate(ev model.MatchEvent) {
	t := a.team(ev.Team)
	switch ev.Type {
	case model.EventAdvance:
		a.line(ev.PlayerID).AdvanceYards += ev.Yards
		t.AdvanceYards += ev.Yards
		t.TotalYards += ev.Yards
		t.PossessionTicks++
	case model.EventPassComplete:
		p := a.line(ev.PlayerID)
		p.PassAttempts++
		p.PassCompletions++
		p.PassYards += ev.Yards
		r := a.line(ev.TargetID)
		r.Catches++
		r.CatchYards += ev.Yards
		t.PassAttempts++
		t.PassCompletions++
		t.PassYards += ev.Yards
		t.TotalYards += ev.Yards
		t.PossessionTicks++
	case model.EventPassIncomplete:
		a.line(ev.PlayerID).PassAttempts++
		t.PassAttempts++
		t.PossessionTicks++
	case model.EventRun:
		p := a.line(ev.PlayerID)
		p.RushAttempts++
		p.RushYards += ev.Yards
		if ev.Breakaway {
			p.Breakaways++
		}
		t.RushYards += ev.Yards
		t.TotalYards += ev.Yards
		t.PossessionTicks++
	case model.EventTackle:
		a.line(ev.PlayerID).Tackles++
		t.Tackles++
	case model.EventKnockdown:
		a.line(ev.PlayerID).Knockdowns++
		t.Knockdowns++
	case model.EventTurnover:
		if ev.Reason == model.TurnoverStrip {
			a.line(ev.PlayerID).Strips++
		}
		a.line(ev.OpponentID).FumblesLost++
		t.TurnoversForced++
		a.opponent(ev.Team).TurnoversLost++
	case model.EventInterception:
		a.line(ev.PlayerID).Interceptions++
		t.TurnoversForced++
		a.opponent(ev.Team).TurnoversLost++
	case model.EventScore:
		a.line(ev.PlayerID).Scores += ev.Points
		t.Score += ev.Points
	case model.EventInjury:
		l := a.line(ev.PlayerID)
		if injuryRank(ev.Severity) > injuryRank(l.FinalInjury) {
			l.FinalInjury = ev.Severity
		}
		t.Injuries++
	case model.EventSubstitution:
		t.Substitutions++
	}
}

// SetMinutes attaches tracker-owned minutes to a player's line. Minutes are
// clock state, not event state, so they sit outside the reducer.
func (a *Aggregator) SetMinutes(playerID int64, minutes float64) {
	a.line(playerID).MinutesPlayed = minutes
}

// Finalize returns the per-player lines in roster order plus both team lines.
func (a *Aggregator) Finalize() ([]model.PlayerStatLine, model.TeamStatLine, model.TeamStatLine) {
	lines := make([]model.PlayerStatLine, 0, len(a.order))
	for _, id := range a.order {
		lines = append(lines, *a.players[id])
	}
	return lines, a.home, a.away
}
