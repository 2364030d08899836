package engine

import "github.com/domeballhq/match-engine/internal/model"

// Tuning collects every gameplay constant the simulation samples against.
// The source rules disagree on several thresholds, so all of them are
// plain fields a caller can override from configuration.
type Tuning struct {
	// Clock granularity. 6 ticks per minute means 10-second ticks.
	TicksPerMinute int

	// Regulation length per match kind, in simulated minutes.
	ExhibitionMinutes int
	StandardMinutes   int

	// Overtime shape for kinds that allow it.
	OvertimeMinutes int

	// Situation classifier thresholds.
	LateWindowMinutes     int
	CloseScoreMargin      int
	BigLeadMargin         int
	BigLeadSecondHalfOnly bool

	// On-field composition per team.
	FieldPassers  int
	FieldRunners  int
	FieldBlockers int

	// Substitution trigger: in-match stamina at or below this value.
	SubStaminaThreshold float64

	// A drive scores once it has advanced this many yards.
	DriveScoreYards int

	// Chance the possessing team attempts an action on a given tick.
	ActionRate float64

	// Chance of a defensive counter after an offensive action.
	CounterRate float64

	// Base per-contact injury probability before age/stamina/history scaling.
	BaseInjuryRate float64

	// Effective attribute clamp, as fractions of the base attribute.
	AttributeFloor   float64
	AttributeCeiling float64
}

// DefaultTuning returns the rule set the engine ships with.
func DefaultTuning() Tuning {
	return Tuning{
		TicksPerMinute:        6,
		ExhibitionMinutes:     30,
		StandardMinutes:       40,
		OvertimeMinutes:       10,
		LateWindowMinutes:     5,
		CloseScoreMargin:      2,
		BigLeadMargin:         6,
		BigLeadSecondHalfOnly: true,
		FieldPassers:          1,
		FieldRunners:          2,
		FieldBlockers:         3,
		SubStaminaThreshold:   50,
		DriveScoreYards:       80,
		ActionRate:            0.85,
		CounterRate:           0.35,
		BaseInjuryRate:        0.02,
		AttributeFloor:        0.25,
		AttributeCeiling:      2.0,
	}
}

// PlayersOnField is the number of players each team fields at once.
func (t Tuning) PlayersOnField() int {
	return t.FieldPassers + t.FieldRunners + t.FieldBlockers
}

// RegulationMinutes returns the regulation length for a match kind.
func (t Tuning) RegulationMinutes(kind string) int {
	if kind == model.KindExhibition {
		return t.ExhibitionMinutes
	}
	return t.StandardMinutes
}

// OvertimeEligible reports whether a tied match of this kind goes to
// overtime. Exhibition and league matches may end in a tie.
func (t Tuning) OvertimeEligible(kind string) bool {
	switch kind {
	case model.KindTournament, model.KindPlayoff:
		return true
	default:
		return false
	}
}

func (t Tuning) roleQuota(role string) int {
	switch role {
	case model.RolePasser:
		return t.FieldPassers
	case model.RoleRunner:
		return t.FieldRunners
	case model.RoleBlocker:
		return t.FieldBlockers
	default:
		return 0
	}
}
