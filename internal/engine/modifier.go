package engine

import (
	"math"

	"github.com/domeballhq/match-engine/internal/model"
)

// EffectiveAttributes are a player's base attributes after the full
// modifier stack has been applied for the current tick.
type EffectiveAttributes struct {
	Speed    float64
	Power    float64
	Agility  float64
	Throwing float64
	Catching float64
	Kicking  float64
}

func (a EffectiveAttributes) scale(m float64) EffectiveAttributes {
	a.Speed *= m
	a.Power *= m
	a.Agility *= m
	a.Throwing *= m
	a.Catching *= m
	a.Kicking *= m
	return a
}

// modifierContext is the read-only tick context a transform may consult.
type modifierContext struct {
	team      *teamRuntime
	opponent  *teamRuntime
	situation string
	home      bool
	tune      Tuning
}

// attrTransform is one step of the modifier stack. Every transform must be
// pure: same inputs, same output, no state touched.
type attrTransform func(EffectiveAttributes, *playerRuntime, modifierContext) EffectiveAttributes

// modifierPipeline is applied left to right on top of the base attributes.
// Order matters only for readability; the transforms are multiplicative.
var modifierPipeline = []attrTransform{
	tacticsModifier,
	chemistryModifier,
	staminaModifier,
	injuryModifier,
	atmosphereModifier,
	situationModifier,
}

// effectiveAttributes runs the full stack and clamps the result so no
// attribute drops below a floor fraction of its base or runs away upward.
func effectiveAttributes(p *playerRuntime, ctx modifierContext) EffectiveAttributes {
	base := EffectiveAttributes{
		Speed:    float64(p.snap.Attributes.Speed),
		Power:    float64(p.snap.Attributes.Power),
		Agility:  float64(p.snap.Attributes.Agility),
		Throwing: float64(p.snap.Attributes.Throwing),
		Catching: float64(p.snap.Attributes.Catching),
		Kicking:  float64(p.snap.Attributes.Kicking),
	}
	eff := base
	for _, tf := range modifierPipeline {
		eff = tf(eff, p, ctx)
	}
	return clampAttributes(eff, base, ctx.tune)
}

func clampAttributes(eff, base EffectiveAttributes, tune Tuning) EffectiveAttributes {
	clamp := func(v, b float64) float64 {
		lo, hi := b*tune.AttributeFloor, b*tune.AttributeCeiling
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	eff.Speed = clamp(eff.Speed, base.Speed)
	eff.Power = clamp(eff.Power, base.Power)
	eff.Agility = clamp(eff.Agility, base.Agility)
	eff.Throwing = clamp(eff.Throwing, base.Throwing)
	eff.Catching = clamp(eff.Catching, base.Catching)
	eff.Kicking = clamp(eff.Kicking, base.Kicking)
	return eff
}

// tacticsModifier applies the team's field size and tactical focus.
func tacticsModifier(a EffectiveAttributes, _ *playerRuntime, ctx modifierContext) EffectiveAttributes {
	switch ctx.team.snap.Tactics.FieldSize {
	case model.FieldWide:
		a.Speed *= 1.10
		a.Agility *= 1.05
		a.Power *= 0.95
	case model.FieldNarrow:
		a.Power *= 1.10
		a.Speed *= 0.95
	}
	switch ctx.team.snap.Tactics.Focus {
	case model.FocusPassing:
		a.Throwing *= 1.10
		a.Catching *= 1.10
		a.Power *= 0.97
	case model.FocusRunning:
		a.Speed *= 1.08
		a.Agility *= 1.08
		a.Throwing *= 0.95
	case model.FocusDefensive:
		a.Power *= 1.08
		a.Agility *= 1.03
		a.Throwing *= 0.95
	}
	return a
}

// chemistryModifier scales everything by up to ±10% around a chemistry
// score of 50.
func chemistryModifier(a EffectiveAttributes, _ *playerRuntime, ctx modifierContext) EffectiveAttributes {
	return a.scale(1 + (ctx.team.snap.Chemistry-50)/50*0.10)
}

// staminaModifier is a mild linear penalty down to 50% in-match stamina
// and a nonlinear falloff below it.
func staminaModifier(a EffectiveAttributes, p *playerRuntime, _ modifierContext) EffectiveAttributes {
	s := p.stamina
	if s >= 50 {
		return a.scale(0.90 + 0.10*s/100)
	}
	return a.scale(0.95 * math.Pow(s/50, 1.5))
}

// injuryModifier applies the fixed per-status multipliers. Severe players
// are excluded from selection entirely; the multiplier here only matters
// for the exceptional case of a severe player stuck on field.
func injuryModifier(a EffectiveAttributes, p *playerRuntime, _ modifierContext) EffectiveAttributes {
	switch p.injury {
	case model.InjuryMinor:
		return a.scale(0.90)
	case model.InjuryModerate:
		return a.scale(0.75)
	case model.InjurySevere:
		return a.scale(0.50)
	}
	return a
}

// atmosphereModifier is a home boost and an away penalty, both scaled by
// the home stadium's atmosphere value.
func atmosphereModifier(a EffectiveAttributes, _ *playerRuntime, ctx modifierContext) EffectiveAttributes {
	if ctx.home {
		return a.scale(1 + ctx.team.snap.Atmosphere/100*0.08)
	}
	return a.scale(1 - ctx.opponent.snap.Atmosphere/100*0.05)
}

// situationModifier biases attributes by the classified game situation.
// Winning big turns conservative, losing big turns aggressive, and a late
// close game applies a chemistry-scaled clutch swing that can cut both ways.
func situationModifier(a EffectiveAttributes, _ *playerRuntime, ctx modifierContext) EffectiveAttributes {
	switch ctx.situation {
	case model.SituationWinningBig:
		a.Power *= 1.05
		a.Throwing *= 0.92
		a.Catching *= 0.97
	case model.SituationLosingBig:
		a.Throwing *= 1.08
		a.Speed *= 1.05
		a.Catching *= 0.97
	case model.SituationLateClose:
		return a.scale(1 + (ctx.team.snap.Chemistry-50)/50*0.08)
	}
	return a
}
