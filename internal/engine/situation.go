package engine

import "github.com/domeballhq/match-engine/internal/model"

// classifySituation labels the current tick from one team's perspective.
// Rules are evaluated in order: the late-close window wins over a big
// lead, and big-lead labels only apply past the halfway point when the
// tuning says so. The value is advisory input to the modifier pipeline
// and is never persisted.
//
// The late window is inclusive: exactly LateWindowMinutes of regulation
// remaining still counts as late.
func classifySituation(ownScore, oppScore, elapsedTicks, regulationTicks int, tune Tuning) string {
	diff := ownScore - oppScore
	abs := diff
	if abs < 0 {
		abs = -abs
	}

	remaining := regulationTicks - elapsedTicks
	if remaining <= tune.LateWindowMinutes*tune.TicksPerMinute && abs <= tune.CloseScoreMargin {
		return model.SituationLateClose
	}

	if !tune.BigLeadSecondHalfOnly || elapsedTicks > regulationTicks/2 {
		if diff >= tune.BigLeadMargin {
			return model.SituationWinningBig
		}
		if diff <= -tune.BigLeadMargin {
			return model.SituationLosingBig
		}
	}
	return model.SituationNormal
}
