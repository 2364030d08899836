package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domeballhq/match-engine/internal/model"
)

func TestClassifySituation(t *testing.T) {
	tune := DefaultTuning()
	reg := 40 * tune.TicksPerMinute // 240 ticks

	cases := []struct {
		name     string
		own, opp int
		elapsed  int
		want     string
	}{
		{"early level game", 0, 0, 10, model.SituationNormal},
		{"early big lead stays normal in first half", 8, 0, 10, model.SituationNormal},
		{"big lead after halfway", 8, 0, 130, model.SituationWinningBig},
		{"big deficit after halfway", 0, 8, 130, model.SituationLosingBig},
		{"lead below margin stays normal", 5, 0, 130, model.SituationNormal},
		{"late and close", 3, 2, 220, model.SituationLateClose},
		{"exactly five minutes left is late", 1, 1, reg - 5*tune.TicksPerMinute, model.SituationLateClose},
		{"one tick before the window opens", 1, 1, reg - 5*tune.TicksPerMinute - 1, model.SituationNormal},
		{"late but not close", 9, 1, 220, model.SituationWinningBig},
		{"late close window beats big lead margin", 2, 0, 238, model.SituationLateClose},
		{"margin boundary is close", 2, 0, 220, model.SituationLateClose},
		{"just past close margin", 3, 0, 220, model.SituationNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifySituation(tc.own, tc.opp, tc.elapsed, reg, tune)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifySituation_FirstHalfBigLeadWhenAllowed(t *testing.T) {
	tune := DefaultTuning()
	tune.BigLeadSecondHalfOnly = false
	got := classifySituation(8, 0, 10, 240, tune)
	assert.Equal(t, model.SituationWinningBig, got)
}
