package engine

import (
	"github.com/domeballhq/match-engine/internal/model"
)

func testPlayer(id int64, name, role string) model.PlayerSnapshot {
	return model.PlayerSnapshot{
		ID:   id,
		Name: name,
		Role: role,
		Race: model.RaceHuman,
		Age:  25,
		Attributes: model.Attributes{
			Speed:        70,
			Power:        65,
			Agility:      68,
			Throwing:     60,
			Catching:     62,
			Kicking:      55,
			Stamina:      75,
			Leadership:   50,
			BallSecurity: 70,
		},
		DailyStamina: 90,
		InjuryStatus: model.InjuryHealthy,
	}
}

// testTeam builds a nine-player roster: two passers, three runners, four
// blockers, so every role has bench depth.
func testTeam(name string, baseID int64) model.TeamSnapshot {
	players := []model.PlayerSnapshot{
		testPlayer(baseID+1, name+" P1", model.RolePasser),
		testPlayer(baseID+2, name+" P2", model.RolePasser),
		testPlayer(baseID+3, name+" R1", model.RoleRunner),
		testPlayer(baseID+4, name+" R2", model.RoleRunner),
		testPlayer(baseID+5, name+" R3", model.RoleRunner),
		testPlayer(baseID+6, name+" B1", model.RoleBlocker),
		testPlayer(baseID+7, name+" B2", model.RoleBlocker),
		testPlayer(baseID+8, name+" B3", model.RoleBlocker),
		testPlayer(baseID+9, name+" B4", model.RoleBlocker),
	}
	return model.TeamSnapshot{
		ID:         baseID,
		Name:       name,
		Players:    players,
		Tactics:    model.Tactics{FieldSize: model.FieldStandard, Focus: model.FocusBalanced},
		Chemistry:  60,
		Atmosphere: 55,
	}
}

func testConfig(seed int64, kind string) model.MatchConfig {
	return model.MatchConfig{
		Home: testTeam("Ironhold Maulers", 100),
		Away: testTeam("Silverpine Arrows", 200),
		Kind: kind,
		Seed: seed,
	}
}
