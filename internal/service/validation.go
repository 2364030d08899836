package service

import (
	"fmt"
	"strings"

	"github.com/domeballhq/match-engine/internal/engine"
	"github.com/domeballhq/match-engine/internal/model"
)

func isValidKind(kind string) bool {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case model.KindExhibition, model.KindLeague, model.KindTournament, model.KindPlayoff:
		return true
	default:
		return false
	}
}

func isValidRole(role string) bool {
	switch role {
	case model.RolePasser, model.RoleRunner, model.RoleBlocker:
		return true
	default:
		return false
	}
}

func isValidInjury(status string) bool {
	switch status {
	case "", model.InjuryHealthy, model.InjuryMinor, model.InjuryModerate, model.InjurySevere:
		return true
	default:
		return false
	}
}

func attrInRange(v int) bool { return v >= 1 && v <= 100 }

// validateMatchConfig is the config-error gate of the whole pipeline: a
// simulation only starts on a roster that can actually field a lineup.
// All problems are aggregated so the caller sees everything at once.
func validateMatchConfig(cfg model.MatchConfig, tune engine.Tuning) []FieldError {
	var ferrs []FieldError
	if !isValidKind(cfg.Kind) {
		ferrs = append(ferrs, FieldError{Field: "kind", Message: "must be one of exhibition, league, tournament, playoff"})
	}
	ferrs = append(ferrs, validateTeam("home", cfg.Home, tune)...)
	ferrs = append(ferrs, validateTeam("away", cfg.Away, tune)...)
	return ferrs
}

func validateTeam(prefix string, team model.TeamSnapshot, tune engine.Tuning) []FieldError {
	var ferrs []FieldError
	field := func(name string) string { return prefix + "." + name }

	if strings.TrimSpace(team.Name) == "" {
		ferrs = append(ferrs, FieldError{Field: field("name"), Message: "must not be empty"})
	}
	if team.Chemistry < 0 || team.Chemistry > 100 {
		ferrs = append(ferrs, FieldError{Field: field("chemistry"), Message: "must be between 0 and 100"})
	}
	if team.Atmosphere < 0 || team.Atmosphere > 100 {
		ferrs = append(ferrs, FieldError{Field: field("atmosphere"), Message: "must be between 0 and 100"})
	}

	roleCounts := map[string]int{}
	seen := map[int64]bool{}
	for i, p := range team.Players {
		pf := func(name string) string { return fmt.Sprintf("%s.players[%d].%s", prefix, i, name) }
		if p.ID <= 0 {
			ferrs = append(ferrs, FieldError{Field: pf("id"), Message: "must be > 0"})
		}
		if seen[p.ID] {
			ferrs = append(ferrs, FieldError{Field: pf("id"), Message: "duplicate player id"})
		}
		seen[p.ID] = true
		if strings.TrimSpace(p.Name) == "" {
			ferrs = append(ferrs, FieldError{Field: pf("name"), Message: "must not be empty"})
		}
		if !isValidRole(p.Role) {
			ferrs = append(ferrs, FieldError{Field: pf("role"), Message: "must be one of passer, runner, blocker"})
		}
		if !isValidInjury(p.InjuryStatus) {
			ferrs = append(ferrs, FieldError{Field: pf("injury_status"), Message: "unknown injury status"})
		}
		if p.Age < 16 || p.Age > 50 {
			ferrs = append(ferrs, FieldError{Field: pf("age"), Message: "must be between 16 and 50"})
		}
		if p.DailyStamina < 0 || p.DailyStamina > 100 {
			ferrs = append(ferrs, FieldError{Field: pf("daily_stamina"), Message: "must be between 0 and 100"})
		}
		for name, v := range map[string]int{
			"speed": p.Attributes.Speed, "power": p.Attributes.Power, "agility": p.Attributes.Agility,
			"throwing": p.Attributes.Throwing, "catching": p.Attributes.Catching, "kicking": p.Attributes.Kicking,
			"stamina": p.Attributes.Stamina, "leadership": p.Attributes.Leadership, "ball_security": p.Attributes.BallSecurity,
		} {
			if !attrInRange(v) {
				ferrs = append(ferrs, FieldError{Field: pf("attributes." + name), Message: "must be between 1 and 100"})
			}
		}
		// Severely injured players can never start; don't count them
		// toward the fieldable lineup.
		if isValidRole(p.Role) && p.InjuryStatus != model.InjurySevere && p.InjuryStatus != model.InjuryModerate {
			roleCounts[p.Role]++
		}
	}

	for role, needed := range map[string]int{
		model.RolePasser:  tune.FieldPassers,
		model.RoleRunner:  tune.FieldRunners,
		model.RoleBlocker: tune.FieldBlockers,
	} {
		if roleCounts[role] < needed {
			ferrs = append(ferrs, FieldError{
				Field:   field("players"),
				Message: fmt.Sprintf("needs at least %d fieldable %ss, has %d", needed, role, roleCounts[role]),
			})
		}
	}
	return ferrs
}
