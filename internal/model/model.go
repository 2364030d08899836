// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Player roles on the dome ball field.
const (
	RolePasser  = "passer"
	RoleRunner  = "runner"
	RoleBlocker = "blocker"
)

// Player races. Commentary pools may specialize on these.
const (
	RaceHuman = "human"
	RaceOrc   = "orc"
	RaceElf   = "elf"
	RaceDwarf = "dwarf"
)

// Injury statuses in ascending severity.
const (
	InjuryHealthy  = "healthy"
	InjuryMinor    = "minor"
	InjuryModerate = "moderate"
	InjurySevere   = "severe"
)

// Match kinds. The kind fixes regulation length and overtime eligibility.
const (
	KindExhibition = "exhibition"
	KindLeague     = "league"
	KindTournament = "tournament"
	KindPlayoff    = "playoff"
)

// Game situations classified per tick from score, clock and phase.
const (
	SituationNormal     = "normal"
	SituationLateClose  = "late_close"
	SituationWinningBig = "winning_big"
	SituationLosingBig  = "losing_big"
)

// Tactical field sizes and focuses.
const (
	FieldStandard = "standard"
	FieldWide     = "wide"
	FieldNarrow   = "narrow"

	FocusBalanced  = "balanced"
	FocusPassing   = "passing"
	FocusRunning   = "running"
	FocusDefensive = "defensive"
)

// Team sides within a match.
const (
	SideHome = "home"
	SideAway = "away"
)

// Match event types. Events are append-only and form the canonical record.
const (
	EventAdvance        = "ADVANCE"
	EventPassComplete   = "PASS_COMPLETE"
	EventPassIncomplete = "PASS_INCOMPLETE"
	EventRun            = "RUN"
	EventTackle         = "TACKLE"
	EventKnockdown      = "KNOCKDOWN"
	EventTurnover       = "TURNOVER"
	EventInterception   = "INTERCEPTION"
	EventScore          = "SCORE"
	EventInjury         = "INJURY"
	EventSubstitution   = "SUBSTITUTION"
	EventHalftime       = "HALFTIME"
	EventFullTime       = "FULL_TIME"
)

// Turnover reasons distinguish a forced strip from an accidental fumble.
const (
	TurnoverStrip  = "strip"
	TurnoverFumble = "fumble"
)

// Substitution reasons.
const (
	SubReasonStamina = "stamina"
	SubReasonInjury  = "injury"
)

// Result statuses a caller distinguishes. Running is a record-only state
// for paced matches still in flight.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusAborted   = "aborted"
	StatusError     = "error"
)

// Terminal states of the clock.
const (
	TerminationRegulation  = "regulation-decided"
	TerminationOvertime    = "overtime-decided"
	TerminationSuddenDeath = "sudden-death-decided"
	TerminationTie         = "tied-no-overtime"
	TerminationAborted     = "aborted"
)

// Attributes are the base 1-100 ratings of a player.
type Attributes struct {
	Speed        int `json:"speed"`
	Power        int `json:"power"`
	Agility      int `json:"agility"`
	Throwing     int `json:"throwing"`
	Catching     int `json:"catching"`
	Kicking      int `json:"kicking"`
	Stamina      int `json:"stamina"`
	Leadership   int `json:"leadership"`
	BallSecurity int `json:"ball_security"`
}

// PlayerSnapshot is the immutable input view of a roster player.
// Season-long progression happens outside the engine; only current values
// cross this boundary.
type PlayerSnapshot struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	Race          string     `json:"race"`
	Age           int        `json:"age"`
	Attributes    Attributes `json:"attributes"`
	DailyStamina  int        `json:"daily_stamina"` // 0-100, persistent pre-match level
	InjuryStatus  string     `json:"injury_status"`
	PriorInjuries int        `json:"prior_injuries"` // count of past minor/moderate injuries
}

// Tactics is a team's pre-match tactical choice.
type Tactics struct {
	FieldSize string `json:"field_size"`
	Focus     string `json:"focus"`
}

// TeamSnapshot is the immutable input view of one side of a match.
type TeamSnapshot struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Players    []PlayerSnapshot `json:"players"`
	Tactics    Tactics          `json:"tactics"`
	Chemistry  float64          `json:"chemistry"`  // 0-100
	Atmosphere float64          `json:"atmosphere"` // stadium atmosphere, 0-100
}

// MatchConfig is the complete immutable input of one simulation.
type MatchConfig struct {
	Home TeamSnapshot `json:"home"`
	Away TeamSnapshot `json:"away"`
	Kind string       `json:"kind"`
	Seed int64        `json:"seed"`
}

// MatchEvent is one entry of the canonical match record. The Type field
// discriminates which of the optional fields are meaningful.
type MatchEvent struct {
	Seq        int    `json:"seq"`
	Tick       int    `json:"tick"`
	Minute     int    `json:"minute"`
	Type       string `json:"type"`
	Team       string `json:"team,omitempty"`        // side the event is credited to
	PlayerID   int64  `json:"player_id,omitempty"`   // acting player
	TargetID   int64  `json:"target_id,omitempty"`   // receiver / player coming on
	OpponentID int64  `json:"opponent_id,omitempty"` // defender / contacted player
	Yards      int    `json:"yards,omitempty"`
	Points     int    `json:"points,omitempty"`
	Breakaway  bool   `json:"breakaway,omitempty"`
	Severity   string `json:"severity,omitempty"` // injury events
	Reason     string `json:"reason,omitempty"`   // turnover kind, substitution reason
	Situation  string `json:"situation"`          // possessing team's situation at the tick
}

// PlayerStatLine is a player's accumulated per-match counters, derived
// strictly from the event log.
type PlayerStatLine struct {
	PlayerID        int64   `json:"player_id"`
	Name            string  `json:"name"`
	Team            string  `json:"team"`
	Role            string  `json:"role"`
	PassAttempts    int     `json:"pass_attempts"`
	PassCompletions int     `json:"pass_completions"`
	PassYards       int     `json:"pass_yards"`
	Catches         int     `json:"catches"`
	CatchYards      int     `json:"catch_yards"`
	RushAttempts    int     `json:"rush_attempts"`
	RushYards       int     `json:"rush_yards"`
	Breakaways      int     `json:"breakaways"`
	AdvanceYards    int     `json:"advance_yards"`
	Tackles         int     `json:"tackles"`
	Knockdowns      int     `json:"knockdowns"`
	Strips          int     `json:"strips"`
	Interceptions   int     `json:"interceptions"`
	FumblesLost     int     `json:"fumbles_lost"`
	Scores          int     `json:"scores"`
	MinutesPlayed   float64 `json:"minutes_played"`
	FinalInjury     string  `json:"final_injury"`
}

// TeamStatLine is one side's accumulated per-match counters.
type TeamStatLine struct {
	Team            string `json:"team"`
	Score           int    `json:"score"`
	PassYards       int    `json:"pass_yards"`
	RushYards       int    `json:"rush_yards"`
	AdvanceYards    int    `json:"advance_yards"`
	TotalYards      int    `json:"total_yards"`
	PassAttempts    int    `json:"pass_attempts"`
	PassCompletions int    `json:"pass_completions"`
	Tackles         int    `json:"tackles"`
	Knockdowns      int    `json:"knockdowns"`
	TurnoversForced int    `json:"turnovers_forced"`
	TurnoversLost   int    `json:"turnovers_lost"`
	PossessionTicks int    `json:"possession_ticks"`
	Substitutions   int    `json:"substitutions"`
	Injuries        int    `json:"injuries"`
}

// InjuryRecord reports one injury sustained during the match. Fed back to
// the progression subsystem together with minutes played.
type InjuryRecord struct {
	PlayerID int64  `json:"player_id"`
	Team     string `json:"team"`
	Severity string `json:"severity"`
	Minute   int    `json:"minute"`
}

// SubstitutionRecord reports one completed swap.
type SubstitutionRecord struct {
	Team        string `json:"team"`
	OutPlayerID int64  `json:"out_player_id"`
	InPlayerID  int64  `json:"in_player_id"`
	Minute      int    `json:"minute"`
	Reason      string `json:"reason"`
}

// MatchResult is the complete output of one simulation.
type MatchResult struct {
	Status          string               `json:"status"`
	Termination     string               `json:"termination"`
	Kind            string               `json:"kind"`
	Seed            int64                `json:"seed"`
	HomeScore       int                  `json:"home_score"`
	AwayScore       int                  `json:"away_score"`
	OvertimeApplied bool                 `json:"overtime_applied"`
	Events          []MatchEvent         `json:"events"`
	PlayerStats     []PlayerStatLine     `json:"player_stats"`
	HomeStats       TeamStatLine         `json:"home_stats"`
	AwayStats       TeamStatLine         `json:"away_stats"`
	Injuries        []InjuryRecord       `json:"injuries"`
	Substitutions   []SubstitutionRecord `json:"substitutions"`
	Error           string               `json:"error,omitempty"`
}

// MatchUpdate is one ordered record pushed to the broadcast sink after a
// tick, for live viewers. Decoupled from simulation correctness.
type MatchUpdate struct {
	Tick       int         `json:"tick"`
	Minute     int         `json:"minute"`
	HomeScore  int         `json:"home_score"`
	AwayScore  int         `json:"away_score"`
	Event      *MatchEvent `json:"event,omitempty"`
	Commentary string      `json:"commentary,omitempty"`
	Final      bool        `json:"final"`
}

// MatchRecord is the persisted view of a simulated match.
type MatchRecord struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	Seed        int64     `json:"seed"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	Status      string    `json:"status"`
	Termination string    `json:"termination"`
	HomeScore   int       `json:"home_score"`
	AwayScore   int       `json:"away_score"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
