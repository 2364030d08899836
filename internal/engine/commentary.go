package engine

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/domeballhq/match-engine/internal/model"
)

// poolKey addresses a template pool: the event type plus an optional
// narrowing tag (race, situation, "breakaway", "playoff", an injury
// severity). The empty tag is the generic pool.
type poolKey struct {
	event string
	tag   string
}

// commentaryPools is the tagged lookup table behind the generator. Pools
// are plain data so adding flavor never touches control flow.
var commentaryPools = map[poolKey][]string{
	{model.EventAdvance, ""}: {
		"{player} grinds out {yards} more yards for {team}",
		"{team} keep the ball moving, {player} pushing the pile",
		"Slow and steady from {player}, {yards} yards gained",
	},
	{model.EventPassComplete, ""}: {
		"{player} finds {target} for {yards} yards",
		"Crisp throw! {target} hauls it in for {team}",
		"{player} threads it through, {target} with the catch",
	},
	{model.EventPassIncomplete, ""}: {
		"{player} airs it out but nobody home",
		"The throw from {player} sails wide of {target}",
		"Pressure gets to {player}, the pass falls incomplete",
	},
	{model.EventRun, ""}: {
		"{player} cuts through the line for {yards} yards",
		"Strong carry by {player}, {yards} yards for {team}",
		"{player} picks a lane and takes it for {yards}",
	},
	{model.EventRun, "breakaway"}: {
		"BREAKAWAY! {player} is gone, {yards} yards downfield!",
		"{player} finds daylight and turns on the jets, {yards} huge yards!",
		"Nobody is catching {player}! A {yards}-yard tear for {team}!",
	},
	{model.EventTackle, ""}: {
		"{player} wraps up the carrier and ends the push",
		"Textbook tackle by {player}",
		"{player} meets the runner head on",
	},
	{model.EventKnockdown, ""}: {
		"{player} flattens the ball carrier! The dome shakes",
		"Huge hit from {player}, that one will hurt tomorrow",
		"{player} delivers the knockdown the crowd came for",
	},
	{model.EventTurnover, ""}: {
		"Turnover! {player} rips the ball loose for {team}",
		"The ball is out! {team} come away with it",
		"{player} forces the fumble, possession flips",
	},
	{model.EventTurnover, model.SituationLateClose}: {
		"A turnover now?! {player} may have just stolen this match for {team}!",
		"Disaster at the worst moment, {team} pounce on the loose ball!",
	},
	{model.EventInterception, ""}: {
		"Picked off! {player} reads the throw all the way",
		"{player} steps in front of it, interception for {team}",
	},
	{model.EventScore, ""}: {
		"SCORE! {player} carries it across for {team}!",
		"{team} cash in the drive, {player} with the finish!",
		"{player} punches it in! The {team} crowd erupts!",
	},
	{model.EventScore, model.SituationLateClose}: {
		"SCORE with the clock bleeding out! {player} delivers for {team}!",
		"Clutch from {player}! {team} strike in the dying minutes!",
	},
	{model.EventScore, "playoff"}: {
		"A playoff score for the ages! {player} etches a name into dome lore!",
		"{player} scores, and the whole season tilts on it!",
	},
	{model.EventScore, model.RaceOrc}: {
		"{player} bulldozes three defenders and scores the orcish way!",
	},
	{model.EventScore, model.RaceElf}: {
		"{player} glides in untouched. Elegant, effortless, elven.",
	},
	{model.EventInjury, ""}: {
		"{player} is down and the trainers are rushing out",
		"That contact took a toll, {player} is hurt",
	},
	{model.EventInjury, model.InjurySevere}: {
		"{player} is not getting up. A stretcher is coming out, terrible scenes",
		"A sickening collision, {player} is done for the day and then some",
	},
	{model.EventSubstitution, ""}: {
		"{target} comes on for {player}",
		"Change for {team}: {target} replaces a spent {player}",
	},
	{model.EventHalftime, ""}: {
		"That's halftime in the dome",
		"The halftime horn sounds, teams head to the tunnels",
	},
	{model.EventFullTime, ""}: {
		"The final horn! That's full time",
		"Full time, and the dome catches its breath",
	},
}

// CommentaryContext carries the lookups the generator needs to render a
// line: names, race tags and the playoff flag.
type CommentaryContext struct {
	HomeTeam string
	AwayTeam string
	Playoff  bool
	Names    map[int64]string
	Races    map[int64]string
}

// NewCommentaryContext builds the lookup tables from a match config.
func NewCommentaryContext(cfg model.MatchConfig) CommentaryContext {
	ctx := CommentaryContext{
		HomeTeam: cfg.Home.Name,
		AwayTeam: cfg.Away.Name,
		Playoff:  cfg.Kind == model.KindPlayoff,
		Names:    make(map[int64]string),
		Races:    make(map[int64]string),
	}
	for _, p := range cfg.Home.Players {
		ctx.Names[p.ID] = p.Name
		ctx.Races[p.ID] = p.Race
	}
	for _, p := range cfg.Away.Players {
		ctx.Names[p.ID] = p.Name
		ctx.Races[p.ID] = p.Race
	}
	return ctx
}

// Commentator renders match events into broadcast lines. It draws from its
// own seeded stream so that text is reproducible per seed without coupling
// narrative variety to the gameplay stream.
type Commentator struct {
	rng *rand.Rand
	ctx CommentaryContext
}

// commentarySeedSalt decorrelates the text stream from the gameplay stream
// while keeping both derived from the match seed.
const commentarySeedSalt = 0x5bd1e995

func NewCommentator(seed int64, ctx CommentaryContext) *Commentator {
	return &Commentator{
		rng: rand.New(rand.NewSource(seed ^ commentarySeedSalt)),
		ctx: ctx,
	}
}

// Describe maps an event to one rendered line. Specialized pools are tried
// most-specific first; the generic pool always exists as a fallback.
// Template selection never touches gameplay state.
func (c *Commentator) Describe(ev model.MatchEvent) string {
	pool := c.lookupPool(ev)
	if len(pool) == 0 {
		return ""
	}
	line := pool[c.rng.Intn(len(pool))]
	return c.render(line, ev)
}

func (c *Commentator) lookupPool(ev model.MatchEvent) []string {
	var tags []string
	if c.ctx.Playoff {
		tags = append(tags, "playoff")
	}
	if race := c.ctx.Races[ev.PlayerID]; race != "" {
		tags = append(tags, race)
	}
	if ev.Breakaway {
		tags = append(tags, "breakaway")
	}
	if ev.Severity != "" {
		tags = append(tags, ev.Severity)
	}
	if ev.Situation != "" && ev.Situation != model.SituationNormal {
		tags = append(tags, ev.Situation)
	}
	for _, tag := range tags {
		if pool, ok := commentaryPools[poolKey{ev.Type, tag}]; ok {
			return pool
		}
	}
	return commentaryPools[poolKey{ev.Type, ""}]
}

func (c *Commentator) render(line string, ev model.MatchEvent) string {
	team := c.ctx.HomeTeam
	if ev.Team == model.SideAway {
		team = c.ctx.AwayTeam
	}
	line = strings.ReplaceAll(line, "{player}", c.ctx.Names[ev.PlayerID])
	line = strings.ReplaceAll(line, "{target}", c.ctx.Names[ev.TargetID])
	line = strings.ReplaceAll(line, "{team}", team)
	line = strings.ReplaceAll(line, "{yards}", strconv.Itoa(ev.Yards))
	return line
}
