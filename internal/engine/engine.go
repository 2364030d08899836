// Package engine implements the live dome ball match simulation: a
// deterministic, tick-driven stochastic state machine that turns two team
// snapshots and a seed into an ordered event log, stat lines, commentary
// and a final result. The engine performs no I/O of its own; persistence
// and transport belong to the caller.
package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/domeballhq/match-engine/internal/model"
)

// ErrInvalidConfig marks a malformed or incomplete match config. Rejected
// before simulation starts; no partial result is produced.
var ErrInvalidConfig = errors.New("invalid match config")

// Options tune one engine instance. The zero value simulates instantly
// into a NopSink with default rules.
type Options struct {
	Sink      Sink
	TickDelay time.Duration // 0 = instant mode
	Tuning    *Tuning       // nil = DefaultTuning
	Logger    zerolog.Logger
}

// Engine simulates exactly one match and is not reusable. Each match owns
// its seeded random stream, so concurrent matches share no mutable state.
type Engine struct {
	cfg   model.MatchConfig
	tune  Tuning
	log   zerolog.Logger
	sink  Sink
	delay time.Duration

	rng  *rand.Rand
	home *teamRuntime
	away *teamRuntime

	agg         *Aggregator
	commentator *Commentator

	tick      int
	seq       int
	events    []model.MatchEvent
	injuries  []model.InjuryRecord
	subs      []model.SubstitutionRecord
	overtime  bool
	violation error
}

// New validates the config and prepares a match. Roster problems are
// config errors: the engine refuses to start rather than guess.
func New(cfg model.MatchConfig, opts Options) (*Engine, error) {
	tune := DefaultTuning()
	if opts.Tuning != nil {
		tune = *opts.Tuning
	}
	sink := opts.Sink
	if sink == nil {
		sink = NopSink{}
	}

	switch cfg.Kind {
	case model.KindExhibition, model.KindLeague, model.KindTournament, model.KindPlayoff:
	default:
		return nil, fmt.Errorf("%w: unknown match kind %q", ErrInvalidConfig, cfg.Kind)
	}

	home, err := newTeamRuntime(model.SideHome, cfg.Home, cfg.Kind, tune)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}
	away, err := newTeamRuntime(model.SideAway, cfg.Away, cfg.Kind, tune)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidConfig, err)
	}

	return &Engine{
		cfg:         cfg,
		tune:        tune,
		log:         opts.Logger.With().Str("component", "engine").Int64("seed", cfg.Seed).Logger(),
		sink:        sink,
		delay:       opts.TickDelay,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		home:        home,
		away:        away,
		agg:         NewAggregator(cfg),
		commentator: NewCommentator(cfg.Seed, NewCommentaryContext(cfg)),
	}, nil
}

// newEvent stamps sequence, clock and the credited side's situation onto a
// fresh event.
func (e *Engine) newEvent(eventType, side string) model.MatchEvent {
	e.seq++
	team := e.home
	if side == model.SideAway {
		team = e.away
	}
	return model.MatchEvent{
		Seq:       e.seq,
		Tick:      e.tick,
		Minute:    e.tick / e.tune.TicksPerMinute,
		Type:      eventType,
		Team:      side,
		Situation: team.situation,
	}
}

// fail records the first internal invariant violation. The scheduler
// aborts the run and tags the result, keeping the log for debugging.
func (e *Engine) fail(format string, args ...any) {
	if e.violation == nil {
		e.violation = fmt.Errorf(format, args...)
	}
}

// Run drives the match to a terminal state: regulation, an optional fixed
// overtime, then sudden death for kinds that allow it. Cancellation is
// checked between ticks and yields an aborted result with a strict prefix
// of the uninterrupted event log.
func (e *Engine) Run(ctx context.Context) model.MatchResult {
	regTicks := e.tune.RegulationMinutes(e.cfg.Kind) * e.tune.TicksPerMinute
	halfTick := regTicks / 2

	for t := 1; t <= regTicks; t++ {
		if done, res := e.stepGuard(ctx); done {
			return res
		}
		e.playTick(t)
		if e.violation != nil {
			return e.finalize(model.StatusError, "")
		}
		if t == halfTick {
			e.recordMarker(model.EventHalftime)
		}
	}
	e.recordMarker(model.EventFullTime)

	if e.home.score != e.away.score {
		return e.finalize(model.StatusCompleted, model.TerminationRegulation)
	}
	if !e.tune.OvertimeEligible(e.cfg.Kind) {
		return e.finalize(model.StatusCompleted, model.TerminationTie)
	}

	// Fixed-length overtime.
	e.overtime = true
	otTicks := e.tune.OvertimeMinutes * e.tune.TicksPerMinute
	for t := regTicks + 1; t <= regTicks+otTicks; t++ {
		if done, res := e.stepGuard(ctx); done {
			return res
		}
		e.playTick(t)
		if e.violation != nil {
			return e.finalize(model.StatusError, "")
		}
	}
	if e.home.score != e.away.score {
		return e.finalize(model.StatusCompleted, model.TerminationOvertime)
	}

	// Sudden death: the first score ends the match immediately.
	maxTick := regTicks + otTicks + 60*e.tune.TicksPerMinute
	for t := regTicks + otTicks + 1; ; t++ {
		if done, res := e.stepGuard(ctx); done {
			return res
		}
		scored := e.playTick(t)
		if e.violation != nil {
			return e.finalize(model.StatusError, "")
		}
		if scored {
			return e.finalize(model.StatusCompleted, model.TerminationSuddenDeath)
		}
		if t >= maxTick {
			e.fail("sudden death unresolved after %d ticks", t)
			return e.finalize(model.StatusError, "")
		}
	}
}

// stepGuard handles the between-tick obligations: cooperative cancellation
// and pacing. Returns a finalized aborted result when the caller stopped us.
func (e *Engine) stepGuard(ctx context.Context) (bool, model.MatchResult) {
	select {
	case <-ctx.Done():
		e.log.Info().Int("tick", e.tick).Msg("cancellation requested, aborting match")
		return true, e.finalize(model.StatusAborted, model.TerminationAborted)
	default:
	}
	if e.delay > 0 {
		timer := time.NewTimer(e.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return true, e.finalize(model.StatusAborted, model.TerminationAborted)
		case <-timer.C:
		}
	}
	return false, model.MatchResult{}
}

// playTick advances the clock one tick: upkeep, situation classification,
// event resolution, substitutions, bookkeeping and the broadcast push.
// Reports whether the tick contained a score, which sudden death needs.
func (e *Engine) playTick(t int) bool {
	e.tick = t
	e.applyTickUpkeep()

	regTicks := e.tune.RegulationMinutes(e.cfg.Kind) * e.tune.TicksPerMinute
	e.home.situation = classifySituation(e.home.score, e.away.score, t, regTicks, e.tune)
	e.away.situation = classifySituation(e.away.score, e.home.score, t, regTicks, e.tune)

	events := e.resolveTick()
	events = append(events, e.checkSubstitutions()...)

	scored := false
	for _, ev := range events {
		e.record(ev)
		if ev.Type == model.EventScore {
			scored = true
		}
	}

	var last *model.MatchEvent
	var line string
	if n := len(events); n > 0 {
		last = &events[n-1]
		line = e.commentator.Describe(*last)
	}
	e.push(model.MatchUpdate{
		Tick:       t,
		Minute:     t / e.tune.TicksPerMinute,
		HomeScore:  e.home.score,
		AwayScore:  e.away.score,
		Event:      last,
		Commentary: line,
	})
	return scored
}

// record appends an event to the canonical log and feeds the aggregator
// and the injury/substitution report lists.
func (e *Engine) record(ev model.MatchEvent) {
	e.events = append(e.events, ev)
	e.agg.Accumulate(ev)

	switch ev.Type {
	case model.EventInjury:
		e.injuries = append(e.injuries, model.InjuryRecord{
			PlayerID: ev.PlayerID,
			Team:     ev.Team,
			Severity: ev.Severity,
			Minute:   ev.Minute,
		})
	case model.EventSubstitution:
		e.subs = append(e.subs, model.SubstitutionRecord{
			Team:        ev.Team,
			OutPlayerID: ev.PlayerID,
			InPlayerID:  ev.TargetID,
			Minute:      ev.Minute,
			Reason:      ev.Reason,
		})
	}
}

func (e *Engine) recordMarker(eventType string) {
	ev := e.newEvent(eventType, "")
	ev.Situation = model.SituationNormal
	e.record(ev)
	line := e.commentator.Describe(ev)
	e.push(model.MatchUpdate{
		Tick:       e.tick,
		Minute:     e.tick / e.tune.TicksPerMinute,
		HomeScore:  e.home.score,
		AwayScore:  e.away.score,
		Event:      &e.events[len(e.events)-1],
		Commentary: line,
	})
}

// push delivers one update to the sink. Failures are logged and dropped:
// live delivery is best-effort and must never affect the simulation.
func (e *Engine) push(update model.MatchUpdate) {
	if err := e.sink.Push(update); err != nil {
		e.log.Warn().Err(err).Int("tick", update.Tick).Msg("dropping broadcast update")
	}
}

// finalize summarizes runtime state into the result and emits the final
// update. Minutes come from the tracker; every counter comes from the log.
func (e *Engine) finalize(status, termination string) model.MatchResult {
	for _, tr := range []*teamRuntime{e.home, e.away} {
		for _, p := range tr.players {
			e.agg.SetMinutes(p.id(), p.minutes)
		}
	}
	lines, homeStats, awayStats := e.agg.Finalize()

	res := model.MatchResult{
		Status:          status,
		Termination:     termination,
		Kind:            e.cfg.Kind,
		Seed:            e.cfg.Seed,
		HomeScore:       e.home.score,
		AwayScore:       e.away.score,
		OvertimeApplied: e.overtime,
		Events:          e.events,
		PlayerStats:     lines,
		HomeStats:       homeStats,
		AwayStats:       awayStats,
		Injuries:        e.injuries,
		Substitutions:   e.subs,
	}
	if e.violation != nil {
		res.Error = e.violation.Error()
		e.log.Error().Err(e.violation).Int("tick", e.tick).Msg("simulation invariant violated")
	}

	e.push(model.MatchUpdate{
		Tick:      e.tick,
		Minute:    e.tick / e.tune.TicksPerMinute,
		HomeScore: e.home.score,
		AwayScore: e.away.score,
		Final:     true,
	})
	return res
}
