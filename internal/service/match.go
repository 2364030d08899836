package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/domeballhq/match-engine/internal/engine"
	"github.com/domeballhq/match-engine/internal/model"
	"github.com/domeballhq/match-engine/internal/repository"
)

const (
	defaultTickDelay = 250 * time.Millisecond
	maxTickDelay     = 5 * time.Second
	persistTimeout   = 10 * time.Second
)

type matchService struct {
	matches repository.MatchRepository
	tune    engine.Tuning
	hub     *liveHub
	logger  zerolog.Logger
}

// NewMatchService wires the match use cases over a repository and a tuned
// engine configuration.
func NewMatchService(matches repository.MatchRepository, tune engine.Tuning, logger zerolog.Logger) MatchService {
	return &matchService{
		matches: matches,
		tune:    tune,
		hub:     newLiveHub(),
		logger:  logger.With().Str("component", "match_service").Logger(),
	}
}

var _ MatchService = (*matchService)(nil)

func (s *matchService) SimulateMatch(ctx context.Context, req SimulationRequest) (model.MatchRecord, *model.MatchResult, error) {
	cfg := req.Config
	cfg.Kind = strings.ToLower(strings.TrimSpace(cfg.Kind))

	ferrs := validateMatchConfig(cfg, s.tune)
	switch req.Pacing {
	case "", PacingInstant, PacingPaced:
	default:
		ferrs = append(ferrs, FieldError{Field: "pacing", Message: "must be instant or paced"})
	}
	if req.TickDelay < 0 || req.TickDelay > maxTickDelay {
		ferrs = append(ferrs, FieldError{Field: "tick_delay", Message: fmt.Sprintf("must be between 0 and %s", maxTickDelay)})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.MatchRecord{}, nil, err
	}

	rec, err := s.matches.Create(ctx, model.MatchRecord{
		Kind:     cfg.Kind,
		Seed:     cfg.Seed,
		HomeTeam: cfg.Home.Name,
		AwayTeam: cfg.Away.Name,
		Status:   model.StatusRunning,
	})
	if err != nil {
		return model.MatchRecord{}, nil, fmt.Errorf("create match record: %w", err)
	}

	if req.Pacing == PacingPaced {
		return s.startPaced(rec, cfg, req.TickDelay)
	}

	eng, err := engine.New(cfg, engine.Options{Tuning: &s.tune, Logger: s.logger})
	if err != nil {
		// Validation should have caught everything the engine rejects.
		return model.MatchRecord{}, nil, NewInvalidInputError([]FieldError{{Field: "config", Message: err.Error()}})
	}
	res := eng.Run(ctx)
	rec, err = s.matches.SaveResult(ctx, rec.ID, res)
	if err != nil {
		return model.MatchRecord{}, nil, fmt.Errorf("save match result: %w", err)
	}
	s.logFinished(rec.ID, res)
	return rec, &res, nil
}

// startPaced launches the simulation in the background and returns the
// running record immediately. The run detaches from the request context;
// only Abort or process shutdown stops it.
func (s *matchService) startPaced(rec model.MatchRecord, cfg model.MatchConfig, delay time.Duration) (model.MatchRecord, *model.MatchResult, error) {
	if delay == 0 {
		delay = defaultTickDelay
	}

	sink := engine.NewChannelSink(512)
	eng, err := engine.New(cfg, engine.Options{
		Sink:      sink,
		TickDelay: delay,
		Tuning:    &s.tune,
		Logger:    s.logger,
	})
	if err != nil {
		return model.MatchRecord{}, nil, NewInvalidInputError([]FieldError{{Field: "config", Message: err.Error()}})
	}

	runCtx, cancel := context.WithCancel(context.Background())
	lm := s.hub.open(rec.ID, cancel)

	go func() {
		for update := range sink.Updates() {
			lm.publish(update)
		}
		s.hub.finish(rec.ID)
	}()

	go func() {
		defer cancel()
		res := eng.Run(runCtx)
		sink.Close()

		saveCtx, saveCancel := context.WithTimeout(context.Background(), persistTimeout)
		defer saveCancel()
		if _, err := s.matches.SaveResult(saveCtx, rec.ID, res); err != nil {
			s.logger.Error().Err(err).Int64("match_id", rec.ID).Msg("failed to persist paced match result")
			return
		}
		s.logFinished(rec.ID, res)
	}()

	return rec, nil, nil
}

func (s *matchService) logFinished(id int64, res model.MatchResult) {
	ev := s.logger.Info()
	if res.Status == model.StatusError {
		ev = s.logger.Error().Str("error", res.Error)
	}
	ev.Int64("match_id", id).
		Str("status", res.Status).
		Str("termination", res.Termination).
		Int("home_score", res.HomeScore).
		Int("away_score", res.AwayScore).
		Int("events", len(res.Events)).
		Msg("match finished")
}

func (s *matchService) GetMatch(ctx context.Context, id int64) (model.MatchRecord, error) {
	if id <= 0 {
		return model.MatchRecord{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.matches.GetByID(ctx, id)
}

func (s *matchService) ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.MatchRecord], error) {
	return s.matches.List(ctx, page)
}

func (s *matchService) GetResult(ctx context.Context, id int64) (model.MatchResult, error) {
	if id <= 0 {
		return model.MatchResult{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	rec, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return model.MatchResult{}, err
	}
	if rec.Status == model.StatusRunning {
		return model.MatchResult{}, ErrMatchRunning
	}
	return s.matches.GetResult(ctx, id)
}

func (s *matchService) Subscribe(id int64) (<-chan model.MatchUpdate, func(), error) {
	lm, ok := s.hub.get(id)
	if !ok {
		return nil, nil, fmt.Errorf("%w: no live stream for match %d", repository.ErrNotFound, id)
	}
	ch, unsubscribe := lm.subscribe()
	return ch, unsubscribe, nil
}

func (s *matchService) Abort(ctx context.Context, id int64) error {
	rec, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Status != model.StatusRunning {
		return fmt.Errorf("%w: match %d already %s", repository.ErrConflict, id, rec.Status)
	}
	lm, ok := s.hub.get(id)
	if !ok {
		// Running in the database but not in this process: likely a stale
		// row from a crashed run. Conflict, not success.
		return fmt.Errorf("%w: match %d is not simulating in this process", repository.ErrConflict, id)
	}
	lm.cancel()
	s.logger.Info().Int64("match_id", id).Msg("abort requested")
	return nil
}
