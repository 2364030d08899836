// Package service holds business logic orchestration across the engine,
// repositories and handlers. Kept intentionally lean: only use-case
// coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/domeballhq/match-engine/internal/model"
	"github.com/domeballhq/match-engine/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures
// (maps to HTTP 400). Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrMatchRunning marks operations that need a finished match (stats,
// result payload) being called on one still in flight.
var ErrMatchRunning = errors.New("match still running")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field
// errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// Pacing modes for a simulation request.
const (
	PacingInstant = "instant"
	PacingPaced   = "paced"
)

// SimulationRequest is the input of one simulation use case.
type SimulationRequest struct {
	Config    model.MatchConfig
	Pacing    string
	TickDelay time.Duration // paced mode only; 0 picks a default
}

// MatchService defines match simulation use cases.
type MatchService interface {
	// SimulateMatch validates and runs a match. Instant mode blocks until
	// the result is ready; paced mode returns immediately with a running
	// record whose updates arrive via Subscribe.
	SimulateMatch(ctx context.Context, req SimulationRequest) (model.MatchRecord, *model.MatchResult, error)
	GetMatch(ctx context.Context, id int64) (model.MatchRecord, error)
	ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.MatchRecord], error)
	GetResult(ctx context.Context, id int64) (model.MatchResult, error)
	// Subscribe attaches a live viewer to a paced match in progress.
	// The returned cancel func must be called when the viewer leaves.
	Subscribe(id int64) (<-chan model.MatchUpdate, func(), error)
	// Abort requests cooperative termination of a paced match.
	Abort(ctx context.Context, id int64) error
}
