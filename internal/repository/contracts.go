package repository

import (
	"context"

	"github.com/domeballhq/match-engine/internal/model"
)

// Pinger verifies connectivity to the underlying storage.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc runs inside a transaction; returning an error rolls it back.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transaction boundaries so services stay storage-agnostic.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// MatchRepository persists simulated matches and their full results.
// The result payload is stored as a single document next to the row:
// the event log is the canonical record and is always read back whole.
type MatchRepository interface {
	Create(ctx context.Context, rec model.MatchRecord) (model.MatchRecord, error)
	GetByID(ctx context.Context, id int64) (model.MatchRecord, error)
	List(ctx context.Context, page Page) (PageResult[model.MatchRecord], error)
	// SaveResult marks the match terminal and stores the result document.
	SaveResult(ctx context.Context, id int64, res model.MatchResult) (model.MatchRecord, error)
	GetResult(ctx context.Context, id int64) (model.MatchResult, error)
}
