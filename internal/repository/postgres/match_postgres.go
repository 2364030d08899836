package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/domeballhq/match-engine/internal/model"
	"github.com/domeballhq/match-engine/internal/repository"
)

// matchRepository persists simulated matches. The scalar columns carry
// what list views need; the full result (event log, stat lines, reports)
// lives in a single JSONB document per match.
type matchRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRepository builds a Postgres-backed match store.
func NewMatchRepository(pool *pgxpool.Pool) (repository.MatchRepository, error) {
	if err := ensurePool(pool); err != nil {
		return nil, err
	}
	return &matchRepository{pool: pool}, nil
}

var _ repository.MatchRepository = (*matchRepository)(nil)

const matchColumns = `id, kind, seed, home_team, away_team, status, termination, home_score, away_score, created_at, updated_at`

func scanMatch(row pgx.Row) (model.MatchRecord, error) {
	var rec model.MatchRecord
	err := row.Scan(
		&rec.ID, &rec.Kind, &rec.Seed, &rec.HomeTeam, &rec.AwayTeam,
		&rec.Status, &rec.Termination, &rec.HomeScore, &rec.AwayScore,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *matchRepository) Create(ctx context.Context, rec model.MatchRecord) (model.MatchRecord, error) {
	const sql = `
		INSERT INTO matches (kind, seed, home_team, away_team, status, termination, home_score, away_score)
		VALUES ($1, $2, $3, $4, $5, '', 0, 0)
		RETURNING ` + matchColumns

	created, err := scanMatch(getQ(ctx, r.pool).QueryRow(ctx, sql,
		rec.Kind, rec.Seed, rec.HomeTeam, rec.AwayTeam, rec.Status))
	if err != nil {
		return model.MatchRecord{}, repository.MapPgError(err)
	}
	return created, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int64) (model.MatchRecord, error) {
	const sql = `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	rec, err := scanMatch(getQ(ctx, r.pool).QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MatchRecord{}, repository.ErrNotFound
		}
		return model.MatchRecord{}, repository.MapPgError(err)
	}
	return rec, nil
}

func (r *matchRepository) List(ctx context.Context, page repository.Page) (repository.PageResult[model.MatchRecord], error) {
	limit, offset := sanitizeLimitOffset(page.Limit, page.Offset)
	const sql = `
		SELECT ` + matchColumns + `, count(*) OVER() AS total
		FROM matches
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`

	rows, err := getQ(ctx, r.pool).Query(ctx, sql, limit, offset)
	if err != nil {
		return repository.PageResult[model.MatchRecord]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	result := repository.PageResult[model.MatchRecord]{Items: []model.MatchRecord{}}
	for rows.Next() {
		var rec model.MatchRecord
		if err := rows.Scan(
			&rec.ID, &rec.Kind, &rec.Seed, &rec.HomeTeam, &rec.AwayTeam,
			&rec.Status, &rec.Termination, &rec.HomeScore, &rec.AwayScore,
			&rec.CreatedAt, &rec.UpdatedAt, &result.Total,
		); err != nil {
			return repository.PageResult[model.MatchRecord]{}, repository.MapPgError(err)
		}
		result.Items = append(result.Items, rec)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.MatchRecord]{}, repository.MapPgError(err)
	}
	return result, nil
}

func (r *matchRepository) SaveResult(ctx context.Context, id int64, res model.MatchResult) (model.MatchRecord, error) {
	payload, err := json.Marshal(res)
	if err != nil {
		return model.MatchRecord{}, fmt.Errorf("marshal match result: %w", err)
	}

	const sql = `
		UPDATE matches
		SET status = $2, termination = $3, home_score = $4, away_score = $5,
		    result = $6, updated_at = now()
		WHERE id = $1
		RETURNING ` + matchColumns

	rec, err := scanMatch(getQ(ctx, r.pool).QueryRow(ctx, sql,
		id, res.Status, res.Termination, res.HomeScore, res.AwayScore, payload))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MatchRecord{}, repository.ErrNotFound
		}
		return model.MatchRecord{}, repository.MapPgError(err)
	}
	return rec, nil
}

func (r *matchRepository) GetResult(ctx context.Context, id int64) (model.MatchResult, error) {
	const sql = `SELECT result FROM matches WHERE id = $1`

	var payload []byte
	if err := getQ(ctx, r.pool).QueryRow(ctx, sql, id).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MatchResult{}, repository.ErrNotFound
		}
		return model.MatchResult{}, repository.MapPgError(err)
	}
	if len(payload) == 0 {
		// Row exists but no result stored yet: the match never finished.
		return model.MatchResult{}, repository.ErrNotFound
	}

	var res model.MatchResult
	if err := json.Unmarshal(payload, &res); err != nil {
		return model.MatchResult{}, fmt.Errorf("unmarshal match result: %w", err)
	}
	return res, nil
}
