package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a pgx connection pool for the match journal.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Match is a row of the matches table.
type Match struct {
	ID         uuid.UUID
	StartedAt  time.Time
	FinishedAt *time.Time
	TickRate   int32
	LastTick   int64
}

// MatchRepository manages match rows.
type MatchRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRepository creates new MatchRepository.
func NewMatchRepository(pool *pgxpool.Pool) *MatchRepository {
	return &MatchRepository{pool: pool}
}

// Create inserts a new match.
func (r *MatchRepository) Create(ctx context.Context, id uuid.UUID, tickRate int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO matches (match_id, tick_rate) VALUES ($1, $2)`,
		[16]byte(id), int32(tickRate),
	)
	if err != nil {
		return fmt.Errorf("creating match %s: %w", id, err)
	}
	return nil
}

// Finish stamps the match end and the last simulated tick.
func (r *MatchRepository) Finish(ctx context.Context, id uuid.UUID, lastTick uint64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE matches SET finished_at = now(), last_tick = $2 WHERE match_id = $1`,
		[16]byte(id), int64(lastTick),
	)
	if err != nil {
		return fmt.Errorf("finishing match %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finishing match %s: not found", id)
	}
	return nil
}

// Get loads a match. Returns nil if the match does not exist (not an error).
func (r *MatchRepository) Get(ctx context.Context, id uuid.UUID) (*Match, error) {
	var (
		m  Match
		pk [16]byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT match_id, started_at, finished_at, tick_rate, last_tick
		 FROM matches WHERE match_id = $1`, [16]byte(id),
	).Scan(&pk, &m.StartedAt, &m.FinishedAt, &m.TickRate, &m.LastTick)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying match %s: %w", id, err)
	}
	m.ID = uuid.UUID(pk)
	return &m, nil
}
