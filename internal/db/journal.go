package db

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/path"
	"github.com/udisondev/lanewars/internal/sim"
)

var journalColumns = []string{
	"match_id", "tick", "kind", "object_id", "team",
	"from_state", "to_state", "target_role", "target_id", "waypoint",
	"x", "y", "z",
}

// JournalRepository stores journal events.
type JournalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

// InsertEvents writes events through COPY.
func (r *JournalRepository) InsertEvents(ctx context.Context, matchID uuid.UUID, events []sim.Event) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(events))
	for _, ev := range events {
		rows = append(rows, eventRow(matchID, ev))
	}

	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"journal_events"},
		journalColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting %d journal events for match %s: %w", len(events), matchID, err)
	}
	return nil
}

// CountByKind returns event counts per kind for a match.
func (r *JournalRepository) CountByKind(ctx context.Context, matchID uuid.UUID) (map[sim.EventKind]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT kind, count(*) FROM journal_events WHERE match_id = $1 GROUP BY kind`, [16]byte(matchID))
	if err != nil {
		return nil, fmt.Errorf("query journal_events: %w", err)
	}
	defer rows.Close()

	result := make(map[sim.EventKind]int)
	for rows.Next() {
		var (
			kind  string
			count int64
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan journal_events: %w", err)
		}
		result[sim.EventKind(kind)] = int(count)
	}
	return result, rows.Err()
}

// LoadObjectEvents returns the events of one object in tick order.
func (r *JournalRepository) LoadObjectEvents(ctx context.Context, matchID uuid.UUID, objectID model.ObjectID) ([]sim.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT tick, kind, COALESCE(to_state, ''), COALESCE(waypoint, -1), x, y, z
		 FROM journal_events WHERE match_id = $1 AND object_id = $2
		 ORDER BY tick, id`, [16]byte(matchID), int64(objectID))
	if err != nil {
		return nil, fmt.Errorf("query journal_events for object %d: %w", objectID, err)
	}
	defer rows.Close()

	var result []sim.Event
	for rows.Next() {
		var (
			tick     int64
			kind     string
			toState  string
			waypoint int32
			ev       sim.Event
		)
		if err := rows.Scan(&tick, &kind, &toState, &waypoint, &ev.Position.X, &ev.Position.Y, &ev.Position.Z); err != nil {
			return nil, fmt.Errorf("scan journal_events: %w", err)
		}
		ev.Tick = uint64(tick)
		ev.Kind = sim.EventKind(kind)
		ev.ObjectID = objectID
		ev.Waypoint = path.WaypointID(waypoint)
		if toState != "" {
			s, err := model.ParseState(toState)
			if err != nil {
				return nil, fmt.Errorf("event at tick %d: %w", tick, err)
			}
			ev.To = s
		}
		result = append(result, ev)
	}
	return result, rows.Err()
}

// eventRow maps ev onto journalColumns. Columns that do not apply to the kind are NULL.
func eventRow(matchID uuid.UUID, ev sim.Event) []any {
	var (
		fromState, toState, targetRole *string
		targetID                       *int64
		waypoint                       *int32
	)

	switch ev.Kind {
	case sim.EventCreepSpawned:
		toState = ptr(ev.To.String())
		waypoint = ptr(int32(ev.Waypoint))
	case sim.EventStateChanged:
		fromState = ptr(ev.From.String())
		toState = ptr(ev.To.String())
		if ev.Target.ID != 0 {
			targetRole = ptr(ev.Target.Role.String())
			targetID = ptr(int64(ev.Target.ID))
		}
	case sim.EventWaypointReached:
		waypoint = ptr(int32(ev.Waypoint))
	}

	return []any{
		[16]byte(matchID), int64(ev.Tick), string(ev.Kind), int64(ev.ObjectID), ev.Team.String(),
		fromState, toState, targetRole, targetID, waypoint,
		ev.Position.X, ev.Position.Y, ev.Position.Z,
	}
}

func ptr[T any](v T) *T { return &v }

// EventInserter persists a batch of events.
type EventInserter interface {
	InsertEvents(ctx context.Context, matchID uuid.UUID, events []sim.Event) error
}

// JournalWriter queues events from the simulation goroutine and writes them in batches
// from its own goroutine. Record never blocks: events are dropped when the queue is full.
type JournalWriter struct {
	inserter      EventInserter
	matchID       uuid.UUID
	queue         chan sim.Event
	batchSize     int
	flushInterval time.Duration

	dropped atomic.Uint64
	written atomic.Uint64
	failed  atomic.Uint64
}

// NewJournalWriter creates new JournalWriter.
func NewJournalWriter(inserter EventInserter, matchID uuid.UUID, bufferSize, batchSize int, flushInterval time.Duration) *JournalWriter {
	return &JournalWriter{
		inserter:      inserter,
		matchID:       matchID,
		queue:         make(chan sim.Event, bufferSize),
		batchSize:     batchSize,
		flushInterval: flushInterval,
	}
}

// Record implements sim.Journal.
func (w *JournalWriter) Record(ev sim.Event) {
	select {
	case w.queue <- ev:
	default:
		w.dropped.Add(1)
	}
}

// Dropped returns how many events were discarded on a full queue.
func (w *JournalWriter) Dropped() uint64 { return w.dropped.Load() }

// Written returns how many events were persisted.
func (w *JournalWriter) Written() uint64 { return w.written.Load() }

// Failed returns how many events were lost to insert errors.
func (w *JournalWriter) Failed() uint64 { return w.failed.Load() }

// Run drains the queue until ctx is canceled, then flushes whatever is still queued.
func (w *JournalWriter) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	batch := make([]sim.Event, 0, w.batchSize)
	slog.Info("journal writer started", "matchID", w.matchID, "batchSize", w.batchSize)

	for {
		select {
		case <-ctx.Done():
		drain:
			for {
				select {
				case ev := <-w.queue:
					batch = append(batch, ev)
				default:
					break drain
				}
			}
			// ctx is already done; the final flush gets its own deadline.
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.flush(flushCtx, batch)
			cancel()

			slog.Info("journal writer stopped",
				"written", w.Written(),
				"dropped", w.Dropped(),
				"failed", w.Failed())
			return nil

		case ev := <-w.queue:
			batch = append(batch, ev)
			if len(batch) >= w.batchSize {
				w.flush(ctx, batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(ctx, batch)
				batch = batch[:0]
			}
		}
	}
}

func (w *JournalWriter) flush(ctx context.Context, batch []sim.Event) {
	if len(batch) == 0 {
		return
	}
	if err := w.inserter.InsertEvents(ctx, w.matchID, batch); err != nil {
		w.failed.Add(uint64(len(batch)))
		slog.Error("journal flush failed", "matchID", w.matchID, "events", len(batch), "error", err)
		return
	}
	w.written.Add(uint64(len(batch)))
}
