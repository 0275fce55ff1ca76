package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/lanewars/internal/ai"
	"github.com/udisondev/lanewars/internal/config"
	"github.com/udisondev/lanewars/internal/db"
	"github.com/udisondev/lanewars/internal/sim"
)

const ConfigPath = "config/lanesim.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("LANEWARS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Per-creep logs are only built when debug is on
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	matchID := uuid.New()
	slog.Info("lanesim starting",
		"log_level", cfg.LogLevel,
		"matchID", matchID,
		"tick_rate", cfg.TickRate,
		"lanes", len(cfg.Map.Lanes))

	engine, _, err := sim.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	runner := sim.NewRunner(engine, cfg.TickRate)
	if cfg.SummaryEvery > 0 {
		runner.SetSummaryEvery(uint64(cfg.SummaryEvery / runner.Interval()))
	}

	var (
		matches *db.MatchRepository
		writer  *db.JournalWriter
	)
	if cfg.Database.Enabled {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		matches = db.NewMatchRepository(database.Pool())
		if err := matches.Create(ctx, matchID, cfg.TickRate); err != nil {
			return err
		}

		writer = db.NewJournalWriter(
			db.NewJournalRepository(database.Pool()),
			matchID,
			cfg.Journal.BufferSize,
			cfg.Journal.BatchSize,
			cfg.Journal.FlushInterval,
		)
		engine.SetJournal(writer)
	}

	g, gctx := errgroup.WithContext(ctx)

	// The writer is stopped by the runner, not by the signal, so events of the last tick
	// are still flushed.
	writerCtx, stopWriter := context.WithCancel(context.Background())
	defer stopWriter()

	g.Go(func() error {
		defer stopWriter()
		slog.Info("starting simulation runner", "interval", runner.Interval())
		if err := runner.Start(gctx); err != nil {
			return fmt.Errorf("simulation runner: %w", err)
		}
		return nil
	})

	if writer != nil {
		g.Go(func() error {
			if err := writer.Run(writerCtx); err != nil {
				return fmt.Errorf("journal writer: %w", err)
			}
			return nil
		})
	}

	err = g.Wait()
	slog.Info("simulation finished", engine.Summary().LogArgs()...)

	if matches != nil {
		finishCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if ferr := matches.Finish(finishCtx, matchID, engine.Tick()); ferr != nil {
			slog.Error("finishing match", "matchID", matchID, "err", ferr)
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("simulation error: %w", err)
	}
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
