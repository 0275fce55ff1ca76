package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/udisondev/lanewars/internal/config"
	"github.com/udisondev/lanewars/internal/model"
	"github.com/udisondev/lanewars/internal/sim"
)

type report struct {
	ticks   int
	dt      float64
	summary sim.Summary
	events  map[sim.EventKind]int

	firstContactTick uint64 // first MOVE -> PURSUIT, 0 if none
	firstAttackTick  uint64 // first PURSUIT -> ATTACK, 0 if none
}

func main() {
	var (
		cfgPath      string
		ticks        int
		dt           float64
		spawnOnStart bool
	)
	flag.StringVar(&cfgPath, "config", "config/lanesim.yaml", "simulation config (defaults if missing)")
	flag.IntVar(&ticks, "ticks", 3000, "ticks to simulate")
	flag.Float64Var(&dt, "dt", 0, "seconds per tick (0 uses 1/tick_rate)")
	flag.BoolVar(&spawnOnStart, "spawn-on-start", true, "spawn one batch before the first tick")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}

	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	cfg.Spawn.OnStart = cfg.Spawn.OnStart || spawnOnStart
	if dt <= 0 {
		dt = 1 / float64(cfg.TickRate)
	}

	r, err := runReport(cfg, ticks, dt)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	printReport(os.Stdout, r)
}

// runReport runs a headless match and collects its statistics.
func runReport(cfg config.Simulation, ticks int, dt float64) (report, error) {
	engine, _, err := sim.NewFromConfig(cfg)
	if err != nil {
		return report{}, fmt.Errorf("building scene: %w", err)
	}
	journal := &sim.MemoryJournal{}
	engine.SetJournal(journal)

	if err := sim.RunTicks(engine, ticks, dt); err != nil {
		return report{}, fmt.Errorf("tick %d: %w", engine.Tick(), err)
	}

	r := report{
		ticks:   ticks,
		dt:      dt,
		summary: engine.Summary(),
		events:  make(map[sim.EventKind]int),
	}
	for _, ev := range journal.Events() {
		r.events[ev.Kind]++
		if ev.Kind != sim.EventStateChanged {
			continue
		}
		if ev.To == model.StatePursuit && r.firstContactTick == 0 {
			r.firstContactTick = ev.Tick
		}
		if ev.To == model.StateAttack && r.firstAttackTick == 0 {
			r.firstAttackTick = ev.Tick
		}
	}
	return r, nil
}

func printReport(w io.Writer, r report) {
	fmt.Fprintf(w, "=== Lane Report ===\n")
	fmt.Fprintf(w, "ticks=%d dt=%.4f simulated=%.1fs\n\n", r.ticks, r.dt, float64(r.ticks)*r.dt)

	s := r.summary
	fmt.Fprintf(w, "creeps=%d mars=%d jupyter=%d bases=%d heroes=%d\n",
		s.Creeps, s.ByTeam[model.TeamMars], s.ByTeam[model.TeamJupyter], s.Bases, s.Heroes)
	fmt.Fprintf(w, "states: move=%d pursuit=%d attack=%d\n",
		s.ByState[model.StateMove], s.ByState[model.StatePursuit], s.ByState[model.StateAttack])
	fmt.Fprintf(w, "first_contact_tick=%s first_attack_tick=%s\n\n",
		tickOrNone(r.firstContactTick), tickOrNone(r.firstAttackTick))

	kinds := make([]string, 0, len(r.events))
	for k := range r.events {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	fmt.Fprintf(w, "events:\n")
	for _, k := range kinds {
		fmt.Fprintf(w, "  %-18s %d\n", k, r.events[sim.EventKind(k)])
	}
}

func tickOrNone(t uint64) string {
	if t == 0 {
		return "none"
	}
	return fmt.Sprintf("%d", t)
}
