package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/lanewars/internal/model"
)

// Simulation holds all configuration for a lane simulation.
type Simulation struct {
	LogLevel string `yaml:"log_level"`

	// Ticks per second
	TickRate int `yaml:"tick_rate"`
	// Interval between summary log lines (0 disables)
	SummaryEvery time.Duration `yaml:"summary_every"`

	Creep Creep `yaml:"creep"`
	Spawn Spawn `yaml:"spawn"`
	Map   Map   `yaml:"map"`

	// Match journal
	Database DatabaseConfig `yaml:"database"`
	Journal  Journal        `yaml:"journal"`
}

// Creep holds creep movement and state machine parameters.
type Creep struct {
	Speed      float64 `yaml:"speed"`       // world units per tick
	GroundBias float64 `yaml:"ground_bias"` // constant Z displacement
	SkinWidth  float64 `yaml:"skin_width"`

	SearchRadius     float64 `yaml:"search_radius"`
	AttackRadius     float64 `yaml:"attack_radius"`
	PursuitRadius    float64 `yaml:"pursuit_radius"`
	ArrivalThreshold float64 `yaml:"arrival_threshold"`

	UnboundedBaseSearch bool `yaml:"unbounded_base_search"`
}

// Spawn holds the shared spawn countdown.
type Spawn struct {
	Interval     time.Duration `yaml:"interval"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	OnStart      bool          `yaml:"spawn_on_start"`
}

// Point is an (x, y, z) world position.
type Point [3]float64

// Map describes the arena, lanes, bases and heroes.
type Map struct {
	HalfExtent  float64 `yaml:"half_extent"` // arena is [-half_extent, half_extent] on X and Y
	GroundZ     float64 `yaml:"ground_z"`
	AgentRadius float64 `yaml:"agent_radius"`

	Bases  []BaseEntry `yaml:"bases"`
	Lanes  []LaneEntry `yaml:"lanes"`
	Heroes []HeroEntry `yaml:"heroes"`
}

// BaseEntry places a team base.
type BaseEntry struct {
	Team     string  `yaml:"team"`
	Position Point   `yaml:"position"`
	Radius   float64 `yaml:"radius"`
	Health   int32   `yaml:"health"`
}

// LaneEntry is an ordered waypoint chain. The first point is the team's spawn point.
type LaneEntry struct {
	Team   string  `yaml:"team"`
	Points []Point `yaml:"points"`
}

// HeroEntry places a hero. Heroes are moved by an external controller.
type HeroEntry struct {
	Name     string `yaml:"name"`
	Team     string `yaml:"team"`
	Position Point  `yaml:"position"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Journal holds the journal writer queue settings.
type Journal struct {
	BufferSize    int           `yaml:"buffer_size"`    // queued events before drops
	BatchSize     int           `yaml:"batch_size"`     // rows per COPY
	FlushInterval time.Duration `yaml:"flush_interval"` // max time an event waits in a batch
}

// DefaultSimulation returns the two-base, six-lane arena.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:     "info",
		TickRate:     50,
		SummaryEvery: 10 * time.Second,
		Creep: Creep{
			Speed:            0.05,
			GroundBias:       -0.1,
			SkinWidth:        0.01,
			SearchRadius:     10,
			AttackRadius:     5,
			PursuitRadius:    10,
			ArrivalThreshold: 1.0,
		},
		Spawn: Spawn{
			Interval:     5 * time.Second,
			InitialDelay: 5 * time.Second,
		},
		Map: Map{
			HalfExtent:  15,
			GroundZ:     1,
			AgentRadius: 0.3,
			Bases: []BaseEntry{
				{Team: "mars", Position: Point{15, 15, 1}, Radius: 1, Health: 100},
				{Team: "jupyter", Position: Point{-15, -15, 1}, Radius: 1, Health: 100},
			},
			Lanes: []LaneEntry{
				{Team: "mars", Points: []Point{{13, 13, 1}, {-14, 13, 1}, {-14, -11, 1}}},
				{Team: "mars", Points: []Point{{13, 13, 1}, {-13, -13, 1}}},
				{Team: "mars", Points: []Point{{13, 13, 1}, {13, -14, 1}, {-11, -14, 1}}},
				{Team: "jupyter", Points: []Point{{-14, -11, 1}, {-14, 13, 1}, {13, 13, 1}}},
				{Team: "jupyter", Points: []Point{{-13, -13, 1}, {13, 13, 1}}},
				{Team: "jupyter", Points: []Point{{-11, -14, 1}, {13, -14, 1}, {13, 13, 1}}},
			},
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "lanewars",
			Password: "lanewars",
			DBName:   "lanewars",
			SSLMode:  "disable",
		},
		Journal: Journal{
			BufferSize:    4096,
			BatchSize:     256,
			FlushInterval: time.Second,
		},
	}
}

// LoadSimulation loads simulation config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports every invalid value.
func (s Simulation) Validate() error {
	var errs []error

	if s.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", s.TickRate))
	}
	if s.Creep.Speed <= 0 {
		errs = append(errs, fmt.Errorf("creep.speed must be positive, got %v", s.Creep.Speed))
	}
	if s.Creep.AttackRadius <= 0 || s.Creep.PursuitRadius < s.Creep.AttackRadius {
		errs = append(errs, fmt.Errorf("creep radii need 0 < attack_radius <= pursuit_radius, got %v and %v",
			s.Creep.AttackRadius, s.Creep.PursuitRadius))
	}
	if s.Creep.SearchRadius <= 0 {
		errs = append(errs, fmt.Errorf("creep.search_radius must be positive, got %v", s.Creep.SearchRadius))
	}
	if s.Creep.ArrivalThreshold <= 0 {
		errs = append(errs, fmt.Errorf("creep.arrival_threshold must be positive, got %v", s.Creep.ArrivalThreshold))
	}
	if s.Spawn.Interval <= 0 {
		errs = append(errs, fmt.Errorf("spawn.interval must be positive, got %s", s.Spawn.Interval))
	}
	if s.Spawn.InitialDelay < 0 {
		errs = append(errs, fmt.Errorf("spawn.initial_delay must not be negative, got %s", s.Spawn.InitialDelay))
	}
	if s.Map.HalfExtent <= s.Map.AgentRadius {
		errs = append(errs, fmt.Errorf("map.half_extent %v must exceed agent_radius %v", s.Map.HalfExtent, s.Map.AgentRadius))
	}

	for i, b := range s.Map.Bases {
		if _, err := model.ParseTeam(b.Team); err != nil {
			errs = append(errs, fmt.Errorf("map.bases[%d]: %w", i, err))
		}
		if b.Radius < 0 {
			errs = append(errs, fmt.Errorf("map.bases[%d]: negative radius %v", i, b.Radius))
		}
	}
	for i, l := range s.Map.Lanes {
		if _, err := model.ParseTeam(l.Team); err != nil {
			errs = append(errs, fmt.Errorf("map.lanes[%d]: %w", i, err))
		}
		if len(l.Points) == 0 {
			errs = append(errs, fmt.Errorf("map.lanes[%d]: no points", i))
		}
	}
	for i, h := range s.Map.Heroes {
		if _, err := model.ParseTeam(h.Team); err != nil {
			errs = append(errs, fmt.Errorf("map.heroes[%d]: %w", i, err))
		}
	}

	if s.Database.Enabled {
		if s.Journal.BufferSize <= 0 || s.Journal.BatchSize <= 0 {
			errs = append(errs, fmt.Errorf("journal buffer_size and batch_size must be positive"))
		}
		if s.Journal.FlushInterval <= 0 {
			errs = append(errs, fmt.Errorf("journal.flush_interval must be positive, got %s", s.Journal.FlushInterval))
		}
	}

	return errors.Join(errs...)
}
