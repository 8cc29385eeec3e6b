package layout

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/fourd/core"
	"github.com/katalvlaran/fourd/matching"
)

// ErrInvariant indicates a corrupted hierarchy.
var ErrInvariant = errors.New("layout: invariant violated")

// defaultRNGSeed replaces a zero seed.
const defaultRNGSeed int64 = 1

// spawnRadius bounds the initial coordinates of a new vertex.
const spawnRadius = 10.0

func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// Option configures a Graph at construction.
type Option func(*config)

type config struct {
	settings core.Settings
	seed     int64
	rule     matching.Rule
}

func defaultConfig() config {
	return config{settings: core.DefaultSettings(), rule: matching.RuleGreedy}
}

// WithSettings replaces the default knobs. Panics if s is invalid.
func WithSettings(s core.Settings) Option {
	if err := s.Validate(); err != nil {
		panic(fmt.Sprintf("layout: WithSettings: %v", err))
	}
	return func(c *config) { c.settings = s }
}

// WithSeed fixes the random source used for spawn positions, edge orders and
// repulsion jitter. Seed 0 selects a fixed default seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithMatchingRule selects the eligibility rule of every level.
func WithMatchingRule(r matching.Rule) Option {
	matching.WithRule(r) // validates
	return func(c *config) { c.rule = r }
}

// Snapshot is the state of one level after a tick.
type Snapshot struct {
	ID int           `json:"id"`
	V  []VertexState `json:"V"`
	E  []EdgeState   `json:"E"`
}

// VertexState is a vertex entry of a Snapshot.
type VertexState struct {
	ID       int        `json:"id"`
	Position [3]float64 `json:"position"`
}

// EdgeState is an edge entry of a Snapshot.
type EdgeState struct {
	ID     int `json:"id"`
	Source int `json:"source"`
	Target int `json:"target"`
}

// LevelStats describes one level of a hierarchy.
type LevelStats struct {
	Depth    int    // 0 for the root
	ID       int    // graph id
	Vertices int    // live vertices
	Edges    int    // live edges
	Matched  int    // matched edges (0 on the coarsest level)
	Flips    uint64 // matching transitions since creation or Clear
	Ticks    uint64 // Layout calls since creation or Clear
}
