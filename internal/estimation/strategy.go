package estimation

import (
	"github.com/google/uuid"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
)

// StrategyProfile captures how one of the six migration strategies affects
// replication. A multiplier above 1 models added complexity (slower); a
// parallel factor above 1 models beneficial parallel replication streams.
type StrategyProfile struct {
	ID   uuid.UUID
	Kind api.StrategyKind

	ReplicationEfficiencyMultiplier float64
	ParallelReplicationFactor       float64
}

// StrategyCatalog maps strategy kinds to their default profiles. The catalog
// is built once and passed in explicitly wherever defaults are needed; there
// is no package-level default state.
type StrategyCatalog map[api.StrategyKind]StrategyProfile

// DefaultStrategyCatalog returns the stock multipliers and parallel factors
// for the six strategies. Rehost is the 1.0 baseline; Refactor carries the
// heaviest re-architecture penalty; Retire and Retain barely replicate.
func DefaultStrategyCatalog() StrategyCatalog {
	catalog := StrategyCatalog{}
	for _, p := range []StrategyProfile{
		{Kind: api.StrategyKindRehost, ReplicationEfficiencyMultiplier: 1.0, ParallelReplicationFactor: 1.0},
		{Kind: api.StrategyKindReplatform, ReplicationEfficiencyMultiplier: 1.3, ParallelReplicationFactor: 1.0},
		{Kind: api.StrategyKindRefactor, ReplicationEfficiencyMultiplier: 2.0, ParallelReplicationFactor: 1.0},
		{Kind: api.StrategyKindRepurchase, ReplicationEfficiencyMultiplier: 0.5, ParallelReplicationFactor: 1.0},
		{Kind: api.StrategyKindRetire, ReplicationEfficiencyMultiplier: 0.1, ParallelReplicationFactor: 1.0},
		{Kind: api.StrategyKindRetain, ReplicationEfficiencyMultiplier: 0.1, ParallelReplicationFactor: 1.0},
	} {
		catalog[p.Kind] = p
	}
	return catalog
}

// NewStrategyProfile validates that the multiplier and parallel factor are
// strictly positive and returns an immutable profile.
func NewStrategyProfile(p StrategyProfile) (StrategyProfile, error) {
	if p.ReplicationEfficiencyMultiplier <= 0 {
		return StrategyProfile{}, NewErrInvalidStrategyParameters("replication_efficiency_multiplier", p.ReplicationEfficiencyMultiplier)
	}
	if p.ParallelReplicationFactor <= 0 {
		return StrategyProfile{}, NewErrInvalidStrategyParameters("parallel_replication_factor", p.ParallelReplicationFactor)
	}
	return p, nil
}
