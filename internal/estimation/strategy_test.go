package estimation

import (
	"errors"
	"testing"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
)

func TestDefaultStrategyCatalog_CoversAllKinds(t *testing.T) {
	t.Parallel()
	catalog := DefaultStrategyCatalog()

	kinds := []api.StrategyKind{
		api.StrategyKindRehost,
		api.StrategyKindReplatform,
		api.StrategyKindRefactor,
		api.StrategyKindRepurchase,
		api.StrategyKindRetire,
		api.StrategyKindRetain,
	}
	if len(catalog) != len(kinds) {
		t.Fatalf("expected %d entries, got %d", len(kinds), len(catalog))
	}
	for _, kind := range kinds {
		profile, ok := catalog[kind]
		if !ok {
			t.Errorf("missing catalog entry for %s", kind)
			continue
		}
		if _, err := NewStrategyProfile(profile); err != nil {
			t.Errorf("default profile for %s is invalid: %v", kind, err)
		}
	}
}

func TestDefaultStrategyCatalog_RehostIsBaseline(t *testing.T) {
	t.Parallel()
	catalog := DefaultStrategyCatalog()
	rehost := catalog[api.StrategyKindRehost]
	if rehost.ReplicationEfficiencyMultiplier != 1.0 {
		t.Errorf("expected rehost multiplier 1.0, got %v", rehost.ReplicationEfficiencyMultiplier)
	}
}

func TestNewStrategyProfile_Rejections(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		profile StrategyProfile
	}{
		{"zero multiplier", StrategyProfile{Kind: api.StrategyKindRehost, ReplicationEfficiencyMultiplier: 0, ParallelReplicationFactor: 1}},
		{"negative multiplier", StrategyProfile{Kind: api.StrategyKindRehost, ReplicationEfficiencyMultiplier: -1, ParallelReplicationFactor: 1}},
		{"zero parallel factor", StrategyProfile{Kind: api.StrategyKindRehost, ReplicationEfficiencyMultiplier: 1, ParallelReplicationFactor: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewStrategyProfile(tc.profile)
			if err == nil {
				t.Fatal("expected validation error, got none")
			}
			var invalid *ErrInvalidStrategyParameters
			if !errors.As(err, &invalid) {
				t.Errorf("expected ErrInvalidStrategyParameters, got %T", err)
			}
		})
	}
}
