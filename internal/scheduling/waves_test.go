package scheduling

import (
	"errors"
	"fmt"
	"math"
	"testing"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/estimation"
)

func testTarget(t *testing.T) estimation.TargetProfile {
	t.Helper()
	target, err := estimation.NewTargetProfile(estimation.TargetProfile{
		Name:                    "test",
		BandwidthMbps:           1000,
		CompressionRatio:        1.0,
		DedupRatio:              1.0,
		ChangeRatePercent:       0,
		NetworkProtocolOverhead: 1.0,
	})
	if err != nil {
		t.Fatalf("building target: %v", err)
	}
	return target
}

func testStrategy() estimation.StrategyProfile {
	return estimation.DefaultStrategyCatalog()[api.StrategyKindRehost]
}

func makeVMs(n int, storageGB float64) []api.VMResourceProfile {
	vms := make([]api.VMResourceProfile, 0, n)
	for i := 0; i < n; i++ {
		vms = append(vms, api.VMResourceProfile{
			ID:                   fmt.Sprintf("vm-%02d", i),
			VCPUs:                2,
			MemoryGB:             8,
			StorageProvisionedGB: storageGB,
		})
	}
	return vms
}

func assertPartition(t *testing.T, vms []api.VMResourceProfile, waves []api.MigrationWave) {
	t.Helper()
	seen := map[string]int{}
	for _, w := range waves {
		for _, id := range w.VMIDs {
			seen[id]++
		}
	}
	if len(seen) != len(vms) {
		t.Fatalf("waves cover %d distinct VMs, input has %d", len(seen), len(vms))
	}
	for _, vm := range vms {
		if seen[vm.ID] != 1 {
			t.Errorf("vm %s appears %d times across waves", vm.ID, seen[vm.ID])
		}
	}
}

func TestSchedule_InvalidConstraints(t *testing.T) {
	t.Parallel()
	s := NewScheduler(estimation.NewReplicationCalculator())
	target := testTarget(t)

	cases := []struct {
		name        string
		constraints api.WaveConstraints
	}{
		{"zero max vms", api.WaveConstraints{MaxVMsPerWave: 0, MaxStorageGBPerWave: 100, ConcurrencyFactor: 1}},
		{"zero max storage", api.WaveConstraints{MaxVMsPerWave: 5, MaxStorageGBPerWave: 0, ConcurrencyFactor: 1}},
		{"negative max storage", api.WaveConstraints{MaxVMsPerWave: 5, MaxStorageGBPerWave: -10, ConcurrencyFactor: 1}},
		{"zero concurrency", api.WaveConstraints{MaxVMsPerWave: 5, MaxStorageGBPerWave: 100, ConcurrencyFactor: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := s.Schedule(makeVMs(3, 10), target, testStrategy(), tc.constraints)
			if err == nil {
				t.Fatal("expected error, got none")
			}
			var invalid *ErrInvalidWaveConstraint
			if !errors.As(err, &invalid) {
				t.Errorf("expected ErrInvalidWaveConstraint, got %T", err)
			}
		})
	}
}

func TestSchedule_EmptySetYieldsEmptyList(t *testing.T) {
	t.Parallel()
	s := NewScheduler(estimation.NewReplicationCalculator())
	waves, err := s.Schedule(nil, testTarget(t), testStrategy(), api.WaveConstraints{
		MaxVMsPerWave: 5, MaxStorageGBPerWave: 100, ConcurrencyFactor: 1,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(waves) != 0 {
		t.Errorf("expected empty wave list, got %d waves", len(waves))
	}
}

func TestSchedule_PartitionInvariant(t *testing.T) {
	t.Parallel()
	s := NewScheduler(estimation.NewReplicationCalculator())
	vms := makeVMs(23, 50)

	waves, err := s.Schedule(vms, testTarget(t), testStrategy(), api.WaveConstraints{
		MaxVMsPerWave: 4, MaxStorageGBPerWave: 175, ConcurrencyFactor: 1,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	assertPartition(t, vms, waves)

	for i, w := range waves {
		if w.SequenceIndex != i {
			t.Errorf("wave %d has sequence index %d", i, w.SequenceIndex)
		}
		// 175 GB cap admits at most 3 VMs of 50 GB even though 4 fit by count.
		if w.VMCount > 3 {
			t.Errorf("wave %d has %d VMs, storage cap allows 3", i, w.VMCount)
		}
	}
}

func TestSchedule_AffinityGrouping(t *testing.T) {
	t.Parallel()
	s := NewScheduler(estimation.NewReplicationCalculator())
	vms := []api.VMResourceProfile{
		{ID: "solo-1", StorageProvisionedGB: 10},
		{ID: "db-1", StorageProvisionedGB: 10, AffinityKey: "db"},
		{ID: "app-1", StorageProvisionedGB: 10, AffinityKey: "app"},
		{ID: "db-2", StorageProvisionedGB: 10, AffinityKey: "db"},
		{ID: "app-2", StorageProvisionedGB: 10, AffinityKey: "app"},
	}

	waves, err := s.Schedule(vms, testTarget(t), testStrategy(), api.WaveConstraints{
		MaxVMsPerWave: 2, MaxStorageGBPerWave: 1000, ConcurrencyFactor: 1,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	assertPartition(t, vms, waves)

	// app group first, then db group, keyless last.
	var order []string
	for _, w := range waves {
		order = append(order, w.VMIDs...)
	}
	expected := []string{"app-1", "app-2", "db-1", "db-2", "solo-1"}
	for i, id := range expected {
		if order[i] != id {
			t.Fatalf("expected order %v, got %v", expected, order)
		}
	}
}

func TestSchedule_OversizedVMGetsOwnWave(t *testing.T) {
	t.Parallel()
	s := NewScheduler(estimation.NewReplicationCalculator())
	vms := []api.VMResourceProfile{
		{ID: "small-1", StorageProvisionedGB: 40},
		{ID: "huge", StorageProvisionedGB: 500},
		{ID: "small-2", StorageProvisionedGB: 40},
	}

	waves, err := s.Schedule(vms, testTarget(t), testStrategy(), api.WaveConstraints{
		MaxVMsPerWave: 10, MaxStorageGBPerWave: 100, ConcurrencyFactor: 1,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	assertPartition(t, vms, waves)

	found := false
	for _, w := range waves {
		for _, id := range w.VMIDs {
			if id == "huge" {
				found = true
				if w.VMCount != 1 {
					t.Errorf("oversized VM shares a wave with %d others", w.VMCount-1)
				}
			}
		}
	}
	if !found {
		t.Error("oversized VM was dropped")
	}
}

func TestSchedule_SequentialOffsets(t *testing.T) {
	t.Parallel()
	s := NewScheduler(estimation.NewReplicationCalculator())
	vms := makeVMs(6, 100)

	waves, err := s.Schedule(vms, testTarget(t), testStrategy(), api.WaveConstraints{
		MaxVMsPerWave: 2, MaxStorageGBPerWave: 1000, ConcurrencyFactor: 1,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(waves) != 3 {
		t.Fatalf("expected 3 waves, got %d", len(waves))
	}

	if waves[0].StartOffsetHours != 0 {
		t.Errorf("first wave should start at 0, got %v", waves[0].StartOffsetHours)
	}
	for i := 1; i < len(waves); i++ {
		expected := waves[i-1].StartOffsetHours + waves[i-1].DurationHours
		if math.Abs(waves[i].StartOffsetHours-expected) > 1e-9 {
			t.Errorf("wave %d starts at %v, expected %v", i, waves[i].StartOffsetHours, expected)
		}
	}
}

func TestSchedule_ConcurrentCohorts(t *testing.T) {
	t.Parallel()
	s := NewScheduler(estimation.NewReplicationCalculator())
	vms := makeVMs(8, 100)

	waves, err := s.Schedule(vms, testTarget(t), testStrategy(), api.WaveConstraints{
		MaxVMsPerWave: 2, MaxStorageGBPerWave: 1000, ConcurrencyFactor: 2,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(waves) != 4 {
		t.Fatalf("expected 4 waves, got %d", len(waves))
	}

	// Cohorts of two start together.
	if waves[0].StartOffsetHours != waves[1].StartOffsetHours {
		t.Errorf("cohort waves start apart: %v vs %v", waves[0].StartOffsetHours, waves[1].StartOffsetHours)
	}
	if waves[2].StartOffsetHours != waves[3].StartOffsetHours {
		t.Errorf("cohort waves start apart: %v vs %v", waves[2].StartOffsetHours, waves[3].StartOffsetHours)
	}

	// Second cohort starts after the first cohort's longest wave.
	longest := math.Max(waves[0].DurationHours, waves[1].DurationHours)
	if math.Abs(waves[2].StartOffsetHours-longest) > 1e-9 {
		t.Errorf("second cohort starts at %v, expected %v", waves[2].StartOffsetHours, longest)
	}
}

func TestSchedule_ConcurrencySharesBandwidth(t *testing.T) {
	t.Parallel()
	s := NewScheduler(estimation.NewReplicationCalculator())
	vms := makeVMs(4, 1000)
	constraints := api.WaveConstraints{MaxVMsPerWave: 2, MaxStorageGBPerWave: 1e6}

	constraints.ConcurrencyFactor = 1
	serial, err := s.Schedule(vms, testTarget(t), testStrategy(), constraints)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	constraints.ConcurrencyFactor = 2
	shared, err := s.Schedule(vms, testTarget(t), testStrategy(), constraints)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if shared[0].DurationHours <= serial[0].DurationHours {
		t.Errorf("halved bandwidth should lengthen waves: %v <= %v", shared[0].DurationHours, serial[0].DurationHours)
	}
}

func TestSchedule_Deterministic(t *testing.T) {
	t.Parallel()
	s := NewScheduler(estimation.NewReplicationCalculator())
	vms := makeVMs(10, 75)
	constraints := api.WaveConstraints{MaxVMsPerWave: 3, MaxStorageGBPerWave: 200, ConcurrencyFactor: 2}

	a, err := s.Schedule(vms, testTarget(t), testStrategy(), constraints)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	b, err := s.Schedule(vms, testTarget(t), testStrategy(), constraints)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(a) != len(b) {
		t.Fatalf("wave counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].StartOffsetHours != b[i].StartOffsetHours || a[i].DurationHours != b[i].DurationHours {
			t.Errorf("wave %d differs between runs", i)
		}
	}
}
