// Package scheduling partitions a VM set into an ordered sequence of
// migration waves under size constraints and places each wave on a shared
// timeline.
//
// The partitioning is a greedy heuristic with an affinity presort; optimal
// multi-constraint bin-packing is NP-hard and no optimality beyond the
// partition invariant is promised.
package scheduling

import (
	"fmt"
	"sort"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/estimation"
)

type ErrInvalidWaveConstraint struct {
	error
}

func NewErrInvalidWaveConstraint(message string) *ErrInvalidWaveConstraint {
	return &ErrInvalidWaveConstraint{fmt.Errorf("invalid wave constraint: %s", message)}
}

// Scheduler builds wave plans. Per-wave durations come from the replication
// calculator, with the target bandwidth divided by the concurrency factor to
// model bandwidth sharing between waves running in parallel.
type Scheduler struct {
	replication *estimation.ReplicationCalculator
}

func NewScheduler(replication *estimation.ReplicationCalculator) *Scheduler {
	return &Scheduler{replication: replication}
}

// Schedule partitions vms into ordered waves.
//
// VMs sharing an affinity key are grouped contiguously (keyless VMs sort
// last) with the original relative order preserved, then accumulated
// greedily: a wave closes as soon as adding the next VM would exceed either
// limit. A single VM larger than the storage limit forms a wave by itself
// rather than being dropped or split.
//
// The returned waves always partition the input set exactly. An empty set
// yields an empty list.
func (s *Scheduler) Schedule(
	vms []api.VMResourceProfile,
	target estimation.TargetProfile,
	strategy estimation.StrategyProfile,
	constraints api.WaveConstraints,
) ([]api.MigrationWave, error) {
	if constraints.MaxVMsPerWave < 1 {
		return nil, NewErrInvalidWaveConstraint(fmt.Sprintf("max_vms_per_wave=%d must be >= 1", constraints.MaxVMsPerWave))
	}
	if constraints.MaxStorageGBPerWave <= 0 {
		return nil, NewErrInvalidWaveConstraint(fmt.Sprintf("max_storage_gb_per_wave=%v must be > 0", constraints.MaxStorageGBPerWave))
	}
	if constraints.ConcurrencyFactor < 1 {
		return nil, NewErrInvalidWaveConstraint(fmt.Sprintf("concurrency_factor=%d must be >= 1", constraints.ConcurrencyFactor))
	}

	if len(vms) == 0 {
		return []api.MigrationWave{}, nil
	}

	sorted := sortByAffinity(vms)
	waves := packWaves(sorted, constraints)

	perWaveTarget := target.WithBandwidth(target.BandwidthMbps / float64(constraints.ConcurrencyFactor))
	for i := range waves {
		est := s.replication.Estimate(waves[i].AggregateStorageGB, waves[i].VMCount, perWaveTarget, strategy)
		waves[i].DurationHours = est.TotalHours
	}

	assignOffsets(waves, constraints.ConcurrencyFactor)
	return waves, nil
}

// sortByAffinity returns a stable copy: keyed VMs grouped by key, keyless
// last, original order preserved within each group.
func sortByAffinity(vms []api.VMResourceProfile) []api.VMResourceProfile {
	sorted := make([]api.VMResourceProfile, len(vms))
	copy(sorted, vms)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].AffinityKey, sorted[j].AffinityKey
		switch {
		case a == b:
			return false
		case a == "":
			return false
		case b == "":
			return true
		default:
			return a < b
		}
	})
	return sorted
}

func packWaves(vms []api.VMResourceProfile, constraints api.WaveConstraints) []api.MigrationWave {
	waves := []api.MigrationWave{}
	current := api.MigrationWave{VMIDs: []string{}}

	flush := func() {
		if current.VMCount == 0 {
			return
		}
		current.SequenceIndex = len(waves)
		waves = append(waves, current)
		current = api.MigrationWave{VMIDs: []string{}}
	}

	for _, vm := range vms {
		storage := max(vm.StorageProvisionedGB, 0)
		exceedsCount := current.VMCount+1 > constraints.MaxVMsPerWave
		exceedsStorage := current.AggregateStorageGB+storage > constraints.MaxStorageGBPerWave

		// An already-started wave closes before the overflowing VM; an
		// oversized VM lands alone in its own wave.
		if current.VMCount > 0 && (exceedsCount || exceedsStorage) {
			flush()
		}

		current.VMIDs = append(current.VMIDs, vm.ID)
		current.VMCount++
		current.AggregateStorageGB += storage
	}
	flush()

	return waves
}

// assignOffsets places waves on the shared timeline. With a concurrency
// factor of 1 each wave starts when the previous one ends. Above 1, waves
// form concurrency-sized cohorts that start together, each cohort waiting
// for the previous cohort's longest wave.
func assignOffsets(waves []api.MigrationWave, concurrency int) {
	offset := 0.0
	for i := 0; i < len(waves); i += concurrency {
		end := i + concurrency
		if end > len(waves) {
			end = len(waves)
		}

		longest := 0.0
		for j := i; j < end; j++ {
			waves[j].StartOffsetHours = offset
			if waves[j].DurationHours > longest {
				longest = waves[j].DurationHours
			}
		}
		offset += longest
	}
}
