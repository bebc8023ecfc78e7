package estimation

import (
	"math"
)

const (
	// DefaultCutoverBaseHours is the fixed validation overhead of a cutover,
	// independent of data volume.
	DefaultCutoverBaseHours = 4.0
	// DefaultCutoverMinutesPerVM is the per-VM functional testing and
	// switchover cost added on top of the base overhead.
	DefaultCutoverMinutesPerVM = 30.0
	// DefaultMaintenanceWindowHours is the length of the nightly maintenance
	// window cutover work is confined to.
	DefaultMaintenanceWindowHours = 8.0

	replicationHoursPerDay = 24.0
)

// ReplicationEstimate is the phased transfer-time breakdown for one data
// volume against one target/strategy pair.
type ReplicationEstimate struct {
	OriginalGB    float64
	EffectiveGB   float64
	TransferredGB float64
	RateGBPerHour float64

	InitialReplicationHours float64
	DeltaSyncHours          float64
	CutoverHours            float64
	TotalHours              float64

	// Replication and delta passes run continuously; cutover only happens
	// inside maintenance windows. The phases are modeled as strictly
	// sequential, a documented simplification.
	ReplicationDays int
	CutoverDays     int
	TotalDays       int
}

// ReplicationCalculator converts a raw data volume and a target/strategy
// pair into a phased time estimate. Inputs are assumed validated by the
// profile constructors.
type ReplicationCalculator struct {
	cutoverBaseHours       float64
	cutoverMinutesPerVM    float64
	maintenanceWindowHours float64
}

// ReplicationOption is a functional option for configuring a ReplicationCalculator.
type ReplicationOption func(*ReplicationCalculator)

// WithCutoverBaseHours overrides the fixed cutover overhead.
// Negative values are ignored and the default is kept.
func WithCutoverBaseHours(hours float64) ReplicationOption {
	return func(c *ReplicationCalculator) {
		if hours >= 0 {
			c.cutoverBaseHours = hours
		}
	}
}

// WithCutoverMinutesPerVM overrides the per-VM validation cost.
// Negative values are ignored and the default is kept.
func WithCutoverMinutesPerVM(minutes float64) ReplicationOption {
	return func(c *ReplicationCalculator) {
		if minutes >= 0 {
			c.cutoverMinutesPerVM = minutes
		}
	}
}

// WithMaintenanceWindowHours overrides the maintenance window length used
// for cutover day conversion. Non-positive values are ignored.
func WithMaintenanceWindowHours(hours float64) ReplicationOption {
	return func(c *ReplicationCalculator) {
		if hours > 0 {
			c.maintenanceWindowHours = hours
		}
	}
}

// NewReplicationCalculator creates a ReplicationCalculator with default
// settings, optionally overridden by ReplicationOption values.
func NewReplicationCalculator(opts ...ReplicationOption) *ReplicationCalculator {
	res := ReplicationCalculator{
		cutoverBaseHours:       DefaultCutoverBaseHours,
		cutoverMinutesPerVM:    DefaultCutoverMinutesPerVM,
		maintenanceWindowHours: DefaultMaintenanceWindowHours,
	}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Estimate computes the phased time estimate for migrating originalGB of
// provisioned storage across vmCount VMs.
//
// Compression and dedup act as independent multiplicative reductions. The
// base rate derives from the target bandwidth after protocol overhead; the
// strategy then scales it by its parallel factor and efficiency multiplier.
// Each delta pass re-transfers only the changed fraction of the effective
// volume. Cutover is a fixed-plus-linear validation term independent of
// data volume, so a zero-storage set with VMs still pays cutover time.
func (c *ReplicationCalculator) Estimate(originalGB float64, vmCount int, target TargetProfile, strategy StrategyProfile) ReplicationEstimate {
	if originalGB < 0 {
		originalGB = 0
	}

	effectiveGB := originalGB * target.CompressionRatio * target.DedupRatio

	// Mbps to GB/h: 3600 seconds per hour, 8 bits per byte, 1024 MB per GB.
	rateGBPerHour := (target.BandwidthMbps * 3600 / (8 * 1024)) / target.NetworkProtocolOverhead
	adjustedRate := rateGBPerHour * strategy.ParallelReplicationFactor / strategy.ReplicationEfficiencyMultiplier

	initialHours := effectiveGB / adjustedRate
	deltaHours := float64(target.DeltaSyncCount) * (effectiveGB * target.ChangeRatePercent) / adjustedRate

	var cutoverHours float64
	if vmCount > 0 {
		cutoverHours = c.cutoverBaseHours + float64(vmCount)*c.cutoverMinutesPerVM/60.0
	}

	transferredGB := effectiveGB * (1 + float64(target.DeltaSyncCount)*target.ChangeRatePercent)

	est := ReplicationEstimate{
		OriginalGB:              originalGB,
		EffectiveGB:             effectiveGB,
		TransferredGB:           transferredGB,
		RateGBPerHour:           adjustedRate,
		InitialReplicationHours: initialHours,
		DeltaSyncHours:          deltaHours,
		CutoverHours:            cutoverHours,
		TotalHours:              initialHours + deltaHours + cutoverHours,
	}

	est.ReplicationDays = int(math.Ceil((initialHours + deltaHours) / replicationHoursPerDay))
	est.CutoverDays = int(math.Ceil(cutoverHours / c.maintenanceWindowHours))
	est.TotalDays = est.ReplicationDays + est.CutoverDays

	return est
}
