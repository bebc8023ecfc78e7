package estimation

import (
	"github.com/google/uuid"
)

// TargetProfile describes a destination platform's capacity and transfer
// economics. Instances are immutable once built; NewTargetProfile rejects
// out-of-range parameters so downstream calculators never have to.
type TargetProfile struct {
	ID   uuid.UUID
	Name string

	BandwidthMbps float64

	ComputeCostPerVCPUHour float64
	MemoryCostPerGBHour    float64
	StorageCostPerGBMonth  float64
	EgressCostPerGB        float64

	// CompressionRatio and DedupRatio are the fractions of the original
	// volume remaining after each reduction (1.0 = no reduction).
	CompressionRatio float64
	DedupRatio       float64

	// ChangeRatePercent is the fraction of data that changes between delta
	// sync passes, expressed in [0,1].
	ChangeRatePercent       float64
	NetworkProtocolOverhead float64
	DeltaSyncCount          int
}

// NewTargetProfile validates the declared bounds and returns an immutable
// profile, or an ErrInvalidTargetParameters describing the first violation.
func NewTargetProfile(p TargetProfile) (TargetProfile, error) {
	if p.BandwidthMbps <= 0 {
		return TargetProfile{}, NewErrInvalidTargetParameters("bandwidth_mbps", p.BandwidthMbps, "> 0")
	}
	if p.CompressionRatio <= 0 || p.CompressionRatio > 1 {
		return TargetProfile{}, NewErrInvalidTargetParameters("compression_ratio", p.CompressionRatio, "in (0,1]")
	}
	if p.DedupRatio <= 0 || p.DedupRatio > 1 {
		return TargetProfile{}, NewErrInvalidTargetParameters("dedup_ratio", p.DedupRatio, "in (0,1]")
	}
	if p.ChangeRatePercent < 0 || p.ChangeRatePercent > 1 {
		return TargetProfile{}, NewErrInvalidTargetParameters("change_rate_percent", p.ChangeRatePercent, "in [0,1]")
	}
	if p.NetworkProtocolOverhead < 1 {
		return TargetProfile{}, NewErrInvalidTargetParameters("network_protocol_overhead", p.NetworkProtocolOverhead, ">= 1")
	}
	if p.DeltaSyncCount < 0 {
		return TargetProfile{}, NewErrInvalidTargetParameters("delta_sync_count", float64(p.DeltaSyncCount), ">= 0")
	}
	for field, cost := range map[string]float64{
		"compute_cost_per_vcpu_hour": p.ComputeCostPerVCPUHour,
		"memory_cost_per_gb_hour":    p.MemoryCostPerGBHour,
		"storage_cost_per_gb_month":  p.StorageCostPerGBMonth,
		"egress_cost_per_gb":         p.EgressCostPerGB,
	} {
		if cost < 0 {
			return TargetProfile{}, NewErrInvalidTargetParameters(field, cost, ">= 0")
		}
	}
	return p, nil
}

// WithBandwidth returns a copy of the profile with the given bandwidth.
// The wave scheduler uses it to model bandwidth sharing between concurrent
// waves; the caller guarantees mbps > 0.
func (p TargetProfile) WithBandwidth(mbps float64) TargetProfile {
	p.BandwidthMbps = mbps
	return p
}
