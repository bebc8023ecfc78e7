package v1alpha1

import (
	"github.com/google/uuid"
)

// Error is the generic error payload returned by the API.
type Error struct {
	Message   string  `json:"message"`
	RequestID *string `json:"requestId,omitempty"`
}

// CreateTargetRequest carries the transfer economics and capacity of a
// destination platform. Ratio bounds are enforced at profile construction.
type CreateTargetRequest struct {
	Name                    string  `json:"name" validate:"required,target_name"`
	BandwidthMbps           float64 `json:"bandwidthMbps" validate:"gt=0"`
	ComputeCostPerVCPUHour  float64 `json:"computeCostPerVcpuHour" validate:"gte=0"`
	MemoryCostPerGBHour     float64 `json:"memoryCostPerGBHour" validate:"gte=0"`
	StorageCostPerGBMonth   float64 `json:"storageCostPerGBMonth" validate:"gte=0"`
	EgressCostPerGB         float64 `json:"egressCostPerGB" validate:"gte=0"`
	CompressionRatio        float64 `json:"compressionRatio" validate:"gt=0,lte=1"`
	DedupRatio              float64 `json:"dedupRatio" validate:"gt=0,lte=1"`
	ChangeRatePercent       float64 `json:"changeRatePercent" validate:"gte=0,lte=1"`
	NetworkProtocolOverhead float64 `json:"networkProtocolOverhead" validate:"gte=1"`
	DeltaSyncCount          int     `json:"deltaSyncCount" validate:"gte=0"`
}

// Target is the API representation of a stored target profile.
type Target struct {
	ID uuid.UUID `json:"id"`
	CreateTargetRequest
}

// CreateStrategyRequest registers a strategy profile for one of the six
// migration strategy kinds.
type CreateStrategyRequest struct {
	Kind                            StrategyKind `json:"kind" validate:"required,strategy_kind"`
	ReplicationEfficiencyMultiplier float64      `json:"replicationEfficiencyMultiplier" validate:"gt=0"`
	ParallelReplicationFactor       float64      `json:"parallelReplicationFactor" validate:"gt=0"`
}

// Strategy is the API representation of a stored strategy profile.
type Strategy struct {
	ID uuid.UUID `json:"id"`
	CreateStrategyRequest
}

// CreateScenarioRequest creates a migration scenario from an already
// resolved VM set. WaveConstraints is optional; when omitted no wave plan
// is computed.
type CreateScenarioRequest struct {
	Name            string              `json:"name" validate:"required,scenario_name"`
	TargetID        uuid.UUID           `json:"targetId" validate:"targetId"`
	Strategy        StrategyKind        `json:"strategy" validate:"required,strategy_kind"`
	VMs             []VMResourceProfile `json:"vms"`
	WaveConstraints *WaveConstraints    `json:"waveConstraints,omitempty"`
}

// BulkRecalculateRequest asks for a set of scenarios to be recalculated.
type BulkRecalculateRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}
