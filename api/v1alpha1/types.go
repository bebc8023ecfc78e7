package v1alpha1

import (
	"github.com/google/uuid"
)

// ScenarioSchemaVersion is the current version of the MigrationScenario
// derived-output record. Consumers should tolerate unknown fields and use
// this version to detect additive changes.
const ScenarioSchemaVersion = 2

// StrategyKind is one of the six migration strategies ("6 Rs").
type StrategyKind string

const (
	StrategyKindRehost     StrategyKind = "REHOST"
	StrategyKindReplatform StrategyKind = "REPLATFORM"
	StrategyKindRefactor   StrategyKind = "REFACTOR"
	StrategyKindRepurchase StrategyKind = "REPURCHASE"
	StrategyKindRetire     StrategyKind = "RETIRE"
	StrategyKindRetain     StrategyKind = "RETAIN"
)

// VMResourceProfile is a snapshot of one VM's resource footprint.
// It is supplied to the planner already resolved and is treated as read-only.
type VMResourceProfile struct {
	ID                   string  `json:"id"`
	VCPUs                int     `json:"vcpus"`
	MemoryGB             float64 `json:"memoryGB"`
	StorageProvisionedGB float64 `json:"storageProvisionedGB"`
	StorageUsedGB        float64 `json:"storageUsedGB"`
	AffinityKey          string  `json:"affinityKey,omitempty"`
}

// WaveConstraints are the limits used to partition a VM set into waves.
type WaveConstraints struct {
	MaxVMsPerWave       int     `json:"maxVmsPerWave"`
	MaxStorageGBPerWave float64 `json:"maxStorageGBPerWave"`
	ConcurrencyFactor   int     `json:"concurrencyFactor"`
}

// MigrationWave is one ordered batch of VMs within a scenario.
type MigrationWave struct {
	SequenceIndex      int      `json:"sequenceIndex"`
	VMIDs              []string `json:"vmIds"`
	VMCount            int      `json:"vmCount"`
	AggregateStorageGB float64  `json:"aggregateStorageGB"`
	StartOffsetHours   float64  `json:"startOffsetHours"`
	DurationHours      float64  `json:"durationHours"`
}

// DurationBreakdown is the phased time estimate for a scenario.
// Replication and delta phases run around the clock; cutover is confined to
// maintenance windows, so the day figures use different divisors.
type DurationBreakdown struct {
	InitialReplicationHours float64 `json:"initialReplicationHours"`
	DeltaSyncHours          float64 `json:"deltaSyncHours"`
	CutoverHours            float64 `json:"cutoverHours"`
	TotalHours              float64 `json:"totalHours"`
	ReplicationDays         int     `json:"replicationDays"`
	CutoverDays             int     `json:"cutoverDays"`
	TotalDays               int     `json:"totalDays"`
}

// CostBreakdown separates the one-time migration cost from the recurring
// monthly runtime cost, each with named categories for auditability.
type CostBreakdown struct {
	MigrationTotal      float64            `json:"migrationTotal"`
	RuntimeMonthlyTotal float64            `json:"runtimeMonthlyTotal"`
	MigrationCategories map[string]float64 `json:"migrationCategories"`
	RuntimeCategories   map[string]float64 `json:"runtimeCategories"`
}

// MigrationScenario is the fully computed plan for one (VM set, target,
// strategy) choice. It is a pure function of its inputs: recalculation
// replaces the whole record, never patches it.
type MigrationScenario struct {
	SchemaVersion int `json:"schemaVersion"`

	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	TargetID   uuid.UUID    `json:"targetId"`
	StrategyID uuid.UUID    `json:"strategyId"`
	Strategy   StrategyKind `json:"strategy"`

	VMCount        int     `json:"vmCount"`
	TotalVCPUs     int     `json:"totalVcpus"`
	TotalMemoryGB  float64 `json:"totalMemoryGB"`
	TotalStorageGB float64 `json:"totalStorageGB"`

	Duration       DurationBreakdown  `json:"duration"`
	Cost           CostBreakdown      `json:"cost"`
	DataEfficiency map[string]float64 `json:"dataEfficiency"`

	Waves []MigrationWave `json:"waves,omitempty"`

	// Deprecated: kept for consumers of schema version 1. Mirrors
	// Duration.TotalHours and Cost.MigrationTotal.
	TotalHours    float64 `json:"totalHours"`
	MigrationCost float64 `json:"migrationCost"`
}

// BulkRecalculationFailure describes one scenario that could not be
// recalculated during a bulk run.
type BulkRecalculationFailure struct {
	ID        uuid.UUID `json:"id"`
	ErrorKind string    `json:"errorKind"`
	Message   string    `json:"message"`
}

// BulkRecalculationResult is the outcome of a bulk recalculation run.
// A failure on one scenario never aborts the others.
type BulkRecalculationResult struct {
	Updated []MigrationScenario        `json:"updated"`
	Failed  []BulkRecalculationFailure `json:"failed"`
}

// StringToStrategyKind maps a raw string to a StrategyKind, defaulting to
// REHOST for unknown values.
func StringToStrategyKind(s string) StrategyKind {
	switch s {
	case string(StrategyKindRehost):
		return StrategyKindRehost
	case string(StrategyKindReplatform):
		return StrategyKindReplatform
	case string(StrategyKindRefactor):
		return StrategyKindRefactor
	case string(StrategyKindRepurchase):
		return StrategyKindRepurchase
	case string(StrategyKindRetire):
		return StrategyKindRetire
	case string(StrategyKindRetain):
		return StrategyKindRetain
	default:
		return StrategyKindRehost
	}
}
