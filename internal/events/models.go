package events

import (
	api "github.com/migstack/scenario-planner/api/v1alpha1"
)

const (
	ScenarioCreated      = "created"
	ScenarioRecalculated = "recalculated"
)

// ScenarioEvent is emitted whenever a scenario is computed or recomputed.
type ScenarioEvent struct {
	ScenarioID string           `json:"scenario_id"`
	Action     string           `json:"action"`
	Strategy   api.StrategyKind `json:"strategy"`
	VMCount    int              `json:"vm_count"`
	TotalHours float64          `json:"total_hours"`
}
