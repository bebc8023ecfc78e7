package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
)

// Scenario stores the inputs of a migration scenario (the resolved VM set
// and the target/strategy references) together with the last computed
// result. The result is always replaced wholesale on recalculation.
type Scenario struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt time.Time
	UpdatedAt *time.Time
	Name      string `gorm:"not null"`

	TargetID     uuid.UUID `gorm:"not null;type:VARCHAR(255);index:scenarios_target_id_idx"`
	StrategyKind string    `gorm:"not null;type:VARCHAR(32)"`

	VMSet       *JSONField[[]api.VMResourceProfile] `gorm:"type:jsonb;not null"`
	Constraints *JSONField[*api.WaveConstraints]    `gorm:"type:jsonb"`
	Result      *JSONField[api.MigrationScenario]   `gorm:"type:jsonb"`
}

type ScenarioList []Scenario

func (s Scenario) String() string {
	val, _ := json.Marshal(s)
	return string(val)
}

// VMs returns the stored VM set, never nil.
func (s Scenario) VMs() []api.VMResourceProfile {
	if s.VMSet == nil {
		return []api.VMResourceProfile{}
	}
	return s.VMSet.Data
}

// WaveConstraints returns the stored constraints or nil when the scenario
// was created without a wave plan.
func (s Scenario) WaveConstraints() *api.WaveConstraints {
	if s.Constraints == nil {
		return nil
	}
	return s.Constraints.Data
}
