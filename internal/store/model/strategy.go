package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/estimation"
)

type Strategy struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt time.Time
	UpdatedAt *time.Time
	Kind      string `gorm:"not null;uniqueIndex;type:VARCHAR(32)"`

	ReplicationEfficiencyMultiplier float64 `gorm:"not null"`
	ParallelReplicationFactor       float64 `gorm:"not null"`
}

type StrategyList []Strategy

func (s Strategy) String() string {
	val, _ := json.Marshal(s)
	return string(val)
}

// Profile converts the row into a validated estimation profile.
func (s Strategy) Profile() (estimation.StrategyProfile, error) {
	return estimation.NewStrategyProfile(estimation.StrategyProfile{
		ID:                              s.ID,
		Kind:                            api.StringToStrategyKind(s.Kind),
		ReplicationEfficiencyMultiplier: s.ReplicationEfficiencyMultiplier,
		ParallelReplicationFactor:       s.ParallelReplicationFactor,
	})
}

// NewStrategyFromAPI maps an API create request onto a row.
func NewStrategyFromAPI(id uuid.UUID, req api.CreateStrategyRequest) Strategy {
	return Strategy{
		ID:                              id,
		Kind:                            string(req.Kind),
		ReplicationEfficiencyMultiplier: req.ReplicationEfficiencyMultiplier,
		ParallelReplicationFactor:       req.ParallelReplicationFactor,
	}
}

// ToAPI maps the row to its API representation.
func (s Strategy) ToAPI() api.Strategy {
	return api.Strategy{
		ID: s.ID,
		CreateStrategyRequest: api.CreateStrategyRequest{
			Kind:                            api.StringToStrategyKind(s.Kind),
			ReplicationEfficiencyMultiplier: s.ReplicationEfficiencyMultiplier,
			ParallelReplicationFactor:       s.ParallelReplicationFactor,
		},
	}
}
