package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/estimation"
)

type Target struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:VARCHAR(255);"`
	CreatedAt time.Time
	UpdatedAt *time.Time
	Name      string `gorm:"not null;uniqueIndex"`

	BandwidthMbps           float64 `gorm:"not null"`
	ComputeCostPerVCPUHour  float64
	MemoryCostPerGBHour     float64
	StorageCostPerGBMonth   float64
	EgressCostPerGB         float64
	CompressionRatio        float64 `gorm:"not null"`
	DedupRatio              float64 `gorm:"not null"`
	ChangeRatePercent       float64
	NetworkProtocolOverhead float64 `gorm:"not null"`
	DeltaSyncCount          int
}

type TargetList []Target

func (t Target) String() string {
	val, _ := json.Marshal(t)
	return string(val)
}

// Profile converts the row into a validated estimation profile. Rows are
// written through the same validation, so an error here means the stored
// data was tampered with.
func (t Target) Profile() (estimation.TargetProfile, error) {
	return estimation.NewTargetProfile(estimation.TargetProfile{
		ID:                      t.ID,
		Name:                    t.Name,
		BandwidthMbps:           t.BandwidthMbps,
		ComputeCostPerVCPUHour:  t.ComputeCostPerVCPUHour,
		MemoryCostPerGBHour:     t.MemoryCostPerGBHour,
		StorageCostPerGBMonth:   t.StorageCostPerGBMonth,
		EgressCostPerGB:         t.EgressCostPerGB,
		CompressionRatio:        t.CompressionRatio,
		DedupRatio:              t.DedupRatio,
		ChangeRatePercent:       t.ChangeRatePercent,
		NetworkProtocolOverhead: t.NetworkProtocolOverhead,
		DeltaSyncCount:          t.DeltaSyncCount,
	})
}

// NewTargetFromAPI maps an API create request onto a row.
func NewTargetFromAPI(id uuid.UUID, req api.CreateTargetRequest) Target {
	return Target{
		ID:                      id,
		Name:                    req.Name,
		BandwidthMbps:           req.BandwidthMbps,
		ComputeCostPerVCPUHour:  req.ComputeCostPerVCPUHour,
		MemoryCostPerGBHour:     req.MemoryCostPerGBHour,
		StorageCostPerGBMonth:   req.StorageCostPerGBMonth,
		EgressCostPerGB:         req.EgressCostPerGB,
		CompressionRatio:        req.CompressionRatio,
		DedupRatio:              req.DedupRatio,
		ChangeRatePercent:       req.ChangeRatePercent,
		NetworkProtocolOverhead: req.NetworkProtocolOverhead,
		DeltaSyncCount:          req.DeltaSyncCount,
	}
}

// ToAPI maps the row to its API representation.
func (t Target) ToAPI() api.Target {
	return api.Target{
		ID: t.ID,
		CreateTargetRequest: api.CreateTargetRequest{
			Name:                    t.Name,
			BandwidthMbps:           t.BandwidthMbps,
			ComputeCostPerVCPUHour:  t.ComputeCostPerVCPUHour,
			MemoryCostPerGBHour:     t.MemoryCostPerGBHour,
			StorageCostPerGBMonth:   t.StorageCostPerGBMonth,
			EgressCostPerGB:         t.EgressCostPerGB,
			CompressionRatio:        t.CompressionRatio,
			DedupRatio:              t.DedupRatio,
			ChangeRatePercent:       t.ChangeRatePercent,
			NetworkProtocolOverhead: t.NetworkProtocolOverhead,
			DeltaSyncCount:          t.DeltaSyncCount,
		},
	}
}
