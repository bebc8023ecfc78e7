package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/store/model"
)

type Scenario interface {
	List(ctx context.Context) (model.ScenarioList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Scenario, error)
	Create(ctx context.Context, scenario model.Scenario) (*model.Scenario, error)
	UpdateResult(ctx context.Context, id uuid.UUID, result api.MigrationScenario) (*model.Scenario, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ScenarioStore struct {
	db *gorm.DB
}

// Make sure we conform to Scenario interface
var _ Scenario = (*ScenarioStore)(nil)

func NewScenarioStore(db *gorm.DB) Scenario {
	return &ScenarioStore{db: db}
}

func (s *ScenarioStore) List(ctx context.Context) (model.ScenarioList, error) {
	var scenarios model.ScenarioList
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&scenarios).Error; err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (s *ScenarioStore) Get(ctx context.Context, id uuid.UUID) (*model.Scenario, error) {
	var scenario model.Scenario
	result := s.db.WithContext(ctx).First(&scenario, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &scenario, nil
}

func (s *ScenarioStore) Create(ctx context.Context, scenario model.Scenario) (*model.Scenario, error) {
	result := s.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&scenario)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &scenario, nil
}

// UpdateResult replaces the scenario's derived output wholesale.
func (s *ScenarioStore) UpdateResult(ctx context.Context, id uuid.UUID, result api.MigrationScenario) (*model.Scenario, error) {
	scenario, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	scenario.UpdatedAt = &now
	scenario.Result = model.MakeJSONField(result)

	if err := s.db.WithContext(ctx).Model(scenario).Updates(map[string]any{
		"updated_at": scenario.UpdatedAt,
		"result":     scenario.Result,
	}).Error; err != nil {
		return nil, err
	}
	return scenario, nil
}

func (s *ScenarioStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&model.Scenario{}, "id = ?", id)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}
