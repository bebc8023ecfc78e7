package store

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/migstack/scenario-planner/internal/estimation"
	"github.com/migstack/scenario-planner/internal/store/model"
)

type Store interface {
	Target() Target
	Strategy() Strategy
	Scenario() Scenario
	InitialMigration() error
	Seed() error
	Close() error
}

type DataStore struct {
	db       *gorm.DB
	target   Target
	strategy Strategy
	scenario Scenario
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:       db,
		target:   NewTargetStore(db),
		strategy: NewStrategyStore(db),
		scenario: NewScenarioStore(db),
	}
}

func (s *DataStore) Target() Target {
	return s.target
}

func (s *DataStore) Strategy() Strategy {
	return s.strategy
}

func (s *DataStore) Scenario() Scenario {
	return s.scenario
}

func (s *DataStore) InitialMigration() error {
	return s.db.AutoMigrate(
		&model.Target{},
		&model.Strategy{},
		&model.Scenario{},
	)
}

// Seed upserts the six default strategy profiles so a fresh deployment can
// create scenarios without registering strategies first.
func (s *DataStore) Seed() error {
	catalog := estimation.DefaultStrategyCatalog()

	for kind, profile := range catalog {
		row := model.Strategy{
			ID:                              uuid.NewSHA1(uuid.NameSpaceOID, []byte("strategy/"+string(kind))),
			Kind:                            string(kind),
			ReplicationEfficiencyMultiplier: profile.ReplicationEfficiencyMultiplier,
			ParallelReplicationFactor:       profile.ParallelReplicationFactor,
		}
		if err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"replication_efficiency_multiplier", "parallel_replication_factor"}),
		}).Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
