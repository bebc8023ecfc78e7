package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/migstack/scenario-planner/internal/store/model"
)

type Strategy interface {
	List(ctx context.Context) (model.StrategyList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Strategy, error)
	GetByKind(ctx context.Context, kind string) (*model.Strategy, error)
	Create(ctx context.Context, strategy model.Strategy) (*model.Strategy, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type StrategyStore struct {
	db *gorm.DB
}

// Make sure we conform to Strategy interface
var _ Strategy = (*StrategyStore)(nil)

func NewStrategyStore(db *gorm.DB) Strategy {
	return &StrategyStore{db: db}
}

func (s *StrategyStore) List(ctx context.Context) (model.StrategyList, error) {
	var strategies model.StrategyList
	if err := s.db.WithContext(ctx).Order("kind ASC").Find(&strategies).Error; err != nil {
		return nil, err
	}
	return strategies, nil
}

func (s *StrategyStore) Get(ctx context.Context, id uuid.UUID) (*model.Strategy, error) {
	var strategy model.Strategy
	result := s.db.WithContext(ctx).First(&strategy, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &strategy, nil
}

func (s *StrategyStore) GetByKind(ctx context.Context, kind string) (*model.Strategy, error) {
	var strategy model.Strategy
	result := s.db.WithContext(ctx).First(&strategy, "kind = ?", kind)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &strategy, nil
}

func (s *StrategyStore) Create(ctx context.Context, strategy model.Strategy) (*model.Strategy, error) {
	result := s.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&strategy)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &strategy, nil
}

func (s *StrategyStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&model.Strategy{}, "id = ?", id)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}
