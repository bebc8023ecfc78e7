package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/migstack/scenario-planner/internal/store/model"
)

type Target interface {
	List(ctx context.Context) (model.TargetList, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Target, error)
	Create(ctx context.Context, target model.Target) (*model.Target, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TargetStore struct {
	db *gorm.DB
}

// Make sure we conform to Target interface
var _ Target = (*TargetStore)(nil)

func NewTargetStore(db *gorm.DB) Target {
	return &TargetStore{db: db}
}

func (t *TargetStore) List(ctx context.Context) (model.TargetList, error) {
	var targets model.TargetList
	if err := t.db.WithContext(ctx).Order("created_at DESC").Find(&targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}

func (t *TargetStore) Get(ctx context.Context, id uuid.UUID) (*model.Target, error) {
	var target model.Target
	result := t.db.WithContext(ctx).First(&target, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &target, nil
}

func (t *TargetStore) Create(ctx context.Context, target model.Target) (*model.Target, error) {
	result := t.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&target)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &target, nil
}

func (t *TargetStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := t.db.WithContext(ctx).Delete(&model.Target{}, "id = ?", id)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}
	return nil
}
