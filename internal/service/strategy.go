package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/store"
	"github.com/migstack/scenario-planner/internal/store/model"
)

// StrategyService manages strategy profiles. One profile exists per
// strategy kind; Seed installs the defaults and operators may replace them.
type StrategyService struct {
	store store.Store
}

func NewStrategyService(st store.Store) *StrategyService {
	return &StrategyService{store: st}
}

func (s *StrategyService) CreateStrategy(ctx context.Context, request api.CreateStrategyRequest) (*api.Strategy, error) {
	row := model.NewStrategyFromAPI(uuid.New(), request)
	if _, err := row.Profile(); err != nil {
		return nil, err
	}

	created, err := s.store.Strategy().Create(ctx, row)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, fmt.Errorf("strategy %s already exists", request.Kind)
		}
		return nil, err
	}

	result := created.ToAPI()
	return &result, nil
}

func (s *StrategyService) ListStrategies(ctx context.Context) ([]api.Strategy, error) {
	rows, err := s.store.Strategy().List(ctx)
	if err != nil {
		return nil, err
	}
	strategies := make([]api.Strategy, 0, len(rows))
	for _, row := range rows {
		strategies = append(strategies, row.ToAPI())
	}
	return strategies, nil
}

func (s *StrategyService) DeleteStrategy(ctx context.Context, id uuid.UUID) error {
	return s.store.Strategy().Delete(ctx, id)
}
