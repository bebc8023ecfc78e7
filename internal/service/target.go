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

// TargetService manages target profiles. Parameter bounds are enforced here,
// at the edge, so the calculators never see an out-of-range target.
type TargetService struct {
	store store.Store
}

func NewTargetService(st store.Store) *TargetService {
	return &TargetService{store: st}
}

func (s *TargetService) CreateTarget(ctx context.Context, request api.CreateTargetRequest) (*api.Target, error) {
	row := model.NewTargetFromAPI(uuid.New(), request)
	if _, err := row.Profile(); err != nil {
		return nil, err
	}

	created, err := s.store.Target().Create(ctx, row)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, fmt.Errorf("target %q already exists", request.Name)
		}
		return nil, err
	}

	result := created.ToAPI()
	return &result, nil
}

func (s *TargetService) GetTarget(ctx context.Context, id uuid.UUID) (*api.Target, error) {
	row, err := s.store.Target().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrTargetNotFound(id)
		}
		return nil, err
	}
	result := row.ToAPI()
	return &result, nil
}

func (s *TargetService) ListTargets(ctx context.Context) ([]api.Target, error) {
	rows, err := s.store.Target().List(ctx)
	if err != nil {
		return nil, err
	}
	targets := make([]api.Target, 0, len(rows))
	for _, row := range rows {
		targets = append(targets, row.ToAPI())
	}
	return targets, nil
}

// DeleteTarget removes a target. Scenarios referencing it are left in
// place; their next recalculation reports a missing reference.
func (s *TargetService) DeleteTarget(ctx context.Context, id uuid.UUID) error {
	return s.store.Target().Delete(ctx, id)
}
