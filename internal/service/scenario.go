package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/estimation"
	"github.com/migstack/scenario-planner/internal/events"
	"github.com/migstack/scenario-planner/internal/scheduling"
	"github.com/migstack/scenario-planner/internal/store"
	"github.com/migstack/scenario-planner/internal/store/model"
	"github.com/migstack/scenario-planner/pkg/metrics"
)

// Bulk failure kinds, serialized in BulkRecalculationFailure.ErrorKind.
const (
	failureKindMissingReference  = "missing_reference"
	failureKindInvalidTarget     = "invalid_target_parameters"
	failureKindInvalidStrategy   = "invalid_strategy_parameters"
	failureKindInvalidConstraint = "invalid_wave_constraint"
	failureKindCanceled          = "canceled"
	failureKindInternal          = "internal"
)

// ScenarioService orchestrates the estimation calculators and the wave
// scheduler into full migration scenarios, and owns their persistence.
type ScenarioService struct {
	store       store.Store
	replication *estimation.ReplicationCalculator
	cost        *estimation.CostCalculator
	scheduler   *scheduling.Scheduler
	eventWriter *events.EventProducer
}

// NewScenarioService wires a scenario service. The calculators are injected
// so model constants stay configuration, not package state.
func NewScenarioService(
	st store.Store,
	eventWriter *events.EventProducer,
	replication *estimation.ReplicationCalculator,
	cost *estimation.CostCalculator,
) *ScenarioService {
	return &ScenarioService{
		store:       st,
		replication: replication,
		cost:        cost,
		scheduler:   scheduling.NewScheduler(replication),
		eventWriter: eventWriter,
	}
}

// CreateScenario computes and persists a scenario for an already-resolved
// VM set. An empty VM set is not an error: it yields zero totals and an
// empty wave list.
func (s *ScenarioService) CreateScenario(ctx context.Context, request api.CreateScenarioRequest) (*api.MigrationScenario, error) {
	target, strategy, strategyID, err := s.resolveProfiles(ctx, request.TargetID, string(request.Strategy))
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	result, err := s.compute(id, request.Name, strategyID, request.VMs, target, strategy, request.WaveConstraints)
	if err != nil {
		return nil, err
	}

	vms := request.VMs
	if vms == nil {
		vms = []api.VMResourceProfile{}
	}
	row := model.Scenario{
		ID:           id,
		Name:         request.Name,
		TargetID:     request.TargetID,
		StrategyKind: string(request.Strategy),
		VMSet:        model.MakeJSONField(vms),
		Result:       model.MakeJSONField(result),
	}
	if request.WaveConstraints != nil {
		row.Constraints = model.MakeJSONField(request.WaveConstraints)
	}

	if _, err := s.store.Scenario().Create(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to persist scenario: %w", err)
	}

	s.emit(result, events.ScenarioCreated)
	metrics.IncreaseScenarioComputationsMetric(events.ScenarioCreated, "ok")
	metrics.ObserveWaveCountMetric(len(result.Waves))

	return &result, nil
}

// GetScenario returns the stored result for one scenario.
func (s *ScenarioService) GetScenario(ctx context.Context, id uuid.UUID) (*api.MigrationScenario, error) {
	row, err := s.store.Scenario().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrScenarioNotFound(id)
		}
		return nil, err
	}
	if row.Result == nil {
		return nil, fmt.Errorf("scenario %s has no computed result", id)
	}
	return &row.Result.Data, nil
}

// ListScenarios returns the stored results of all scenarios.
func (s *ScenarioService) ListScenarios(ctx context.Context) ([]api.MigrationScenario, error) {
	rows, err := s.store.Scenario().List(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]api.MigrationScenario, 0, len(rows))
	for _, row := range rows {
		if row.Result != nil {
			results = append(results, row.Result.Data)
		}
	}
	return results, nil
}

// DeleteScenario removes a scenario. Deleting a missing scenario is a no-op.
func (s *ScenarioService) DeleteScenario(ctx context.Context, id uuid.UUID) error {
	return s.store.Scenario().Delete(ctx, id)
}

// RecalculateScenario re-reads the scenario's current VM set, target and
// strategy and replaces the derived output wholesale. A dangling target or
// strategy reference surfaces as ErrResourceNotFound.
func (s *ScenarioService) RecalculateScenario(ctx context.Context, id uuid.UUID) (*api.MigrationScenario, error) {
	row, err := s.store.Scenario().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrScenarioNotFound(id)
		}
		return nil, err
	}

	target, strategy, strategyID, err := s.resolveProfiles(ctx, row.TargetID, row.StrategyKind)
	if err != nil {
		return nil, err
	}

	result, err := s.compute(row.ID, row.Name, strategyID, row.VMs(), target, strategy, row.WaveConstraints())
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Scenario().UpdateResult(ctx, id, result); err != nil {
		return nil, fmt.Errorf("failed to persist recalculated scenario: %w", err)
	}

	s.emit(result, events.ScenarioRecalculated)
	metrics.IncreaseScenarioComputationsMetric(events.ScenarioRecalculated, "ok")
	metrics.ObserveWaveCountMetric(len(result.Waves))

	return &result, nil
}

// BulkRecalculate recalculates every listed scenario independently. A
// failure on one scenario is captured as a structured entry and never
// aborts the siblings. Cancellation is checked between scenarios; the
// remaining ids are then reported as canceled rather than silently skipped.
func (s *ScenarioService) BulkRecalculate(ctx context.Context, ids []uuid.UUID) *api.BulkRecalculationResult {
	result := &api.BulkRecalculationResult{
		Updated: []api.MigrationScenario{},
		Failed:  []api.BulkRecalculationFailure{},
	}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			for _, remaining := range ids[i:] {
				result.Failed = append(result.Failed, api.BulkRecalculationFailure{
					ID:        remaining,
					ErrorKind: failureKindCanceled,
					Message:   err.Error(),
				})
			}
			break
		}

		scenario, err := s.RecalculateScenario(ctx, id)
		if err != nil {
			zap.S().Named("scenario_service").Warnw("bulk recalculation item failed", "scenario_id", id, "error", err)
			metrics.IncreaseScenarioComputationsMetric(events.ScenarioRecalculated, "failed")
			result.Failed = append(result.Failed, api.BulkRecalculationFailure{
				ID:        id,
				ErrorKind: failureKind(err),
				Message:   err.Error(),
			})
			continue
		}
		result.Updated = append(result.Updated, *scenario)
	}

	return result
}

// resolveProfiles looks up the referenced target and strategy and converts
// them into validated estimation profiles.
func (s *ScenarioService) resolveProfiles(ctx context.Context, targetID uuid.UUID, strategyKind string) (estimation.TargetProfile, estimation.StrategyProfile, uuid.UUID, error) {
	targetRow, err := s.store.Target().Get(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return estimation.TargetProfile{}, estimation.StrategyProfile{}, uuid.Nil, NewErrTargetNotFound(targetID)
		}
		return estimation.TargetProfile{}, estimation.StrategyProfile{}, uuid.Nil, err
	}

	strategyRow, err := s.store.Strategy().GetByKind(ctx, strategyKind)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return estimation.TargetProfile{}, estimation.StrategyProfile{}, uuid.Nil, NewErrStrategyNotFound(strategyKind)
		}
		return estimation.TargetProfile{}, estimation.StrategyProfile{}, uuid.Nil, err
	}

	target, err := targetRow.Profile()
	if err != nil {
		return estimation.TargetProfile{}, estimation.StrategyProfile{}, uuid.Nil, err
	}
	strategy, err := strategyRow.Profile()
	if err != nil {
		return estimation.TargetProfile{}, estimation.StrategyProfile{}, uuid.Nil, err
	}

	return target, strategy, strategyRow.ID, nil
}

// compute derives the full scenario record. It is a pure function of its
// arguments: identical inputs always produce an identical record.
func (s *ScenarioService) compute(
	id uuid.UUID,
	name string,
	strategyID uuid.UUID,
	vms []api.VMResourceProfile,
	target estimation.TargetProfile,
	strategy estimation.StrategyProfile,
	constraints *api.WaveConstraints,
) (api.MigrationScenario, error) {
	totals := estimation.AggregateVMSet(vms)
	repl := s.replication.Estimate(totals.TotalStorageGB, totals.VMCount, target, strategy)
	cost := s.cost.Estimate(totals, target, repl)

	var waves []api.MigrationWave
	if constraints != nil {
		var err error
		waves, err = s.scheduler.Schedule(vms, target, strategy, *constraints)
		if err != nil {
			return api.MigrationScenario{}, err
		}
	}

	reductionPercent := 0.0
	if repl.OriginalGB > 0 {
		reductionPercent = (1 - repl.EffectiveGB/repl.OriginalGB) * 100
	}

	return api.MigrationScenario{
		SchemaVersion: api.ScenarioSchemaVersion,
		ID:            id,
		Name:          name,
		TargetID:      target.ID,
		StrategyID:    strategyID,
		Strategy:      strategy.Kind,

		VMCount:        totals.VMCount,
		TotalVCPUs:     totals.TotalVCPUs,
		TotalMemoryGB:  totals.TotalMemoryGB,
		TotalStorageGB: totals.TotalStorageGB,

		Duration: api.DurationBreakdown{
			InitialReplicationHours: repl.InitialReplicationHours,
			DeltaSyncHours:          repl.DeltaSyncHours,
			CutoverHours:            repl.CutoverHours,
			TotalHours:              repl.TotalHours,
			ReplicationDays:         repl.ReplicationDays,
			CutoverDays:             repl.CutoverDays,
			TotalDays:               repl.TotalDays,
		},
		Cost: api.CostBreakdown{
			MigrationTotal:      cost.MigrationCost,
			RuntimeMonthlyTotal: cost.RuntimeCostMonthly,
			MigrationCategories: cost.MigrationCategories,
			RuntimeCategories:   cost.RuntimeCategories,
		},
		DataEfficiency: map[string]float64{
			"original_gb":       repl.OriginalGB,
			"effective_gb":      repl.EffectiveGB,
			"transferred_gb":    repl.TransferredGB,
			"reduction_percent": reductionPercent,
		},

		Waves: waves,

		TotalHours:    repl.TotalHours,
		MigrationCost: cost.MigrationCost,
	}, nil
}

func (s *ScenarioService) emit(scenario api.MigrationScenario, action string) {
	if s.eventWriter == nil {
		return
	}
	if err := s.eventWriter.WriteScenarioEvent(events.ScenarioEvent{
		ScenarioID: scenario.ID.String(),
		Action:     action,
		Strategy:   scenario.Strategy,
		VMCount:    scenario.VMCount,
		TotalHours: scenario.Duration.TotalHours,
	}); err != nil {
		zap.S().Named("scenario_service").Errorw("failed to write scenario event", "error", err, "scenario_id", scenario.ID)
	}
}

func failureKind(err error) string {
	var notFound *ErrResourceNotFound
	var invalidTarget *estimation.ErrInvalidTargetParameters
	var invalidStrategy *estimation.ErrInvalidStrategyParameters
	var invalidConstraint *scheduling.ErrInvalidWaveConstraint

	switch {
	case errors.As(err, &notFound):
		return failureKindMissingReference
	case errors.As(err, &invalidTarget):
		return failureKindInvalidTarget
	case errors.As(err, &invalidStrategy):
		return failureKindInvalidStrategy
	case errors.As(err, &invalidConstraint):
		return failureKindInvalidConstraint
	default:
		return failureKindInternal
	}
}
