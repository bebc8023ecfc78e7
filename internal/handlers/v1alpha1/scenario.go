package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/estimation"
	"github.com/migstack/scenario-planner/internal/handlers/validator"
	"github.com/migstack/scenario-planner/internal/scheduling"
	"github.com/migstack/scenario-planner/internal/service"
)

// (POST /api/v1alpha1/scenarios)
func (s *ServiceHandler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	var form api.CreateScenarioRequest
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		replyError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewScenarioValidationRules()...)
	if err := v.Struct(form); err != nil {
		replyError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	scenario, err := s.scenarioSrv.CreateScenario(r.Context(), form)
	if err != nil {
		replyError(w, r, scenarioErrorStatus(err), err.Error())
		return
	}

	reply(w, r, http.StatusCreated, scenario)
}

// (GET /api/v1alpha1/scenarios)
func (s *ServiceHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.scenarioSrv.ListScenarios(r.Context())
	if err != nil {
		replyError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	reply(w, r, http.StatusOK, scenarios)
}

// (GET /api/v1alpha1/scenarios/{id})
func (s *ServiceHandler) GetScenario(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		replyError(w, r, http.StatusBadRequest, "invalid scenario id")
		return
	}

	scenario, err := s.scenarioSrv.GetScenario(r.Context(), id)
	if err != nil {
		if _, ok := err.(*service.ErrResourceNotFound); ok {
			replyError(w, r, http.StatusNotFound, err.Error())
			return
		}
		replyError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	reply(w, r, http.StatusOK, scenario)
}

// (DELETE /api/v1alpha1/scenarios/{id})
func (s *ServiceHandler) DeleteScenario(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		replyError(w, r, http.StatusBadRequest, "invalid scenario id")
		return
	}

	if err := s.scenarioSrv.DeleteScenario(r.Context(), id); err != nil {
		replyError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	reply(w, r, http.StatusOK, map[string]string{})
}

// (POST /api/v1alpha1/scenarios/{id}/recalculate)
func (s *ServiceHandler) RecalculateScenario(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		replyError(w, r, http.StatusBadRequest, "invalid scenario id")
		return
	}

	scenario, err := s.scenarioSrv.RecalculateScenario(r.Context(), id)
	if err != nil {
		replyError(w, r, scenarioErrorStatus(err), err.Error())
		return
	}

	reply(w, r, http.StatusOK, scenario)
}

// (POST /api/v1alpha1/scenarios/recalculate)
func (s *ServiceHandler) BulkRecalculateScenarios(w http.ResponseWriter, r *http.Request) {
	var form api.BulkRecalculateRequest
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		replyError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(form.IDs) == 0 {
		replyError(w, r, http.StatusBadRequest, "ids must not be empty")
		return
	}

	result := s.scenarioSrv.BulkRecalculate(r.Context(), form.IDs)
	reply(w, r, http.StatusOK, result)
}

// scenarioErrorStatus maps scenario computation failures to HTTP codes.
// Dangling references and invalid stored parameters are client errors.
func scenarioErrorStatus(err error) int {
	switch err.(type) {
	case *service.ErrResourceNotFound:
		return http.StatusNotFound
	case *estimation.ErrInvalidTargetParameters,
		*estimation.ErrInvalidStrategyParameters,
		*scheduling.ErrInvalidWaveConstraint:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
