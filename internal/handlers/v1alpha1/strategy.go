package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/estimation"
	"github.com/migstack/scenario-planner/internal/handlers/validator"
)

// (POST /api/v1alpha1/strategies)
func (s *ServiceHandler) CreateStrategy(w http.ResponseWriter, r *http.Request) {
	var form api.CreateStrategyRequest
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		replyError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewStrategyValidationRules()...)
	if err := v.Struct(form); err != nil {
		replyError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	strategy, err := s.strategySrv.CreateStrategy(r.Context(), form)
	if err != nil {
		if _, ok := err.(*estimation.ErrInvalidStrategyParameters); ok {
			replyError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		replyError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	reply(w, r, http.StatusCreated, strategy)
}

// (GET /api/v1alpha1/strategies)
func (s *ServiceHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	strategies, err := s.strategySrv.ListStrategies(r.Context())
	if err != nil {
		replyError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	reply(w, r, http.StatusOK, strategies)
}

// (DELETE /api/v1alpha1/strategies/{id})
func (s *ServiceHandler) DeleteStrategy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		replyError(w, r, http.StatusBadRequest, "invalid strategy id")
		return
	}

	if err := s.strategySrv.DeleteStrategy(r.Context(), id); err != nil {
		replyError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	reply(w, r, http.StatusOK, map[string]string{})
}
