package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/estimation"
	"github.com/migstack/scenario-planner/internal/handlers/validator"
	"github.com/migstack/scenario-planner/internal/service"
)

// (POST /api/v1alpha1/targets)
func (s *ServiceHandler) CreateTarget(w http.ResponseWriter, r *http.Request) {
	var form api.CreateTargetRequest
	if err := render.DecodeJSON(r.Body, &form); err != nil {
		replyError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	v := validator.NewValidator()
	v.Register(validator.NewTargetValidationRules()...)
	if err := v.Struct(form); err != nil {
		replyError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	target, err := s.targetSrv.CreateTarget(r.Context(), form)
	if err != nil {
		if _, ok := err.(*estimation.ErrInvalidTargetParameters); ok {
			replyError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		replyError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	reply(w, r, http.StatusCreated, target)
}

// (GET /api/v1alpha1/targets)
func (s *ServiceHandler) ListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := s.targetSrv.ListTargets(r.Context())
	if err != nil {
		replyError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	reply(w, r, http.StatusOK, targets)
}

// (GET /api/v1alpha1/targets/{id})
func (s *ServiceHandler) GetTarget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		replyError(w, r, http.StatusBadRequest, "invalid target id")
		return
	}

	target, err := s.targetSrv.GetTarget(r.Context(), id)
	if err != nil {
		if _, ok := err.(*service.ErrResourceNotFound); ok {
			replyError(w, r, http.StatusNotFound, err.Error())
			return
		}
		replyError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	reply(w, r, http.StatusOK, target)
}

// (DELETE /api/v1alpha1/targets/{id})
func (s *ServiceHandler) DeleteTarget(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		replyError(w, r, http.StatusBadRequest, "invalid target id")
		return
	}

	if err := s.targetSrv.DeleteTarget(r.Context(), id); err != nil {
		replyError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	reply(w, r, http.StatusOK, map[string]string{})
}
