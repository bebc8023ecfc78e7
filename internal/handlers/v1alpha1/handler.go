package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/service"
	"github.com/migstack/scenario-planner/pkg/requestid"
)

// ServiceHandler exposes the planner services over HTTP. It owns request
// decoding, validation and status mapping; all domain logic stays in the
// service layer.
type ServiceHandler struct {
	targetSrv   *service.TargetService
	strategySrv *service.StrategyService
	scenarioSrv *service.ScenarioService
}

func NewServiceHandler(
	targetService *service.TargetService,
	strategyService *service.StrategyService,
	scenarioService *service.ScenarioService,
) *ServiceHandler {
	return &ServiceHandler{
		targetSrv:   targetService,
		strategySrv: strategyService,
		scenarioSrv: scenarioService,
	}
}

// RegisterRoutes mounts the v1alpha1 API on the given router.
func (s *ServiceHandler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1alpha1", func(r chi.Router) {
		r.Route("/targets", func(r chi.Router) {
			r.Get("/", s.ListTargets)
			r.Post("/", s.CreateTarget)
			r.Get("/{id}", s.GetTarget)
			r.Delete("/{id}", s.DeleteTarget)
		})
		r.Route("/strategies", func(r chi.Router) {
			r.Get("/", s.ListStrategies)
			r.Post("/", s.CreateStrategy)
			r.Delete("/{id}", s.DeleteStrategy)
		})
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", s.ListScenarios)
			r.Post("/", s.CreateScenario)
			r.Post("/recalculate", s.BulkRecalculateScenarios)
			r.Get("/{id}", s.GetScenario)
			r.Delete("/{id}", s.DeleteScenario)
			r.Post("/{id}/recalculate", s.RecalculateScenario)
		})
	})
	router.Get("/health", s.Health)
}

// (GET /health)
func (s *ServiceHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func reply(w http.ResponseWriter, r *http.Request, status int, payload any) {
	render.Status(r, status)
	render.JSON(w, r, payload)
}

func replyError(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.Error{Message: message}
	if id := requestid.FromRequest(r); id != "" {
		resp.RequestID = &id
	}
	render.Status(r, status)
	render.JSON(w, r, resp)
}
