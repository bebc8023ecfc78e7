package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/migstack/scenario-planner/internal/config"
	"github.com/migstack/scenario-planner/internal/estimation"
	"github.com/migstack/scenario-planner/internal/events"
	handlers "github.com/migstack/scenario-planner/internal/handlers/v1alpha1"
	"github.com/migstack/scenario-planner/internal/service"
	"github.com/migstack/scenario-planner/internal/store"
	"github.com/migstack/scenario-planner/pkg/metrics"
	"github.com/migstack/scenario-planner/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg           *config.Config
	store         store.Store
	listener      net.Listener
	eventProducer *events.EventProducer
}

// New returns a new instance of a scenario-planner server.
func New(
	cfg *config.Config,
	store store.Store,
	listener net.Listener,
	eventProducer *events.EventProducer,
) *Server {
	return &Server{
		cfg:           cfg,
		store:         store,
		listener:      listener,
		eventProducer: eventProducer,
	}
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	replication := estimation.NewReplicationCalculator(
		estimation.WithCutoverBaseHours(s.cfg.Planner.CutoverBaseHours),
		estimation.WithCutoverMinutesPerVM(s.cfg.Planner.CutoverMinutesPerVM),
		estimation.WithMaintenanceWindowHours(s.cfg.Planner.MaintenanceWindowHours),
	)
	cost := estimation.NewCostCalculator(
		estimation.WithHoursPerMonth(s.cfg.Planner.HoursPerMonth),
	)

	h := handlers.NewServiceHandler(
		service.NewTargetService(s.store),
		service.NewStrategyService(s.store),
		service.NewScenarioService(s.store, s.eventProducer, replication, cost),
	)
	h.RegisterRoutes(router)

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: router}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}

	return nil
}
