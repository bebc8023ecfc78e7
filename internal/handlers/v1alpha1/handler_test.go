package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/config"
	"github.com/migstack/scenario-planner/internal/estimation"
	handlers "github.com/migstack/scenario-planner/internal/handlers/v1alpha1"
	"github.com/migstack/scenario-planner/internal/service"
	"github.com/migstack/scenario-planner/internal/store"
)

func TestHandlers(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Handlers Suite")
}

var _ = Describe("planner api", Ordered, func() {
	var (
		s      store.Store
		router *chi.Mux
	)

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		Expect(s.InitialMigration()).To(BeNil())
		Expect(s.Seed()).To(BeNil())

		replication := estimation.NewReplicationCalculator()
		cost := estimation.NewCostCalculator()
		handler := handlers.NewServiceHandler(
			service.NewTargetService(s),
			service.NewStrategyService(s),
			service.NewScenarioService(s, nil, replication, cost),
		)

		router = chi.NewRouter()
		handler.RegisterRoutes(router)
	})

	AfterAll(func() {
		_ = s.Close()
	})

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	createTargetForm := func(name string) api.CreateTargetRequest {
		return api.CreateTargetRequest{
			Name:                    name,
			BandwidthMbps:           1000,
			ComputeCostPerVCPUHour:  0.05,
			MemoryCostPerGBHour:     0.01,
			StorageCostPerGBMonth:   0.08,
			EgressCostPerGB:         0.02,
			CompressionRatio:        0.6,
			DedupRatio:              0.8,
			ChangeRatePercent:       0.1,
			NetworkProtocolOverhead: 1.2,
			DeltaSyncCount:          2,
		}
	}

	Context("targets", func() {
		It("creates and fetches a target", func() {
			resp := do(http.MethodPost, "/api/v1alpha1/targets", createTargetForm("aws-us-east-1"))
			Expect(resp.Code).To(Equal(http.StatusCreated))

			var created api.Target
			Expect(json.Unmarshal(resp.Body.Bytes(), &created)).To(Succeed())
			Expect(created.ID).ToNot(Equal(uuid.Nil))
			Expect(created.Name).To(Equal("aws-us-east-1"))

			resp = do(http.MethodGet, "/api/v1alpha1/targets/"+created.ID.String(), nil)
			Expect(resp.Code).To(Equal(http.StatusOK))
		})

		It("rejects a target with out of range ratios", func() {
			form := createTargetForm("bad-target")
			form.CompressionRatio = 1.5
			resp := do(http.MethodPost, "/api/v1alpha1/targets", form)
			Expect(resp.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for an unknown target", func() {
			resp := do(http.MethodGet, "/api/v1alpha1/targets/"+uuid.NewString(), nil)
			Expect(resp.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("strategies", func() {
		It("lists the seeded strategies", func() {
			resp := do(http.MethodGet, "/api/v1alpha1/strategies", nil)
			Expect(resp.Code).To(Equal(http.StatusOK))

			var strategies []api.Strategy
			Expect(json.Unmarshal(resp.Body.Bytes(), &strategies)).To(Succeed())
			Expect(len(strategies)).To(Equal(6))
		})

		It("rejects an unknown strategy kind", func() {
			resp := do(http.MethodPost, "/api/v1alpha1/strategies", api.CreateStrategyRequest{
				Kind:                            api.StrategyKind("REWRITE"),
				ReplicationEfficiencyMultiplier: 1,
				ParallelReplicationFactor:       1,
			})
			Expect(resp.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Context("scenarios", func() {
		var targetID uuid.UUID

		BeforeAll(func() {
			resp := do(http.MethodPost, "/api/v1alpha1/targets", createTargetForm("scenario-target"))
			Expect(resp.Code).To(Equal(http.StatusCreated))
			var created api.Target
			Expect(json.Unmarshal(resp.Body.Bytes(), &created)).To(Succeed())
			targetID = created.ID
		})

		vms := []api.VMResourceProfile{
			{ID: "db-1", VCPUs: 8, MemoryGB: 64, StorageProvisionedGB: 2048, StorageUsedGB: 1024, AffinityKey: "db"},
			{ID: "app-1", VCPUs: 4, MemoryGB: 16, StorageProvisionedGB: 512, StorageUsedGB: 256, AffinityKey: "app"},
		}

		It("creates a scenario and computes the estimate", func() {
			resp := do(http.MethodPost, "/api/v1alpha1/scenarios", api.CreateScenarioRequest{
				Name:     "dc-exit",
				TargetID: targetID,
				Strategy: api.StrategyKindRehost,
				VMs:      vms,
			})
			Expect(resp.Code).To(Equal(http.StatusCreated))

			var scenario api.MigrationScenario
			Expect(json.Unmarshal(resp.Body.Bytes(), &scenario)).To(Succeed())
			Expect(scenario.VMCount).To(Equal(2))
			Expect(scenario.TotalStorageGB).To(BeNumerically("==", 2560))
			Expect(scenario.Duration.TotalHours).To(BeNumerically(">", 0))
			Expect(scenario.Waves).To(BeEmpty())
		})

		It("computes waves when constraints are given", func() {
			resp := do(http.MethodPost, "/api/v1alpha1/scenarios", api.CreateScenarioRequest{
				Name:     "dc-exit-waved",
				TargetID: targetID,
				Strategy: api.StrategyKindRehost,
				VMs:      vms,
				WaveConstraints: &api.WaveConstraints{
					MaxVMsPerWave:       1,
					MaxStorageGBPerWave: 4096,
					ConcurrencyFactor:   1,
				},
			})
			Expect(resp.Code).To(Equal(http.StatusCreated))

			var scenario api.MigrationScenario
			Expect(json.Unmarshal(resp.Body.Bytes(), &scenario)).To(Succeed())
			Expect(scenario.Waves).To(HaveLen(2))
		})

		It("returns 404 when the target does not exist", func() {
			resp := do(http.MethodPost, "/api/v1alpha1/scenarios", api.CreateScenarioRequest{
				Name:     "orphan",
				TargetID: uuid.New(),
				Strategy: api.StrategyKindRehost,
				VMs:      vms,
			})
			Expect(resp.Code).To(Equal(http.StatusNotFound))
		})

		It("recalculates a scenario in place", func() {
			resp := do(http.MethodPost, "/api/v1alpha1/scenarios", api.CreateScenarioRequest{
				Name:     "recalc-me",
				TargetID: targetID,
				Strategy: api.StrategyKindRehost,
				VMs:      vms,
			})
			Expect(resp.Code).To(Equal(http.StatusCreated))
			var scenario api.MigrationScenario
			Expect(json.Unmarshal(resp.Body.Bytes(), &scenario)).To(Succeed())

			resp = do(http.MethodPost, "/api/v1alpha1/scenarios/"+scenario.ID.String()+"/recalculate", nil)
			Expect(resp.Code).To(Equal(http.StatusOK))

			var recalculated api.MigrationScenario
			Expect(json.Unmarshal(resp.Body.Bytes(), &recalculated)).To(Succeed())
			Expect(recalculated.Duration.TotalHours).To(Equal(scenario.Duration.TotalHours))
		})

		It("collects per item failures during bulk recalculation", func() {
			resp := do(http.MethodPost, "/api/v1alpha1/scenarios", api.CreateScenarioRequest{
				Name:     "bulk-ok",
				TargetID: targetID,
				Strategy: api.StrategyKindRehost,
				VMs:      vms,
			})
			Expect(resp.Code).To(Equal(http.StatusCreated))
			var scenario api.MigrationScenario
			Expect(json.Unmarshal(resp.Body.Bytes(), &scenario)).To(Succeed())

			missing := uuid.New()
			resp = do(http.MethodPost, "/api/v1alpha1/scenarios/recalculate", api.BulkRecalculateRequest{
				IDs: []uuid.UUID{scenario.ID, missing},
			})
			Expect(resp.Code).To(Equal(http.StatusOK))

			var result api.BulkRecalculationResult
			Expect(json.Unmarshal(resp.Body.Bytes(), &result)).To(Succeed())
			Expect(result.Updated).To(HaveLen(1))
			Expect(result.Failed).To(HaveLen(1))
			Expect(result.Failed[0].ID).To(Equal(missing))
			Expect(result.Failed[0].ErrorKind).To(Equal("missing_reference"))
		})

		It("deletes a scenario and then returns 404", func() {
			resp := do(http.MethodPost, "/api/v1alpha1/scenarios", api.CreateScenarioRequest{
				Name:     "delete-me",
				TargetID: targetID,
				Strategy: api.StrategyKindRehost,
				VMs:      vms,
			})
			Expect(resp.Code).To(Equal(http.StatusCreated))
			var scenario api.MigrationScenario
			Expect(json.Unmarshal(resp.Body.Bytes(), &scenario)).To(Succeed())

			resp = do(http.MethodDelete, "/api/v1alpha1/scenarios/"+scenario.ID.String(), nil)
			Expect(resp.Code).To(Equal(http.StatusOK))

			resp = do(http.MethodGet, "/api/v1alpha1/scenarios/"+scenario.ID.String(), nil)
			Expect(resp.Code).To(Equal(http.StatusNotFound))
		})
	})
})
