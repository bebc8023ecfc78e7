package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/migstack/scenario-planner/api/v1alpha1"
	"github.com/migstack/scenario-planner/internal/config"
	"github.com/migstack/scenario-planner/internal/store"
	"github.com/migstack/scenario-planner/internal/store/model"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Store Suite")
}

func newTargetRow(name string) model.Target {
	return model.NewTargetFromAPI(uuid.New(), api.CreateTargetRequest{
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
	})
}

var _ = Describe("data store", Ordered, func() {
	var s store.Store

	BeforeAll(func() {
		db, err := store.InitDB(config.NewDefault())
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		Expect(s.InitialMigration()).To(BeNil())
	})

	AfterAll(func() {
		_ = s.Close()
	})

	Context("targets", func() {
		It("creates and reads back a target", func() {
			row := newTargetRow("target-roundtrip")
			created, err := s.Target().Create(context.TODO(), row)
			Expect(err).To(BeNil())
			Expect(created.ID).To(Equal(row.ID))

			fetched, err := s.Target().Get(context.TODO(), row.ID)
			Expect(err).To(BeNil())
			Expect(fetched.Name).To(Equal("target-roundtrip"))
			Expect(fetched.BandwidthMbps).To(BeNumerically("==", 1000))
		})

		It("reports a duplicate name", func() {
			row := newTargetRow("target-dup")
			_, err := s.Target().Create(context.TODO(), row)
			Expect(err).To(BeNil())

			dup := newTargetRow("target-dup")
			_, err = s.Target().Create(context.TODO(), dup)
			Expect(err).To(MatchError(store.ErrDuplicateKey))
		})

		It("returns not found for a missing id", func() {
			_, err := s.Target().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("deletes without error even when missing", func() {
			Expect(s.Target().Delete(context.TODO(), uuid.New())).To(BeNil())
		})
	})

	Context("strategies", func() {
		It("seeds the six default strategies idempotently", func() {
			Expect(s.Seed()).To(BeNil())
			Expect(s.Seed()).To(BeNil())

			rows, err := s.Strategy().List(context.TODO())
			Expect(err).To(BeNil())
			Expect(rows).To(HaveLen(6))
		})

		It("fetches a strategy by kind", func() {
			row, err := s.Strategy().GetByKind(context.TODO(), string(api.StrategyKindRefactor))
			Expect(err).To(BeNil())
			Expect(row.Kind).To(Equal(string(api.StrategyKindRefactor)))
			Expect(row.ReplicationEfficiencyMultiplier).To(BeNumerically("==", 2.0))
		})

		It("returns not found for an unknown kind", func() {
			_, err := s.Strategy().GetByKind(context.TODO(), "REWRITE")
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})

	Context("scenarios", func() {
		It("persists the vm set and replaces the result on update", func() {
			target := newTargetRow("scenario-store-target")
			_, err := s.Target().Create(context.TODO(), target)
			Expect(err).To(BeNil())

			vms := []api.VMResourceProfile{
				{ID: "vm-1", VCPUs: 2, MemoryGB: 8, StorageProvisionedGB: 100, StorageUsedGB: 50},
			}
			result := api.MigrationScenario{
				SchemaVersion: api.ScenarioSchemaVersion,
				ID:            uuid.New(),
				Name:          "store-roundtrip",
				VMCount:       1,
			}

			row := model.Scenario{
				ID:           result.ID,
				Name:         "store-roundtrip",
				TargetID:     target.ID,
				StrategyKind: string(api.StrategyKindRehost),
				VMSet:        model.MakeJSONField(vms),
				Result:       model.MakeJSONField(result),
			}
			_, err = s.Scenario().Create(context.TODO(), row)
			Expect(err).To(BeNil())

			fetched, err := s.Scenario().Get(context.TODO(), row.ID)
			Expect(err).To(BeNil())
			Expect(fetched.VMs()).To(HaveLen(1))
			Expect(fetched.VMs()[0].ID).To(Equal("vm-1"))
			Expect(fetched.Result.Data.VMCount).To(Equal(1))

			updated := result
			updated.VMCount = 3
			_, err = s.Scenario().UpdateResult(context.TODO(), row.ID, updated)
			Expect(err).To(BeNil())

			fetched, err = s.Scenario().Get(context.TODO(), row.ID)
			Expect(err).To(BeNil())
			Expect(fetched.Result.Data.VMCount).To(Equal(3))
		})

		It("returns not found when updating a missing scenario", func() {
			_, err := s.Scenario().UpdateResult(context.TODO(), uuid.New(), api.MigrationScenario{})
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})
	})
})
