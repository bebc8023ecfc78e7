package estimation

// DefaultHoursPerMonth is the averaged number of hours in a month used for
// recurring cost projection.
const DefaultHoursPerMonth = 730.0

// Cost category names, used as keys in the breakdown maps.
const (
	CategoryEgress         = "egress"
	CategoryCutoverCompute = "cutover_compute"
	CategoryCompute        = "compute"
	CategoryMemory         = "memory"
	CategoryStorage        = "storage"
)

// CostEstimate is the cost breakdown for one scenario: a one-time migration
// cost and a recurring monthly runtime cost, each split into named
// categories. No category is ever negative.
type CostEstimate struct {
	MigrationCost       float64
	RuntimeCostMonthly  float64
	MigrationCategories map[string]float64
	RuntimeCategories   map[string]float64
}

// CostCalculator translates VM-set totals and a replication estimate into
// migration and runtime costs against a target's unit prices.
type CostCalculator struct {
	hoursPerMonth float64
}

// CostOption is a functional option for configuring a CostCalculator.
type CostOption func(*CostCalculator)

// WithHoursPerMonth overrides the hours-per-month constant used for the
// runtime projection. Non-positive values are ignored.
func WithHoursPerMonth(hours float64) CostOption {
	return func(c *CostCalculator) {
		if hours > 0 {
			c.hoursPerMonth = hours
		}
	}
}

// NewCostCalculator creates a CostCalculator with default settings.
func NewCostCalculator(opts ...CostOption) *CostCalculator {
	res := CostCalculator{
		hoursPerMonth: DefaultHoursPerMonth,
	}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

// Estimate computes the migration and monthly runtime cost breakdowns.
//
// The egress charge covers the initial transfer plus every delta repetition
// (the replication estimate's transferred volume); cutover compute covers
// running both sides during the validation window.
func (c *CostCalculator) Estimate(totals VMSetTotals, target TargetProfile, repl ReplicationEstimate) CostEstimate {
	egress := repl.TransferredGB * target.EgressCostPerGB
	cutoverCompute := float64(totals.TotalVCPUs) * repl.CutoverHours * target.ComputeCostPerVCPUHour

	compute := float64(totals.TotalVCPUs) * c.hoursPerMonth * target.ComputeCostPerVCPUHour
	memory := totals.TotalMemoryGB * c.hoursPerMonth * target.MemoryCostPerGBHour
	storage := totals.TotalStorageGB * target.StorageCostPerGBMonth

	return CostEstimate{
		MigrationCost:      egress + cutoverCompute,
		RuntimeCostMonthly: compute + memory + storage,
		MigrationCategories: map[string]float64{
			CategoryEgress:         egress,
			CategoryCutoverCompute: cutoverCompute,
		},
		RuntimeCategories: map[string]float64{
			CategoryCompute: compute,
			CategoryMemory:  memory,
			CategoryStorage: storage,
		},
	}
}
