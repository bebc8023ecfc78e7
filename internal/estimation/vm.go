package estimation

import (
	api "github.com/migstack/scenario-planner/api/v1alpha1"
)

// VMSetTotals aggregates the raw resource footprint of a VM set.
type VMSetTotals struct {
	VMCount        int
	TotalVCPUs     int
	TotalMemoryGB  float64
	TotalStorageGB float64
	TotalUsedGB    float64
}

// AggregateVMSet sums the resource profiles of the given VMs. An empty set
// yields zero totals; negative inputs are clamped to zero since the profiles
// are externally supplied.
func AggregateVMSet(vms []api.VMResourceProfile) VMSetTotals {
	totals := VMSetTotals{VMCount: len(vms)}
	for _, vm := range vms {
		totals.TotalVCPUs += max(vm.VCPUs, 0)
		totals.TotalMemoryGB += max(vm.MemoryGB, 0)
		totals.TotalStorageGB += max(vm.StorageProvisionedGB, 0)
		totals.TotalUsedGB += max(vm.StorageUsedGB, 0)
	}
	return totals
}
