// Package estimation models the time and cost of migrating a set of virtual
// machines to a target platform.
//
// The ReplicationCalculator converts a raw data volume and a target/strategy
// pair into a phased transfer-time estimate; the CostCalculator translates the
// same inputs into one-time and recurring cost breakdowns. Both are pure:
// profiles are validated at construction so the calculators can assume
// well-formed inputs.
package estimation
