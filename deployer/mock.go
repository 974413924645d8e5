package deployer

import "fmt"

// Mock implements a mock deployment mechanism that keeps the instance
// count in memory and records every count it applies
type Mock struct {
	instanceCount int
	applied       []int
	failAt        int
	failArmed     bool
}

// NewMock creates a new instance of the Mock deployer starting at zero
// instances
func NewMock() *Mock {
	return &Mock{
		instanceCount: 0,
	}
}

// NewMockWithCount creates a new instance of the Mock deployer starting
// at the given instance count
func NewMockWithCount(count int) *Mock {
	return &Mock{
		instanceCount: count,
	}
}

// FailAt makes the next SetCount call for the given count fail
func (dep *Mock) FailAt(count int) {
	dep.failAt = count
	dep.failArmed = true
}

// Increase the number of instances deployed by one
func (dep *Mock) Increase() error {
	return dep.SetCount(dep.instanceCount + 1)
}

// Decrease the number of instances deployed by one
func (dep *Mock) Decrease() error {
	return dep.SetCount(dep.instanceCount - 1)
}

// SetCount sets the absolute number of instances deployed
func (dep *Mock) SetCount(count int) error {
	if dep.failArmed && count == dep.failAt {
		return fmt.Errorf("simulated failure applying instance count %d", count)
	}
	dep.instanceCount = count
	dep.applied = append(dep.applied, count)
	return nil
}

// RemoveAll removes all instances from deployment
func (dep *Mock) RemoveAll() error {
	return dep.SetCount(0)
}

// Count returns the amount of instances deployed
func (dep *Mock) Count() (int, error) {
	return dep.instanceCount, nil
}

// IsDeploying returns true while an increase or decrease of instances
// has been requested but not completed yet
func (dep *Mock) IsDeploying() bool {
	return false
}

// Applied returns every instance count applied, in order
func (dep *Mock) Applied() []int {
	return dep.applied
}
