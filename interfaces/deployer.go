package interfaces

// Deployer defines the behaviour of a component that applies instance
// counts to a hosted service
type Deployer interface {
	// Increase the number of instances deployed by one
	Increase() error
	// Decrease the number of instances deployed by one
	Decrease() error
	// SetCount sets the absolute number of instances deployed
	SetCount(count int) error
	// RemoveAll removes all instances from deployment
	RemoveAll() error
	// Count returns the amount of instances deployed
	Count() (int, error)
	// IsDeploying returns true while an increase or decrease of instances
	// has been requested but not completed yet
	IsDeploying() bool
}
