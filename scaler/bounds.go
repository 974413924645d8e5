package scaler

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/render-examples/scale-service/interfaces"
)

// Bounds implements an automatic scaler to ensure the amount of running
// instances falls between the given minimum and maximum levels
type Bounds struct {
	deployer     interfaces.Deployer
	minInstances int
	maxInstances int

	logger *logrus.Entry
}

// NewBounds creates a new instance of the scaler with the given bounds
//
// minInstances determines the instance count below which we'll scale up
// maxInstances determines the instance count above which we'll scale down
func NewBounds(
	deployer interfaces.Deployer,
	minInstances int,
	maxInstances int,
	logger *logrus.Entry,
) (*Bounds, error) {

	if deployer == nil {
		return nil, errors.New("a deployer must be provided")
	}

	if minInstances < 0 {
		return nil, errors.New("minInstances must not be negative")
	}

	if maxInstances == 0 {
		return nil, errors.New("maxInstances must be larger than zero")
	}

	if maxInstances < minInstances {
		return nil, errors.New("maxInstances must not be smaller than minInstances")
	}

	return &Bounds{
		deployer:     deployer,
		minInstances: minInstances,
		maxInstances: maxInstances,
		logger: logger.WithFields(logrus.Fields{
			"subservice": "scaler",
			"type":       "bounds",
		}),
	}, nil
}

// ScaleAutomatic scales the service up or down based on the bounds.
// If scaling was executed it returns the direction (up, down) and true
// with no error
func (bounds *Bounds) ScaleAutomatic() (string, bool, error) {
	bounds.logger.Debug("Checking scaling parameters")

	if bounds.deployer.IsDeploying() {
		bounds.logger.Warning("Still deploying, skip parameter checks")
		return "none", false, nil
	}

	currentInstanceCount, err := bounds.deployer.Count()
	if err != nil {
		return "none", false, err
	}

	bounds.logger.WithFields(logrus.Fields{
		"instance_count": currentInstanceCount,
	}).Debug("Checked instance count")

	// If the instance count has dropped below the minimum, we scale up
	if currentInstanceCount < bounds.minInstances {
		return "up", true, bounds.ScaleUp()
	}

	// If the instance count has risen above the maximum, we scale down
	if currentInstanceCount > bounds.maxInstances {
		return "down", true, bounds.ScaleDown()
	}

	return "none", false, nil
}

// ScaleUp scales the service up by one instance
func (bounds *Bounds) ScaleUp() error {
	return bounds.deployer.Increase()
}

// ScaleDown scales the service down by one instance
func (bounds *Bounds) ScaleDown() error {
	currentInstanceCount, err := bounds.deployer.Count()
	if err != nil {
		return err
	}
	proposedInstanceCount := currentInstanceCount - 1
	if proposedInstanceCount < bounds.minInstances {
		bounds.logger.WithFields(logrus.Fields{
			"proposed_instance_count": proposedInstanceCount,
			"minimum_instance_count":  bounds.minInstances,
		}).Debug("Scale down refused as proposed instance count was lower than minimum count")
		return errors.New("unable to scale down below the minimum instance count")
	}
	return bounds.deployer.Decrease()
}

// ScaleToZero scales the service down to zero instances
func (bounds *Bounds) ScaleToZero() error {
	// Scale to zero won't work with a minimum instance count
	bounds.minInstances = 0
	return bounds.deployer.RemoveAll()
}

// Count returns the amount of instances deployed under this scaler
func (bounds *Bounds) Count() (int, error) {
	return bounds.deployer.Count()
}
