package scaler

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/render-examples/scale-service/interfaces"
)

// Ramp implements a gradual scaler that walks the instance count toward
// a target one instance at a time, pausing between consecutive steps
type Ramp struct {
	deployer  interfaces.Deployer
	stepDelay time.Duration
	// minInstances and maxInstances bound the targets the ramp will
	// walk to
	minInstances int
	maxInstances int

	logger *logrus.Entry
}

// NewRamp creates a new instance of the gradual scaler with the given
// step delay and bounds
//
// stepDelay determines how long we pause between two consecutive
// instance count changes
func NewRamp(
	deployer interfaces.Deployer,
	stepDelay time.Duration,
	minInstances int,
	maxInstances int,
	logger *logrus.Entry,
) (*Ramp, error) {

	if deployer == nil {
		return nil, errors.New("a deployer must be provided")
	}

	if stepDelay < 0 {
		return nil, errors.New("stepDelay must not be negative")
	}

	if minInstances < 0 {
		return nil, errors.New("minInstances must not be negative")
	}

	if maxInstances < minInstances {
		return nil, errors.New("maxInstances must not be smaller than minInstances")
	}

	return &Ramp{
		deployer:     deployer,
		stepDelay:    stepDelay,
		minInstances: minInstances,
		maxInstances: maxInstances,
		logger: logger.WithFields(logrus.Fields{
			"subservice": "scaler",
			"type":       "ramp",
		}),
	}, nil
}

// RampTo walks the instance count from the current count to the given
// target in steps of one instance, sleeping the configured delay between
// steps. The first failing step aborts the ramp and leaves the service
// at the last count that was successfully applied
func (ramp *Ramp) RampTo(target int) error {

	if target < 0 {
		return fmt.Errorf("target instance count must not be negative: %d", target)
	}

	clamped := target
	if clamped < ramp.minInstances {
		clamped = ramp.minInstances
	}
	if clamped > ramp.maxInstances {
		clamped = ramp.maxInstances
	}

	current, err := ramp.deployer.Count()
	if err != nil {
		return err
	}

	logger := ramp.logger.WithFields(logrus.Fields{
		"run_id": uuid.NewString(),
		"target": clamped,
	})

	if clamped != target {
		logger.WithFields(logrus.Fields{
			"requested": target,
		}).Warning("Requested target outside bounds, clamped")
	}

	if current == clamped {
		logger.Info("Service already at target instance count")
		return nil
	}

	logger.WithFields(logrus.Fields{
		"current": current,
	}).Info("Starting ramp")

	for current != clamped {
		next := current + 1
		if clamped < current {
			next = current - 1
		}

		err = ramp.deployer.SetCount(next)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"num_instances": current,
				"error":         err,
			}).Warning("Ramp aborted, service left at last applied count")
			return err
		}
		current = next

		logger.WithFields(logrus.Fields{
			"num_instances": current,
		}).Info("Applied ramp step")

		// Pause between steps, the final step needs no pause
		if current != clamped {
			time.Sleep(ramp.stepDelay)
		}
	}

	logger.Info("Ramp complete")
	return nil
}
