package deployer

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/render-examples/scale-service/render"
)

// Render implements a deployment mechanism using Render as the
// orchestrator via its REST API
type Render struct {
	serviceID string
	client    *render.Client

	logger *logrus.Entry
}

// NewRender creates a new instance of the Render deployer managing the
// instance count of the given service
func NewRender(
	serviceID string,
	client *render.Client,
	logger *logrus.Entry,
) (*Render, error) {

	if serviceID == "" {
		return nil, errors.New("serviceID must not be blank")
	}

	if client == nil {
		return nil, errors.New("a Render API client must be provided")
	}

	return &Render{
		serviceID: serviceID,
		client:    client,
		logger: logger.WithFields(logrus.Fields{
			"subservice": "deployer",
			"type":       "render",
		}),
	}, nil
}

// Increase the number of instances deployed by one
func (dep *Render) Increase() error {
	count, err := dep.Count()
	if err != nil {
		return err
	}
	return dep.SetCount(count + 1)
}

// Decrease the number of instances deployed by one
func (dep *Render) Decrease() error {
	count, err := dep.Count()
	if err != nil {
		return err
	}
	if count == 0 {
		return errors.New("unable to decrease below zero instances")
	}
	return dep.SetCount(count - 1)
}

// SetCount sets the absolute number of instances deployed
func (dep *Render) SetCount(count int) error {
	_, err := dep.client.ScaleService(dep.serviceID, count)
	if err != nil {
		return err
	}

	dep.logger.WithFields(logrus.Fields{
		"service_id":      dep.serviceID,
		"total_instances": count,
	}).Info("Applied instance count")

	return nil
}

// RemoveAll removes all instances from deployment
func (dep *Render) RemoveAll() error {
	return dep.SetCount(0)
}

// Count returns the amount of instances deployed
func (dep *Render) Count() (int, error) {
	service, err := dep.client.GetService(dep.serviceID)
	if err != nil {
		return 0, err
	}
	return service.ServiceDetails.NumInstances, nil
}

// IsDeploying returns true while an increase or decrease of instances has
// been requested but not completed yet
// The scale endpoint applies counts synchronously from the caller's point
// of view and Render exposes no pending count, so we are never deploying
func (dep *Render) IsDeploying() bool {
	return false
}
