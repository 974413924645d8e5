package manager

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	managerinterfaces "github.com/render-examples/scale-service/interfaces"
	"github.com/render-examples/scale-service/runtime/interfaces"
)

// Manager implements the supervision service keeping the instance counts
// of the managed services within their configured bounds
type Manager struct {
	pollInterval time.Duration
	scalers      map[string]managerinterfaces.Scaler
	cache        interfaces.Cacher

	metricsEnabled bool

	logger *logrus.Entry

	lastCheckTime   time.Time
	continueRunning uint32

	waitGroup   sync.WaitGroup
	monitorLock sync.RWMutex
}

// New creates a new instance of the manager and returns the instance and
// an error if applicable
func New(
	pollInterval time.Duration,
	scalers map[string]managerinterfaces.Scaler,
	cache interfaces.Cacher,
	metricsEnabled bool,
	logger *logrus.Entry,
) (*Manager, error) {

	if pollInterval <= 0 {
		return nil, errors.New("pollInterval must be larger than zero")
	}

	if len(scalers) == 0 {
		return nil, errors.New("at least one scaler must be provided")
	}

	if cache == nil {
		return nil, errors.New("cache must be set")
	}

	return &Manager{
		pollInterval:    pollInterval,
		scalers:         scalers,
		cache:           cache,
		metricsEnabled:  metricsEnabled,
		logger:          logger,
		lastCheckTime:   time.Now(),
		continueRunning: 0,
	}, nil
}

// Run the service forever
func (service *Manager) Run() error {
	// Ensure we are connected to the cache
	err := service.cache.Connect()
	if err != nil {
		return err
	}
	defer service.cache.Disconnect()

	// Set long running routines to run
	atomic.StoreUint32(&service.continueRunning, 1)

	// Watcher routine
	// We need to monitor how long ago we completed a scaling check. If a
	// check doesn't complete in a multiple of the poll interval, something
	// is wedged and we need to exit so the supervisor restarts us
	service.waitGroup.Add(1)
	go func() {
		defer service.waitGroup.Done()
		err := service.monitorChecksPerformed()
		if err != nil {
			service.logger.Fatal(err)
		}
	}()

	ticker := time.NewTicker(service.pollInterval)
	defer ticker.Stop()

	for atomic.LoadUint32(&service.continueRunning) == 1 {
		<-ticker.C

		// In the off chance we check the last check time while it is being
		// updated, we need to guard it
		service.monitorLock.Lock()
		service.lastCheckTime = time.Now()
		service.monitorLock.Unlock()

		for name, scaler := range service.scalers {
			scaleDirection, scaled, err := scaler.ScaleAutomatic()
			if err != nil {
				return err
			}

			if scaled {
				service.logger.WithFields(logrus.Fields{
					"scaler":    name,
					"direction": scaleDirection,
				}).Info("Service is scaling")

				err = service.cache.IncrementBy("scale_operations", 1)
				if err != nil {
					service.logger.WithFields(logrus.Fields{
						"scaler": name,
						"error":  err,
					}).Warning("Unable to record scale operation")
				}
			}
		}

		if service.metricsEnabled {
			metrics, err := service.collectMetrics()
			if err != nil {
				service.logger.WithFields(logrus.Fields{
					"error": err,
				}).Warning("Unable to collect metrics")
			} else {
				service.submitMetrics(metrics)
			}
		}

		service.logger.Debug("Scaling check complete")
	}

	// Wait for all our routines to complete and exit
	service.waitGroup.Wait()
	return nil
}

// monitorChecksPerformed checks the delay between scaling checks. If
// checks stop completing for an extended time, we need to exit and
// restart the service
func (service *Manager) monitorChecksPerformed() error {
	// Allow slow polling configurations a few intervals before treating
	// the service as wedged
	stallThreshold := service.pollInterval * 3
	if stallThreshold < time.Minute {
		stallThreshold = time.Minute
	}

	for atomic.LoadUint32(&service.continueRunning) == 1 {

		service.monitorLock.RLock()
		lastCheckTime := service.lastCheckTime
		service.monitorLock.RUnlock()

		service.logger.WithFields(logrus.Fields{
			"last_check":       lastCheckTime,
			"since_last_check": time.Since(lastCheckTime),
		}).Debug("Checking if scaling checks are completing")
		if time.Since(lastCheckTime) >= stallThreshold {
			return fmt.Errorf("no scaling check completed in %v", time.Since(lastCheckTime))
		}
		time.Sleep(service.pollInterval)
	}
	return nil
}

// Stop the manager service
// The managed services are left at their current instance counts, we
// only stop supervising them
func (service *Manager) Stop() error {
	// Block long running routines from continuing
	atomic.StoreUint32(&service.continueRunning, 0)
	return nil
}
