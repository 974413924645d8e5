package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/render-examples/scale-service/render"
	"github.com/render-examples/scale-service/runtime"
)

// Config defines the environment variables for the service
type Config struct {
	runtime.BaseConfig

	RenderAPIKey string `envconfig:"RENDER_API_KEY" required:"true"`
	ServiceID    string `envconfig:"SERVICE_ID"`
	DryRun       bool   `envconfig:"DRY_RUN"`
}

func main() {
	var config Config
	err := envconfig.Process("", &config)
	if err != nil {
		log.Fatalf("Unable to process config: %s", err)
	}

	logger, err := config.Logger()
	if err != nil {
		log.Fatalf("Unable to configure logging: %s", err)
	}

	serviceID, rawCount, err := parseArgs(os.Args[1:], config.ServiceID)
	if err != nil {
		logger.Fatal(err)
	}

	count, relative, err := parseCount(rawCount)
	if err != nil {
		logger.Fatal(err)
	}

	client, err := render.NewClient(config.RenderAPIKey, logger)
	if err != nil {
		logger.Fatal(err)
	}

	// Read the current count first so relative targets and the
	// already-at-target check work off live state
	service, err := client.GetService(serviceID)
	if err != nil {
		logger.Fatal(err)
	}
	currentInstances := service.ServiceDetails.NumInstances

	targetInstances := count
	if relative {
		targetInstances = currentInstances + count
		if targetInstances < 0 {
			targetInstances = 0
		}
	}

	logger = logger.WithFields(log.Fields{
		"service_id":   serviceID,
		"service_name": service.Name,
	})
	logger.WithFields(log.Fields{
		"current_instances": currentInstances,
		"target_instances":  targetInstances,
	}).Info("Scaling service")

	if targetInstances == currentInstances {
		logger.Info("Service already at the target instance count")
		return
	}

	if config.DryRun {
		logger.Info("Dry run enabled, not scaling")
		return
	}

	_, err = client.ScaleService(serviceID, targetInstances)
	if err != nil {
		logger.Fatal(err)
	}

	logger.WithFields(log.Fields{
		"total_instances": targetInstances,
	}).Info("Successfully scaled service")
}

// parseArgs resolves the positional arguments. The service ID may come
// from the environment when only the instance count is given
func parseArgs(args []string, defaultServiceID string) (string, string, error) {
	switch len(args) {
	case 1:
		if defaultServiceID == "" {
			return "", "", errors.New("no service ID given, set SERVICE_ID or pass it as the first argument")
		}
		return defaultServiceID, args[0], nil
	case 2:
		return args[0], args[1], nil
	}
	return "", "", errors.New("usage: scale [service-id] <num-instances>")
}

// parseCount parses the instance count argument. A count prefixed with an
// explicit sign is relative to the current count, a bare integer is an
// absolute target. Anything else is rejected before any API call is made
func parseCount(raw string) (int, bool, error) {
	relative := strings.HasPrefix(raw, "+") || strings.HasPrefix(raw, "-")
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("invalid instance count %q: must be an integer", raw)
	}
	return count, relative, nil
}
