package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/render-examples/scale-service/deployer"
	"github.com/render-examples/scale-service/render"
	"github.com/render-examples/scale-service/runtime"
	"github.com/render-examples/scale-service/runtime/cache"
	"github.com/render-examples/scale-service/runtime/interfaces"
	"github.com/render-examples/scale-service/scaler"
)

// Config defines the environment variables for the service
type Config struct {
	runtime.BaseConfig

	RenderAPIKey string `envconfig:"RENDER_API_KEY" required:"true"`
	ServiceID    string `envconfig:"SERVICE_ID"`
	MinInstances int    `envconfig:"MIN_INSTANCES" default:"0"`
	MaxInstances int    `envconfig:"MAX_INSTANCES" required:"true"`
	// StepDelay is the pause between two consecutive instance count
	// changes
	StepDelay time.Duration `envconfig:"STEP_DELAY" default:"30s"`
	// RedisEndpoint enables ramp run counters when set
	RedisEndpoint        string `envconfig:"REDIS_ENDPOINT"`
	RedisMetricsDatabase int    `envconfig:"REDIS_METRICS_DATABASE" default:"0"`
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

	serviceID, target, err := parseArgs(os.Args[1:], config)
	if err != nil {
		logger.Fatal(err)
	}

	client, err := render.NewClient(config.RenderAPIKey, logger)
	if err != nil {
		logger.Fatal(err)
	}

	renderDeployer, err := deployer.NewRender(serviceID, client, logger)
	if err != nil {
		logger.Fatal(err)
	}

	rampScaler, err := scaler.NewRamp(
		renderDeployer,
		config.StepDelay,
		config.MinInstances,
		config.MaxInstances,
		logger,
	)
	if err != nil {
		logger.Fatal(err)
	}

	// Record ramp runs when a metrics cache is configured
	if config.RedisEndpoint != "" {
		var metricsCacheProvider interfaces.Cacher
		metricsCacheProvider, err = cache.NewRedis(
			config.RedisEndpoint,
			config.RedisMetricsDatabase,
		)
		if err != nil {
			logger.Fatal(err)
		}
		defer metricsCacheProvider.Disconnect()

		err = metricsCacheProvider.IncrementBy("ramp_runs", 1)
		if err != nil {
			logger.WithFields(log.Fields{
				"error": err,
			}).Warning("Unable to record ramp run")
		}
	}

	err = rampScaler.RampTo(target)
	if err != nil {
		logger.Fatal(err)
	}
}

// parseArgs resolves the positional arguments. The service ID falls back
// to the environment and the target falls back to the configured maximum,
// matching a plain "ramp up" invocation
func parseArgs(args []string, config Config) (string, int, error) {
	serviceID := config.ServiceID
	rawTarget := ""

	switch len(args) {
	case 0:
	case 1:
		rawTarget = args[0]
	case 2:
		serviceID = args[0]
		rawTarget = args[1]
	default:
		return "", 0, errors.New("usage: ramp [service-id] [target-instances]")
	}

	if serviceID == "" {
		return "", 0, errors.New("no service ID given, set SERVICE_ID or pass it as the first argument")
	}

	if rawTarget == "" {
		return serviceID, config.MaxInstances, nil
	}

	target, err := strconv.Atoi(rawTarget)
	if err != nil {
		return "", 0, fmt.Errorf("invalid target instance count %q: must be an integer", rawTarget)
	}
	return serviceID, target, nil
}
