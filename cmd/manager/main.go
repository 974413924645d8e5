package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"

	"github.com/render-examples/scale-service/deployer"
	managerinterfaces "github.com/render-examples/scale-service/interfaces"
	"github.com/render-examples/scale-service/manager"
	"github.com/render-examples/scale-service/render"
	"github.com/render-examples/scale-service/runtime"
	"github.com/render-examples/scale-service/runtime/cache"
	"github.com/render-examples/scale-service/runtime/interfaces"
	"github.com/render-examples/scale-service/scaler"
)

// Config defines the environment variables for the service
type Config struct {
	runtime.BaseConfig

	RenderAPIKey string   `envconfig:"RENDER_API_KEY" required:"true"`
	ServiceIDs   []string `envconfig:"SERVICE_ID" required:"true"`
	MinInstances int      `envconfig:"MIN_INSTANCES" default:"1"`
	MaxInstances int      `envconfig:"MAX_INSTANCES" required:"true"`

	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"30s"`

	RedisEndpoint        string `envconfig:"REDIS_ENDPOINT" required:"true"`
	RedisMetricsDatabase int    `envconfig:"REDIS_METRICS_DATABASE" default:"0"`

	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`
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

	// Setup signal handler
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Setting up dependencies")

	client, err := render.NewClient(config.RenderAPIKey, logger)
	if err != nil {
		logger.Fatal(err)
	}

	var metricsCacheProvider interfaces.Cacher
	metricsCacheProvider, err = cache.NewRedis(
		config.RedisEndpoint,
		config.RedisMetricsDatabase,
	)
	if err != nil {
		logger.Fatal(err)
	}

	// We provide a map of scalers to the manager as we don't care about
	// individual scalers but rather that every managed service is handled
	// in the same manner each check
	scalers := make(map[string]managerinterfaces.Scaler)
	for _, serviceID := range config.ServiceIDs {
		renderDeployer, err := deployer.NewRender(serviceID, client, logger)
		if err != nil {
			logger.Fatal(err)
		}

		scalers[serviceID], err = scaler.NewBounds(
			renderDeployer,
			config.MinInstances,
			config.MaxInstances,
			logger,
		)
		if err != nil {
			logger.Fatal(err)
		}
	}

	service, err := manager.New(
		config.PollInterval,
		scalers,
		metricsCacheProvider,
		config.MetricsEnabled,
		logger,
	)
	if err != nil {
		logger.Fatal(err)
	}

	// Handle stop signals
	go func() {
		sig := <-signalChannel
		logger.WithFields(log.Fields{
			"signal": sig,
		}).Info("Received OS signal")

		service.Stop()
	}()

	logger.Info("Starting service")

	// Run forever
	err = service.Run()
	if err != nil {
		logger.Fatal(err)
	}

	logger.Info("Shutdown")
}
