package runtime

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// BaseConfig defines the environment variables needed by all services
type BaseConfig struct {
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"scale-service"`
}

// Logger configures the global logrus instance according to the base
// configuration and returns an entry tagged with the service name
func (config BaseConfig) Logger() (*logrus.Entry, error) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "Jan 02 15:04:05",
	})
	if strings.ToLower(config.LogFormat) == "text" {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "Jan 02 15:04:05",
		})
	}
	logLevel, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(logLevel)

	return logrus.WithFields(logrus.Fields{
		"service": strings.ToLower(config.ServiceName),
	}), nil
}
