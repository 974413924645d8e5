package manager

import (
	"context"
	"fmt"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	datadogV2 "github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
	"github.com/sirupsen/logrus"
)

// collectMetrics collects all service metrics to be reported to DataDog
func (service *Manager) collectMetrics() ([]Metric, error) {

	var metrics []Metric

	// Count of running instances per managed service
	for scalerName, scaler := range service.scalers {
		count, err := scaler.Count()
		if err != nil {
			service.logger.WithFields(logrus.Fields{
				"scaler": scalerName,
				"error":  err,
			}).Warning("Unable to get instance count")
			continue
		}

		metric := Metric{
			Name:      fmt.Sprintf("manager.scaler.%s.instance_count", scalerName),
			Value:     float64(count),
			Timestamp: time.Now().Unix(),
			Service:   scalerName,
		}
		metrics = append(metrics, metric)

		// Mirror the count into the cache for other tooling to read
		err = service.cache.Set(fmt.Sprintf("%s_instance_count", scalerName), count)
		if err != nil {
			service.logger.WithFields(logrus.Fields{
				"scaler": scalerName,
				"error":  err,
			}).Warning("Unable to store instance count in cache")
		}

		service.logger.WithFields(logrus.Fields{
			"metric": metric.Name,
			"value":  metric.Value,
		}).Debug("Collected metric")
	}

	// Total amount of scale operations performed since start
	value, err := service.cache.GetFloat64("scale_operations")
	if err != nil {
		service.logger.WithFields(logrus.Fields{
			"metric": "scale_operations",
			"error":  err,
		}).Warning("Unable to get metric from cache")
	} else {
		metric := Metric{
			Name:      "manager.scale_operations.total",
			Value:     value,
			Timestamp: time.Now().Unix(),
			Service:   "manager",
		}
		metrics = append(metrics, metric)
		service.logger.WithFields(logrus.Fields{
			"metric": metric.Name,
			"value":  metric.Value,
		}).Debug("Collected metric")
	}

	return metrics, nil
}

// submitMetrics submits all the collected metrics
func (service *Manager) submitMetrics(metrics []Metric) error {
	ctx := datadog.NewDefaultContext(context.Background())
	configuration := datadog.NewConfiguration()

	apiClient := datadog.NewAPIClient(configuration)
	api := datadogV2.NewMetricsApi(apiClient)

	for _, metric := range metrics {
		body := datadogV2.MetricPayload{
			Series: []datadogV2.MetricSeries{
				{
					Metric: metric.Name,
					Type:   datadogV2.METRICINTAKETYPE_UNSPECIFIED.Ptr(),
					Points: []datadogV2.MetricPoint{
						{
							Timestamp: datadog.PtrInt64(metric.Timestamp),
							Value:     datadog.PtrFloat64(metric.Value),
						},
					},
					Resources: []datadogV2.MetricResource{
						{
							Name: datadog.PtrString(metric.Service),
							Type: datadog.PtrString("service"),
						},
					},
				},
			},
		}
		_, _, err := api.SubmitMetrics(ctx, body, *datadogV2.NewSubmitMetricsOptionalParameters())
		if err != nil {
			service.logger.WithFields(logrus.Fields{
				"metric": metric.Name,
				"error":  err,
			}).Warning("Unable to submit metric to DataDog")
		} else {
			service.logger.WithFields(logrus.Fields{
				"metric": metric.Name,
				"value":  metric.Value,
			}).Debug("Submitted metric")
		}
	}
	return nil
}
